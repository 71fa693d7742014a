package vcf

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/exascience/pargo/pipeline"

	"github.com/seqtools/seqtext/internal"
	"github.com/seqtools/seqtext/record"
)

var variantSchema = record.Schema{
	Name: "VCF variant",
	Fields: []record.Field{
		{Name: "CHROM", Kind: record.Text},
		{Name: "POS", Kind: record.Int32},
		{Name: "ID", Kind: record.Text},
		{Name: "REF", Kind: record.Text},
		{Name: "ALT", Kind: record.Text},
		{Name: "QUAL", Kind: record.Float64},
		{Name: "FILTER", Kind: record.Text},
		{Name: "INFO", Kind: record.Text},
		{Name: "FORMAT", Kind: record.Text},
		{Name: "SAMPLES", Kind: record.Tail},
	},
}

// Schema declares the column layout of a VCF record line.
func (v *Variant) Schema() record.Schema {
	return variantSchema
}

// Fields returns pointers to the variant's fields in schema order.
func (v *Variant) Fields() []interface{} {
	return []interface{}{
		&v.Chrom, &v.Pos, &v.ID, &v.Ref, &v.Alt,
		&v.Qual, &v.Filter, &v.Info, &v.Format, &v.Samples,
	}
}

// Parse fills the variant from one VCF record line, leaving the header
// reference untouched. On error the variant is unchanged.
func (v *Variant) Parse(line string) error {
	tmp := Variant{Header: v.Header}
	if err := record.Parse(line, &tmp); err != nil {
		return err
	}
	*v = tmp
	return nil
}

// FormatLine appends the text form of the variant line to buf, without
// a line terminator.
func (v *Variant) FormatLine(buf []byte) ([]byte, error) {
	return record.Format(buf, v)
}

// ParseHeader accumulates the '#'-prefixed header lines from the
// reader, leaving the first record line unread. It returns the header
// and the number of lines consumed.
func ParseHeader(reader *bufio.Reader) (*Header, int, error) {
	hdr := NewHeader()
	lines, err := hdr.Parse(reader)
	return hdr, lines, err
}

// ReadFrom reads a complete VCF file from the reader: the header block
// first, then all record lines, parsed in parallel while preserving
// file order. Every variant is bound to the header by a non-owning
// reference.
func (vcf *Vcf) ReadFrom(reader *bufio.Reader) error {
	hdr, _, err := ParseHeader(reader)
	if err != nil {
		return err
	}
	vcf.Header = hdr
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(reader))
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		lines := data.([]string)
		variants := make([]*Variant, 0, len(lines))
		for _, line := range lines {
			v := &Variant{Header: hdr}
			if err := v.Parse(line); err != nil {
				p.SetErr(fmt.Errorf("%v, while parsing VCF record %v", err, line))
				return variants
			}
			variants = append(variants, v)
		}
		return variants
	})))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		vcf.Variants = append(vcf.Variants, data.([]*Variant)...)
		return data
	})))
	p.Run()
	return p.Err()
}

// Format writes the header and all record lines to the writer.
func (vcf *Vcf) Format(out *bufio.Writer) error {
	if err := vcf.Header.Format(out); err != nil {
		return err
	}
	buf := internal.ReserveByteBuffer()
	defer internal.ReleaseByteBuffer(buf)
	for _, v := range vcf.Variants {
		var err error
		if *buf, err = v.FormatLine((*buf)[:0]); err != nil {
			return err
		}
		*buf = append(*buf, '\n')
		if _, err := out.Write(*buf); err != nil {
			return err
		}
	}
	return nil
}

type (
	// An InputFile is an open VCF text input, transparently
	// decompressing gzip-framed files.
	InputFile struct {
		rc io.ReadCloser
		gz *gzip.Reader
		*bufio.Reader
	}

	// An OutputFile is an open VCF text output, transparently
	// compressing to gzip-framed files.
	OutputFile struct {
		wc io.WriteCloser
		gz *gzip.Writer
		*bufio.Writer
	}
)

// Open opens a VCF file for reading. "/dev/stdin" reads from standard
// input; a ".gz" extension selects gzip decompression.
func Open(name string) (*InputFile, error) {
	if name == "/dev/stdin" {
		return &InputFile{os.Stdin, nil, bufio.NewReader(os.Stdin)}, nil
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(name) == ".gz" {
		gz, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		return &InputFile{file, gz, bufio.NewReader(gz)}, nil
	}
	return &InputFile{file, nil, bufio.NewReader(file)}, nil
}

// Close closes the input file.
func (input *InputFile) Close() error {
	if input.gz != nil {
		if err := input.gz.Close(); err != nil {
			return err
		}
	}
	if input.rc != os.Stdin {
		return input.rc.Close()
	}
	return nil
}

// Create opens a VCF file for writing. "/dev/stdout" writes to standard
// output; a ".gz" extension selects gzip compression.
func Create(name string) (*OutputFile, error) {
	if name == "/dev/stdout" {
		return &OutputFile{os.Stdout, nil, bufio.NewWriter(os.Stdout)}, nil
	}
	file, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(name) == ".gz" {
		gz := gzip.NewWriter(file)
		return &OutputFile{file, gz, bufio.NewWriter(gz)}, nil
	}
	return &OutputFile{file, nil, bufio.NewWriter(file)}, nil
}

// Close flushes and closes the output file.
func (output *OutputFile) Close() error {
	if err := output.Flush(); err != nil {
		return err
	}
	if output.gz != nil {
		if err := output.gz.Close(); err != nil {
			return err
		}
	}
	if output.wc != os.Stdout {
		return output.wc.Close()
	}
	return nil
}

// ReadFile reads a complete VCF file by name. Plain files are read
// through a read-only memory mapping; gzip-framed files and standard
// input fall back to Open.
func ReadFile(name string) (*Vcf, error) {
	if name == "/dev/stdin" || filepath.Ext(name) == ".gz" {
		return readOpenFile(name)
	}
	return readMappedFile(name)
}

func readOpenFile(name string) (vcf *Vcf, err error) {
	input, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := input.Close(); nerr != nil && err == nil {
			vcf = nil
			err = nerr
		}
	}()
	vcf = NewVcf()
	err = vcf.ReadFrom(input.Reader)
	return vcf, err
}

func readMappedFile(name string) (vcf *Vcf, err error) {
	data, err := internal.MapFile(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := internal.Unmap(data); nerr != nil && err == nil {
			vcf = nil
			err = nerr
		}
	}()
	vcf = NewVcf()
	err = vcf.ReadFrom(bufio.NewReader(bytes.NewReader(data)))
	return vcf, err
}
