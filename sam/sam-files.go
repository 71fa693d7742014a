package sam

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/exascience/pargo/pipeline"
	"github.com/google/uuid"

	"github.com/seqtools/seqtext/internal"
	"github.com/seqtools/seqtext/record"
	"github.com/seqtools/seqtext/utils"
)

var alignmentSchema = record.Schema{
	Name: "SAM alignment",
	Fields: []record.Field{
		{Name: "QNAME", Kind: record.Text},
		{Name: "FLAG", Kind: record.Uint16},
		{Name: "RNAME", Kind: record.Text},
		{Name: "POS", Kind: record.Int32},
		{Name: "MAPQ", Kind: record.Uint8},
		{Name: "CIGAR", Kind: record.Value},
		{Name: "RNEXT", Kind: record.Text},
		{Name: "PNEXT", Kind: record.Int32},
		{Name: "TLEN", Kind: record.Int32},
		{Name: "SEQ", Kind: record.Text},
		{Name: "QUAL", Kind: record.Text},
		{Name: "TAGS", Kind: record.Tail},
	},
}

// Schema declares the column layout of a SAM alignment line.
func (aln *Alignment) Schema() record.Schema {
	return alignmentSchema
}

// Fields returns pointers to the alignment's fields in schema order.
func (aln *Alignment) Fields() []interface{} {
	return []interface{}{
		&aln.QNAME, &aln.FLAG, &aln.RNAME, &aln.POS, &aln.MAPQ,
		&aln.CIGAR, &aln.RNEXT, &aln.PNEXT, &aln.TLEN, &aln.SEQ,
		&aln.QUAL, &aln.TAGS,
	}
}

// Parse fills the alignment from one SAM alignment line, leaving the
// header reference untouched. On error the alignment is unchanged.
func (aln *Alignment) Parse(line string) error {
	tmp := Alignment{Header: aln.Header}
	if err := record.Parse(line, &tmp); err != nil {
		return err
	}
	*aln = tmp
	return nil
}

// Format appends the text form of the alignment line to buf, without a
// line terminator.
func (aln *Alignment) Format(buf []byte) ([]byte, error) {
	return record.Format(buf, aln)
}

// ParseHeader accumulates the '@'-prefixed header lines from the
// reader, leaving the first alignment line unread. It returns the
// header and the number of lines consumed.
func ParseHeader(reader *bufio.Reader) (*Header, int, error) {
	hdr := NewHeader()
	lines, err := hdr.Parse(reader)
	return hdr, lines, err
}

func splitHeaderField(field string) (tag, value string, err error) {
	if len(field) < 3 || field[2] != ':' {
		return "", "", fmt.Errorf("incorrectly formatted SAM header field %v", field)
	}
	return field[:2], field[3:], nil
}

// ParseHeaderLineFields parses the TAG:VALUE fields of a SAM header
// line such as "@SQ\tSN:chr1\tLN:248956422" into a StringMap. The
// record type code itself is not included.
func ParseHeaderLineFields(line string) (utils.StringMap, error) {
	fields := strings.Split(line, "\t")
	if len(fields) > 0 && strings.HasPrefix(fields[0], HeaderPrefix) {
		fields = fields[1:]
	}
	hrecord := make(utils.StringMap, len(fields))
	for _, field := range fields {
		switch tag, value, err := splitHeaderField(field); {
		case err != nil:
			return nil, err
		case !hrecord.SetUniqueEntry(tag, value):
			return nil, fmt.Errorf("duplicate field tag %v in a SAM header line", tag)
		}
	}
	return hrecord, nil
}

// SQLines parses the @SQ lines of the header into their TAG:VALUE
// fields, in header order.
func (hdr *Header) SQLines() ([]utils.StringMap, error) {
	var sqs []utils.StringMap
	for _, line := range hdr.Lines {
		if !strings.HasPrefix(line, "@SQ") {
			continue
		}
		fields, err := ParseHeaderLineFields(line)
		if err != nil {
			return nil, err
		}
		sqs = append(sqs, fields)
	}
	return sqs, nil
}

// SQNames returns the reference sequence names declared by the @SQ
// lines of the header, in header order.
func (hdr *Header) SQNames() ([]string, error) {
	sqs, err := hdr.SQLines()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, fields := range sqs {
		if sn, found := fields["SN"]; found {
			names = append(names, sn)
		}
	}
	return names, nil
}

// SQ returns the fields of the @SQ line that declares the given
// reference sequence name, or nil if the header does not declare it.
func (hdr *Header) SQ(name string) (utils.StringMap, error) {
	sqs, err := hdr.SQLines()
	if err != nil {
		return nil, err
	}
	if index := utils.Find(sqs, func(record utils.StringMap) bool {
		return record["SN"] == name
	}); index >= 0 {
		return sqs[index], nil
	}
	return nil, nil
}

// ProgramLine returns an @PG header line with a unique ID that
// identifies this program run, for appending to output headers.
func ProgramLine() string {
	return fmt.Sprintf("@PG\tID:%v\tPN:%v\tVN:%v", uuid.New(), utils.ProgramName, utils.ProgramVersion)
}

// ReadFrom reads a complete SAM file from the reader: the header block
// first, then all alignment lines, parsed in parallel while preserving
// file order. Every alignment is bound to the header by a non-owning
// reference.
func (sam *Sam) ReadFrom(reader *bufio.Reader) error {
	hdr, _, err := ParseHeader(reader)
	if err != nil {
		return err
	}
	sam.Header = hdr
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(reader))
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		lines := data.([]string)
		alns := make([]*Alignment, 0, len(lines))
		for _, line := range lines {
			aln := &Alignment{Header: hdr}
			if err := aln.Parse(line); err != nil {
				p.SetErr(fmt.Errorf("%v, while parsing SAM alignment %v", err, line))
				return alns
			}
			alns = append(alns, aln)
		}
		return alns
	})))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		sam.Alignments = append(sam.Alignments, data.([]*Alignment)...)
		return data
	})))
	p.Run()
	return p.Err()
}

// Format writes the header and all alignment lines to the writer.
func (sam *Sam) Format(out *bufio.Writer) error {
	if err := sam.Header.Format(out); err != nil {
		return err
	}
	buf := internal.ReserveByteBuffer()
	defer internal.ReleaseByteBuffer(buf)
	for _, aln := range sam.Alignments {
		var err error
		if *buf, err = aln.Format((*buf)[:0]); err != nil {
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
	// An InputFile is an open SAM text input, transparently
	// decompressing gzip-framed files.
	InputFile struct {
		rc io.ReadCloser
		gz *gzip.Reader
		*bufio.Reader
	}

	// An OutputFile is an open SAM text output, transparently
	// compressing to gzip-framed files.
	OutputFile struct {
		wc io.WriteCloser
		gz *gzip.Writer
		*bufio.Writer
	}
)

// Open opens a SAM file for reading. "/dev/stdin" reads from standard
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

// Create opens a SAM file for writing. "/dev/stdout" writes to standard
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

// ReadFile reads a complete SAM file by name. Plain files are read
// through a read-only memory mapping; gzip-framed files and standard
// input fall back to Open.
func ReadFile(name string) (*Sam, error) {
	if name == "/dev/stdin" || filepath.Ext(name) == ".gz" {
		return readOpenFile(name)
	}
	return readMappedFile(name)
}

func readOpenFile(name string) (sam *Sam, err error) {
	input, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := input.Close(); nerr != nil && err == nil {
			sam = nil
			err = nerr
		}
	}()
	sam = NewSam()
	err = sam.ReadFrom(input.Reader)
	return sam, err
}

func readMappedFile(name string) (sam *Sam, err error) {
	data, err := internal.MapFile(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := internal.Unmap(data); nerr != nil && err == nil {
			sam = nil
			err = nerr
		}
	}()
	sam = NewSam()
	err = sam.ReadFrom(bufio.NewReader(bytes.NewReader(data)))
	return sam, err
}
