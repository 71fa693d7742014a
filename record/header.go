package record

import (
	"bufio"
	"io"
	"strings"
)

// A Header owns the ordered sequence of raw header lines of a genomic
// text file. Header lines are recognized by a per-format set of
// accepted line prefixes and stored verbatim, without their line
// terminators. An empty prefix set accepts every line.
//
// Records reference a shared Header read-only; concurrent mutation of a
// Header while records reference it requires external synchronization.
type Header struct {
	Prefixes []string
	Lines    []string
}

// NewHeader returns an empty header that recognizes lines starting with
// any of the given prefixes.
func NewHeader(prefixes ...string) *Header {
	return &Header{Prefixes: prefixes}
}

// Matches returns whether the given line belongs to the header.
func (hdr *Header) Matches(line string) bool {
	if len(hdr.Prefixes) == 0 {
		return true
	}
	for _, prefix := range hdr.Prefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// Append stores the given line verbatim at the end of the header.
func (hdr *Header) Append(line string) {
	hdr.Lines = append(hdr.Lines, line)
}

// Parse accumulates header lines from the reader until it peeks a line
// that does not match the header prefixes, leaving that line unread.
// It returns the number of lines consumed.
func (hdr *Header) Parse(reader *bufio.Reader) (lines int, err error) {
	maxPrefix := 1
	for _, prefix := range hdr.Prefixes {
		if len(prefix) > maxPrefix {
			maxPrefix = len(prefix)
		}
	}
	for {
		data, err := reader.Peek(maxPrefix)
		if err == io.EOF && len(data) == 0 {
			return lines, nil
		}
		if err != nil && err != io.EOF {
			return lines, err
		}
		if !hdr.Matches(string(data)) {
			return lines, nil
		}
		line, err := reader.ReadString('\n')
		switch {
		case err == nil:
			line = line[:len(line)-1]
		case err != io.EOF:
			return lines, err
		}
		hdr.Append(line)
		lines++
		if err == io.EOF {
			return lines, nil
		}
	}
}

// Format writes the header lines in order, each followed by a newline.
func (hdr *Header) Format(out *bufio.Writer) error {
	for _, line := range hdr.Lines {
		if _, err := out.WriteString(line); err != nil {
			return err
		}
		if err := out.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// String returns the header block as text. Concatenating the lines in
// order with '\n' terminators reproduces the original header block
// byte-for-byte.
func (hdr *Header) String() string {
	var sb strings.Builder
	for _, line := range hdr.Lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
