package record

import (
	"fmt"
	"strconv"
)

// A StringScanner scans/parses ASCII strings representing single lines
// of tab-delimited genomic text files.
//
// The zero StringScanner is valid and empty. Errors are sticky: once a
// scan or parse step fails, all further steps are no-ops and Err
// returns the first error.
type StringScanner struct {
	index int
	data  string
	err   error
}

// Err returns the first error that occurred during scanning/parsing.
func (sc *StringScanner) Err() error {
	return sc.err
}

// Reset resets the scanner, and initializes it with the given string.
func (sc *StringScanner) Reset(s string) {
	sc.index = 0
	sc.data = s
	sc.err = nil
}

// Len returns the number of ASCII characters that still need to be
// scanned/parsed. Len returns 0 if Err would return a non-nil value.
func (sc *StringScanner) Len() int {
	if sc.err != nil {
		return 0
	}
	return len(sc.data) - sc.index
}

// SetErr records the given error, unless an error was already
// recorded.
func (sc *StringScanner) SetErr(err error) {
	if sc.err == nil {
		sc.err = err
	}
}

func (sc *StringScanner) readUntil(c byte) (s string, found bool) {
	if sc.err != nil {
		return "", false
	}
	start := sc.index
	for end := sc.index; end < len(sc.data); end++ {
		if sc.data[end] == c {
			sc.index = end + 1
			return sc.data[start:end], true
		}
	}
	sc.index = len(sc.data)
	return sc.data[start:], false
}

// ParseText returns the next field up to the field delimiter.
func (sc *StringScanner) ParseText() string {
	s, _ := sc.readUntil(Delimiter)
	return s
}

// ParseInt32 parses the next field as a signed 32-bit integer.
func (sc *StringScanner) ParseInt32() int32 {
	value, err := strconv.ParseInt(sc.ParseText(), 10, 32)
	sc.SetErr(err)
	return int32(value)
}

// ParseUint8 parses the next field as an unsigned 8-bit integer.
func (sc *StringScanner) ParseUint8() uint8 {
	value, err := strconv.ParseUint(sc.ParseText(), 10, 8)
	sc.SetErr(err)
	return uint8(value)
}

// ParseUint16 parses the next field as an unsigned 16-bit integer. SAM
// flag bitmasks are parsed this way.
func (sc *StringScanner) ParseUint16() uint16 {
	value, err := strconv.ParseUint(sc.ParseText(), 10, 16)
	sc.SetErr(err)
	return uint16(value)
}

// ParseFloat64 parses the next field as a floating point number.
func (sc *StringScanner) ParseFloat64() float64 {
	value, err := strconv.ParseFloat(sc.ParseText(), 64)
	sc.SetErr(err)
	return value
}

// ReadByteUntil returns the next character, which must be followed by
// the given delimiter or the end of the data.
func (sc *StringScanner) ReadByteUntil(c byte) (b byte, found bool) {
	if sc.err != nil {
		return 0, false
	}
	start := sc.index
	if start >= len(sc.data) {
		sc.err = fmt.Errorf("unexpected end of data in ReadByteUntil")
		return 0, false
	}
	next := start + 1
	if next >= len(sc.data) {
		sc.index = len(sc.data)
		return sc.data[start], false
	}
	if sc.data[next] != c {
		sc.err = fmt.Errorf("unexpected character %q in ReadByteUntil", sc.data[next])
		return 0, false
	}
	sc.index = next + 1
	return sc.data[start], true
}

// ReadUntil returns the data up to the next occurrence of the given
// delimiter, and whether the delimiter was found.
func (sc *StringScanner) ReadUntil(c byte) (s string, found bool) {
	return sc.readUntil(c)
}
