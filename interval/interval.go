// Package interval provides a half-open genomic range value type and
// operations on sorted interval slices.
package interval

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Symbols of the interval text form.
const (
	ChromSeparator    = ':'
	BeginEndSeparator = '-'
	EndOfChrom        = '+'
	DigitSeparator    = ','
)

// MaxEnd is the open end position of an interval that extends to the
// end of its chromosome. Genomic positions are int32 throughout, like
// SAM alignment positions.
const MaxEnd = math.MaxInt32

// An Interval is a half-open genomic range [Begin, End) on one strand
// of a chromosome. End >= Begin always holds for intervals built by New
// or Parse.
type Interval struct {
	Chrom  string
	Begin  int32
	End    int32
	Strand byte
}

// New returns an interval with the given bounds. It returns an error if
// the strand is not '+' or '-', or if end < begin.
func New(chrom string, begin, end int32, strand byte) (Interval, error) {
	if strand != '+' && strand != '-' {
		return Interval{}, fmt.Errorf("invalid strand symbol %q", strand)
	}
	if end < begin {
		return Interval{}, fmt.Errorf("invalid interval bounds [%v, %v): end must not be less than begin", begin, end)
	}
	return Interval{Chrom: chrom, Begin: begin, End: end, Strand: strand}, nil
}

// Parse converts the text form of an interval:
//
//	[+|-]chrom[:begin[-end]]
//
// An optional leading '+' or '-' sets the strand, which defaults to
// '+'. Without a ':' the interval covers the whole chromosome. After
// the ':', digit group separators (commas) are ignored; a single
// position denotes the one-base interval [pos, pos+1), a trailing '+'
// extends the interval to the end of the chromosome, and "begin-end"
// gives both bounds. Parse accepts a superset of what String emits.
func Parse(text string) (Interval, error) {
	iv := Interval{Strand: '+'}
	rest := text
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		iv.Strand = rest[0]
		rest = rest[1:]
	}
	colon := strings.IndexByte(rest, ChromSeparator)
	if colon < 0 {
		iv.Chrom = rest
		iv.End = MaxEnd
		return iv, nil
	}
	iv.Chrom = rest[:colon]
	rng := strings.ReplaceAll(rest[colon+1:], string(DigitSeparator), "")
	if dash := strings.IndexByte(rng, BeginEndSeparator); dash >= 0 {
		begin, err := parsePosition(text, rng[:dash])
		if err != nil {
			return Interval{}, err
		}
		end, err := parsePosition(text, rng[dash+1:])
		if err != nil {
			return Interval{}, err
		}
		iv.Begin, iv.End = begin, end
	} else if strings.HasSuffix(rng, string(EndOfChrom)) {
		begin, err := parsePosition(text, rng[:len(rng)-1])
		if err != nil {
			return Interval{}, err
		}
		iv.Begin, iv.End = begin, MaxEnd
	} else {
		begin, err := parsePosition(text, rng)
		if err != nil {
			return Interval{}, err
		}
		iv.Begin, iv.End = begin, begin+1
	}
	if iv.End < iv.Begin {
		return Interval{}, fmt.Errorf("invalid interval string %v: end is less than begin", text)
	}
	return iv, nil
}

func parsePosition(text, number string) (int32, error) {
	value, err := strconv.ParseInt(number, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%v, while parsing interval string %v", err, text)
	}
	return int32(value), nil
}

// Size returns the number of positions covered by the interval.
func (iv Interval) Size() int32 {
	return iv.End - iv.Begin
}

// Empty returns whether the interval covers no positions.
func (iv Interval) Empty() bool {
	return iv.Size() == 0
}

// Overlaps returns whether the two intervals are on the same chromosome
// and strand and their half-open ranges intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Chrom == other.Chrom && iv.Strand == other.Strand &&
		iv.Begin < other.End && other.Begin < iv.End
}

// Contains returns whether other lies fully within the interval, on the
// same chromosome and strand.
func (iv Interval) Contains(other Interval) bool {
	return iv.Chrom == other.Chrom && iv.Strand == other.Strand &&
		iv.Begin <= other.Begin && iv.End >= other.End
}

// SpanWith returns the minimal interval covering both iv and other. It
// returns an error if the two intervals are on different chromosomes or
// strands.
func (iv Interval) SpanWith(other Interval) (Interval, error) {
	if iv.Chrom != other.Chrom {
		return Interval{}, fmt.Errorf("cannot span intervals on different chroms %v and %v", iv.Chrom, other.Chrom)
	}
	if iv.Strand != other.Strand {
		return Interval{}, fmt.Errorf("cannot span intervals on different strands %q and %q", iv.Strand, other.Strand)
	}
	span := iv
	if other.Begin < span.Begin {
		span.Begin = other.Begin
	}
	if other.End > span.End {
		span.End = other.End
	}
	return span, nil
}

// ExpandWith widens the interval by padding positions on both ends.
// The begin position saturates at zero and the end position at MaxEnd.
func (iv Interval) ExpandWith(padding int32) Interval {
	expanded := iv
	if expanded.Begin > padding {
		expanded.Begin -= padding
	} else {
		expanded.Begin = 0
	}
	if expanded.End <= MaxEnd-padding {
		expanded.End += padding
	} else {
		expanded.End = MaxEnd
	}
	return expanded
}

// Less imposes a strict total order over (Chrom, Begin, End, Strand).
func (iv Interval) Less(other Interval) bool {
	if iv.Chrom != other.Chrom {
		return iv.Chrom < other.Chrom
	}
	if iv.Begin != other.Begin {
		return iv.Begin < other.Begin
	}
	if iv.End != other.End {
		return iv.End < other.End
	}
	return iv.Strand < other.Strand
}

// String returns the canonical text form strand+chrom:begin-end.
func (iv Interval) String() string {
	buf := make([]byte, 0, len(iv.Chrom)+24)
	buf = append(buf, iv.Strand)
	buf = append(buf, iv.Chrom...)
	buf = append(buf, ChromSeparator)
	buf = strconv.AppendInt(buf, int64(iv.Begin), 10)
	buf = append(buf, BeginEndSeparator)
	buf = strconv.AppendInt(buf, int64(iv.End), 10)
	return string(buf)
}
