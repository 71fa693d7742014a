package sam

import (
	"sort"

	psort "github.com/exascience/pargo/sort"

	"github.com/seqtools/seqtext/record"
)

// HeaderPrefix starts every line of the header section of a SAM file.
const HeaderPrefix = "@"

// A Header owns the ordered sequence of raw header lines of a SAM
// file, stored verbatim. Records reference their header through a
// non-owning pointer that is set by whatever assembles the file's
// records, never by the records themselves.
type Header struct {
	record.Header
}

// NewHeader creates an empty SAM header.
func NewHeader() *Header {
	return &Header{record.Header{Prefixes: []string{HeaderPrefix}}}
}

// An Alignment represents one alignment line of a SAM file.
type Alignment struct {
	// Header is a non-owning reference to the header of the file this
	// alignment was read from, or nil for a standalone alignment.
	Header *Header

	// QNAME is the name of the aligned read.
	QNAME string

	// FLAG is the bitwise flag of the aligned read.
	FLAG uint16

	// RNAME is the reference sequence name of the alignment.
	RNAME string

	// POS is the 1-based leftmost mapping position of the first
	// matching base.
	POS int32

	// MAPQ is the mapping quality.
	MAPQ uint8

	// CIGAR describes the alignment between read and reference.
	CIGAR Cigar

	// RNEXT is the reference sequence name of the mate read, "=" if
	// equal to RNAME, or "*" if unavailable.
	RNEXT string

	// PNEXT is the 1-based leftmost mapping position of the mate read,
	// or 0 for a single-end read.
	PNEXT int32

	// TLEN is the signed length of the template. Positive for the
	// leftmost segment, negative for the rightmost; 0 for single-end
	// reads or when the information is unavailable.
	TLEN int32

	// SEQ is the read sequence, or "*" if not stored.
	SEQ string

	// QUAL is the ASCII of the base quality scores, or "*" if not
	// stored.
	QUAL string

	// TAGS holds the optional fields verbatim, one TAG:TYPE:VALUE
	// column per entry. Use Tags for typed access.
	TAGS []string
}

// Length returns the number of bases in the read.
func (aln *Alignment) Length() int {
	return len(aln.SEQ)
}

// IsEmpty returns whether the read sequence is empty.
func (aln *Alignment) IsEmpty() bool {
	return len(aln.SEQ) == 0
}

// The bits of the FLAG field.
const (
	// Multiple means the read is paired in sequencing.
	Multiple = 0x1
	// Proper means the read is mapped in a proper pair.
	Proper = 0x2
	// Unmapped means the read itself is unmapped.
	Unmapped = 0x4
	// NextUnmapped means the mate is unmapped.
	NextUnmapped = 0x8
	// Reversed means the read is mapped to the reverse strand.
	Reversed = 0x10
	// NextReversed means the mate is mapped to the reverse strand.
	NextReversed = 0x20
	// First means this is read1 of a pair.
	First = 0x40
	// Last means this is read2 of a pair.
	Last = 0x80
	// Secondary means this is not a primary alignment.
	Secondary = 0x100
	// QCFailed means the alignment failed a quality check.
	QCFailed = 0x200
	// Duplicate means the read is a PCR or optical duplicate.
	Duplicate = 0x400
	// Supplementary means this is a supplementary alignment.
	Supplementary = 0x800
)

func (aln *Alignment) IsMultiple() bool      { return (aln.FLAG & Multiple) != 0 }
func (aln *Alignment) IsProper() bool        { return (aln.FLAG & Proper) != 0 }
func (aln *Alignment) IsUnmapped() bool      { return (aln.FLAG & Unmapped) != 0 }
func (aln *Alignment) IsNextUnmapped() bool  { return (aln.FLAG & NextUnmapped) != 0 }
func (aln *Alignment) IsReversed() bool      { return (aln.FLAG & Reversed) != 0 }
func (aln *Alignment) IsNextReversed() bool  { return (aln.FLAG & NextReversed) != 0 }
func (aln *Alignment) IsFirst() bool         { return (aln.FLAG & First) != 0 }
func (aln *Alignment) IsLast() bool          { return (aln.FLAG & Last) != 0 }
func (aln *Alignment) IsSecondary() bool     { return (aln.FLAG & Secondary) != 0 }
func (aln *Alignment) IsQCFailed() bool      { return (aln.FLAG & QCFailed) != 0 }
func (aln *Alignment) IsDuplicate() bool     { return (aln.FLAG & Duplicate) != 0 }
func (aln *Alignment) IsSupplementary() bool { return (aln.FLAG & Supplementary) != 0 }

func (aln *Alignment) FlagEvery(flag uint16) bool    { return (aln.FLAG & flag) == flag }
func (aln *Alignment) FlagSome(flag uint16) bool     { return (aln.FLAG & flag) != 0 }
func (aln *Alignment) FlagNotEvery(flag uint16) bool { return (aln.FLAG & flag) != flag }
func (aln *Alignment) FlagNotAny(flag uint16) bool   { return (aln.FLAG & flag) == 0 }

// CoordinateLess imposes the genomic position ordering on alignments:
// it compares RNAME first, then POS. This is a position-only ordering,
// not a structural comparison: alignments that differ in any other
// field still compare as equal positions.
func CoordinateLess(aln1, aln2 *Alignment) bool {
	if aln1.RNAME != aln2.RNAME {
		return aln1.RNAME < aln2.RNAME
	}
	return aln1.POS < aln2.POS
}

// CoordinateEqual returns whether the two alignments occupy the same
// genomic position (RNAME, POS). See CoordinateLess.
func CoordinateEqual(aln1, aln2 *Alignment) bool {
	return aln1.RNAME == aln2.RNAME && aln1.POS == aln2.POS
}

type (
	// By is an ordering predicate over alignments.
	By func(aln1, aln2 *Alignment) bool

	// An AlignmentSorter sorts a slice of alignments by an ordering
	// predicate, sequentially or in parallel.
	AlignmentSorter struct {
		alns []*Alignment
		by   By
	}
)

func (s AlignmentSorter) SequentialSort(i, j int) {
	alns, by := s.alns[i:j], s.by
	sort.Slice(alns, func(i, j int) bool {
		return by(alns[i], alns[j])
	})
}

func (s AlignmentSorter) NewTemp() psort.StableSorter {
	return AlignmentSorter{make([]*Alignment, len(s.alns)), s.by}
}

func (s AlignmentSorter) Len() int {
	return len(s.alns)
}

func (s AlignmentSorter) Less(i, j int) bool {
	return s.by(s.alns[i], s.alns[j])
}

func (s AlignmentSorter) Assign(p psort.StableSorter) func(i, j, len int) {
	dst, src := s.alns, p.(AlignmentSorter).alns
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// ParallelStableSort sorts a slice of alignments by the given ordering
// predicate, using a parallel stable sort.
func (by By) ParallelStableSort(alns []*Alignment) {
	psort.StableSort(AlignmentSorter{alns, by})
}

// A Sam is the in-memory representation of a SAM file: a header and the
// alignments bound to it.
type Sam struct {
	Header     *Header
	Alignments []*Alignment
}

// NewSam creates an empty SAM file representation.
func NewSam() *Sam { return &Sam{Header: NewHeader()} }
