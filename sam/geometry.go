package sam

import (
	"bytes"

	"github.com/seqtools/seqtext/interval"
	"github.com/seqtools/seqtext/qual"
)

// Orientation classifies the relative strands of a read and its mate.
type Orientation int

// The four read/mate orientations.
const (
	// FR: read forward, mate reverse.
	FR Orientation = iota
	// FF: both forward.
	FF
	// RR: both reverse.
	RR
	// RF: read reverse, mate forward.
	RF
)

// ComputeOrientation returns the orientation of a read given the
// strands of the read and its mate.
func ComputeOrientation(readForward, mateForward bool) Orientation {
	if readForward != mateForward {
		if readForward {
			return FR
		}
		return RF
	}
	if readForward {
		return FF
	}
	return RR
}

// ComputeTlen returns the signed template length for a read/mate pair
// given their 1-based positions, CIGARs, and strands.
//
// The computation is canonicalized on the leftmost-positioned read: if
// the read starts after its mate, the arguments are swapped and the
// result negated, so ComputeTlen is antisymmetric under exchanging read
// and mate.
//
// For the FF, RR and RF orientations, a non-zero result is biased away
// from zero by one. This off-by-one convention is deliberate and must
// not be corrected: downstream consumers depend on adjacent
// non-overlapping same-strand reads reporting a non-zero signed
// distance.
func ComputeTlen(readPos int32, readCigar Cigar, readForward bool, matePos int32, mateCigar Cigar, mateForward bool) int32 {
	if readPos > matePos {
		return -ComputeTlen(matePos, mateCigar, mateForward, readPos, readCigar, readForward)
	}
	switch ComputeOrientation(readForward, mateForward) {
	case FR:
		return matePos + mateCigar.RefLength() - readPos
	case FF:
		tlen := (matePos + mateCigar.ReadLength()) - (readPos + readCigar.ReadLength())
		return biasFromZero(tlen)
	case RR:
		tlen := (matePos + mateCigar.RefLength()) - (readPos + readCigar.RefLength())
		return biasFromZero(tlen)
	default: // RF
		tlen := matePos - (readPos + readCigar.RefLength()) + 1
		return biasFromZero(tlen)
	}
}

func biasFromZero(tlen int32) int32 {
	switch {
	case tlen > 0:
		return tlen + 1
	case tlen < 0:
		return tlen - 1
	default:
		return 0
	}
}

// Begin returns the 0-based position of the first matching base, i.e.
// POS - 1.
func (aln *Alignment) Begin() int32 {
	return aln.POS - 1
}

// End returns the 0-based open end position of the alignment on the
// reference: Begin plus the reference bases consumed by the CIGAR.
func (aln *Alignment) End() int32 {
	return aln.Begin() + aln.CIGAR.RefLength()
}

// MateBegin returns TLEN - 1, the 0-based begin position the template
// length convention implies for the mate.
func (aln *Alignment) MateBegin() int32 {
	return aln.TLEN - 1
}

// TlenWellDefined reports whether the stored TLEN value carries a
// meaningful template length: the read must be paired with both ends
// mapped on opposite strands, TLEN must be non-zero, and the implied
// mate position must be consistent with the read's own span.
func (aln *Alignment) TlenWellDefined() bool {
	if aln.TLEN == 0 {
		return false
	}
	if !aln.IsMultiple() {
		return false
	}
	if aln.IsUnmapped() || aln.IsNextUnmapped() {
		return false
	}
	if aln.IsReversed() == aln.IsNextReversed() {
		return false
	}
	if aln.IsReversed() {
		return aln.End() > aln.MateBegin()+1
	}
	return aln.Begin() <= aln.MateBegin()+aln.TLEN
}

// Interval returns the genomic interval the alignment covers on the
// reference: [Begin, End) on RNAME, on the '-' strand if the read is
// reversed and the '+' strand otherwise.
func (aln *Alignment) Interval() interval.Interval {
	strand := byte('+')
	if aln.IsReversed() {
		strand = '-'
	}
	return interval.Interval{Chrom: aln.RNAME, Begin: aln.Begin(), End: aln.End(), Strand: strand}
}

// MaxReadLength is the maximum read length supported by the gap
// penalty strings.
const MaxReadLength = 256

var (
	// Gap open penalty of 40, represented as quality value characters
	// as in a FASTQ file.
	gapOpenPenalty = string(bytes.Repeat([]byte{40 + qual.AsciiOffset}, MaxReadLength))

	// Gap continuation penalty of 10, represented as quality value
	// characters as in a FASTQ file.
	gapContinuationPenalty = string(bytes.Repeat([]byte{10 + qual.AsciiOffset}, MaxReadLength))
)

// InsertionGOP returns a gap open penalty string with the same length
// as SEQ. SEQ must not be longer than MaxReadLength.
func (aln *Alignment) InsertionGOP() string {
	return gapOpenPenalty[:len(aln.SEQ)]
}

// DeletionGOP returns a gap open penalty string with the same length as
// SEQ. SEQ must not be longer than MaxReadLength.
func (aln *Alignment) DeletionGOP() string {
	return gapOpenPenalty[:len(aln.SEQ)]
}

// OverallGCP returns a gap continuation penalty string with the same
// length as SEQ. SEQ must not be longer than MaxReadLength.
func (aln *Alignment) OverallGCP() string {
	return gapContinuationPenalty[:len(aln.SEQ)]
}
