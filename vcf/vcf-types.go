package vcf

import (
	"sort"

	psort "github.com/exascience/pargo/sort"

	"github.com/seqtools/seqtext/interval"
	"github.com/seqtools/seqtext/record"
)

// HeaderPrefix starts every line of the header section of a VCF file.
const HeaderPrefix = "#"

// A Header owns the ordered sequence of raw header lines of a VCF
// file, stored verbatim. Records reference their header through a
// non-owning pointer that is set by whatever assembles the file's
// records, never by the records themselves.
type Header struct {
	record.Header
}

// NewHeader creates an empty VCF header.
func NewHeader() *Header {
	return &Header{record.Header{Prefixes: []string{HeaderPrefix}}}
}

// A Variant represents one record line of a VCF file. The INFO and
// FORMAT sub-encodings are kept as opaque strings.
type Variant struct {
	// Header is a non-owning reference to the header of the file this
	// variant was read from, or nil for a standalone variant.
	Header *Header

	// Chrom is the name of the chromosome on which the variation is
	// called.
	Chrom string

	// Pos is the 1-based position of the variation on the chromosome.
	Pos int32

	// ID is the identifier of the variation, or "." if unavailable.
	ID string

	// Ref is the reference allele at the given position.
	Ref string

	// Alt lists the alternative alleles, comma separated.
	Alt string

	// Qual is the quality score associated with the given alleles.
	Qual float64

	// Filter indicates which filters the variation passed or failed,
	// "PASS" if all of them passed.
	Filter string

	// Info is an extensible semicolon-separated list of key-value
	// pairs describing the variation.
	Info string

	// Format lists the colon-separated per-sample field keys.
	Format string

	// Samples holds one text block per sample, with values for the
	// keys listed in Format.
	Samples []string
}

// CoordinateLess imposes the genomic position ordering on variants: it
// compares Chrom first, then Pos. This is a position-only ordering, not
// a structural comparison: variants with identical (Chrom, Pos) but
// different alleles or annotations still compare as equal positions.
func CoordinateLess(v1, v2 *Variant) bool {
	if v1.Chrom != v2.Chrom {
		return v1.Chrom < v2.Chrom
	}
	return v1.Pos < v2.Pos
}

// CoordinateEqual returns whether the two variants occupy the same
// genomic position (Chrom, Pos). See CoordinateLess.
func CoordinateEqual(v1, v2 *Variant) bool {
	return v1.Chrom == v2.Chrom && v1.Pos == v2.Pos
}

// Interval returns the genomic interval of the variant: the single
// anchor base [Pos-1, Pos) on the '+' strand, regardless of the Ref and
// Alt allele lengths. This is a deliberate simplification, not a full
// variant-span computation.
func (v *Variant) Interval() interval.Interval {
	return interval.Interval{Chrom: v.Chrom, Begin: v.Pos - 1, End: v.Pos, Strand: '+'}
}

type (
	// By is an ordering predicate over variants.
	By func(v1, v2 *Variant) bool

	// A VariantSorter sorts a slice of variants by an ordering
	// predicate, sequentially or in parallel.
	VariantSorter struct {
		variants []*Variant
		by       By
	}
)

func (s VariantSorter) SequentialSort(i, j int) {
	variants, by := s.variants[i:j], s.by
	sort.Slice(variants, func(i, j int) bool {
		return by(variants[i], variants[j])
	})
}

func (s VariantSorter) NewTemp() psort.StableSorter {
	return VariantSorter{make([]*Variant, len(s.variants)), s.by}
}

func (s VariantSorter) Len() int {
	return len(s.variants)
}

func (s VariantSorter) Less(i, j int) bool {
	return s.by(s.variants[i], s.variants[j])
}

func (s VariantSorter) Assign(p psort.StableSorter) func(i, j, len int) {
	dst, src := s.variants, p.(VariantSorter).variants
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// ParallelStableSort sorts a slice of variants by the given ordering
// predicate, using a parallel stable sort.
func (by By) ParallelStableSort(variants []*Variant) {
	psort.StableSort(VariantSorter{variants, by})
}

// A Vcf is the in-memory representation of a VCF file: a header and the
// variants bound to it.
type Vcf struct {
	Header   *Header
	Variants []*Variant
}

// NewVcf creates an empty VCF file representation.
func NewVcf() *Vcf { return &Vcf{Header: NewHeader()} }
