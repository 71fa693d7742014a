package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqtools/seqtext/interval"
	"github.com/seqtools/seqtext/sam"
	"github.com/seqtools/seqtext/vcf"
)

var regionsOpts struct {
	input   string
	output  string
	format  string
	regions []string
	bed     string
}

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Keep only the records that overlap the given genomic regions",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := detectFormat(regionsOpts.format, regionsOpts.input)
		if err != nil {
			return err
		}
		query, err := collectRegions()
		if err != nil {
			return err
		}
		switch format {
		case "sam":
			return regionsSam(regionsOpts.input, regionsOpts.output, query)
		default:
			return regionsVcf(regionsOpts.input, regionsOpts.output, query)
		}
	},
}

func init() {
	flags := regionsCmd.Flags()
	flags.StringVarP(&regionsOpts.input, "input", "i", "/dev/stdin", "input file, or /dev/stdin")
	flags.StringVarP(&regionsOpts.output, "output", "o", "/dev/stdout", "output file, or /dev/stdout")
	flags.StringVar(&regionsOpts.format, "format", "", "file format (sam or vcf); inferred from the file name when omitted")
	flags.StringArrayVarP(&regionsOpts.regions, "region", "r", nil, "region such as chr1:1,000-2,000 (repeatable)")
	flags.StringVar(&regionsOpts.bed, "bed", "", "BED file with regions")
	rootCmd.AddCommand(regionsCmd)
}

// A regionIndex holds, per chromosome, a flattened set of disjoint
// query intervals sorted by Begin.
type regionIndex map[string][]interval.Interval

func (index regionIndex) overlaps(ival interval.Interval) bool {
	intervals, found := index[ival.Chrom]
	return found && interval.AnyOverlap(intervals, ival)
}

// collectRegions gathers the query regions from the --region flags and
// the optional BED file, and flattens them per chromosome into sorted
// sets of disjoint intervals. Strand is irrelevant for overlap queries
// and is normalized away.
func collectRegions() (regionIndex, error) {
	var intervals []interval.Interval
	for _, text := range regionsOpts.regions {
		ival, err := interval.Parse(text)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, ival)
	}
	if regionsOpts.bed != "" {
		bedIntervals, err := interval.ReadBed(regionsOpts.bed)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, bedIntervals...)
	}
	if len(intervals) == 0 {
		return nil, fmt.Errorf("no regions given; use --region or --bed")
	}
	index := make(regionIndex)
	for _, ival := range intervals {
		ival.Strand = '+'
		index[ival.Chrom] = append(index[ival.Chrom], ival)
	}
	for chrom, chromIntervals := range index {
		interval.ParallelSortByBegin(chromIntervals)
		index[chrom] = interval.Flatten(chromIntervals)
	}
	return index, nil
}

func regionsSam(input, output string, query regionIndex) error {
	s, err := sam.ReadFile(input)
	if err != nil {
		return err
	}
	kept := s.Alignments[:0]
	for _, aln := range s.Alignments {
		if aln.IsUnmapped() {
			continue
		}
		ival := aln.Interval()
		ival.Strand = '+'
		if query.overlaps(ival) {
			kept = append(kept, aln)
		}
	}
	s.Alignments = kept
	return writeSam(s, output)
}

func regionsVcf(input, output string, query regionIndex) error {
	v, err := vcf.ReadFile(input)
	if err != nil {
		return err
	}
	kept := v.Variants[:0]
	for _, variant := range v.Variants {
		if query.overlaps(variant.Interval()) {
			kept = append(kept, variant)
		}
	}
	v.Variants = kept
	return writeVcf(v, output)
}
