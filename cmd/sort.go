package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seqtools/seqtext/sam"
	"github.com/seqtools/seqtext/vcf"
)

var sortOpts struct {
	input  string
	output string
	format string
}

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort a SAM or VCF file by genomic position",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := detectFormat(sortOpts.format, sortOpts.input)
		if err != nil {
			return err
		}
		switch format {
		case "sam":
			return sortSam(sortOpts.input, sortOpts.output)
		default:
			return sortVcf(sortOpts.input, sortOpts.output)
		}
	},
}

func init() {
	flags := sortCmd.Flags()
	flags.StringVarP(&sortOpts.input, "input", "i", "/dev/stdin", "input file, or /dev/stdin")
	flags.StringVarP(&sortOpts.output, "output", "o", "/dev/stdout", "output file, or /dev/stdout")
	flags.StringVar(&sortOpts.format, "format", "", "file format (sam or vcf); inferred from the file name when omitted")
	rootCmd.AddCommand(sortCmd)
}

// coordinateBy orders alignments by the @SQ declaration order of the
// header when available, falling back to the name ordering for
// reference names the header does not declare. Unmapped reads sort
// last.
func coordinateBy(hdr *sam.Header) (sam.By, error) {
	names, err := hdr.SQNames()
	if err != nil {
		return nil, err
	}
	rank := make(map[string]int, len(names))
	for i, name := range names {
		rank[name] = i
	}
	refLess := func(rname1, rname2 string) bool {
		if rname1 == "*" || rname2 == "*" {
			return rname2 == "*" && rname1 != "*"
		}
		rank1, ok1 := rank[rname1]
		rank2, ok2 := rank[rname2]
		switch {
		case ok1 && ok2:
			return rank1 < rank2
		case ok1 != ok2:
			return ok1
		default:
			return rname1 < rname2
		}
	}
	return func(aln1, aln2 *sam.Alignment) bool {
		if aln1.RNAME != aln2.RNAME {
			return refLess(aln1.RNAME, aln2.RNAME)
		}
		return aln1.POS < aln2.POS
	}, nil
}

func sortSam(input, output string) error {
	s, err := sam.ReadFile(input)
	if err != nil {
		return err
	}
	by, err := coordinateBy(s.Header)
	if err != nil {
		return err
	}
	by.ParallelStableSort(s.Alignments)
	return writeSam(s, output)
}

func sortVcf(input, output string) error {
	v, err := vcf.ReadFile(input)
	if err != nil {
		return err
	}
	vcf.By(vcf.CoordinateLess).ParallelStableSort(v.Variants)
	return writeVcf(v, output)
}
