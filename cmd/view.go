package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seqtools/seqtext/sam"
	"github.com/seqtools/seqtext/vcf"
)

var viewOpts struct {
	input  string
	output string
	format string
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Decode a SAM or VCF file and re-encode it",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := detectFormat(viewOpts.format, viewOpts.input)
		if err != nil {
			return err
		}
		switch format {
		case "sam":
			return viewSam(viewOpts.input, viewOpts.output)
		default:
			return viewVcf(viewOpts.input, viewOpts.output)
		}
	},
}

func init() {
	flags := viewCmd.Flags()
	flags.StringVarP(&viewOpts.input, "input", "i", "/dev/stdin", "input file, or /dev/stdin")
	flags.StringVarP(&viewOpts.output, "output", "o", "/dev/stdout", "output file, or /dev/stdout")
	flags.StringVar(&viewOpts.format, "format", "", "file format (sam or vcf); inferred from the file name when omitted")
	rootCmd.AddCommand(viewCmd)
}

// writeSam writes a SAM file to the named output, stamping the header
// with an @PG line for this program run.
func writeSam(s *sam.Sam, name string) (err error) {
	s.Header.Append(sam.ProgramLine())
	output, err := sam.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := output.Close(); nerr != nil && err == nil {
			err = nerr
		}
	}()
	return s.Format(output.Writer)
}

func writeVcf(v *vcf.Vcf, name string) (err error) {
	output, err := vcf.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := output.Close(); nerr != nil && err == nil {
			err = nerr
		}
	}()
	return v.Format(output.Writer)
}

func viewSam(input, output string) error {
	s, err := sam.ReadFile(input)
	if err != nil {
		return err
	}
	return writeSam(s, output)
}

func viewVcf(input, output string) error {
	v, err := vcf.ReadFile(input)
	if err != nil {
		return err
	}
	return writeVcf(v, output)
}
