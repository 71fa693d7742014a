// Package cmd implements the seqtext command line interface.
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seqtools/seqtext/utils"
)

var rootCmd = &cobra.Command{
	Use:          utils.ProgramName,
	Short:        "A toolkit for SAM and VCF text files",
	Long:         "seqtext reads, transforms, and writes SAM and VCF text files.\nSee " + utils.ProgramURL + " for documentation.",
	Version:      utils.ProgramVersion,
	SilenceUsage: true,
}

// Execute runs the command line interface.
func Execute() error {
	return rootCmd.Execute()
}

// detectFormat resolves the file format from an explicit --format flag
// or, failing that, from the file name extension, ignoring a trailing
// ".gz".
func detectFormat(format, name string) (string, error) {
	if format != "" {
		switch format {
		case "sam", "vcf":
			return format, nil
		}
		return "", fmt.Errorf("unknown file format %v", format)
	}
	if filepath.Ext(name) == ".gz" {
		name = strings.TrimSuffix(name, ".gz")
	}
	switch filepath.Ext(name) {
	case ".sam":
		return "sam", nil
	case ".vcf":
		return "vcf", nil
	}
	return "", fmt.Errorf("cannot determine the file format of %v; use --format", name)
}
