// seqtext is a toolkit for reading, transforming, and writing SAM and
// VCF text files.
//
// See https://github.com/seqtools/seqtext for documentation of the
// tool, and the package documentation for the API.
package main

import (
	"os"

	"github.com/seqtools/seqtext/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
