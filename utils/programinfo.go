package utils

const (
	// ProgramName is "seqtext"
	ProgramName = "seqtext"

	// ProgramVersion is the version of the seqtext binary
	ProgramVersion = "1.0.0"

	// ProgramURL is the repository for the seqtext source code
	ProgramURL = "http://github.com/seqtools/seqtext"
)
