// Package qual maps Phred quality scores to error probabilities.
//
// A Phred score q encodes an error probability of 10^(q/-10). Scores
// appear in SAM QUAL strings as ASCII characters offset by '!'.
package qual

import "math"

// AsciiOffset is the offset between a Phred score and its ASCII
// representation in SAM/FASTQ quality strings.
const AsciiOffset = '!'

var errorProbCache [128]float64

func init() {
	for q := range errorProbCache {
		errorProbCache[q] = math.Pow(10, float64(q)/-10.0)
	}
}

// ErrorProb returns the error probability encoded by the given Phred
// score. The score must be below 128.
func ErrorProb(q byte) float64 {
	return errorProbCache[q]
}

// ErrorProbLog10 returns the log10 of the error probability encoded by
// the given Phred score.
func ErrorProbLog10(q float64) float64 {
	return q / -10.0
}

// ProbLog10 returns the log10 probability that a base call with the
// given Phred score is correct.
func ProbLog10(q byte) float64 {
	return math.Log10(1 - ErrorProb(q))
}

// PhredScaleErrorRate converts an error rate back to the Phred scale.
func PhredScaleErrorRate(errorRate float64) float64 {
	return -10.0 * math.Log10(errorRate)
}
