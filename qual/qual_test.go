package qual

import (
	"math"
	"testing"
)

func TestErrorProb(t *testing.T) {
	if ErrorProb(0) != 1 {
		t.Error("ErrorProb 0 failed")
	}
	if math.Abs(ErrorProb(10)-0.1) > 1e-15 {
		t.Error("ErrorProb 10 failed")
	}
	if math.Abs(ErrorProb(30)-0.001) > 1e-15 {
		t.Error("ErrorProb 30 failed")
	}
	for q := byte(1); q < 128; q++ {
		if ErrorProb(q) >= ErrorProb(q-1) {
			t.Error("ErrorProb monotonicity failed")
		}
	}
}

func TestErrorProbLog10(t *testing.T) {
	if ErrorProbLog10(10) != -1 {
		t.Error("ErrorProbLog10 failed")
	}
	if ErrorProbLog10(0) != 0 {
		t.Error("ErrorProbLog10 0 failed")
	}
}

func TestProbLog10(t *testing.T) {
	if ProbLog10(0) != math.Inf(-1) {
		t.Error("ProbLog10 0 failed")
	}
	if math.Abs(ProbLog10(10)-math.Log10(0.9)) > 1e-15 {
		t.Error("ProbLog10 failed")
	}
}

func TestPhredScaleErrorRate(t *testing.T) {
	if math.Abs(PhredScaleErrorRate(0.001)-30) > 1e-9 {
		t.Error("PhredScaleErrorRate failed")
	}
	for q := byte(1); q < 60; q++ {
		if math.Abs(PhredScaleErrorRate(ErrorProb(q))-float64(q)) > 1e-9 {
			t.Error("PhredScaleErrorRate inverse failed")
		}
	}
}
