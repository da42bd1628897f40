package ticom

import "testing"

func TestScorePerfectCoverageAtAlphaHalf(t *testing.T) {
	obs := []byte{1, 0, 1, 0, 1, 0, 1, 0}
	covered := make([]byte, len(obs))

	got := Score(2, 0, covered, obs, 0.5, 4, 4)
	want := 0.5*1.0 - 0.5*0.0
	if got != want {
		t.Fatalf("Score = %v, want %v", got, want)
	}
}

func TestScorePenalisesFalsePositives(t *testing.T) {
	obs := []byte{1, 0, 1, 0, 1, 0, 1, 0}
	covered := make([]byte, len(obs))

	// offset 1 hits every zero slot: all false positives, no true positives.
	got := Score(2, 1, covered, obs, 0.5, 4, 4)
	want := 0.5*0.0 - 0.5*1.0
	if got != want {
		t.Fatalf("Score = %v, want %v", got, want)
	}
}

func TestScoreIgnoresAlreadyCoveredSlots(t *testing.T) {
	obs := []byte{1, 0, 1, 0, 1, 0, 1, 0}
	covered := []byte{1, 0, 1, 0, 0, 0, 0, 0}

	got := Score(2, 0, covered, obs, 0.5, 4, 4)
	// only x=4 and x=6 are uncovered and both are true positives.
	want := 0.5 * (2.0 / 4.0)
	if got != want {
		t.Fatalf("Score = %v, want %v", got, want)
	}
}

func TestScoreHandlesZeroDenominatorsWithoutDividingByZero(t *testing.T) {
	obs := make([]byte, 8)
	covered := make([]byte, 8)

	got := Score(2, 0, covered, obs, 0.5, 0, 8)
	if got != 0 {
		t.Fatalf("Score with absT=0 = %v, want 0", got)
	}
}
