// Package candidate implements the autocorrelation-based candidate finder
// that proposes a (period, offset) pair for the periodicity miner to
// refine with a local scored search.
package candidate

import (
	"github.com/xtaci/periodicityd/internal/fftcorr"
	"github.com/xtaci/periodicityd/internal/slotmodel"
)

// Find proposes a (period, offset) candidate from obs, an observation
// sequence of length N(dr). Autocorrelation over-reports near-multiples
// of the true period; tracking the two-lag sum A[i]+A[i-1] rather than
// the raw peak stabilises the pick against off-by-one integerisation of
// a non-integer true period. A flat observation (no two-lag sum is ever
// positive) returns the degenerate "every slot" candidate (1, 0).
func Find(c *fftcorr.Correlator, dr slotmodel.DataRate, obs []byte) (period, offset int, err error) {
	n := dr.Slots()
	a, err := c.Correlate(dr, obs, obs)
	if err != nil {
		return 0, 0, err
	}

	mid := n - 1
	bestSum := 0.0
	found := false
	period = 1
	for i := mid + 2; i <= 2*n-2; i++ {
		sum := a[i] + a[i-1]
		if sum > bestSum {
			bestSum = sum
			found = true
			if a[i] >= a[i-1] {
				period = i - mid
			} else {
				period = i - 1 - mid
			}
		}
	}
	if !found {
		return 1, 0, nil
	}

	// Synthetic impulse train of the chosen period, offset 0, length n:
	// correlating it against obs locates the coarse offset as the lag of
	// the strongest alignment.
	impulse := make([]byte, n)
	for i := 0; i < n; i += period {
		impulse[i] = 1
	}

	b, err := c.Correlate(dr, obs, impulse)
	if err != nil {
		return 0, 0, err
	}

	bestLag := 0
	bestVal := -1.0
	for i := mid; i <= 2*n-2; i++ {
		if b[i] > bestVal {
			bestVal = b[i]
			bestLag = i - mid
		}
	}

	offset = bestLag % period
	return period, offset, nil
}
