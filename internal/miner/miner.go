// Package miner implements the greedy periodicity-mining loop: repeated
// rounds of candidate-finding, a local scored search around the
// candidate, and subset pruning, until the scorer can no longer justify
// adding another (period, offset) pair.
package miner

import (
	"github.com/xtaci/periodicityd/internal/candidate"
	"github.com/xtaci/periodicityd/internal/fftcorr"
	"github.com/xtaci/periodicityd/internal/periodicity"
	"github.com/xtaci/periodicityd/internal/slotmodel"
	"github.com/xtaci/periodicityd/internal/ticom"
)

// localSearchWidth is W: the local candidate window spans up to 2W
// offsets around the candidate finder's coarse pick.
const localSearchWidth = 10

// Mine returns a minimal covering set of (period, offset) pairs that
// explains obs under the alpha false-positive/true-positive trade-off.
// obs must have length N(dr); it is never mutated.
func Mine(c *fftcorr.Correlator, dr slotmodel.DataRate, obs []byte, alpha float64) ([]periodicity.Pair, error) {
	if err := slotmodel.ValidateObservation(obs, dr); err != nil {
		return nil, err
	}
	n := dr.Slots()

	var absT, absF int
	for _, b := range obs {
		if b != 0 {
			absT++
		} else {
			absF++
		}
	}

	filter := make([]byte, n)
	copy(filter, obs)
	covered := make([]byte, n)
	var result []periodicity.Pair

	for hasOnes(filter) {
		p, oRough, err := candidate.Find(c, dr, filter)
		if err != nil {
			return nil, err
		}

		window := localWindow(oRough, p, localSearchWidth)

		bestIdx := 0
		bestScore := ticom.Score(p, window[0], covered, obs, alpha, absT, absF)
		for idx := 1; idx < len(window); idx++ {
			s := ticom.Score(p, window[idx], covered, obs, alpha, absT, absF)
			if s > bestScore {
				bestScore = s
				bestIdx = idx
			}
		}

		if bestScore <= 0 {
			break
		}
		chosenOffset := window[bestIdx]

		result = append(result, periodicity.Pair{P: p, O: chosenOffset})

		for x := chosenOffset; x < n; x += p {
			if covered[x] == 0 {
				covered[x] = 1
				filter[x] = 0
			}
		}

		result = pruneSubsumed(result, p, chosenOffset)
	}

	return result, nil
}

func hasOnes(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return true
		}
	}
	return false
}

// localWindow builds up to 2*w distinct offsets on the ring [0, p),
// centered on oRough, as a single modular walk rather than separate
// wrap/no-wrap cases, since wrapping at either end of the ring is the
// same operation on Z_p.
func localWindow(oRough, p, w int) []int {
	offsets := make([]int, 0, 2*w)
	seen := make(map[int]bool, 2*w)
	for k := 0; k < 2*w; k++ {
		o := ((oRough-w+k)%p + p) % p
		if !seen[o] {
			seen[o] = true
			offsets = append(offsets, o)
		}
	}
	return offsets
}

// pruneSubsumed drops any previously-selected pair whose progression is
// entirely contained in the one just chosen (chosenP, chosenO).
func pruneSubsumed(s []periodicity.Pair, chosenP, chosenO int) []periodicity.Pair {
	kept := s[:0:0]
	for _, sp := range s {
		if sp.P == chosenP && sp.O == chosenO {
			kept = append(kept, sp)
			continue
		}
		if sp.P%chosenP == 0 && sp.O%chosenP == chosenO {
			continue
		}
		kept = append(kept, sp)
	}
	return kept
}
