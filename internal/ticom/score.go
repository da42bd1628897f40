// Package ticom implements the TiCom scoring function: a weighted
// trade-off between newly-covered transmissions and newly-covered idle
// slots for a candidate (period, offset) pair.
package ticom

// Score returns the TiCom score of the candidate (period, offset) against
// obs, given the slots already claimed by previously-selected candidates
// (covered[x] != 0) and the caller's false-positive/true-positive
// trade-off alpha. absT and absF are the total count of 1s and 0s in the
// original, unfiltered observation; when either is zero, the term it
// divides is taken as 0 in place of the undefined 0/0 (which only happens for a flat
// all-1 or all-0 observation, where the corresponding term contributes no
// information either way).
func Score(period, offset int, covered, obs []byte, alpha float64, absT, absF int) float64 {
	var tp, fp int
	for x := offset; x < len(obs); x += period {
		if covered[x] != 0 {
			continue
		}
		if obs[x] == 1 {
			tp++
		} else {
			fp++
		}
	}

	var tpTerm, fpTerm float64
	if absT > 0 {
		tpTerm = float64(tp) / float64(absT)
	}
	if absF > 0 {
		fpTerm = float64(fp) / float64(absF)
	}
	return (1-alpha)*tpTerm - alpha*fpTerm
}
