// Package collision implements the multi-pass offset-repair that
// minimises per-slot device overlap across a population of periodicity
// records, subject to each device's bounded-push constraint.
package collision

import (
	"math"
	"math/big"
	"sort"

	"github.com/xtaci/periodicityd/internal/periodicity"
	"github.com/xtaci/periodicityd/internal/slotmodel"
)

// acceptLadder is the sequence of per-pass overlap acceptance thresholds:
// each pass is strictly more lenient than the last.
var acceptLadder = [4]float64{0.00, 0.25, 0.75, math.Inf(1)}

// Avoider rewrites a population's offsets to minimise average per-slot
// overlap, subject to each device's bounded-push constraint.
type Avoider struct {
	// SyncSiblings is a documented, disabled-by-default extension point
	// for moving a device's other (p', o') pairs by the same absolute
	// amount when one of its pairs moves. Avoid does not read it: sibling
	// pairs are never moved, whatever its value.
	SyncSiblings bool
}

// New returns an Avoider with default (disabled) extensions.
func New() *Avoider {
	return &Avoider{}
}

// Avoid mutates each record's O, Change, and ChangeThisRound in place.
// alpha is accepted for interface symmetry but unused: the acceptance
// ladder is the only knob that gates which moves are accepted.
func (a *Avoider) Avoid(records []*periodicity.Record, alpha float64, dr slotmodel.DataRate) error {
	if err := dr.Validate(); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	n := dr.Slots()
	k := dr.MaxPush()

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].P != records[j].P {
			return records[i].P < records[j].P
		}
		return records[i].O < records[j].O
	})

	for _, r := range records {
		r.ChangeThisRound = 0
	}

	occ := make([]int, n)
	for _, r := range records {
		addProgression(occ, r.P, r.O, n, 1)
	}

	for _, accept := range acceptLadder {
		for _, r := range records {
			overlap, visited := measureOverlap(occ, r.P, r.O, n, -1)
			if visited == 0 || overlap < 1 {
				continue
			}

			lo := r.O - r.Change
			hi := lo + k
			bestM := 0
			bestOverlap := 0.0
			found := false
			for m := lo; m <= hi; m++ {
				if m == r.O {
					continue
				}
				co, cvisited := measureOverlap(occ, r.P, m, n, 0)
				if cvisited == 0 {
					continue
				}
				if !found || co < bestOverlap {
					bestOverlap = co
					bestM = m
					found = true
				}
				if co == 0 {
					break
				}
			}
			if !found || bestOverlap > accept {
				continue
			}

			addProgression(occ, r.P, r.O, n, -1)
			addProgression(occ, r.P, bestM, n, 1)

			delta := bestM - r.O
			r.O = normalizeOffset(bestM, r.P)
			r.ChangeThisRound += delta
			r.Change += delta
		}
	}

	applyMinimisation(records, k)
	return nil
}

// measureOverlap averages occ[slot]+selfCorrection over every in-range
// slot of the progression (p, o). selfCorrection is -1 when measuring a
// record's own overlap against an occupancy table that still counts its
// own contribution, and 0 when measuring a candidate offset that has not
// been applied to occ yet.
func measureOverlap(occ []int, p, o, n, selfCorrection int) (avg float64, visited int) {
	oEff := normalizeOffset(o, p)
	sum := 0
	for slot := oEff; slot < n; slot += p {
		sum += occ[slot] + selfCorrection
		visited++
	}
	if visited == 0 {
		return 0, 0
	}
	return float64(sum) / float64(visited), visited
}

// addProgression adds delta to occ at every in-range slot of the
// progression (p, o); o may be any integer, not just one already reduced
// to [0, p).
func addProgression(occ []int, p, o, n, delta int) {
	oEff := normalizeOffset(o, p)
	for slot := oEff; slot < n; slot += p {
		occ[slot] += delta
	}
}

func normalizeOffset(o, p int) int {
	o %= p
	if o < 0 {
		o += p
	}
	return o
}

// applyMinimisation collapses pairs of same-period moves into one
// wherever legal, reducing the number of devices actually moved without
// changing the resulting occupancy table.
func applyMinimisation(records []*periodicity.Record, k int) {
	for i := 0; i < len(records); i++ {
		ri := records[i]
		for j := i + 1; j < len(records); j++ {
			rj := records[j]
			if ri.P != rj.P {
				continue
			}
			if ri.ChangeThisRound == 0 || rj.ChangeThisRound == 0 {
				continue
			}
			if ri.O+rj.ChangeThisRound != rj.O {
				continue
			}
			if ri.Change+rj.ChangeThisRound > k {
				continue
			}

			delta := rj.ChangeThisRound
			ri.O = normalizeOffset(ri.O+delta, ri.P)
			ri.Change += delta
			ri.ChangeThisRound += delta

			rj.O = normalizeOffset(rj.O-delta, rj.P)
			rj.Change -= delta
			rj.ChangeThisRound = 0
		}
	}
}

// OverlapFraction is a diagnostic helper, not on the Avoid main path: the
// fraction of slots two periodicities (p1, o1) and (p2, o2) share over
// one full cycle of their combined period.
func OverlapFraction(p1, p2, o1, o2 int) float64 {
	g := gcd(p1, p2)
	diff := o1 - o2
	if diff < 0 {
		diff = -diff
	}
	if diff%g != 0 {
		return 0.0
	}
	return float64(p2) / float64(lcm(p1, p2, g))
}

func gcd(a, b int) int {
	return int(new(big.Int).GCD(nil, nil, big.NewInt(int64(a)), big.NewInt(int64(b))).Int64())
}

func lcm(a, b, g int) int {
	return a / g * b
}
