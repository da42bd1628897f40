// Package periodicity holds the shared value types the miner, collision
// avoider, and engine pass between each other: a bare (period, offset)
// pair and the richer per-device record the collision avoider mutates.
package periodicity

// Pair is a periodicity (p, o): the arithmetic progression of slot
// indices o, o+p, o+2p, ... The miner's invariant o in [0, p) holds for
// every Pair it returns.
type Pair struct {
	P int `json:"p"`
	O int `json:"o"`
}

// Record is a device periodicity record: a Pair plus the bookkeeping the
// collision avoider needs to enforce a bounded cumulative displacement.
//
// Change is the cumulative absolute displacement from the original
// offset, unsigned and bounded by K(DR). ChangeThisRound is the signed
// displacement applied during the current Avoid invocation; it is reset
// to 0 at the start of every call and left non-zero only on records that
// were actually moved.
type Record struct {
	P               int    `json:"p"`
	O               int    `json:"o"`
	UID             string `json:"uid"`
	Change          int    `json:"change"`
	ChangeThisRound int    `json:"changeThisRound"`
}
