// Package slotmodel holds the fixed per-data-rate constants the rest of
// the periodicity-mining core is parameterised by: how many slots a day
// is divided into, how long a slot lasts, and how far a device's offset
// may be pushed by the collision avoider.
package slotmodel

import "github.com/pkg/errors"

// DataRate indexes the six LoRaWAN data rates this engine understands.
type DataRate uint8

const (
	DR0 DataRate = iota
	DR1
	DR2
	DR3
	DR4
	DR5

	numDataRates = 6
)

// perDR holds the per-data-rate slot geometry, keyed by DataRate. These
// are sized for a 64 byte packet and a 10s worst-case scheduling delay.
type perDR struct {
	slots    int     // N(DR): slots per day
	slotSize float64 // seconds per slot
	maxPush  int     // K(DR): maximum absolute offset displacement
}

var table = [numDataRates]perDR{
	DR0: {slots: 1986, slotSize: 1.81269, maxPush: 5},
	DR1: {slots: 3972, slotSize: 0.90634, maxPush: 11},
	DR2: {slots: 7944, slotSize: 0.45317, maxPush: 22},
	DR3: {slots: 15888, slotSize: 0.22659, maxPush: 44},
	DR4: {slots: 31776, slotSize: 0.11329, maxPush: 88},
	DR5: {slots: 63552, slotSize: 0.05665, maxPush: 176},
}

// Valid reports whether dr names one of the six supported data rates.
func (dr DataRate) Valid() bool {
	return int(dr) < numDataRates
}

// Validate rejects a DataRate that is out of range.
func (dr DataRate) Validate() error {
	if !dr.Valid() {
		return errors.Errorf("slotmodel: invalid data rate %d", dr)
	}
	return nil
}

// Slots returns N(DR), the number of slots in a day at this data rate.
func (dr DataRate) Slots() int {
	return table[dr].slots
}

// SlotSize returns the duration, in seconds, of a single slot.
func (dr DataRate) SlotSize() float64 {
	return table[dr].slotSize
}

// MaxPush returns K(DR), the maximum absolute offset displacement the
// collision avoider may apply to a device at this data rate.
func (dr DataRate) MaxPush() int {
	return table[dr].maxPush
}

// ValidateObservation rejects an observation sequence whose length does
// not match N(DR), the second of the core's two boundary errors.
func ValidateObservation(obs []byte, dr DataRate) error {
	if err := dr.Validate(); err != nil {
		return err
	}
	if len(obs) != dr.Slots() {
		return errors.Errorf("slotmodel: observation length %d, want %d for dr %d", len(obs), dr.Slots(), dr)
	}
	return nil
}
