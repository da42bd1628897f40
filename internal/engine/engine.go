// Package engine wires the Correlator, Miner, and Avoider into a single
// owned value that a host process constructs once and passes down,
// rather than reaching for a process-wide singleton.
package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/xtaci/periodicityd/internal/collision"
	"github.com/xtaci/periodicityd/internal/fftcorr"
	"github.com/xtaci/periodicityd/internal/miner"
	"github.com/xtaci/periodicityd/internal/periodicity"
	"github.com/xtaci/periodicityd/internal/slotmodel"
)

// DataRate re-exports slotmodel.DataRate for callers that only need the
// engine package.
type DataRate = slotmodel.DataRate

// Periodicity and Pair re-export the shared value types so callers only
// need to import this package.
type (
	Periodicity = periodicity.Record
	Pair        = periodicity.Pair
)

const (
	DR0 = slotmodel.DR0
	DR1 = slotmodel.DR1
	DR2 = slotmodel.DR2
	DR3 = slotmodel.DR3
	DR4 = slotmodel.DR4
	DR5 = slotmodel.DR5
)

// Engine owns the per-data-rate FFT plans and the Avoider. It is not safe for concurrent use against overlapping
// inputs.
type Engine struct {
	correlator *fftcorr.Correlator
	avoider    *collision.Avoider
	closed     bool
}

// New builds all six per-data-rate FFT plan sets eagerly.
func New() (*Engine, error) {
	c, err := fftcorr.New()
	if err != nil {
		return nil, errors.Wrap(err, "engine: building correlator")
	}
	return &Engine{
		correlator: c,
		avoider:    collision.New(),
	}, nil
}

// Close tears down the engine's plan state. It is safe to call more than
// once. The current FFT backend holds no OS-level resources beyond
// ordinary Go heap allocations, but Close exists so callers have one
// deterministic teardown point regardless of backend.
func (e *Engine) Close() error {
	e.closed = true
	return nil
}

// Mine returns the minimal covering set of (period, offset) pairs that
// explains obs, an observation sequence of length N(dr), under the
// false-positive/true-positive trade-off alpha. ctx is checked once,
// before mining starts; a run already under way is not interrupted. The
// core itself never blocks.
func (e *Engine) Mine(ctx context.Context, obs []byte, dr DataRate, alpha float64) ([]Pair, error) {
	if e.closed {
		return nil, errors.New("engine: use after close")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return miner.Mine(e.correlator, dr, obs, alpha)
}

// Avoid rewrites the offsets of records in place to minimise average
// per-slot overlap, subject to each record's bounded-push constraint.
func (e *Engine) Avoid(ctx context.Context, records []*Periodicity, dr DataRate) error {
	if e.closed {
		return errors.New("engine: use after close")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.avoider.Avoid(records, 0, dr)
}

// NewUID mints a fresh opaque device identifier. The core itself never
// generates identifiers — callers supply their own stable uid per device
// — this is a convenience for harnesses (tests, the CLI) that synthesize
// a population rather than receiving one from a real device fleet.
func NewUID() string {
	return uuid.NewString()
}
