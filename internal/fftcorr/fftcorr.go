// Package fftcorr implements the FFT-based cross/auto-correlation the
// periodicity miner's candidate finder is built on. One plan set is
// built per data rate at construction and reused for every call; plans
// are not safe to share across goroutines, so each is guarded by its
// own mutex, held by Correlate for the whole transform.
package fftcorr

import (
	"errors"
	"math"
	"sync"

	algofft "github.com/cwbudde/algo-fft"
	pkgerrors "github.com/pkg/errors"

	"github.com/xtaci/periodicityd/internal/slotmodel"
)

// plan holds the zero-padded transform buffers and fast/safe FFT plan
// pair for one data rate. The padded length is M = 3N-1, long enough
// that the linear cross-correlation of two length-N sequences never
// wraps around the circular convolution computed by the FFT.
type plan struct {
	mu   sync.Mutex
	n    int
	m    int
	fast *algofft.FastPlanReal64
	safe *algofft.PlanRealT[float64, complex128]

	bufX  []float64
	bufY  []float64
	specX []complex128
	specY []complex128
	corr  []float64
}

func newPlan(n int) (*plan, error) {
	m := 3*n - 1
	p := &plan{
		n:     n,
		m:     m,
		bufX:  make([]float64, m),
		bufY:  make([]float64, m),
		specX: make([]complex128, m/2+1),
		specY: make([]complex128, m/2+1),
		corr:  make([]float64, m),
	}

	fast, err := algofft.NewFastPlanReal64(m)
	if err == nil {
		p.fast = fast
	} else if !errors.Is(err, algofft.ErrNotImplemented) {
		return nil, pkgerrors.Wrapf(err, "fftcorr: fast plan for length %d", m)
	}

	safe, err := algofft.NewPlanReal64(m)
	if err != nil {
		if p.fast == nil {
			return nil, pkgerrors.Wrapf(err, "fftcorr: safe plan for length %d", m)
		}
	} else {
		p.safe = safe
	}

	return p, nil
}

func (p *plan) forward(dst []complex128, src []float64) error {
	if p.fast != nil {
		p.fast.Forward(dst, src)
		return nil
	}
	return p.safe.Forward(dst, src)
}

func (p *plan) inverse(dst []float64, src []complex128) error {
	if p.fast != nil {
		p.fast.Inverse(dst, src)
		return nil
	}
	return p.safe.Inverse(dst, src)
}

// Correlator owns one FFT plan per data rate.
type Correlator struct {
	plans [6]*plan
}

// New builds all six per-data-rate plan sets eagerly.
func New() (*Correlator, error) {
	c := &Correlator{}
	for dr := slotmodel.DR0; int(dr) < len(c.plans); dr++ {
		p, err := newPlan(dr.Slots())
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "fftcorr: building plan for dr %d", dr)
		}
		c.plans[dr] = p
	}
	return c, nil
}

// Correlate returns the magnitude cross-correlation of x and y, both of
// length N(dr). The result has length 2N-1; z[k] is the magnitude of the
// linear cross-correlation at lag k-(N-1). Autocorrelation is
// Correlate(dr, x, x); its zero-lag peak sits at index N-1.
func (c *Correlator) Correlate(dr slotmodel.DataRate, x, y []byte) ([]float64, error) {
	if err := slotmodel.ValidateObservation(x, dr); err != nil {
		return nil, err
	}
	if err := slotmodel.ValidateObservation(y, dr); err != nil {
		return nil, err
	}

	p := c.plans[dr]
	p.mu.Lock()
	defer p.mu.Unlock()

	n := p.n
	for i := 0; i < p.m; i++ {
		p.bufX[i] = 0
		p.bufY[i] = 0
	}
	for i := 0; i < n; i++ {
		p.bufX[i] = float64(x[i])
		// Reverse y before the forward transform: convolving x with a
		// reversed y turns the FFT's natural convolution product into a
		// cross-correlation.
		p.bufY[i] = float64(y[n-1-i])
	}

	if err := p.forward(p.specX, p.bufX); err != nil {
		return nil, pkgerrors.Wrap(err, "fftcorr: forward transform of x")
	}
	if err := p.forward(p.specY, p.bufY); err != nil {
		return nil, pkgerrors.Wrap(err, "fftcorr: forward transform of y")
	}
	for i := range p.specX {
		p.specX[i] *= p.specY[i]
	}
	if err := p.inverse(p.corr, p.specX); err != nil {
		return nil, pkgerrors.Wrap(err, "fftcorr: inverse transform")
	}

	outLen := 2*n - 1
	z := make([]float64, outLen)
	m := float64(p.m)
	for k := 0; k < outLen; k++ {
		z[k] = math.Abs(p.corr[k]) / m
	}
	return z, nil
}
