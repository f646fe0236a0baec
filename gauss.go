package feather

import (
	"errors"
	"math"
)

// gaussSupport is how many sigmas from the phase the falloff stays above
// float64 underflow: exp(-40²/2) is far below the smallest denormal.
const gaussSupport = 40

// ErrInvalidSigma is returned by Gauss.Validate when Sigma is not positive.
var ErrInvalidSigma = errors.New("feather: gauss sigma must be positive")

// Gauss is a bell-shaped falloff centered on Phase:
//
//	value(x) = Swing * exp(-(x-Phase)² / (2*Sigma²)) + Offset
//
// Every parameter is an observable property.
type Gauss struct {
	Sigma  *Property[float64]
	Swing  *Property[float64]
	Offset *Property[float64]
	Phase  *Property[float64]
}

// NewGauss returns a falloff with the given spread, peak height above the
// baseline, and baseline. Phase starts at 0.
func NewGauss(sigma, swing, offset float64) *Gauss {
	return &Gauss{
		Sigma:  NewProperty(sigma),
		Swing:  NewProperty(swing),
		Offset: NewProperty(offset),
		Phase:  NewProperty(0.0),
	}
}

// Validate reports a configuration that would divide by zero.
func (g *Gauss) Validate() error {
	if !(g.Sigma.Get() > 0) {
		return ErrInvalidSigma
	}
	return nil
}

// Value returns the falloff magnitude at x, including the baseline offset.
// With a non-positive sigma only the baseline remains.
func (g *Gauss) Value(x float64) float64 {
	return g.bell(x) + g.Offset.Get()
}

// bell is the falloff without the baseline.
func (g *Gauss) bell(x float64) float64 {
	sigma := g.Sigma.Get()
	if !(sigma > 0) {
		return 0
	}
	d := x - g.Phase.Get()
	return g.Swing.Get() * math.Exp(-(d*d)/(2*sigma*sigma))
}

// Integrate returns the definite integral of the falloff, baseline
// excluded, from from to to. The integral is signed: swapping the bounds
// negates it. Bounds may be arbitrarily far out (math.MaxInt32 stands in for
// infinity); the interval is clipped to where the integrand is
// representable and integrated in sigma-wide panels.
func (g *Gauss) Integrate(from, to float64) float64 {
	sigma := g.Sigma.Get()
	if !(sigma > 0) || from == to {
		return 0
	}
	sign := 1.0
	if from > to {
		from, to = to, from
		sign = -1
	}
	phase := g.Phase.Get()
	lo := math.Max(from, phase-gaussSupport*sigma)
	hi := math.Min(to, phase+gaussSupport*sigma)
	if lo >= hi {
		return 0
	}
	return sign * integratePanels(g.bell, lo, hi, sigma)
}
