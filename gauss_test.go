package feather

import (
	"errors"
	"math"
	"testing"
)

// closedForm is the exact integral of the bell from a to b.
func closedForm(g *Gauss, a, b float64) float64 {
	sigma, phase := g.Sigma.Get(), g.Phase.Get()
	k := g.Swing.Get() * sigma * math.Sqrt(math.Pi/2)
	erf := func(x float64) float64 { return math.Erf((x - phase) / (sigma * math.Sqrt2)) }
	return k * (erf(b) - erf(a))
}

func TestIntegratePanels(t *testing.T) {
	tests := []struct {
		name  string
		f     func(float64) float64
		a, b  float64
		width float64
		want  float64
	}{
		{"cubic", func(x float64) float64 { return x * x * x }, 0, 2, 0.5, 4},
		{"sine", math.Sin, 0, math.Pi, 1, 2},
		{"single panel", math.Sin, 0, math.Pi, 0, 2},
		{"reversed", math.Sin, math.Pi, 0, 1, -2},
		{"empty", math.Sin, 1, 1, 1, 0},
		{"panel cap", math.Cos, 0, 1000, 1e-9, math.Sin(1000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := integratePanels(tt.f, tt.a, tt.b, tt.width)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("integral = %.15g, want %.15g", got, tt.want)
			}
		})
	}
}

func TestGaussValue(t *testing.T) {
	g := NewGauss(128, 72, 88)
	g.Phase.Set(300)

	assertNear(t, "peak", g.Value(300), 160)
	assertNear(t, "far", g.Value(300+100*128), 88)
	want := 72*math.Exp(-0.5) + 88
	assertNear(t, "one sigma", g.Value(300-128), want)
}

func TestGaussIntegrateMatchesClosedForm(t *testing.T) {
	g := NewGauss(DefaultSigma, DefaultSwing, DefaultOffset)
	tests := []struct {
		name     string
		phase    float64
		from, to float64
	}{
		{"one sigma", 0, 0, 128},
		{"negative side", 0, 0, -200},
		{"off phase", 250, 100, 400},
		{"wide", 0, -1000, 1000},
		{"to bound", 200, 200, DefaultIntegrationBound},
		{"from far left", 200, -DefaultIntegrationBound, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Phase.Set(tt.phase)
			got := g.Integrate(tt.from, tt.to)
			want := closedForm(g, tt.from, tt.to)
			if math.Abs(got-want) > 1e-6*math.Max(1, math.Abs(want)) {
				t.Errorf("Integrate(%v, %v) = %.12g, want %.12g", tt.from, tt.to, got, want)
			}
		})
	}
}

func TestGaussIntegrateConvergesBeforeBound(t *testing.T) {
	g := NewGauss(DefaultSigma, DefaultSwing, DefaultOffset)
	g.Phase.Set(320)

	half := DefaultSwing * DefaultSigma * math.Sqrt(math.Pi/2)
	for _, bound := range []float64{320 + 10*DefaultSigma, 1e6, DefaultIntegrationBound, math.MaxFloat64} {
		got := g.Integrate(320, bound)
		if math.Abs(got-half) > 1e-6*half {
			t.Errorf("Integrate(phase, %g) = %.12g, want %.12g", bound, got, half)
		}
	}
}

func TestGaussIntegrateSymmetry(t *testing.T) {
	g := NewGauss(40, 10, 0)
	g.Phase.Set(-17)
	for _, d := range []float64{0, 1, 13, 40, 99, 500} {
		p := g.Phase.Get()
		right := g.Integrate(p, p+d)
		left := g.Integrate(p, p-d)
		if math.Abs(right+left) > 1e-7 {
			t.Errorf("d=%v: integrate(p, p+d)=%v, integrate(p, p-d)=%v", d, right, left)
		}
	}
}

func TestGaussIntegrateSigned(t *testing.T) {
	g := NewGauss(50, 1, 0)
	a := g.Integrate(-30, 70)
	b := g.Integrate(70, -30)
	if a <= 0 || math.Abs(a+b) > 1e-12 {
		t.Errorf("Integrate(-30, 70)=%v, Integrate(70, -30)=%v", a, b)
	}
}

func TestGaussDegenerateSigma(t *testing.T) {
	for _, sigma := range []float64{0, -5, math.NaN()} {
		g := NewGauss(sigma, 72, 88)
		if err := g.Validate(); !errors.Is(err, ErrInvalidSigma) {
			t.Errorf("sigma=%v: Validate = %v", sigma, err)
		}
		if got := g.Integrate(0, DefaultIntegrationBound); got != 0 {
			t.Errorf("sigma=%v: Integrate = %v, want 0", sigma, got)
		}
		assertNear(t, "value", g.Value(0), 88)
	}
	if err := NewGauss(1, 0, 0).Validate(); err != nil {
		t.Errorf("valid sigma: %v", err)
	}
}
