package feather

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	// quadPoints is the Gauss-Legendre order used on every panel.
	quadPoints = 16
	// quadMaxPanels bounds the number of panels integratePanels splits an
	// interval into.
	quadMaxPanels = 4 * gaussSupport
)

// integratePanels integrates f over the closed interval [a, b] with a
// composite Gauss-Legendre rule: the interval is cut into equal panels no
// wider than width (up to quadMaxPanels of them) and each panel gets a
// fixed quadPoints-point rule. The result is signed.
func integratePanels(f func(float64) float64, a, b, width float64) float64 {
	if a == b {
		return 0
	}
	if a > b {
		return -integratePanels(f, b, a, width)
	}
	panels := 1.0
	if width > 0 {
		panels = math.Min(math.Max(math.Ceil((b-a)/width), 1), quadMaxPanels)
	}
	n := int(panels)
	step := (b - a) / panels
	var sum float64
	for i := range n {
		lo := a + float64(i)*step
		hi := b
		if i < n-1 {
			hi = lo + step
		}
		sum += quad.Fixed(f, lo, hi, quadPoints, quad.Legendre{}, 0)
	}
	return sum
}
