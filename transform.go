package feather

import "math"

// Affine matrices are stored as [a, b, c, d, tx, ty], mapping (x, y) to
// (a*x + c*y + tx, b*x + d*y + ty).

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform returns the node's local matrix: the pivot is moved
// to the origin, then the node is scaled, rotated by Rotation radians, and
// placed at (X, Y).
func computeLocalTransform(n *Node) [6]float64 {
	sin, cos := math.Sincos(n.Rotation)
	a, b := cos*n.ScaleX, sin*n.ScaleX
	c, d := -sin*n.ScaleY, cos*n.ScaleY
	return [6]float64{
		a, b, c, d,
		n.X - a*n.PivotX - c*n.PivotY,
		n.Y - b*n.PivotX - d*n.PivotY,
	}
}

// multiplyAffine returns outer applied after inner.
func multiplyAffine(outer, inner [6]float64) [6]float64 {
	x, y := transformPoint(outer, inner[4], inner[5])
	return [6]float64{
		outer[0]*inner[0] + outer[2]*inner[1],
		outer[1]*inner[0] + outer[3]*inner[1],
		outer[0]*inner[2] + outer[2]*inner[3],
		outer[1]*inner[2] + outer[3]*inner[3],
		x, y,
	}
}

// invertAffine returns the inverse of m, or the identity when m collapses
// space onto a line or point.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < 1e-12 {
		return identityTransform
	}
	inv := [6]float64{m[3] / det, -m[1] / det, -m[2] / det, m[0] / det, 0, 0}
	tx, ty := transformPoint(inv, m[4], m[5])
	inv[4], inv[5] = -tx, -ty
	return inv
}

func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform refreshes world matrices and alphas below n. A node
// is recomputed when it is dirty or an ancestor was recomputed in this walk.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// SetPosition moves the node and marks its transform dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
	n.transformDirty = true
}

// MarkDirty schedules a transform refresh after fields such as ScaleX,
// Rotation, Pivot or Alpha were assigned directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldToLocal maps a world point into the node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(n.worldTransform), wx, wy)
}

// LocalToWorld maps a local point into world space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}
