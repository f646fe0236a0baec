package feather

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw renders the scene tree onto screen in painter order.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	drawNode(screen, s.root)
}

// geoMFromAffine converts [a, b, c, d, tx, ty] to an ebiten.GeoM.
func geoMFromAffine(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// tint returns the premultiplied color scale for a node.
func tint(n *Node) ebiten.ColorScale {
	a := n.Color.A * n.worldAlpha
	var cs ebiten.ColorScale
	cs.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
	return cs
}

func drawNode(dst *ebiten.Image, n *Node) {
	if !n.Visible {
		return
	}
	switch n.Type {
	case NodeTypeRect:
		if n.Width > 0 && n.Height > 0 {
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(n.Width, n.Height)
			op.GeoM.Concat(geoMFromAffine(n.worldTransform))
			op.ColorScale = tint(n)
			dst.DrawImage(solidImage(), &op)
		}
	case NodeTypeSprite:
		if n.customImage != nil {
			var op ebiten.DrawImageOptions
			op.GeoM = geoMFromAffine(n.worldTransform)
			op.ColorScale = tint(n)
			dst.DrawImage(n.customImage, &op)
		}
	case NodeTypeLabel:
		if n.Text != "" {
			x, y := n.LocalToWorld(0, 0)
			ebitenutil.DebugPrintAt(dst, n.Text, int(x), int(y))
		}
	}
	for _, child := range paintOrder(n) {
		drawNode(dst, child)
	}
}
