// Package style draws QR modules and position markers onto a gg context.
//
// Drawers use the context's current colour; the caller picks the foreground
// before a pass.
package style

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrstyle/internal/geometry"
)

type rectF struct {
	x0, y0, x1, y1 float64
}

func toRectF(r image.Rectangle) rectF {
	return rectF{float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)}
}

func (r rectF) inset(d float64) rectF {
	return rectF{r.x0 + d, r.y0 + d, r.x1 - d, r.y1 - d}
}

func (r rectF) w() float64 { return r.x1 - r.x0 }
func (r rectF) h() float64 { return r.y1 - r.y0 }

// roundedRectPath adds a closed rounded rectangle subpath. Corners not set in
// rounded stay square. The radius is clamped to half the shorter edge.
func roundedRectPath(dc *gg.Context, r rectF, radius float64, rounded geometry.Corners) {
	radius = math.Max(0, math.Min(radius, math.Min(r.w(), r.h())/2))
	rad := func(c geometry.Corner) float64 {
		if rounded[c] {
			return radius
		}
		return 0
	}
	tl, tr, br, bl := rad(geometry.TopLeft), rad(geometry.TopRight), rad(geometry.BottomRight), rad(geometry.BottomLeft)

	dc.NewSubPath()
	dc.MoveTo(r.x0+tl, r.y0)
	dc.LineTo(r.x1-tr, r.y0)
	corner(dc, r.x1-tr, r.y0+tr, tr, -math.Pi/2, 0, r.x1, r.y0)
	dc.LineTo(r.x1, r.y1-br)
	corner(dc, r.x1-br, r.y1-br, br, 0, math.Pi/2, r.x1, r.y1)
	dc.LineTo(r.x0+bl, r.y1)
	corner(dc, r.x0+bl, r.y1-bl, bl, math.Pi/2, math.Pi, r.x0, r.y1)
	dc.LineTo(r.x0, r.y0+tl)
	corner(dc, r.x0+tl, r.y0+tl, tl, math.Pi, 3*math.Pi/2, r.x0, r.y0)
	dc.ClosePath()
}

// corner draws a quarter arc around (cx, cy), or runs straight to the square
// corner (sx, sy) when the radius is zero.
func corner(dc *gg.Context, cx, cy, radius, a1, a2, sx, sy float64) {
	if radius <= 0 {
		dc.LineTo(sx, sy)
		return
	}
	dc.DrawArc(cx, cy, radius, a1, a2)
}

func fillRoundedRect(dc *gg.Context, r rectF, radius float64, rounded geometry.Corners) {
	roundedRectPath(dc, r, radius, rounded)
	dc.Fill()
}

// fillRing fills the band between r and r inset by width. The inner edge keeps
// the same square corners with the radius reduced by the band width.
func fillRing(dc *gg.Context, r rectF, width, radius float64, rounded geometry.Corners) {
	dc.SetFillRule(gg.FillRuleEvenOdd)
	roundedRectPath(dc, r, radius, rounded)
	roundedRectPath(dc, r.inset(width), math.Max(0, radius-width), rounded)
	dc.Fill()
	dc.SetFillRule(gg.FillRuleWinding)
}
