package style

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrstyle/internal/geometry"
)

// EyeDrawer paints whole position markers. Each marker is drawn in one call
// instead of module by module.
type EyeDrawer interface {
	DrawNW(dc *gg.Context, eye geometry.Eye)
	DrawNE(dc *gg.Context, eye geometry.Eye)
	DrawSW(dc *gg.Context, eye geometry.Eye)
}

// DrawEyes paints the three markers of g with d. Calling it twice on the same
// context draws every marker twice.
func DrawEyes(dc *gg.Context, g geometry.Geometry, d EyeDrawer) {
	d.DrawNW(dc, g.Eye(geometry.NW))
	d.DrawNE(dc, g.Eye(geometry.NE))
	d.DrawSW(dc, g.Eye(geometry.SW))
}

// EyesByName resolves a marker style. The empty name means no whole-shape
// drawer; markers are then drawn module by module.
func EyesByName(name string) (EyeDrawer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case "rounded":
		return RoundedEyes{}, nil
	case "square":
		return SquareEyes{}, nil
	case "circle":
		return CircleEyes{}, nil
	}
	return nil, fmt.Errorf("unknown eye style %q", name)
}

// RoundedEyes draws a one module wide ring with a two module corner radius and
// a filled eyeball with a one module radius. The corner facing the code body
// stays square on both.
type RoundedEyes struct{}

func (d RoundedEyes) DrawNW(dc *gg.Context, eye geometry.Eye) { d.draw(dc, eye) }
func (d RoundedEyes) DrawNE(dc *gg.Context, eye geometry.Eye) { d.draw(dc, eye) }
func (d RoundedEyes) DrawSW(dc *gg.Context, eye geometry.Eye) { d.draw(dc, eye) }

func (RoundedEyes) draw(dc *gg.Context, eye geometry.Eye) {
	unit := float64(eye.Unit)
	rounded := eye.Rounded()
	fillRing(dc, toRectF(eye.Outer), unit, 2*unit, rounded)
	fillRoundedRect(dc, toRectF(eye.Inner), unit, rounded)
}

// SquareEyes draws the plain square marker.
type SquareEyes struct{}

func (d SquareEyes) DrawNW(dc *gg.Context, eye geometry.Eye) { d.draw(dc, eye) }
func (d SquareEyes) DrawNE(dc *gg.Context, eye geometry.Eye) { d.draw(dc, eye) }
func (d SquareEyes) DrawSW(dc *gg.Context, eye geometry.Eye) { d.draw(dc, eye) }

func (SquareEyes) draw(dc *gg.Context, eye geometry.Eye) {
	fillRing(dc, toRectF(eye.Outer), float64(eye.Unit), 0, geometry.Corners{})
	fillRoundedRect(dc, toRectF(eye.Inner), 0, geometry.Corners{})
}

// CircleEyes draws a circular ring around a disc.
type CircleEyes struct{}

func (d CircleEyes) DrawNW(dc *gg.Context, eye geometry.Eye) { d.draw(dc, eye) }
func (d CircleEyes) DrawNE(dc *gg.Context, eye geometry.Eye) { d.draw(dc, eye) }
func (d CircleEyes) DrawSW(dc *gg.Context, eye geometry.Eye) { d.draw(dc, eye) }

func (CircleEyes) draw(dc *gg.Context, eye geometry.Eye) {
	outer := toRectF(eye.Outer)
	cx, cy := (outer.x0+outer.x1)/2, (outer.y0+outer.y1)/2
	r := outer.w() / 2

	dc.SetFillRule(gg.FillRuleEvenOdd)
	dc.NewSubPath()
	dc.DrawCircle(cx, cy, r)
	dc.NewSubPath()
	dc.DrawCircle(cx, cy, r-float64(eye.Unit))
	dc.Fill()
	dc.SetFillRule(gg.FillRuleWinding)

	dc.DrawCircle(cx, cy, toRectF(eye.Inner).w()/2)
	dc.Fill()
}
