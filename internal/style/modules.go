package style

import (
	"fmt"
	"image"
	"strings"

	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrstyle/internal/geometry"
	"github.com/cristianadrielbraun/qrstyle/internal/matrix"
)

// ModuleDrawer paints a single module into its pixel box.
type ModuleDrawer interface {
	// NeedsNeighbors reports whether Draw looks past the centre of cell.
	NeedsNeighbors() bool
	// Draw paints the module. Drawers ignore inactive cells.
	Draw(dc *gg.Context, box image.Rectangle, cell matrix.Neighbors)
}

// Default ratios of the stock drawers.
const (
	DefaultGapRatio    = 0.8
	DefaultRadiusRatio = 1.0
	DefaultBarShrink   = 0.8
)

// ModuleByName resolves a module style.
func ModuleByName(name string) (ModuleDrawer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "square":
		return Square{}, nil
	case "gapped":
		return GappedSquare{Ratio: DefaultGapRatio}, nil
	case "circle":
		return Circle{}, nil
	case "rounded":
		return Rounded{RadiusRatio: DefaultRadiusRatio}, nil
	case "vbars", "vertical-bars":
		return VerticalBars{Shrink: DefaultBarShrink}, nil
	case "hbars", "horizontal-bars":
		return HorizontalBars{Shrink: DefaultBarShrink}, nil
	}
	return nil, fmt.Errorf("unknown module style %q", name)
}

// Square fills the whole box.
type Square struct{}

func (Square) NeedsNeighbors() bool { return false }

func (Square) Draw(dc *gg.Context, box image.Rectangle, cell matrix.Neighbors) {
	if !cell.Active() {
		return
	}
	r := toRectF(box)
	dc.DrawRectangle(r.x0, r.y0, r.w(), r.h())
	dc.Fill()
}

// GappedSquare fills a centred square Ratio times the box edge.
type GappedSquare struct {
	Ratio float64
}

func (GappedSquare) NeedsNeighbors() bool { return false }

func (d GappedSquare) Draw(dc *gg.Context, box image.Rectangle, cell matrix.Neighbors) {
	if !cell.Active() {
		return
	}
	r := toRectF(box)
	r = r.inset(r.w() * (1 - d.Ratio) / 2)
	dc.DrawRectangle(r.x0, r.y0, r.w(), r.h())
	dc.Fill()
}

// Circle fills a disc inscribed in the box.
type Circle struct{}

func (Circle) NeedsNeighbors() bool { return false }

func (Circle) Draw(dc *gg.Context, box image.Rectangle, cell matrix.Neighbors) {
	if !cell.Active() {
		return
	}
	r := toRectF(box)
	dc.DrawCircle((r.x0+r.x1)/2, (r.y0+r.y1)/2, r.w()/2)
	dc.Fill()
}

// Rounded rounds each corner whose two adjacent sides border light modules,
// so runs of dark modules join into blobs.
type Rounded struct {
	RadiusRatio float64
}

func (Rounded) NeedsNeighbors() bool { return true }

func (d Rounded) Draw(dc *gg.Context, box image.Rectangle, cell matrix.Neighbors) {
	if !cell.Active() {
		return
	}
	n, s, w, e := cell.North(), cell.South(), cell.West(), cell.East()
	rounded := geometry.Corners{
		geometry.TopLeft:     !n && !w,
		geometry.TopRight:    !n && !e,
		geometry.BottomRight: !s && !e,
		geometry.BottomLeft:  !s && !w,
	}
	r := toRectF(box)
	fillRoundedRect(dc, r, d.RadiusRatio*r.w()/2, rounded)
}

// VerticalBars joins vertically adjacent modules into bars Shrink times the box
// width, rounding the open ends.
type VerticalBars struct {
	Shrink float64
}

func (VerticalBars) NeedsNeighbors() bool { return true }

func (d VerticalBars) Draw(dc *gg.Context, box image.Rectangle, cell matrix.Neighbors) {
	if !cell.Active() {
		return
	}
	r := toRectF(box)
	pad := r.w() * (1 - d.Shrink) / 2
	r.x0 += pad
	r.x1 -= pad
	top, bottom := !cell.North(), !cell.South()
	rounded := geometry.Corners{
		geometry.TopLeft:     top,
		geometry.TopRight:    top,
		geometry.BottomRight: bottom,
		geometry.BottomLeft:  bottom,
	}
	fillRoundedRect(dc, r, r.w()/2, rounded)
}

// HorizontalBars joins horizontally adjacent modules into bars Shrink times the
// box height, rounding the open ends.
type HorizontalBars struct {
	Shrink float64
}

func (HorizontalBars) NeedsNeighbors() bool { return true }

func (d HorizontalBars) Draw(dc *gg.Context, box image.Rectangle, cell matrix.Neighbors) {
	if !cell.Active() {
		return
	}
	r := toRectF(box)
	pad := r.h() * (1 - d.Shrink) / 2
	r.y0 += pad
	r.y1 -= pad
	left, right := !cell.West(), !cell.East()
	rounded := geometry.Corners{
		geometry.TopLeft:     left,
		geometry.TopRight:    right,
		geometry.BottomRight: right,
		geometry.BottomLeft:  left,
	}
	fillRoundedRect(dc, r, r.h()/2, rounded)
}
