// Package geometry maps QR grid cells to pixel rectangles and locates the three
// position markers ("eyes") of a code.
//
// Cell rectangles use image.Rectangle with X as the column and Y as the row.
// All rectangles are half-open.
package geometry

import (
	"errors"
	"fmt"
	"image"
)

const (
	// EyeSize is the edge of a position marker in modules.
	EyeSize = 7
	// EyeballSize is the edge of the solid marker centre in modules.
	EyeballSize = 3
	// EyeballOffset is the distance from the marker edge to its centre block.
	EyeballOffset = 2
	// MinGridSize is the smallest standard QR grid (version 1).
	MinGridSize = 21
)

var (
	ErrGridTooSmall    = errors.New("grid too small for eye regions")
	ErrInvalidGeometry = errors.New("invalid geometry")
)

// Region names one of the three position markers.
type Region int

const (
	NW Region = iota
	NE
	SW
)

// Regions lists the markers in drawing order.
var Regions = [3]Region{NW, NE, SW}

func (r Region) String() string {
	switch r {
	case NW:
		return "NW"
	case NE:
		return "NE"
	case SW:
		return "SW"
	}
	return fmt.Sprintf("Region(%d)", int(r))
}

// Corner identifies a rectangle corner.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

// Corners selects which corners of a rectangle are rounded, indexed by Corner.
type Corners [4]bool

// AllCorners rounds every corner.
func AllCorners() Corners { return Corners{true, true, true, true} }

// Without returns c with corner k left square.
func (c Corners) Without(k Corner) Corners {
	c[k] = false
	return c
}

// Eye describes one position marker in both grid and pixel space.
type Eye struct {
	Region Region

	OuterCells image.Rectangle
	InnerCells image.Rectangle

	Outer image.Rectangle
	Inner image.Rectangle

	// Open is the corner facing the body of the code. Eye styles keep it square.
	Open Corner
	// Unit is the pixel size of one module.
	Unit int
}

// Rounded is the set of corners an eye style should round.
func (e Eye) Rounded() Corners { return AllCorners().Without(e.Open) }

// Geometry resolves pixel boxes for an N×N grid drawn with a fixed box size and
// a border of quiet-zone modules on every side.
type Geometry struct {
	size   int
	box    int
	border int
}

// New validates the grid and returns its geometry.
func New(size, box, border int) (Geometry, error) {
	if box < 1 {
		return Geometry{}, fmt.Errorf("%w: box size %d must be at least 1", ErrInvalidGeometry, box)
	}
	if border < 0 {
		return Geometry{}, fmt.Errorf("%w: border %d must not be negative", ErrInvalidGeometry, border)
	}
	if size < MinGridSize {
		return Geometry{}, fmt.Errorf("%w: %d modules, need at least %d", ErrGridTooSmall, size, MinGridSize)
	}
	return Geometry{size: size, box: box, border: border}, nil
}

// Size is the number of modules per side.
func (g Geometry) Size() int { return g.size }

// Box is the pixel edge of one module.
func (g Geometry) Box() int { return g.box }

// Border is the quiet zone width in modules.
func (g Geometry) Border() int { return g.border }

// ImageSize is the pixel edge of the full bitmap including the quiet zone.
func (g Geometry) ImageSize() int { return (g.size + 2*g.border) * g.box }

// Bounds is the full bitmap rectangle.
func (g Geometry) Bounds() image.Rectangle {
	s := g.ImageSize()
	return image.Rect(0, 0, s, s)
}

// PixelBox returns the pixel rectangle of the module at (row, col). It panics
// for cells outside the grid.
func (g Geometry) PixelBox(row, col int) image.Rectangle {
	if row < 0 || col < 0 || row >= g.size || col >= g.size {
		panic(fmt.Sprintf("geometry: cell (%d,%d) outside %dx%d grid", row, col, g.size, g.size))
	}
	off := g.border * g.box
	return image.Rect(
		col*g.box+off,
		row*g.box+off,
		(col+1)*g.box+off,
		(row+1)*g.box+off,
	)
}

// CellsToPixels converts a rectangle of cells to the union of their pixel boxes.
func (g Geometry) CellsToPixels(cells image.Rectangle) image.Rectangle {
	if cells.Empty() {
		return image.Rectangle{}
	}
	return g.PixelBox(cells.Min.Y, cells.Min.X).Union(g.PixelBox(cells.Max.Y-1, cells.Max.X-1))
}

// Eye returns the marker for region r.
func (g Geometry) Eye(r Region) Eye {
	var row, col int
	var open Corner
	switch r {
	case NW:
		open = BottomRight
	case NE:
		col = g.size - EyeSize
		open = BottomLeft
	case SW:
		row = g.size - EyeSize
		open = TopRight
	default:
		panic(fmt.Sprintf("geometry: unknown region %d", int(r)))
	}

	outer := image.Rect(col, row, col+EyeSize, row+EyeSize)
	inner := image.Rect(
		col+EyeballOffset,
		row+EyeballOffset,
		col+EyeballOffset+EyeballSize,
		row+EyeballOffset+EyeballSize,
	)
	return Eye{
		Region:     r,
		OuterCells: outer,
		InnerCells: inner,
		Outer:      g.CellsToPixels(outer),
		Inner:      g.CellsToPixels(inner),
		Open:       open,
		Unit:       g.box,
	}
}

// Eyes returns the three markers in drawing order.
func (g Geometry) Eyes() [3]Eye {
	return [3]Eye{g.Eye(NW), g.Eye(NE), g.Eye(SW)}
}

// EyeAt reports which marker's outer box contains the cell, if any.
func (g Geometry) EyeAt(row, col int) (Region, bool) {
	p := image.Pt(col, row)
	for _, r := range Regions {
		if p.In(g.Eye(r).OuterCells) {
			return r, true
		}
	}
	return 0, false
}
