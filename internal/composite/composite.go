// Package composite layers independently rendered QR bitmaps through binary
// masks over the position markers.
package composite

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/cristianadrielbraun/qrstyle/internal/geometry"
)

// ErrDimensionMismatch is returned when layers or masks differ in size.
var ErrDimensionMismatch = errors.New("bitmap dimensions do not match")

// Composite returns overlay where mask is non-zero and base everywhere else.
// All three images must have the same size.
func Composite(overlay, base image.Image, mask *image.Alpha) (*image.RGBA, error) {
	size := base.Bounds().Size()
	if overlay.Bounds().Size() != size || mask.Bounds().Size() != size {
		return nil, fmt.Errorf("%w: base %v, overlay %v, mask %v",
			ErrDimensionMismatch, size, overlay.Bounds().Size(), mask.Bounds().Size())
	}

	out := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.Draw(out, out.Bounds(), base, base.Bounds().Min, xdraw.Src)

	// Masked pixels take the overlay as is, alpha included.
	om, mm := overlay.Bounds().Min, mask.Bounds().Min
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			if mask.AlphaAt(mm.X+x, mm.Y+y).A != 0 {
				out.Set(x, y, overlay.At(om.X+x, om.Y+y))
			}
		}
	}
	return out, nil
}

// Masks selects the marker pixels of each overlay layer.
type Masks struct {
	// Inner covers the eyeballs.
	Inner *image.Alpha
	// Outer covers the marker rings: outer boxes minus eyeballs.
	Outer *image.Alpha
}

// GridMasks derives the masks from the grid geometry.
func GridMasks(g geometry.Geometry) Masks {
	var outer, inner [3]image.Rectangle
	for i, eye := range g.Eyes() {
		outer[i], inner[i] = eye.Outer, eye.Inner
	}
	return buildMasks(g.Bounds(), outer, inner)
}

// FixedMasks builds the masks from the hardcoded pixel layout for a square
// image of imgSize pixels. They match GridMasks only for codes drawn with
// geometry.FixedBox and geometry.FixedBorder.
func FixedMasks(imgSize int) (Masks, error) {
	outer, inner, err := geometry.FixedEyeRects(imgSize)
	if err != nil {
		return Masks{}, err
	}
	return buildMasks(image.Rect(0, 0, imgSize, imgSize), outer, inner), nil
}

func buildMasks(bounds image.Rectangle, outer, inner [3]image.Rectangle) Masks {
	m := Masks{Inner: image.NewAlpha(bounds), Outer: image.NewAlpha(bounds)}
	for i := range outer {
		fill(m.Outer, outer[i], 255)
	}
	for i := range inner {
		fill(m.Outer, inner[i], 0)
		fill(m.Inner, inner[i], 255)
	}
	return m
}

func fill(mask *image.Alpha, r image.Rectangle, v uint8) {
	r = r.Intersect(mask.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := mask.PixOffset(r.Min.X, y)
		for x := 0; x < r.Dx(); x++ {
			mask.Pix[off+x] = v
		}
	}
}

// Layers are three renders of the same payload that differ only in style.
type Layers struct {
	Base      image.Image
	InnerEyes image.Image
	OuterEyes image.Image
}

// Assemble shows InnerEyes through the inner mask and then OuterEyes through
// the outer mask, with Base everywhere else.
func (l Layers) Assemble(m Masks) (*image.RGBA, error) {
	intermediate, err := Composite(l.InnerEyes, l.Base, m.Inner)
	if err != nil {
		return nil, fmt.Errorf("failed to composite inner eyes: %w", err)
	}
	final, err := Composite(l.OuterEyes, intermediate, m.Outer)
	if err != nil {
		return nil, fmt.Errorf("failed to composite outer eyes: %w", err)
	}
	return final, nil
}
