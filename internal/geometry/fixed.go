package geometry

import (
	"fmt"
	"image"
)

// Pixel constants of the hardcoded mask layout. They only line up with the
// code when it is drawn with FixedBox pixel modules and FixedBorder quiet-zone
// modules.
const (
	FixedBox          = 10
	FixedBorder       = 4
	FixedQuietZone    = FixedBox * FixedBorder
	FixedEyeSize      = FixedBox * EyeSize
	FixedEyeballInset = FixedBox * EyeballOffset
	FixedEyeballSize  = FixedBox * EyeballSize
)

// FixedEyeRects returns the outer and inner marker rectangles for a square
// image of imgSize pixels using the fixed pixel layout, in NW, NE, SW order.
func FixedEyeRects(imgSize int) (outer, inner [3]image.Rectangle, err error) {
	if imgSize < 2*FixedQuietZone+MinGridSize*FixedBox {
		return outer, inner, fmt.Errorf("%w: %dpx image is too small for the fixed eye layout", ErrGridTooSmall, imgSize)
	}
	q, e := FixedQuietZone, FixedEyeSize
	far := imgSize - q - e

	origins := [3]image.Point{{q, q}, {far, q}, {q, far}}
	for i, o := range origins {
		outer[i] = image.Rect(o.X, o.Y, o.X+e, o.Y+e)
		in := o.Add(image.Pt(FixedEyeballInset, FixedEyeballInset))
		inner[i] = image.Rect(in.X, in.Y, in.X+FixedEyeballSize, in.Y+FixedEyeballSize)
	}
	return outer, inner, nil
}

// FixedPixel is the grid geometry of an N-module code drawn with the fixed
// layout constants.
func FixedPixel(size int) (Geometry, error) {
	return New(size, FixedBox, FixedBorder)
}
