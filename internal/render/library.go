package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"github.com/yeqown/go-qrcode/writer/standard"
	"github.com/yeqown/go-qrcode/writer/standard/shapes"

	"github.com/cristianadrielbraun/qrstyle/internal/geometry"
	"github.com/cristianadrielbraun/qrstyle/internal/matrix"
)

// LibraryOptions configures a render through the yeqown standard writer.
type LibraryOptions struct {
	Box    int
	Border int
	// Shape is one of rectangle, circle, liquid, chain, hstripe, vstripe.
	Shape      string
	Foreground color.Color
	Background color.Color
}

// RenderLibrary renders payload with the library's own full-matrix writer. The
// result has the same layout as Render for the same box and border, so it can
// be used as a compositing layer.
func RenderLibrary(payload string, level matrix.Level, opts LibraryOptions) (*image.RGBA, error) {
	if opts.Box < 1 || opts.Box > 255 {
		return nil, fmt.Errorf("%w: library writer needs a box size between 1 and 255, got %d", geometry.ErrInvalidGeometry, opts.Box)
	}
	if opts.Border < 0 {
		return nil, fmt.Errorf("%w: border %d must not be negative", geometry.ErrInvalidGeometry, opts.Border)
	}
	if opts.Foreground == nil {
		opts.Foreground = color.Black
	}
	if opts.Background == nil {
		opts.Background = color.White
	}

	qrc, err := matrix.NewYeqownCode(payload, level)
	if err != nil {
		return nil, err
	}

	writerOptions := []standard.ImageOption{
		standard.WithQRWidth(uint8(opts.Box)),
		standard.WithBorderWidth(opts.Border * opts.Box),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithFgColor(opts.Foreground),
		standard.WithBgColor(opts.Background),
	}
	shapeOption, err := libraryShape(opts.Shape)
	if err != nil {
		return nil, err
	}
	if shapeOption != nil {
		writerOptions = append(writerOptions, shapeOption)
	}

	buf := &bufferCloser{}
	writer := standard.NewWithWriter(buf, writerOptions...)
	if err := qrc.Save(writer); err != nil {
		return nil, fmt.Errorf("failed to generate QR code image: %w", err)
	}

	decoded, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to decode QR image: %w", err)
	}
	out := image.NewRGBA(decoded.Bounds().Sub(decoded.Bounds().Min))
	draw.Draw(out, out.Bounds(), decoded, decoded.Bounds().Min, draw.Src)
	return out, nil
}

func libraryShape(name string) (standard.ImageOption, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rectangle":
		return nil, nil
	case "circle":
		return standard.WithCircleShape(), nil
	case "liquid":
		return standard.WithCustomShape(&customShape{drawFunc: shapes.LiquidBlock()}), nil
	case "chain":
		return standard.WithCustomShape(&customShape{drawFunc: shapes.ChainBlock()}), nil
	case "hstripe":
		return standard.WithCustomShape(&customShape{drawFunc: shapes.HStripeBlock(0.85)}), nil
	case "vstripe":
		return standard.WithCustomShape(&customShape{drawFunc: shapes.VStripeBlock(0.85)}), nil
	}
	return nil, fmt.Errorf("unknown library shape %q", name)
}

// customShape implements the IShape interface by wrapping drawing functions from the shapes package
type customShape struct {
	drawFunc func(ctx *standard.DrawContext)
}

// Draw implements the IShape interface
func (cs *customShape) Draw(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}

// DrawFinder uses the block shape for finder modules too.
func (cs *customShape) DrawFinder(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}

type bufferCloser struct {
	bytes.Buffer
}

func (*bufferCloser) Close() error { return nil }
