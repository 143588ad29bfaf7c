package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/cristianadrielbraun/qrstyle/internal/geometry"
)

const (
	defaultLogoRatio = 0.2
	svgRasterSize    = 512
)

// LoadLogo reads a PNG, JPEG or SVG logo from disk.
func LoadLogo(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read logo: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return RasterizeSVG(data, svgRasterSize)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo: %w", err)
	}
	return img, nil
}

// RasterizeSVG renders an SVG document into a size×size RGBA image.
func RasterizeSVG(data []byte, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG logo: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return img, nil
}

// overlayLogo clears a centred square of the code and fits the logo inside it.
func overlayLogo(img *image.RGBA, g geometry.Geometry, logo image.Image, ratio float64, bg color.Color) {
	edge := int(float64(g.Size()*g.Box()) * ratio)
	if edge < 1 {
		return
	}
	c := img.Bounds().Size().Div(2)
	area := image.Rect(c.X-edge/2, c.Y-edge/2, c.X-edge/2+edge, c.Y-edge/2+edge)
	draw.Draw(img, area, &image.Uniform{C: bg}, image.Point{}, draw.Src)

	fitted := imaging.Fit(logo, edge, edge, imaging.Lanczos)
	fb := fitted.Bounds()
	at := image.Pt(c.X-fb.Dx()/2, c.Y-fb.Dy()/2)
	draw.Draw(img, image.Rectangle{Min: at, Max: at.Add(fb.Size())}, fitted, fb.Min, draw.Over)
}
