// Package render draws a QR matrix into a bitmap, one cell at a time, with
// configurable module and eye styles.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrstyle/internal/geometry"
	"github.com/cristianadrielbraun/qrstyle/internal/matrix"
	"github.com/cristianadrielbraun/qrstyle/internal/style"
)

// Options selects the drawing styles of a pass.
type Options struct {
	Box    int
	Border int

	// Module draws data modules. Defaults to style.Square.
	Module style.ModuleDrawer
	// Eyes draws the position markers as whole shapes. When nil the markers
	// are drawn module by module with EyeModule.
	Eyes style.EyeDrawer
	// EyeModule draws marker modules when Eyes is nil. Defaults to style.Square.
	EyeModule style.ModuleDrawer

	Foreground color.Color
	Background color.Color

	// Logo is placed in the centre of the code when set.
	Logo image.Image
	// LogoRatio is the logo edge relative to the code edge. Defaults to 0.2.
	LogoRatio float64
}

func (o Options) withDefaults() Options {
	if o.Module == nil {
		o.Module = style.Square{}
	}
	if o.EyeModule == nil {
		o.EyeModule = style.Square{}
	}
	if o.Foreground == nil {
		o.Foreground = color.Black
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.LogoRatio <= 0 {
		o.LogoRatio = defaultLogoRatio
	}
	return o
}

// State is the eye drawing state of a pass.
type State int

const (
	// EyesPending means no whole-shape eye has been drawn yet.
	EyesPending State = iota
	// EyesDrawn is terminal for the pass.
	EyesDrawn
)

func (s State) String() string {
	if s == EyesDrawn {
		return "EyesDrawn"
	}
	return "EyesPending"
}

// Pass is a single render of one matrix. It owns the bitmap it draws into.
type Pass struct {
	m     matrix.Matrix
	g     geometry.Geometry
	opts  Options
	state State

	img *image.RGBA
	dc  *gg.Context
}

// NewPass validates the geometry and prepares a background filled bitmap.
func NewPass(m matrix.Matrix, opts Options) (*Pass, error) {
	opts = opts.withDefaults()
	g, err := geometry.New(m.Size(), opts.Box, opts.Border)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(g.Bounds())
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)
	dc := gg.NewContextForRGBA(img)
	dc.SetColor(opts.Foreground)

	return &Pass{m: m, g: g, opts: opts, img: img, dc: dc}, nil
}

// Geometry is the resolved layout of the pass.
func (p *Pass) Geometry() geometry.Geometry { return p.g }

// State reports whether the whole-shape eyes were drawn.
func (p *Pass) State() State { return p.state }

// Run visits every cell in row-major order and returns the finished bitmap.
func (p *Pass) Run() *image.RGBA {
	n := p.m.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			p.drawCell(row, col)
		}
	}
	if p.opts.Logo != nil {
		overlayLogo(p.img, p.g, p.opts.Logo, p.opts.LogoRatio, p.opts.Background)
	}
	return p.img
}

func (p *Pass) drawCell(row, col int) {
	drawer := p.opts.Module
	if _, isEye := p.g.EyeAt(row, col); isEye {
		if p.opts.Eyes != nil {
			p.drawEyesOnce()
			return
		}
		drawer = p.opts.EyeModule
	}

	cell := matrix.Single(p.m.Active(row, col))
	if drawer.NeedsNeighbors() {
		cell = p.m.Neighbors(row, col)
	}
	drawer.Draw(p.dc, p.g.PixelBox(row, col), cell)
}

func (p *Pass) drawEyesOnce() {
	if p.state == EyesDrawn {
		return
	}
	p.state = EyesDrawn
	style.DrawEyes(p.dc, p.g, p.opts.Eyes)
}

// Render draws m with opts in a single pass.
func Render(m matrix.Matrix, opts Options) (*image.RGBA, error) {
	p, err := NewPass(m, opts)
	if err != nil {
		return nil, err
	}
	return p.Run(), nil
}
