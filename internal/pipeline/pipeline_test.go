package pipeline

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cristianadrielbraun/qrstyle/internal/config"
	"github.com/cristianadrielbraun/qrstyle/internal/payload"
)

func TestCompositeDefaults(t *testing.T) {
	cfg := config.Default(config.ModeComposite)
	cfg.Contact = &payload.Contact{LastName: "Doe", FirstName: "Jane", Email: "jane@example.com"}

	res, err := New(zerolog.Nop()).Run(config.ModeComposite, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Payload != "MECARD:N:Doe,Jane;EMAIL:jane@example.com;;" {
		t.Errorf("payload = %q", res.Payload)
	}
	if want := (res.Modules + 8) * 10; res.Image.Bounds().Dx() != want {
		t.Fatalf("image width %d, want %d", res.Image.Bounds().Dx(), want)
	}

	img := res.Image
	checks := []struct {
		name string
		at   image.Point
		want color.RGBA
	}{
		{"eyeball from inner layer", image.Pt(75, 75), color.RGBA{63, 42, 86, 255}},
		{"ring from outer layer", image.Pt(75, 45), color.RGBA{255, 128, 0, 255}},
		{"separator from outer layer background", image.Pt(75, 55), color.RGBA{1, 1, 1, 255}},
		{"quiet zone from base layer", image.Pt(5, 5), color.RGBA{1, 0, 0, 255}},
	}
	for _, c := range checks {
		if got := img.RGBAAt(c.at.X, c.at.Y); got != c.want {
			t.Errorf("%s: pixel %v = %v, want %v", c.name, c.at, got, c.want)
		}
	}
}

func TestCompositeFixedMasksMatchGrid(t *testing.T) {
	r := New(zerolog.Nop())
	cfg := config.Default(config.ModeComposite)
	grid, err := r.Run(config.ModeComposite, cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Masks = config.MasksFixed
	fixed, err := r.Run(config.ModeComposite, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if string(grid.Image.Pix) != string(fixed.Image.Pix) {
		t.Errorf("fixed masks produced a different image")
	}
}

func TestCompositeLibraryLayer(t *testing.T) {
	cfg := config.Default(config.ModeComposite)
	cfg.Layers.Base = config.Layer{Engine: config.EngineLibrary, Shape: "rectangle", Fg: "#000000", Bg: "#ffffff"}

	res, err := New(zerolog.Nop()).Run(config.ModeComposite, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Image.RGBAAt(75, 75); got != (color.RGBA{63, 42, 86, 255}) {
		t.Errorf("eyeball = %v, want inner layer colour", got)
	}
}

func TestRenderVerify(t *testing.T) {
	cfg := config.Default(config.ModeRender)
	cfg.Data = "https://example.com/render"
	cfg.ECC = "H"
	cfg.BoxSize = 8
	cfg.Module = "square"
	cfg.Eyes = "square"
	cfg.Fg = "#000000"
	cfg.Verify = true

	res, err := New(zerolog.Nop()).Run(config.ModeRender, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Decoded != cfg.Data {
		t.Errorf("decoded %q, want %q", res.Decoded, cfg.Data)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default(config.ModeRender)
	cfg.BoxSize = 0
	if _, err := New(zerolog.Nop()).Run(config.ModeRender, cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRunToFile(t *testing.T) {
	cfg := config.Default(config.ModeRender)
	cfg.BoxSize = 4
	cfg.Output = filepath.Join(t.TempDir(), "out.png")

	if _, err := New(zerolog.Nop()).RunToFile(config.ModeRender, cfg); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Errorf("output file is empty")
	}
}

func TestCompositeLayerColourFallback(t *testing.T) {
	cfg := config.Default(config.ModeComposite)
	cfg.Bg = "#0000ff"
	cfg.Layers.Base.Bg = ""

	res, err := New(zerolog.Nop()).Run(config.ModeComposite, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Image.RGBAAt(5, 5); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("base layer without bg = %v, want the top-level bg", got)
	}
	if got := res.Image.RGBAAt(75, 75); got != (color.RGBA{63, 42, 86, 255}) {
		t.Errorf("inner layer keeps its own fg, got %v", got)
	}
}

func TestRenderWithoutQuietZoneIsModulesTimesBox(t *testing.T) {
	cfg := config.Default(config.ModeRender)
	cfg.Border = 0

	res, err := New(zerolog.Nop()).Run(config.ModeRender, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if want := res.Modules * 40; res.Image.Bounds().Dx() != want || res.Image.Bounds().Dy() != want {
		t.Errorf("image %v, want %dx%d", res.Image.Bounds().Size(), want, want)
	}
}
