package config

import (
	"errors"
	"flag"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cristianadrielbraun/qrstyle/internal/payload"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#009de0", color.RGBA{0, 157, 224, 255}},
		{"009DE0", color.RGBA{0, 157, 224, 255}},
		{"#fff", color.RGBA{255, 255, 255, 255}},
		{"transparent", color.RGBA{}},
		{"#ff000080", color.RGBA{128, 0, 0, 128}},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "#12", "#gggggg", "red"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
}

func TestColorOr(t *testing.T) {
	def := color.RGBA{1, 2, 3, 255}
	if got := ColorOr("", def); got != def {
		t.Errorf("empty should fall back, got %v", got)
	}
	if got := ColorOr("nope", def); got != def {
		t.Errorf("invalid should fall back, got %v", got)
	}
	if got := ColorOr("#000000", def); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("got %v", got)
	}
}

func TestDefaultsValidate(t *testing.T) {
	for _, mode := range []Mode{ModeRender, ModeComposite, ModeServe} {
		cfg := Default(mode)
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s defaults invalid: %v", mode, err)
		}
	}
	c := Default(ModeComposite)
	if c.ECC != "H" || c.BoxSize != 10 || c.Border != 4 || c.Output != "final_eyes_image.png" {
		t.Errorf("unexpected composite defaults: %+v", c)
	}
	if c.Layers.Inner.EyeModule != "rounded" || c.Layers.Outer.EyeModule != "vbars" {
		t.Errorf("unexpected layer styles: %+v", c.Layers)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"ecc":        func(c *Config) { c.ECC = "Z" },
		"encoder":    func(c *Config) { c.Encoder = "zxing" },
		"box":        func(c *Config) { c.BoxSize = 0 },
		"border":     func(c *Config) { c.Border = -1 },
		"module":     func(c *Config) { c.Module = "hexagon" },
		"eyes":       func(c *Config) { c.Eyes = "star" },
		"fg":         func(c *Config) { c.Fg = "blue" },
		"masks":      func(c *Config) { c.Masks = "fuzzy" },
		"fixed":      func(c *Config) { c.Masks = MasksFixed; c.BoxSize = 12 },
		"engine":     func(c *Config) { c.Layers.Outer.Engine = "gpu" },
		"layer fg":   func(c *Config) { c.Layers.Base.Fg = "#12" },
		"logo ratio": func(c *Config) { c.LogoRatio = 0.9 },
		"log level":  func(c *Config) { c.LogLevel = "loud" },
		"payload":    func(c *Config) { c.Data = "" },
	}
	for name, mutate := range cases {
		cfg := Default(ModeComposite)
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestValidateNormalises(t *testing.T) {
	cfg := Default(ModeComposite)
	cfg.Module = " HBars "
	cfg.Masks = ""
	cfg.Layers.Base.Engine = ""
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Module != "hbars" || cfg.Masks != MasksGrid || cfg.Layers.Base.Engine != EngineCells {
		t.Errorf("not normalised: module=%q masks=%q engine=%q", cfg.Module, cfg.Masks, cfg.Layers.Base.Engine)
	}
}

func TestPayload(t *testing.T) {
	cfg := Default(ModeRender)
	if got, _ := cfg.Payload(); got != "Some data" {
		t.Errorf("payload = %q", got)
	}
	cfg.Contact = &payload.Contact{FirstName: "Ann"}
	if got, _ := cfg.Payload(); got != "MECARD:N:,Ann;;" {
		t.Errorf("contact payload = %q", got)
	}
	cfg.Contact = &payload.Contact{Email: "x@example.com"}
	if _, err := cfg.Payload(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for nameless contact, got %v", err)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qr.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
box_size: 10
ecc: q
contact:
  last_name: Doe
  first_name: Jane
layers:
  outer:
    engine: library
    shape: liquid
`)
	cfg, err := Load(path, ModeComposite)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ECC != "q" || cfg.Contact == nil || cfg.Contact.LastName != "Doe" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Layers.Outer.Engine != EngineLibrary || cfg.Layers.Outer.Shape != "liquid" {
		t.Errorf("outer layer = %+v", cfg.Layers.Outer)
	}
	if cfg.Layers.Inner.EyeModule != "rounded" || cfg.Output != "final_eyes_image.png" {
		t.Errorf("defaults lost while loading: %+v", cfg)
	}

	if _, err := Load(writeConfig(t, "box_size: [1"), ModeRender); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for bad YAML, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), ModeRender); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestParseFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "box_size: 12\nmodule: circle\n")
	cfg, err := Parse(ModeRender, []string{"-config", path, "-module", "gapped", "-data", "hello"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BoxSize != 12 {
		t.Errorf("box from file = %d, want 12", cfg.BoxSize)
	}
	if cfg.Module != "gapped" || cfg.Data != "hello" {
		t.Errorf("flags did not override file: module=%q data=%q", cfg.Module, cfg.Data)
	}

	cfg, err = Parse(ModeRender, []string{"-box", "5"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BoxSize != 5 || cfg.Module != "hbars" {
		t.Errorf("flags without file: %+v", cfg)
	}

	if _, err := Parse(ModeRender, []string{"extra"}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for stray argument, got %v", err)
	}
}

func TestAddr(t *testing.T) {
	t.Setenv("PORT", "")
	if got := (Config{}).Addr(); got != ":8080" {
		t.Errorf("Addr() = %q", got)
	}
	t.Setenv("PORT", "9000")
	if got := (Config{}).Addr(); got != ":9000" {
		t.Errorf("Addr() = %q", got)
	}
	if got := (Config{Listen: "127.0.0.1:1"}).Addr(); got != "127.0.0.1:1" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestBorderFlagHelp(t *testing.T) {
	cfg := Default(ModeRender)
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	cfg.bind(fs)
	f := fs.Lookup("border")
	if f == nil || !strings.Contains(f.Usage, "0 gives an image of exactly") {
		t.Fatalf("border flag help should explain the zero quiet zone size, got %+v", f)
	}
	if f.DefValue != "4" {
		t.Errorf("border default = %s, want 4", f.DefValue)
	}
}
