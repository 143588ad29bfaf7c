// Package config holds the settings for a render or composite run, loaded from
// YAML and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/cristianadrielbraun/qrstyle/internal/geometry"
	"github.com/cristianadrielbraun/qrstyle/internal/matrix"
	"github.com/cristianadrielbraun/qrstyle/internal/payload"
	"github.com/cristianadrielbraun/qrstyle/internal/style"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Mode selects which defaults apply.
type Mode string

const (
	ModeRender    Mode = "render"
	ModeComposite Mode = "composite"
	ModeServe     Mode = "serve"
)

// Mask sources for composite mode.
const (
	MasksGrid  = "grid"
	MasksFixed = "fixed"
)

// Layer engines.
const (
	EngineCells   = "cells"
	EngineLibrary = "library"
)

// Layer styles one of the three composite renders.
type Layer struct {
	Engine    string `yaml:"engine"`
	Module    string `yaml:"module"`
	EyeModule string `yaml:"eye_module"`
	Eyes      string `yaml:"eyes"`
	// Shape is only used by the library engine.
	Shape string `yaml:"shape"`
	Fg    string `yaml:"fg"`
	Bg    string `yaml:"bg"`
}

// Layers configures the composite renders.
type Layers struct {
	Base  Layer `yaml:"base"`
	Inner Layer `yaml:"inner"`
	Outer Layer `yaml:"outer"`
}

// Config is the full set of options for one run.
type Config struct {
	Data      string           `yaml:"data"`
	Contact   *payload.Contact `yaml:"contact"`
	ECC       string           `yaml:"ecc"`
	Encoder   string           `yaml:"encoder"`
	BoxSize   int              `yaml:"box_size"`
	Border    int              `yaml:"border"`
	Module    string           `yaml:"module"`
	Eyes      string           `yaml:"eyes"`
	EyeModule string           `yaml:"eye_module"`
	Fg        string           `yaml:"fg"`
	Bg        string           `yaml:"bg"`
	Logo      string           `yaml:"logo"`
	LogoRatio float64          `yaml:"logo_ratio"`
	Output    string           `yaml:"output"`
	// Size rescales the saved image to Size×Size pixels when positive.
	Size     int    `yaml:"size"`
	Verify   bool   `yaml:"verify"`
	Masks    string `yaml:"masks"`
	Layers   Layers `yaml:"layers"`
	LogLevel string `yaml:"log_level"`
	Listen   string `yaml:"listen"`
}

// Default returns the settings used when nothing else is given.
func Default(mode Mode) Config {
	cfg := Config{
		Data:     "Some data",
		ECC:      "L",
		Encoder:  "yeqown",
		BoxSize:  40,
		Border:   4,
		Module:   "hbars",
		Eyes:     "rounded",
		Fg:       "#009de0",
		Bg:       "#ffffff",
		Output:   "image.png",
		Masks:    MasksGrid,
		LogLevel: "info",
	}
	if mode != ModeComposite {
		return cfg
	}

	cfg.ECC = "H"
	cfg.BoxSize = geometry.FixedBox
	cfg.Border = geometry.FixedBorder
	cfg.Output = "final_eyes_image.png"
	cfg.Layers = Layers{
		Base:  Layer{Engine: EngineCells, Module: "square", Fg: "#ffffff", Bg: "#010000"},
		Inner: Layer{Engine: EngineCells, Module: "square", EyeModule: "rounded", Fg: "#3f2a56", Bg: "#01ff01"},
		Outer: Layer{Engine: EngineCells, Module: "square", EyeModule: "vbars", Fg: "#ff8000", Bg: "#010101"},
	}
	return cfg
}

// Load reads a YAML file over the defaults for mode.
func Load(path string, mode Mode) (Config, error) {
	cfg := Default(mode)
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Parse builds a config from command-line arguments. A -config file is loaded
// first and flags given explicitly override it.
func Parse(mode Mode, args []string) (Config, error) {
	cfg := Default(mode)
	fs := flag.NewFlagSet(string(mode), flag.ContinueOnError)
	path := fs.String("config", "", "YAML configuration file")
	cfg.bind(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected arguments %v", ErrInvalidConfig, fs.Args())
	}
	if *path == "" {
		return cfg, nil
	}

	loaded, err := Load(*path, mode)
	if err != nil {
		return cfg, err
	}
	over := flag.NewFlagSet(string(mode), flag.ContinueOnError)
	loaded.bind(over)
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" || setErr != nil {
			return
		}
		setErr = over.Set(f.Name, f.Value.String())
	})
	if setErr != nil {
		return cfg, setErr
	}
	return loaded, nil
}

func (c *Config) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Data, "data", c.Data, "text to encode")
	fs.StringVar(&c.ECC, "ecc", c.ECC, "error correction level: L, M, Q or H")
	fs.StringVar(&c.Encoder, "encoder", c.Encoder, "matrix encoder: yeqown, skip2 or boombuler")
	fs.IntVar(&c.BoxSize, "box", c.BoxSize, "pixels per module")
	fs.IntVar(&c.Border, "border", c.Border, "quiet zone in modules; 0 gives an image of exactly modules×box pixels")
	fs.StringVar(&c.Module, "module", c.Module, "data module style")
	fs.StringVar(&c.Eyes, "eyes", c.Eyes, "position marker style, or none")
	fs.StringVar(&c.EyeModule, "eye-module", c.EyeModule, "per-cell style for markers when -eyes is none")
	fs.StringVar(&c.Fg, "fg", c.Fg, "foreground colour")
	fs.StringVar(&c.Bg, "bg", c.Bg, "background colour")
	fs.StringVar(&c.Logo, "logo", c.Logo, "PNG, JPEG or SVG logo placed at the centre")
	fs.Float64Var(&c.LogoRatio, "logo-ratio", c.LogoRatio, "logo edge as a fraction of the code width")
	fs.StringVar(&c.Output, "out", c.Output, "output file")
	fs.IntVar(&c.Size, "size", c.Size, "rescale output to this many pixels square")
	fs.BoolVar(&c.Verify, "verify", c.Verify, "decode the result and check it matches the payload")
	fs.StringVar(&c.Masks, "masks", c.Masks, "composite mask source: grid or fixed")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level")
	fs.StringVar(&c.Listen, "listen", c.Listen, "server listen address")
}

// Payload returns the text to encode. A non-empty contact takes precedence
// over Data.
func (c Config) Payload() (string, error) {
	if c.Contact != nil && !c.Contact.IsZero() {
		card, err := c.Contact.MECARD()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return card, nil
	}
	if c.Data == "" {
		return "", fmt.Errorf("%w: nothing to encode", ErrInvalidConfig)
	}
	return c.Data, nil
}

// Addr returns the listen address, falling back to PORT and then :8080.
func (c Config) Addr() string {
	if c.Listen != "" {
		return c.Listen
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

// Validate normalises names and reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := c.Payload(); err != nil {
		return err
	}
	if _, err := matrix.ParseLevel(c.ECC); err != nil {
		return invalid(err)
	}
	if _, err := matrix.EncoderByName(c.Encoder); err != nil {
		return invalid(err)
	}
	if c.BoxSize < 1 {
		return fmt.Errorf("%w: box_size must be at least 1, got %d", ErrInvalidConfig, c.BoxSize)
	}
	if c.Border < 0 {
		return fmt.Errorf("%w: border must not be negative, got %d", ErrInvalidConfig, c.Border)
	}
	if c.Size < 0 {
		return fmt.Errorf("%w: size must not be negative, got %d", ErrInvalidConfig, c.Size)
	}
	if c.LogoRatio < 0 || c.LogoRatio > 0.5 {
		return fmt.Errorf("%w: logo_ratio must be between 0 and 0.5, got %g", ErrInvalidConfig, c.LogoRatio)
	}

	c.Module, c.Eyes, c.EyeModule = lower(c.Module), lower(c.Eyes), lower(c.EyeModule)
	if err := checkStyles(c.Module, c.EyeModule, c.Eyes); err != nil {
		return err
	}
	if _, err := ParseColor(c.Fg); err != nil {
		return invalid(err)
	}
	if _, err := ParseColor(c.Bg); err != nil {
		return invalid(err)
	}

	c.Masks = lower(c.Masks)
	switch c.Masks {
	case "", MasksGrid:
		c.Masks = MasksGrid
	case MasksFixed:
		if c.BoxSize != geometry.FixedBox || c.Border != geometry.FixedBorder {
			return fmt.Errorf("%w: fixed masks need box_size %d and border %d", ErrInvalidConfig, geometry.FixedBox, geometry.FixedBorder)
		}
	default:
		return fmt.Errorf("%w: unknown masks %q", ErrInvalidConfig, c.Masks)
	}

	layers := []struct {
		name  string
		layer *Layer
	}{{"base", &c.Layers.Base}, {"inner", &c.Layers.Inner}, {"outer", &c.Layers.Outer}}
	for _, l := range layers {
		if err := l.layer.validate(); err != nil {
			return fmt.Errorf("layer %s: %w", l.name, err)
		}
	}

	if _, err := zerolog.ParseLevel(lower(c.LogLevel)); err != nil {
		return invalid(err)
	}
	return nil
}

func (l *Layer) validate() error {
	l.Engine, l.Module, l.EyeModule, l.Eyes = lower(l.Engine), lower(l.Module), lower(l.EyeModule), lower(l.Eyes)
	switch l.Engine {
	case "", EngineCells:
		l.Engine = EngineCells
		if err := checkStyles(l.Module, l.EyeModule, l.Eyes); err != nil {
			return err
		}
	case EngineLibrary:
	default:
		return fmt.Errorf("%w: unknown engine %q", ErrInvalidConfig, l.Engine)
	}
	if l.Fg != "" {
		if _, err := ParseColor(l.Fg); err != nil {
			return invalid(err)
		}
	}
	if l.Bg != "" {
		if _, err := ParseColor(l.Bg); err != nil {
			return invalid(err)
		}
	}
	return nil
}

func checkStyles(module, eyeModule, eyes string) error {
	if _, err := style.ModuleByName(module); err != nil {
		return invalid(err)
	}
	if _, err := style.ModuleByName(eyeModule); err != nil {
		return invalid(err)
	}
	if _, err := style.EyesByName(eyes); err != nil {
		return invalid(err)
	}
	return nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
