// Package pipeline turns a config into a finished image: payload, matrix,
// layer renders, mask compositing, scan check and file output.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/rs/zerolog"

	"github.com/cristianadrielbraun/qrstyle/internal/composite"
	"github.com/cristianadrielbraun/qrstyle/internal/config"
	"github.com/cristianadrielbraun/qrstyle/internal/geometry"
	"github.com/cristianadrielbraun/qrstyle/internal/matrix"
	"github.com/cristianadrielbraun/qrstyle/internal/output"
	"github.com/cristianadrielbraun/qrstyle/internal/render"
	"github.com/cristianadrielbraun/qrstyle/internal/style"
)

// ErrVerifyMismatch is returned when the scanned text differs from the payload.
var ErrVerifyMismatch = errors.New("scanned payload does not match")

// Result is a finished image and what went into it.
type Result struct {
	Image   *image.RGBA
	Payload string
	Level   matrix.Level
	// Modules is the matrix width N.
	Modules int
	// Decoded is set when the config asked for a scan check.
	Decoded string
}

// Runner executes render and composite jobs.
type Runner struct {
	log zerolog.Logger
}

// New returns a Runner that logs to log.
func New(log zerolog.Logger) *Runner {
	return &Runner{log: log}
}

// Run validates cfg and produces the image for mode. Composite mode draws the
// three layers and merges them through the eye masks; every other mode is a
// single styled render.
func (r *Runner) Run(mode config.Mode, cfg config.Config) (Result, error) {
	start := time.Now()
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	job, err := r.prepare(cfg)
	if err != nil {
		return Result{}, err
	}

	var img *image.RGBA
	if mode == config.ModeComposite {
		img, err = r.composite(job)
	} else {
		img, err = r.render(job)
	}
	if err != nil {
		return Result{}, err
	}

	res := Result{Image: img, Payload: job.payload, Level: job.level, Modules: job.m.Size()}
	if cfg.Verify {
		decoded, err := output.Verify(img)
		if err != nil {
			return res, err
		}
		if decoded != job.payload {
			return res, fmt.Errorf("%w: got %q", ErrVerifyMismatch, decoded)
		}
		res.Decoded = decoded
	}

	r.log.Debug().
		Str("mode", string(mode)).
		Str("ecc", job.level.String()).
		Int("modules", res.Modules).
		Int("pixels", img.Bounds().Dx()).
		Dur("took", time.Since(start)).
		Msg("rendered QR code")
	return res, nil
}

// RunToFile runs the job and writes the image to cfg.Output.
func (r *Runner) RunToFile(mode config.Mode, cfg config.Config) (Result, error) {
	res, err := r.Run(mode, cfg)
	if err != nil {
		return res, err
	}
	if err := output.Save(res.Image, cfg.Output, cfg.Size); err != nil {
		return res, err
	}
	r.log.Info().Str("file", cfg.Output).Int("modules", res.Modules).Msg("saved QR code")
	return res, nil
}

type job struct {
	cfg     config.Config
	payload string
	level   matrix.Level
	m       matrix.Matrix
}

func (r *Runner) prepare(cfg config.Config) (job, error) {
	text, err := cfg.Payload()
	if err != nil {
		return job{}, err
	}
	level, err := matrix.ParseLevel(cfg.ECC)
	if err != nil {
		return job{}, err
	}
	enc, err := matrix.EncoderByName(cfg.Encoder)
	if err != nil {
		return job{}, err
	}
	m, err := enc.Encode(text, level)
	if err != nil {
		return job{}, err
	}
	r.log.Debug().Str("encoder", cfg.Encoder).Int("bytes", len(text)).Int("modules", m.Size()).Msg("encoded payload")
	return job{cfg: cfg, payload: text, level: level, m: m}, nil
}

func (r *Runner) render(j job) (*image.RGBA, error) {
	cfg := j.cfg
	fg, bg, err := colors(cfg)
	if err != nil {
		return nil, err
	}
	opts, err := cellOptions(cfg, cfg.Module, cfg.EyeModule, cfg.Eyes, fg, bg)
	if err != nil {
		return nil, err
	}
	if cfg.Logo != "" {
		logo, err := render.LoadLogo(cfg.Logo)
		if err != nil {
			return nil, err
		}
		opts.Logo = logo
		opts.LogoRatio = cfg.LogoRatio
	}
	return render.Render(j.m, opts)
}

func (r *Runner) composite(j job) (*image.RGBA, error) {
	cfg := j.cfg
	g, err := geometry.New(j.m.Size(), cfg.BoxSize, cfg.Border)
	if err != nil {
		return nil, err
	}

	var masks composite.Masks
	if cfg.Masks == config.MasksFixed {
		masks, err = composite.FixedMasks(g.ImageSize())
		if err != nil {
			return nil, err
		}
	} else {
		masks = composite.GridMasks(g)
	}

	base, err := r.layer(j, "base", cfg.Layers.Base)
	if err != nil {
		return nil, err
	}
	inner, err := r.layer(j, "inner", cfg.Layers.Inner)
	if err != nil {
		return nil, err
	}
	outer, err := r.layer(j, "outer", cfg.Layers.Outer)
	if err != nil {
		return nil, err
	}

	layers := composite.Layers{Base: base, InnerEyes: inner, OuterEyes: outer}
	img, err := layers.Assemble(masks)
	if err != nil {
		return nil, err
	}
	r.log.Debug().Str("masks", cfg.Masks).Msg("composited eye layers")
	return img, nil
}

func (r *Runner) layer(j job, name string, l config.Layer) (*image.RGBA, error) {
	cfg := j.cfg
	fg, bg, err := colors(cfg)
	if err != nil {
		return nil, err
	}
	// Layers without their own colours use the top-level ones.
	fg, bg = config.ColorOr(l.Fg, fg), config.ColorOr(l.Bg, bg)

	r.log.Debug().Str("layer", name).Str("engine", l.Engine).Msg("rendering layer")
	if l.Engine == config.EngineLibrary {
		img, err := render.RenderLibrary(j.payload, j.level, render.LibraryOptions{
			Box:        cfg.BoxSize,
			Border:     cfg.Border,
			Shape:      l.Shape,
			Foreground: fg,
			Background: bg,
		})
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", name, err)
		}
		return img, nil
	}

	opts, err := cellOptions(cfg, l.Module, l.EyeModule, l.Eyes, fg, bg)
	if err != nil {
		return nil, fmt.Errorf("layer %s: %w", name, err)
	}
	return render.Render(j.m, opts)
}

func colors(cfg config.Config) (fg, bg color.RGBA, err error) {
	if fg, err = config.ParseColor(cfg.Fg); err != nil {
		return fg, bg, err
	}
	bg, err = config.ParseColor(cfg.Bg)
	return fg, bg, err
}

func cellOptions(cfg config.Config, module, eyeModule, eyes string, fg, bg color.RGBA) (render.Options, error) {
	md, err := style.ModuleByName(module)
	if err != nil {
		return render.Options{}, err
	}
	emd, err := style.ModuleByName(eyeModule)
	if err != nil {
		return render.Options{}, err
	}
	ed, err := style.EyesByName(eyes)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Box:        cfg.BoxSize,
		Border:     cfg.Border,
		Module:     md,
		Eyes:       ed,
		EyeModule:  emd,
		Foreground: fg,
		Background: bg,
	}, nil
}
