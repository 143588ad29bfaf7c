package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cristianadrielbraun/qrstyle/internal/config"
	"github.com/cristianadrielbraun/qrstyle/internal/handlers"
	"github.com/cristianadrielbraun/qrstyle/internal/pipeline"
	"github.com/cristianadrielbraun/qrstyle/web/components"
	"github.com/cristianadrielbraun/qrstyle/web/pages"
)

const usage = `usage: qrstyle <command> [flags]

commands:
  render     draw a styled QR code
  composite  merge three styled renders through the eye masks
  serve      run the HTTP API

run "qrstyle <command> -h" for the flags of a command`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	mode := config.Mode(os.Args[1])
	switch mode {
	case config.ModeRender, config.ModeComposite, config.ModeServe:
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Parse(mode, os.Args[2:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := newLogger(cfg.LogLevel)

	if mode == config.ModeServe {
		err = serve(log, cfg)
	} else {
		_, err = pipeline.New(log).RunToFile(mode, cfg)
	}
	if err != nil {
		log.Error().Err(err).Str("command", string(mode)).Msg("failed")
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func serve(log zerolog.Logger, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	h := handlers.New(log)
	h.Register(r)

	defaults := components.FormDefaults{
		Data:   cfg.Data,
		ECC:    cfg.ECC,
		Module: cfg.Module,
		Eyes:   cfg.Eyes,
		Fg:     cfg.Fg,
		Bg:     cfg.Bg,
	}
	r.GET("/", func(c *gin.Context) {
		if err := pages.HomePage(defaults).Render(c.Request.Context(), c.Writer); err != nil {
			c.String(500, err.Error())
		}
	})

	addr := cfg.Addr()
	log.Info().Str("addr", addr).Msg("qrstyle listening")
	return r.Run(addr)
}
