package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstyle/internal/config"
	"github.com/cristianadrielbraun/qrstyle/internal/geometry"
	"github.com/cristianadrielbraun/qrstyle/internal/matrix"
	"github.com/cristianadrielbraun/qrstyle/internal/output"
)

const (
	maxPayload = 4096
	maxBox     = 64
	maxBorder  = 16
	maxSize    = 2048
)

// normalizeHTTPURL validates and normalizes a URL string for QR generation.
// It ensures an http/https scheme, a non-empty hostname, and returns a cleaned absolute URL.
func normalizeHTTPURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("URL parameter is required")
	}
	// If missing scheme, default to https
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a valid host")
	}
	if len(v) > maxPayload {
		return "", fmt.Errorf("URL is too long")
	}
	return u.String(), nil
}

// requestPayload takes data verbatim, or a url normalised to http(s).
func requestPayload(c *gin.Context) (string, error) {
	if data := c.Query("data"); data != "" {
		if len(data) > maxPayload {
			return "", fmt.Errorf("data is too long")
		}
		return data, nil
	}
	if raw := strings.TrimSpace(c.Query("url")); raw != "" {
		return normalizeHTTPURL(raw)
	}
	return "", fmt.Errorf("data or url parameter is required")
}

func intQuery(c *gin.Context, key string, def, max int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	if v < 0 || v > max {
		return 0, fmt.Errorf("%s must be between 0 and %d", key, max)
	}
	return v, nil
}

// requestConfig overlays the query parameters on the defaults for mode.
func requestConfig(c *gin.Context, mode config.Mode) (config.Config, error) {
	cfg := config.Default(mode)
	text, err := requestPayload(c)
	if err != nil {
		return cfg, err
	}
	cfg.Data = text

	if cfg.BoxSize, err = intQuery(c, "box", cfg.BoxSize, maxBox); err != nil {
		return cfg, err
	}
	if cfg.Border, err = intQuery(c, "border", cfg.Border, maxBorder); err != nil {
		return cfg, err
	}
	if cfg.Size, err = intQuery(c, "size", 0, maxSize); err != nil {
		return cfg, err
	}

	fields := map[string]*string{
		"ecc":        &cfg.ECC,
		"encoder":    &cfg.Encoder,
		"module":     &cfg.Module,
		"eyes":       &cfg.Eyes,
		"eye_module": &cfg.EyeModule,
		"fg":         &cfg.Fg,
		"bg":         &cfg.Bg,
		"masks":      &cfg.Masks,
	}
	if mode == config.ModeComposite {
		// Eye styles come from the inner and outer layers; the rest style the base.
		for _, key := range []string{"eyes", "eye_module"} {
			if _, ok := c.GetQuery(key); ok {
				return cfg, fmt.Errorf("%s cannot be set in composite mode, eye styles come from the layers", key)
			}
		}
		delete(fields, "eyes")
		delete(fields, "eye_module")
		fields["module"] = &cfg.Layers.Base.Module
		fields["fg"] = &cfg.Layers.Base.Fg
		fields["bg"] = &cfg.Layers.Base.Bg
	}
	for key, field := range fields {
		if v, ok := c.GetQuery(key); ok {
			*field = v
		}
	}
	return cfg, nil
}

// QRCodeHandler renders the payload in data (or url) with the requested
// styles. mode=composite merges the three eye layers; there module, fg and bg
// style the base layer.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	mode := config.Mode(strings.ToLower(c.DefaultQuery("mode", string(config.ModeRender))))
	if mode != config.ModeRender && mode != config.ModeComposite {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown mode %q", mode)})
		return
	}

	// Parse format parameter (default to PNG)
	format := strings.ToLower(c.DefaultQuery("format", "png"))
	if format == "jpeg" {
		format = "jpg"
	}
	if format != "png" && format != "jpg" {
		format = "png"
	}

	cfg, err := requestConfig(c, mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.runner.Run(mode, cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if isClientError(err) {
			status = http.StatusBadRequest
		}
		h.log.Warn().Err(err).Str("mode", string(mode)).Int("status", status).Msg("QR request failed")
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, res.Image, format, cfg.Size); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to encode image: %v", err)})
		return
	}

	// Add debug header for quick inspection from devtools
	c.Header("X-QR-Debug", fmt.Sprintf("mode=%s;format=%s;ecc=%s;modules=%d", mode, format, res.Level, res.Modules))
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, output.ContentType(format), buf.Bytes())
}

func isClientError(err error) bool {
	return errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, matrix.ErrEncode) ||
		errors.Is(err, geometry.ErrGridTooSmall) ||
		errors.Is(err, geometry.ErrInvalidGeometry)
}
