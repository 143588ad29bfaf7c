package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor reads "transparent", #RGB, #RRGGBB or #RRGGBBAA. The leading #
// is optional. The result is alpha-premultiplied.
func ParseColor(s string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "transparent" {
		return color.RGBA{}, nil
	}
	v = strings.TrimPrefix(v, "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) == 6 {
		v += "ff"
	}
	if len(v) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	c := color.NRGBA{uint8(n >> 24), uint8(n >> 16), uint8(n >> 8), uint8(n)}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}

// ColorOr parses s, returning def when s is empty or invalid.
func ColorOr(s string, def color.RGBA) color.RGBA {
	if strings.TrimSpace(s) == "" {
		return def
	}
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}
