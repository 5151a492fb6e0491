package styles

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// DefaultColor is used for glyphs without a color.
const DefaultColor = "#7245dc"

var named = map[string]color.RGBA{
	"black":  {0, 0, 0, 255},
	"white":  {255, 255, 255, 255},
	"red":    {255, 0, 0, 255},
	"green":  {0, 128, 0, 255},
	"blue":   {0, 0, 255, 255},
	"orange": {255, 165, 0, 255},
	"purple": {128, 0, 128, 255},
	"grey":   {128, 128, 128, 255},
	"gray":   {128, 128, 128, 255},
}

// ParseHex parses "#rgb", "#rrggbb" or a basic color name.
func ParseHex(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, true
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Darken scales each channel of s toward black by amount (0..1). Unknown
// colors come back unchanged.
func Darken(s string, amount float64) string {
	c, ok := ParseHex(s)
	if !ok {
		return s
	}
	k := 1 - min(max(amount, 0), 1)
	return Hex(color.RGBA{R: uint8(float64(c.R) * k), G: uint8(float64(c.G) * k), B: uint8(float64(c.B) * k), A: 255})
}

// ContrastText picks black or white text for a background color.
func ContrastText(bg string) string {
	c, ok := ParseHex(bg)
	if !ok {
		c, _ = ParseHex(DefaultColor)
	}
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if lum > 150 {
		return "#000"
	}
	return "#fff"
}
