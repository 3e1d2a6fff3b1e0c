package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA colour with components in [0, 1]. It reads and writes as
// a "#rrggbb" hex string; alpha is not part of the text form.
type Color struct {
	R, G, B, A float64
}

// ParseColor parses "#rgb" or "#rrggbb"
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// MustParseColor is ParseColor for literals
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns the colour with alpha replaced
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Hex returns the "#rrggbb" form
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
