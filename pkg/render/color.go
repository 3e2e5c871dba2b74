// pkg/render/color.go
package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the colors of one particle color class: the glow center,
// the color the glow fades into, and the solid core.
type Palette struct {
	Glow     colorful.Color
	GlowFade colorful.Color
	Core     colorful.Color
}

// ParsePalette builds a Palette from "#rrggbb" strings.
func ParsePalette(glow, glowFade, core string) (Palette, error) {
	var p Palette
	var err error
	if p.Glow, err = colorful.Hex(glow); err != nil {
		return p, fmt.Errorf("glow color: %w", err)
	}
	if p.GlowFade, err = colorful.Hex(glowFade); err != nil {
		return p, fmt.Errorf("glow fade color: %w", err)
	}
	if p.Core, err = colorful.Hex(core); err != nil {
		return p, fmt.Errorf("core color: %w", err)
	}
	return p, nil
}

// WithAlpha converts c to a straight-alpha color with the given opacity in [0, 1].
func WithAlpha(c colorful.Color, opacity float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha8(opacity)}
}

func alpha8(opacity float64) uint8 {
	switch {
	case opacity <= 0:
		return 0
	case opacity >= 1:
		return 0xff
	}
	return uint8(opacity*0xff + 0.5)
}
