// Package surface describes the 2D drawing target the particle field paints on
// and provides the software backend for it. GPU backends live in subpackages.
package surface

import (
	"fmt"
	"image/color"
)

// Size is a viewport or backing-buffer size in device pixels.
type Size struct {
	Width  int
	Height int
}

// Empty reports whether the size has zero area.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Surface is a raster target sized in device pixels.
type Surface interface {
	// Clear makes the whole backing buffer transparent.
	Clear()
	// Resize reallocates the backing buffer; its contents are lost.
	Resize(size Size)
	// FillRadialGradient paints a disc fading from inner at the center to outer at radius.
	FillRadialGradient(cx, cy, radius float64, inner, outer color.NRGBA)
	// FillCircle paints a solid disc.
	FillCircle(cx, cy, radius float64, c color.NRGBA)
}
