package surface

import (
	"image"
	"image/color"
	"math"

	"go-particle-field/internal/utils"

	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four segments approximate a circle.
const kappa = 0.5522847498

// Raster is a software Surface over an *image.RGBA, used for headless
// rendering and snapshot export.
type Raster struct {
	img  *image.RGBA
	size Size
	z    *vector.Rasterizer
	grad radialGradient
	core *image.Uniform
}

// NewRaster allocates a software surface of the given size.
func NewRaster(size Size) *Raster {
	r := &Raster{core: image.NewUniform(color.Transparent)}
	r.Resize(size)
	return r
}

// Image returns the backing buffer. It is replaced on Resize.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) Size() Size {
	return r.size
}

func (r *Raster) Clear() {
	clear(r.img.Pix)
}

func (r *Raster) Resize(size Size) {
	r.size = size
	if size.Empty() {
		r.img = image.NewRGBA(image.Rectangle{})
		r.z = nil
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	if r.z == nil {
		r.z = vector.NewRasterizer(size.Width, size.Height)
	} else {
		r.z.Reset(size.Width, size.Height)
	}
}

func (r *Raster) FillRadialGradient(cx, cy, radius float64, inner, outer color.NRGBA) {
	if !r.visible(cx, cy, radius) {
		return
	}
	r.grad = radialGradient{cx: cx, cy: cy, radius: radius, inner: inner, outer: outer}
	r.fillDisc(cx, cy, radius, &r.grad)
}

func (r *Raster) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	if !r.visible(cx, cy, radius) {
		return
	}
	r.core.C = c
	r.fillDisc(cx, cy, radius, r.core)
}

// visible culls discs that miss the buffer entirely.
func (r *Raster) visible(cx, cy, radius float64) bool {
	if r.z == nil || radius <= 0 {
		return false
	}
	return cx+radius >= 0 && cy+radius >= 0 &&
		cx-radius <= float64(r.size.Width) && cy-radius <= float64(r.size.Height)
}

// fillDisc rasterizes the disc over its bounding box clipped to the buffer.
func (r *Raster) fillDisc(cx, cy, radius float64, src image.Image) {
	box := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius)), int(math.Ceil(cy+radius)),
	).Intersect(r.img.Bounds())
	if box.Empty() {
		return
	}
	r.z.Reset(box.Dx(), box.Dy())

	// path is relative to box.Min
	x, y := float32(cx-float64(box.Min.X)), float32(cy-float64(box.Min.Y))
	rad := float32(radius)
	k := float32(kappa) * rad
	r.z.MoveTo(x+rad, y)
	r.z.CubeTo(x+rad, y+k, x+k, y+rad, x, y+rad)
	r.z.CubeTo(x-k, y+rad, x-rad, y+k, x-rad, y)
	r.z.CubeTo(x-rad, y-k, x-k, y-rad, x, y-rad)
	r.z.CubeTo(x+k, y-rad, x+rad, y-k, x+rad, y)
	r.z.ClosePath()

	r.z.Draw(r.img, box, src, box.Min)
}

// radialGradient is an unbounded image whose color depends on the distance
// from the center, clamped to outer beyond radius. Stops are interpolated
// in premultiplied alpha, so a stop fading to transparent keeps its hue.
type radialGradient struct {
	cx, cy, radius float64
	inner, outer   color.NRGBA
}

func (g *radialGradient) ColorModel() color.Model {
	return color.NRGBAModel
}

func (g *radialGradient) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *radialGradient) At(x, y int) color.Color {
	d := math.Hypot(float64(x)+0.5-g.cx, float64(y)+0.5-g.cy)
	return g.colorAt(utils.Clamp01(d / g.radius))
}

func (g *radialGradient) colorAt(t float64) color.NRGBA {
	ia, oa := float64(g.inner.A)/0xff, float64(g.outer.A)/0xff
	a := utils.Lerp(ia, oa, t)
	if a <= 0 {
		return color.NRGBA{}
	}
	channel := func(from, to uint8) uint8 {
		p := utils.Lerp(float64(from)*ia, float64(to)*oa, t)
		return uint8(math.Round(min(p/a, 0xff)))
	}
	return color.NRGBA{
		R: channel(g.inner.R, g.outer.R),
		G: channel(g.inner.G, g.outer.G),
		B: channel(g.inner.B, g.outer.B),
		A: uint8(math.Round(a * 0xff)),
	}
}
