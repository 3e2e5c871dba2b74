// Package ebsurface — бэкенд surface.Surface на ebiten.
package ebsurface

import (
	"image"
	"image/color"
	"math"

	"go-particle-field/internal/config"
	"go-particle-field/internal/surface"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface — offscreen-слой *ebiten.Image, на который рисуют частицы.
// Хост накладывает Layer() на экран в Draw.
type Surface struct {
	layer    *ebiten.Image
	size     surface.Size
	fillImg  *ebiten.Image
	fillSub  *ebiten.Image
	vs       []ebiten.Vertex
	is       []uint16
	triOpts  ebiten.DrawTrianglesOptions
	segments int
}

// New создаёт слой заданного размера
func New(size surface.Size) *Surface {
	// 3x3 белая текстура: берём центральный пиксель, чтобы не ловить края при сэмплинге
	fillImg := ebiten.NewImage(3, 3)
	fillImg.Fill(color.White)

	segments := config.GlowSegments
	s := &Surface{
		fillImg:  fillImg,
		fillSub:  fillImg.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		vs:       make([]ebiten.Vertex, 0, segments+2),
		is:       make([]uint16, 0, segments*3),
		segments: segments,
	}
	s.triOpts.AntiAlias = true
	s.Resize(size)
	return s
}

// Layer возвращает текущий буфер слоя
func (s *Surface) Layer() *ebiten.Image {
	return s.layer
}

// Size возвращает логический размер слоя (может быть нулевым)
func (s *Surface) Size() surface.Size {
	return s.size
}

func (s *Surface) Clear() {
	s.layer.Clear()
}

func (s *Surface) Resize(size surface.Size) {
	if s.layer != nil {
		s.layer.Deallocate()
	}
	// ebiten не создаёт пустые изображения
	s.layer = ebiten.NewImage(max(size.Width, 1), max(size.Height, 1))
	s.size = size
}

// FillRadialGradient рисует веер треугольников: центр цвета inner, обод цвета outer.
// Вершинные цвета интерполируются GPU, что и даёт радиальный градиент.
func (s *Surface) FillRadialGradient(cx, cy, radius float64, inner, outer color.NRGBA) {
	if radius <= 0 {
		return
	}
	s.vs = s.vs[:0]
	s.is = s.is[:0]

	s.vs = append(s.vs, fanVertex(cx, cy, inner))
	for i := 0; i <= s.segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(s.segments)
		s.vs = append(s.vs, fanVertex(cx+radius*math.Cos(a), cy+radius*math.Sin(a), outer))
	}
	for i := 1; i <= s.segments; i++ {
		s.is = append(s.is, 0, uint16(i), uint16(i+1))
	}

	s.layer.DrawTriangles(s.vs, s.is, s.fillSub, &s.triOpts)
}

func (s *Surface) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	vector.DrawFilledCircle(s.layer, float32(cx), float32(cy), float32(radius), c, true)
}

func fanVertex(x, y float64, c color.NRGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 0xff,
		ColorG: float32(c.G) / 0xff,
		ColorB: float32(c.B) / 0xff,
		ColorA: float32(c.A) / 0xff,
	}
}
