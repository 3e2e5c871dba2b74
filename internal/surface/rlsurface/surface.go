// Package rlsurface — бэкенд surface.Surface на raylib.
package rlsurface

import (
	"image/color"

	"go-particle-field/internal/surface"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Surface рисует в RenderTexture2D. Все вызовы, кроме Resize, должны идти
// между rl.BeginTextureMode(s.Texture()) и rl.EndTextureMode().
type Surface struct {
	target rl.RenderTexture2D
	size   surface.Size
	loaded bool
}

// New создаёт render texture заданного размера. Окно raylib уже должно быть открыто.
func New(size surface.Size) *Surface {
	s := &Surface{}
	s.Resize(size)
	return s
}

// Texture возвращает текущую render texture
func (s *Surface) Texture() rl.RenderTexture2D {
	return s.target
}

func (s *Surface) Size() surface.Size {
	return s.size
}

func (s *Surface) Clear() {
	rl.ClearBackground(rl.Blank)
}

// Resize пересоздаёт текстуру только при смене размера: хост может
// вызвать Start уже внутри BeginTextureMode с текущей текстурой.
func (s *Surface) Resize(size surface.Size) {
	if s.loaded && size == s.size {
		return
	}
	s.Unload()
	w, h := max(size.Width, 1), max(size.Height, 1)
	s.target = rl.LoadRenderTexture(int32(w), int32(h))
	s.size = size
	s.loaded = true
}

// FillRadialGradient — DrawCircleGradient интерполирует от центра к ободу сам
func (s *Surface) FillRadialGradient(cx, cy, radius float64, inner, outer color.NRGBA) {
	if radius <= 0 {
		return
	}
	rl.DrawCircleGradient(int32(cx), int32(cy), float32(radius), toRL(inner), toRL(outer))
}

func (s *Surface) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	rl.DrawCircleV(rl.NewVector2(float32(cx), float32(cy)), float32(radius), toRL(c))
}

// Draw выводит слой на экран с прозрачностью alpha. Текстура в OpenGL
// перевёрнута по Y, поэтому высота источника отрицательная.
func (s *Surface) Draw(alpha float32) {
	src := rl.NewRectangle(0, 0, float32(s.target.Texture.Width), -float32(s.target.Texture.Height))
	rl.DrawTextureRec(s.target.Texture, src, rl.NewVector2(0, 0), rl.Fade(rl.White, alpha))
}

// Unload освобождает render texture
func (s *Surface) Unload() {
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
		s.loaded = false
	}
}

// raylib ждёт цвета без премультипликации, как и NRGBA
func toRL(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
