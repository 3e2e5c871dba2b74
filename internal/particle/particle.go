package particle

import (
	"image/color"

	"go-particle-field/internal/config"
	"go-particle-field/internal/utils"
	"go-particle-field/pkg/render"
)

// ColorClass — цветовой класс частицы, выбирается один раз при создании
type ColorClass uint8

const (
	Primary ColorClass = iota // красный
	Accent                    // фиолетовый
)

func (c ColorClass) String() string {
	switch c {
	case Primary:
		return "primary"
	case Accent:
		return "accent"
	}
	return "unknown"
}

// Particle — одна светящаяся точка фона. Скорости в пикселях за кадр.
type Particle struct {
	X, Y    float64
	Size    float64
	SpeedY  float64 // > 0, частица всегда поднимается
	SpeedX  float64
	Opacity float64
	Class   ColorClass

	// Цвета считаются при создании: прозрачность и класс не меняются
	glow color.NRGBA
	fade color.NRGBA
	core color.NRGBA
}

// newParticle создаёт частицу в случайной точке [0,w]x[0,h]
func newParticle(rng *utils.PRNGService, s config.Settings, palettes *[2]render.Palette, w, h float64) Particle {
	p := Particle{
		X:       rng.Float64() * w,
		Y:       rng.Float64() * h,
		Size:    rng.Range(s.Size.Min, s.Size.Max),
		SpeedY:  rng.Range(s.SpeedY.Min, s.SpeedY.Max),
		SpeedX:  rng.Range(s.SpeedX.Min, s.SpeedX.Max),
		Opacity: rng.Range(s.Opacity.Min, s.Opacity.Max),
		Class:   Primary,
	}
	if rng.Chance(s.AccentChance) {
		p.Class = Accent
	}

	pal := palettes[p.Class]
	p.glow = render.WithAlpha(pal.Glow, p.Opacity)
	p.fade = render.WithAlpha(pal.GlowFade, 0)
	p.core = render.WithAlpha(pal.Core, p.Opacity)
	return p
}
