// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1280
	ScreenHeight = 800
	MaxDeltaTime = 0.06

	ParticleCount = 80
	RecycleMargin = 10.0 // px за границей видимой области

	SizeMin    = 0.5
	SizeMax    = 3.5
	SpeedYMin  = 0.2 // строго больше нуля: частицы всегда летят вверх
	SpeedYMax  = 1.0
	SpeedXMin  = -0.15
	SpeedXMax  = 0.15
	OpacityMin = 0.1
	OpacityMax = 0.7

	AccentChance = 0.3 // доля фиолетовых частиц

	GlowScale    = 3.0 // радиус свечения относительно размера частицы
	LayerOpacity = 0.6 // прозрачность всего слоя поверх фона

	GlowSegments = 24 // сегментов в веере градиента

	HUDFontSize = 12
	HUDOffsetX  = 12
	HUDOffsetY  = 20
)

// Палитры в hex, как в tailwind-конфиге страницы
const (
	PrimaryGlowHex     = "#b40000"
	PrimaryGlowFadeHex = "#640000"
	PrimaryCoreHex     = "#ff3232"
	AccentGlowHex      = "#9d4edd"
	AccentGlowFadeHex  = "#640064"
	AccentCoreHex      = "#c896ff"
)

var (
	BackgroundColor = color.RGBA{10, 10, 10, 255}
	HUDTextColor    = color.RGBA{240, 240, 240, 200}
)
