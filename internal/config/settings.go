package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// Range is a half-open interval [Min, Max) for randomized particle attributes.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PaletteDef holds the hex colors of one particle color class.
type PaletteDef struct {
	Glow     string `json:"glow"`
	GlowFade string `json:"glow_fade"`
	Core     string `json:"core"`
}

// Settings is the tunable part of the particle field. Zero value is not usable,
// start from DefaultSettings.
type Settings struct {
	ParticleCount int        `json:"particle_count"`
	RecycleMargin float64    `json:"recycle_margin"`
	Size          Range      `json:"size"`
	SpeedY        Range      `json:"speed_y"`
	SpeedX        Range      `json:"speed_x"`
	Opacity       Range      `json:"opacity"`
	AccentChance  float64    `json:"accent_chance"`
	GlowScale     float64    `json:"glow_scale"`
	LayerOpacity  float64    `json:"layer_opacity"`
	Seed          int64      `json:"seed"`
	Primary       PaletteDef `json:"primary"`
	Accent        PaletteDef `json:"accent"`
}

// DefaultSettings returns the settings of the landing page background.
func DefaultSettings() Settings {
	return Settings{
		ParticleCount: ParticleCount,
		RecycleMargin: RecycleMargin,
		Size:          Range{Min: SizeMin, Max: SizeMax},
		SpeedY:        Range{Min: SpeedYMin, Max: SpeedYMax},
		SpeedX:        Range{Min: SpeedXMin, Max: SpeedXMax},
		Opacity:       Range{Min: OpacityMin, Max: OpacityMax},
		AccentChance:  AccentChance,
		GlowScale:     GlowScale,
		LayerOpacity:  LayerOpacity,
		Primary: PaletteDef{
			Glow:     PrimaryGlowHex,
			GlowFade: PrimaryGlowFadeHex,
			Core:     PrimaryCoreHex,
		},
		Accent: PaletteDef{
			Glow:     AccentGlowHex,
			GlowFade: AccentGlowFadeHex,
			Core:     AccentCoreHex,
		},
	}
}

// LoadSettings reads a JSON settings file on top of DefaultSettings, so the
// file only needs to name the fields it overrides.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	file, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := json.Unmarshal(file, &s); err != nil {
		return s, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	log.Printf("Loaded particle settings from %s (%d particles)", path, s.ParticleCount)
	return s, nil
}

// Validate checks the invariants the simulator relies on.
func (s Settings) Validate() error {
	if s.ParticleCount <= 0 {
		return fmt.Errorf("particle_count must be positive, got %d", s.ParticleCount)
	}
	if s.RecycleMargin < 0 {
		return fmt.Errorf("recycle_margin must not be negative, got %g", s.RecycleMargin)
	}

	ranges := []struct {
		name string
		r    Range
	}{
		{"size", s.Size},
		{"speed_y", s.SpeedY},
		{"speed_x", s.SpeedX},
		{"opacity", s.Opacity},
	}
	for _, nr := range ranges {
		if nr.r.Min >= nr.r.Max {
			return fmt.Errorf("%s: min %g must be below max %g", nr.name, nr.r.Min, nr.r.Max)
		}
	}
	if s.Size.Min <= 0 {
		return errors.New("size: min must be positive")
	}
	if s.SpeedY.Min <= 0 {
		return errors.New("speed_y: min must be positive, particles only drift upward")
	}
	if s.Opacity.Min < 0 || s.Opacity.Max > 1 {
		return fmt.Errorf("opacity: range [%g, %g) is outside [0, 1]", s.Opacity.Min, s.Opacity.Max)
	}
	if s.AccentChance < 0 || s.AccentChance > 1 {
		return fmt.Errorf("accent_chance must be within [0, 1], got %g", s.AccentChance)
	}
	if s.GlowScale < 1 {
		return fmt.Errorf("glow_scale must be at least 1, got %g", s.GlowScale)
	}
	if s.LayerOpacity < 0 || s.LayerOpacity > 1 {
		return fmt.Errorf("layer_opacity must be within [0, 1], got %g", s.LayerOpacity)
	}

	for name, p := range map[string]PaletteDef{"primary": s.Primary, "accent": s.Accent} {
		for _, hex := range []string{p.Glow, p.GlowFade, p.Core} {
			if _, err := colorful.Hex(hex); err != nil {
				return fmt.Errorf("%s palette: %w", name, err)
			}
		}
	}
	return nil
}
