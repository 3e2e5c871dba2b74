package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// HUD draws a few lines of diagnostic text in the top-left corner.
type HUD struct {
	face       font.Face
	color      color.Color
	x, y       int
	lineHeight int
}

// NewHUD parses the embedded Go Regular font at the given size.
func NewHUD(size float64, clr color.Color, x, y int) (*HUD, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HUD font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HUD font face: %w", err)
	}

	return &HUD{
		face:       face,
		color:      clr,
		x:          x,
		y:          y,
		lineHeight: face.Metrics().Height.Ceil(),
	}, nil
}

// Draw renders lines top to bottom.
func (h *HUD) Draw(screen *ebiten.Image, lines ...string) {
	for i, line := range lines {
		text.Draw(screen, line, h.face, h.x, h.y+i*h.lineHeight, h.color)
	}
}
