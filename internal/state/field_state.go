// internal/state/field_state.go
package state

import (
	"go-particle-field/internal/particle"
	"go-particle-field/internal/surface"
	"go-particle-field/internal/surface/ebsurface"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Убеждаемся, что состояния соответствуют интерфейсу State
var (
	_ State = (*FieldState)(nil)
	_ State = (*HiddenState)(nil)
)

// ToggleKey переключает слой частиц
const ToggleKey = ebiten.KeyP

// Scene — общие для состояний ресурсы
type Scene struct {
	Field        *particle.Field
	Layer        *ebsurface.Surface
	Viewport     func() surface.Size
	LayerOpacity float64
}

// FieldState — слой частиц смонтирован и анимируется
type FieldState struct {
	sm    *StateMachine
	scene *Scene
	opts  ebiten.DrawImageOptions
}

func NewFieldState(sm *StateMachine, scene *Scene) *FieldState {
	s := &FieldState{sm: sm, scene: scene}
	s.opts.ColorScale.ScaleAlpha(float32(scene.LayerOpacity))
	return s
}

// Enter монтирует поле при появлении слоя
func (s *FieldState) Enter() {
	s.scene.Field.Start(s.scene.Layer, s.scene.Viewport())
}

func (s *FieldState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ToggleKey) {
		s.sm.SetState(NewHiddenState(s.sm, s.scene))
	}
}

// Draw накладывает слой на экран с прозрачностью слоя
func (s *FieldState) Draw(screen *ebiten.Image) {
	screen.DrawImage(s.scene.Layer.Layer(), &s.opts)
}

// Exit снимает поле: кадры больше не планируются
func (s *FieldState) Exit() {
	s.scene.Field.Stop()
}

// HiddenState — слой снят, виден только фон
type HiddenState struct {
	sm    *StateMachine
	scene *Scene
}

func NewHiddenState(sm *StateMachine, scene *Scene) *HiddenState {
	return &HiddenState{sm: sm, scene: scene}
}

func (s *HiddenState) Enter() {
	// Ничего не делаем при входе
}

func (s *HiddenState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ToggleKey) {
		s.sm.SetState(NewFieldState(s.sm, s.scene))
	}
}

func (s *HiddenState) Draw(screen *ebiten.Image) {
	// Фон заливает App
}

func (s *HiddenState) Exit() {
	// Ничего не делаем при выходе
}
