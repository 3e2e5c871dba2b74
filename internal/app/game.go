// internal/app/game.go
package app

import (
	"fmt"
	"log"
	"time"

	"go-particle-field/internal/anim"
	"go-particle-field/internal/config"
	"go-particle-field/internal/event"
	"go-particle-field/internal/particle"
	"go-particle-field/internal/state"
	"go-particle-field/internal/surface"
	"go-particle-field/internal/surface/ebsurface"
	"go-particle-field/internal/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Options — параметры запуска хоста
type Options struct {
	Seed     int64
	ShowHUD  bool
	Viewport surface.Size // размер до первого вызова Layout
}

// App реализует ebiten.Game: очередь кадров, события окна и машина состояний.
type App struct {
	stateMachine   *state.StateMachine
	queue          *anim.FrameQueue
	events         *event.Dispatcher
	field          *particle.Field
	layer          *ebsurface.Surface
	hud            *HUD
	showHUD        bool
	mounted        bool
	viewport       surface.Size
	lastUpdateTime time.Time
}

// New собирает приложение и сразу монтирует слой частиц
func New(settings config.Settings, opts Options) (*App, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = settings.Seed
	}

	queue := anim.NewFrameQueue()
	events := event.NewDispatcher()
	field, err := particle.NewField(queue, events, utils.NewPRNGService(seed), settings)
	if err != nil {
		return nil, err
	}
	hud, err := NewHUD(config.HUDFontSize, config.HUDTextColor, config.HUDOffsetX, config.HUDOffsetY)
	if err != nil {
		return nil, fmt.Errorf("failed to create HUD: %w", err)
	}

	a := &App{
		stateMachine:   state.NewStateMachine(),
		queue:          queue,
		events:         events,
		field:          field,
		layer:          ebsurface.New(opts.Viewport),
		hud:            hud,
		showHUD:        opts.ShowHUD,
		viewport:       opts.Viewport,
		lastUpdateTime: time.Now(),
	}

	events.Subscribe(event.FieldMounted, event.ListenerFunc(func(event.Event) { a.mounted = true }))
	events.Subscribe(event.FieldUnmounted, event.ListenerFunc(func(event.Event) { a.mounted = false }))

	scene := &state.Scene{
		Field:        field,
		Layer:        a.layer,
		Viewport:     a.Viewport,
		LayerOpacity: settings.LayerOpacity,
	}
	a.stateMachine.SetState(state.NewFieldState(a.stateMachine, scene))
	return a, nil
}

// Viewport — последний известный размер окна
func (a *App) Viewport() surface.Size {
	return a.viewport
}

func (a *App) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.showHUD = !a.showHUD
	}

	// Один Pump на кадр — аналог requestAnimationFrame
	a.queue.Pump()
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	a.stateMachine.Draw(screen)

	if a.showHUD {
		status := "hidden"
		if a.mounted {
			status = "mounted"
		}
		a.hud.Draw(screen,
			fmt.Sprintf("FPS %.0f  TPS %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()),
			fmt.Sprintf("particles %d  frames %d  layer %s", a.field.Len(), a.field.Frames(), status),
			fmt.Sprintf("viewport %v", a.viewport),
			"P: toggle layer  H: HUD  Esc: quit",
		)
	}
}

// Layout растягивает логический экран на всё окно и рассылает
// ViewportResized, когда размер окна меняется.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := surface.Size{Width: outsideWidth, Height: outsideHeight}
	if size != a.viewport {
		a.viewport = size
		a.events.Dispatch(event.Event{Type: event.ViewportResized, Data: size})
	}
	return outsideWidth, outsideHeight
}

// Close снимает текущее состояние, останавливая анимацию
func (a *App) Close() {
	a.stateMachine.SetState(nil)
	log.Println("Particle field host closed")
}
