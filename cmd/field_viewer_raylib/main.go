package main

import (
	"flag"
	"fmt"
	"log"

	"go-particle-field/internal/anim"
	"go-particle-field/internal/config"
	"go-particle-field/internal/event"
	"go-particle-field/internal/particle"
	"go-particle-field/internal/surface"
	"go-particle-field/internal/surface/rlsurface"
	"go-particle-field/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	settingsPath := flag.String("settings", "", "JSON file overriding particle settings")
	seed := flag.Int64("seed", 0, "random seed, 0 for time-based")
	flag.Parse()

	settings := config.DefaultSettings()
	if *settingsPath != "" {
		var err error
		if settings, err = config.LoadSettings(*settingsPath); err != nil {
			log.Fatal(err)
		}
	}

	// --- Инициализация ---
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint)
	rl.InitWindow(config.ScreenWidth, config.ScreenHeight, "Raylib Ember Field | P - toggle layer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(rl.GetMonitorRefreshRate(rl.GetCurrentMonitor())))

	bg := rl.NewColor(config.BackgroundColor.R, config.BackgroundColor.G, config.BackgroundColor.B, 255)
	viewport := func() surface.Size {
		return surface.Size{Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()}
	}

	queue := anim.NewFrameQueue()
	events := event.NewDispatcher()
	field, err := particle.NewField(queue, events, utils.NewPRNGService(*seed), settings)
	if err != nil {
		log.Fatal(err)
	}

	layer := rlsurface.New(viewport())
	defer layer.Unload()
	// Текстура следит за окном и при снятом поле, чтобы Start внутри
	// BeginTextureMode не пересоздавал уже привязанную цель
	events.Subscribe(event.ViewportResized, surface.Follower{Target: layer})

	// Первый кадр Start рисует сразу, поэтому тоже внутри texture mode
	rl.BeginTextureMode(layer.Texture())
	field.Start(layer, viewport())
	rl.EndTextureMode()
	defer field.Stop()

	// --- Главный цикл ---
	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			events.Dispatch(event.Event{Type: event.ViewportResized, Data: viewport()})
		}
		if rl.IsKeyPressed(rl.KeyP) {
			if field.Running() {
				field.Stop()
			} else {
				layer.Resize(viewport())
				rl.BeginTextureMode(layer.Texture())
				field.Start(layer, viewport())
				rl.EndTextureMode()
			}
		}

		rl.BeginTextureMode(layer.Texture())
		queue.Pump()
		rl.EndTextureMode()

		rl.BeginDrawing()
		rl.ClearBackground(bg)
		if field.Running() {
			layer.Draw(float32(settings.LayerOpacity))
		}
		rl.DrawText(fmt.Sprintf("particles %d  frames %d", field.Len(), field.Frames()), 12, 12, 16, rl.RayWhite)
		rl.DrawFPS(12, 32)
		rl.EndDrawing()
	}
}
