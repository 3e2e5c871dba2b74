// cmd/field/main.go
package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"

	"go-particle-field/internal/app"
	"go-particle-field/internal/config"
	"go-particle-field/internal/surface"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	settingsPath := flag.String("settings", "", "JSON file overriding particle settings")
	seed := flag.Int64("seed", 0, "random seed, 0 for time-based")
	showHUD := flag.Bool("hud", false, "show diagnostics overlay")
	pprofAddr := flag.String("pprof", "", "serve net/http/pprof on this address, e.g. localhost:6060")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	settings := config.DefaultSettings()
	if *settingsPath != "" {
		var err error
		if settings, err = config.LoadSettings(*settingsPath); err != nil {
			log.Fatal(err)
		}
	}

	game, err := app.New(settings, app.Options{
		Seed:     *seed,
		ShowHUD:  *showHUD,
		Viewport: surface.Size{Width: config.ScreenWidth, Height: config.ScreenHeight},
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Ember Field | P - toggle layer, H - HUD, Esc - quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// Один тик на кадр дисплея, как у requestAnimationFrame
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
