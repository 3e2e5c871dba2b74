// cmd/fieldsnap renders the particle field headlessly and writes a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"go-particle-field/internal/anim"
	"go-particle-field/internal/config"
	"go-particle-field/internal/event"
	"go-particle-field/internal/particle"
	"go-particle-field/internal/surface"
	"go-particle-field/internal/utils"

	"golang.org/x/image/draw"
)

func main() {
	width := flag.Int("w", config.ScreenWidth, "viewport width")
	height := flag.Int("h", config.ScreenHeight, "viewport height")
	frames := flag.Int("frames", 120, "frames to simulate before the snapshot")
	seed := flag.Int64("seed", 1, "random seed, 0 for time-based")
	scale := flag.Float64("scale", 1, "output scale factor")
	settingsPath := flag.String("settings", "", "JSON file overriding particle settings")
	out := flag.String("out", "field.png", "output PNG path")
	flag.Parse()

	settings := config.DefaultSettings()
	if *settingsPath != "" {
		var err error
		if settings, err = config.LoadSettings(*settingsPath); err != nil {
			log.Fatal(err)
		}
	}

	img, err := snapshot(settings, surface.Size{Width: *width, Height: *height}, *frames, *seed)
	if err != nil {
		log.Fatal(err)
	}
	if *scale != 1 {
		img = rescale(img, *scale)
	}
	if err := writePNG(*out, img); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s (%dx%d, %d frames)", *out, img.Bounds().Dx(), img.Bounds().Dy(), *frames)
}

// snapshot прогоняет поле на программной поверхности и накладывает слой на фон
func snapshot(settings config.Settings, size surface.Size, frames int, seed int64) (*image.RGBA, error) {
	if size.Empty() {
		return nil, fmt.Errorf("viewport %v has zero area", size)
	}
	if frames < 1 {
		return nil, fmt.Errorf("frames must be at least 1, got %d", frames)
	}

	queue := anim.NewFrameQueue()
	events := event.NewDispatcher()
	field, err := particle.NewField(queue, events, utils.NewPRNGService(seed), settings)
	if err != nil {
		return nil, err
	}

	layer := surface.NewRaster(size)
	field.Start(layer, size)
	for i := 1; i < frames; i++ {
		queue.Pump()
	}
	field.Stop()

	bounds := image.Rect(0, 0, size.Width, size.Height)
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, image.NewUniform(config.BackgroundColor), image.Point{}, draw.Src)
	mask := image.NewUniform(color.Alpha{A: uint8(settings.LayerOpacity*0xff + 0.5)})
	draw.DrawMask(dst, bounds, layer.Image(), image.Point{}, mask, image.Point{}, draw.Over)
	return dst, nil
}

func rescale(src *image.RGBA, factor float64) *image.RGBA {
	b := src.Bounds()
	w := max(int(float64(b.Dx())*factor), 1)
	h := max(int(float64(b.Dy())*factor), 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}
