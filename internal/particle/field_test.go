package particle

import (
	"image/color"
	"math"
	"testing"

	"go-particle-field/internal/anim"
	"go-particle-field/internal/config"
	"go-particle-field/internal/event"
	"go-particle-field/internal/surface"
	"go-particle-field/internal/utils"
)

type call struct {
	op     string
	x, y   float64
	radius float64
}

// fakeSurface records every call instead of drawing
type fakeSurface struct {
	calls   []call
	clears  int
	resizes []surface.Size
}

func (s *fakeSurface) Clear()                   { s.clears++ }
func (s *fakeSurface) Resize(size surface.Size) { s.resizes = append(s.resizes, size) }
func (s *fakeSurface) draws() int               { return len(s.calls) }

func (s *fakeSurface) FillCircle(x, y, r float64, _ color.NRGBA) {
	s.calls = append(s.calls, call{"core", x, y, r})
}
func (s *fakeSurface) FillRadialGradient(x, y, r float64, _, _ color.NRGBA) {
	s.calls = append(s.calls, call{"glow", x, y, r})
}

type harness struct {
	queue  *anim.FrameQueue
	events *event.Dispatcher
	field  *Field
	surf   *fakeSurface
}

func newHarness(t *testing.T, seed int64) *harness {
	t.Helper()
	h := &harness{
		queue:  anim.NewFrameQueue(),
		events: event.NewDispatcher(),
		surf:   &fakeSurface{},
	}
	f, err := NewField(h.queue, h.events, utils.NewPRNGService(seed), config.DefaultSettings())
	if err != nil {
		t.Fatalf("NewField() error = %v", err)
	}
	h.field = f
	return h
}

func (h *harness) pump(n int) {
	for i := 0; i < n; i++ {
		h.queue.Pump()
	}
}

var viewport = surface.Size{Width: 800, Height: 600}

func TestStartAllocatesPopulation(t *testing.T) {
	h := newHarness(t, 1)
	h.field.Start(h.surf, viewport)

	if !h.field.Running() {
		t.Fatal("field not running after Start")
	}
	if got := h.field.Len(); got != config.ParticleCount {
		t.Fatalf("Len() = %d, want %d", got, config.ParticleCount)
	}
	if len(h.surf.resizes) != 1 || h.surf.resizes[0] != viewport {
		t.Errorf("surface resizes = %v, want [%v]", h.surf.resizes, viewport)
	}
	if h.field.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1 (first tick runs on Start)", h.field.Frames())
	}
	if h.queue.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", h.queue.Pending())
	}

	s := config.DefaultSettings()
	for i, p := range h.field.Particles() {
		switch {
		case p.Size < s.Size.Min || p.Size >= s.Size.Max:
			t.Errorf("particle %d size %v outside %v", i, p.Size, s.Size)
		case p.SpeedY < s.SpeedY.Min || p.SpeedY >= s.SpeedY.Max:
			t.Errorf("particle %d speedY %v outside %v", i, p.SpeedY, s.SpeedY)
		case p.SpeedX < s.SpeedX.Min || p.SpeedX >= s.SpeedX.Max:
			t.Errorf("particle %d speedX %v outside %v", i, p.SpeedX, s.SpeedX)
		case p.Opacity < s.Opacity.Min || p.Opacity >= s.Opacity.Max:
			t.Errorf("particle %d opacity %v outside %v", i, p.Opacity, s.Opacity)
		}
	}
}

func TestPopulationAndBoundsInvariant(t *testing.T) {
	h := newHarness(t, 2)
	h.field.Start(h.surf, viewport)

	m := config.RecycleMargin
	w, hgt := float64(viewport.Width), float64(viewport.Height)
	for frame := 0; frame < 3000; frame++ {
		h.queue.Pump()
		if got := h.field.Len(); got != config.ParticleCount {
			t.Fatalf("frame %d: Len() = %d, want %d", frame, got, config.ParticleCount)
		}
		for i, p := range h.field.particles {
			if p.Y < -m || p.Y > hgt+m || p.X < -m || p.X > w+m {
				t.Fatalf("frame %d: particle %d at (%v, %v) outside the band", frame, i, p.X, p.Y)
			}
		}
	}
}

func TestUpwardDriftBetweenRecycles(t *testing.T) {
	h := newHarness(t, 3)
	h.field.Start(h.surf, viewport)

	prev := h.field.Particles()
	for frame := 0; frame < 2000; frame++ {
		h.queue.Pump()
		for i, p := range h.field.particles {
			if p.SpeedY <= 0 {
				t.Fatalf("particle %d has speedY %v", i, p.SpeedY)
			}
			recycled := p.Y == float64(viewport.Height)+config.RecycleMargin
			if !recycled && p.Y >= prev[i].Y {
				t.Fatalf("frame %d: particle %d moved from y=%v to y=%v", frame, i, prev[i].Y, p.Y)
			}
			if p.Class != prev[i].Class {
				t.Fatalf("particle %d changed class %v -> %v", i, prev[i].Class, p.Class)
			}
		}
		prev = h.field.Particles()
	}
}

func TestColorClassDistribution(t *testing.T) {
	rng := utils.NewPRNGService(4)
	s := config.DefaultSettings()
	h := newHarness(t, 4)

	const n = 10000
	accent := 0
	for i := 0; i < n; i++ {
		if newParticle(rng, s, &h.field.palettes, 800, 600).Class == Accent {
			accent++
		}
	}

	share := float64(accent) / n
	// 5 sigma for p=0.3, n=10000 is about 0.023
	if math.Abs(share-config.AccentChance) > 0.025 {
		t.Fatalf("accent share = %.3f, want about %.2f", share, config.AccentChance)
	}
}

func TestRecycleAtTop(t *testing.T) {
	h := newHarness(t, 5)
	h.field.Start(h.surf, viewport)

	m := config.RecycleMargin
	h.field.particles[0].Y = -m - 1
	h.field.particles[0].X = 123
	h.queue.Pump()

	p := h.field.particles[0]
	if want := float64(viewport.Height) + m; p.Y != want {
		t.Errorf("y after recycle = %v, want %v", p.Y, want)
	}
	if p.X < 0 || p.X >= float64(viewport.Width) {
		t.Errorf("x after recycle = %v, want within [0, %d)", p.X, viewport.Width)
	}
}

func TestHorizontalWrap(t *testing.T) {
	m := config.RecycleMargin
	w := float64(viewport.Width)

	tests := []struct {
		name  string
		x     float64
		wantX float64
	}{
		{"past right edge", w + m + 1, -m},
		{"past left edge", -m - 1, w + m},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 6)
			h.field.Start(h.surf, viewport)

			h.field.particles[0].X = tt.x
			h.field.particles[0].Y = 300
			h.queue.Pump()

			if got := h.field.particles[0].X; got != tt.wantX {
				t.Errorf("x after tick = %v, want %v", got, tt.wantX)
			}
		})
	}
}

func TestStopHaltsDrawing(t *testing.T) {
	h := newHarness(t, 7)
	h.field.Start(h.surf, viewport)
	h.pump(5)

	h.field.Stop()
	draws, clears := h.surf.draws(), h.surf.clears
	h.pump(100)

	if h.surf.draws() != draws || h.surf.clears != clears {
		t.Fatalf("surface touched after Stop: draws %d -> %d, clears %d -> %d",
			draws, h.surf.draws(), clears, h.surf.clears)
	}
	if h.queue.Pending() != 0 {
		t.Errorf("Pending() = %d after Stop, want 0", h.queue.Pending())
	}
	if h.events.Count(event.ViewportResized) != 0 {
		t.Errorf("resize subscription not released")
	}
	if h.field.Running() {
		t.Errorf("Running() = true after Stop")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	h := newHarness(t, 8)
	h.field.Stop()
	h.field.Start(h.surf, viewport)
	h.field.Stop()
	h.field.Stop()
	if h.field.Running() {
		t.Fatal("Running() = true after Stop")
	}
}

func TestStartWithoutSurfaceIsNoop(t *testing.T) {
	h := newHarness(t, 9)
	h.field.Start(nil, viewport)

	if h.field.Running() || h.field.Len() != 0 {
		t.Fatalf("Start(nil) mounted the field: running=%v len=%d", h.field.Running(), h.field.Len())
	}
	if h.queue.Pending() != 0 || h.events.Count(event.ViewportResized) != 0 {
		t.Fatal("Start(nil) scheduled work or subscribed")
	}
}

func TestStartTwiceKeepsPopulation(t *testing.T) {
	h := newHarness(t, 10)
	h.field.Start(h.surf, viewport)
	before := h.field.Particles()

	h.field.Start(&fakeSurface{}, surface.Size{Width: 10, Height: 10})

	if h.queue.Pending() != 1 {
		t.Errorf("Pending() = %d, want a single frame loop", h.queue.Pending())
	}
	if h.events.Count(event.ViewportResized) != 1 {
		t.Errorf("subscribed %d times, want 1", h.events.Count(event.ViewportResized))
	}
	after := h.field.Particles()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("particle %d changed on second Start", i)
		}
	}
}

func TestRestartAfterStop(t *testing.T) {
	h := newHarness(t, 11)
	h.field.Start(h.surf, viewport)
	h.pump(10)
	h.field.Stop()

	h.field.Start(h.surf, viewport)
	if h.field.Len() != config.ParticleCount || h.field.Frames() != 1 {
		t.Fatalf("remount: Len()=%d Frames()=%d", h.field.Len(), h.field.Frames())
	}
	h.pump(3)
	if h.field.Frames() != 4 {
		t.Fatalf("Frames() = %d, want 4", h.field.Frames())
	}
}

func TestResizeKeepsPositions(t *testing.T) {
	h := newHarness(t, 12)
	h.field.Start(h.surf, viewport)
	before := h.field.Particles()

	small := surface.Size{Width: 200, Height: 100}
	h.events.Dispatch(event.Event{Type: event.ViewportResized, Data: small})

	after := h.field.Particles()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("particle %d moved on resize", i)
		}
	}
	if h.field.Size() != small {
		t.Fatalf("Size() = %v, want %v", h.field.Size(), small)
	}
	if last := h.surf.resizes[len(h.surf.resizes)-1]; last != small {
		t.Errorf("surface resized to %v, want %v", last, small)
	}

	// Новые пороги действуют со следующего кадра
	m := config.RecycleMargin
	h.field.particles[0].X = float64(small.Width) + m + 1
	h.field.particles[0].Y = 50
	h.field.particles[1].Y = -m - 1
	h.queue.Pump()

	if got := h.field.particles[0].X; got != -m {
		t.Errorf("x wrap used old width: x = %v, want %v", got, -m)
	}
	if got := h.field.particles[1].Y; got != float64(small.Height)+m {
		t.Errorf("recycle used old height: y = %v, want %v", got, float64(small.Height)+m)
	}
	if got := h.field.particles[1].X; got >= float64(small.Width) {
		t.Errorf("recycled x = %v, want below %d", got, small.Width)
	}
}

func TestResizeWhileStopped(t *testing.T) {
	h := newHarness(t, 13)
	h.field.Resize(surface.Size{Width: 50, Height: 50})
	if h.field.Size() != (surface.Size{Width: 50, Height: 50}) {
		t.Fatalf("Size() = %v", h.field.Size())
	}
	if len(h.surf.resizes) != 0 {
		t.Fatal("stopped field touched a surface")
	}
}

func TestDrawOrderGlowThenCore(t *testing.T) {
	h := newHarness(t, 14)
	h.field.Start(h.surf, viewport)
	h.surf.calls = nil
	h.queue.Pump()

	if got, want := len(h.surf.calls), 2*config.ParticleCount; got != want {
		t.Fatalf("draw calls per tick = %d, want %d", got, want)
	}
	for i, p := range h.field.particles {
		glow, core := h.surf.calls[2*i], h.surf.calls[2*i+1]
		if glow.op != "glow" || core.op != "core" {
			t.Fatalf("particle %d drawn as %s then %s", i, glow.op, core.op)
		}
		if glow.radius != p.Size*config.GlowScale || core.radius != p.Size {
			t.Fatalf("particle %d radii glow=%v core=%v size=%v", i, glow.radius, core.radius, p.Size)
		}
		if glow.x != p.X || glow.y != p.Y || core.x != p.X || core.y != p.Y {
			t.Fatalf("particle %d drawn away from its position", i)
		}
	}
}

func TestZeroAreaViewport(t *testing.T) {
	h := newHarness(t, 15)
	h.field.Start(h.surf, surface.Size{})

	m := config.RecycleMargin
	for frame := 0; frame < 500; frame++ {
		h.queue.Pump()
		for i, p := range h.field.particles {
			if p.Y < -m || p.Y > m || p.X < -m || p.X > m {
				t.Fatalf("frame %d: particle %d at (%v, %v) outside [-m, m]", frame, i, p.X, p.Y)
			}
		}
	}
}

func TestColorsFollowClassAndOpacity(t *testing.T) {
	h := newHarness(t, 16)
	h.field.Start(h.surf, viewport)

	for i, p := range h.field.particles {
		wantA := uint8(p.Opacity*0xff + 0.5)
		if p.glow.A != wantA || p.core.A != wantA {
			t.Errorf("particle %d alpha glow=%d core=%d, want %d", i, p.glow.A, p.core.A, wantA)
		}
		if p.fade.A != 0 {
			t.Errorf("particle %d glow fades to alpha %d, want 0", i, p.fade.A)
		}
		switch p.Class {
		case Primary:
			if p.core.R != 255 || p.core.G != 50 {
				t.Errorf("primary particle %d core = %v", i, p.core)
			}
		case Accent:
			if p.core.R != 200 || p.core.G != 150 || p.core.B != 255 {
				t.Errorf("accent particle %d core = %v", i, p.core)
			}
		}
	}
}

func TestNewFieldRejectsInvalidSettings(t *testing.T) {
	s := config.DefaultSettings()
	s.SpeedY = config.Range{Min: 0, Max: 1}
	if _, err := NewField(anim.NewFrameQueue(), nil, utils.NewPRNGService(1), s); err == nil {
		t.Fatal("NewField accepted a non-positive upward speed")
	}
}

func TestFieldWithoutDispatcher(t *testing.T) {
	q := anim.NewFrameQueue()
	f, err := NewField(q, nil, utils.NewPRNGService(17), config.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	surf := &fakeSurface{}
	f.Start(surf, viewport)
	q.Pump()
	f.Resize(surface.Size{Width: 10, Height: 10})
	f.Stop()
	if f.Running() {
		t.Fatal("Running() = true after Stop")
	}
}
