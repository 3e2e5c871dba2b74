// Package particle — симулятор фонового поля светящихся частиц.
//
// Field владеет фиксированным набором частиц, раз в кадр сдвигает их вверх,
// возвращает вылетевшие за край на противоположную сторону и рисует каждую
// в два слоя: мягкое свечение и яркое ядро поверх него.
package particle

import (
	"fmt"
	"log"

	"go-particle-field/internal/anim"
	"go-particle-field/internal/config"
	"go-particle-field/internal/event"
	"go-particle-field/internal/surface"
	"go-particle-field/internal/utils"
	"go-particle-field/pkg/render"
)

// Field — симулятор. Start/Resize/Stop — единственные изменяющие операции.
type Field struct {
	sched    anim.Scheduler
	events   *event.Dispatcher
	rng      *utils.PRNGService
	settings config.Settings
	palettes [2]render.Palette

	surface   surface.Surface
	particles []Particle
	size      surface.Size
	width     float64
	height    float64

	running bool
	frame   anim.FrameID
	frames  uint64
	tickFn  func()
}

// NewField создаёт остановленный симулятор. events может быть nil — тогда
// размер меняется только прямыми вызовами Resize.
func NewField(sched anim.Scheduler, events *event.Dispatcher, rng *utils.PRNGService, settings config.Settings) (*Field, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("particle field settings: %w", err)
	}

	primary, err := render.ParsePalette(settings.Primary.Glow, settings.Primary.GlowFade, settings.Primary.Core)
	if err != nil {
		return nil, fmt.Errorf("primary palette: %w", err)
	}
	accent, err := render.ParsePalette(settings.Accent.Glow, settings.Accent.GlowFade, settings.Accent.Core)
	if err != nil {
		return nil, fmt.Errorf("accent palette: %w", err)
	}

	f := &Field{
		sched:    sched,
		events:   events,
		rng:      rng,
		settings: settings,
	}
	f.palettes[Primary] = primary
	f.palettes[Accent] = accent
	// Метод-значение создаётся один раз, чтобы не аллоцировать на каждом кадре
	f.tickFn = f.tick
	return f, nil
}

// Start монтирует поле на поверхность: создаёт популяцию, подписывается на
// изменения размера окна, рисует первый кадр и планирует следующий.
// Без поверхности ничего не делает. Повторный вызов на работающем поле игнорируется.
func (f *Field) Start(s surface.Surface, size surface.Size) {
	if s == nil || f.running {
		return
	}

	f.surface = s
	f.setSize(size)
	s.Resize(size)
	f.populate()

	if f.events != nil {
		f.events.Subscribe(event.ViewportResized, f)
	}
	f.running = true
	f.frames = 0

	log.Printf("Particle field mounted: %d particles, viewport %v", len(f.particles), size)
	if f.events != nil {
		f.events.Dispatch(event.Event{Type: event.FieldMounted, Data: len(f.particles)})
	}

	f.tick()
}

// Resize меняет размеры для расчёта возврата частиц и пересоздаёт буфер
// поверхности. Позиции частиц не трогает.
func (f *Field) Resize(size surface.Size) {
	f.setSize(size)
	if f.surface != nil {
		f.surface.Resize(size)
	}
}

// Stop отменяет запланированный кадр и отписывается от событий окна.
// Безопасен до Start и при повторном вызове.
func (f *Field) Stop() {
	if !f.running {
		return
	}

	f.sched.CancelFrame(f.frame)
	f.frame = 0
	if f.events != nil {
		f.events.Unsubscribe(event.ViewportResized, f)
	}
	f.running = false
	f.surface = nil
	f.particles = f.particles[:0]

	log.Printf("Particle field unmounted after %d frames", f.frames)
	if f.events != nil {
		f.events.Dispatch(event.Event{Type: event.FieldUnmounted, Data: f.frames})
	}
}

// OnEvent реализует event.Listener
func (f *Field) OnEvent(e event.Event) {
	if e.Type != event.ViewportResized {
		return
	}
	if size, ok := e.Data.(surface.Size); ok {
		f.Resize(size)
	}
}

// Running сообщает, смонтировано ли поле
func (f *Field) Running() bool {
	return f.running
}

// Len — размер популяции
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles возвращает копию популяции
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Size — размер, по которому считается возврат частиц
func (f *Field) Size() surface.Size {
	return f.size
}

// Frames — число кадров с последнего Start
func (f *Field) Frames() uint64 {
	return f.frames
}

func (f *Field) setSize(size surface.Size) {
	f.size = size
	f.width = float64(max(size.Width, 0))
	f.height = float64(max(size.Height, 0))
}

func (f *Field) populate() {
	n := f.settings.ParticleCount
	if cap(f.particles) < n {
		f.particles = make([]Particle, n)
	}
	f.particles = f.particles[:n]
	for i := range f.particles {
		f.particles[i] = newParticle(f.rng, f.settings, &f.palettes, f.width, f.height)
	}
}

// tick — один кадр: обновить и нарисовать, затем запросить следующий
func (f *Field) tick() {
	f.frame = 0
	if !f.running {
		return
	}
	f.step()
	f.frames++
	f.frame = f.sched.RequestFrame(f.tickFn)
}

func (f *Field) step() {
	f.surface.Clear()

	margin := f.settings.RecycleMargin
	glowScale := f.settings.GlowScale
	for i := range f.particles {
		p := &f.particles[i]

		p.Y -= p.SpeedY
		p.X += p.SpeedX

		// Частицы летят только вверх, поэтому новый x выбирается лишь у верхнего края
		if p.Y < -margin {
			p.Y = f.height + margin
			p.X = f.rng.Float64() * f.width
		}
		if p.X < -margin {
			p.X = f.width + margin
		} else if p.X > f.width+margin {
			p.X = -margin
		}

		// Свечение первым: ядро должно лечь поверх него
		f.surface.FillRadialGradient(p.X, p.Y, p.Size*glowScale, p.glow, p.fade)
		f.surface.FillCircle(p.X, p.Y, p.Size, p.core)
	}
}
