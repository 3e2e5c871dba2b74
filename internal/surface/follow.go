package surface

import "go-particle-field/internal/event"

// Resizer is anything whose backing buffer tracks the viewport.
type Resizer interface {
	Resize(size Size)
}

// Follower resizes Target on every ViewportResized event, whether or not a
// field is drawing on it. GPU hosts subscribe it so the buffer is already the
// right size when a stopped field is started inside a render pass.
type Follower struct {
	Target Resizer
}

func (f Follower) OnEvent(e event.Event) {
	if e.Type != event.ViewportResized {
		return
	}
	if size, ok := e.Data.(Size); ok {
		f.Target.Resize(size)
	}
}
