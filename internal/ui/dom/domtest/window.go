package domtest

import (
	"sort"
	"time"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

// FrameInterval is the simulated duration of one animation frame.
const FrameInterval = 1000.0 / 60.0

// Window is a viewport with a manual clock. Timers only fire from Advance and frame
// callbacks only run from Frame.
type Window struct {
	scrollY   float64
	width     float64
	height    float64
	listeners map[string][]dom.Listener

	now     time.Duration
	seq     int
	timers  []timer
	frames  []func(float64)
	frameTS float64
}

type timer struct {
	at  time.Duration
	seq int
	fn  func()
}

var _ dom.Window = (*Window)(nil)

// NewWindow returns a viewport of the given size scrolled to the top.
func NewWindow(width, height float64) *Window {
	return &Window{width: width, height: height, listeners: make(map[string][]dom.Listener)}
}

func (w *Window) ScrollY() float64 { return w.scrollY }
func (w *Window) InnerWidth() float64 { return w.width }
func (w *Window) InnerHeight() float64 { return w.height }

// SetSize changes the viewport size without dispatching resize.
func (w *Window) SetSize(width, height float64) {
	w.width = width
	w.height = height
}

// SetScrollY moves the scroll offset without dispatching scroll.
func (w *Window) SetScrollY(y float64) { w.scrollY = y }

// ScrollTo moves the scroll offset and dispatches a scroll event, as the browser does.
func (w *Window) ScrollTo(y float64) {
	w.scrollY = y
	w.Dispatch(dom.NewEvent(dom.EventScroll, 0, 0, nil))
}

func (w *Window) Listen(event string, fn dom.Listener) {
	w.listeners[event] = append(w.listeners[event], fn)
}

// Dispatch delivers ev to the window listeners.
func (w *Window) Dispatch(ev *dom.Event) {
	for _, fn := range append([]dom.Listener(nil), w.listeners[ev.Type]...) {
		fn(ev)
	}
}

// ListenerCount reports how many window listeners exist for event.
func (w *Window) ListenerCount(event string) int {
	return len(w.listeners[event])
}

func (w *Window) AfterFunc(d time.Duration, fn func()) {
	w.seq++
	w.timers = append(w.timers, timer{at: w.now + d, seq: w.seq, fn: fn})
}

func (w *Window) RequestFrame(fn func(float64)) {
	w.frames = append(w.frames, fn)
}

// Now reports the simulated time since the window was created.
func (w *Window) Now() time.Duration { return w.now }

// Advance moves the clock forward, firing due timers in deadline order.
func (w *Window) Advance(d time.Duration) {
	target := w.now + d
	for {
		sort.SliceStable(w.timers, func(i, j int) bool {
			if w.timers[i].at == w.timers[j].at {
				return w.timers[i].seq < w.timers[j].seq
			}
			return w.timers[i].at < w.timers[j].at
		})
		if len(w.timers) == 0 || w.timers[0].at > target {
			break
		}
		next := w.timers[0]
		w.timers = w.timers[1:]
		w.now = next.at
		next.fn()
	}
	w.now = target
}

// PendingTimers reports how many timers have not fired.
func (w *Window) PendingTimers() int { return len(w.timers) }

// Frame runs the callbacks requested before this call; callbacks they request run on
// the next Frame.
func (w *Window) Frame() {
	w.frameTS += FrameInterval
	pending := w.frames
	w.frames = nil
	for _, fn := range pending {
		fn(w.frameTS)
	}
}

// Frames runs n frames.
func (w *Window) Frames(n int) {
	for i := 0; i < n; i++ {
		w.Frame()
	}
}

// PendingFrames reports how many frame callbacks are queued.
func (w *Window) PendingFrames() int { return len(w.frames) }
