// Package lifecycle owns the page's one-time initialization and the teardown of the
// frame loops started by it.
package lifecycle

import (
	"time"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

// Default trigger delays.
const (
	DefaultLoadDelay  = 100 * time.Millisecond
	DefaultReadyDelay = 2 * time.Second
)

// Stopper is anything Shutdown can halt, typically a frameloop.Loop.
type Stopper interface {
	Stop()
}

// App is constructed once by the host entry point. Both lifecycle triggers race to
// call Initialize; the first one wins and the other becomes a no-op. All calls happen
// on the host's single event queue, so no lock is taken.
type App struct {
	sched       dom.Scheduler
	loadDelay   time.Duration
	readyDelay  time.Duration
	initialized bool
	wire        func(*App)
	tracked     []Stopper
}

// Option adjusts an App.
type Option func(*App)

// WithDelays overrides the load and DOM-ready trigger delays.
func WithDelays(load, ready time.Duration) Option {
	return func(a *App) {
		a.loadDelay = load
		a.readyDelay = ready
	}
}

// New returns an uninitialized App that schedules wire on sched.
func New(sched dom.Scheduler, wire func(*App), opts ...Option) *App {
	a := &App{
		sched:      sched,
		loadDelay:  DefaultLoadDelay,
		readyDelay: DefaultReadyDelay,
		wire:       wire,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Initialized reports whether wiring has run.
func (a *App) Initialized() bool { return a.initialized }

// OnLoad handles the "resources fully loaded" signal.
func (a *App) OnLoad() {
	a.sched.AfterFunc(a.loadDelay, func() { a.Initialize() })
}

// OnDOMReady handles the "document structure ready" signal. It acts as a fallback in
// case the load signal is late or never fires.
func (a *App) OnDOMReady() {
	a.sched.AfterFunc(a.readyDelay, func() { a.Initialize() })
}

// Initialize runs the wiring routine once and reports whether this call ran it.
func (a *App) Initialize() bool {
	if a.initialized {
		return false
	}
	a.initialized = true
	if a.wire != nil {
		a.wire(a)
	}
	return true
}

// Track registers s to be stopped by Shutdown.
func (a *App) Track(s Stopper) {
	if s != nil {
		a.tracked = append(a.tracked, s)
	}
}

// Shutdown stops every tracked loop. The initialized flag is never reset.
func (a *App) Shutdown() {
	for _, s := range a.tracked {
		s.Stop()
	}
	a.tracked = nil
}
