//go:build js && wasm

package jscollab

import (
	"syscall/js"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

// Lenis drives the smooth-scroll library.
type Lenis struct {
	v     js.Value
	funcs []js.Func
}

var _ collab.SmoothScroller = (*Lenis)(nil)

// NewLenis constructs the scroller, or reports false when Lenis is not loaded.
func NewLenis(cfg collab.SmoothScrollConfig) (*Lenis, bool) {
	ctor, ok := global("Lenis")
	if !ok {
		return nil, false
	}
	l := &Lenis{}
	easing := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return 1
		}
		return collab.ExpoOut(args[0].Float())
	})
	l.funcs = append(l.funcs, easing)
	l.v = ctor.New(map[string]any{
		"duration":         cfg.Duration,
		"easing":           easing,
		"direction":        cfg.Direction,
		"gestureDirection": cfg.Direction,
		"smooth":           true,
		"mouseMultiplier":  cfg.MouseMultiplier,
		"smoothTouch":      cfg.SmoothTouch,
		"touchMultiplier":  cfg.TouchMultiplier,
		"infinite":         cfg.Infinite,
	})
	return l, true
}

func (l *Lenis) Raf(ts float64) { l.v.Call("raf", ts) }

func (l *Lenis) OnScroll(fn func(float64)) {
	if !present(l.v.Get("on")) {
		return
	}
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		scroll := 0.0
		if len(args) > 0 {
			if s := args[0].Get("scroll"); s.Type() == js.TypeNumber {
				scroll = s.Float()
			}
		}
		fn(scroll)
		return nil
	})
	l.funcs = append(l.funcs, cb)
	l.v.Call("on", "scroll", cb)
}

func (l *Lenis) ScrollTo(target dom.Element, opts collab.ScrollOptions) {
	v, ok := jsTarget(target)
	if !ok {
		return
	}
	l.v.Call("scrollTo", v, map[string]any{"offset": opts.Offset, "duration": opts.Duration})
}

// Stop destroys the scroller and releases its callbacks.
func (l *Lenis) Stop() {
	if present(l.v.Get("destroy")) {
		l.v.Call("destroy")
	}
	for _, f := range l.funcs {
		f.Release()
	}
	l.funcs = nil
}
