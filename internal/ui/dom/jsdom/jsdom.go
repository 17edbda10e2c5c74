//go:build js && wasm

// Package jsdom implements the dom contracts over syscall/js for the browser build.
package jsdom

import (
	"syscall/js"
	"time"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

// Registry keeps the js.Func callbacks handed to the browser so they can be released.
type Registry struct {
	funcs []js.Func
}

func (r *Registry) funcOf(fn func(this js.Value, args []js.Value) any) js.Func {
	f := js.FuncOf(fn)
	r.funcs = append(r.funcs, f)
	return f
}

// Release frees every retained callback. Listeners stop working afterwards.
func (r *Registry) Release() {
	for _, f := range r.funcs {
		f.Release()
	}
	r.funcs = nil
}

func listen(reg *Registry, target js.Value, event string, fn dom.Listener) {
	target.Call("addEventListener", event, reg.funcOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			fn(dom.NewEvent(event, 0, 0, nil))
			return nil
		}
		fn(toEvent(event, args[0]))
		return nil
	}))
}

func toEvent(event string, v js.Value) *dom.Event {
	return dom.NewEvent(event, number(v.Get("clientX")), number(v.Get("clientY")), func() {
		v.Call("preventDefault")
	})
}

func number(v js.Value) float64 {
	if v.Type() != js.TypeNumber {
		return 0
	}
	return v.Float()
}

func present(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}

// Document is the browser document.
type Document struct {
	v   js.Value
	reg *Registry
}

var _ dom.Document = (*Document)(nil)

// NewDocument wraps the global document.
func NewDocument(reg *Registry) *Document {
	return &Document{v: js.Global().Get("document"), reg: reg}
}

func (d *Document) wrap(v js.Value) dom.Element {
	if !present(v) {
		return nil
	}
	return &Element{v: v, reg: d.reg}
}

func (d *Document) Body() dom.Element { return d.wrap(d.v.Get("body")) }

func (d *Document) ElementByID(id string) dom.Element {
	return d.wrap(d.v.Call("getElementById", id))
}

func (d *Document) Query(selector string) dom.Element {
	return d.wrap(d.v.Call("querySelector", selector))
}

func (d *Document) QueryAll(selector string) []dom.Element {
	return nodeList(d.reg, d.v.Call("querySelectorAll", selector))
}

func (d *Document) CreateElement(tag string) dom.Element {
	return d.wrap(d.v.Call("createElement", tag))
}

func (d *Document) Listen(event string, fn dom.Listener) { listen(d.reg, d.v, event, fn) }

// ReadyState reports document.readyState.
func (d *Document) ReadyState() string { return d.v.Get("readyState").String() }

func nodeList(reg *Registry, list js.Value) []dom.Element {
	if !present(list) {
		return nil
	}
	n := list.Length()
	out := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &Element{v: list.Index(i), reg: reg})
	}
	return out
}

// Window is the browser window.
type Window struct {
	v   js.Value
	reg *Registry
}

var _ dom.Window = (*Window)(nil)

// NewWindow wraps the global window.
func NewWindow(reg *Registry) *Window {
	return &Window{v: js.Global(), reg: reg}
}

func (w *Window) ScrollY() float64 { return number(w.v.Get("scrollY")) }

func (w *Window) InnerWidth() float64 { return number(w.v.Get("innerWidth")) }

func (w *Window) InnerHeight() float64 { return number(w.v.Get("innerHeight")) }

// DevicePixelRatio reports window.devicePixelRatio.
func (w *Window) DevicePixelRatio() float64 { return number(w.v.Get("devicePixelRatio")) }

func (w *Window) ScrollTo(y float64) { w.v.Call("scrollTo", 0, y) }

func (w *Window) Listen(event string, fn dom.Listener) { listen(w.reg, w.v, event, fn) }

// AfterFunc schedules fn with setTimeout. The callback releases itself once fired.
func (w *Window) AfterFunc(d time.Duration, fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	w.v.Call("setTimeout", cb, d.Milliseconds())
}

// RequestFrame schedules fn with requestAnimationFrame.
func (w *Window) RequestFrame(fn func(float64)) {
	var cb js.Func
	cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		cb.Release()
		ts := 0.0
		if len(args) > 0 {
			ts = number(args[0])
		}
		fn(ts)
		return nil
	})
	w.v.Call("requestAnimationFrame", cb)
}
