//go:build js && wasm

// Package jscollab adapts the page's script-tag libraries (Lenis, GSAP with
// ScrollTrigger, three.js) to the collab contracts. Each constructor reports whether
// its library is loaded.
package jscollab

import (
	"syscall/js"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

// Valuer is implemented by browser-backed elements.
type Valuer interface {
	JSValue() js.Value
}

func present(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined() && v.Truthy()
}

func global(name string) (js.Value, bool) {
	v := js.Global().Get(name)
	return v, present(v)
}

func jsTarget(el dom.Element) (js.Value, bool) {
	if el == nil {
		return js.Undefined(), false
	}
	v, ok := el.(Valuer)
	if !ok {
		return js.Undefined(), false
	}
	return v.JSValue(), true
}

func jsTargets(els []dom.Element) js.Value {
	out := make([]any, 0, len(els))
	for _, el := range els {
		if v, ok := jsTarget(el); ok {
			out = append(out, v)
		}
	}
	return js.ValueOf(out)
}
