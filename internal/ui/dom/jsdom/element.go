//go:build js && wasm

package jsdom

import (
	"syscall/js"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

// Element is a browser element. It is a pointer type because js.Value is not
// comparable and callers key maps by element.
type Element struct {
	v   js.Value
	reg *Registry
}

var _ dom.Element = (*Element)(nil)

const nodeKeyProp = "__luxeNodeKey"

var nextNodeKey int

// NodeKey tags the node with a numeric expando on first use so every wrapper of it
// reports the same key.
func (e *Element) NodeKey() any {
	if v := e.v.Get(nodeKeyProp); v.Type() == js.TypeNumber {
		return v.Int()
	}
	nextNodeKey++
	e.v.Set(nodeKeyProp, nextNodeKey)
	return nextNodeKey
}

// JSValue exposes the underlying node for the library adapters.
func (e *Element) JSValue() js.Value { return e.v }

type classList struct{ v js.Value }

func (c classList) Add(name string) { c.v.Call("add", name) }

func (c classList) Remove(name string) { c.v.Call("remove", name) }

func (c classList) Contains(name string) bool { return c.v.Call("contains", name).Bool() }

func (e *Element) ClassList() dom.ClassList { return classList{v: e.v.Get("classList")} }

func (e *Element) Attr(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if !present(v) {
		return "", false
	}
	return v.String(), true
}

func (e *Element) SetAttr(name, value string) { e.v.Call("setAttribute", name, value) }

func (e *Element) Style(prop string) string {
	return e.v.Get("style").Call("getPropertyValue", prop).String()
}

func (e *Element) SetStyle(prop, value string) {
	e.v.Get("style").Call("setProperty", prop, value)
}

func (e *Element) Text() string { return e.v.Get("textContent").String() }

func (e *Element) SetText(text string) { e.v.Set("textContent", text) }

func (e *Element) SetHTML(markup string) { e.v.Set("innerHTML", markup) }

func (e *Element) Rect() dom.Rect {
	r := e.v.Call("getBoundingClientRect")
	return dom.Rect{
		Left:   number(r.Get("left")),
		Top:    number(r.Get("top")),
		Width:  number(r.Get("width")),
		Height: number(r.Get("height")),
	}
}

func (e *Element) OffsetTop() float64 { return number(e.v.Get("offsetTop")) }

func (e *Element) OffsetHeight() float64 { return number(e.v.Get("offsetHeight")) }

func (e *Element) Query(selector string) dom.Element {
	v := e.v.Call("querySelector", selector)
	if !present(v) {
		return nil
	}
	return &Element{v: v, reg: e.reg}
}

func (e *Element) QueryAll(selector string) []dom.Element {
	return nodeList(e.reg, e.v.Call("querySelectorAll", selector))
}

func (e *Element) AppendChild(child dom.Element) {
	if c, ok := child.(*Element); ok && c != nil {
		e.v.Call("appendChild", c.v)
	}
}

func (e *Element) CloneDeep() dom.Element {
	return &Element{v: e.v.Call("cloneNode", true), reg: e.reg}
}

func (e *Element) Clear() { e.v.Set("innerHTML", "") }

func (e *Element) Remove() { e.v.Call("remove") }

func (e *Element) Listen(event string, fn dom.Listener) { listen(e.reg, e.v, event, fn) }

func (e *Element) SetDisabled(disabled bool) { e.v.Set("disabled", disabled) }

func (e *Element) Disabled() bool { return e.v.Get("disabled").Truthy() }

// FormValues collects the form's successful controls through FormData.
func (e *Element) FormValues() map[string][]string {
	values := make(map[string][]string)
	ctor := js.Global().Get("FormData")
	if !present(ctor) {
		return values
	}
	data := ctor.New(e.v)
	each := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) < 2 || args[0].Type() != js.TypeString {
			return nil
		}
		key := args[1].String()
		values[key] = append(values[key], args[0].String())
		return nil
	})
	defer each.Release()
	data.Call("forEach", each)
	return values
}

func (e *Element) Reset() { e.v.Call("reset") }
