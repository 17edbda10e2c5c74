package domtest

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

// Element wraps a single goquery node.
type Element struct {
	doc *Document
	sel *goquery.Selection
}

var _ dom.Element = (*Element)(nil)

// NodeKey is the underlying *html.Node.
func (e *Element) NodeKey() any { return e.node() }

func (e *Element) node() *html.Node {
	return e.sel.Get(0)
}

func (e *Element) st() *nodeState {
	return e.doc.state(e.node())
}

type classList struct {
	sel *goquery.Selection
}

func (c classList) Add(name string) { c.sel.AddClass(name) }
func (c classList) Remove(name string) { c.sel.RemoveClass(name) }
func (c classList) Contains(name string) bool { return c.sel.HasClass(name) }

func (e *Element) ClassList() dom.ClassList { return classList{sel: e.sel} }

func (e *Element) Attr(name string) (string, bool) { return e.sel.Attr(name) }

func (e *Element) SetAttr(name, value string) { e.sel.SetAttr(name, value) }

func (e *Element) Style(prop string) string { return e.st().styles[prop] }

func (e *Element) SetStyle(prop, value string) { e.st().styles[prop] = value }

func (e *Element) Text() string { return e.sel.Text() }

func (e *Element) SetText(text string) { e.sel.SetText(text) }

func (e *Element) SetHTML(markup string) { e.sel.SetHtml(markup) }

// HTML returns the element's inner markup.
func (e *Element) HTML() string {
	out, err := e.sel.Html()
	if err != nil {
		return ""
	}
	return out
}

func (e *Element) Rect() dom.Rect { return e.st().rect }

func (e *Element) OffsetTop() float64 { return e.st().offsetTop }

func (e *Element) OffsetHeight() float64 { return e.st().offsetHeight }

func (e *Element) Query(selector string) dom.Element {
	return e.doc.wrap(e.sel.Find(selector))
}

func (e *Element) QueryAll(selector string) []dom.Element {
	return e.doc.wrapAll(e.sel.Find(selector))
}

func (e *Element) AppendChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return
	}
	e.sel.AppendSelection(c.sel)
}

// CloneDeep copies the subtree. Like the browser, listeners and layout state stay behind.
func (e *Element) CloneDeep() dom.Element {
	return &Element{doc: e.doc, sel: e.sel.Clone()}
}

func (e *Element) Clear() { e.sel.Empty() }

func (e *Element) Remove() { e.sel.Remove() }

func (e *Element) Listen(event string, fn dom.Listener) {
	st := e.st()
	st.listeners[event] = append(st.listeners[event], fn)
}

func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		e.sel.SetAttr("disabled", "")
		return
	}
	e.sel.RemoveAttr("disabled")
}

func (e *Element) Disabled() bool {
	_, ok := e.sel.Attr("disabled")
	return ok
}

func (e *Element) FormValues() map[string][]string {
	values := make(map[string][]string)
	e.sel.Find("input[name], textarea[name], select[name]").Each(func(_ int, s *goquery.Selection) {
		if _, disabled := s.Attr("disabled"); disabled {
			return
		}
		name, _ := s.Attr("name")
		values[name] = append(values[name], e.doc.controlValue(s))
	})
	return values
}

func (e *Element) Reset() {
	e.sel.Find("input, textarea, select").Each(func(_ int, s *goquery.Selection) {
		e.doc.state(s.Get(0)).value = nil
	})
}

func (d *Document) controlValue(s *goquery.Selection) string {
	if v := d.state(s.Get(0)).value; v != nil {
		return *v
	}
	if goquery.NodeName(s) == "textarea" {
		return s.Text()
	}
	value, _ := s.Attr("value")
	return value
}

// Value reports a control's current value.
func (e *Element) Value() string {
	return e.doc.controlValue(e.sel)
}
