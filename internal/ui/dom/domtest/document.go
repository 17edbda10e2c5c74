// Package domtest provides an in-memory implementation of the dom contracts backed by
// goquery, with a manual clock for timers and animation frames. It exists so the
// interaction features can be exercised without a browser.
package domtest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

// Document is a parsed page plus the side state a browser would keep per node.
type Document struct {
	doc       *goquery.Document
	nodes     map[*html.Node]*nodeState
	listeners map[string][]dom.Listener
}

type nodeState struct {
	styles       map[string]string
	rect         dom.Rect
	offsetTop    float64
	offsetHeight float64
	listeners    map[string][]dom.Listener
	value        *string
}

var _ dom.Document = (*Document)(nil)

// Parse builds a document from markup.
func Parse(markup string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{
		doc:       doc,
		nodes:     make(map[*html.Node]*nodeState),
		listeners: make(map[string][]dom.Listener),
	}, nil
}

// MustParse is Parse for fixtures; it panics on malformed input.
func MustParse(markup string) *Document {
	d, err := Parse(markup)
	if err != nil {
		panic(err)
	}
	return d
}

// HTML renders the current document.
func (d *Document) HTML() string {
	out, err := d.doc.Html()
	if err != nil {
		return ""
	}
	return out
}

func (d *Document) state(n *html.Node) *nodeState {
	st, ok := d.nodes[n]
	if !ok {
		st = &nodeState{styles: make(map[string]string), listeners: make(map[string][]dom.Listener)}
		d.nodes[n] = st
	}
	return st
}

func (d *Document) wrap(sel *goquery.Selection) dom.Element {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	return &Element{doc: d, sel: sel.First()}
}

func (d *Document) wrapAll(sel *goquery.Selection) []dom.Element {
	out := make([]dom.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{doc: d, sel: s})
	})
	return out
}

func (d *Document) Body() dom.Element {
	return d.wrap(d.doc.Find("body"))
}

func (d *Document) ElementByID(id string) dom.Element {
	var found *goquery.Selection
	d.doc.Find("[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, _ := s.Attr("id"); v == id {
			found = s
			return false
		}
		return true
	})
	return d.wrap(found)
}

func (d *Document) Query(selector string) dom.Element {
	return d.wrap(d.doc.Find(selector))
}

func (d *Document) QueryAll(selector string) []dom.Element {
	return d.wrapAll(d.doc.Find(selector))
}

func (d *Document) CreateElement(tag string) dom.Element {
	node := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	return &Element{doc: d, sel: goquery.NewDocumentFromNode(node).Selection}
}

func (d *Document) Listen(event string, fn dom.Listener) {
	d.listeners[event] = append(d.listeners[event], fn)
}

// Dispatch delivers ev to the document-level listeners.
func (d *Document) Dispatch(ev *dom.Event) {
	for _, fn := range append([]dom.Listener(nil), d.listeners[ev.Type]...) {
		fn(ev)
	}
}

// DispatchTo delivers ev to the listeners registered on el.
func (d *Document) DispatchTo(el dom.Element, ev *dom.Event) {
	e, ok := el.(*Element)
	if !ok || e == nil {
		return
	}
	st := d.state(e.node())
	for _, fn := range append([]dom.Listener(nil), st.listeners[ev.Type]...) {
		fn(ev)
	}
}

// ListenerCount reports how many listeners el has for event.
func (d *Document) ListenerCount(el dom.Element, event string) int {
	e, ok := el.(*Element)
	if !ok || e == nil {
		return 0
	}
	return len(d.state(e.node()).listeners[event])
}

// DocumentListenerCount reports how many document-level listeners exist for event.
func (d *Document) DocumentListenerCount(event string) int {
	return len(d.listeners[event])
}

// SetRect fixes the bounding rect reported for el.
func (d *Document) SetRect(el dom.Element, r dom.Rect) {
	if e, ok := el.(*Element); ok && e != nil {
		d.state(e.node()).rect = r
	}
}

// SetOffset fixes the layout offsets reported for el.
func (d *Document) SetOffset(el dom.Element, top, height float64) {
	if e, ok := el.(*Element); ok && e != nil {
		st := d.state(e.node())
		st.offsetTop = top
		st.offsetHeight = height
	}
}

// SetValue simulates a user typing into a form control.
func (d *Document) SetValue(el dom.Element, value string) {
	if e, ok := el.(*Element); ok && e != nil {
		v := value
		d.state(e.node()).value = &v
	}
}
