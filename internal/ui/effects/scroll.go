package effects

import (
	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

// HeaderState is the header morph state.
type HeaderState int

const (
	// Expanded: scroll offset at or below the threshold.
	Expanded HeaderState = iota
	// Collapsed: scroll offset past the threshold.
	Collapsed
)

func (s HeaderState) String() string {
	if s == Collapsed {
		return "collapsed"
	}
	return "expanded"
}

// Class names toggled by the orchestrator.
const (
	ClassFadeOut = "fade-out"
	ClassVisible = "visible"
	ClassActive  = "active"
	ClassRipple  = "liquid-ripple"
)

// HeaderStateFor maps a scroll offset to the header state; the threshold itself is
// still Expanded.
func HeaderStateFor(offset, threshold float64) HeaderState {
	if offset > threshold {
		return Collapsed
	}
	return Expanded
}

// SectionSpan is a section's active range after the margin is applied.
type SectionSpan struct {
	ID     string
	Top    float64
	Height float64
}

// ActiveSection returns the id of the last span containing offset, or "".
func ActiveSection(spans []SectionSpan, offset float64) string {
	active := ""
	for _, s := range spans {
		if offset >= s.Top && offset < s.Top+s.Height {
			active = s.ID
		}
	}
	return active
}

// ScrollOrchestrator morphs the header into the floating nav and tracks the active
// section link. It runs synchronously on every scroll event without throttling.
type ScrollOrchestrator struct {
	page   *Page
	header dom.Element
	nav    dom.Element
	links  []dom.Element
	state  HeaderState
	active string
}

// NewScrollOrchestrator looks up the header, floating nav and its links, subscribes to
// native scroll events and evaluates the current offset once.
func NewScrollOrchestrator(p *Page) *ScrollOrchestrator {
	o := &ScrollOrchestrator{
		page:   p,
		header: p.Doc.Query(".site-header"),
		nav:    p.Doc.Query(".floating-nav"),
		links:  p.Doc.QueryAll(".floating-links a"),
	}
	if o.header == nil || o.nav == nil {
		p.skip("header-morph", "header or floating nav missing")
	}
	p.Win.Listen(dom.EventScroll, func(*dom.Event) { o.Handle() })
	o.Handle()
	return o
}

// Follow also re-evaluates on the smooth scroller's scroll updates.
func (o *ScrollOrchestrator) Follow(scroller collab.SmoothScroller) {
	if scroller == nil {
		return
	}
	scroller.OnScroll(func(float64) { o.Handle() })
}

// State reports the last evaluated header state.
func (o *ScrollOrchestrator) State() HeaderState { return o.state }

// Active reports the id of the section whose link carries the active marker.
func (o *ScrollOrchestrator) Active() string { return o.active }

// Handle re-evaluates the header morph and the active link for the current offset.
func (o *ScrollOrchestrator) Handle() {
	offset := o.page.Win.ScrollY()
	o.state = HeaderStateFor(offset, o.page.Settings.ScrollThreshold)
	if o.header != nil && o.nav != nil {
		if o.state == Collapsed {
			o.header.ClassList().Add(ClassFadeOut)
			o.nav.ClassList().Add(ClassVisible)
		} else {
			o.header.ClassList().Remove(ClassFadeOut)
			o.nav.ClassList().Remove(ClassVisible)
		}
	}
	o.updateActiveLink(offset)
}

func (o *ScrollOrchestrator) updateActiveLink(offset float64) {
	sections := o.page.Doc.QueryAll("section[id]")
	spans := make([]SectionSpan, 0, len(sections))
	for _, s := range sections {
		id, _ := s.Attr("id")
		spans = append(spans, SectionSpan{
			ID:     id,
			Top:    s.OffsetTop() - o.page.Settings.SectionMargin,
			Height: s.OffsetHeight(),
		})
	}
	o.active = ActiveSection(spans, offset)
	for _, link := range o.links {
		href, _ := link.Attr("href")
		if o.active != "" && href == "#"+o.active {
			link.ClassList().Add(ClassActive)
		} else {
			link.ClassList().Remove(ClassActive)
		}
	}
}

// BindRipples appends a transient ripple span to floating links on hover.
func BindRipples(p *Page) {
	for _, link := range p.Doc.QueryAll(".floating-links a") {
		link := link
		link.Listen(dom.EventMouseEnter, func(*dom.Event) {
			ripple := p.Doc.CreateElement("span")
			ripple.ClassList().Add(ClassRipple)
			link.AppendChild(ripple)
			p.Win.AfterFunc(p.Settings.RippleRemoval, ripple.Remove)
		})
	}
}
