// Package dom defines the host-agnostic document contracts the interaction layer is
// written against. The browser implementation lives in jsdom; domtest provides an
// in-memory document for tests.
package dom

import "time"

// Rect mirrors the result of getBoundingClientRect.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Center returns the rect's midpoint in client coordinates.
func (r Rect) Center() (float64, float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// NodeKeyer is implemented by elements whose host hands out a fresh wrapper per lookup.
// NodeKey is comparable and equal for every wrapper of the same node.
type NodeKeyer interface {
	NodeKey() any
}

// KeyOf returns a map key identifying el's underlying node.
func KeyOf(el Element) any {
	if k, ok := el.(NodeKeyer); ok {
		return k.NodeKey()
	}
	return el
}

// Listener handles a dispatched event.
type Listener func(*Event)

// Event carries the subset of browser event data the features read.
type Event struct {
	Type    string
	ClientX float64
	ClientY float64

	prevented bool
	prevent   func()
}

// NewEvent builds an event. prevent may be nil.
func NewEvent(eventType string, clientX, clientY float64, prevent func()) *Event {
	return &Event{Type: eventType, ClientX: clientX, ClientY: clientY, prevent: prevent}
}

// PreventDefault cancels the host's default action.
func (e *Event) PreventDefault() {
	if e == nil {
		return
	}
	e.prevented = true
	if e.prevent != nil {
		e.prevent()
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e != nil && e.prevented
}

// ClassList exposes an element's class tokens.
type ClassList interface {
	Add(name string)
	Remove(name string)
	Contains(name string) bool
}

// Element is a node in the page.
type Element interface {
	ClassList() ClassList
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	Style(prop string) string
	SetStyle(prop, value string)
	Text() string
	SetText(text string)
	SetHTML(markup string)
	Rect() Rect
	OffsetTop() float64
	OffsetHeight() float64
	Query(selector string) Element
	QueryAll(selector string) []Element
	AppendChild(child Element)
	CloneDeep() Element
	Clear()
	Remove()
	Listen(event string, fn Listener)
	SetDisabled(disabled bool)
	Disabled() bool
	// FormValues returns the named, non-disabled controls of a form element.
	FormValues() map[string][]string
	// Reset restores a form's controls to their default values.
	Reset()
}

// Document is the page's document object.
type Document interface {
	Body() Element
	ElementByID(id string) Element
	Query(selector string) Element
	QueryAll(selector string) []Element
	CreateElement(tag string) Element
	Listen(event string, fn Listener)
}

// Scheduler is the host's timer and animation-frame queue.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
	RequestFrame(fn func(timestampMs float64))
}

// Window is the page's viewport.
type Window interface {
	Scheduler
	ScrollY() float64
	InnerWidth() float64
	InnerHeight() float64
	ScrollTo(y float64)
	Listen(event string, fn Listener)
}

// Event names shared by the features.
const (
	EventScroll     = "scroll"
	EventMouseMove  = "mousemove"
	EventMouseEnter = "mouseenter"
	EventMouseLeave = "mouseleave"
	EventClick      = "click"
	EventSubmit     = "submit"
	EventResize     = "resize"
	EventLoad       = "load"
	EventDOMReady   = "DOMContentLoaded"
)
