// Package motion provides a spring-driven Animator used when the page's tween library
// is not loaded. It handles the numeric transform properties the pointer effects use
// and ignores scroll triggers and staggering.
package motion

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/frameloop"
)

const (
	settleEpsilon   = 1e-3
	defaultDuration = 0.5
	framesPerSecond = 60
)

var restValues = map[string]float64{"scale": 1, "opacity": 1}

type channel struct {
	pos, vel, target float64
}

type element struct {
	el          dom.Element
	spring      harmonica.Spring
	channels    map[string]*channel
	perspective float64
}

// SpringAnimator animates properties with critically damped springs stepped once per
// animation frame. Its frame loop only runs while something is moving.
type SpringAnimator struct {
	req      frameloop.Requester
	elements map[any]*element
	loop     *frameloop.Loop
}

var _ collab.Animator = (*SpringAnimator)(nil)

// NewSpringAnimator returns an idle animator.
func NewSpringAnimator(req frameloop.Requester) *SpringAnimator {
	return &SpringAnimator{req: req, elements: make(map[any]*element)}
}

func (a *SpringAnimator) To(targets []dom.Element, t collab.Tween) {
	for _, el := range targets {
		a.retarget(a.state(el), t)
	}
	a.ensureRunning()
}

func (a *SpringAnimator) FromTo(targets []dom.Element, from collab.Props, to collab.Tween) {
	for _, el := range targets {
		st := a.state(el)
		for name, raw := range from {
			v, ok := number(raw)
			if !ok {
				el.SetStyle(cssName(name), fmt.Sprint(raw))
				continue
			}
			ch := st.channel(name)
			ch.pos, ch.vel, ch.target = v, 0, v
		}
		apply(st)
		a.retarget(st, to)
	}
	a.ensureRunning()
}

// Stop halts the frame loop; pending motion freezes where it is.
func (a *SpringAnimator) Stop() {
	if a.loop != nil {
		a.loop.Stop()
		a.loop = nil
	}
}

// Active reports whether any property is still moving.
func (a *SpringAnimator) Active() bool {
	for _, st := range a.elements {
		for _, ch := range st.channels {
			if !settled(ch) {
				return true
			}
		}
	}
	return false
}

// state is keyed by node so fresh wrappers of one node share a single spring set.
func (a *SpringAnimator) state(el dom.Element) *element {
	key := dom.KeyOf(el)
	st, ok := a.elements[key]
	if !ok {
		st = &element{el: el, channels: make(map[string]*channel)}
		a.elements[key] = st
	}
	st.el = el
	return st
}

func (a *SpringAnimator) retarget(st *element, t collab.Tween) {
	duration := t.Duration
	if duration <= 0 {
		duration = defaultDuration
	}
	st.spring = harmonica.NewSpring(harmonica.FPS(framesPerSecond), 8/duration, 1)
	for name, raw := range t.Props {
		if name == "transformPerspective" {
			if v, ok := number(raw); ok {
				st.perspective = v
			}
			continue
		}
		v, ok := number(raw)
		if !ok {
			st.el.SetStyle(cssName(name), fmt.Sprint(raw))
			continue
		}
		st.channel(name).target = v
	}
}

func (st *element) channel(name string) *channel {
	ch, ok := st.channels[name]
	if !ok {
		rest := restValues[name]
		ch = &channel{pos: rest, target: rest}
		st.channels[name] = ch
	}
	return ch
}

func (a *SpringAnimator) ensureRunning() {
	if a.loop != nil && a.loop.Running() {
		return
	}
	a.loop = frameloop.Start(a.req, func(float64) { a.step() })
}

func (a *SpringAnimator) step() {
	moving := false
	for key, st := range a.elements {
		changed := false
		for _, ch := range st.channels {
			if settled(ch) {
				continue
			}
			ch.pos, ch.vel = st.spring.Update(ch.pos, ch.vel, ch.target)
			if settled(ch) {
				ch.pos, ch.vel = ch.target, 0
			} else {
				moving = true
			}
			changed = true
		}
		if changed {
			apply(st)
		}
		if atRest(st) {
			delete(a.elements, key)
		}
	}
	if !moving {
		a.Stop()
	}
}

// atRest reports whether every channel has settled on its rest value. Such an entry
// holds nothing a later tween would need to continue from.
func atRest(st *element) bool {
	for name, ch := range st.channels {
		if !settled(ch) || ch.target != restValues[name] {
			return false
		}
	}
	return true
}

func settled(ch *channel) bool {
	return math.Abs(ch.pos-ch.target) < settleEpsilon && math.Abs(ch.vel) < settleEpsilon
}

func apply(st *element) {
	var parts []string
	if st.perspective > 0 {
		parts = append(parts, fmt.Sprintf("perspective(%gpx)", st.perspective))
	}
	value := func(name string) (float64, bool) {
		ch, ok := st.channels[name]
		if !ok {
			return restValues[name], false
		}
		return round(ch.pos), true
	}
	x, hasX := value("x")
	y, hasY := value("y")
	if hasX || hasY {
		parts = append(parts, fmt.Sprintf("translate(%gpx, %gpx)", x, y))
	}
	if v, ok := value("rotateX"); ok {
		parts = append(parts, fmt.Sprintf("rotateX(%gdeg)", v))
	}
	if v, ok := value("rotateY"); ok {
		parts = append(parts, fmt.Sprintf("rotateY(%gdeg)", v))
	}
	if v, ok := value("scale"); ok {
		parts = append(parts, fmt.Sprintf("scale(%g)", v))
	}
	if len(parts) > 0 {
		st.el.SetStyle("transform", strings.Join(parts, " "))
	}
	if v, ok := value("opacity"); ok {
		st.el.SetStyle("opacity", fmt.Sprintf("%g", v))
	}
}

func round(v float64) float64 {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return 0
	}
	return r
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func cssName(prop string) string {
	var b strings.Builder
	for _, r := range prop {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
