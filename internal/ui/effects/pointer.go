package effects

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/frameloop"
)

// Ease moves current toward target by factor of the remaining distance.
func Ease(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// Cursor is the two-dot pointer follower.
type Cursor struct {
	ring, dot      dom.Element
	mouseX, mouseY float64
	ringX, ringY   float64
	dotX, dotY     float64
	outer, inner   float64
	loop           *frameloop.Loop
}

// StartCursor appends the follower elements to the body and starts easing them toward
// the pointer every frame. It returns nil when the page has no body.
func StartCursor(p *Page) *Cursor {
	body := p.Doc.Body()
	if body == nil {
		p.skip("cursor", "no body")
		return nil
	}
	c := &Cursor{
		ring:  p.Doc.CreateElement("div"),
		dot:   p.Doc.CreateElement("div"),
		outer: p.Settings.CursorSmoothingOuter,
		inner: p.Settings.CursorSmoothingInner,
	}
	c.ring.ClassList().Add("cursor")
	c.dot.ClassList().Add("cursor-dot")
	body.AppendChild(c.ring)
	body.AppendChild(c.dot)

	p.Doc.Listen(dom.EventMouseMove, func(ev *dom.Event) {
		c.mouseX, c.mouseY = ev.ClientX, ev.ClientY
	})
	p.Doc.Listen(dom.EventMouseLeave, func(*dom.Event) { c.setOpacity("0") })
	p.Doc.Listen(dom.EventMouseEnter, func(*dom.Event) { c.setOpacity("1") })

	for _, el := range p.Doc.QueryAll("a, button, .magnetic") {
		el.Listen(dom.EventMouseEnter, func(*dom.Event) { c.ring.ClassList().Add("hover") })
		el.Listen(dom.EventMouseLeave, func(*dom.Event) { c.ring.ClassList().Remove("hover") })
	}

	c.loop = frameloop.Start(p.Win, func(float64) { c.step() })
	return c
}

func (c *Cursor) setOpacity(v string) {
	c.ring.SetStyle("opacity", v)
	c.dot.SetStyle("opacity", v)
}

func (c *Cursor) step() {
	c.ringX = Ease(c.ringX, c.mouseX, c.outer)
	c.ringY = Ease(c.ringY, c.mouseY, c.outer)
	c.ring.SetStyle("left", px(c.ringX))
	c.ring.SetStyle("top", px(c.ringY))

	c.dotX = Ease(c.dotX, c.mouseX, c.inner)
	c.dotY = Ease(c.dotY, c.mouseY, c.inner)
	c.dot.SetStyle("left", px(c.dotX))
	c.dot.SetStyle("top", px(c.dotY))
}

// Loop exposes the follower's frame loop.
func (c *Cursor) Loop() *frameloop.Loop { return c.loop }

// Positions reports the ring and dot coordinates.
func (c *Cursor) Positions() (ringX, ringY, dotX, dotY float64) {
	return c.ringX, c.ringY, c.dotX, c.dotY
}

// MagneticOffset returns the translation for a pointer near center and whether the
// pointer is inside the radius.
func MagneticOffset(centerX, centerY, pointerX, pointerY, radius, multiplier float64) (float64, float64, bool) {
	dx := pointerX - centerX
	dy := pointerY - centerY
	if math.Hypot(dx, dy) >= radius {
		return 0, 0, false
	}
	return dx * multiplier, dy * multiplier, true
}

// BindMagnetic wires every .magnetic element. Centers are measured once here and are
// not refreshed on resize. It returns the number of elements bound.
func BindMagnetic(p *Page) int {
	elements := p.Doc.QueryAll(".magnetic")
	for _, el := range elements {
		el := el
		cx, cy := el.Rect().Center()
		el.Listen(dom.EventMouseMove, func(ev *dom.Event) {
			tx, ty, ok := MagneticOffset(cx, cy, ev.ClientX, ev.ClientY, p.Settings.MagneticRadius, p.Settings.MagneticMultiplier)
			if !ok {
				return
			}
			el.SetStyle("transform", fmt.Sprintf("translate(%spx, %spx)", num(tx), num(ty)))
		})
		el.Listen(dom.EventMouseLeave, func(*dom.Event) {
			el.SetStyle("transform", "translate(0, 0)")
		})
	}
	return len(elements)
}

// TiltAngles maps a pointer position over rect to rotateX/rotateY in degrees.
func TiltAngles(rect dom.Rect, clientX, clientY, multiplier float64) (float64, float64) {
	if rect.Width == 0 || rect.Height == 0 {
		return 0, 0
	}
	centerX := rect.Width / 2
	centerY := rect.Height / 2
	percentX := (clientX - rect.Left - centerX) / centerX
	percentY := (clientY - rect.Top - centerY) / centerY
	return zero(percentY * multiplier), zero(percentX * -multiplier)
}

// BindTilt attaches the pseudo-3D tilt to el.
func BindTilt(p *Page, el dom.Element) {
	s := p.Settings
	el.Listen(dom.EventMouseMove, func(ev *dom.Event) {
		rx, ry := TiltAngles(el.Rect(), ev.ClientX, ev.ClientY, s.TiltMultiplier)
		p.rotate(el, rx, ry, true)
	})
	el.Listen(dom.EventMouseLeave, func(*dom.Event) {
		p.rotate(el, 0, 0, false)
	})
}

// BindTiltAll attaches tilt to every [data-tilt] element and returns the count.
func BindTiltAll(p *Page, elements []dom.Element) int {
	for _, el := range elements {
		BindTilt(p, el)
	}
	return len(elements)
}

func (p *Page) rotate(el dom.Element, rx, ry float64, withPerspective bool) {
	s := p.Settings
	if p.Animator == nil {
		el.SetStyle("transform", fmt.Sprintf("perspective(%spx) rotateX(%sdeg) rotateY(%sdeg)", num(s.TiltPerspective), num(rx), num(ry)))
		return
	}
	props := collab.Props{"rotateX": rx, "rotateY": ry}
	if withPerspective {
		props["transformPerspective"] = s.TiltPerspective
	}
	p.Animator.To([]dom.Element{el}, collab.Tween{Props: props, Duration: s.TiltDuration, Ease: "power2.out"})
}

// ParallaxOffset returns the translation for an element with speed given the pointer
// and viewport size.
func ParallaxOffset(clientX, clientY, width, height, speed float64) (float64, float64) {
	return (clientX - width/2) * speed, (clientY - height/2) * speed
}

// ParallaxSpeed reads data-parallax-speed, falling back to def.
func ParallaxSpeed(el dom.Element, def float64) float64 {
	raw, ok := el.Attr("data-parallax-speed")
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return def
	}
	return v
}

// BindParallax translates every [data-parallax] element on any pointer move in the
// viewport. It returns the number of elements bound.
func BindParallax(p *Page) int {
	elements := p.Doc.QueryAll("[data-parallax]")
	if len(elements) == 0 {
		return 0
	}
	speeds := make([]float64, len(elements))
	for i, el := range elements {
		speeds[i] = ParallaxSpeed(el, p.Settings.ParallaxSpeed)
	}
	p.Win.Listen(dom.EventMouseMove, func(ev *dom.Event) {
		w, h := p.Win.InnerWidth(), p.Win.InnerHeight()
		for i, el := range elements {
			x, y := ParallaxOffset(ev.ClientX, ev.ClientY, w, h, speeds[i])
			if p.Animator == nil {
				el.SetStyle("transform", fmt.Sprintf("translate(%spx, %spx)", num(x), num(y)))
				continue
			}
			p.Animator.To([]dom.Element{el}, collab.Tween{
				Props:    collab.Props{"x": x, "y": y},
				Duration: 1,
				Ease:     "power2.out",
			})
		}
	})
	return len(elements)
}

func px(v float64) string { return num(v) + "px" }

func num(v float64) string {
	return strconv.FormatFloat(zero(v), 'f', -1, 64)
}

// zero folds negative zero into zero.
func zero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
