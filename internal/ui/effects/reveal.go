package effects

import (
	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

// Binding pairs a tween's targets with the element that triggers it.
type Binding struct {
	Targets []dom.Element
	Trigger dom.Element
}

// Reveal is one scroll-linked entrance animation.
type Reveal struct {
	Name  string
	Bind  func(dom.Document) []Binding
	From  collab.Props
	To    collab.Tween
	Start string
	End   string
	Scrub float64
	// Horizontal marks triggers measured along the x axis.
	Horizontal bool
}

// group animates every match of selector as one staggered tween triggered by trigger.
func group(selector, trigger string) func(dom.Document) []Binding {
	return func(d dom.Document) []Binding {
		targets := d.QueryAll(selector)
		el := d.Query(trigger)
		if len(targets) == 0 || el == nil {
			return nil
		}
		return []Binding{{Targets: targets, Trigger: el}}
	}
}

// each animates every match of selector separately, triggered by itself.
func each(selector string) func(dom.Document) []Binding {
	return func(d dom.Document) []Binding {
		var out []Binding
		for _, el := range d.QueryAll(selector) {
			out = append(out, Binding{Targets: []dom.Element{el}, Trigger: el})
		}
		return out
	}
}

func sectionHeaders(d dom.Document) []Binding {
	var out []Binding
	for _, section := range d.QueryAll(".section") {
		if header := section.Query(".section-header"); header != nil {
			out = append(out, Binding{Targets: []dom.Element{header}, Trigger: section})
		}
	}
	return out
}

// Reveals lists the page's entrance animations.
func Reveals() []Reveal {
	return []Reveal{
		{
			Name:  "section-headers",
			Bind:  sectionHeaders,
			From:  collab.Props{"y": 100.0, "opacity": 0.0},
			To:    collab.Tween{Props: collab.Props{"y": 0.0, "opacity": 1.0}, Duration: 1.5, Ease: "power3.out"},
			Start: "top 80%",
			End:   "top 20%",
			Scrub: 1,
		},
		{
			Name: "service-cards",
			Bind: group(".service-card", ".services-grid"),
			From: collab.Props{"y": 100.0, "opacity": 0.0, "scale": 0.9},
			To: collab.Tween{
				Props:    collab.Props{"y": 0.0, "opacity": 1.0, "scale": 1.0},
				Duration: 1.2,
				Ease:     "power3.out",
				Stagger:  &collab.Stagger{Amount: 0.8, From: "random"},
			},
			Start: "top 70%",
		},
		{
			Name: "project-cards",
			Bind: group(".project", ".projects"),
			From: collab.Props{"scale": 0.8, "opacity": 0.0},
			To: collab.Tween{
				Props:    collab.Props{"scale": 1.0, "opacity": 1.0},
				Duration: 1,
				Ease:     "power3.out",
				Stagger:  &collab.Stagger{Each: 0.2},
			},
			Start:      "left 80%",
			Horizontal: true,
		},
		{
			Name: "experience-cards",
			Bind: group(".experience-card", ".experience-grid"),
			From: collab.Props{"scale": 0.0, "opacity": 0.0, "rotation": -180.0},
			To: collab.Tween{
				Props:    collab.Props{"scale": 1.0, "opacity": 1.0, "rotation": 0.0},
				Duration: 1.2,
				Ease:     "back.out(1.2)",
				Stagger:  &collab.Stagger{Amount: 0.8, From: "center"},
			},
			Start: "top 70%",
		},
		{
			Name: "skills",
			Bind: group(".skills li", ".skills"),
			From: collab.Props{"scale": 0.8, "opacity": 0.0},
			To: collab.Tween{
				Props:    collab.Props{"scale": 1.0, "opacity": 1.0},
				Duration: 0.6,
				Ease:     "back.out(1.7)",
				Stagger:  &collab.Stagger{Each: 0.1},
			},
			Start: "top 80%",
		},
		{
			Name: "heading-text",
			Bind: each(".section-header h2"),
			From: collab.Props{"clipPath": "polygon(0 0, 0 0, 0 100%, 0 100%)", "opacity": 0.0},
			To: collab.Tween{
				Props:    collab.Props{"clipPath": "polygon(0 0, 100% 0, 100% 100%, 0 100%)", "opacity": 1.0},
				Duration: 1.5,
				Ease:     "power4.out",
			},
			Start: "top 80%",
		},
	}
}

// RegisterReveals hands every bound reveal to the animator. It only runs when the
// animator supports scroll triggers and returns the number of tweens created.
func RegisterReveals(p *Page, reveals []Reveal) int {
	linked, ok := p.Animator.(collab.ScrollLinked)
	if p.Animator == nil || !ok || !linked.ScrollTriggerEnabled() {
		p.skip("reveals", "no scroll-linked animator")
		return 0
	}
	created := 0
	for _, r := range reveals {
		for _, b := range r.Bind(p.Doc) {
			t := r.To
			t.ScrollTrigger = &collab.ScrollTrigger{
				Trigger:    b.Trigger,
				Start:      r.Start,
				End:        r.End,
				Scrub:      r.Scrub,
				Horizontal: r.Horizontal,
			}
			p.Animator.FromTo(b.Targets, r.From, t)
			created++
		}
	}
	return created
}
