//go:build js && wasm

package jscollab

import (
	"syscall/js"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

// GSAP drives the tween library and, when registered, its ScrollTrigger plugin.
type GSAP struct {
	v             js.Value
	scrollTrigger bool
}

var (
	_ collab.Animator     = (*GSAP)(nil)
	_ collab.ScrollLinked = (*GSAP)(nil)
)

// NewGSAP returns the adapter, or false when gsap is not loaded.
func NewGSAP() (*GSAP, bool) {
	g, ok := global("gsap")
	if !ok {
		return nil, false
	}
	a := &GSAP{v: g}
	if plugin, ok := global("ScrollTrigger"); ok {
		g.Call("registerPlugin", plugin)
		a.scrollTrigger = true
	}
	return a, true
}

func (a *GSAP) ScrollTriggerEnabled() bool { return a.scrollTrigger }

func (a *GSAP) To(targets []dom.Element, t collab.Tween) {
	if len(targets) == 0 {
		return
	}
	a.v.Call("to", jsTargets(targets), a.vars(t))
}

func (a *GSAP) FromTo(targets []dom.Element, from collab.Props, to collab.Tween) {
	if len(targets) == 0 {
		return
	}
	a.v.Call("fromTo", jsTargets(targets), map[string]any(from), a.vars(to))
}

func (a *GSAP) vars(t collab.Tween) map[string]any {
	vars := make(map[string]any, len(t.Props)+4)
	for k, v := range t.Props {
		vars[k] = v
	}
	if t.Duration > 0 {
		vars["duration"] = t.Duration
	}
	if t.Ease != "" {
		vars["ease"] = t.Ease
	}
	if s := t.Stagger; s != nil {
		stagger := map[string]any{}
		if s.Amount > 0 {
			stagger["amount"] = s.Amount
		} else {
			stagger["each"] = s.Each
		}
		if s.From != "" {
			stagger["from"] = s.From
		}
		vars["stagger"] = stagger
	}
	if st := t.ScrollTrigger; st != nil && a.scrollTrigger {
		trigger, ok := jsTarget(st.Trigger)
		if ok {
			cfg := map[string]any{"trigger": trigger}
			if st.Start != "" {
				cfg["start"] = st.Start
			}
			if st.End != "" {
				cfg["end"] = st.End
			}
			if st.Scrub > 0 {
				cfg["scrub"] = st.Scrub
			}
			if st.Horizontal {
				cfg["horizontal"] = true
			}
			vars["scrollTrigger"] = cfg
		}
	}
	return vars
}
