package effects

import "github.com/Its-donkey/luxe-portfolio/internal/ui/dom"

// Gallery is the looped project marquee. The scrolling itself is a CSS animation on
// the track; Go only builds the doubled track and toggles its play state.
type Gallery struct {
	container dom.Element
	track     dom.Element
	paused    bool
}

// LoopGallery replaces the .projects cards with a .projects-track holding two
// contiguous copies of them, reattaches tilt to the copies and binds click-to-pause.
// It returns nil when there is no gallery or the viewport is narrow.
func LoopGallery(p *Page) *Gallery {
	container := p.Doc.Query(".projects")
	if container == nil {
		p.skip("gallery", "no .projects container")
		return nil
	}
	if p.Win.InnerWidth() <= p.Settings.NarrowViewport {
		p.skip("gallery", "narrow viewport")
		return nil
	}

	cards := container.QueryAll(".project")
	track := p.Doc.CreateElement("div")
	track.ClassList().Add("projects-track")
	for pass := 0; pass < 2; pass++ {
		for _, card := range cards {
			track.AppendChild(card.CloneDeep())
		}
	}
	container.Clear()
	container.AppendChild(track)

	// Clones do not carry listeners.
	BindTiltAll(p, track.QueryAll("[data-tilt]"))

	g := &Gallery{container: container, track: track}
	container.Listen(dom.EventClick, func(*dom.Event) { g.Toggle() })
	return g
}

// Toggle flips the marquee between paused and running.
func (g *Gallery) Toggle() {
	g.paused = !g.paused
	state := "running"
	if g.paused {
		state = "paused"
	}
	g.track.SetStyle("animation-play-state", state)
}

// Paused reports the current play state.
func (g *Gallery) Paused() bool { return g.paused }

// Track returns the generated track element.
func (g *Gallery) Track() dom.Element { return g.track }
