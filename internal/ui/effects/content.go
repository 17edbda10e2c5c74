package effects

import (
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/config"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/frameloop"
)

// ScrollerConfig builds the smooth scroller's options: vertical, no smooth touch,
// not infinite.
func ScrollerConfig(s config.Settings) collab.SmoothScrollConfig {
	return collab.SmoothScrollConfig{
		Duration:        s.SmoothScrollSeconds,
		Direction:       "vertical",
		MouseMultiplier: s.MouseMultiplier,
		TouchMultiplier: s.TouchMultiplier,
	}
}

// DriveScroller advances the smooth scroller once per frame.
func DriveScroller(p *Page, scroller collab.SmoothScroller) *frameloop.Loop {
	if scroller == nil {
		p.skip("smooth-scroll", "no smooth scroller")
		return nil
	}
	return frameloop.Start(p.Win, scroller.Raf)
}

// BindAnchors turns in-page links into smooth scrolls with a short pulse on the target.
// Without a scroller the window jumps natively to the target's offset.
func BindAnchors(p *Page, scroller collab.SmoothScroller) int {
	anchors := p.Doc.QueryAll(`a[href^="#"]`)
	for _, a := range anchors {
		// Resolved once so every click animates the same element.
		var target dom.Element
		if href, _ := a.Attr("href"); strings.TrimPrefix(href, "#") != "" {
			target = p.Doc.ElementByID(strings.TrimPrefix(href, "#"))
		}
		a.Listen(dom.EventClick, func(ev *dom.Event) {
			if target == nil {
				return
			}
			ev.PreventDefault()
			if p.Animator != nil {
				p.Animator.FromTo([]dom.Element{target},
					collab.Props{"scale": 0.98, "opacity": 0.8},
					collab.Tween{Props: collab.Props{"scale": 1.0, "opacity": 1.0}, Duration: 1, Ease: "power2.out"},
				)
			}
			if scroller != nil {
				scroller.ScrollTo(target, collab.ScrollOptions{
					Offset:   p.Settings.AnchorOffset,
					Duration: p.Settings.AnchorDuration,
				})
				return
			}
			p.Win.ScrollTo(target.OffsetTop() + p.Settings.AnchorOffset)
		})
	}
	return len(anchors)
}

// SplitMarkup wraps each rune of text in a span, spaces as non-breaking.
func SplitMarkup(text string) string {
	var b strings.Builder
	for _, r := range text {
		b.WriteString("<span>")
		if r == ' ' {
			b.WriteString("&nbsp;")
		} else {
			b.WriteString(html.EscapeString(string(r)))
		}
		b.WriteString("</span>")
	}
	return b.String()
}

// SplitText splits every [data-split-text] element without an .accent child. It
// returns the number of elements rewritten.
func SplitText(p *Page) int {
	n := 0
	for _, el := range p.Doc.QueryAll("[data-split-text]") {
		if el.Query(".accent") != nil {
			continue
		}
		el.SetHTML(SplitMarkup(el.Text()))
		n++
	}
	return n
}

// SetYear writes the current year into #year.
func SetYear(p *Page, now time.Time) {
	if el := p.Doc.ElementByID("year"); el != nil {
		el.SetText(strconv.Itoa(now.Year()))
	}
}

// ScheduleLoadingRemoval drops the body's loading class after the configured delay.
func ScheduleLoadingRemoval(p *Page) {
	body := p.Doc.Body()
	if body == nil {
		return
	}
	p.Win.AfterFunc(p.Settings.LoadingRemoval, func() {
		body.ClassList().Remove("loading")
	})
}
