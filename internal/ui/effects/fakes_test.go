package effects

import (
	"testing"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/config"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom/domtest"
)

const pageMarkup = `<html><body class="loading">
<header class="site-header"><a href="#about" class="magnetic">About</a></header>
<nav class="floating-nav"><div class="floating-links">
  <a href="#hero">Hero</a><a href="#about">About</a><a href="#work">Work</a>
</div></nav>
<canvas id="bg-canvas"></canvas>
<section id="hero" class="section"><div class="section-header"><h2>Hero</h2></div></section>
<section id="about" class="section"><div class="section-header"><h2>About</h2></div></section>
<section id="work" class="section">
  <div class="projects">
    <article class="project" data-tilt data-name="a">A</article>
    <article class="project" data-tilt data-name="b">B</article>
    <article class="project" data-tilt data-name="c">C</article>
  </div>
</section>
<div class="services-grid"><div class="service-card">1</div><div class="service-card">2</div></div>
<h1 data-split-text>Hi you</h1>
<h1 data-split-text class="keep">Keep <span class="accent">me</span></h1>
<div data-parallax></div><div data-parallax data-parallax-speed="0.1"></div>
<span id="year"></span>
</body></html>`

type fixture struct {
	doc  *domtest.Document
	win  *domtest.Window
	page *Page
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	doc := domtest.MustParse(pageMarkup)
	win := domtest.NewWindow(1280, 800)
	offsets := map[string][2]float64{"hero": {0, 800}, "about": {800, 600}, "work": {1400, 900}}
	for _, s := range doc.QueryAll("section[id]") {
		id, _ := s.Attr("id")
		o := offsets[id]
		doc.SetOffset(s, o[0], o[1])
	}
	return &fixture{
		doc: doc,
		win: win,
		page: &Page{
			Doc:      doc,
			Win:      win,
			Settings: config.Default(),
		},
	}
}

type tweenCall struct {
	targets []dom.Element
	from    collab.Props
	tween   collab.Tween
}

type recordingAnimator struct {
	scrollLinked bool
	to           []tweenCall
	fromTo       []tweenCall
}

func (a *recordingAnimator) To(targets []dom.Element, t collab.Tween) {
	a.to = append(a.to, tweenCall{targets: targets, tween: t})
}

func (a *recordingAnimator) FromTo(targets []dom.Element, from collab.Props, t collab.Tween) {
	a.fromTo = append(a.fromTo, tweenCall{targets: targets, from: from, tween: t})
}

func (a *recordingAnimator) ScrollTriggerEnabled() bool { return a.scrollLinked }

type fakeScroller struct {
	rafs      int
	listeners []func(float64)
	scrolled  []dom.Element
	opts      []collab.ScrollOptions
}

func (s *fakeScroller) Raf(float64) { s.rafs++ }

func (s *fakeScroller) OnScroll(fn func(float64)) { s.listeners = append(s.listeners, fn) }

func (s *fakeScroller) ScrollTo(target dom.Element, opts collab.ScrollOptions) {
	s.scrolled = append(s.scrolled, target)
	s.opts = append(s.opts, opts)
}

func (s *fakeScroller) emit(y float64) {
	for _, fn := range s.listeners {
		fn(y)
	}
}
