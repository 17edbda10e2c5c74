// Package portfolio is the page's single wiring routine. It composes the effects and
// the contact form against whatever document, window and collaborators the host
// provides.
package portfolio

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/config"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/effects"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/forms"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/lifecycle"
)

// Env is everything the wiring routine reads. Scroller, Animator and Scenes may be nil.
type Env struct {
	Document   dom.Document
	Window     dom.Window
	Scroller   collab.SmoothScroller
	Animator   collab.Animator
	Scenes     collab.SceneRenderer
	HTTPClient *http.Client
	Settings   config.Settings
	Logger     *zap.Logger
	Now        func() time.Time
	Rand       *rand.Rand

	FormOptions []forms.Option
}

// Site holds what the wiring routine built, for inspection and teardown.
type Site struct {
	env Env

	Scroll    *effects.ScrollOrchestrator
	Cursor    *effects.Cursor
	Gallery   *effects.Gallery
	Particles *effects.Particles
	Form      *forms.Submitter
	Bound     Counts
}

// Counts reports how many elements each listener-based feature bound.
type Counts struct {
	Magnetic int
	Tilt     int
	Parallax int
	Anchors  int
	Reveals  int
	Split    int
}

// NewSite fills Env defaults.
func NewSite(env Env) *Site {
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}
	if env.Now == nil {
		env.Now = time.Now
	}
	if env.Rand == nil {
		env.Rand = rand.New(rand.NewPCG(uint64(env.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	return &Site{env: env}
}

// Start builds the lifecycle App whose one-time wiring is this site's Initialize.
func Start(env Env, opts ...lifecycle.Option) (*lifecycle.App, *Site) {
	site := NewSite(env)
	return lifecycle.New(env.Window, site.Initialize, opts...), site
}

// Initialize wires every feature once. It is the lifecycle App's wiring callback and
// is only ever invoked through App.Initialize.
func (s *Site) Initialize(app *lifecycle.App) {
	env := s.env
	log := env.Logger
	settings := env.Settings
	if err := settings.ApplyDataset(env.Document.Body()); err != nil {
		log.Warn("page settings ignored", zap.Error(err))
	}

	p := &effects.Page{
		Doc:      env.Document,
		Win:      env.Window,
		Animator: env.Animator,
		Settings: settings,
		Log:      log.Named("effects"),
	}

	if loop := effects.DriveScroller(p, env.Scroller); loop != nil {
		app.Track(loop)
	}

	if s.Cursor = effects.StartCursor(p); s.Cursor != nil {
		app.Track(s.Cursor.Loop())
	}
	s.Bound.Magnetic = effects.BindMagnetic(p)

	s.Scroll = effects.NewScrollOrchestrator(p)
	s.Scroll.Follow(env.Scroller)
	s.Bound.Anchors = effects.BindAnchors(p, env.Scroller)
	effects.BindRipples(p)

	// Tilt before the gallery so its copies are the only rebinding.
	s.Bound.Tilt = effects.BindTiltAll(p, env.Document.QueryAll("[data-tilt]"))
	s.Gallery = effects.LoopGallery(p)
	s.Bound.Parallax = effects.BindParallax(p)

	s.Bound.Reveals = effects.RegisterReveals(p, effects.Reveals())
	s.Bound.Split = effects.SplitText(p)

	particles, err := effects.StartParticles(p, env.Scenes, env.Rand)
	if err != nil {
		log.Warn("particle background disabled", zap.Error(err))
	}
	if particles != nil {
		s.Particles = particles
		app.Track(particles.Loop())
	}

	form, err := forms.Bind(env.Document, env.Window, env.HTTPClient, settings,
		append([]forms.Option{forms.WithLogger(log.Named("forms"))}, env.FormOptions...)...)
	switch {
	case errors.Is(err, forms.ErrMissingForm):
		log.Debug("feature skipped", zap.String("feature", "contact-form"), zap.String("reason", "no #contactForm"))
	case err != nil:
		log.Warn("contact form disabled", zap.Error(err))
	default:
		s.Form = form
	}

	effects.SetYear(p, env.Now())
	effects.ScheduleLoadingRemoval(p)

	if stopper, ok := env.Animator.(lifecycle.Stopper); ok {
		app.Track(stopper)
	}
	if stopper, ok := env.Scroller.(lifecycle.Stopper); ok {
		app.Track(stopper)
	}
	log.Info("page wired",
		zap.Int("magnetic", s.Bound.Magnetic),
		zap.Int("tilt", s.Bound.Tilt),
		zap.Int("anchors", s.Bound.Anchors),
		zap.Int("reveals", s.Bound.Reveals),
		zap.Bool("smooth_scroll", env.Scroller != nil),
		zap.Bool("particles", s.Particles != nil),
	)
}
