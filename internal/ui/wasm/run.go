//go:build js && wasm

// Package wasm boots the portfolio page in the browser.
package wasm

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab/jscollab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/config"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom/jsdom"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/effects"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/lifecycle"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/motion"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/portfolio"
	"github.com/Its-donkey/luxe-portfolio/logging"
)

// RunApp wires the page against the browser document and blocks forever.
func RunApp() {
	done := make(chan struct{})
	reg := &jsdom.Registry{}
	doc := jsdom.NewDocument(reg)
	win := jsdom.NewWindow(reg)

	level := ""
	settings := config.Default()
	if body := doc.Body(); body != nil {
		level, _ = body.Attr("data-log-level")
		// Read early for the lifecycle delays and dev reload. The wiring routine
		// applies the dataset again on its own copy.
		_ = settings.ApplyDataset(body)
	}
	log := logging.NewConsole(level)

	env := portfolio.Env{
		Document:   doc,
		Window:     win,
		Settings:   settings,
		Logger:     log,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
	if lenis, ok := jscollab.NewLenis(effects.ScrollerConfig(settings)); ok {
		env.Scroller = lenis
	}
	if gsap, ok := jscollab.NewGSAP(); ok {
		env.Animator = gsap
	} else {
		env.Animator = motion.NewSpringAnimator(win)
	}
	if three, ok := jscollab.NewThree(); ok {
		env.Scenes = three
	}

	app, _ := portfolio.Start(env, lifecycle.WithDelays(settings.LoadDelay, settings.ReadyDelay))
	win.Listen(dom.EventLoad, func(*dom.Event) { app.OnLoad() })
	doc.Listen(dom.EventDOMReady, func(*dom.Event) { app.OnDOMReady() })
	win.Listen("pagehide", func(*dom.Event) {
		app.Shutdown()
		reg.Release()
	})

	// The module may finish loading after either event has fired.
	switch doc.ReadyState() {
	case "complete":
		app.OnLoad()
	case "interactive":
		app.OnDOMReady()
	}

	if settings.DevReloadPath != "" {
		watchReload(settings.DevReloadPath, log.Named("reload"))
	}
	log.Debug("bootstrapped",
		zap.Bool("lenis", env.Scroller != nil),
		zap.Bool("three", env.Scenes != nil),
		zap.String("ready_state", doc.ReadyState()),
	)
	<-done
}
