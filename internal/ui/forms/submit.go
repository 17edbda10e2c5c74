// Package forms drives the contact form: it intercepts submit, posts the fields to the
// form relay and walks the submit button through Idle, Sending, Success or Error and
// back to Idle.
package forms

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/config"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

var (
	// ErrNotIdle is returned when a submission is attempted mid-cycle.
	ErrNotIdle = errors.New("forms: submission already in progress")
	// ErrMissingForm is returned when the page has no contact form or submit button.
	ErrMissingForm = errors.New("forms: contact form not found")
	// ErrNoEndpoint is returned when neither the form nor the settings name a relay.
	ErrNoEndpoint = errors.New("forms: no form endpoint configured")
)

const requestTimeout = 10 * time.Second

// Submitter owns one contact form.
type Submitter struct {
	form      dom.Element
	button    dom.Element
	idleLabel string
	endpoint  string

	sched    dom.Scheduler
	client   *http.Client
	settings config.Settings
	log      *zap.Logger
	async    func(func())

	mu    sync.Mutex
	state State
}

// Option customises a Submitter.
type Option func(*Submitter)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Submitter) {
		if l != nil {
			s.log = l
		}
	}
}

// WithAsync replaces how the network call is started. The default runs it on a new
// goroutine; tests run it inline.
func WithAsync(run func(func())) Option {
	return func(s *Submitter) {
		if run != nil {
			s.async = run
		}
	}
}

// Bind finds #contactForm and its submit button, captures the idle label and starts
// intercepting submit events.
func Bind(doc dom.Document, sched dom.Scheduler, client *http.Client, settings config.Settings, opts ...Option) (*Submitter, error) {
	form := doc.ElementByID("contactForm")
	if form == nil {
		return nil, ErrMissingForm
	}
	button := form.Query(`button[type="submit"]`)
	if button == nil {
		return nil, ErrMissingForm
	}
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	endpoint := settings.FormEndpoint
	if action, ok := form.Attr("action"); ok && strings.TrimSpace(action) != "" {
		endpoint = strings.TrimSpace(action)
	}

	s := &Submitter{
		form:      form,
		button:    button,
		idleLabel: button.Text(),
		endpoint:  endpoint,
		sched:     sched,
		client:    client,
		settings:  settings,
		log:       zap.NewNop(),
		async:     func(fn func()) { go fn() },
	}
	for _, opt := range opts {
		opt(s)
	}

	form.Listen(dom.EventSubmit, func(ev *dom.Event) {
		ev.PreventDefault()
		if err := s.Submit(context.Background()); err != nil {
			s.log.Debug("submit ignored", zap.Error(err))
		}
	})
	return s, nil
}

// State reports the current button state.
func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Endpoint reports where submissions are posted.
func (s *Submitter) Endpoint() string { return s.endpoint }

// Submit starts one submission cycle. It returns ErrNotIdle unless the form is Idle.
func (s *Submitter) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return ErrNotIdle
	}
	s.state = Sending
	s.mu.Unlock()

	s.button.SetDisabled(true)
	s.button.SetText(LabelSending)
	fields := EncodeFields(s.form.FormValues())

	s.async(func() {
		if s.endpoint == "" {
			s.finish("", ErrNoEndpoint)
			return
		}
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		requestID, err := postContact(reqCtx, s.client, s.endpoint, fields)
		s.finish(requestID, err)
	})
	return nil
}

func (s *Submitter) finish(requestID string, err error) {
	next, label, hold := Success, LabelSuccess, s.settings.SuccessDisplay
	if err != nil {
		next, label, hold = Error, ErrorLabel(err), s.settings.ErrorDisplay
		s.log.Warn("contact submission failed", zap.String("request_id", requestID), zap.Error(err))
	} else {
		s.log.Info("contact submission sent", zap.String("request_id", requestID))
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	s.button.SetText(label)
	if next == Success {
		s.form.Reset()
	}
	s.sched.AfterFunc(hold, s.restore)
}

func (s *Submitter) restore() {
	s.button.SetText(s.idleLabel)
	s.button.SetDisabled(false)
	s.mu.Lock()
	s.state = Idle
	s.mu.Unlock()
}
