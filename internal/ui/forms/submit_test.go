package forms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/config"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom/domtest"
)

const formMarkup = `<html><body>
<form id="contactForm" action="%s">
  <input name="name" type="text">
  <input name="email" type="email">
  <textarea name="message"></textarea>
  <button type="submit">Send Message</button>
</form>
</body></html>`

type formFixture struct {
	doc    *domtest.Document
	win    *domtest.Window
	sub    *Submitter
	button dom.Element
}

func inline(fn func()) { fn() }

func newFormFixture(t *testing.T, action string) *formFixture {
	t.Helper()
	doc := domtest.MustParse(strings.Replace(formMarkup, "%s", action, 1))
	win := domtest.NewWindow(1280, 800)
	sub, err := Bind(doc, win, nil, config.Default(), WithAsync(inline))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	return &formFixture{doc: doc, win: win, sub: sub, button: doc.Query(`button[type="submit"]`)}
}

func (f *formFixture) fill(name, value string) {
	f.doc.SetValue(f.doc.Query(`[name="`+name+`"]`), value)
}

func (f *formFixture) submit() *dom.Event {
	ev := dom.NewEvent(dom.EventSubmit, 0, 0, nil)
	f.doc.DispatchTo(f.doc.ElementByID("contactForm"), ev)
	return ev
}

func TestSubmitSuccessRoundTrip(t *testing.T) {
	var (
		mu  sync.Mutex
		got struct {
			method, contentType, accept, requestID string
			fields                                 map[string][]string
		}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		got.method = r.Method
		got.contentType = r.Header.Get("Content-Type")
		got.accept = r.Header.Get("Accept")
		got.requestID = r.Header.Get("X-Request-ID")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		got.fields = r.PostForm
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	f := newFormFixture(t, srv.URL)
	f.fill("name", "  Ada ")
	f.fill("message", "Hello\n  indented\n")
	f.fill("email", "ada@example.com")

	ev := f.submit()
	if !ev.DefaultPrevented() {
		t.Fatal("expected native submit prevented")
	}
	mu.Lock()
	defer mu.Unlock()
	if got.method != http.MethodPost || got.contentType != "application/x-www-form-urlencoded" || got.accept != "application/json" {
		t.Fatalf("unexpected request %+v", got)
	}
	if _, err := uuid.Parse(got.requestID); err != nil {
		t.Fatalf("expected uuid request id, got %q", got.requestID)
	}
	want := map[string][]string{"name": {"  Ada "}, "email": {"ada@example.com"}, "message": {"Hello\n  indented\n"}}
	if diff := cmp.Diff(want, got.fields); diff != "" {
		t.Fatalf("posted fields mismatch (-want +got):\n%s", diff)
	}

	if f.sub.State() != Success || f.button.Text() != LabelSuccess {
		t.Fatalf("expected success label, got %v %q", f.sub.State(), f.button.Text())
	}
	if !f.button.Disabled() {
		t.Fatal("expected button disabled while the result shows")
	}
	if v := f.doc.Query(`[name="name"]`).(*domtest.Element).Value(); v != "" {
		t.Fatalf("expected form cleared, name is %q", v)
	}

	f.win.Advance(3*time.Second - time.Millisecond)
	if f.button.Text() != LabelSuccess {
		t.Fatal("expected success label held for the display delay")
	}
	f.win.Advance(time.Millisecond)
	if f.sub.State() != Idle || f.button.Text() != "Send Message" || f.button.Disabled() {
		t.Fatalf("expected idle restore, got %v %q disabled=%v", f.sub.State(), f.button.Text(), f.button.Disabled())
	}
}

func TestSubmitErrorLabels(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "json error", status: http.StatusInternalServerError, body: `{"error":"mailbox full"}`, want: LabelFailed},
		{name: "activation", status: http.StatusBadRequest, body: `{"error":"This form needs Activation. We've sent you an email."}`, want: LabelPending},
		{name: "plain body", status: http.StatusBadGateway, body: "form not activated", want: LabelPending},
		{name: "empty body", status: http.StatusServiceUnavailable, body: "", want: LabelFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			f := newFormFixture(t, srv.URL)
			f.fill("name", "Ada")
			f.submit()
			if f.sub.State() != Error || f.button.Text() != tc.want {
				t.Fatalf("expected %q, got %v %q", tc.want, f.sub.State(), f.button.Text())
			}
			if v := f.doc.Query(`[name="name"]`).(*domtest.Element).Value(); v != "Ada" {
				t.Fatalf("expected fields kept on error, got %q", v)
			}

			f.win.Advance(3 * time.Second)
			if f.sub.State() != Error {
				t.Fatal("expected error label held past the success delay")
			}
			f.win.Advance(time.Second)
			if f.sub.State() != Idle || f.button.Text() != "Send Message" || f.button.Disabled() {
				t.Fatalf("expected idle restore, got %v %q", f.sub.State(), f.button.Text())
			}
		})
	}
}

func TestSubmitTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := newFormFixture(t, url)
	f.submit()
	if f.sub.State() != Error || f.button.Text() != LabelFailed {
		t.Fatalf("expected generic failure, got %v %q", f.sub.State(), f.button.Text())
	}
}

func TestSubmitIgnoredUnlessIdle(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	doc := domtest.MustParse(strings.Replace(formMarkup, "%s", srv.URL, 1))
	win := domtest.NewWindow(1280, 800)
	var queued []func()
	sub, err := Bind(doc, win, srv.Client(), config.Default(), WithAsync(func(fn func()) { queued = append(queued, fn) }))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	if err := sub.Submit(context.Background()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if sub.State() != Sending || doc.Query("button").Text() != LabelSending {
		t.Fatalf("expected sending state, got %v", sub.State())
	}
	if err := sub.Submit(context.Background()); !errors.Is(err, ErrNotIdle) {
		t.Fatalf("expected ErrNotIdle, got %v", err)
	}
	if len(queued) != 1 {
		t.Fatalf("expected one request queued, got %d", len(queued))
	}
	queued[0]()
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected one request, got %d", n)
	}
	if err := sub.Submit(context.Background()); !errors.Is(err, ErrNotIdle) {
		t.Fatalf("expected submit rejected during result display, got %v", err)
	}
}

func TestBindEndpointFallsBackToSettings(t *testing.T) {
	doc := domtest.MustParse(`<html><body><form id="contactForm"><button type="submit">Go</button></form></body></html>`)
	s := config.Default()
	s.FormEndpoint = "https://relay.example/f/abc"
	sub, err := Bind(doc, domtest.NewWindow(800, 600), nil, s)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if sub.Endpoint() != s.FormEndpoint {
		t.Fatalf("expected settings endpoint, got %q", sub.Endpoint())
	}
}

func TestSubmitWithoutEndpointFails(t *testing.T) {
	doc := domtest.MustParse(`<html><body><form id="contactForm"><button type="submit">Go</button></form></body></html>`)
	win := domtest.NewWindow(800, 600)
	sub, err := Bind(doc, win, nil, config.Default(), WithAsync(inline))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := sub.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.State() != Error {
		t.Fatalf("expected error state, got %v", sub.State())
	}
}

func TestBindMissingForm(t *testing.T) {
	for _, markup := range []string{
		`<html><body></body></html>`,
		`<html><body><form id="contactForm"><button type="button">x</button></form></body></html>`,
	} {
		doc := domtest.MustParse(markup)
		if _, err := Bind(doc, domtest.NewWindow(800, 600), nil, config.Default()); !errors.Is(err, ErrMissingForm) {
			t.Fatalf("expected ErrMissingForm, got %v", err)
		}
	}
}

func TestErrorLabel(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, LabelFailed},
		{errors.New("dial tcp: connection refused"), LabelFailed},
		{errors.New("Please ACTIVATE this form"), LabelFailed},
		{fmt.Errorf("send contact request: %w", errors.New(`Post "https://relay.example/activate/f": connection refused`)), LabelFailed},
		{&RelayError{Status: 400, Message: "form should be activated"}, LabelPending},
		{&RelayError{Status: 500}, LabelFailed},
	}
	for _, tc := range cases {
		if got := ErrorLabel(tc.err); got != tc.want {
			t.Fatalf("%v: expected %q got %q", tc.err, tc.want, got)
		}
	}
}

func TestStateString(t *testing.T) {
	for state, want := range map[State]string{Idle: "idle", Sending: "sending", Success: "success", Error: "error", State(9): "unknown"} {
		if got := state.String(); got != want {
			t.Fatalf("expected %q got %q", want, got)
		}
	}
}
