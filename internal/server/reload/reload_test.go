package reload

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFilterMatch(t *testing.T) {
	f := Filter{
		Include: []string{"**/*.html", "**/*.css", "*.wasm"},
		Exclude: []string{"**/*.tmp.css", "drafts/**"},
	}
	cases := map[string]bool{
		"index.html":        true,
		"css/site.css":      true,
		"css/site.tmp.css":  false,
		"app.wasm":          true,
		"build/app.wasm":    true,
		"drafts/index.html": false,
		"js/app.js":         false,
	}
	for rel, want := range cases {
		if got := f.Match(rel); got != want {
			t.Fatalf("%s: expected %v got %v", rel, want, got)
		}
	}
	if !(Filter{}).Match("anything.txt") {
		t.Fatal("expected empty include to match everything")
	}
}

func TestBrokerPublishesToSubscribers(t *testing.T) {
	b := NewBroker()
	ch, version := b.Subscribe()
	if version != 0 {
		t.Fatalf("expected version 0, got %d", version)
	}
	at := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	b.Publish([]string{"index.html"}, at)

	select {
	case got := <-ch:
		want := Change{Version: 1, Paths: []string{"index.html"}, At: at}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("change mismatch (-want +got):\n%s", diff)
		}
	default:
		t.Fatal("expected change delivered")
	}

	b.Unsubscribe(ch)
	b.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatal("expected channel closed")
	}
	if b.Subscribers() != 0 {
		t.Fatalf("expected no subscribers, got %d", b.Subscribers())
	}
	if _, version := b.Subscribe(); version != 1 {
		t.Fatalf("expected late subscriber at version 1, got %d", version)
	}
}

func TestBrokerDropsForSlowSubscriber(t *testing.T) {
	b := NewBroker()
	ch, _ := b.Subscribe()
	for i := 0; i < 20; i++ {
		b.Publish([]string{"a.css"}, time.Time{})
	}
	if len(ch) != cap(ch) {
		t.Fatalf("expected buffer full at %d, got %d", cap(ch), len(ch))
	}
	if b.Version() != 20 {
		t.Fatalf("expected version 20, got %d", b.Version())
	}
}

type sseEvent struct {
	name string
	id   string
	data string
}

func readEvent(t *testing.T, r *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	var data []string
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		line = strings.TrimSuffix(line, "\n")
		switch {
		case line == "":
			ev.data = strings.Join(data, "\n")
			return ev
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "id: "):
			ev.id = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: "))
		}
	}
}

func waitForSubscribers(t *testing.T, b *Broker, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for b.Subscribers() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d subscribers, got %d", n, b.Subscribers())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHandlerStreamsChanges(t *testing.T) {
	b := NewBroker()
	b.Publish([]string{"old.css"}, time.Time{})
	srv := httptest.NewServer(Handler(b))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected event stream, got %q", ct)
	}
	r := bufio.NewReader(resp.Body)

	ready := readEvent(t, r)
	if ready.name != "ready" || ready.data != "1" {
		t.Fatalf("unexpected ready event %+v", ready)
	}

	waitForSubscribers(t, b, 1)
	b.Publish([]string{"index.html", "css/site.css"}, time.Time{})

	ev := readEvent(t, r)
	if ev.name != "change" || ev.id != "2" {
		t.Fatalf("unexpected change event %+v", ev)
	}
	var change Change
	if err := json.Unmarshal([]byte(ev.data), &change); err != nil {
		t.Fatalf("decode payload %q: %v", ev.data, err)
	}
	if diff := cmp.Diff([]string{"index.html", "css/site.css"}, change.Paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlerRejectsPost(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler(NewBroker()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dev/reload", nil))
	if rec.Code != http.StatusMethodNotAllowed || rec.Header().Get("Allow") != http.MethodGet {
		t.Fatalf("expected 405 with Allow header, got %d", rec.Code)
	}
}

func TestWatcherPublishesDebouncedChanges(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "css"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "node_modules"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	b := NewBroker()
	w, err := NewWatcher(root, Filter{Include: []string{"**/*.css", "**/*.html"}}, 20*time.Millisecond, b, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	ch, _ := b.Subscribe()
	defer b.Unsubscribe(ch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("run: %v", err)
		}
	}()

	write := func(rel, body string) {
		if err := os.WriteFile(filepath.Join(root, rel), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	write("notes.txt", "ignored")
	write("css/site.css", "body{}")
	write("index.html", "<html></html>")

	select {
	case change := <-ch:
		want := []string{"css/site.css", "index.html"}
		if len(change.Paths) == 1 {
			// The two writes straddled a debounce window; collect the second batch.
			select {
			case next := <-ch:
				change.Paths = append(change.Paths, next.Paths...)
			case <-time.After(2 * time.Second):
				t.Fatal("expected second change")
			}
		}
		got := append([]string(nil), change.Paths...)
		if len(got) == 2 && got[0] > got[1] {
			got[0], got[1] = got[1], got[0]
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("paths mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change")
	}
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	b := NewBroker()
	w, err := NewWatcher(root, Filter{Include: []string{"**/*.css"}}, 20*time.Millisecond, b, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	ch, _ := b.Subscribe()
	defer b.Unsubscribe(ch)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	dir := filepath.Join(root, "theme")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	// Give the loop a chance to register the new directory.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if err := os.WriteFile(filepath.Join(dir, "dark.css"), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		select {
		case change := <-ch:
			for _, p := range change.Paths {
				if p == "theme/dark.css" {
					return
				}
			}
		case <-time.After(100 * time.Millisecond):
		}
		if time.Now().After(deadline) {
			t.Fatal("expected change in new directory")
		}
	}
}

func TestNewWatcherMissingRoot(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope"), Filter{}, 0, NewBroker(), nil); err == nil {
		t.Fatal("expected error for missing root")
	}
}
