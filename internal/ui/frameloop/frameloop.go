// Package frameloop runs self-rescheduling animation-frame callbacks behind a handle
// that can stop them.
package frameloop

import (
	"sync"
	"sync/atomic"
	"time"
)

// Requester queues a callback for the next animation frame.
type Requester interface {
	RequestFrame(fn func(timestampMs float64))
}

// Loop invokes its tick once per frame until stopped. Each tick does a fixed amount
// of work; nothing accumulates across frames.
type Loop struct {
	req     Requester
	tick    func(timestampMs float64)
	running atomic.Bool
	frames  atomic.Uint64
}

// Start requests the first frame and returns the running loop.
func Start(req Requester, tick func(timestampMs float64)) *Loop {
	l := &Loop{req: req, tick: tick}
	l.running.Store(true)
	req.RequestFrame(l.frame)
	return l
}

func (l *Loop) frame(ts float64) {
	if !l.running.Load() {
		return
	}
	l.tick(ts)
	l.frames.Add(1)
	if l.running.Load() {
		l.req.RequestFrame(l.frame)
	}
}

// Running reports whether the loop still reschedules itself.
func (l *Loop) Running() bool { return l.running.Load() }

// Frames reports how many ticks have run.
func (l *Loop) Frames() uint64 { return l.frames.Load() }

// Stop halts the loop. A frame already queued runs no tick.
func (l *Loop) Stop() { l.running.Store(false) }

// Ticker is a Requester for hosts without requestAnimationFrame. Callbacks run on the
// ticker's goroutine.
type Ticker struct {
	mu      sync.Mutex
	pending []func(float64)
	started time.Time
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewTicker starts delivering frames every interval.
func NewTicker(interval time.Duration) *Ticker {
	t := &Ticker{
		started: time.Now(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go t.run(interval)
	return t
}

func (t *Ticker) run(interval time.Duration) {
	defer close(t.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case now := <-ticker.C:
			t.mu.Lock()
			batch := t.pending
			t.pending = nil
			t.mu.Unlock()
			ts := float64(now.Sub(t.started)) / float64(time.Millisecond)
			for _, fn := range batch {
				fn(ts)
			}
		}
	}
}

func (t *Ticker) RequestFrame(fn func(float64)) {
	t.mu.Lock()
	t.pending = append(t.pending, fn)
	t.mu.Unlock()
}

// Close stops the ticker goroutine and waits for it to exit.
func (t *Ticker) Close() {
	t.once.Do(func() { close(t.stop) })
	<-t.done
}
