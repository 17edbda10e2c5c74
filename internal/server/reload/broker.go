package reload

import (
	"sync"
	"time"
)

// Change is one debounced batch of file changes.
type Change struct {
	Version int64     `json:"version"`
	Paths   []string  `json:"paths"`
	At      time.Time `json:"at"`
}

// Broker fans changes out to connected streams. Slow subscribers miss changes rather
// than block the watcher.
type Broker struct {
	mu          sync.RWMutex
	version     int64
	subscribers map[chan Change]struct{}
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subscribers: make(map[chan Change]struct{})}
}

// Publish assigns the next version to paths and delivers it.
func (b *Broker) Publish(paths []string, at time.Time) Change {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.version++
	change := Change{Version: b.version, Paths: append([]string(nil), paths...), At: at}
	for ch := range b.subscribers {
		select {
		case ch <- change:
		default:
		}
	}
	return change
}

// Version is the number of changes published so far.
func (b *Broker) Version() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Subscribe registers a stream and returns the version it starts from.
func (b *Broker) Subscribe() (chan Change, int64) {
	ch := make(chan Change, 8)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	version := b.version
	b.mu.Unlock()
	return ch, version
}

// Unsubscribe removes and closes ch. It is safe to call more than once.
func (b *Broker) Unsubscribe(ch chan Change) {
	b.mu.Lock()
	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Subscribers reports how many streams are connected.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
