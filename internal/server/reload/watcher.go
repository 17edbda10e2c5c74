package reload

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher turns file system events under a root directory into broker changes.
type Watcher struct {
	root     string
	filter   Filter
	debounce time.Duration
	broker   *Broker
	log      *zap.Logger
	now      func() time.Time
	fsw      *fsnotify.Watcher
}

// NewWatcher watches root and every directory below it.
func NewWatcher(root string, filter Filter, debounce time.Duration, broker *Broker, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{
		root:     abs,
		filter:   filter,
		debounce: debounce,
		broker:   broker,
		log:      log,
		now:      time.Now,
		fsw:      fsw,
	}
	if err := w.addTree(abs); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	ticker := time.NewTicker(max(w.debounce/2, time.Millisecond))
	defer ticker.Stop()

	pending := make(map[string]struct{})
	var last time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if rel, ok := w.handleEvent(event); ok {
				pending[rel] = struct{}{}
				last = w.now()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.log.Warn("watch queue overflowed, forcing reload")
				pending["*"] = struct{}{}
				last = w.now()
				continue
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-ticker.C:
			if len(pending) == 0 || w.now().Sub(last) < w.debounce {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)
			change := w.broker.Publish(paths, w.now())
			w.log.Info("site changed",
				zap.Int64("version", change.Version),
				zap.Strings("paths", paths),
				zap.Int("subscribers", w.broker.Subscribers()),
			)
		}
	}
}

// handleEvent returns the root-relative path when event should trigger a reload.
func (w *Watcher) handleEvent(event fsnotify.Event) (string, bool) {
	if event.Op == fsnotify.Chmod {
		return "", false
	}
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !skipDir(info.Name()) {
				if err := w.addTree(event.Name); err != nil {
					w.log.Warn("watching new directory", zap.String("path", event.Name), zap.Error(err))
				}
			}
			return "", false
		}
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if !w.filter.Match(rel) {
		return "", false
	}
	w.log.Debug("file event", zap.String("path", rel), zap.String("op", event.Op.String()))
	return rel, true
}

// Close releases the watcher without running it. Run closes it on return.
func (w *Watcher) Close() error { return w.fsw.Close() }
