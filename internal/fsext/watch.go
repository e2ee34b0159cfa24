package fsext

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 300 * time.Millisecond

// Watcher reports batches of changed files under a root directory. Events
// are debounced so a burst of writes produces a single batch.
type Watcher struct {
	root     string
	debounce time.Duration
	ignore   []string
	lister   *DirectoryLister

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer

	ready chan struct{}
}

func NewWatcher(root string, ignorePatterns []string) *Watcher {
	return &Watcher{
		root:     root,
		debounce: DefaultDebounce,
		ignore:   ignorePatterns,
		lister:   NewDirectoryLister(root),
		pending:  make(map[string]struct{}),
		ready:    make(chan struct{}),
	}
}

// SetDebounce changes how long the watcher waits for events to settle.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Ready is closed once every directory under the root is watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Watch blocks until ctx is done, calling onChange from a timer goroutine
// with the sorted paths that changed.
func (w *Watcher) Watch(ctx context.Context, onChange func(paths []string)) error {
	if limit, err := RaiseOpenFileLimit(); err != nil {
		slog.Warn("Error raising the open file limit", "limit", limit, "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	slog.Debug("Starting directory watcher", "root", w.root)
	err = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.lister.shouldIgnore(path, w.ignore) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			slog.Error("Error watching path", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", w.root, err)
	}
	close(w.ready)

	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.lister.shouldIgnore(event.Name, w.ignore) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						slog.Error("Error adding directory to watcher", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("File event", "path", event.Name, "operation", event.Op.String())
			w.schedule(event.Name, onChange)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Error watching file", "error", err)
		}
	}
}

func (w *Watcher) schedule(path string, onChange func([]string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		paths := make([]string, 0, len(w.pending))
		for p := range w.pending {
			paths = append(paths, p)
		}
		w.pending = make(map[string]struct{})
		w.timer = nil
		w.mu.Unlock()

		slices.Sort(paths)
		onChange(paths)
	})
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
