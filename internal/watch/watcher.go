package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a path must stay quiet before it is handed
// to the change handler. Editors write a file several times per save and
// build tools touch whole trees at once; half a second folds those bursts
// into a single re-scan.
const DefaultDebounce = 500 * time.Millisecond

// flushInterval is how often settled paths are collected. A fraction of
// the debounce window keeps flush latency low without busy-polling.
const flushInterval = 100 * time.Millisecond

// skipDirs are directory names never watched. Kept in line with the
// scan's default ignore patterns so the watcher ignores what a scan
// ignores.
var skipDirs = map[string]bool{
	"node_modules": true,
	"lib":          true,
	".git":         true,
}

var (
	// ErrNoTargets is returned when NewWatcher is given no paths to watch.
	ErrNoTargets = errors.New("no watch targets specified")

	// ErrNilHandler is returned when NewWatcher is given no change handler.
	ErrNilHandler = errors.New("no change handler specified")
)

// ChangeHandler receives the settled set of changed Solidity files.
// Paths are sorted and deduplicated. The handler runs on the watch loop,
// so a slow handler delays the next batch rather than overlapping it.
type ChangeHandler func(ctx context.Context, paths []string)

// Stats tracks watcher activity for the status line and debugging.
type Stats struct {
	FilesCreated  int
	FilesModified int
	FilesDeleted  int
	Rescans       int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
}

// Watcher watches Solidity source trees and reports changed files once
// they settle. Directory targets are watched recursively, and directories
// created while watching are picked up as they appear.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	targets     []string
	onChange    ChangeHandler
	debounceDur time.Duration
	debounceMap map[string]time.Time
	logger      *slog.Logger
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	stats       Stats
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long a path must stay quiet before triggering.
// Non-positive durations keep the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounceDur = d
		}
	}
}

// WithLogger sets the logger for watch events.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a Watcher over the given targets. Each target is a
// Solidity file or a directory; directories are watched recursively.
// The handler is called with each settled batch of changed files.
func NewWatcher(targets []string, onChange ChangeHandler, opts ...Option) (*Watcher, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	if onChange == nil {
		return nil, ErrNilHandler
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create filesystem watcher: %w", err)
	}

	w := &Watcher{
		watcher:     fsw,
		targets:     targets,
		onChange:    onChange,
		debounceDur: DefaultDebounce,
		debounceMap: make(map[string]time.Time),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = slog.Default()
	}

	return w, nil
}

// Start registers the targets and begins watching. It is non-blocking;
// the event loop runs in a goroutine until the context is cancelled or
// Stop is called. Starting an already running watcher is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	for _, target := range w.targets {
		info, err := os.Stat(target)
		if err != nil {
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return fmt.Errorf("watch target: %w", err)
		}

		if info.IsDir() {
			w.addRecursive(target)
		} else {
			// Watching the parent directory catches editors that
			// replace the file on save instead of writing in place.
			if err := w.watcher.Add(filepath.Dir(target)); err != nil {
				w.mu.Lock()
				w.running = false
				w.mu.Unlock()
				return fmt.Errorf("watch target %s: %w", target, err)
			}
		}
	}

	w.logger.Debug("watching", "dirs", len(w.watcher.WatchList()))

	go w.run(ctx)

	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("closing watcher", "error", err)
	}
}

// run is the main event loop for the watcher.
func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watch loop: context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "error", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.flushSettled(ctx)
		}
	}
}

// handleEvent processes a single filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.watchNewDir(event.Name)
			return
		}
	}

	// Only Solidity sources feed the debounce map.
	if filepath.Ext(event.Name) != ".sol" {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	case event.Op&fsnotify.Remove != 0:
		eventType = "delete"
	case event.Op&fsnotify.Rename != 0:
		eventType = "rename"
	default:
		return // chmod and friends
	}

	w.logger.Debug("watch event", "type", eventType, "file", event.Name)

	w.mu.Lock()
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name

	switch eventType {
	case "create":
		w.stats.FilesCreated++
	case "modify":
		w.stats.FilesModified++
	case "delete", "rename":
		w.stats.FilesDeleted++
	}

	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

// watchNewDir starts watching a directory created after Start and queues
// any Solidity files it already contains. A directory moved into the tree
// arrives as a single create event; the files inside produce no events of
// their own.
func (w *Watcher) watchNewDir(dir string) {
	if skipDirs[filepath.Base(dir)] {
		return
	}

	w.addRecursive(dir)

	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != dir && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) == ".sol" {
			w.mu.Lock()
			w.stats.FilesCreated++
			w.debounceMap[p] = time.Now()
			w.mu.Unlock()
		}
		return nil
	})
}

// addRecursive registers root and every directory below it, skipping
// vendored trees. Per-directory failures are logged and skipped so one
// unreadable directory does not kill the watch.
func (w *Watcher) addRecursive(root string) {
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && skipDirs[d.Name()] {
			return fs.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			w.logger.Debug("watch add failed", "dir", p, "error", err)
		}
		return nil
	})
}

// flushSettled hands paths that stayed quiet for the debounce window to
// the change handler as one batch.
func (w *Watcher) flushSettled(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, eventTime := range w.debounceMap {
		if now.Sub(eventTime) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	if len(settled) > 0 {
		w.stats.Rescans++
	}
	w.mu.Unlock()

	if len(settled) == 0 {
		return
	}

	sort.Strings(settled)
	w.onChange(ctx, settled)
}

// IsWatching reports whether the watcher is currently running.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// WatchedDirs returns the directories currently being watched.
func (w *Watcher) WatchedDirs() []string {
	return w.watcher.WatchList()
}

// GetStats returns a snapshot of the watcher statistics.
func (w *Watcher) GetStats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}
