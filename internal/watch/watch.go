// Package watch re-runs a callback when watched files change on disk.
package watch

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a change
// is reported.
const DefaultDebounce = 100 * time.Millisecond

// ErrNoPaths is returned when New is called without files to watch.
var ErrNoPaths = errors.New("no paths to watch")

// ChangeFunc is called once per changed file after the debounce period.
type ChangeFunc func(ctx context.Context, path string)

// Watcher watches individual files. Parent directories are watched instead
// of the files themselves so editors that save by rename are still seen.
type Watcher struct {
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher

	files  map[string]bool // absolute paths
	hashes map[string][sha256.Size]byte
}

// New creates a Watcher for paths. A zero debounce uses DefaultDebounce and
// a nil logger uses slog.Default().
func New(paths []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
		files:    make(map[string]bool, len(paths)),
		hashes:   make(map[string][sha256.Size]byte, len(paths)),
	}

	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		w.files[abs] = true
		if content, err := os.ReadFile(abs); err == nil { // #nosec G304 -- user-provided path
			w.hashes[abs] = sha256.Sum256(content)
		}

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
		logger.Debug("watching directory", "path", dir)
	}

	return w, nil
}

// Run blocks until ctx is done, calling onChange for each watched file whose
// content changed. Writes that leave the content identical are ignored.
// Returns nil when ctx is canceled.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	pending := map[string]bool{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	w.logger.Debug("watcher started", "files", len(w.files), "debounce", w.debounce)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.files[event.Name] || (event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write)) {
				continue
			}
			w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			pending[event.Name] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)

		case <-timer.C:
			for path := range pending {
				delete(pending, path)
				if !w.changed(path) {
					continue
				}
				onChange(ctx, path)
			}
		}
	}
}

// Close stops watching. Run returns after Close.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// changed reports whether the file content differs from the last seen
// content, and records the new hash. Missing files are not changes.
func (w *Watcher) changed(path string) bool {
	content, err := os.ReadFile(path) // #nosec G304 -- watched path
	if err != nil {
		w.logger.Debug("skipping unreadable file", "path", path, "error", err)
		return false
	}
	sum := sha256.Sum256(content)
	if prev, ok := w.hashes[path]; ok && prev == sum {
		return false
	}
	w.hashes[path] = sum
	return true
}
