// Package watcher reports saves of source documents below a local
// workspace root.
//
// Raw file system events are debounced per path and filtered by content
// digest, so an editor that writes a file several times in quick succession
// produces one save event, and rewriting identical content produces none.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/zerr"
)

// SessionID is the session reported on events produced by the watcher.
const SessionID = "fsnotify"

const eventChannelBuffer = 100

var skipDirectories = map[string]bool{
	".git":              true,
	".jj":               true,
	"node_modules":      true,
	domain.StateDirName: true,
}

var _ ports.SaveSource = (*Watcher)(nil)

// Watcher implements ports.SaveSource with fsnotify.
type Watcher struct {
	fsWatcher   *fsnotify.Watcher
	root        string
	workspaceID string
	logger      ports.Logger
	debouncer   *Debouncer
	digests     *digestFilter

	events chan domain.SaveEvent
	quit   chan struct{}
	done   chan struct{}

	mu      sync.Mutex
	started bool
	closed  bool
}

// New creates a watcher for root reporting events for workspaceID.
func New(root, workspaceID string, debounce time.Duration, logger ports.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "root", root)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}

	w := &Watcher{
		fsWatcher:   fw,
		root:        abs,
		workspaceID: workspaceID,
		logger:      logger,
		digests:     newDigestFilter(),
		events:      make(chan domain.SaveEvent, eventChannelBuffer),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	w.debouncer = NewDebouncer(debounce, w.emitAll)
	return w, nil
}

// Start watches the root recursively. Existing documents are recorded so
// that only later changes are reported.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return nil
	}

	for dir := range w.directories(w.root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "dir", dir)
		}
	}
	w.started = true

	go w.processEvents(ctx)

	w.logger.Debug("watching workspace", "root", w.root, "workspace", w.workspaceID)
	return nil
}

// Stop ends the event sequence and releases the fsnotify watcher.
func (w *Watcher) Stop() error {
	select {
	case <-w.quit:
		return nil
	default:
		close(w.quit)
	}

	err := w.fsWatcher.Close()

	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if started {
		<-w.done
	}
	w.debouncer.Stop()

	w.mu.Lock()
	w.closed = true
	close(w.events)
	w.mu.Unlock()

	if err != nil {
		return zerr.Wrap(err, "failed to close file watcher")
	}
	return nil
}

// Events implements ports.SaveSource.
func (w *Watcher) Events() iter.Seq[domain.SaveEvent] {
	return func(yield func(domain.SaveEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

func (w *Watcher) directories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are skipped
			}
			if !d.IsDir() {
				if domain.IsSourcePath(path) {
					w.record(path)
				}
				return nil
			}
			if path != root && skipDirectories[d.Name()] {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// record stores the current digest of path without reporting it.
func (w *Watcher) record(path string) {
	//nolint:gosec // path is below the watched root
	if data, err := os.ReadFile(path); err == nil {
		w.digests.changed(path, data)
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.quit:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err.Error())
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if skipDirectories[info.Name()] {
				return
			}
			for dir := range w.directories(event.Name) {
				_ = w.fsWatcher.Add(dir)
			}
			return
		}
		if domain.IsSourcePath(event.Name) {
			w.debouncer.Add(event.Name)
		}
	case event.Has(fsnotify.Write):
		if domain.IsSourcePath(event.Name) {
			w.debouncer.Add(event.Name)
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.digests.forget(event.Name)
	}
}

// emitAll reads each path and sends a save event for changed documents.
func (w *Watcher) emitAll(paths []string) {
	for _, p := range paths {
		//nolint:gosec // path is below the watched root
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			w.digests.forget(p)
			continue
		}
		if err != nil {
			w.logger.Warn("failed to read saved document", "path", p, "error", err.Error())
			continue
		}
		if !w.digests.changed(p, data) {
			continue
		}

		rel, err := filepath.Rel(w.root, p)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}

		w.emit(domain.SaveEvent{
			SessionID:   SessionID,
			WorkspaceID: w.workspaceID,
			Path:        "/" + filepath.ToSlash(rel),
			Extension:   domain.Extension(p),
			Text:        string(data),
		})
	}
}

func (w *Watcher) emit(ev domain.SaveEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.events <- ev:
	case <-w.quit:
	}
}
