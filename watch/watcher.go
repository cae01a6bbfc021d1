// Package watch re-runs work when ontology files change on disk.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures the file watcher
type WatcherConfig struct {
	// Patterns are the doublestar globs of the files to watch
	Patterns []string

	// DebounceDelay is how long the tree must stay quiet before a batch is emitted
	DebounceDelay time.Duration

	// Logger for logging events
	Logger *slog.Logger
}

// Operation indicates the type of file operation
type Operation string

const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Change is one file that changed since the previous batch
type Change struct {
	Path      string    `json:"path"`
	Operation Operation `json:"operation"`
}

// Batch groups the changes seen during one quiet period
type Batch struct {
	Changes []Change  `json:"changes"`
	At      time.Time `json:"at"`
}

// Watcher watches ontology files and emits debounced change batches
type Watcher struct {
	config  WatcherConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// Debouncing: collect changes before emitting
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op // path → most recent operation
	lastEvent time.Time

	// Content hashes suppress writes that leave a file unchanged
	hashMu sync.RWMutex
	hashes map[string]string // path → content hash

	events chan Batch
	done   chan struct{}
}

// NewWatcher creates a new file watcher
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = 100 * time.Millisecond
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]fsnotify.Op),
		hashes:  make(map[string]string),
		events:  make(chan Batch, 16),
		done:    make(chan struct{}),
	}, nil
}

// Events returns the channel of change batches. It is closed once the
// watcher stops.
func (w *Watcher) Events() <-chan Batch {
	return w.events
}

// Start hashes the current files, watches their directories and begins
// emitting batches until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	dirs, err := w.watchDirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("Failed to watch directory",
				slog.String("path", dir),
				slog.String("error", err.Error()))
			continue
		}
		w.logger.Debug("Watching directory", slog.String("path", dir))
	}

	go w.processEvents(ctx)

	w.logger.Info("File watcher started",
		slog.Int("directories", len(dirs)),
		slog.Duration("debounce", w.config.DebounceDelay))

	return nil
}

// Stop stops the watcher and waits for the event loop to exit
func (w *Watcher) Stop() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

// watchDirs returns the static base directory of every pattern plus the
// directory of every file currently matched, and records content hashes for
// those files.
func (w *Watcher) watchDirs() ([]string, error) {
	seen := make(map[string]struct{})
	for _, pattern := range w.config.Patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		seen[filepath.FromSlash(base)] = struct{}{}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			seen[filepath.Dir(m)] = struct{}{}
			if hash, err := fileHash(m); err == nil {
				w.SetHash(m, hash)
			}
		}
	}

	dirs := make([]string, 0, len(seen))
	for d := range seen {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			dirs = append(dirs, d)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// processEvents handles fsnotify events with debouncing
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)
	defer close(w.events)

	interval := w.config.DebounceDelay / 2
	if interval <= 0 {
		interval = w.config.DebounceDelay
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", slog.String("error", err.Error()))

		case now := <-ticker.C:
			if batch, ok := w.flushPending(now); ok {
				w.sendEvent(ctx, batch)
			}
		}
	}
}

// matches reports whether path is covered by any configured pattern
func (w *Watcher) matches(path string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	for _, pattern := range w.config.Patterns {
		if ok, _ := doublestar.Match(filepath.ToSlash(filepath.Clean(pattern)), slashed); ok {
			return true
		}
	}
	return false
}

// handleFSEvent records a single fsnotify event
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}

	path := event.Name
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.handleNewDirectory(path)
			return
		}
	}
	if !w.matches(path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.lastEvent = time.Now()
	w.pendingMu.Unlock()

	w.logger.Debug("File change detected",
		slog.String("path", path),
		slog.String("op", event.Op.String()))
}

// handleNewDirectory adds a watch to a newly created directory
func (w *Watcher) handleNewDirectory(path string) {
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch new directory",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return
	}
	w.logger.Debug("Added watch for new directory", slog.String("path", path))
}

// flushPending turns the accumulated changes into a batch once the debounce
// delay has passed since the last event. Files whose content hash is
// unchanged are dropped.
func (w *Watcher) flushPending(now time.Time) (Batch, bool) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 || now.Sub(w.lastEvent) < w.config.DebounceDelay {
		w.pendingMu.Unlock()
		return Batch{}, false
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	paths := make([]string, 0, len(toProcess))
	for p := range toProcess {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	batch := Batch{At: now}
	for _, path := range paths {
		op := toProcess[path]
		hash, err := fileHash(path)
		if err != nil {
			// Gone: removed, renamed away or unreadable
			if _, had := w.GetHash(path); had || op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
				w.hashMu.Lock()
				delete(w.hashes, path)
				w.hashMu.Unlock()
				batch.Changes = append(batch.Changes, Change{Path: path, Operation: OpDelete})
			}
			continue
		}

		oldHash, hadHash := w.GetHash(path)
		if hadHash && oldHash == hash {
			continue
		}
		w.SetHash(path, hash)

		change := Change{Path: path, Operation: OpModify}
		if !hadHash {
			change.Operation = OpCreate
		}
		batch.Changes = append(batch.Changes, change)
	}

	return batch, len(batch.Changes) > 0
}

// sendEvent delivers a batch unless ctx is done
func (w *Watcher) sendEvent(ctx context.Context, batch Batch) {
	select {
	case w.events <- batch:
		w.logger.Debug("Sent change batch", slog.Int("changes", len(batch.Changes)))
	case <-ctx.Done():
	}
}

// SetHash records the content hash for a file
func (w *Watcher) SetHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

// GetHash returns the recorded content hash for a file
func (w *Watcher) GetHash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

func fileHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
