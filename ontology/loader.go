package ontology

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// Snapshot is one loaded version of an ontology.
type Snapshot struct {
	// Graph holds the merged triples of every file.
	Graph *Graph

	// Files lists the resolved input paths in load order.
	Files []string

	// Duration is how long decoding took.
	Duration time.Duration
}

// Loader resolves input patterns and decodes them into snapshots.
type Loader struct {
	format Format
	logger *slog.Logger
}

// NewLoader creates a loader. FormatAuto picks a decoder per file extension.
func NewLoader(format Format, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{format: format, logger: logger}
}

// Resolve expands doublestar patterns into a sorted, de-duplicated file list.
// Plain paths are passed through without requiring glob syntax.
func Resolve(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoInput
	}

	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range patterns {
		if _, err := os.Stat(pattern); err == nil {
			if _, dup := seen[pattern]; !dup {
				seen[pattern] = struct{}{}
				files = append(files, pattern)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expand pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatches, pattern)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	return files, nil
}

// Load decodes every file matched by patterns into one snapshot.
func (l *Loader) Load(ctx context.Context, patterns []string) (*Snapshot, error) {
	files, err := Resolve(patterns)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	g := NewGraph()
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		added, err := l.loadFile(g, path, fmt.Sprintf("f%d.", i))
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded ontology file", "path", path, "triples", added)
	}

	snap := &Snapshot{Graph: g, Files: files, Duration: time.Since(start)}
	l.logger.Info("Loaded ontology snapshot",
		"files", len(files),
		"triples", g.Len(),
		"duration", snap.Duration)
	return snap, nil
}

func (l *Loader) loadFile(g *Graph, path, scope string) (int, error) {
	format := l.format
	if format == FormatAuto {
		f, err := DetectFormat(path)
		if err != nil {
			return 0, err
		}
		format = f
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	added, err := g.decode(f, format, scope)
	if err != nil {
		return added, fmt.Errorf("parse %s: %w", path, err)
	}
	return added, nil
}

// LoadPair loads the old and new snapshots concurrently.
func (l *Loader) LoadPair(ctx context.Context, oldPatterns, newPatterns []string) (oldSnap, newSnap *Snapshot, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := l.Load(gctx, oldPatterns)
		if err != nil {
			return fmt.Errorf("load old version: %w", err)
		}
		oldSnap = s
		return nil
	})

	g.Go(func() error {
		s, err := l.Load(gctx, newPatterns)
		if err != nil {
			return fmt.Errorf("load new version: %w", err)
		}
		newSnap = s
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return oldSnap, newSnap, nil
}
