// Package watch re-runs navigation validation when the site configuration or
// its content tree changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// DefaultDebounce coalesces bursts of editor writes into one run.
const DefaultDebounce = 500 * time.Millisecond

// defaultIgnores are editor and tooling artifacts that never affect navigation.
var defaultIgnores = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

// Handler is invoked after a debounced batch of changes.
type Handler func(ctx context.Context) error

// Watcher monitors a configuration file and content directories.
type Watcher struct {
	configPath string
	dirs       []string
	handler    Handler
	debounce   time.Duration
	ignores    []string

	watcher *fsnotify.Watcher
	trigger chan struct{}

	mu      sync.Mutex
	watched map[string]bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithContentDir adds a directory tree to watch. Missing directories are
// skipped when the watcher starts.
func WithContentDir(dir string) Option {
	return func(w *Watcher) {
		if dir != "" {
			w.dirs = append(w.dirs, dir)
		}
	}
}

// WithIgnore adds doublestar glob patterns for paths that never trigger a
// run. Patterns match slash paths relative to the configuration directory.
func WithIgnore(patterns ...string) Option {
	return func(w *Watcher) { w.ignores = append(w.ignores, patterns...) }
}

// New creates a watcher for configPath that calls handler on changes.
func New(configPath string, handler Handler, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to resolve config path").Build()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to create file watcher").Build()
	}

	w := &Watcher{
		configPath: absPath,
		handler:    handler,
		debounce:   DefaultDebounce,
		watcher:    fw,
		ignores:    slices.Clone(defaultIgnores),
		trigger:    make(chan struct{}, 1),
		watched:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	for _, pat := range w.ignores {
		if !doublestar.ValidatePattern(pat) {
			_ = fw.Close()
			return nil, derrors.ValidationError(fmt.Sprintf("invalid ignore pattern %q", pat)).Build()
		}
	}
	return w, nil
}

// Run watches until ctx is cancelled. The watched paths are registered before
// Run starts listening, so changes made after Run is called are observed.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	// The config directory is watched rather than the file so that editors
	// replacing the file by rename keep triggering events.
	if err := w.add(filepath.Dir(w.configPath)); err != nil {
		return err
	}
	for _, dir := range w.dirs {
		if err := w.addTree(dir); err != nil {
			return err
		}
	}
	slog.Info("Watching for changes", logfields.Path(w.configPath), logfields.Count(len(w.watched)))

	done := make(chan struct{})
	defer close(done)
	go w.debounceLoop(ctx, done)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.relevant(event.Name) {
		return
	}
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && w.inContent(event.Name) {
			if err := w.addTree(event.Name); err != nil {
				slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
			}
		}
	}
	if event.Op.Has(fsnotify.Chmod) && !event.Op.Has(fsnotify.Write) {
		return
	}
	slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// relevant reports whether a path affects the navigation: the config file,
// any sibling YAML or .env file, or anything under a content directory.
func (w *Watcher) relevant(name string) bool {
	if w.ignored(name) {
		return false
	}
	if strings.HasPrefix(filepath.Base(name), ".") && !strings.HasPrefix(filepath.Base(name), ".env") {
		return false
	}
	if name == w.configPath || w.inContent(name) {
		return true
	}
	if filepath.Dir(name) != filepath.Dir(w.configPath) {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return strings.HasPrefix(filepath.Base(name), ".env")
}

func (w *Watcher) ignored(name string) bool {
	rel, err := filepath.Rel(filepath.Dir(w.configPath), name)
	if err != nil {
		rel = name
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range w.ignores {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) inContent(name string) bool {
	for _, dir := range w.dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if name == abs || strings.HasPrefix(name, abs+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) debounceLoop(ctx context.Context, done <-chan struct{}) {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-done:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.trigger:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			if err := w.handler(ctx); err != nil {
				slog.Error("Revalidation failed", logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) add(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watched[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, fmt.Sprintf("failed to watch %s", dir)).
			WithContext("path", dir).
			Build()
	}
	w.watched[dir] = true
	return nil
}

// addTree watches dir and every non-hidden directory below it; fsnotify does
// not recurse on its own.
func (w *Watcher) addTree(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to resolve content path").Build()
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		slog.Warn("Content directory does not exist; not watching", logfields.Path(abs))
		return nil
	}
	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != abs && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.add(p)
	})
}
