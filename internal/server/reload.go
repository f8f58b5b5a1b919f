package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/subdomains/pkg/logger"
)

// reloadDelay coalesces the burst of events editors produce on save.
const reloadDelay = 100 * time.Millisecond

// Loader builds a fresh State, typically from the settings file.
type Loader func(ctx context.Context) (*State, error)

// Reloader serves the current State and replaces it on demand.
// A failed reload keeps the previous State.
type Reloader struct {
	current atomic.Pointer[State]
	load    Loader
	log     *slog.Logger
}

// NewReloader loads the initial State.
func NewReloader(ctx context.Context, load Loader, log *slog.Logger) (*Reloader, error) {
	if log == nil {
		log = logger.NewNope()
	}

	st, err := load(ctx)
	if err != nil {
		return nil, err
	}

	rl := &Reloader{load: load, log: log}
	rl.current.Store(st)
	return rl, nil
}

// Current returns the State in use.
func (rl *Reloader) Current() *State {
	return rl.current.Load()
}

// Reload builds a new State and swaps it in.
func (rl *Reloader) Reload(ctx context.Context) error {
	st, err := rl.load(ctx)
	if err != nil {
		return err
	}
	rl.current.Store(st)
	rl.log.InfoContext(ctx, "configuration reloaded")
	return nil
}

// ServeHTTP serves r with the current State.
func (rl *Reloader) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Site routers are chi routers of their own; start them with a fresh
	// routing context instead of the one of the enclosing router.
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, nil)
	rl.Current().ServeHTTP(w, r.WithContext(ctx))
}

// Watch reloads whenever the file at path is written, created or replaced.
// It blocks until ctx is cancelled. The parent directory is watched so that
// atomic renames by editors are seen.
func (rl *Reloader) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(reloadDelay)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			rl.log.WarnContext(ctx, "settings watcher error", slog.Any("error", err))

		case <-timer.C:
			if err := rl.Reload(ctx); err != nil && !errors.Is(err, context.Canceled) {
				rl.log.ErrorContext(ctx, "failed to reload configuration",
					slog.String("path", target),
					slog.Any("error", err),
				)
			}
		}
	}
}
