// Package watch re-evaluates the build plan when the configuration file
// changes, with a periodic full reconcile as a safety net.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/actiongraph/internal/logfields"
)

// Watcher monitors the configuration file and triggers the injected reload
// callback, debounced, on every relevant change. A gocron job re-runs the
// callback periodically so missed events cannot leave the plan stale.
type Watcher struct {
	configPath string
	debounce   time.Duration
	reconcile  time.Duration
	onChange   func(ctx context.Context) error

	watcher    *fsnotify.Watcher
	scheduler  gocron.Scheduler
	reloadChan chan struct{}
}

// New creates a watcher for the given config file. onChange is invoked
// after each debounced change and on every reconcile tick.
func New(configPath string, debounce, reconcile time.Duration, onChange func(ctx context.Context) error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	return &Watcher{
		configPath: absPath,
		debounce:   debounce,
		reconcile:  reconcile,
		onChange:   onChange,
		watcher:    fsw,
		scheduler:  scheduler,
		reloadChan: make(chan struct{}, 1),
	}, nil
}

// Run watches until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	// Watch the directory containing the config file; watching the file
	// directly breaks when editors replace it on save.
	configDir := filepath.Dir(w.configPath)
	if err := w.watcher.Add(configDir); err != nil {
		return fmt.Errorf("watch config directory %s: %w", configDir, err)
	}

	if _, err := w.scheduler.NewJob(
		gocron.DurationJob(w.reconcile),
		gocron.NewTask(func() { w.trigger() }),
		gocron.WithName("plan-reconcile"),
	); err != nil {
		return fmt.Errorf("schedule reconcile job: %w", err)
	}
	w.scheduler.Start()

	slog.Info("Watching configuration", logfields.ConfigPath(w.configPath))

	go w.watchLoop(ctx)
	w.reloadLoop(ctx)

	if err := w.scheduler.Shutdown(); err != nil {
		slog.Warn("Error shutting down scheduler", logfields.Error(err))
	}
	return w.watcher.Close()
}

func (w *Watcher) trigger() {
	select {
	case w.reloadChan <- struct{}{}:
	default: // a reload is already pending
	}
}

func (w *Watcher) watchLoop(ctx context.Context) {
	configFile := filepath.Base(w.configPath)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != configFile {
				continue
			}
			switch {
			case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Rename):
				slog.Debug("Config change detected", logfields.ConfigPath(event.Name))
				w.trigger()
			case event.Op.Has(fsnotify.Remove):
				slog.Warn("Config file removed", logfields.ConfigPath(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Config watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	var reloadTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			return
		case <-w.reloadChan:
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			reloadTimer = time.AfterFunc(w.debounce, func() {
				if err := w.onChange(ctx); err != nil {
					slog.Error("Plan reload failed", logfields.Error(err))
				}
			})
		}
	}
}
