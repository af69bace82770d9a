package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/actiongraph/internal/action"
	"git.home.luguber.info/inful/actiongraph/internal/config"
	"git.home.luguber.info/inful/actiongraph/internal/logfields"
	"git.home.luguber.info/inful/actiongraph/internal/metrics"
	"git.home.luguber.info/inful/actiongraph/internal/notify"
	"git.home.luguber.info/inful/actiongraph/internal/plan"
	"git.home.luguber.info/inful/actiongraph/internal/snapshot"
	"git.home.luguber.info/inful/actiongraph/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	NATSURL     string `name:"nats-url" help:"Publish plan-change events to this NATS server (overrides config)"`
	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address (overrides config)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if w.NATSURL != "" {
		cfg.Notify.NATSURL = w.NATSURL
	}
	if w.MetricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = w.MetricsAddr
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.Enabled {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr, reg); err != nil {
				slog.Error("Metrics server failed", logfields.Error(err))
			}
		}()
	}

	var publisher *notify.Publisher
	if cfg.Notify.NATSURL != "" {
		publisher, err = notify.NewPublisher(cfg.Notify.NATSURL, cfg.Notify.Subject)
		if err != nil {
			return fmt.Errorf("connect publisher: %w", err)
		}
		defer publisher.Close()
	}

	store, err := snapshot.NewStore(cfg.Snapshot.Path)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer store.Close()

	reload := func(ctx context.Context) error {
		return reloadPlan(ctx, root.Config, store, publisher, recorder)
	}

	watcher, err := watch.New(root.Config, cfg.Watch.Debounce, cfg.Watch.Reconcile, reload)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Evaluate once up front so the first snapshot exists before any change.
	if err := reload(ctx); err != nil {
		return err
	}
	return watcher.Run(ctx)
}

func reloadPlan(ctx context.Context, configPath string, store *snapshot.Store, publisher *notify.Publisher, recorder metrics.Recorder) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		recorder.IncPlanOutcome("failed")
		return fmt.Errorf("load config: %w", err)
	}

	start := time.Now()
	current, err := plan.Assemble(cfg)
	if err != nil {
		recorder.IncPlanOutcome("failed")
		return fmt.Errorf("assemble plan: %w", err)
	}
	recorder.ObservePlanAssembly(time.Since(start), len(current.Actions))
	recorder.IncPlanOutcome("success")

	previous := map[action.Fingerprint]string{}
	if prev, err := store.Latest(ctx); err == nil {
		for _, a := range prev.Actions {
			previous[action.Fingerprint(a.Fingerprint)] = a.Description
		}
	} else if !errors.Is(err, snapshot.ErrNoSnapshot) {
		return fmt.Errorf("load previous snapshot: %w", err)
	}

	diff := plan.DiffFingerprints(current, previous)
	recorder.ObserveDiff(len(diff.Added), len(diff.Removed), diff.Unchanged)

	if !diff.Changed() {
		slog.Debug("Plan unchanged", logfields.PlanSignature(current.Signature))
		return nil
	}

	slog.Info("Plan changed",
		logfields.Added(len(diff.Added)),
		logfields.Removed(len(diff.Removed)),
		logfields.Unchanged(diff.Unchanged),
		logfields.PlanSignature(current.Signature))

	if err := publisher.PublishDiff(current.Signature, diff); err != nil {
		slog.Error("Failed to publish plan change", logfields.Error(err))
	}
	return recordSnapshot(ctx, cfg, current)
}
