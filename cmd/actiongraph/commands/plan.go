package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/actiongraph/internal/config"
	"git.home.luguber.info/inful/actiongraph/internal/logfields"
	"git.home.luguber.info/inful/actiongraph/internal/plan"
	"git.home.luguber.info/inful/actiongraph/internal/snapshot"
	"git.home.luguber.info/inful/actiongraph/internal/workspace"
)

// PlanCmd implements the 'plan' command.
type PlanCmd struct {
	NoSnapshot bool `help:"Assemble and print the plan without recording a snapshot"`
}

func (p *PlanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	start := time.Now()
	current, err := plan.Assemble(cfg)
	if err != nil {
		return fmt.Errorf("assemble plan: %w", err)
	}
	slog.Info("Plan assembled",
		logfields.ActionCount(len(current.Actions)),
		logfields.PlanSignature(current.Signature),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))

	for i, a := range current.Actions {
		fmt.Printf("%2d. %s (package %s)\n", i+1, a, a.Package())
	}
	fmt.Printf("signature: %s\n", current.Signature)

	if p.NoSnapshot {
		return nil
	}
	return recordSnapshot(context.Background(), cfg, current)
}

func recordSnapshot(ctx context.Context, cfg *config.Config, current *plan.Plan) error {
	rev, err := workspace.Revision(cfg.Workspace.Root)
	if err != nil {
		slog.Warn("Could not resolve workspace revision", logfields.Error(err))
	}

	store, err := snapshot.NewStore(cfg.Snapshot.Path)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer store.Close()

	records := make([]snapshot.ActionRecord, len(current.Actions))
	for i, a := range current.Actions {
		records[i] = snapshot.ActionRecord{
			Fingerprint: string(a.Fingerprint()),
			Builder:     a.BuilderTypeName(),
			Package:     a.Package(),
			Description: a.String(),
		}
	}
	id, err := store.Save(ctx, current.Signature, rev, records)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	slog.Info("Snapshot recorded",
		logfields.InvocationID(id),
		logfields.Revision(rev))
	return nil
}
