package commands

import (
	"context"
	"errors"
	"fmt"

	"git.home.luguber.info/inful/actiongraph/internal/action"
	agerrors "git.home.luguber.info/inful/actiongraph/internal/errors"
	"git.home.luguber.info/inful/actiongraph/internal/plan"
	"git.home.luguber.info/inful/actiongraph/internal/snapshot"
)

// DiffCmd implements the 'diff' command.
type DiffCmd struct {
	ExitCode bool `help:"Exit with a non-zero status when the plan changed"`
}

func (d *DiffCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	current, err := plan.Assemble(cfg)
	if err != nil {
		return fmt.Errorf("assemble plan: %w", err)
	}

	store, err := snapshot.NewStore(cfg.Snapshot.Path)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer store.Close()

	prev, err := store.Latest(context.Background())
	if err != nil {
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			fmt.Println("no previous snapshot; every action is new")
			prev = &snapshot.Record{}
		} else {
			return fmt.Errorf("load previous snapshot: %w", err)
		}
	}

	previous := make(map[action.Fingerprint]string, len(prev.Actions))
	for _, a := range prev.Actions {
		previous[action.Fingerprint(a.Fingerprint)] = a.Description
	}

	diff := plan.DiffFingerprints(current, previous)
	printDiff(diff)

	if d.ExitCode && diff.Changed() {
		return agerrors.New(agerrors.CategoryPlan, agerrors.SeverityWarning, "plan changed")
	}
	return nil
}

func printDiff(d *plan.Diff) {
	for _, c := range d.Added {
		fmt.Printf("+ %s\n", c.Description)
	}
	for _, c := range d.Removed {
		fmt.Printf("- %s\n", c.Description)
	}
	fmt.Printf("%d added, %d removed, %d unchanged\n", len(d.Added), len(d.Removed), d.Unchanged)
}
