package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/actiongraph/internal/logfields"
	"git.home.luguber.info/inful/actiongraph/internal/plan"
	"git.home.luguber.info/inful/actiongraph/internal/scan"
)

// ScanCmd implements the 'scan' command.
type ScanCmd struct {
	Unclaimed bool `help:"Also list assets no action claims"`
}

func (s *ScanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	current, err := plan.Assemble(cfg)
	if err != nil {
		return fmt.Errorf("assemble plan: %w", err)
	}

	assets, err := scan.Assets(cfg.Workspace)
	if err != nil {
		return fmt.Errorf("scan workspace: %w", err)
	}
	slog.Info("Workspace scanned", logfields.AssetCount(len(assets)))

	claims := scan.Claims(current, assets)
	claimed := make(map[string]bool, len(claims))
	for _, c := range claims {
		claimed[c.Asset.String()] = true
		fmt.Printf("%s:\n", c.Asset)
		for _, a := range c.Actions {
			fmt.Printf("  %s\n", a)
		}
	}

	if s.Unclaimed {
		for _, id := range assets {
			if !claimed[id.String()] {
				fmt.Printf("%s: unclaimed\n", id)
			}
		}
	}
	fmt.Printf("%d assets, %d claimed\n", len(assets), len(claims))
	return nil
}
