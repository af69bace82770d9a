package commands

import (
	"fmt"

	"git.home.luguber.info/inful/actiongraph/internal/asset"
	"git.home.luguber.info/inful/actiongraph/internal/plan"
)

// MatchCmd implements the 'match' command.
type MatchCmd struct {
	Assets []string `arg:"" name:"asset-id" help:"Asset ids in package|path form"`
}

func (m *MatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	current, err := plan.Assemble(cfg)
	if err != nil {
		return fmt.Errorf("assemble plan: %w", err)
	}

	for _, raw := range m.Assets {
		id, err := asset.Parse(raw)
		if err != nil {
			return err
		}
		actions := current.ActionsFor(id)
		if len(actions) == 0 {
			fmt.Printf("%s: no action claims this asset\n", id)
			continue
		}
		fmt.Printf("%s:\n", id)
		for _, a := range actions {
			fmt.Printf("  %s\n", a)
		}
	}
	return nil
}
