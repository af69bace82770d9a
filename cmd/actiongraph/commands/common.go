package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/actiongraph/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"actiongraph.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Plan  PlanCmd  `cmd:"" help:"Assemble the build plan and record a snapshot"`
	Diff  DiffCmd  `cmd:"" help:"Diff the current plan against the last recorded snapshot"`
	Match MatchCmd `cmd:"" help:"Show which actions claim the given asset ids"`
	Scan  ScanCmd  `cmd:"" help:"Enumerate workspace assets and report claimed inputs"`
	Watch WatchCmd `cmd:"" help:"Watch the configuration and re-evaluate the plan on change"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func loadConfig(root *CLI) (*config.Config, error) {
	return config.Load(root.Config)
}
