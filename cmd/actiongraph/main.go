package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/actiongraph/cmd/actiongraph/commands"
	"git.home.luguber.info/inful/actiongraph/internal/errors"
	"git.home.luguber.info/inful/actiongraph/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("actiongraph"),
		kong.Description("Assemble, inspect and diff build action plans."),
		kong.Vars{"version": version.Version},
	)

	g := &commands.Global{}
	if err := ctx.Run(g, cli); err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, nil)
		adapter.Report(err)
		os.Exit(adapter.ExitCodeFor(err))
	}
}
