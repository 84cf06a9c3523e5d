package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/loantracker/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	out outputFlags
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the active loans" }
func (*listCmd) Usage() string {
	return `loans list [-md | -html]

  Lists the active loans in the order they were added, with the total still owed.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) { c.out.SetFlags(f) }

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	md := renderer.RenderActive(renderer.NewActiveView(a.ledger.Active(), a.cfg.Currency))
	if err := c.out.print(md); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
