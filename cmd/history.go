package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/loantracker/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	out outputFlags
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list the settled loans" }
func (*historyCmd) Usage() string {
	return `loans history [-md | -html]

  Lists the settled loans in the order they were settled.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) { c.out.SetFlags(f) }

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	md := renderer.RenderHistory(renderer.NewHistoryView(a.ledger.Settled(), a.cfg.Currency))
	if err := c.out.print(md); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
