package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type clearHistoryCmd struct {
	yes bool
}

func (*clearHistoryCmd) Name() string     { return "clear-history" }
func (*clearHistoryCmd) Synopsis() string { return "remove all the settled loans" }
func (*clearHistoryCmd) Usage() string {
	return `loans clear-history [-y]

  Removes all the settled loans. This cannot be undone.
`
}

func (c *clearHistoryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *clearHistoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	n := len(a.ledger.Settled())
	if n == 0 {
		fmt.Fprintln(stdout, "No settled loans yet")
		return subcommands.ExitSuccess
	}
	if !c.yes && !confirm(fmt.Sprintf("Remove %d settled loan(s)?", n)) {
		fmt.Fprintln(stdout, "History kept.")
		return subcommands.ExitSuccess
	}

	if err := a.ledger.ClearHistory(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, "History cleared successfully")
	return subcommands.ExitSuccess
}
