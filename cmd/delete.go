package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/loantracker"
	"github.com/google/subcommands"
)

type deleteCmd struct {
	id string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove an active loan" }
func (*deleteCmd) Usage() string {
	return `loans delete -id <borrower>

  Removes an active loan that should not have been recorded. Settled loans can only be
  removed all at once with 'loans clear-history'.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "borrower")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "-id is required")
		return subcommands.ExitUsageError
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	b, err := loantracker.Find(a.ledger.Active(), c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := a.ledger.Delete(b.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting %s: %v\n", b.Name, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%s has been removed from your tracking list.\n", b.Name)
	return subcommands.ExitSuccess
}
