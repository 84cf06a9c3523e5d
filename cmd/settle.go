package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/loantracker"
	"github.com/google/subcommands"
)

type settleCmd struct {
	id string
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "record that a loan was repaid in full" }
func (*settleCmd) Usage() string {
	return `loans settle -id <borrower>

  Records that an active borrower paid back everything still owed, and moves the loan
  to the history.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "borrower")
}

func (c *settleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if _, err := a.ledger.SettleInFull(b.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error settling %s: %v\n", b.Name, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintln(stdout, "Settling...")
	time.Sleep(a.cfg.SettleDelay)
	fmt.Fprintf(stdout, "Loan settled! %s has fully repaid their loan.\n", b.Name)
	return subcommands.ExitSuccess
}
