package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/loantracker"
	"github.com/google/subcommands"
)

type repayCmd struct {
	id     string
	amount string
}

func (*repayCmd) Name() string     { return "repay" }
func (*repayCmd) Synopsis() string { return "record a repayment" }
func (*repayCmd) Usage() string {
	return `loans repay -id <borrower> -a <amount>

  Records that an active borrower paid back <amount>. The amount must be positive and
  must not exceed what is still owed. The loan is settled when nothing is owed anymore.

  <borrower> is an id, a unique id prefix or a unique name.
`
}

func (c *repayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "borrower")
	f.StringVar(&c.amount, "a", "", "amount repaid")
}

func (c *repayCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "both -id and -a are required")
		return subcommands.ExitUsageError
	}
	amount, err := loantracker.ParseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
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
	updated, err := a.ledger.RecordRepayment(b.ID, amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording repayment from %s: %v\n", b.Name, err)
		return subcommands.ExitFailure
	}

	if updated.IsSettled() {
		fmt.Fprintf(stdout, "Loan settled! %s has fully repaid their loan.\n", b.Name)
	} else {
		fmt.Fprintf(stdout, "Recorded payment of %s from %s. Still owed: %s.\n", a.format(amount), b.Name, a.format(updated.CurrentAmount))
	}
	return subcommands.ExitSuccess
}
