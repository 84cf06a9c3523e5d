package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/loantracker"
	"github.com/etnz/loantracker/date"
	"github.com/etnz/loantracker/renderer"
	"github.com/google/subcommands"
)

type addCmd struct {
	name   string
	amount string
	date   string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record money lent to a borrower" }
func (*addCmd) Usage() string {
	return `loans add -n <name> -a <amount> [-d <date>]

  Records that <name> borrowed <amount> on <date>, today by default.

Usage Examples:
$ loans add -n Alice -a 100
$ loans add -n Bob -a 25.50 -d 2024-03-01
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "name of the borrower")
	f.StringVar(&c.amount, "a", "", "amount lent")
	f.StringVar(&c.date, "d", "0d", "borrow date. See 'loans topic usage' for supported date formats.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.TrimSpace(c.name)
	if name == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "both -n and -a are required")
		return subcommands.ExitUsageError
	}
	amount, err := loantracker.ParseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
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

	b, err := a.ledger.Add(name, amount, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding borrower: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Borrower added: %s added to your tracking list (%s owed, id %s).\n", b.Name, a.format(b.CurrentAmount), renderer.ShortID(b.ID))
	return subcommands.ExitSuccess
}
