package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/loantracker"
	"github.com/etnz/loantracker/date"
	"github.com/google/subcommands"
)

type editCmd struct {
	id       string
	name     string
	original string
	current  string
	date     string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "fix the record of an active loan" }
func (*editCmd) Usage() string {
	return `loans edit -id <borrower> [-n <name>] [-a <original amount>] [-c <current amount>] [-d <date>]

  Changes the record of an active borrower. Fields that are not given keep their value.
  The current amount cannot exceed the original amount. Editing never settles a loan.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "borrower")
	f.StringVar(&c.name, "n", "", "new name")
	f.StringVar(&c.original, "a", "", "new original amount")
	f.StringVar(&c.current, "c", "", "new amount still owed")
	f.StringVar(&c.date, "d", "", "new borrow date")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := c.apply(&b); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	edited, err := a.ledger.Edit(b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error editing %s: %v\n", b.Name, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%s's information updated.\n", edited.Name)
	return subcommands.ExitSuccess
}

// apply changes b with the fields given on the command line.
func (c *editCmd) apply(b *loantracker.Borrower) (err error) {
	if c.name != "" {
		b.Name = c.name
	}
	if c.original != "" {
		if b.OriginalAmount, err = loantracker.ParseAmount(c.original); err != nil {
			return err
		}
	}
	if c.current != "" {
		if b.CurrentAmount, err = loantracker.ParseAmount(c.current); err != nil {
			return err
		}
	}
	if c.date != "" {
		if b.BorrowDate, err = date.Parse(c.date); err != nil {
			return err
		}
	}
	return nil
}
