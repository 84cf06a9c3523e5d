package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/loantracker"
	"github.com/etnz/loantracker/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	id  string
	out outputFlags
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display a borrower" }
func (*showCmd) Usage() string {
	return `loans show -id <borrower> [-md | -html]

  Displays a single borrower, active or settled.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "borrower")
	c.out.SetFlags(f)
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	all := append(a.ledger.Active(), a.ledger.Settled()...)
	b, err := loantracker.Find(all, c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := c.out.print(renderer.RenderBorrower(b, a.cfg.Currency)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
