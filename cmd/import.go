package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/loantracker"
	"github.com/google/subcommands"
)

type importCmd struct {
	yes bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace all the loans with a JSON document" }
func (*importCmd) Usage() string {
	return `loans import [-y] <file>

  Replaces the active and the settled loans with the content of <file>, as written by
  'loans export'. Use '-' to read stdin.

  A dump of the browser storage of the web tracker, where each collection is a JSON
  string, is accepted too.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "import takes exactly one file")
		return subcommands.ExitUsageError
	}

	var r io.Reader = stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}
	snap, err := loantracker.DecodeSnapshot(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	existing := len(a.ledger.Active()) + len(a.ledger.Settled())
	if existing > 0 && !c.yes && !confirm(fmt.Sprintf("Replace %d existing loan(s)?", existing)) {
		fmt.Fprintln(stdout, "Nothing imported.")
		return subcommands.ExitSuccess
	}

	if err := a.ledger.Import(snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing loans: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Imported %d active and %d settled loan(s).\n", len(snap.Borrowers), len(snap.SettledBorrowers))
	return subcommands.ExitSuccess
}
