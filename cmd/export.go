package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/loantracker"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write all the loans as a JSON document" }
func (*exportCmd) Usage() string {
	return `loans export [-o <file>]

  Writes the active and the settled loans as a single JSON document, to stdout by default.
  The document can be read back with 'loans import'.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "output file")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	snap := a.ledger.Snapshot()
	if c.output == "" {
		if err := loantracker.EncodeSnapshot(stdout, snap); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting loans: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if err := exportFile(c.output, snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting loans: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// exportFile writes snap to the file name. The file is closed before returning so that
// a failed write is reported.
func exportFile(name string, snap loantracker.Snapshot) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := loantracker.EncodeSnapshot(file, snap); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("could not close %q: %w", name, err)
	}
	return nil
}
