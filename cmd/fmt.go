package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/loantracker"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the stored loans into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `loans fmt

  Validates and formats the stored loans. Both collections are read, checked, and
  written back with the canonical key order.
  Unlike the other commands, fmt fails on a collection that cannot be decoded instead
  of starting it empty, so that nothing is lost.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

// keyLister is implemented by stores that can list their keys.
type keyLister interface {
	Keys() ([]string, error)
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	snap, err := loantracker.ReadSnapshot(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load loans: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := loantracker.WriteSnapshot(store, snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving formatted loans: %v\n", err)
		return subcommands.ExitFailure
	}

	if l, ok := store.(keyLister); ok {
		keys, err := l.Keys()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not list keys: %v\n", err)
		}
		for _, key := range keys {
			if !slices.Contains([]string{loantracker.ActiveKey, loantracker.SettledKey}, key) {
				fmt.Fprintf(os.Stderr, "Warning: unknown key %q left untouched.\n", key)
			}
		}
	}

	fmt.Fprintf(stdout, "Formatted %d active and %d settled loan(s).\n", len(snap.Borrowers), len(snap.SettledBorrowers))
	return subcommands.ExitSuccess
}
