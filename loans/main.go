// Command loans keeps track of the money you lent.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/loantracker/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers the shell when it asks for completions, and exits.
	// Run 'COMP_INSTALL=1 loans' to install the completion in the shell.
	cmd.Completion().Complete("loans")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// registered reports whether name is a built-in command.
func registered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}
