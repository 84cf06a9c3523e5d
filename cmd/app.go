// Package cmd implements the CLI application to keep track of money lent.
package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/loantracker"
	"github.com/etnz/loantracker/config"
	"github.com/etnz/loantracker/renderer"
	"github.com/etnz/loantracker/store/file"
	"github.com/etnz/loantracker/store/sqlite"
	"github.com/google/subcommands"
)

// Commands is the list of commands of the application, in the order they are listed in the help.
var Commands = []subcommands.Command{
	&listCmd{},
	&addCmd{},
	&repayCmd{},
	&settleCmd{},
	&editCmd{},
	&deleteCmd{},
	&showCmd{},
	&historyCmd{},
	&clearHistoryCmd{},
	&queryCmd{},
	&exportCmd{},
	&importCmd{},
	&fmtCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, group(cmd.Name()))
	}
}

func group(name string) string {
	switch name {
	case "list", "add", "repay", "settle", "edit", "delete", "show":
		return "loans"
	case "history", "clear-history":
		return "history"
	case "topic":
		return "help"
	default:
		return "data"
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile  = flag.String("config", "", "Path to the configuration file. Defaults to loans.yaml if it exists.")
	storePath   = flag.String("store", "", "Location of the store: a directory for the file driver, a database file for sqlite.")
	storeDriver = flag.String("driver", "", "Store driver: file or sqlite.")
	Verbose     = flag.Bool("v", false, "Log debugging information.")
)

// stdout and stdin of the commands, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

// loadConfig reads the configuration and applies the global flags on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if *storeDriver != "" {
		cfg.Store.Driver = *storeDriver
	}
	if *Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

// openStore opens the store described in cfg. The returned function must be called when done.
func openStore(cfg *config.Config) (loantracker.Store, func() error, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return file.New(cfg.Store.Path), func() error { return nil }, nil
	}
}

// app is what a command needs to work on the loans.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  loantracker.Store
	ledger *loantracker.Ledger
	close  func() error
}

// openApp loads the configuration, opens the store and loads the ledger from it.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := config.NewLogger(os.Stderr, cfg.Log.Level)
	slog.SetDefault(logger)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "driver", cfg.Store.Driver, "path", cfg.Store.Path)

	ledger, err := loantracker.Open(store, loantracker.WithLogger(logger))
	if err != nil {
		closeStore()
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, store: store, ledger: ledger, close: closeStore}, nil
}

func (a *app) Close() {
	if err := a.close(); err != nil {
		a.logger.Error("could not close the store", "error", err)
	}
}

// format formats an amount in the display currency.
func (a *app) format(amount loantracker.Amount) string { return amount.Format(a.cfg.Currency) }

// outputFlags select how a report is printed.
type outputFlags struct {
	markdown bool
	html     bool
}

func (o *outputFlags) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&o.markdown, "md", false, "print raw markdown")
	f.BoolVar(&o.html, "html", false, "print HTML")
}

// print prints a markdown report in the selected output format.
func (o *outputFlags) print(md string) error {
	switch {
	case o.html:
		html, err := renderer.HTML(md)
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, html)
		return err
	case o.markdown:
		_, err := io.WriteString(stdout, md)
		return err
	default:
		printMarkdown(md)
		return nil
	}
}

// printMarkdown renders markdown for the terminal. On failure the raw markdown is printed.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	slog.Debug("could not render markdown", "error", err)
	fmt.Fprint(stdout, md)
}

// confirm asks a yes/no question on stdin. Anything but "y" or "yes" is a no.
func confirm(question string) bool {
	fmt.Fprintf(stdout, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
