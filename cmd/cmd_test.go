package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/loantracker"
	"github.com/etnz/loantracker/store/file"
	"github.com/google/subcommands"
)

// setup runs the commands in a fresh directory, with a store of the given driver, and
// returns the buffer receiving their output.
func setup(t *testing.T, driver string) *bytes.Buffer {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LOANS_SETTLE_DELAY", "0s")

	oldPath, oldDriver, oldOut, oldIn := *storePath, *storeDriver, stdout, stdin
	t.Cleanup(func() { *storePath, *storeDriver, stdout, stdin = oldPath, oldDriver, oldOut, oldIn })

	*storePath = filepath.Join(dir, "store")
	if driver == "sqlite" {
		*storePath = filepath.Join(dir, "loans.db")
	}
	*storeDriver = driver

	var buf bytes.Buffer
	stdout = &buf
	stdin = strings.NewReader("")
	return &buf
}

// run executes the command c with args, as the commander would.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s %v: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

// mustRun is like run but fails the test unless the command succeeds.
// It returns the output of that command only.
func mustRun(t *testing.T, out *bytes.Buffer, c subcommands.Command, args ...string) string {
	t.Helper()
	out.Reset()
	if status := run(t, c, args...); status != subcommands.ExitSuccess {
		t.Fatalf("%s %v: got status %v, output:\n%s", c.Name(), args, status, out)
	}
	return out.String()
}

func assertContains(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("output does not contain %q:\n%s", w, got)
		}
	}
}

func TestCommands_Lifecycle(t *testing.T) {
	for _, driver := range []string{"file", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			out := setup(t, driver)

			got := mustRun(t, out, &listCmd{}, "-md")
			assertContains(t, got, "## No entries yet", "`loans add -n NAME -a AMOUNT`")

			got = mustRun(t, out, &addCmd{}, "-n", "  Alice ", "-a", "100", "-d", "2024-01-01")
			assertContains(t, got, "Borrower added: Alice added to your tracking list ($100.00 owed")
			mustRun(t, out, &addCmd{}, "-n", "Bob", "-a", "50", "-d", "2024-02-01")

			got = mustRun(t, out, &repayCmd{}, "-id", "alice", "-a", "40")
			assertContains(t, got, "Recorded payment of $40.00 from Alice. Still owed: $60.00.")

			got = mustRun(t, out, &listCmd{}, "-md")
			assertContains(t, got,
				"Tracking 2 active loans",
				"### Alice",
				"| $100.00 | $60.00 | 40% |",
				"**Outstanding:** $110.00 of $150.00 lent",
			)

			got = mustRun(t, out, &repayCmd{}, "-id", "Alice", "-a", "60")
			assertContains(t, got, "Loan settled! Alice has fully repaid their loan.")

			got = mustRun(t, out, &settleCmd{}, "-id", "bob")
			assertContains(t, got, "Settling...\nLoan settled! Bob has fully repaid their loan.\n")

			got = mustRun(t, out, &listCmd{}, "-md")
			assertContains(t, got, "## No entries yet")

			got = mustRun(t, out, &historyCmd{}, "-md")
			assertContains(t, got, "2 settled loans", "### Alice", "### Bob", "**Recovered:** $150.00")
			if strings.Index(got, "### Alice") > strings.Index(got, "### Bob") {
				t.Errorf("history is not in settlement order:\n%s", got)
			}

			got = mustRun(t, out, &clearHistoryCmd{}, "-y")
			assertContains(t, got, "History cleared successfully")

			got = mustRun(t, out, &historyCmd{}, "-md")
			assertContains(t, got, "No settled loans yet")
		})
	}
}

func TestCommands_EditDelete(t *testing.T) {
	out := setup(t, "file")
	mustRun(t, out, &addCmd{}, "-n", "Alice", "-a", "100", "-d", "2024-01-01")

	got := mustRun(t, out, &editCmd{}, "-id", "alice", "-n", "Alicia", "-c", "75")
	assertContains(t, got, "Alicia's information updated.")

	got = mustRun(t, out, &showCmd{}, "-id", "alicia", "-md")
	assertContains(t, got, "# Alicia", "Currently owes: **$75.00**", "Status: Active")

	out.Reset()
	if status := run(t, &editCmd{}, "-id", "alicia", "-c", "150"); status != subcommands.ExitFailure {
		t.Errorf("edit above the original amount: got status %v, want failure", status)
	}

	got = mustRun(t, out, &deleteCmd{}, "-id", "alicia")
	assertContains(t, got, "Alicia has been removed from your tracking list.")

	out.Reset()
	if status := run(t, &deleteCmd{}, "-id", "alicia"); status != subcommands.ExitFailure {
		t.Errorf("delete unknown: got status %v, want failure", status)
	}
}

func TestCommands_InvalidInput(t *testing.T) {
	out := setup(t, "file")
	for _, tc := range []struct {
		name string
		cmd  subcommands.Command
		args []string
		want subcommands.ExitStatus
	}{
		{"add without name", &addCmd{}, []string{"-a", "10"}, subcommands.ExitUsageError},
		{"add blank name", &addCmd{}, []string{"-n", "   ", "-a", "10"}, subcommands.ExitUsageError},
		{"add bad amount", &addCmd{}, []string{"-n", "Alice", "-a", "ten"}, subcommands.ExitUsageError},
		{"add bad date", &addCmd{}, []string{"-n", "Alice", "-a", "10", "-d", "yesterday"}, subcommands.ExitUsageError},
		{"add zero", &addCmd{}, []string{"-n", "Alice", "-a", "0"}, subcommands.ExitFailure},
		{"add future", &addCmd{}, []string{"-n", "Alice", "-a", "10", "-d", "+1y"}, subcommands.ExitFailure},
		{"repay without id", &repayCmd{}, []string{"-a", "10"}, subcommands.ExitUsageError},
		{"repay unknown", &repayCmd{}, []string{"-id", "nobody", "-a", "10"}, subcommands.ExitFailure},
		{"settle without id", &settleCmd{}, nil, subcommands.ExitUsageError},
		{"query without expression", &queryCmd{}, nil, subcommands.ExitUsageError},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out.Reset()
			if got := run(t, tc.cmd, tc.args...); got != tc.want {
				t.Errorf("got status %v, want %v", got, tc.want)
			}
		})
	}

	got := mustRun(t, out, &listCmd{}, "-md")
	assertContains(t, got, "## No entries yet")
}

func TestCommands_RepayTooMuch(t *testing.T) {
	out := setup(t, "file")
	mustRun(t, out, &addCmd{}, "-n", "Alice", "-a", "100", "-d", "2024-01-01")

	out.Reset()
	if status := run(t, &repayCmd{}, "-id", "alice", "-a", "150"); status != subcommands.ExitFailure {
		t.Fatalf("got status %v, want failure", status)
	}
	got := mustRun(t, out, &listCmd{}, "-md")
	assertContains(t, got, "| $100.00 | $100.00 | 0% |")
}

func TestCommands_ClearHistoryConfirmation(t *testing.T) {
	out := setup(t, "file")
	mustRun(t, out, &addCmd{}, "-n", "Alice", "-a", "100", "-d", "2024-01-01")
	mustRun(t, out, &settleCmd{}, "-id", "alice")

	stdin = strings.NewReader("n\n")
	got := mustRun(t, out, &clearHistoryCmd{})
	assertContains(t, got, "Remove 1 settled loan(s)? [y/N] ", "History kept.")

	stdin = strings.NewReader("y\n")
	got = mustRun(t, out, &clearHistoryCmd{})
	assertContains(t, got, "History cleared successfully")
}

func TestCommands_ExportImport(t *testing.T) {
	out := setup(t, "file")
	mustRun(t, out, &addCmd{}, "-n", "Alice", "-a", "100", "-d", "2024-01-01")
	mustRun(t, out, &addCmd{}, "-n", "Bob", "-a", "50", "-d", "2024-02-01")
	mustRun(t, out, &settleCmd{}, "-id", "bob")

	mustRun(t, out, &exportCmd{}, "-o", "dump.json")
	exported, err := os.ReadFile("dump.json")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, string(exported), `"name": "Alice"`, `"name": "Bob"`, `"settledBorrowers"`)

	got := mustRun(t, out, &queryCmd{}, "$.borrowers[*].name")
	if want := "[\n  \"Alice\"\n]\n"; got != want {
		t.Errorf("query: got %q, want %q", got, want)
	}

	// A dump of the browser storage holds each collection as a string.
	dump := `{
  "borrowers": "[{\"id\":\"c1\",\"name\":\"Carol\",\"originalAmount\":30,\"currentAmount\":10,\"borrowDate\":\"2023-05-06\"}]",
  "settledBorrowers": "[]",
  "theme": "dark"
}`
	stdin = strings.NewReader(dump)
	got = mustRun(t, out, &importCmd{}, "-y", "-")
	assertContains(t, got, "Imported 1 active and 0 settled loan(s).")

	got = mustRun(t, out, &listCmd{}, "-md")
	assertContains(t, got, "Tracking 1 active loan\n", "### Carol", "| $30.00 | $10.00 | 67% |")

	stdin = strings.NewReader("no\n")
	got = mustRun(t, out, &importCmd{}, "dump.json")
	assertContains(t, got, "Nothing imported.")

	got = mustRun(t, out, &importCmd{}, "-y", "dump.json")
	assertContains(t, got, "Imported 1 active and 1 settled loan(s).")
}

func TestFmtCmd(t *testing.T) {
	out := setup(t, "file")
	store := file.New(*storePath)
	if err := store.Save(loantracker.ActiveKey, `[{"borrowDate":"2024-01-01","currentAmount":5,"originalAmount":10.0,"name":"Alice","id":"a1"}]`); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("theme", `"dark"`); err != nil {
		t.Fatal(err)
	}

	got := mustRun(t, out, &fmtCmd{})
	assertContains(t, got, "Formatted 1 active and 0 settled loan(s).")

	text, ok, err := store.Load(loantracker.ActiveKey)
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if want := `[{"id":"a1","name":"Alice","originalAmount":10,"currentAmount":5,"borrowDate":"2024-01-01"}]`; text != want {
		t.Errorf("got %s, want %s", text, want)
	}
	if text, ok, _ := store.Load(loantracker.SettledKey); !ok || text != "[]" {
		t.Errorf("settled collection: got %q, %v", text, ok)
	}

	if err := store.Save(loantracker.SettledKey, `not json`); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if status := run(t, &fmtCmd{}); status != subcommands.ExitFailure {
		t.Errorf("fmt of a corrupted collection: got status %v, want failure", status)
	}
	if text, _, _ := store.Load(loantracker.SettledKey); text != "not json" {
		t.Errorf("corrupted collection was overwritten with %q", text)
	}
}

func TestTopicCmd(t *testing.T) {
	out := setup(t, "file")
	got := mustRun(t, out, &topicCmd{}, "-md")
	assertContains(t, got, "# loans", "* usage:")

	out.Reset()
	if status := run(t, &topicCmd{}, "nope"); status != subcommands.ExitFailure {
		t.Errorf("unknown topic: got status %v, want failure", status)
	}
}

func TestCompletion(t *testing.T) {
	out := setup(t, "file")
	mustRun(t, out, &addCmd{}, "-n", "Alice", "-a", "100", "-d", "2024-01-01")
	mustRun(t, out, &addCmd{}, "-n", "Bob", "-a", "50", "-d", "2024-01-01")
	mustRun(t, out, &settleCmd{}, "-id", "bob")

	c := Completion()
	for _, name := range []string{"list", "add", "repay", "settle", "edit", "delete", "show", "history", "clear-history", "query", "export", "import", "fmt", "topic"} {
		if c.Sub[name] == nil {
			t.Errorf("no completion for command %q", name)
		}
	}
	if _, ok := c.Sub["repay"].Flags["a"]; !ok {
		t.Errorf("repay: no completion for flag -a")
	}
	// Only active borrowers can be repaid, settled, edited or deleted.
	for _, name := range []string{"repay", "settle", "edit", "delete"} {
		ids := c.Sub[name].Flags["id"].Predict("")
		if len(ids) != 1 {
			t.Errorf("%s: predicted ids %v, want one", name, ids)
			continue
		}
		if len(ids[0]) != 36 {
			t.Errorf("%s: predicted id %q is not a uuid", name, ids[0])
		}
	}
	if ids := c.Sub["show"].Flags["id"].Predict(""); len(ids) != 2 {
		t.Errorf("show: predicted ids %v, want both borrowers", ids)
	}
}

func TestExportCmd_WriteFailure(t *testing.T) {
	out := setup(t, "file")
	mustRun(t, out, &addCmd{}, "-n", "Alice", "-a", "100", "-d", "2024-01-01")

	out.Reset()
	if status := run(t, &exportCmd{}, "-o", filepath.Join("missing", "dump.json")); status != subcommands.ExitFailure {
		t.Errorf("export to a missing directory: got status %v, want failure", status)
	}

	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full to simulate a full disk")
	}
	if status := run(t, &exportCmd{}, "-o", "/dev/full"); status != subcommands.ExitFailure {
		t.Errorf("export to a full disk: got status %v, want failure", status)
	}
}
