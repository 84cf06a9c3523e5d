package loantracker

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/etnz/loantracker/date"
	"github.com/google/go-cmp/cmp"
)

// today is the fixed day tests run on.
var today = date.New(2024, time.June, 15)

// cmpOpts compares borrowers field by field.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
}

// newTestLedger opens a ledger on store with a fixed clock and predictable ids
// ("id-1", "id-2", ...). Log records are written to the returned buffer.
func newTestLedger(t *testing.T, store Store) (*Ledger, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	n := 0
	l, err := Open(store,
		WithClock(func() date.Date { return today }),
		WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
		WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	return l, &logs
}

// mustAdd adds a borrower or fails the test.
func mustAdd(t *testing.T, l *Ledger, name string, amount float64, on date.Date) Borrower {
	t.Helper()
	b, err := l.Add(name, A(amount), on)
	if err != nil {
		t.Fatalf("Add(%q, %v, %v) returned an unexpected error: %v", name, amount, on, err)
	}
	return b
}

// failingStore is a MemoryStore whose operations on some keys fail.
type failingStore struct {
	MemoryStore
	failLoad map[string]bool
	failSave map[string]bool
}

var errDiskFull = errors.New("disk full")

func (s *failingStore) Load(key string) (string, bool, error) {
	if s.failLoad[key] {
		return "", false, errors.New("permission denied")
	}
	return s.MemoryStore.Load(key)
}

func (s *failingStore) Save(key, text string) error {
	if s.failSave[key] {
		return errDiskFull
	}
	return s.MemoryStore.Save(key, text)
}

// validationFields returns the field of every *ValidationError joined in err, in order.
// Only the errors joined at the top level are considered.
func validationFields(err error) []string {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return nil
	}
	var fields []string
	for _, e := range joined.Unwrap() {
		var verr *ValidationError
		if errors.As(e, &verr) {
			fields = append(fields, verr.Field)
		}
	}
	return fields
}
