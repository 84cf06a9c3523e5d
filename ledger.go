package loantracker

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/etnz/loantracker/date"
	"github.com/google/uuid"
)

// Ledger owns the active and the settled borrowers.
//
// All mutations go through the Ledger. Each one is validated first: on error nothing
// changes, neither in memory nor in the Store. On success, every collection that changed
// is written back in full to the Store before the method returns.
//
// A Ledger is meant for a single user session and is not safe for concurrent use.
type Ledger struct {
	store  Store
	logger *slog.Logger
	today  func() date.Date
	newID  func() string

	active  []Borrower // insertion order
	settled []Borrower // settlement order
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used to report recovered failures, like an unreadable collection.
func WithLogger(logger *slog.Logger) Option { return func(l *Ledger) { l.logger = logger } }

// WithClock sets the function returning today's date. Borrow dates after it are rejected.
func WithClock(today func() date.Date) Option { return func(l *Ledger) { l.today = today } }

// WithIDs sets the generator of borrower ids.
func WithIDs(newID func() string) Option { return func(l *Ledger) { l.newID = newID } }

// Open loads both collections from store.
//
// A missing collection starts empty. So does a collection that cannot be decoded: the
// failure is logged and the next mutation of that collection overwrites it. Only a failure
// of the store itself is returned.
func Open(store Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:  store,
		logger: slog.Default(),
		today:  date.Today,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}

	var err error
	if l.active, err = l.load(ActiveKey); err != nil {
		return nil, err
	}
	if l.settled, err = l.load(SettledKey); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Ledger) load(key string) ([]Borrower, error) {
	text, ok, err := l.store.Load(key)
	if err != nil {
		return nil, wrapStorage("load", key, err)
	}
	if !ok {
		l.logger.Debug("no stored collection, starting empty", "key", key)
		return nil, nil
	}
	borrowers, err := DecodeBorrowers(text)
	if err != nil {
		l.logger.Error("could not decode stored collection, starting empty", "key", key, "error", err)
		return nil, nil
	}
	l.logger.Debug("collection loaded", "key", key, "count", len(borrowers))
	return borrowers, nil
}

// Active returns a copy of the active borrowers, in insertion order.
func (l *Ledger) Active() []Borrower { return slices.Clone(l.active) }

// Settled returns a copy of the settled borrowers, in the order they were settled.
func (l *Ledger) Settled() []Borrower { return slices.Clone(l.settled) }

// Snapshot returns a copy of both collections.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{Borrowers: l.Active(), SettledBorrowers: l.Settled()}
}

// Get returns the borrower with that id, active or settled.
func (l *Ledger) Get(id string) (Borrower, bool) {
	if i := indexOf(l.active, id); i >= 0 {
		return l.active[i], true
	}
	if i := indexOf(l.settled, id); i >= 0 {
		return l.settled[i], true
	}
	return Borrower{}, false
}

// Add records that name borrowed amount on the given day.
//
// The returned borrower has a fresh id and owes the full amount. The name is trimmed.
func (l *Ledger) Add(name string, amount Amount, on date.Date) (Borrower, error) {
	b := Borrower{
		ID:             l.newID(),
		Name:           strings.TrimSpace(name),
		OriginalAmount: amount,
		CurrentAmount:  amount,
		BorrowDate:     on,
	}
	if err := l.validate(b); err != nil {
		return Borrower{}, err
	}
	if _, exists := l.Get(b.ID); exists {
		return Borrower{}, fmt.Errorf("generated id %q is already in use", b.ID)
	}

	if err := l.commit(activeCollection, append(slices.Clone(l.active), b), l.settled); err != nil {
		return Borrower{}, err
	}
	l.logger.Debug("borrower added", "id", b.ID, "amount", b.OriginalAmount)
	return b, nil
}

// RecordRepayment records that the active borrower id paid back amount.
//
// amount must be positive and must not exceed what is currently owed. When the balance
// reaches zero the borrower is moved to the settled collection; use [Borrower.IsSettled] on
// the returned borrower to know if that happened.
func (l *Ledger) RecordRepayment(id string, amount Amount) (Borrower, error) {
	i := indexOf(l.active, id)
	if i < 0 {
		return Borrower{}, notFound(id)
	}
	b := l.active[i]
	if !amount.IsPositive() {
		return Borrower{}, NewValidationError("amount", "must be positive, got %s", amount)
	}
	if amount.GreaterThan(b.CurrentAmount) {
		return Borrower{}, NewValidationError("amount", "must not exceed the balance %s, got %s", b.CurrentAmount, amount)
	}
	b.CurrentAmount = b.CurrentAmount.Sub(amount).Max(A(0))
	return l.replace(i, b)
}

// SettleInFull records that the active borrower id paid back everything still owed.
//
// A borrower whose balance was already edited down to zero is simply moved to the
// settled collection.
func (l *Ledger) SettleInFull(id string) (Borrower, error) {
	i := indexOf(l.active, id)
	if i < 0 {
		return Borrower{}, notFound(id)
	}
	b := l.active[i]
	if b.IsSettled() {
		return l.replace(i, b)
	}
	return l.RecordRepayment(id, b.CurrentAmount)
}

// Edit replaces the active borrower that has the same id as b.
//
// All fields but the id can change, the record must still be valid: in particular the
// current amount cannot exceed the original amount. Edit never settles a borrower.
func (l *Ledger) Edit(b Borrower) (Borrower, error) {
	i := indexOf(l.active, b.ID)
	if i < 0 {
		return Borrower{}, notFound(b.ID)
	}
	b.Name = strings.TrimSpace(b.Name)
	if err := l.validate(b); err != nil {
		return Borrower{}, err
	}

	active := slices.Clone(l.active)
	active[i] = b
	if err := l.commit(activeCollection, active, l.settled); err != nil {
		return Borrower{}, err
	}
	l.logger.Debug("borrower edited", "id", b.ID)
	return b, nil
}

// Delete removes the active borrower id. Settled borrowers cannot be deleted one by one,
// see [Ledger.ClearHistory].
func (l *Ledger) Delete(id string) error {
	i := indexOf(l.active, id)
	if i < 0 {
		return notFound(id)
	}
	if err := l.commit(activeCollection, slices.Delete(slices.Clone(l.active), i, i+1), l.settled); err != nil {
		return err
	}
	l.logger.Debug("borrower deleted", "id", id)
	return nil
}

// ClearHistory removes all the settled borrowers. It cannot be undone.
func (l *Ledger) ClearHistory() error {
	if err := l.commit(settledCollection, l.active, nil); err != nil {
		return err
	}
	l.logger.Debug("history cleared")
	return nil
}

// Import replaces both collections with the ones in s.
//
// Every record must be valid, ids must be unique across both collections, and settled
// borrowers must owe nothing. On error nothing changes.
func (l *Ledger) Import(s Snapshot) error {
	var errs []error
	seen := make(map[string]bool)
	for _, c := range []struct {
		name      string
		borrowers []Borrower
		settled   bool
	}{{"active", s.Borrowers, false}, {"settled", s.SettledBorrowers, true}} {
		for _, b := range c.borrowers {
			if seen[b.ID] {
				errs = append(errs, NewValidationError("id", "%q is used more than once", b.ID))
			}
			seen[b.ID] = true
			if err := l.validate(b); err != nil {
				errs = append(errs, fmt.Errorf("%s borrower %q: %w", c.name, b.ID, err))
			}
			if c.settled && !b.IsSettled() {
				errs = append(errs, NewValidationError("currentAmount", "settled borrower %q still owes %s", b.ID, b.CurrentAmount))
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if err := l.commit(activeCollection|settledCollection, slices.Clone(s.Borrowers), slices.Clone(s.SettledBorrowers)); err != nil {
		return err
	}
	l.logger.Debug("collections imported", "active", len(s.Borrowers), "settled", len(s.SettledBorrowers))
	return nil
}

// replace stores the new state of the active borrower at index i, moving it to the
// settled collection if it owes nothing.
func (l *Ledger) replace(i int, b Borrower) (Borrower, error) {
	if !b.IsSettled() {
		active := slices.Clone(l.active)
		active[i] = b
		if err := l.commit(activeCollection, active, l.settled); err != nil {
			return Borrower{}, err
		}
		l.logger.Debug("repayment recorded", "id", b.ID, "balance", b.CurrentAmount)
		return b, nil
	}

	active := slices.Delete(slices.Clone(l.active), i, i+1)
	settled := append(slices.Clone(l.settled), b)
	if err := l.commit(activeCollection|settledCollection, active, settled); err != nil {
		return Borrower{}, err
	}
	l.logger.Debug("borrower settled", "id", b.ID)
	return b, nil
}

// validate checks b and its borrow date against today.
func (l *Ledger) validate(b Borrower) error {
	errs := b.problems()
	if today := l.today(); b.BorrowDate.After(today) {
		errs = append(errs, NewValidationError("borrowDate", "must not be after today %s, got %s", today, b.BorrowDate))
	}
	return errors.Join(errs...)
}

// collection is a set of the collections changed by a mutation.
type collection int

const (
	activeCollection collection = 1 << iota
	settledCollection
)

// commit persists the changed collections then adopts the new state.
//
// If the settled collection cannot be saved after the active one was, the active one is
// reverted so that the Store and memory still agree.
func (l *Ledger) commit(changed collection, active, settled []Borrower) error {
	if changed&activeCollection != 0 {
		if err := saveCollection(l.store, ActiveKey, active); err != nil {
			return err
		}
	}
	if changed&settledCollection != 0 {
		if err := saveCollection(l.store, SettledKey, settled); err != nil {
			if changed&activeCollection != 0 {
				if rerr := saveCollection(l.store, ActiveKey, l.active); rerr != nil {
					l.logger.Error("could not revert collection after a failed save", "key", ActiveKey, "error", rerr)
				}
			}
			return err
		}
	}

	l.active, l.settled = active, settled
	return nil
}

func indexOf(borrowers []Borrower, id string) int {
	return slices.IndexFunc(borrowers, func(b Borrower) bool { return b.ID == id })
}
