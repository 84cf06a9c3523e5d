package loantracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/loantracker/date"
)

// Borrower is a person who owes money.
//
// OriginalAmount is the principal that was lent, CurrentAmount is the part still owed.
type Borrower struct {
	ID             string
	Name           string
	OriginalAmount Amount
	CurrentAmount  Amount
	BorrowDate     date.Date
}

// IsSettled reports whether the borrower owes nothing anymore.
func (b Borrower) IsSettled() bool { return b.CurrentAmount.IsZero() }

// Repaid returns the part of the original amount that has been paid back.
func (b Borrower) Repaid() Amount { return b.OriginalAmount.Sub(b.CurrentAmount) }

// Validate checks the invariants of a single record.
//
// It does not check the borrow date against today: that requires a clock and is done by the [Ledger].
func (b Borrower) Validate() error { return errors.Join(b.problems()...) }

// problems returns one *ValidationError per invalid field.
func (b Borrower) problems() []error {
	var errs []error
	if strings.TrimSpace(b.Name) == "" {
		errs = append(errs, NewValidationError("name", "must not be empty"))
	}
	if !b.OriginalAmount.IsPositive() {
		errs = append(errs, NewValidationError("originalAmount", "must be positive, got %s", b.OriginalAmount))
	}
	if b.OriginalAmount.GreaterThan(MaxAmount) {
		errs = append(errs, NewValidationError("originalAmount", "must not exceed %s, got %s", MaxAmount, b.OriginalAmount))
	}
	if b.CurrentAmount.IsNegative() {
		errs = append(errs, NewValidationError("currentAmount", "must not be negative, got %s", b.CurrentAmount))
	}
	if b.CurrentAmount.GreaterThan(b.OriginalAmount) {
		errs = append(errs, NewValidationError("currentAmount", "must not exceed the original amount %s, got %s", b.OriginalAmount, b.CurrentAmount))
	}
	if b.BorrowDate.IsZero() {
		errs = append(errs, NewValidationError("borrowDate", "is required"))
	}
	return errs
}

// MarshalJSON writes the borrower with a stable key order.
func (b Borrower) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", b.ID)
	w.Append("name", b.Name)
	w.Append("originalAmount", b.OriginalAmount)
	w.Append("currentAmount", b.CurrentAmount)
	w.Append("borrowDate", b.BorrowDate)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a borrower. The id is mandatory, other fields are checked by Validate.
func (b *Borrower) UnmarshalJSON(data []byte) error {
	var j struct {
		ID             string    `json:"id"`
		Name           string    `json:"name"`
		OriginalAmount Amount    `json:"originalAmount"`
		CurrentAmount  Amount    `json:"currentAmount"`
		BorrowDate     date.Date `json:"borrowDate"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	if j.ID == "" {
		return fmt.Errorf("borrower %q has no id", j.Name)
	}
	*b = Borrower(j)
	return nil
}
