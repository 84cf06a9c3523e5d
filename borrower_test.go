package loantracker

import (
	"errors"
	"testing"
)

func TestBorrower_Validate(t *testing.T) {
	valid := Borrower{ID: "x", Name: "Alice", OriginalAmount: A(100), CurrentAmount: A(40), BorrowDate: today}
	testCases := []struct {
		name       string
		edit       func(*Borrower)
		wantFields []string
	}{
		{name: "valid", edit: func(*Borrower) {}},
		{name: "settled", edit: func(b *Borrower) { b.CurrentAmount = A(0) }},
		{name: "blank name", edit: func(b *Borrower) { b.Name = " \t" }, wantFields: []string{"name"}},
		{name: "too large", edit: func(b *Borrower) { b.OriginalAmount = MaxAmount.Add(A(0.01)) }, wantFields: []string{"originalAmount"}},
		{name: "largest", edit: func(b *Borrower) { b.OriginalAmount = MaxAmount }},
		{name: "current above original", edit: func(b *Borrower) { b.CurrentAmount = A(100.01) }, wantFields: []string{"currentAmount"}},
		{name: "everything", edit: func(b *Borrower) { *b = Borrower{CurrentAmount: A(-1)} },
			wantFields: []string{"name", "originalAmount", "currentAmount", "borrowDate"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := valid
			tc.edit(&b)
			err := b.Validate()
			if len(tc.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Validate() returned an unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Validate() error = %v, want ErrValidation", err)
			}
			fields := validationFields(err)
			if len(fields) != len(tc.wantFields) {
				t.Fatalf("Validate() reported fields %v, want %v", fields, tc.wantFields)
			}
			for i := range fields {
				if fields[i] != tc.wantFields[i] {
					t.Errorf("Validate() reported fields %v, want %v", fields, tc.wantFields)
					break
				}
			}
		})
	}
}

func TestBorrower_Repaid(t *testing.T) {
	b := Borrower{OriginalAmount: A(100), CurrentAmount: A(37.5)}
	if got := b.Repaid(); !got.Equal(A(62.5)) {
		t.Errorf("Repaid() = %v, want 62.50", got)
	}
	if b.IsSettled() {
		t.Errorf("IsSettled() = true for a borrower owing %v", b.CurrentAmount)
	}
}
