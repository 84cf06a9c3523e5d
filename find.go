package loantracker

import (
	"fmt"
	"strings"
)

// Find returns the borrower designated by ref among borrowers.
//
// ref is, by order of precedence, a full id, a unique id prefix, or a unique name (case
// insensitive). It returns ErrNotFound if nothing matches and ErrAmbiguous if several do.
func Find(borrowers []Borrower, ref string) (Borrower, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Borrower{}, notFound(ref)
	}
	if i := indexOf(borrowers, ref); i >= 0 {
		return borrowers[i], nil
	}

	for _, match := range []func(Borrower) bool{
		func(b Borrower) bool { return strings.HasPrefix(b.ID, ref) },
		func(b Borrower) bool { return strings.EqualFold(b.Name, ref) },
	} {
		var found []Borrower
		for _, b := range borrowers {
			if match(b) {
				found = append(found, b)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		default:
			return Borrower{}, fmt.Errorf("%w: %q matches %d borrowers", ErrAmbiguous, ref, len(found))
		}
	}
	return Borrower{}, notFound(ref)
}

// Outstanding returns the sum of the amounts still owed by borrowers.
func Outstanding(borrowers []Borrower) Amount {
	total := A(0)
	for _, b := range borrowers {
		total = total.Add(b.CurrentAmount)
	}
	return total
}

// Lent returns the sum of the amounts originally lent to borrowers.
func Lent(borrowers []Borrower) Amount {
	total := A(0)
	for _, b := range borrowers {
		total = total.Add(b.OriginalAmount)
	}
	return total
}
