package renderer

import (
	"fmt"

	"github.com/etnz/loantracker"
)

// DisplayDate is the layout used to display borrow dates.
const DisplayDate = "Jan 2, 2006"

// Card is a borrower ready to be displayed: amounts are formatted in the display currency.
type Card struct {
	ID         string
	ShortID    string
	Name       string
	BorrowedOn string
	Original   string
	Current    string
	Repaid     string
	Progress   string // share of the original amount repaid, e.g. "40%"
	Settled    bool
}

// ActiveView is the content of the active loans view.
type ActiveView struct {
	Cards       []Card
	Outstanding string
	Lent        string
}

// HistoryView is the content of the settled loans view.
type HistoryView struct {
	Cards     []Card
	Recovered string
}

// NewCard formats b in currency.
func NewCard(b loantracker.Borrower, currency string) Card {
	return Card{
		ID:         b.ID,
		ShortID:    ShortID(b.ID),
		Name:       b.Name,
		BorrowedOn: b.BorrowDate.Format(DisplayDate),
		Original:   b.OriginalAmount.Format(currency),
		Current:    b.CurrentAmount.Format(currency),
		Repaid:     b.Repaid().Format(currency),
		Progress:   fmt.Sprintf("%.0f%%", b.Repaid().Percent(b.OriginalAmount)),
		Settled:    b.IsSettled(),
	}
}

func NewActiveView(active []loantracker.Borrower, currency string) *ActiveView {
	v := &ActiveView{
		Outstanding: loantracker.Outstanding(active).Format(currency),
		Lent:        loantracker.Lent(active).Format(currency),
	}
	for _, b := range active {
		v.Cards = append(v.Cards, NewCard(b, currency))
	}
	return v
}

func NewHistoryView(settled []loantracker.Borrower, currency string) *HistoryView {
	v := &HistoryView{Recovered: loantracker.Lent(settled).Format(currency)}
	for _, b := range settled {
		v.Cards = append(v.Cards, NewCard(b, currency))
	}
	return v
}

// ShortID returns the first 8 characters of id, enough to designate a borrower on the
// command line.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
