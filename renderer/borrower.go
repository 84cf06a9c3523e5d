package renderer

import (
	"bytes"

	"github.com/etnz/loantracker"
	md "github.com/nao1215/markdown"
)

// RenderBorrower renders the detailed card of a single borrower.
func RenderBorrower(b loantracker.Borrower, currency string) string {
	c := NewCard(b, currency)
	status := "Active"
	if c.Settled {
		status = "Settled"
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(c.Name)
	doc.PlainText("")
	doc.PlainTextf("Borrowed on %s", c.BorrowedOn)
	doc.PlainText("")
	doc.BulletList(
		"Id: "+md.Code(c.ID),
		"Originally borrowed: "+c.Original,
		"Currently owes: "+md.Bold(c.Current),
		"Repaid: "+c.Repaid+" ("+c.Progress+")",
		"Status: "+status,
	)
	return doc.String() + "\n"
}
