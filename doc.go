// Package loantracker keeps track of money lent to people and of their repayments.
//
// It is designed to be local-first: a single user, on a single device, owns the data and
// every change is written back immediately to a durable key-value [Store].
//
// The core functionalities include:
//   - Borrowers: a person, the amount originally lent, the balance still owed and the day
//     the money was lent.
//   - Ledger: the single source of truth for the active borrowers and the settled ones.
//     It records partial repayments and moves a borrower to the settled history once the
//     balance reaches zero. That move is one-directional.
//   - Persistence: each collection is stored as a whole, as a JSON array, under its own
//     key ("borrowers" and "settledBorrowers"). The format is the one used by the browser
//     version of the tracker so that its data can be imported unchanged.
//
// This package serves as the foundational logic for the `loans` command-line tool.
package loantracker
