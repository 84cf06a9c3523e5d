package loantracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Keys under which the collections are persisted in a Store.
const (
	ActiveKey  = "borrowers"
	SettledKey = "settledBorrowers"
)

// EncodeBorrowers returns the text persisted for a collection: a JSON array of borrowers.
// An empty collection is encoded as "[]".
func EncodeBorrowers(borrowers []Borrower) (string, error) {
	if borrowers == nil {
		borrowers = []Borrower{}
	}
	b, err := json.Marshal(borrowers)
	if err != nil {
		return "", fmt.Errorf("failed to encode borrowers: %w", err)
	}
	return string(b), nil
}

// DecodeBorrowers parses the text persisted for a collection.
//
// It fails on anything that is not a JSON array of borrowers each having an id, or if two
// borrowers share the same id.
func DecodeBorrowers(text string) ([]Borrower, error) {
	var borrowers []Borrower
	if err := json.Unmarshal([]byte(text), &borrowers); err != nil {
		return nil, fmt.Errorf("invalid borrowers: %w", err)
	}
	seen := make(map[string]bool, len(borrowers))
	for _, b := range borrowers {
		if seen[b.ID] {
			return nil, fmt.Errorf("invalid borrowers: duplicate id %q", b.ID)
		}
		seen[b.ID] = true
	}
	return borrowers, nil
}

// Snapshot is the content of both collections.
//
// Its JSON form is an object with one key per collection, the same layout as a dump of the
// browser storage of the web tracker.
type Snapshot struct {
	Borrowers        []Borrower `json:"borrowers"`
	SettledBorrowers []Borrower `json:"settledBorrowers"`
}

// EncodeSnapshot writes s as an indented JSON document.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	if s.Borrowers == nil {
		s.Borrowers = []Borrower{}
	}
	if s.SettledBorrowers == nil {
		s.SettledBorrowers = []Borrower{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot.
//
// Each collection may be given either as a JSON array or as a JSON string holding the array:
// browser storage only holds strings so that is how a raw dump of it looks like.
// A missing collection is empty.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Snapshot{}, fmt.Errorf("invalid snapshot: %w", err)
	}
	var s Snapshot
	var err error
	if s.Borrowers, err = decodeRawCollection(raw[ActiveKey]); err != nil {
		return Snapshot{}, fmt.Errorf("invalid snapshot key %q: %w", ActiveKey, err)
	}
	if s.SettledBorrowers, err = decodeRawCollection(raw[SettledKey]); err != nil {
		return Snapshot{}, fmt.Errorf("invalid snapshot key %q: %w", SettledKey, err)
	}
	return s, nil
}

func decodeRawCollection(raw json.RawMessage) ([]Borrower, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, err
		}
	}
	return DecodeBorrowers(text)
}
