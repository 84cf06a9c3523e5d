package loantracker

import "fmt"

// Store is a durable key-value storage of text values.
//
// The Ledger stores each collection as a whole under its own key. Implementations live in
// the store/file and store/sqlite packages.
type Store interface {
	// Load returns the value stored under key. ok is false if there is no such value.
	Load(key string) (text string, ok bool, err error)
	// Save replaces the value stored under key.
	Save(key, text string) error
}

// MemoryStore is a Store that keeps values in memory. Its zero value is ready to use.
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore returns a MemoryStore holding a copy of values.
func NewMemoryStore(values map[string]string) *MemoryStore {
	s := &MemoryStore{values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *MemoryStore) Load(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Save(key, text string) error {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = text
	return nil
}

// ReadSnapshot decodes both collections from a Store without opening a Ledger.
// Unlike Open, a malformed value is reported as an error.
func ReadSnapshot(s Store) (Snapshot, error) {
	var snap Snapshot
	for _, c := range []struct {
		key  string
		dest *[]Borrower
	}{{ActiveKey, &snap.Borrowers}, {SettledKey, &snap.SettledBorrowers}} {
		text, ok, err := s.Load(c.key)
		if err != nil {
			return Snapshot{}, wrapStorage("load", c.key, err)
		}
		if !ok {
			continue
		}
		if *c.dest, err = DecodeBorrowers(text); err != nil {
			return Snapshot{}, fmt.Errorf("key %q: %w", c.key, err)
		}
	}
	return snap, nil
}

// WriteSnapshot replaces both collections in a Store.
func WriteSnapshot(s Store, snap Snapshot) error {
	if err := saveCollection(s, ActiveKey, snap.Borrowers); err != nil {
		return err
	}
	return saveCollection(s, SettledKey, snap.SettledBorrowers)
}

func saveCollection(s Store, key string, borrowers []Borrower) error {
	text, err := EncodeBorrowers(borrowers)
	if err != nil {
		return err
	}
	if err := s.Save(key, text); err != nil {
		return wrapStorage("save", key, err)
	}
	return nil
}

func wrapStorage(op, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %w", ErrStorage, op, key, err)
}
