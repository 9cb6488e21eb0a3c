package ledger

import (
	"context"
	"sync"
)

type inMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewInMemory creates a concurrency-safe in-memory store useful for unit
// tests and development mode.
func NewInMemory() Store {
	return &inMemoryStore{entries: make(map[string]Entry)}
}

func (s *inMemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[entry.ID]; exists {
		return ErrDuplicateEntry
	}
	s.entries[entry.ID] = entry
	return nil
}

func (s *inMemoryStore) FindByAccount(_ context.Context, accountID string) ([]Entry, error) {
	if accountID == "" {
		return nil, ErrEmptyAccountID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for _, e := range s.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *inMemoryStore) FindRefundable(ctx context.Context, accountID string) ([]Entry, error) {
	entries, err := s.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range entries {
		if e.IsRefundable() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *inMemoryStore) FindCharge(ctx context.Context, accountID string) (Entry, bool, error) {
	entries, err := s.FindByAccount(ctx, accountID)
	if err != nil {
		return Entry{}, false, err
	}
	charge, found := ChargeFor(entries)
	return charge, found, nil
}
