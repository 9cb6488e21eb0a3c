package account

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Account
}

// NewMemoryRepository constructs an in-memory repository for tests and
// development mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Account)}
}

func (r *memoryRepository) Create(_ context.Context, acc Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[acc.ID]; exists {
		return errors.New("account exists")
	}
	r.storage[acc.ID] = acc
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.storage[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acc, nil
}

func (r *memoryRepository) GetManyByIDWithMissing(_ context.Context, ids []string) (map[string]*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*Account, len(ids))
	for _, id := range ids {
		if acc, ok := r.storage[id]; ok {
			found := acc
			out[id] = &found
		} else {
			out[id] = nil
		}
	}
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, acc Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[acc.ID]; !exists {
		return ErrNotFound
	}
	r.storage[acc.ID] = acc
	return nil
}
