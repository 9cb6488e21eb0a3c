package patron

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Patron
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Patron)}
}

func (r *memoryRepository) Create(_ context.Context, p Patron) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[p.ID]; exists {
		return errors.New("patron exists")
	}
	r.storage[p.ID] = p
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (Patron, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.storage[id]
	if !ok {
		return Patron{}, ErrNotFound
	}
	return p, nil
}
