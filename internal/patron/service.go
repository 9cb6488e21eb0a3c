package patron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service exposes patron registry operations.
type Service struct {
	repo Repository
}

// NewService builds a patron service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput captures data required to register a patron.
type RegisterInput struct {
	Barcode string `json:"barcode"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// Register creates a patron record.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Patron, error) {
	if input.Barcode == "" {
		return Patron{}, fmt.Errorf("barcode is required")
	}
	if input.Name == "" {
		return Patron{}, fmt.Errorf("name is required")
	}

	p := Patron{
		ID:        uuid.NewString(),
		Barcode:   input.Barcode,
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Patron{}, err
	}
	return p, nil
}

// Get retrieves a patron by identifier.
func (s *Service) Get(ctx context.Context, id string) (Patron, error) {
	return s.repo.GetByID(ctx, id)
}
