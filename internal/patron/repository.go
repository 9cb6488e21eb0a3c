package patron

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patron-pay/patron_pay/internal/tenant"
)

// ErrNotFound indicates the patron does not exist.
var ErrNotFound = errors.New("patron not found")

// Repository persists patrons.
type Repository interface {
	Create(ctx context.Context, p Patron) error
	GetByID(ctx context.Context, id string) (Patron, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed patron repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new patron.
func (r *PostgresRepository) Create(ctx context.Context, p Patron) error {
	patronID, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO patrons (id, tenant, barcode, name, email, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		patronID, tenant.FromContext(ctx), p.Barcode, p.Name, p.Email, p.CreatedAt.UTC())
	return err
}

// GetByID fetches a patron by identifier.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Patron, error) {
	patronID, err := uuid.Parse(id)
	if err != nil {
		return Patron{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, barcode, name, email, created_at
        FROM patrons WHERE id = $1 AND tenant = $2`, patronID, tenant.FromContext(ctx))

	var p Patron
	var idVal uuid.UUID
	var createdAt time.Time
	if err := row.Scan(&idVal, &p.Barcode, &p.Name, &p.Email, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Patron{}, ErrNotFound
		}
		return Patron{}, err
	}
	p.ID = idVal.String()
	p.CreatedAt = createdAt.UTC()
	return p, nil
}
