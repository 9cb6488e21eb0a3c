package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patron-pay/patron_pay/internal/money"
	"github.com/patron-pay/patron_pay/internal/tenant"
)

// ErrNotFound indicates the requested account does not exist.
var ErrNotFound = errors.New("account not found")

// Repository persists fee/fine accounts.
type Repository interface {
	Create(ctx context.Context, acc Account) error
	GetByID(ctx context.Context, id string) (Account, error)
	// GetManyByIDWithMissing resolves each identifier; identifiers that do
	// not exist map to a nil entry rather than being dropped, so callers can
	// distinguish "absent" from "never requested".
	GetManyByIDWithMissing(ctx context.Context, ids []string) (map[string]*Account, error)
	Update(ctx context.Context, acc Account) error
}

// PostgresRepository stores accounts in PostgreSQL, one tenant per row
// partition selected through the request context.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an account record.
func (r *PostgresRepository) Create(ctx context.Context, acc Account) error {
	accountID, err := uuid.Parse(acc.ID)
	if err != nil {
		return err
	}
	patronID, err := uuid.Parse(acc.PatronID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO accounts
        (id, tenant, patron_id, fee_fine_type, amount, remaining, status, payment_status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		accountID, tenant.FromContext(ctx), patronID, acc.FeeFineType,
		acc.Amount.String(), acc.Remaining.String(), acc.Status, acc.PaymentStatus, acc.CreatedAt.UTC())
	return err
}

// GetByID fetches one account.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, patron_id, fee_fine_type, amount, remaining, status, payment_status, created_at
        FROM accounts WHERE id = $1 AND tenant = $2`, accountID, tenant.FromContext(ctx))
	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return acc, err
}

// GetManyByIDWithMissing resolves a set of identifiers, keeping absent ones
// as explicit nil markers.
func (r *PostgresRepository) GetManyByIDWithMissing(ctx context.Context, ids []string) (map[string]*Account, error) {
	out := make(map[string]*Account, len(ids))
	for _, id := range ids {
		out[id] = nil
	}

	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		accountID, err := uuid.Parse(id)
		if err != nil {
			continue // malformed id stays a nil marker
		}
		parsed = append(parsed, accountID)
	}
	if len(parsed) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, patron_id, fee_fine_type, amount, remaining, status, payment_status, created_at
        FROM accounts WHERE id = ANY($1) AND tenant = $2`, parsed, tenant.FromContext(ctx))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		found := acc
		out[acc.ID] = &found
	}
	return out, rows.Err()
}

// Update persists the mutable fields of an account.
func (r *PostgresRepository) Update(ctx context.Context, acc Account) error {
	accountID, err := uuid.Parse(acc.ID)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `UPDATE accounts
        SET remaining = $1, status = $2, payment_status = $3
        WHERE id = $4 AND tenant = $5`,
		acc.Remaining.String(), acc.Status, acc.PaymentStatus, accountID, tenant.FromContext(ctx))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (Account, error) {
	var acc Account
	var idVal, patronID uuid.UUID
	var amount, remaining string
	var createdAt time.Time
	if err := row.Scan(&idVal, &patronID, &acc.FeeFineType, &amount, &remaining,
		&acc.Status, &acc.PaymentStatus, &createdAt); err != nil {
		return Account{}, err
	}
	acc.ID = idVal.String()
	acc.PatronID = patronID.String()
	acc.CreatedAt = createdAt.UTC()

	var err error
	if acc.Amount, err = money.FromString(amount); err != nil {
		return Account{}, err
	}
	if acc.Remaining, err = money.FromString(remaining); err != nil {
		return Account{}, err
	}
	return acc, nil
}
