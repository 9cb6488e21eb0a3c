package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patron-pay/patron_pay/internal/money"
	"github.com/patron-pay/patron_pay/internal/tenant"
)

// PostgresStore persists ledger entries in PostgreSQL. Rows are immutable:
// only INSERT and SELECT are issued against the table.
//
// Entries for the accounts of one bulk request are appended as independent
// statements, not inside one transaction; a mid-request failure can leave a
// subset of sibling entries persisted (see the orchestrator's contract).
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed ledger store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const uniqueViolation = "23505"

// Append inserts one entry. A primary-key conflict maps to ErrDuplicateEntry.
func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	entryID, err := uuid.Parse(entry.ID)
	if err != nil {
		return err
	}
	accountID, err := uuid.Parse(entry.AccountID)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `INSERT INTO ledger_entries
        (id, tenant, account_id, patron_id, amount, balance, type, comments,
         payment_method, transaction_info, notify_patron, date_action, service_point, source)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		entryID, tenant.FromContext(ctx), accountID, entry.PatronID,
		entry.Amount.String(), entry.Balance.String(), entry.Type, entry.Comments,
		entry.PaymentMethod, entry.TransactionInfo, entry.NotifyPatron,
		entry.Date.UTC(), entry.ServicePoint, entry.Source)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEntry
		}
		return err
	}
	return nil
}

// FindByAccount returns every entry recorded against the account.
func (s *PostgresStore) FindByAccount(ctx context.Context, accountID string) ([]Entry, error) {
	if accountID == "" {
		return nil, ErrEmptyAccountID
	}
	accID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, `SELECT id, account_id, patron_id, amount, balance, type,
        comments, payment_method, transaction_info, notify_patron, date_action, service_point, source
        FROM ledger_entries WHERE account_id = $1 AND tenant = $2`, accID, tenant.FromContext(ctx))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// FindRefundable returns the account's Pay and Transfer entries.
func (s *PostgresStore) FindRefundable(ctx context.Context, accountID string) ([]Entry, error) {
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

// FindCharge returns the account's original charge entry, if any.
func (s *PostgresStore) FindCharge(ctx context.Context, accountID string) (Entry, bool, error) {
	entries, err := s.FindByAccount(ctx, accountID)
	if err != nil {
		return Entry{}, false, err
	}
	charge, found := ChargeFor(entries)
	return charge, found, nil
}

func scanEntry(rows pgx.Rows) (Entry, error) {
	var e Entry
	var idVal, accountID uuid.UUID
	var amount, balance string
	var date time.Time
	if err := rows.Scan(&idVal, &accountID, &e.PatronID, &amount, &balance, &e.Type,
		&e.Comments, &e.PaymentMethod, &e.TransactionInfo, &e.NotifyPatron,
		&date, &e.ServicePoint, &e.Source); err != nil {
		return Entry{}, err
	}
	e.ID = idVal.String()
	e.AccountID = accountID.String()
	e.Date = date.UTC()

	var err error
	if e.Amount, err = money.FromString(amount); err != nil {
		return Entry{}, err
	}
	if e.Balance, err = money.FromString(balance); err != nil {
		return Entry{}, err
	}
	return e, nil
}
