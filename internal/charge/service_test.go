package charge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/patron-pay/patron_pay/internal/account"
	"github.com/patron-pay/patron_pay/internal/ledger"
	"github.com/patron-pay/patron_pay/internal/patron"
)

func seedPatron(t *testing.T, repo patron.Repository) patron.Patron {
	t.Helper()
	p := patron.Patron{
		ID:        uuid.NewString(),
		Barcode:   "100200300",
		Name:      "Ada Lovelace",
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed patron: %v", err)
	}
	return p
}

func TestChargeCreatesAccountAndEntry(t *testing.T) {
	accounts := account.NewMemoryRepository()
	entries := ledger.NewInMemory()
	patrons := patron.NewMemoryRepository()
	p := seedPatron(t, patrons)

	svc := NewService(accounts, entries, patrons, nil)
	ctx := context.Background()

	result, err := svc.Charge(ctx, Input{
		PatronID:    p.ID,
		FeeFineType: "Lost item fee",
		Amount:      "12.50",
	})
	if err != nil {
		t.Fatalf("charge: %v", err)
	}

	acc := result.Account
	if acc.Status != account.StatusOpen {
		t.Fatalf("new account status = %s, want %s", acc.Status, account.StatusOpen)
	}
	if acc.PaymentStatus != "Outstanding" {
		t.Fatalf("payment status = %s, want Outstanding", acc.PaymentStatus)
	}
	if !acc.Remaining.Equals(acc.Amount) {
		t.Fatalf("remaining %s must equal amount %s on creation", acc.Remaining, acc.Amount)
	}

	persisted, err := accounts.GetByID(ctx, acc.ID)
	if err != nil {
		t.Fatalf("account not persisted: %v", err)
	}
	if persisted.FeeFineType != "Lost item fee" {
		t.Fatalf("fee/fine type = %s", persisted.FeeFineType)
	}

	charge, found, err := entries.FindCharge(ctx, acc.ID)
	if err != nil {
		t.Fatalf("find charge: %v", err)
	}
	if !found {
		t.Fatalf("charge entry not persisted")
	}
	if charge.Type != "Lost item fee" {
		t.Fatalf("charge entry type = %s, want the fee/fine type name", charge.Type)
	}
	if !charge.Balance.Equals(acc.Amount) {
		t.Fatalf("charge balance = %s, want %s", charge.Balance, acc.Amount)
	}
}

func TestChargeRejectsBadInput(t *testing.T) {
	patrons := patron.NewMemoryRepository()
	p := seedPatron(t, patrons)
	svc := NewService(account.NewMemoryRepository(), ledger.NewInMemory(), patrons, nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		input Input
	}{
		{"missing type", Input{PatronID: p.ID, Amount: "1.00"}},
		{"zero amount", Input{PatronID: p.ID, FeeFineType: "Overdue fine", Amount: "0.00"}},
		{"negative amount", Input{PatronID: p.ID, FeeFineType: "Overdue fine", Amount: "-1.00"}},
		{"malformed amount", Input{PatronID: p.ID, FeeFineType: "Overdue fine", Amount: "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Charge(ctx, tc.input); err == nil {
				t.Fatalf("expected rejection")
			}
		})
	}
}

func TestChargeUnknownPatron(t *testing.T) {
	svc := NewService(account.NewMemoryRepository(), ledger.NewInMemory(),
		patron.NewMemoryRepository(), nil)

	_, err := svc.Charge(context.Background(), Input{
		PatronID:    uuid.NewString(),
		FeeFineType: "Overdue fine",
		Amount:      "1.00",
	})
	if !errors.Is(err, patron.ErrNotFound) {
		t.Fatalf("expected patron.ErrNotFound, got %v", err)
	}
}
