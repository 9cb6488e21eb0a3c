package charge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/patron-pay/patron_pay/internal/account"
	"github.com/patron-pay/patron_pay/internal/ledger"
	"github.com/patron-pay/patron_pay/internal/money"
	"github.com/patron-pay/patron_pay/internal/notification"
	"github.com/patron-pay/patron_pay/internal/patron"
)

// Service creates fee/fine charges: the account that tracks the obligation
// plus the initial charge entry in the ledger. The charge entry's type is
// the fee/fine type name, which is how later queries tell charges apart
// from action results.
type Service struct {
	accounts account.Repository
	entries  ledger.Store
	patrons  patron.Repository
	notifier notification.Notifier
}

// NewService constructs a charge service.
func NewService(accounts account.Repository, entries ledger.Store,
	patrons patron.Repository, notifier notification.Notifier) *Service {
	return &Service{accounts: accounts, entries: entries, patrons: patrons, notifier: notifier}
}

// Input captures the data needed to charge a fee/fine to a patron.
type Input struct {
	PatronID       string `json:"patronId"`
	FeeFineType    string `json:"feeFineType"`
	Amount         string `json:"amount"`
	Comments       string `json:"comments,omitempty"`
	NotifyPatron   bool   `json:"notifyPatron"`
	ServicePointID string `json:"servicePointId,omitempty"`
	UserName       string `json:"userName,omitempty"`
}

// Result describes the created account and its charge entry.
type Result struct {
	Account account.Account `json:"account"`
	Entry   ledger.Entry    `json:"feeFineAction"`
}

// Charge opens a fee/fine account and records its charge entry.
func (s *Service) Charge(ctx context.Context, input Input) (Result, error) {
	if input.FeeFineType == "" {
		return Result{}, fmt.Errorf("fee/fine type is required")
	}
	amount, err := money.FromString(input.Amount)
	if err != nil {
		return Result{}, err
	}
	if amount.IsZero() || amount.IsNegative() {
		return Result{}, fmt.Errorf("amount must be positive")
	}

	if _, err := s.patrons.GetByID(ctx, input.PatronID); err != nil {
		return Result{}, err
	}

	now := time.Now().UTC()
	acc := account.Account{
		ID:            uuid.NewString(),
		PatronID:      input.PatronID,
		FeeFineType:   input.FeeFineType,
		Amount:        amount,
		Remaining:     amount,
		Status:        account.StatusOpen,
		PaymentStatus: "Outstanding",
		CreatedAt:     now,
	}

	entry := ledger.Entry{
		ID:           uuid.NewString(),
		AccountID:    acc.ID,
		PatronID:     input.PatronID,
		Amount:       amount,
		Balance:      amount,
		Type:         input.FeeFineType,
		Comments:     input.Comments,
		NotifyPatron: input.NotifyPatron,
		Date:         now,
		ServicePoint: input.ServicePointID,
		Source:       input.UserName,
	}

	if err := s.accounts.Create(ctx, acc); err != nil {
		return Result{}, err
	}
	if err := s.entries.Append(ctx, entry); err != nil {
		return Result{}, err
	}

	if input.NotifyPatron && s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindFeeFineCharge,
			Destination: input.PatronID,
			Body:        fmt.Sprintf("%s charged: %s", input.FeeFineType, amount),
		})
	}

	return Result{Account: acc, Entry: entry}, nil
}
