package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/patron-pay/patron_pay/internal/money"
)

var (
	// ErrDuplicateEntry indicates an entry with the same identifier was
	// already appended. Entry IDs are generated by the orchestrator and must
	// be globally unique.
	ErrDuplicateEntry = errors.New("duplicate ledger entry")

	// ErrEmptyAccountID signals a caller contract violation: queries require
	// a non-empty account identifier.
	ErrEmptyAccountID = errors.New("account id is empty")
)

// Result labels actions write as the entry type. A charge entry instead
// carries the fee/fine type name, so anything outside this set is a charge.
const (
	TypePaidFully            = "Paid fully"
	TypePaidPartially        = "Paid partially"
	TypeWaivedFully          = "Waived fully"
	TypeWaivedPartially      = "Waived partially"
	TypeTransferredFully     = "Transferred fully"
	TypeTransferredPartially = "Transferred partially"
	TypeRefundedFully        = "Refunded fully"
	TypeRefundedPartially    = "Refunded partially"
	TypeCancelled            = "Cancelled as error"
)

// Entry is an immutable record of one monetary movement against an account.
// Amount and Balance are computed together at creation time and never
// recomputed.
type Entry struct {
	ID              string      `json:"id"`
	AccountID       string      `json:"accountId"`
	PatronID        string      `json:"patronId"`
	Amount          money.Value `json:"amountAction"`
	Balance         money.Value `json:"balance"`
	Type            string      `json:"typeAction"`
	Comments        string      `json:"comments,omitempty"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	TransactionInfo string      `json:"transactionInformation,omitempty"`
	NotifyPatron    bool        `json:"notify"`
	Date            time.Time   `json:"dateAction"`
	ServicePoint    string      `json:"createdAt,omitempty"`
	Source          string      `json:"source,omitempty"`
}

var resultTypes = map[string]bool{
	TypePaidFully:            true,
	TypePaidPartially:        true,
	TypeWaivedFully:          true,
	TypeWaivedPartially:      true,
	TypeTransferredFully:     true,
	TypeTransferredPartially: true,
	TypeRefundedFully:        true,
	TypeRefundedPartially:    true,
	TypeCancelled:            true,
}

// IsRefundable reports whether the entry counts toward the refundable total
// of its account: money that actually came in via a payment or transfer.
func (e Entry) IsRefundable() bool {
	switch e.Type {
	case TypePaidFully, TypePaidPartially, TypeTransferredFully, TypeTransferredPartially:
		return true
	}
	return false
}

// IsCharge reports whether the entry represents the original charge rather
// than the result of an action.
func (e Entry) IsCharge() bool {
	return !resultTypes[e.Type]
}

// Store is the durable append-only record of ledger entries.
type Store interface {
	// Append stores one entry keyed by its identifier; appending the same
	// identifier twice fails with ErrDuplicateEntry.
	Append(ctx context.Context, entry Entry) error
	// FindByAccount returns all entries for the account in no guaranteed
	// order. An empty account id fails with ErrEmptyAccountID.
	FindByAccount(ctx context.Context, accountID string) ([]Entry, error)
	// FindRefundable returns the account's entries of type Pay or Transfer.
	FindRefundable(ctx context.Context, accountID string) ([]Entry, error)
	// FindCharge returns the entry representing the original charge. When
	// multiple qualify the one with the earliest date wins (ties broken by
	// ID ordering). Returns found=false when the account has no charge.
	FindCharge(ctx context.Context, accountID string) (Entry, bool, error)
}

// ChargeFor picks the charge entry out of a slice using the deterministic
// earliest-date rule shared by all Store implementations.
func ChargeFor(entries []Entry) (Entry, bool) {
	var charge Entry
	found := false
	for _, e := range entries {
		if !e.IsCharge() {
			continue
		}
		if !found || e.Date.Before(charge.Date) ||
			(e.Date.Equal(charge.Date) && e.ID < charge.ID) {
			charge = e
			found = true
		}
	}
	return charge, found
}
