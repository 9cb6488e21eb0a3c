package account

import (
	"time"

	"github.com/patron-pay/patron_pay/internal/money"
)

// Fee/fine account statuses.
const (
	StatusOpen   = "Open"
	StatusClosed = "Closed"
)

// Account represents one patron's outstanding fee/fine obligation.
//
// Remaining is always non-negative. An account whose remaining balance hits
// exactly zero as the result of an action transitions to Closed; an account
// is never closed by an action while a positive balance remains.
type Account struct {
	ID            string      `json:"id"`
	PatronID      string      `json:"patronId"`
	FeeFineType   string      `json:"feeFineType"`
	Amount        money.Value `json:"amount"`
	Remaining     money.Value `json:"remaining"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// IsClosed reports whether the account has been closed.
func (a *Account) IsClosed() bool {
	return a.Status == StatusClosed
}

// ApplyAction reduces the remaining balance by the allocated amount and
// records the resulting action label. A zero result closes the account with
// the balance forced to exactly zero.
func (a *Account) ApplyAction(allocated money.Value, actionLabel string) {
	after := a.Remaining.Subtract(allocated)
	a.PaymentStatus = actionLabel
	if after.IsZero() {
		a.Status = StatusClosed
		a.Remaining = money.Zero()
		return
	}
	a.Remaining = after
}
