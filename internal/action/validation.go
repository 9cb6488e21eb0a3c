package action

import (
	"context"

	"github.com/patron-pay/patron_pay/internal/account"
	"github.com/patron-pay/patron_pay/internal/ledger"
	"github.com/patron-pay/patron_pay/internal/money"
)

// Validator gates the pipeline before any mutation. The variant is chosen
// at service construction time from the action type: refunds use history
// where every other action uses the live balance.
type Validator interface {
	// Validate runs the business-rule checks against the resolved account
	// set and the raw amount text, returning the parsed amount on success.
	Validate(ctx context.Context, accounts map[string]*account.Account, amount string) (money.Value, error)
	// ActionableAmount is the cap on how much may be applied to one account.
	ActionableAmount(ctx context.Context, acc *account.Account) (money.Value, error)
	// RemainingAfter reports the combined actionable amount left once the
	// requested amount has been applied. Used by the check endpoints.
	RemainingAfter(ctx context.Context, accounts []*account.Account, requested money.Value) (money.Value, error)
}

// parseAndCheckAccounts runs the checks shared by all variants, in order,
// short-circuiting on the first failure: amount parses, amount is strictly
// positive, and every requested account was resolved.
func parseAndCheckAccounts(accounts map[string]*account.Account, amount string) (money.Value, error) {
	requested, err := money.FromString(amount)
	if err != nil {
		return money.Value{}, failValidation(msgInvalidAmount)
	}
	if requested.IsZero() || requested.IsNegative() {
		return money.Value{}, failValidation(msgAmountNotPositive)
	}
	if len(accounts) == 0 {
		return money.Value{}, ErrAccountNotFound
	}
	for _, acc := range accounts {
		if acc == nil {
			return money.Value{}, ErrAccountNotFound
		}
	}
	return requested, nil
}

// DefaultValidator applies to pay, waive and transfer: closed accounts are
// rejected and the ceiling is the sum of the live remaining balances.
type DefaultValidator struct{}

// NewDefaultValidator builds the validator variant for pay/waive/transfer.
func NewDefaultValidator() *DefaultValidator {
	return &DefaultValidator{}
}

func (v *DefaultValidator) Validate(ctx context.Context, accounts map[string]*account.Account,
	amount string) (money.Value, error) {

	requested, err := parseAndCheckAccounts(accounts, amount)
	if err != nil {
		return money.Value{}, err
	}

	total := money.Zero()
	for _, acc := range accounts {
		if acc.IsClosed() {
			return money.Value{}, failValidation(msgAlreadyClosed)
		}
		total = total.Add(acc.Remaining)
	}
	if requested.IsGreaterThan(total) {
		return money.Value{}, failValidation(msgExceedsRemaining)
	}
	return requested, nil
}

func (v *DefaultValidator) ActionableAmount(_ context.Context, acc *account.Account) (money.Value, error) {
	return acc.Remaining, nil
}

func (v *DefaultValidator) RemainingAfter(_ context.Context, accounts []*account.Account,
	requested money.Value) (money.Value, error) {

	total := money.Zero()
	for _, acc := range accounts {
		total = total.Add(acc.Remaining)
	}
	return total.Subtract(requested), nil
}

// RefundValidator applies to refunds: account status is ignored because a
// closed fee/fine can still be refunded, and the ceiling is the sum of the
// historical Pay and Transfer entries rather than the live balance.
type RefundValidator struct {
	entries ledger.Store
}

// NewRefundValidator builds the refund validator over the ledger history.
func NewRefundValidator(entries ledger.Store) *RefundValidator {
	return &RefundValidator{entries: entries}
}

func (v *RefundValidator) Validate(ctx context.Context, accounts map[string]*account.Account,
	amount string) (money.Value, error) {

	requested, err := parseAndCheckAccounts(accounts, amount)
	if err != nil {
		return money.Value{}, err
	}

	total := money.Zero()
	for _, acc := range accounts {
		refundable, err := v.ActionableAmount(ctx, acc)
		if err != nil {
			return money.Value{}, err
		}
		total = total.Add(refundable)
	}
	if requested.IsGreaterThan(total) {
		return money.Value{}, failValidation(msgExceedsRefundable)
	}
	return requested, nil
}

func (v *RefundValidator) ActionableAmount(ctx context.Context, acc *account.Account) (money.Value, error) {
	refundable, err := v.entries.FindRefundable(ctx, acc.ID)
	if err != nil {
		return money.Value{}, err
	}
	total := money.Zero()
	for _, e := range refundable {
		total = total.Add(e.Amount)
	}
	return total, nil
}

func (v *RefundValidator) RemainingAfter(ctx context.Context, accounts []*account.Account,
	requested money.Value) (money.Value, error) {

	total := money.Zero()
	for _, acc := range accounts {
		refundable, err := v.ActionableAmount(ctx, acc)
		if err != nil {
			return money.Value{}, err
		}
		total = total.Add(refundable)
	}
	return total.Subtract(requested), nil
}
