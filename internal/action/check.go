package action

import (
	"context"
	"errors"

	"github.com/patron-pay/patron_pay/internal/account"
	"github.com/patron-pay/patron_pay/internal/ledger"
)

// CheckResult reports whether an action would pass validation against one
// account, without mutating anything. RemainingAmount is the actionable
// amount left if the action were applied.
type CheckResult struct {
	AccountID       string `json:"accountId"`
	Amount          string `json:"amount"`
	Allowed         bool   `json:"allowed"`
	RemainingAmount string `json:"remainingAmount,omitempty"`
	ErrorMessage    string `json:"errorMessage,omitempty"`
}

// CheckService runs the validation stage in isolation so clients can probe
// whether a pay, waive, transfer or refund of a given amount would be
// accepted before submitting it.
type CheckService struct {
	accounts  account.Repository
	validator Validator
}

// NewCheckService builds a check service for the given action type,
// selecting the same validator variant the bulk pipeline would use.
func NewCheckService(act Action, accounts account.Repository, entries ledger.Store) *CheckService {
	var validator Validator
	if act == Refund {
		validator = NewRefundValidator(entries)
	} else {
		validator = NewDefaultValidator()
	}
	return &CheckService{accounts: accounts, validator: validator}
}

// Check validates the amount against one account. Validation failures are
// folded into the result; only lookup and store errors are returned.
func (s *CheckService) Check(ctx context.Context, accountID, amount string) (CheckResult, error) {
	resolved, err := s.accounts.GetManyByIDWithMissing(ctx, []string{accountID})
	if err != nil {
		return CheckResult{}, err
	}

	result := CheckResult{AccountID: accountID, Amount: amount}

	requested, err := s.validator.Validate(ctx, resolved, amount)
	if err != nil {
		var validationErr *FailedValidationError
		if errors.As(err, &validationErr) {
			result.ErrorMessage = validationErr.Message
			return result, nil
		}
		return CheckResult{}, err
	}

	acc := resolved[accountID]
	remaining, err := s.validator.RemainingAfter(ctx, []*account.Account{acc}, requested)
	if err != nil {
		return CheckResult{}, err
	}

	result.Allowed = true
	result.RemainingAmount = remaining.String()
	return result, nil
}
