package action

import "errors"

// ErrAccountNotFound indicates one or more requested accounts do not exist.
// It maps to a resource-missing outcome, distinct from validation failure.
var ErrAccountNotFound = errors.New("fee/fine account not found")

// FailedValidationError reports a business-rule rejection. No mutation has
// occurred when one is returned; the original requested-amount text is
// echoed back by the transport layer.
type FailedValidationError struct {
	Message string
}

func (e *FailedValidationError) Error() string {
	return e.Message
}

func failValidation(message string) error {
	return &FailedValidationError{Message: message}
}

// Validation failure messages.
const (
	msgInvalidAmount     = "Invalid amount entered"
	msgAmountNotPositive = "Amount must be positive"
	msgAlreadyClosed     = "Fee/fine is already closed"
	msgExceedsRemaining  = "Requested amount exceeds remaining amount"
	msgExceedsRefundable = "Refund amount must be greater than zero and less than or equal to Selected amount"
)
