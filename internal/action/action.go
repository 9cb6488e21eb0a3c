package action

import "github.com/patron-pay/patron_pay/internal/ledger"

// Action identifies the kind of monetary action applied to fee/fine
// accounts. The full/partial result labels become the type of the ledger
// entries the action produces.
type Action string

const (
	Pay      Action = "pay"
	Waive    Action = "waive"
	Transfer Action = "transfer"
	Refund   Action = "refund"
	Cancel   Action = "cancel"
)

// FullResult is the entry type used when an action consumes the whole
// actionable amount of an account.
func (a Action) FullResult() string {
	switch a {
	case Pay:
		return ledger.TypePaidFully
	case Waive:
		return ledger.TypeWaivedFully
	case Transfer:
		return ledger.TypeTransferredFully
	case Refund:
		return ledger.TypeRefundedFully
	case Cancel:
		return ledger.TypeCancelled
	}
	return ""
}

// PartialResult is the entry type used when a positive balance remains.
func (a Action) PartialResult() string {
	switch a {
	case Pay:
		return ledger.TypePaidPartially
	case Waive:
		return ledger.TypeWaivedPartially
	case Transfer:
		return ledger.TypeTransferredPartially
	case Refund:
		return ledger.TypeRefundedPartially
	case Cancel:
		// cancellation is always total
		return ledger.TypeCancelled
	}
	return ""
}
