package action

import (
	"github.com/patron-pay/patron_pay/internal/account"
	"github.com/patron-pay/patron_pay/internal/money"
)

// SplitEvenlyRecursively distributes a requested total across accounts so
// that the allocations sum to the total exactly, subject to each account's
// actionable-amount cap.
//
// Each round divides the still-undistributed total evenly among the
// accounts still under their cap. Accounts whose even share would exceed
// their cap receive exactly the cap, and the unconsumed remainder is
// redistributed among the rest in the next round; every round therefore
// operates on a strictly smaller candidate set. Rounding residue from the
// even division is settled one cent at a time onto the first accounts in
// input order, which makes the tie-break deterministic and order-dependent.
//
// Upstream validation guarantees the caps cover the total; when they do not,
// each account simply receives its full cap.
type SplitEvenlyRecursively struct{}

// Split returns the per-account allocation for the requested total.
func (SplitEvenlyRecursively) Split(total money.Value, accounts []*account.Account,
	caps map[string]money.Value) map[string]money.Value {

	alloc := make(map[string]money.Value, len(accounts))
	ids := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		alloc[acc.ID] = money.Zero()
		ids = append(ids, acc.ID)
	}
	splitRound(total, ids, caps, alloc)
	return alloc
}

func splitRound(total money.Value, ids []string, caps map[string]money.Value,
	alloc map[string]money.Value) {

	if len(ids) == 0 || total.IsZero() || total.IsNegative() {
		return
	}

	share := total.DivideBy(int64(len(ids)))

	var capped, open []string
	for _, id := range ids {
		if share.IsGreaterThan(caps[id]) {
			capped = append(capped, id)
		} else {
			open = append(open, id)
		}
	}

	if len(capped) > 0 {
		remaining := total
		for _, id := range capped {
			alloc[id] = caps[id]
			remaining = remaining.Subtract(caps[id])
		}
		splitRound(remaining, open, caps, alloc)
		return
	}

	distributed := money.Zero()
	for _, id := range ids {
		alloc[id] = share
		distributed = distributed.Add(share)
	}

	settleResidue(total.Subtract(distributed), ids, caps, alloc)
}

// settleResidue moves the rounding difference between the even shares and
// the requested total onto the candidates, cent by cent from the first in
// input order, never pushing an allocation over its cap or below zero.
func settleResidue(residue money.Value, ids []string, caps map[string]money.Value,
	alloc map[string]money.Value) {

	cent := money.Cent()
	for !residue.IsZero() {
		progressed := false
		if residue.IsNegative() {
			// shares were rounded up; take the excess cents back from the
			// last accounts so the first keep their extra cent
			for i := len(ids) - 1; i >= 0 && !residue.IsZero(); i-- {
				id := ids[i]
				if alloc[id].IsZero() {
					continue
				}
				alloc[id] = alloc[id].Subtract(cent)
				residue = residue.Add(cent)
				progressed = true
			}
		} else {
			for _, id := range ids {
				if residue.IsZero() {
					return
				}
				if alloc[id].Add(cent).IsGreaterThan(caps[id]) {
					continue
				}
				alloc[id] = alloc[id].Add(cent)
				residue = residue.Subtract(cent)
				progressed = true
			}
		}
		if !progressed {
			// total exceeds the combined caps; everyone is full
			return
		}
	}
}
