package action

import (
	"testing"

	"github.com/google/uuid"

	"github.com/patron-pay/patron_pay/internal/account"
	"github.com/patron-pay/patron_pay/internal/money"
)

func amount(t *testing.T, s string) money.Value {
	t.Helper()
	v, err := money.FromString(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func splitFixture(t *testing.T, remainings ...string) ([]*account.Account, map[string]money.Value) {
	t.Helper()
	accounts := make([]*account.Account, 0, len(remainings))
	caps := make(map[string]money.Value, len(remainings))
	for _, r := range remainings {
		acc := &account.Account{ID: uuid.NewString(), Remaining: amount(t, r), Status: account.StatusOpen}
		accounts = append(accounts, acc)
		caps[acc.ID] = acc.Remaining
	}
	return accounts, caps
}

func assertSumEqualsTotal(t *testing.T, alloc map[string]money.Value, total money.Value) {
	t.Helper()
	sum := money.Zero()
	for _, v := range alloc {
		sum = sum.Add(v)
	}
	if !sum.Equals(total) {
		t.Fatalf("allocations sum to %s, want %s", sum, total)
	}
}

func TestSplitSingleAccountGetsFullAmount(t *testing.T) {
	accounts, caps := splitFixture(t, "4.55")

	alloc := SplitEvenlyRecursively{}.Split(amount(t, "1.23"), accounts, caps)

	if got := alloc[accounts[0].ID]; !got.Equals(amount(t, "1.23")) {
		t.Fatalf("allocated %s, want 1.23", got)
	}
}

func TestSplitEvenAcrossUncappedAccounts(t *testing.T) {
	accounts, caps := splitFixture(t, "10.00", "10.00")
	total := amount(t, "5.00")

	alloc := SplitEvenlyRecursively{}.Split(total, accounts, caps)

	for _, acc := range accounts {
		if !alloc[acc.ID].Equals(amount(t, "2.50")) {
			t.Fatalf("allocated %s to %s, want 2.50", alloc[acc.ID], acc.ID)
		}
	}
	assertSumEqualsTotal(t, alloc, total)
}

func TestSplitRedistributesCappedRemainder(t *testing.T) {
	// First account caps at 2.00; its unconsumed share moves to the second.
	accounts, caps := splitFixture(t, "2.00", "3.00")
	total := amount(t, "4.00")

	alloc := SplitEvenlyRecursively{}.Split(total, accounts, caps)

	if !alloc[accounts[0].ID].Equals(amount(t, "2.00")) {
		t.Fatalf("first account allocated %s, want 2.00", alloc[accounts[0].ID])
	}
	if !alloc[accounts[1].ID].Equals(amount(t, "2.00")) {
		t.Fatalf("second account allocated %s, want 2.00", alloc[accounts[1].ID])
	}
	assertSumEqualsTotal(t, alloc, total)
}

func TestSplitCascadesThroughMultipleRounds(t *testing.T) {
	accounts, caps := splitFixture(t, "1.00", "2.00", "9.00")
	total := amount(t, "9.00")

	alloc := SplitEvenlyRecursively{}.Split(total, accounts, caps)

	if !alloc[accounts[0].ID].Equals(amount(t, "1.00")) {
		t.Fatalf("first account allocated %s, want 1.00", alloc[accounts[0].ID])
	}
	if !alloc[accounts[1].ID].Equals(amount(t, "2.00")) {
		t.Fatalf("second account allocated %s, want 2.00", alloc[accounts[1].ID])
	}
	if !alloc[accounts[2].ID].Equals(amount(t, "6.00")) {
		t.Fatalf("third account allocated %s, want 6.00", alloc[accounts[2].ID])
	}
	assertSumEqualsTotal(t, alloc, total)
}

func TestSplitResidualPennyGoesToFirstInOrder(t *testing.T) {
	accounts, caps := splitFixture(t, "5.00", "5.00", "5.00")
	total := amount(t, "1.00")

	alloc := SplitEvenlyRecursively{}.Split(total, accounts, caps)

	// 1.00/3 rounds to 0.33 each; the spare cent lands on the first account.
	if !alloc[accounts[0].ID].Equals(amount(t, "0.34")) {
		t.Fatalf("first account allocated %s, want 0.34", alloc[accounts[0].ID])
	}
	if !alloc[accounts[1].ID].Equals(amount(t, "0.33")) {
		t.Fatalf("second account allocated %s, want 0.33", alloc[accounts[1].ID])
	}
	if !alloc[accounts[2].ID].Equals(amount(t, "0.33")) {
		t.Fatalf("third account allocated %s, want 0.33", alloc[accounts[2].ID])
	}
	assertSumEqualsTotal(t, alloc, total)
}

func TestSplitRoundedUpShareReturnsExcessCents(t *testing.T) {
	// 1.00/6 rounds up to 0.17 each = 1.02; two cents come back off the
	// last accounts so the first in input order keep the extra.
	accounts, caps := splitFixture(t, "5.00", "5.00", "5.00", "5.00", "5.00", "5.00")
	total := amount(t, "1.00")

	alloc := SplitEvenlyRecursively{}.Split(total, accounts, caps)
	assertSumEqualsTotal(t, alloc, total)

	if !alloc[accounts[0].ID].Equals(amount(t, "0.17")) {
		t.Fatalf("first account allocated %s, want 0.17", alloc[accounts[0].ID])
	}
	if !alloc[accounts[4].ID].Equals(amount(t, "0.16")) {
		t.Fatalf("fifth account allocated %s, want 0.16", alloc[accounts[4].ID])
	}
	if !alloc[accounts[5].ID].Equals(amount(t, "0.16")) {
		t.Fatalf("last account allocated %s, want 0.16", alloc[accounts[5].ID])
	}
}

func TestSplitDeterministicAcrossRuns(t *testing.T) {
	accounts, caps := splitFixture(t, "5.00", "5.00", "5.00")
	total := amount(t, "1.00")

	first := SplitEvenlyRecursively{}.Split(total, accounts, caps)
	for i := 0; i < 10; i++ {
		again := SplitEvenlyRecursively{}.Split(total, accounts, caps)
		for id, v := range first {
			if !again[id].Equals(v) {
				t.Fatalf("run %d: allocation for %s changed from %s to %s", i, id, v, again[id])
			}
		}
	}
}

func TestSplitCapsShortOfTotalConsumesAllCaps(t *testing.T) {
	// Upstream validation would reject this; the distributor still hands
	// out every cap without looping.
	accounts, caps := splitFixture(t, "1.00", "2.00")

	alloc := SplitEvenlyRecursively{}.Split(amount(t, "5.00"), accounts, caps)

	if !alloc[accounts[0].ID].Equals(amount(t, "1.00")) {
		t.Fatalf("first account allocated %s, want its 1.00 cap", alloc[accounts[0].ID])
	}
	if !alloc[accounts[1].ID].Equals(amount(t, "2.00")) {
		t.Fatalf("second account allocated %s, want its 2.00 cap", alloc[accounts[1].ID])
	}
}

func TestSplitTinyTotalManyAccounts(t *testing.T) {
	accounts, caps := splitFixture(t, "1.00", "1.00", "1.00", "1.00", "1.00")
	total := amount(t, "0.03")

	alloc := SplitEvenlyRecursively{}.Split(total, accounts, caps)
	assertSumEqualsTotal(t, alloc, total)

	// Cents go to the first accounts in input order.
	for i, want := range []string{"0.01", "0.01", "0.01", "0.00", "0.00"} {
		if !alloc[accounts[i].ID].Equals(amount(t, want)) {
			t.Fatalf("account %d allocated %s, want %s", i, alloc[accounts[i].ID], want)
		}
	}
}
