package action

import (
	"github.com/patron-pay/patron_pay/internal/account"
	"github.com/patron-pay/patron_pay/internal/ledger"
	"github.com/patron-pay/patron_pay/internal/money"
)

// Context is the per-invocation state threaded through the pipeline stages.
// Each stage returns a new Context value instead of mutating a shared one,
// so a stage never observes a half-built view from another stage. A Context
// is owned by exactly one pipeline invocation.
type Context struct {
	// Request is the bulk action as received.
	Request BulkRequest
	// Accounts maps every requested identifier to its resolved account, or
	// to nil when the identifier was not found. Absent accounts are never
	// silently dropped.
	Accounts map[string]*account.Account
	// Ordered holds the resolved accounts in request order; the distributor
	// depends on this order for its deterministic penny tie-break.
	Ordered []*account.Account
	// RequestedAmount is the parsed and normalized amount, set by the
	// validation stage.
	RequestedAmount money.Value
	// Entries are the ledger entries produced by the allocation stage.
	Entries []ledger.Entry
}

// NewContext starts a pipeline context for one request.
func NewContext(req BulkRequest) Context {
	return Context{Request: req, Accounts: make(map[string]*account.Account)}
}

// WithAccounts returns a copy carrying the resolved account mapping.
func (c Context) WithAccounts(accounts map[string]*account.Account, ordered []*account.Account) Context {
	c.Accounts = accounts
	c.Ordered = ordered
	return c
}

// WithRequestedAmount returns a copy carrying the validated amount.
func (c Context) WithRequestedAmount(amount money.Value) Context {
	c.RequestedAmount = amount
	return c
}

// WithEntries returns a copy carrying the created ledger entries.
func (c Context) WithEntries(entries []ledger.Entry) Context {
	c.Entries = entries
	return c
}
