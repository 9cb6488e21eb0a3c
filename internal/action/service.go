package action

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/patron-pay/patron_pay/internal/account"
	"github.com/patron-pay/patron_pay/internal/ledger"
	"github.com/patron-pay/patron_pay/internal/money"
	"github.com/patron-pay/patron_pay/internal/notification"
)

// BulkService runs one action type through the five-stage pipeline:
// locate accounts, validate, allocate and record, persist, notify.
//
// Stages are separated by a global barrier: no stage starts for any account
// before the previous stage finished for all accounts in the request, so
// validation always sees the complete account set. Within the persist stage
// the per-account writes fan out independently; a failure there can leave a
// subset of sibling accounts already persisted. Concurrent bulk requests
// targeting overlapping accounts are not coordinated; callers retrying a
// failed request should use the Idempotency-Key surface.
type BulkService struct {
	action    Action
	accounts  account.Repository
	entries   ledger.Store
	validator Validator
	splitter  SplitEvenlyRecursively
	notifier  notification.Notifier
	logger    *slog.Logger
}

// NewBulkService wires a pipeline for the given action and validator.
func NewBulkService(act Action, accounts account.Repository, entries ledger.Store,
	validator Validator, notifier notification.Notifier, logger *slog.Logger) *BulkService {

	return &BulkService{
		action:    act,
		accounts:  accounts,
		entries:   entries,
		validator: validator,
		notifier:  notifier,
		logger:    logger,
	}
}

// NewBulkPayService builds the pipeline for bulk payments.
func NewBulkPayService(accounts account.Repository, entries ledger.Store,
	notifier notification.Notifier, logger *slog.Logger) *BulkService {
	return NewBulkService(Pay, accounts, entries, NewDefaultValidator(), notifier, logger)
}

// NewBulkWaiveService builds the pipeline for bulk waives.
func NewBulkWaiveService(accounts account.Repository, entries ledger.Store,
	notifier notification.Notifier, logger *slog.Logger) *BulkService {
	return NewBulkService(Waive, accounts, entries, NewDefaultValidator(), notifier, logger)
}

// NewBulkTransferService builds the pipeline for bulk transfers.
func NewBulkTransferService(accounts account.Repository, entries ledger.Store,
	notifier notification.Notifier, logger *slog.Logger) *BulkService {
	return NewBulkService(Transfer, accounts, entries, NewDefaultValidator(), notifier, logger)
}

// NewBulkRefundService builds the pipeline for bulk refunds. The refund
// validator reads the ledger history instead of the live balances.
func NewBulkRefundService(accounts account.Repository, entries ledger.Store,
	notifier notification.Notifier, logger *slog.Logger) *BulkService {
	return NewBulkService(Refund, accounts, entries, NewRefundValidator(entries), notifier, logger)
}

// Perform executes the pipeline for one request. A failure in any stage
// halts the pipeline and is returned directly; notification failures are
// the one exception, they are logged and never surfaced.
func (s *BulkService) Perform(ctx context.Context, req BulkRequest) (Context, error) {
	pc := NewContext(req)

	pc, err := s.findAccounts(ctx, pc)
	if err != nil {
		return pc, err
	}
	pc, err = s.validate(ctx, pc)
	if err != nil {
		return pc, err
	}
	pc, err = s.allocateAndRecord(ctx, pc)
	if err != nil {
		return pc, err
	}
	pc, err = s.persist(ctx, pc)
	if err != nil {
		return pc, err
	}
	s.notify(ctx, pc)
	return pc, nil
}

// findAccounts resolves every requested identifier, keeping absent ones as
// explicit nil markers so validation can report not-found instead of
// silently operating on fewer accounts.
func (s *BulkService) findAccounts(ctx context.Context, pc Context) (Context, error) {
	resolved, err := s.accounts.GetManyByIDWithMissing(ctx, pc.Request.AccountIDs)
	if err != nil {
		return pc, fmt.Errorf("find accounts: %w", err)
	}

	ordered := make([]*account.Account, 0, len(pc.Request.AccountIDs))
	for _, id := range pc.Request.AccountIDs {
		if acc := resolved[id]; acc != nil {
			ordered = append(ordered, acc)
		}
	}
	return pc.WithAccounts(resolved, ordered), nil
}

func (s *BulkService) validate(ctx context.Context, pc Context) (Context, error) {
	requested, err := s.validator.Validate(ctx, pc.Accounts, pc.Request.Amount)
	if err != nil {
		return pc, err
	}
	return pc.WithRequestedAmount(requested), nil
}

// allocateAndRecord distributes the requested amount, builds one ledger
// entry per account and applies the balance/status transition in memory.
// The entry's balance field and the account mutation are computed together
// so they always agree.
func (s *BulkService) allocateAndRecord(ctx context.Context, pc Context) (Context, error) {
	capValues := make([]money.Value, len(pc.Ordered))

	g, gctx := errgroup.WithContext(ctx)
	for i, acc := range pc.Ordered {
		i, acc := i, acc
		g.Go(func() error {
			actionable, err := s.validator.ActionableAmount(gctx, acc)
			if err != nil {
				return fmt.Errorf("actionable amount for account %s: %w", acc.ID, err)
			}
			capValues[i] = actionable
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return pc, err
	}

	caps := make(map[string]money.Value, len(pc.Ordered))
	for i, acc := range pc.Ordered {
		caps[acc.ID] = capValues[i]
	}

	distributed := s.splitter.Split(pc.RequestedAmount, pc.Ordered, caps)

	now := time.Now().UTC()
	entries := make([]ledger.Entry, 0, len(pc.Ordered))
	for _, acc := range pc.Ordered {
		allocated := distributed[acc.ID]
		// The base is the live remaining balance for default actions and the
		// refundable history sum for refunds, so the resulting balance can
		// never go negative for either variant.
		after := caps[acc.ID].Subtract(allocated)

		label := s.action.PartialResult()
		if after.IsZero() {
			label = s.action.FullResult()
		}

		entries = append(entries, ledger.Entry{
			ID:              uuid.NewString(),
			AccountID:       acc.ID,
			PatronID:        acc.PatronID,
			Amount:          allocated,
			Balance:         after,
			Type:            label,
			Comments:        pc.Request.Comments,
			PaymentMethod:   pc.Request.PaymentMethod,
			TransactionInfo: pc.Request.TransactionInfo,
			NotifyPatron:    pc.Request.NotifyPatron,
			Date:            now,
			ServicePoint:    pc.Request.ServicePointID,
			Source:          pc.Request.UserName,
		})

		if s.action == Refund {
			// Refunds settle against history, not the live balance: the
			// account keeps its remaining amount and closed status, only the
			// payment-status label records the refund.
			acc.PaymentStatus = label
		} else {
			acc.ApplyAction(allocated, label)
		}
	}
	return pc.WithEntries(entries), nil
}

// persist appends the ledger entries and then updates the mutated accounts.
// Within each set the per-account writes run concurrently and join before
// the stage completes; there is no cross-account atomicity.
func (s *BulkService) persist(ctx context.Context, pc Context) (Context, error) {
	g, gctx := errgroup.WithContext(ctx)
	for _, entry := range pc.Entries {
		entry := entry
		g.Go(func() error {
			return s.entries.Append(gctx, entry)
		})
	}
	if err := g.Wait(); err != nil {
		return pc, fmt.Errorf("append ledger entries: %w", err)
	}

	g, gctx = errgroup.WithContext(ctx)
	for _, acc := range pc.Ordered {
		acc := acc
		g.Go(func() error {
			return s.accounts.Update(gctx, *acc)
		})
	}
	if err := g.Wait(); err != nil {
		return pc, fmt.Errorf("update accounts: %w", err)
	}
	return pc, nil
}

// notify dispatches one patron notice per created entry when requested.
// Already-committed financial state is never discarded over a notice, so
// errors are logged and swallowed.
func (s *BulkService) notify(ctx context.Context, pc Context) {
	if !pc.Request.NotifyPatron || s.notifier == nil {
		return
	}
	for _, entry := range pc.Entries {
		err := s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindFeeFineAction,
			Destination: entry.PatronID,
			Body: fmt.Sprintf("%s: %s applied to fee/fine %s, balance %s",
				entry.Type, entry.Amount, entry.AccountID, entry.Balance),
		})
		if err != nil {
			s.logger.Warn("patron notice failed",
				"entry_id", entry.ID, "account_id", entry.AccountID, "error", err)
		}
	}
}
