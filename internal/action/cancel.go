package action

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/patron-pay/patron_pay/internal/account"
	"github.com/patron-pay/patron_pay/internal/ledger"
	"github.com/patron-pay/patron_pay/internal/notification"
)

// CancelRequest carries the metadata for cancelling a fee/fine as an error.
// There is no amount: cancellation always consumes the full remaining
// balance of the account.
type CancelRequest struct {
	Comments       string `json:"comments,omitempty"`
	NotifyPatron   bool   `json:"notifyPatron"`
	ServicePointID string `json:"servicePointId,omitempty"`
	UserName       string `json:"userName,omitempty"`
}

// CancelService voids a fee/fine that was charged in error. It reuses the
// bulk pipeline with the account's full remaining balance as the amount, so
// the account always closes and the entry is labelled accordingly.
type CancelService struct {
	accounts account.Repository
	bulk     *BulkService
}

// NewCancelService builds the cancellation pipeline.
func NewCancelService(accounts account.Repository, entries ledger.Store,
	notifier notification.Notifier, logger *slog.Logger) *CancelService {

	return &CancelService{
		accounts: accounts,
		bulk:     NewBulkService(Cancel, accounts, entries, NewDefaultValidator(), notifier, logger),
	}
}

// Cancel voids the account's remaining balance. Closed accounts are
// rejected the same way any other default-validated action rejects them.
func (s *CancelService) Cancel(ctx context.Context, accountID string, req CancelRequest) (Context, error) {
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return Context{}, ErrAccountNotFound
		}
		return Context{}, err
	}
	// Checked here because the derived amount is the zero balance itself,
	// which would otherwise trip the positivity check first.
	if acc.IsClosed() {
		return Context{}, failValidation(msgAlreadyClosed)
	}

	return s.bulk.Perform(ctx, BulkRequest{
		AccountIDs:     []string{accountID},
		Amount:         acc.Remaining.String(),
		Comments:       req.Comments,
		NotifyPatron:   req.NotifyPatron,
		ServicePointID: req.ServicePointID,
		UserName:       req.UserName,
	})
}

// CancelHandler exposes the cancellation endpoint.
type CancelHandler struct {
	service *CancelService
}

// NewCancelHandler constructs a cancellation handler.
func NewCancelHandler(service *CancelService) *CancelHandler {
	return &CancelHandler{service: service}
}

// Cancel voids the fee/fine account named in the URL path.
func (h *CancelHandler) Cancel(c *fiber.Ctx) error {
	var req CancelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	pc, err := h.service.Cancel(c.UserContext(), c.Params("id"), req)
	if err != nil {
		failure := failureResponse{
			AccountIDs:   []string{c.Params("id")},
			Amount:       pc.Request.Amount,
			ErrorMessage: err.Error(),
		}
		var validationErr *FailedValidationError
		switch {
		case errors.Is(err, ErrAccountNotFound):
			return c.Status(http.StatusNotFound).JSON(failure)
		case errors.As(err, &validationErr):
			return c.Status(http.StatusUnprocessableEntity).JSON(failure)
		default:
			return c.Status(http.StatusInternalServerError).JSON(failure)
		}
	}

	accounts := make([]account.Account, 0, len(pc.Ordered))
	for _, acc := range pc.Ordered {
		accounts = append(accounts, *acc)
	}
	return c.Status(http.StatusCreated).JSON(bulkResponse{
		Accounts:        accounts,
		FeeFineActions:  pc.Entries,
		RequestedAmount: pc.RequestedAmount.String(),
	})
}
