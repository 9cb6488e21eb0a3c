package action

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/patron-pay/patron_pay/internal/account"
	"github.com/patron-pay/patron_pay/internal/ledger"
)

// Handler exposes the bulk and single-account action endpoints for one
// action type.
type Handler struct {
	service *BulkService
	checks  *CheckService
}

// NewHandler constructs an action handler.
func NewHandler(service *BulkService, checks *CheckService) *Handler {
	return &Handler{service: service, checks: checks}
}

type bulkResponse struct {
	Accounts        []account.Account `json:"accounts"`
	FeeFineActions  []ledger.Entry    `json:"feeFineActions"`
	RequestedAmount string            `json:"amount"`
}

type failureResponse struct {
	AccountIDs   []string `json:"accountIds"`
	Amount       string   `json:"amount"`
	ErrorMessage string   `json:"errorMessage"`
}

// Bulk processes an action across the accounts named in the request body.
func (h *Handler) Bulk(c *fiber.Ctx) error {
	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return h.perform(c, req)
}

// Single processes an action against the one account in the URL path. It is
// the same pipeline with a single-element account list.
func (h *Handler) Single(c *fiber.Ctx) error {
	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	req.AccountIDs = []string{c.Params("id")}
	return h.perform(c, req)
}

// Check validates the amount against the account in the URL path without
// applying anything.
func (h *Handler) Check(c *fiber.Ctx) error {
	var req struct {
		Amount string `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	result, err := h.checks.Check(c.UserContext(), c.Params("id"), req.Amount)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if !result.Allowed {
		return c.Status(http.StatusUnprocessableEntity).JSON(result)
	}
	return c.Status(http.StatusOK).JSON(result)
}

func (h *Handler) perform(c *fiber.Ctx, req BulkRequest) error {
	pc, err := h.service.Perform(c.UserContext(), req)
	if err != nil {
		failure := failureResponse{
			AccountIDs:   req.AccountIDs,
			Amount:       req.Amount,
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
