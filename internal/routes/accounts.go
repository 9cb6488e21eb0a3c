package routes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/patron-pay/patron_pay/internal/account"
	"github.com/patron-pay/patron_pay/internal/charge"
	"github.com/patron-pay/patron_pay/internal/ledger"
)

// RegisterAccountRoutes wires account lookup, action history and charge
// creation.
func RegisterAccountRoutes(router fiber.Router, accounts account.Repository,
	entries ledger.Store, chargeHandler *charge.Handler, limiter fiber.Handler) {

	router.Post("/accounts/charge", limiter, chargeHandler.Create)

	router.Get("/accounts/:id", func(c *fiber.Ctx) error {
		acc, err := accounts.GetByID(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				return fiber.NewError(http.StatusNotFound, "account not found")
			}
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(acc)
	})

	router.Get("/accounts/:id/actions", func(c *fiber.Ctx) error {
		found, err := entries.FindByAccount(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, ledger.ErrEmptyAccountID) {
				return fiber.NewError(http.StatusBadRequest, err.Error())
			}
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"feeFineActions": found})
	})

	router.Get("/accounts/:id/charge", func(c *fiber.Ctx) error {
		entry, ok, err := entries.FindCharge(c.UserContext(), c.Params("id"))
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		if !ok {
			return fiber.NewError(http.StatusNotFound, "no charge entry for account")
		}
		return c.JSON(entry)
	})
}
