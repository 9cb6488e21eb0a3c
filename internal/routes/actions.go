package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/patron-pay/patron_pay/internal/action"
)

// RegisterActionRoutes wires the bulk, single-account and check endpoints
// for every supported action type, plus full cancellation.
func RegisterActionRoutes(router fiber.Router, handlers map[action.Action]*action.Handler,
	cancels *action.CancelHandler, limiter fiber.Handler) {
	names := map[action.Action]string{
		action.Pay:      "pay",
		action.Waive:    "waive",
		action.Transfer: "transfer",
		action.Refund:   "refund",
	}

	for act, name := range names {
		h := handlers[act]
		router.Post("/accounts-bulk/"+name, limiter, h.Bulk)
		router.Post("/accounts/:id/"+name, limiter, h.Single)
		router.Post("/accounts/:id/check-"+name, h.Check)
	}

	router.Post("/accounts/:id/cancel", limiter, cancels.Cancel)
}
