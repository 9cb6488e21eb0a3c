package routes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/patron-pay/patron_pay/internal/patron"
)

// RegisterPatronRoutes wires the patron registry endpoints.
func RegisterPatronRoutes(router fiber.Router, svc *patron.Service) {
	router.Post("/patrons", func(c *fiber.Ctx) error {
		var input patron.RegisterInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		p, err := svc.Register(c.UserContext(), input)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return c.Status(http.StatusCreated).JSON(p)
	})

	router.Get("/patrons/:id", func(c *fiber.Ctx) error {
		p, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, patron.ErrNotFound) {
				return fiber.NewError(http.StatusNotFound, "patron not found")
			}
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})
}
