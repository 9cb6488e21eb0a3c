package charge

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/patron-pay/patron_pay/internal/patron"
)

// Handler exposes the charge endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a charge handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create charges a new fee/fine to a patron.
func (h *Handler) Create(c *fiber.Ctx) error {
	var input Input
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Charge(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, patron.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "patron not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(result)
}
