package quotes

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/auth"
)

type Handler struct {
	Client *AlphaVantageClient
}

func NewHandler(client *AlphaVantageClient) *Handler {
	return &Handler{Client: client}
}

func (h *Handler) Search(c *fiber.Ctx) error {
	keywords := strings.TrimSpace(c.Query("keywords"))
	if keywords == "" {
		return fiber.NewError(fiber.StatusBadRequest, "keywords required")
	}

	return c.JSON(h.Client.Search(auth.UserContext(c), keywords))
}

func (h *Handler) Quote(c *fiber.Ctx) error {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		return fiber.NewError(fiber.StatusBadRequest, "symbol required")
	}

	price, ok := h.Client.Quote(auth.UserContext(c), symbol)
	if !ok {
		return c.JSON(fiber.Map{"price": nil})
	}
	return c.JSON(fiber.Map{"price": price})
}
