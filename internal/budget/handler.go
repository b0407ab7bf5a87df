package budget

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/auth"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req CreateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	b, err := buildBudget(userID, req.Category, req.BudgetedAmount, req.Period)
	if err != nil {
		return err
	}

	id, err := h.Repo.Insert(auth.UserContext(c), b)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create budget")
	}
	b.ID = id

	return c.Status(fiber.StatusCreated).JSON(b)
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Repo.ListByUser(auth.UserContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list budgets")
	}

	return c.JSON(items)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req UpdateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	b, err := buildBudget(userID, req.Category, req.BudgetedAmount, req.Period)
	if err != nil {
		return err
	}

	id := c.Params("id")
	if err := h.Repo.Update(auth.UserContext(c), userID, id, b); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "budget not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update budget")
	}

	return c.JSON(fiber.Map{"message": "budget updated"})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if err := h.Repo.Delete(auth.UserContext(c), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "budget not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete budget")
	}

	return c.JSON(fiber.Map{"message": "budget deleted"})
}

func buildBudget(userID, category string, amount decimal.Decimal, period string) (*Budget, error) {
	category = strings.TrimSpace(category)
	period = strings.ToUpper(strings.TrimSpace(period))

	if category == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "category required")
	}
	if !amount.IsPositive() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "budgetedAmount must be greater than zero")
	}
	if !validPeriod(period) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "period must be WEEKLY, MONTHLY or YEARLY")
	}

	return &Budget{
		UserID:         userID,
		Category:       category,
		BudgetedAmount: amount,
		Period:         period,
	}, nil
}
