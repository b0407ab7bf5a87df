package transactions

import (
	"errors"
	"strings"
	"time"

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

	var req CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	tx, err := buildTransaction(userID, req.Amount, req.Category, req.Description, req.Type, req.TransactionDate)
	if err != nil {
		return err
	}

	id, err := h.Repo.Insert(auth.UserContext(c), tx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create transaction")
	}
	tx.ID = id

	return c.Status(fiber.StatusCreated).JSON(tx)
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Repo.ListByUser(auth.UserContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list transactions")
	}

	return c.JSON(items)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	var req UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	tx, err := buildTransaction(userID, req.Amount, req.Category, req.Description, req.Type, req.TransactionDate)
	if err != nil {
		return err
	}

	if err := h.Repo.Update(auth.UserContext(c), userID, id, tx); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "transaction not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update transaction")
	}

	return c.JSON(fiber.Map{"message": "transaction updated"})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if err := h.Repo.Delete(auth.UserContext(c), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "transaction not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete transaction")
	}

	return c.JSON(fiber.Map{"message": "transaction deleted"})
}

// buildTransaction validates request fields and assembles a transaction.
// Validation failures come back as *fiber.Error with the offending field named.
func buildTransaction(userID string, amount decimal.Decimal, category, description, typ, dateStr string) (*Transaction, error) {
	category = strings.TrimSpace(category)
	description = strings.TrimSpace(description)

	if !amount.IsPositive() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}
	if category == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "category required")
	}
	if description == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "description required")
	}
	if typ != TypeIncome && typ != TypeExpense {
		return nil, fiber.NewError(fiber.StatusBadRequest, "type must be INCOME or EXPENSE")
	}

	date := time.Now().UTC()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "transactionDate must be YYYY-MM-DD")
		}
		date = parsed
	}

	return &Transaction{
		UserID:          userID,
		Amount:          amount,
		Category:        category,
		Description:     description,
		Type:            typ,
		TransactionDate: date,
	}, nil
}
