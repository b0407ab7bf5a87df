package portfolio

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/auth"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/ledger"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/transactions"
)

// TransactionSource supplies the transaction snapshot the affordability
// check is computed from.
type TransactionSource interface {
	ListByUser(ctx context.Context, userID string) ([]transactions.Transaction, error)
}

// HoldingStore is the persistence surface the handler drives.
type HoldingStore interface {
	Insert(ctx context.Context, h *Holding) (string, error)
	ListByUser(ctx context.Context, userID string) ([]Holding, error)
	UpdatePrice(ctx context.Context, userID, id string, currentPrice decimal.Decimal) error
	Delete(ctx context.Context, userID, id string) error
}

type Handler struct {
	Holdings     HoldingStore
	Transactions TransactionSource

	lanes *laneLocks
}

func NewHandler(store HoldingStore, txs TransactionSource) *Handler {
	return &Handler{
		Holdings:     store,
		Transactions: txs,
		lanes:        newLaneLocks(),
	}
}

type listResponse struct {
	Investments   []Holding       `json:"investments"`
	Valuation     Valuation       `json:"valuation"`
	AvailableCash decimal.Decimal `json:"availableCash"`
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	ctx := auth.UserContext(c)

	holdings, err := h.Holdings.ListByUser(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list investments")
	}
	txs, err := h.Transactions.ListByUser(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transactions")
	}

	val := Valuate(holdings)
	return c.JSON(listResponse{
		Investments:   holdings,
		Valuation:     val,
		AvailableCash: AvailableCash(ledger.Summarize(txs), val.TotalCost),
	})
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req CreateHoldingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	req.Name = strings.TrimSpace(req.Name)
	switch {
	case req.Symbol == "":
		return fiber.NewError(fiber.StatusBadRequest, "symbol required")
	case req.Name == "":
		return fiber.NewError(fiber.StatusBadRequest, "name required")
	case req.Shares <= 0:
		return fiber.NewError(fiber.StatusBadRequest, "shares must be greater than zero")
	case !req.PurchasePrice.IsPositive():
		return fiber.NewError(fiber.StatusBadRequest, "purchasePrice must be greater than zero")
	case !req.CurrentPrice.IsPositive():
		return fiber.NewError(fiber.StatusBadRequest, "currentPrice must be greater than zero")
	}

	holding := &Holding{
		UserID:        userID,
		Symbol:        req.Symbol,
		Name:          req.Name,
		Shares:        req.Shares,
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
	}

	// The check and the insert must run against the same snapshot, so
	// purchases for one user are serialized.
	release := h.lanes.acquire(userID)
	defer release()

	ctx := auth.UserContext(c)
	txs, err := h.Transactions.ListByUser(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transactions")
	}
	holdings, err := h.Holdings.ListByUser(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list investments")
	}

	available := AvailableCash(ledger.Summarize(txs), Valuate(holdings).TotalCost)
	if err := CheckAffordability(holding.Cost(), available); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	id, err := h.Holdings.Insert(ctx, holding)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create investment")
	}
	holding.ID = id

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"investment": holding})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req UpdateHoldingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if !req.CurrentPrice.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "currentPrice must be greater than zero")
	}

	id := c.Params("id")
	if err := h.Holdings.UpdatePrice(auth.UserContext(c), userID, id, req.CurrentPrice); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "investment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update investment")
	}

	return c.JSON(fiber.Map{"message": "investment updated"})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if err := h.Holdings.Delete(auth.UserContext(c), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "investment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete investment")
	}

	return c.JSON(fiber.Map{"message": "investment deleted"})
}
