package reports

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/auth"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/ledger"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/portfolio"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/transactions"
)

type TransactionSource interface {
	ListByUser(ctx context.Context, userID string) ([]transactions.Transaction, error)
}

type HoldingSource interface {
	ListByUser(ctx context.Context, userID string) ([]portfolio.Holding, error)
}

type Handler struct {
	Transactions TransactionSource
	Holdings     HoldingSource
}

func NewHandler(txs TransactionSource, holdings HoldingSource) *Handler {
	return &Handler{Transactions: txs, Holdings: holdings}
}

type dashboardResponse struct {
	Totals            ledger.Totals              `json:"totals"`
	AvailableCash     decimal.Decimal            `json:"availableCash"`
	Valuation         portfolio.Valuation        `json:"valuation"`
	CategoryBreakdown map[string]decimal.Decimal `json:"categoryBreakdown"`
	MonthlyTrend      []ledger.TrendPoint        `json:"monthlyTrend"`
}

// Dashboard returns every derived figure the overview screen renders, all
// computed from one snapshot of the user's collections.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	ctx := auth.UserContext(c)

	txs, err := h.Transactions.ListByUser(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transactions")
	}
	holdings, err := h.Holdings.ListByUser(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load investments")
	}

	totals := ledger.Summarize(txs)
	val := portfolio.Valuate(holdings)

	return c.JSON(dashboardResponse{
		Totals:            totals,
		AvailableCash:     portfolio.AvailableCash(totals, val.TotalCost),
		Valuation:         val,
		CategoryBreakdown: ledger.CategoryBreakdown(txs),
		MonthlyTrend:      ledger.MonthlyTrend(txs),
	})
}
