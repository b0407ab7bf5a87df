package reports

import (
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/auth"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/ledger"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/portfolio"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/transactions"
)

type statement struct {
	Month      string
	Totals     ledger.Totals
	Categories []categoryLine
	Holdings   []portfolio.Holding
	Valuation  portfolio.Valuation
}

type categoryLine struct {
	Category string
	Amount   decimal.Decimal
}

// Statement renders a PDF statement for one calendar month.
func (h *Handler) Statement(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
	}
	end := start.AddDate(0, 1, 0)

	ctx := auth.UserContext(c)
	txs, err := h.Transactions.ListByUser(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transactions")
	}
	holdings, err := h.Holdings.ListByUser(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load investments")
	}

	inMonth := make([]transactions.Transaction, 0, len(txs))
	for _, t := range txs {
		date := t.TransactionDate
		if date.IsZero() {
			date = t.CreatedAt
		}
		if !date.Before(start) && date.Before(end) {
			inMonth = append(inMonth, t)
		}
	}

	st := statement{
		Month:      start.Format("January 2006"),
		Totals:     ledger.Summarize(inMonth),
		Categories: sortedCategories(ledger.CategoryBreakdown(inMonth)),
		Holdings:   holdings,
		Valuation:  portfolio.Valuate(holdings),
	}

	pdf, err := buildStatementPDF(&st)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render statement")
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="statement-`+month+`.pdf"`)
	return c.Send(pdf)
}

func sortedCategories(breakdown map[string]decimal.Decimal) []categoryLine {
	out := make([]categoryLine, 0, len(breakdown))
	for category, amount := range breakdown {
		out = append(out, categoryLine{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Equal(out[j].Amount) {
			return out[i].Category < out[j].Category
		}
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}
