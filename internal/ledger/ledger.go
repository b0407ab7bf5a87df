// Package ledger derives presented financial figures from a loaded
// transaction collection. Everything here is pure: no I/O, no mutation of
// the input slice, and output independent of input ordering.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/transactions"
)

type Totals struct {
	Income   decimal.Decimal `json:"totalIncome"`
	Expenses decimal.Decimal `json:"totalExpenses"`
	Net      decimal.Decimal `json:"netIncome"`
}

// Summarize sums INCOME and EXPENSE amounts across the collection.
func Summarize(txs []transactions.Transaction) Totals {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range txs {
		switch t.Type {
		case transactions.TypeIncome:
			income = income.Add(t.Amount)
		case transactions.TypeExpense:
			expenses = expenses.Add(t.Amount)
		}
	}
	return Totals{
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
	}
}

// CategoryBreakdown sums EXPENSE amounts per category. INCOME transactions
// are excluded entirely.
func CategoryBreakdown(txs []transactions.Transaction) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != transactions.TypeExpense {
			continue
		}
		out[t.Category] = out[t.Category].Add(t.Amount)
	}
	return out
}

type TrendPoint struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// MonthlyTrend groups transactions by calendar year-month of the transaction
// date (falling back to the record creation time when the date is unset) and
// returns one point per month in ascending date order. An empty collection
// yields a single "No Data" placeholder so chart consumers always have a
// series to render.
func MonthlyTrend(txs []transactions.Transaction) []TrendPoint {
	if len(txs) == 0 {
		return []TrendPoint{{Month: "No Data", Income: decimal.Zero, Expenses: decimal.Zero}}
	}

	type bucket struct {
		point TrendPoint
		date  time.Time
	}
	buckets := make(map[string]*bucket)

	for _, t := range txs {
		date := t.TransactionDate
		if date.IsZero() {
			date = t.CreatedAt
		}
		if date.IsZero() {
			continue
		}

		key := date.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				point: TrendPoint{Month: date.Format("Jan"), Income: decimal.Zero, Expenses: decimal.Zero},
				date:  time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC),
			}
			buckets[key] = b
		}

		switch t.Type {
		case transactions.TypeIncome:
			b.point.Income = b.point.Income.Add(t.Amount)
		case transactions.TypeExpense:
			b.point.Expenses = b.point.Expenses.Add(t.Amount)
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].date.Before(ordered[j].date)
	})

	out := make([]TrendPoint, 0, len(ordered))
	for _, b := range ordered {
		out = append(out, b.point)
	}
	if len(out) == 0 {
		return []TrendPoint{{Month: "No Data", Income: decimal.Zero, Expenses: decimal.Zero}}
	}
	return out
}
