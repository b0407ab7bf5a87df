package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PeriodWeekly  = "WEEKLY"
	PeriodMonthly = "MONTHLY"
	PeriodYearly  = "YEARLY"
)

// Budget caps spending for one category over a recurring period.
// SpentAmount is derived at read time from matching EXPENSE transactions in
// the current period; it is never stored.
type Budget struct {
	ID             string          `db:"id" json:"id"`
	UserID         string          `db:"user_id" json:"user_id"`
	Category       string          `db:"category" json:"category"`
	BudgetedAmount decimal.Decimal `db:"budgeted_amount" json:"budgetedAmount"`
	Period         string          `db:"period" json:"period"`
	SpentAmount    decimal.Decimal `json:"spentAmount"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

type CreateBudgetRequest struct {
	Category       string          `json:"category"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	Period         string          `json:"period"`
}

type UpdateBudgetRequest struct {
	Category       string          `json:"category"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	Period         string          `json:"period"`
}

func validPeriod(p string) bool {
	return p == PeriodWeekly || p == PeriodMonthly || p == PeriodYearly
}

// periodStarts returns the opening instant of the current week (Monday),
// month, and year for the spend window of each budget period.
func periodStarts(now time.Time) (week, month, year time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	week = day.AddDate(0, 0, -(weekday - 1))
	month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	year = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	return week, month, year
}
