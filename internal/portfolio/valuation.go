package portfolio

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/ledger"
)

type Valuation struct {
	TotalCost  decimal.Decimal `json:"totalCost"`
	TotalValue decimal.Decimal `json:"totalValue"`
	TotalGain  decimal.Decimal `json:"totalGain"`
}

// Valuate aggregates cost basis, current value and gain across holdings.
func Valuate(holdings []Holding) Valuation {
	cost := decimal.Zero
	value := decimal.Zero
	for _, h := range holdings {
		cost = cost.Add(h.Cost())
		value = value.Add(h.Value())
	}
	return Valuation{
		TotalCost:  cost,
		TotalValue: value,
		TotalGain:  value.Sub(cost),
	}
}

// AvailableCash is income minus expenses minus the cost basis of every
// holding. Committed capital reduces spendable cash permanently; market
// movement of a held position does not restore it. The result may be
// negative.
func AvailableCash(totals ledger.Totals, totalCost decimal.Decimal) decimal.Decimal {
	return totals.Income.Sub(totals.Expenses).Sub(totalCost)
}

// InsufficientFundsError reports an affordability violation with the exact
// shortfall, so the caller can show the user how far short they are.
type InsufficientFundsError struct {
	Cost      decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"insufficient funds: investment costs %s but only %s is available (short %s)",
		e.Cost.StringFixed(2),
		e.Available.StringFixed(2),
		e.Cost.Sub(e.Available).StringFixed(2),
	)
}

// CheckAffordability accepts a purchase only when its cost does not exceed
// available cash. The exact boundary (cost == available) is allowed.
func CheckAffordability(cost, available decimal.Decimal) error {
	if cost.GreaterThan(available) {
		return &InsufficientFundsError{Cost: cost, Available: available}
	}
	return nil
}
