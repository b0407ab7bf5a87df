package portfolio

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is a single investment position. Prices are exact decimals as
// received from the quote provider; no float arithmetic anywhere.
type Holding struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"user_id"`
	Symbol        string          `db:"symbol" json:"symbol"`
	Name          string          `db:"name" json:"name"`
	Shares        int64           `db:"shares" json:"shares"`
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchasePrice"`
	CurrentPrice  decimal.Decimal `db:"current_price" json:"currentPrice"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// Cost is the basis committed at acquisition: shares * purchasePrice.
func (h Holding) Cost() decimal.Decimal {
	return decimal.NewFromInt(h.Shares).Mul(h.PurchasePrice)
}

// Value is the position at the latest known market price.
func (h Holding) Value() decimal.Decimal {
	return decimal.NewFromInt(h.Shares).Mul(h.CurrentPrice)
}

func (h Holding) Gain() decimal.Decimal {
	return h.Value().Sub(h.Cost())
}

// GainPercent returns gain relative to cost as a percentage. A zero cost
// basis yields 0 rather than a division error.
func (h Holding) GainPercent() decimal.Decimal {
	cost := h.Cost()
	if cost.IsZero() {
		return decimal.Zero
	}
	return h.Gain().Div(cost).Mul(decimal.NewFromInt(100))
}

type CreateHoldingRequest struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Shares        int64           `json:"shares"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
}

type UpdateHoldingRequest struct {
	CurrentPrice decimal.Decimal `json:"currentPrice"`
}
