package transactions

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

type Transaction struct {
	ID              string          `db:"id" json:"id"`
	UserID          string          `db:"user_id" json:"user_id"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Category        string          `db:"category" json:"category"`
	Description     string          `db:"description" json:"description"`
	Type            string          `db:"type" json:"type"` // INCOME | EXPENSE
	TransactionDate time.Time       `db:"transaction_date" json:"transactionDate"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

type CreateTransactionRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Type            string          `json:"type"`
	TransactionDate string          `json:"transactionDate"` // YYYY-MM-DD
}

type UpdateTransactionRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Type            string          `json:"type"`
	TransactionDate string          `json:"transactionDate"`
}
