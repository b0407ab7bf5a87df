package portfolio

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("investment not found")

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) Insert(ctx context.Context, h *Holding) (string, error) {
	var id string
	err := r.Pool.QueryRow(
		ctx,
		`INSERT INTO investments (user_id, symbol, name, shares, purchase_price, current_price)
         VALUES ($1::uuid, $2, $3, $4, $5, $6)
         RETURNING id`,
		h.UserID,
		h.Symbol,
		h.Name,
		h.Shares,
		h.PurchasePrice,
		h.CurrentPrice,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Holding, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT id, user_id::text, symbol, name, shares, purchase_price, current_price, created_at
		FROM investments
		WHERE user_id = $1::uuid
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Holding, 0)
	for rows.Next() {
		var h Holding
		if err := rows.Scan(
			&h.ID,
			&h.UserID,
			&h.Symbol,
			&h.Name,
			&h.Shares,
			&h.PurchasePrice,
			&h.CurrentPrice,
			&h.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// UpdatePrice refreshes only the latest known market price of a holding.
func (r *Repository) UpdatePrice(ctx context.Context, userID, id string, currentPrice decimal.Decimal) error {
	tag, err := r.Pool.Exec(
		ctx,
		`UPDATE investments SET current_price = $3
         WHERE id = $1::uuid AND user_id = $2::uuid`,
		id, userID, currentPrice,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.Pool.Exec(
		ctx,
		`DELETE FROM investments WHERE id = $1::uuid AND user_id = $2::uuid`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
