package budget

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("budget not found")

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) Insert(ctx context.Context, b *Budget) (string, error) {
	var id string
	err := r.Pool.QueryRow(
		ctx,
		`INSERT INTO budgets (user_id, category, budgeted_amount, period)
         VALUES ($1::uuid, $2, $3, $4)
         RETURNING id`,
		b.UserID, b.Category, b.BudgetedAmount, b.Period,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListByUser returns budgets newest first, with spentAmount aggregated from
// the user's EXPENSE transactions in each budget's current period window.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Budget, error) {
	now := time.Now()
	week, month, year := periodStarts(now)

	rows, err := r.Pool.Query(ctx, `
		SELECT b.id, b.user_id::text, b.category, b.budgeted_amount, b.period, b.created_at,
		       COALESCE((
		           SELECT SUM(t.amount)
		           FROM transactions t
		           WHERE t.user_id = b.user_id
		             AND t.type = 'EXPENSE'
		             AND t.category = b.category
		             AND t.transaction_date >= CASE b.period
		                 WHEN 'WEEKLY' THEN $2::timestamptz
		                 WHEN 'MONTHLY' THEN $3::timestamptz
		                 ELSE $4::timestamptz
		             END
		             AND t.transaction_date <= $5::timestamptz
		       ), 0) AS spent_amount
		FROM budgets b
		WHERE b.user_id = $1::uuid
		ORDER BY b.created_at DESC
	`, userID, week, month, year, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Budget, 0)
	for rows.Next() {
		var b Budget
		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.Category,
			&b.BudgetedAmount,
			&b.Period,
			&b.CreatedAt,
			&b.SpentAmount,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, userID, id string, b *Budget) error {
	tag, err := r.Pool.Exec(
		ctx,
		`UPDATE budgets SET category = $3, budgeted_amount = $4, period = $5
         WHERE id = $1::uuid AND user_id = $2::uuid`,
		id, userID, b.Category, b.BudgetedAmount, b.Period,
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
		`DELETE FROM budgets WHERE id = $1::uuid AND user_id = $2::uuid`,
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
