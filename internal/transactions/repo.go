package transactions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when an owner-scoped update or delete matches no
// row. A row owned by another user reports the same error.
var ErrNotFound = errors.New("transaction not found")

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) Insert(ctx context.Context, tx *Transaction) (string, error) {
	var id string
	err := r.Pool.QueryRow(
		ctx,
		`INSERT INTO transactions (user_id, amount, category, description, type, transaction_date)
         VALUES ($1::uuid, $2, $3, $4, $5, $6)
         RETURNING id`,
		tx.UserID,
		tx.Amount,
		tx.Category,
		tx.Description,
		tx.Type,
		tx.TransactionDate,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Transaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT id, user_id::text, amount, category, description, type, transaction_date, created_at
		FROM transactions
		WHERE user_id = $1::uuid
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Transaction, 0)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Amount,
			&t.Category,
			&t.Description,
			&t.Type,
			&t.TransactionDate,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, userID, id string, tx *Transaction) error {
	tag, err := r.Pool.Exec(
		ctx,
		`UPDATE transactions
         SET amount = $3, category = $4, description = $5, type = $6, transaction_date = $7
         WHERE id = $1::uuid AND user_id = $2::uuid`,
		id,
		userID,
		tx.Amount,
		tx.Category,
		tx.Description,
		tx.Type,
		tx.TransactionDate,
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
		`DELETE FROM transactions WHERE id = $1::uuid AND user_id = $2::uuid`,
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
