package otp

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore keeps OTP records in the email_otps table, one live row per email.
type PgStore struct {
	Pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{Pool: pool}
}

func (s *PgStore) Get(ctx context.Context, email string) (*Record, error) {
	var rec Record
	err := s.Pool.QueryRow(ctx, `
		SELECT email, otp_code, expires_at, used, purpose, created_at
		FROM email_otps
		WHERE email = $1
	`, email).Scan(&rec.Email, &rec.Code, &rec.ExpiresAt, &rec.Used, &rec.Purpose, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *PgStore) Insert(ctx context.Context, rec *Record) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO email_otps (email, otp_code, expires_at, used, purpose, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.Email, rec.Code, rec.ExpiresAt, rec.Used, rec.Purpose, rec.CreatedAt)
	return err
}

func (s *PgStore) Delete(ctx context.Context, email string) error {
	_, err := s.Pool.Exec(ctx, `DELETE FROM email_otps WHERE email = $1`, email)
	return err
}

func (s *PgStore) MarkUsed(ctx context.Context, email string) error {
	_, err := s.Pool.Exec(ctx, `UPDATE email_otps SET used = TRUE WHERE email = $1`, email)
	return err
}
