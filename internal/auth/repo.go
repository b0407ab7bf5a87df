package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already taken")
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) CreateUser(ctx context.Context, username, email, password string) (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var u User
	err = r.Pool.QueryRow(
		ctx,
		`INSERT INTO users (username, email, password_hash)
         VALUES ($1, $2, $3)
         ON CONFLICT DO NOTHING
         RETURNING id, username, email, password_hash, created_at`,
		username, email, string(hashed),
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByIdentifier looks an account up by username or email; a username is
// resolved to its account before credentials are ever compared.
func (r *Repository) FindByIdentifier(ctx context.Context, identifier string) (*User, error) {
	var u User
	err := r.Pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, created_at
         FROM users
         WHERE email = $1 OR username = $1`,
		identifier,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdatePasswordByEmail rehashes and stores a new credential. Used by the
// password-reset flow after OTP verification.
func (r *Repository) UpdatePasswordByEmail(ctx context.Context, email, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tag, err := r.Pool.Exec(
		ctx,
		`UPDATE users SET password_hash = $2 WHERE email = $1`,
		email, string(hashed),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
