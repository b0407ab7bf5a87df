// Package otp manages the one-time passcode lifecycle for password reset.
// There is at most one live record per email address: issuing a new code
// deletes whatever came before it.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"
)

const (
	// PurposePasswordReset is the only purpose currently issued.
	PurposePasswordReset = "password_reset"

	expiry = 10 * time.Minute
)

var (
	ErrNotFound    = errors.New("otp not found, request a new one")
	ErrExpired     = errors.New("otp has expired, request a new one")
	ErrAlreadyUsed = errors.New("otp has already been used, request a new one")
	ErrMismatch    = errors.New("invalid otp")
)

type Record struct {
	Email     string    `db:"email"`
	Code      string    `db:"otp_code"`
	ExpiresAt time.Time `db:"expires_at"`
	Used      bool      `db:"used"`
	Purpose   string    `db:"purpose"`
	CreatedAt time.Time `db:"created_at"`
}

// Store persists OTP records keyed by email.
type Store interface {
	Get(ctx context.Context, email string) (*Record, error) // nil, nil when absent
	Insert(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, email string) error
	MarkUsed(ctx context.Context, email string) error
}

// Sender dispatches the passcode email. Implementations must bound their own
// request time; a hung provider must not hang the reset flow.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Credentials updates the account password once a code has been verified.
type Credentials interface {
	UpdatePasswordByEmail(ctx context.Context, email, newPassword string) error
}

type Service struct {
	store  Store
	sender Sender
	creds  Credentials
	now    func() time.Time
	logger zerolog.Logger
}

func NewService(store Store, sender Sender, creds Credentials, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		sender: sender,
		creds:  creds,
		now:    time.Now,
		logger: logger,
	}
}

// Issue generates a fresh 6-digit code for the email, superseding any prior
// record, and dispatches it. Dispatch failure rolls the record back: the
// caller must never believe a code was issued that the user cannot receive.
func (s *Service) Issue(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	now := s.now()
	rec := &Record{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(expiry),
		Used:      false,
		Purpose:   PurposePasswordReset,
		CreatedAt: now,
	}

	if err := s.store.Delete(ctx, email); err != nil {
		return fmt.Errorf("supersede otp: %w", err)
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if err := s.sender.Send(ctx, email, "Password Reset OTP - Finwise", resetEmailBody(code)); err != nil {
		if delErr := s.store.Delete(ctx, email); delErr != nil {
			s.logger.Error().Err(delErr).Str("email", email).Msg("rollback of undelivered otp failed")
		}
		return fmt.Errorf("send otp email: %w", err)
	}

	s.logger.Info().Str("email", email).Time("expires_at", rec.ExpiresAt).Msg("otp issued")
	return nil
}

// Verify checks a candidate code against the live record for the email.
// Expired and already-used records are deleted as a side effect; a mismatch
// leaves the record in place so the user can retry.
func (s *Service) Verify(ctx context.Context, email, candidate string) error {
	rec, err := s.store.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}
	if rec == nil {
		return ErrNotFound
	}
	if s.now().After(rec.ExpiresAt) {
		if err := s.store.Delete(ctx, email); err != nil {
			s.logger.Error().Err(err).Str("email", email).Msg("delete of expired otp failed")
		}
		return ErrExpired
	}
	if rec.Used {
		if err := s.store.Delete(ctx, email); err != nil {
			s.logger.Error().Err(err).Str("email", email).Msg("delete of used otp failed")
		}
		return ErrAlreadyUsed
	}
	if rec.Code != candidate {
		return ErrMismatch
	}
	return nil
}

// CompleteReset verifies the code, updates the account credential, and only
// then marks the record used. If the credential update fails the record
// stays verified-but-unconsumed, so the user can retry without requesting a
// new code.
func (s *Service) CompleteReset(ctx context.Context, email, candidate, newPassword string) error {
	if err := s.Verify(ctx, email, candidate); err != nil {
		return err
	}

	if err := s.creds.UpdatePasswordByEmail(ctx, email, newPassword); err != nil {
		return err
	}

	if err := s.store.MarkUsed(ctx, email); err != nil {
		// Credential already changed; the leftover record expires on its own.
		s.logger.Error().Err(err).Str("email", email).Msg("mark otp used failed after password update")
	}

	s.logger.Info().Str("email", email).Msg("password reset completed")
	return nil
}

// generateCode draws a uniformly random 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func resetEmailBody(code string) string {
	return fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif;">
<h2>Password Reset OTP</h2>
<p>You have requested a password reset for your Finwise account.</p>
<p>Your OTP (One-Time Password) is:</p>
<div style="font-size: 32px; font-weight: bold; letter-spacing: 5px;">%s</div>
<p><strong>Important:</strong> This OTP will expire in 10 minutes.</p>
<p>If you didn't request this password reset, please ignore this email.</p>
<p>Best regards,<br><strong>Finwise Team</strong></p>
</body></html>`, code)
}
