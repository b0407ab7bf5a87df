package otp

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	records map[string]*Record
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*Record)}
}

func (m *memStore) Get(_ context.Context, email string) (*Record, error) {
	rec, ok := m.records[email]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *memStore) Insert(_ context.Context, rec *Record) error {
	cp := *rec
	m.records[rec.Email] = &cp
	return nil
}

func (m *memStore) Delete(_ context.Context, email string) error {
	delete(m.records, email)
	return nil
}

func (m *memStore) MarkUsed(_ context.Context, email string) error {
	if rec, ok := m.records[email]; ok {
		rec.Used = true
	}
	return nil
}

type memSender struct {
	sent []string // bodies
	to   []string
	err  error
}

func (m *memSender) Send(_ context.Context, to, _, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.to = append(m.to, to)
	m.sent = append(m.sent, htmlBody)
	return nil
}

type memCreds struct {
	updated map[string]string
	err     error
}

func (m *memCreds) UpdatePasswordByEmail(_ context.Context, email, newPassword string) error {
	if m.err != nil {
		return m.err
	}
	if m.updated == nil {
		m.updated = make(map[string]string)
	}
	m.updated[email] = newPassword
	return nil
}

func newTestService(store *memStore, sender *memSender, creds *memCreds, now time.Time) *Service {
	svc := NewService(store, sender, creds, zerolog.New(os.Stderr).Level(zerolog.Disabled))
	svc.now = func() time.Time { return now }
	return svc
}

func TestIssueStoresAndSends(t *testing.T) {
	store := newMemStore()
	sender := &memSender{}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, sender, &memCreds{}, now)

	require.NoError(t, svc.Issue(context.Background(), "user@example.com"))

	rec := store.records["user@example.com"]
	require.NotNil(t, rec)
	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{5}$`), rec.Code)
	assert.Equal(t, now.Add(10*time.Minute), rec.ExpiresAt)
	assert.False(t, rec.Used)
	assert.Equal(t, PurposePasswordReset, rec.Purpose)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "user@example.com", sender.to[0])
	assert.Contains(t, sender.sent[0], rec.Code)
}

func TestIssueRollsBackOnSendFailure(t *testing.T) {
	store := newMemStore()
	sender := &memSender{err: errors.New("smtp down")}
	svc := newTestService(store, sender, &memCreds{}, time.Now())

	err := svc.Issue(context.Background(), "user@example.com")
	require.Error(t, err)
	assert.Nil(t, store.records["user@example.com"], "undelivered otp must not remain stored")
}

func TestIssueSupersedesPriorCode(t *testing.T) {
	store := newMemStore()
	sender := &memSender{}
	now := time.Now()
	svc := newTestService(store, sender, &memCreds{}, now)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "user@example.com"))
	first := store.records["user@example.com"].Code

	require.NoError(t, svc.Issue(ctx, "user@example.com"))
	second := store.records["user@example.com"].Code

	if first == second {
		t.Skip("codes collided, cannot distinguish supersession") // 1-in-900000
	}
	assert.ErrorIs(t, svc.Verify(ctx, "user@example.com", first), ErrMismatch)
	assert.NoError(t, svc.Verify(ctx, "user@example.com", second))
}

func TestVerifyNotFound(t *testing.T) {
	svc := newTestService(newMemStore(), &memSender{}, &memCreds{}, time.Now())
	assert.ErrorIs(t, svc.Verify(context.Background(), "nobody@example.com", "123456"), ErrNotFound)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	store := newMemStore()
	sender := &memSender{}
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, sender, &memCreds{}, issuedAt)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "user@example.com"))
	code := store.records["user@example.com"].Code

	// 9m59s after issuance: still valid
	svc.now = func() time.Time { return issuedAt.Add(9*time.Minute + 59*time.Second) }
	assert.NoError(t, svc.Verify(ctx, "user@example.com", code))

	// 10m01s after issuance: expired, and the stale record is removed
	svc.now = func() time.Time { return issuedAt.Add(10*time.Minute + time.Second) }
	assert.ErrorIs(t, svc.Verify(ctx, "user@example.com", code), ErrExpired)
	assert.Nil(t, store.records["user@example.com"])
}

func TestVerifyAlreadyUsed(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	svc := newTestService(store, &memSender{}, &memCreds{}, now)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "user@example.com"))
	code := store.records["user@example.com"].Code
	store.records["user@example.com"].Used = true

	assert.ErrorIs(t, svc.Verify(ctx, "user@example.com", code), ErrAlreadyUsed)
	assert.Nil(t, store.records["user@example.com"], "used record is deleted on detection")
}

func TestVerifyMismatchKeepsRecord(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &memSender{}, &memCreds{}, time.Now())
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "user@example.com"))
	code := store.records["user@example.com"].Code

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	assert.ErrorIs(t, svc.Verify(ctx, "user@example.com", wrong), ErrMismatch)
	require.NotNil(t, store.records["user@example.com"], "mismatch must not consume the record")
	assert.NoError(t, svc.Verify(ctx, "user@example.com", code))
}

func TestCompleteResetMarksUsedAfterCredentialUpdate(t *testing.T) {
	store := newMemStore()
	creds := &memCreds{}
	svc := newTestService(store, &memSender{}, creds, time.Now())
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "user@example.com"))
	code := store.records["user@example.com"].Code

	require.NoError(t, svc.CompleteReset(ctx, "user@example.com", code, "new-password-1"))
	assert.Equal(t, "new-password-1", creds.updated["user@example.com"])
	assert.True(t, store.records["user@example.com"].Used, "record kept as audit remnant, marked used")
}

func TestCompleteResetKeepsRecordUnusedOnCredentialFailure(t *testing.T) {
	store := newMemStore()
	creds := &memCreds{err: errors.New("identity provider down")}
	svc := newTestService(store, &memSender{}, creds, time.Now())
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "user@example.com"))
	code := store.records["user@example.com"].Code

	require.Error(t, svc.CompleteReset(ctx, "user@example.com", code, "new-password-1"))
	require.NotNil(t, store.records["user@example.com"])
	assert.False(t, store.records["user@example.com"].Used,
		"failed credential update must leave the otp retryable")

	// retry after the provider recovers succeeds with the same code
	creds.err = nil
	require.NoError(t, svc.CompleteReset(ctx, "user@example.com", code, "new-password-1"))
	assert.True(t, store.records["user@example.com"].Used)
}
