package portfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/transactions"
)

type fakeHoldingStore struct {
	holdings []Holding
	inserts  int
}

func (s *fakeHoldingStore) Insert(ctx context.Context, h *Holding) (string, error) {
	s.inserts++
	stored := *h
	stored.ID = "inv-1"
	s.holdings = append(s.holdings, stored)
	return stored.ID, nil
}

func (s *fakeHoldingStore) ListByUser(ctx context.Context, userID string) ([]Holding, error) {
	return append([]Holding(nil), s.holdings...), nil
}

func (s *fakeHoldingStore) UpdatePrice(ctx context.Context, userID, id string, currentPrice decimal.Decimal) error {
	return ErrNotFound
}

func (s *fakeHoldingStore) Delete(ctx context.Context, userID, id string) error {
	return ErrNotFound
}

type fakeTxSource struct {
	txs []transactions.Transaction
}

func (s *fakeTxSource) ListByUser(ctx context.Context, userID string) ([]transactions.Transaction, error) {
	return s.txs, nil
}

func newInvestmentApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "5f8b0e5e-0000-4000-8000-000000000001")
		return c.Next()
	})
	app.Get("/api/investments", h.List)
	app.Post("/api/investments", h.Create)
	return app
}

func postInvestment(t *testing.T, app *fiber.App, req CreateHoldingRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	httpReq := httptest.NewRequest(http.MethodPost, "/api/investments", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	res, err := app.Test(httpReq)
	require.NoError(t, err)
	return res
}

func getInvestments(t *testing.T, app *fiber.App) listResponse {
	t.Helper()
	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/investments", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var out listResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func TestCreateRejectedPurchaseChangesNothing(t *testing.T) {
	store := &fakeHoldingStore{}
	txs := &fakeTxSource{txs: []transactions.Transaction{
		{Type: transactions.TypeIncome, Amount: decimal.NewFromInt(1000)},
	}}
	app := newInvestmentApp(NewHandler(store, txs))

	res := postInvestment(t, app, CreateHoldingRequest{
		Symbol:        "AAPL",
		Name:          "Apple Inc",
		Shares:        10,
		PurchasePrice: decimal.NewFromInt(150),
		CurrentPrice:  decimal.NewFromInt(150),
	})
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Zero(t, store.inserts, "a rejected purchase must not reach the store")

	list := getInvestments(t, app)
	assert.Empty(t, list.Investments)
	assert.True(t, list.AvailableCash.Equal(decimal.NewFromInt(1000)),
		"available cash unchanged, got %s", list.AvailableCash)
}

func TestCreateAcceptsPurchaseAtExactBoundary(t *testing.T) {
	store := &fakeHoldingStore{}
	txs := &fakeTxSource{txs: []transactions.Transaction{
		{Type: transactions.TypeIncome, Amount: decimal.NewFromInt(1500)},
	}}
	app := newInvestmentApp(NewHandler(store, txs))

	res := postInvestment(t, app, CreateHoldingRequest{
		Symbol:        "AAPL",
		Name:          "Apple Inc",
		Shares:        10,
		PurchasePrice: decimal.NewFromInt(150),
		CurrentPrice:  decimal.NewFromInt(150),
	})
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)
	assert.Equal(t, 1, store.inserts)

	list := getInvestments(t, app)
	require.Len(t, list.Investments, 1)
	assert.Equal(t, "AAPL", list.Investments[0].Symbol)
	assert.True(t, list.AvailableCash.IsZero(), "got %s", list.AvailableCash)
}
