package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *AlphaVantageClient {
	return &AlphaVantageClient{
		APIKey:  "test-key",
		BaseURL: baseURL,
		logger:  zerolog.New(os.Stderr).Level(zerolog.Disabled),
	}
}

func fakeProvider(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchMapsProviderFields(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, `{
		"bestMatches": [
			{
				"1. symbol": "AAPL",
				"2. name": "Apple Inc",
				"3. type": "Equity",
				"4. region": "United States",
				"8. currency": "USD"
			},
			{
				"1. symbol": "AAPL.LON",
				"2. name": "Apple CDR",
				"3. type": "Equity",
				"4. region": "United Kingdom",
				"8. currency": "GBP"
			}
		]
	}`)

	matches := testClient(srv.URL).Search(context.Background(), "apple")
	require.Len(t, matches, 2)
	assert.Equal(t, Match{
		Symbol:   "AAPL",
		Name:     "Apple Inc",
		Type:     "Equity",
		Region:   "United States",
		Currency: "USD",
	}, matches[0])
}

func TestSearchEmptyOnRateLimit(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`)
	matches := testClient(srv.URL).Search(context.Background(), "apple")
	assert.Empty(t, matches)
}

func TestSearchEmptyOnProviderError(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, `{"Error Message": "Invalid API call."}`)
	matches := testClient(srv.URL).Search(context.Background(), "apple")
	assert.Empty(t, matches)
}

func TestSearchEmptyOnHTTPFailure(t *testing.T) {
	srv := fakeProvider(t, http.StatusServiceUnavailable, `oops`)
	matches := testClient(srv.URL).Search(context.Background(), "apple")
	assert.Empty(t, matches)
}

func TestSearchEmptyOnSlowProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`{"bestMatches": []}`))
	}))
	t.Cleanup(srv.Close)

	c := testClient(srv.URL)
	c.HTTP = &http.Client{Timeout: 50 * time.Millisecond}
	matches := c.Search(context.Background(), "apple")
	assert.Empty(t, matches)
}

func TestSearchEmptyOnNetworkFailure(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, `{}`)
	srv.Close()
	matches := testClient(srv.URL).Search(context.Background(), "apple")
	assert.Empty(t, matches)
}

func TestQuotePreservesExactDecimalString(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, `{"Global Quote": {"05. price": "189.4100"}}`)
	price, ok := testClient(srv.URL).Quote(context.Background(), "AAPL")
	require.True(t, ok)
	assert.Equal(t, "189.4100", price, "price string must pass through untouched")
}

func TestQuoteMissingPrice(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, `{"Global Quote": {}}`)
	_, ok := testClient(srv.URL).Quote(context.Background(), "NOPE")
	assert.False(t, ok)
}

func TestQuoteGarbageBody(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, `<html>maintenance</html>`)
	_, ok := testClient(srv.URL).Quote(context.Background(), "AAPL")
	assert.False(t, ok)
}
