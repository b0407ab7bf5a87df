package mailer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMailer(endpoint string) *BrevoClient {
	return &BrevoClient{
		APIKey:    "test-key",
		FromEmail: "noreply@example.com",
		FromName:  "Finwise Team",
		Endpoint:  endpoint,
		logger:    zerolog.New(os.Stderr).Level(zerolog.Disabled),
	}
}

func TestSendOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("api-key"))
		_, _ = w.Write([]byte(`{"messageId": "abc"}`))
	}))
	t.Cleanup(srv.Close)

	err := testMailer(srv.URL).Send(context.Background(), "user@example.com", "Reset", "<p>hi</p>")
	require.NoError(t, err)
}

func TestSendErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Key not found"}`))
	}))
	t.Cleanup(srv.Close)

	err := testMailer(srv.URL).Send(context.Background(), "user@example.com", "Reset", "<p>hi</p>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Key not found")
}
