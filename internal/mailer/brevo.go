// Package mailer sends transactional email through the Brevo HTTP API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// sendTimeout bounds a single dispatch attempt; a timeout is a dispatch
// failure, not something to wait out.
const sendTimeout = 30 * time.Second

type BrevoClient struct {
	APIKey    string
	FromEmail string
	FromName  string
	Endpoint  string

	logger zerolog.Logger
}

func NewBrevoFromEnv(logger zerolog.Logger) *BrevoClient {
	from := os.Getenv("BREVO_FROM_EMAIL")
	if from == "" {
		from = "financeapp3@gmail.com"
	}
	return &BrevoClient{
		APIKey:    os.Getenv("BREVO_API_KEY"),
		FromEmail: from,
		FromName:  "Finwise Team",
		Endpoint:  "https://api.brevo.com/v3/smtp/email",
		logger:    logger,
	}
}

type sendPayload struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

type party struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

func (c *BrevoClient) Send(ctx context.Context, to, subject, htmlBody string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	payload := sendPayload{
		Sender:      party{Name: c.FromName, Email: c.FromEmail},
		To:          []party{{Email: to}},
		Subject:     subject,
		HTMLContent: htmlBody,
	}

	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		c.logger.Error().Int("status", res.StatusCode).Str("to", to).Msg("brevo send rejected")
		return &httpError{Status: res.StatusCode, Body: string(body)}
	}

	_ = json.NewDecoder(res.Body).Decode(&map[string]any{})
	return nil
}

type httpError struct {
	Status int
	Body   string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("brevo send failed: status %d: %s", e.Status, e.Body)
}
