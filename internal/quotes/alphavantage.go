// Package quotes normalizes Alpha Vantage symbol-search and quote responses.
// The provider is advisory auto-fill, not authoritative pricing, so every
// failure mode degrades to "no data" instead of an error: callers must treat
// an empty result as an expected case.
package quotes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// requestTimeout caps a provider call; the endpoints here back interactive
// lookups, so a slow answer is as useless as no answer.
const requestTimeout = 10 * time.Second

type Match struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Region   string `json:"region"`
	Currency string `json:"currency"`
}

type AlphaVantageClient struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client

	logger zerolog.Logger
}

func NewAlphaVantageFromEnv(logger zerolog.Logger) *AlphaVantageClient {
	return &AlphaVantageClient{
		APIKey:  os.Getenv("ALPHAVANTAGE_API_KEY"),
		BaseURL: "https://www.alphavantage.co",
		HTTP:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// searchResponse carries Alpha Vantage's positional field names. "Note" is
// the rate-limit marker, "Error Message" the request-error marker.
type searchResponse struct {
	BestMatches []struct {
		Symbol   string `json:"1. symbol"`
		Name     string `json:"2. name"`
		Type     string `json:"3. type"`
		Region   string `json:"4. region"`
		Currency string `json:"8. currency"`
	} `json:"bestMatches"`
	Note         string `json:"Note"`
	ErrorMessage string `json:"Error Message"`
}

// Search maps provider matches into the canonical shape. Provider errors,
// rate limits and empty result sets all come back as an empty slice.
func (c *AlphaVantageClient) Search(ctx context.Context, keywords string) []Match {
	q := url.Values{}
	q.Set("function", "SYMBOL_SEARCH")
	q.Set("keywords", keywords)
	q.Set("apikey", c.APIKey)

	var parsed searchResponse
	if !c.fetch(ctx, q, &parsed) {
		return []Match{}
	}
	if parsed.ErrorMessage != "" {
		c.logger.Warn().Str("keywords", keywords).Str("error", parsed.ErrorMessage).Msg("symbol search rejected")
		return []Match{}
	}
	if parsed.Note != "" {
		c.logger.Warn().Str("keywords", keywords).Msg("symbol search rate limited")
		return []Match{}
	}

	out := make([]Match, 0, len(parsed.BestMatches))
	for _, m := range parsed.BestMatches {
		out = append(out, Match{
			Symbol:   m.Symbol,
			Name:     m.Name,
			Type:     m.Type,
			Region:   m.Region,
			Currency: m.Currency,
		})
	}
	return out
}

type quoteResponse struct {
	GlobalQuote struct {
		Price string `json:"05. price"`
	} `json:"Global Quote"`
}

// Quote returns the latest price for a symbol as the provider's exact
// decimal string, or ok=false when no price is available. The string is
// never reformatted through a float.
func (c *AlphaVantageClient) Quote(ctx context.Context, symbol string) (string, bool) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", c.APIKey)

	var parsed quoteResponse
	if !c.fetch(ctx, q, &parsed) {
		return "", false
	}
	if parsed.GlobalQuote.Price == "" {
		return "", false
	}
	return parsed.GlobalQuote.Price, true
}

// fetch performs a single best-effort call. No retries.
func (c *AlphaVantageClient) fetch(ctx context.Context, query url.Values, out any) bool {
	endpoint := c.BaseURL + "/query?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}

	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	res, err := client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("alpha vantage unreachable")
		return false
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		c.logger.Warn().Int("status", res.StatusCode).Msg("alpha vantage error status")
		return false
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Warn().Err(err).Msg("alpha vantage response unparseable")
		return false
	}
	return true
}
