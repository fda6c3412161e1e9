package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
)

// Client is the interface for fetching a single quote from the external
// price source. It exists so tests can substitute a mock implementation.
type Client interface {
	GlobalQuote(ctx context.Context, symbol string) (model.Quote, error)
}

// QuoteClient fetches quotes from an Alpha Vantage compatible HTTP API.
type QuoteClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewQuoteClient creates a new quote client for the given API base URL and key.
func NewQuoteClient(baseURL, apiKey string) *QuoteClient {
	return &QuoteClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// SetAPIKey replaces the API key used for subsequent requests.
func (c *QuoteClient) SetAPIKey(apiKey string) {
	c.apiKey = apiKey
}

// GlobalQuote fetches the current quote for one symbol.
// Any failure (transport error, provider error message, missing price field)
// is returned as an error for the caller to handle; the client itself does
// not retry.
func (c *QuoteClient) GlobalQuote(ctx context.Context, symbol string) (model.Quote, error) {
	endpoint := fmt.Sprintf(
		"%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		c.baseURL,
		url.QueryEscape(symbol),
		url.QueryEscape(c.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Quote{}, err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Quote{}, fmt.Errorf("unexpected status %d for symbol %s", resp.StatusCode, symbol)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Quote{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return model.Quote{}, fmt.Errorf("failed to decode quote response: %w", err)
	}

	return ParseGlobalQuote(symbol, response)
}

// ParseGlobalQuote converts a raw provider response into a typed Quote.
// It rejects responses carrying a provider error, a rate-limit note, or a
// missing/unparseable price, so malformed data never reaches the cache.
func ParseGlobalQuote(symbol string, response Response) (model.Quote, error) {
	if response.ErrorMsg != "" {
		return model.Quote{}, fmt.Errorf("provider error for %s: %s", symbol, response.ErrorMsg)
	}
	if response.Note != "" {
		return model.Quote{}, fmt.Errorf("provider rate limit for %s: %s", symbol, response.Note)
	}
	if response.GlobalQuote.Price == "" {
		return model.Quote{}, fmt.Errorf("no quote returned for symbol %s", symbol)
	}

	price, err := strconv.ParseFloat(response.GlobalQuote.Price, 64)
	if err != nil {
		return model.Quote{}, fmt.Errorf("invalid price for %s: %w", symbol, err)
	}

	// Change, change percent and volume are optional in practice; default
	// them rather than failing the whole quote.
	change := 0.0
	if response.GlobalQuote.Change != "" {
		change, err = strconv.ParseFloat(response.GlobalQuote.Change, 64)
		if err != nil {
			return model.Quote{}, fmt.Errorf("invalid change for %s: %w", symbol, err)
		}
	}

	var volume int64
	if response.GlobalQuote.Volume != "" {
		volume, err = strconv.ParseInt(response.GlobalQuote.Volume, 10, 64)
		if err != nil {
			return model.Quote{}, fmt.Errorf("invalid volume for %s: %w", symbol, err)
		}
	}

	changePercent := response.GlobalQuote.ChangePercent
	if changePercent == "" {
		changePercent = "0%"
	}

	return model.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        volume,
		LastUpdated:   time.Now().UTC(),
	}, nil
}
