package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
)

// MockQuoteClient is a mock implementation of marketdata.Client for testing.
// It returns predefined quotes per symbol instead of calling the provider.
// Safe for concurrent use; the market service fetches symbols in parallel.
type MockQuoteClient struct {
	mu sync.Mutex

	// Quotes maps symbols to the quote to return.
	Quotes map[string]model.Quote
	// Errors maps symbols to an error to return instead of a quote.
	Errors map[string]error
	// Calls records every symbol queried, in call order.
	Calls []string
	// InFlight and MaxInFlight track concurrent calls for pool-limit assertions.
	InFlight    int
	MaxInFlight int
	// Delay, when non-zero, is slept per call to make overlap observable.
	Delay time.Duration
}

// NewMockQuoteClient creates an empty mock; configure it with WithQuote and
// WithError.
func NewMockQuoteClient() *MockQuoteClient {
	return &MockQuoteClient{
		Quotes: make(map[string]model.Quote),
		Errors: make(map[string]error),
	}
}

// WithQuote configures the mock to return a quote at the given price.
func (m *MockQuoteClient) WithQuote(symbol string, price float64) *MockQuoteClient {
	m.Quotes[symbol] = model.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        0,
		ChangePercent: "0%",
		Volume:        1000,
		LastUpdated:   time.Now().UTC(),
	}
	return m
}

// WithError configures the mock to fail for the given symbol.
func (m *MockQuoteClient) WithError(symbol string, err error) *MockQuoteClient {
	m.Errors[symbol] = err
	return m
}

// WithDelay makes each call sleep, so concurrency limits become observable.
func (m *MockQuoteClient) WithDelay(d time.Duration) *MockQuoteClient {
	m.Delay = d
	return m
}

// GlobalQuote returns the configured quote or error for the symbol.
func (m *MockQuoteClient) GlobalQuote(_ context.Context, symbol string) (model.Quote, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, symbol)
	m.InFlight++
	if m.InFlight > m.MaxInFlight {
		m.MaxInFlight = m.InFlight
	}
	delay := m.Delay
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	m.mu.Lock()
	m.InFlight--
	err := m.Errors[symbol]
	quote, ok := m.Quotes[symbol]
	m.mu.Unlock()

	if err != nil {
		return model.Quote{}, err
	}
	if !ok {
		return model.Quote{}, errUnknownSymbol(symbol)
	}
	return quote, nil
}

// CallCount returns how many times GlobalQuote was invoked.
func (m *MockQuoteClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

type errUnknownSymbol string

func (e errUnknownSymbol) Error() string {
	return "no mock quote configured for symbol " + string(e)
}
