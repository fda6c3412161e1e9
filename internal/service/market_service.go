package service

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/marketdata"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/repository"
)

// MarketService fetches quotes from the external price source and writes
// them into the price cache. It is the only concurrent component: one fetch
// task per symbol runs on a bounded worker pool, joined before the cache
// write. A failing symbol is omitted from the result and never aborts the
// batch; sibling fetches keep their partial progress.
type MarketService struct {
	client         marketdata.Client
	quoteRepo      *repository.QuoteRepository
	lotRepo        *repository.LotRepository
	maxConcurrency int
	fetchTimeout   time.Duration
}

// NewMarketService creates a new MarketService.
// maxConcurrency bounds the number of in-flight fetches; fetchTimeout bounds
// total batch latency (zero disables the timeout).
func NewMarketService(
	client marketdata.Client,
	quoteRepo *repository.QuoteRepository,
	lotRepo *repository.LotRepository,
	maxConcurrency int,
	fetchTimeout time.Duration,
) *MarketService {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &MarketService{
		client:         client,
		quoteRepo:      quoteRepo,
		lotRepo:        lotRepo,
		maxConcurrency: maxConcurrency,
		fetchTimeout:   fetchTimeout,
	}
}

// FetchMarketData fetches quotes for the given symbols and upserts the
// successful ones into the cache as one batch.
//
// Per-symbol failures are logged and recovered by omission; the returned map
// contains only symbols that fetched successfully. No retry happens within a
// single call. The returned error reflects cache-write failure only, never a
// fetch failure.
func (s *MarketService) FetchMarketData(ctx context.Context, symbols []string) (map[string]model.Quote, error) {
	results := make(map[string]model.Quote)
	if len(symbols) == 0 {
		return results, nil
	}

	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			quote, err := s.client.GlobalQuote(ctx, symbol)
			if err != nil {
				// Isolated failure: drop the symbol, keep the batch going.
				log.Printf("Error fetching data for %s: %v", symbol, err)
				return nil
			}

			mu.Lock()
			results[symbol] = quote
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors, so this only acts as the fan-in barrier.
	_ = g.Wait()

	if err := s.quoteRepo.UpsertQuotes(results); err != nil {
		return nil, err
	}

	return results, nil
}

// GetCachedQuotes returns the cached quotes for the given symbols without
// touching the network. Symbols with no cache entry are absent from the map.
func (s *MarketService) GetCachedQuotes(symbols []string) (map[string]model.Quote, error) {
	return s.quoteRepo.GetQuotes(symbols)
}

// RefreshAll re-fetches every symbol known to the system: the union of
// symbols held in any ledger and symbols already cached. Used by the
// background refresh job to keep the cache warm.
func (s *MarketService) RefreshAll(ctx context.Context) (int, error) {
	held, err := s.lotRepo.GetAllSymbols()
	if err != nil {
		return 0, err
	}

	cached, err := s.quoteRepo.GetCachedSymbols()
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool)
	var symbols []string
	for _, s := range append(held, cached...) {
		if !seen[s] {
			seen[s] = true
			symbols = append(symbols, s)
		}
	}

	quotes, err := s.FetchMarketData(ctx, symbols)
	if err != nil {
		return 0, err
	}

	return len(quotes), nil
}
