package service

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// RefreshScheduler periodically re-fetches every known symbol so the price
// cache stays warm without user action. The cache itself has no TTL; this
// job is the only writer besides explicit refresh requests.
type RefreshScheduler struct {
	marketService *MarketService
	cron          *cron.Cron
}

// NewRefreshScheduler creates a scheduler that runs MarketService.RefreshAll
// on the given cron schedule (standard 5-field syntax).
func NewRefreshScheduler(marketService *MarketService, schedule string) (*RefreshScheduler, error) {
	s := &RefreshScheduler{
		marketService: marketService,
		cron:          cron.New(),
	}

	_, err := s.cron.AddFunc(schedule, func() {
		count, err := s.marketService.RefreshAll(context.Background())
		if err != nil {
			log.Printf("Scheduled market refresh failed: %v", err)
			return
		}
		log.Printf("Scheduled market refresh updated %d quotes", count)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}

	return s, nil
}

// Start begins running the schedule in its own goroutine.
func (s *RefreshScheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *RefreshScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
