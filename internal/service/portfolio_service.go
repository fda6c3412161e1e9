package service

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/repository"
)

// PortfolioService handles portfolio business logic: creating portfolios,
// appending purchase lots to the ledger, and computing valuation snapshots
// by joining the ledger against the price cache.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
	lotRepo       *repository.LotRepository
	quoteRepo     *repository.QuoteRepository
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependencies.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	lotRepo *repository.LotRepository,
	quoteRepo *repository.QuoteRepository,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		lotRepo:       lotRepo,
		quoteRepo:     quoteRepo,
	}
}

// CreatePortfolio creates a new named portfolio for a user.
func (s *PortfolioService) CreatePortfolio(userID, name string) (model.Portfolio, error) {
	portfolio := model.Portfolio{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.portfolioRepo.CreatePortfolio(portfolio); err != nil {
		return model.Portfolio{}, err
	}

	log.Printf("Created portfolio %s with ID %s for user %s", name, portfolio.ID, userID)

	return portfolio, nil
}

// GetPortfoliosForUser retrieves all portfolios owned by a user.
func (s *PortfolioService) GetPortfoliosForUser(userID string) ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfoliosByUserID(userID)
}

// AddLot appends a new immutable purchase lot to a portfolio's ledger.
// The portfolio must exist; lots are write-once and never netted.
func (s *PortfolioService) AddLot(portfolioID, symbol string, quantity, purchasePrice float64, purchaseDate time.Time) (model.Lot, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(portfolioID); err != nil {
		return model.Lot{}, err
	}

	lot := model.Lot{
		ID:            uuid.New().String(),
		PortfolioID:   portfolioID,
		Symbol:        symbol,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		PurchaseDate:  purchaseDate.UTC(),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.lotRepo.AddLot(lot); err != nil {
		return model.Lot{}, err
	}

	log.Printf("Added %v shares of %s to portfolio %s", quantity, symbol, portfolioID)

	return lot, nil
}

// GetValuation computes the current valuation snapshot for a portfolio.
//
// The snapshot joins the portfolio's lots against cached quotes only; no
// network call is made here. Callers wanting fresher data invoke the market
// service first and then revalue. A symbol with no cached quote values at
// price 0, which keeps missing-price lots visible instead of dropping them.
// The result is fully deterministic given ledger and cache contents.
func (s *PortfolioService) GetValuation(portfolioID string) (model.ValuationSnapshot, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return model.ValuationSnapshot{}, err
	}

	lots, err := s.lotRepo.GetLotsByPortfolioID(portfolioID)
	if err != nil {
		return model.ValuationSnapshot{}, err
	}

	snapshot := model.ValuationSnapshot{
		PortfolioID: portfolio.ID,
		Name:        portfolio.Name,
		UserID:      portfolio.UserID,
		Holdings:    []model.HoldingValuation{},
	}

	if len(lots) == 0 {
		return snapshot, nil
	}

	quotes, err := s.quoteRepo.GetQuotes(distinctSymbols(lots))
	if err != nil {
		return model.ValuationSnapshot{}, err
	}

	for _, lot := range lots {
		currentPrice := 0.0
		if quote, ok := quotes[lot.Symbol]; ok {
			currentPrice = quote.Price
		}

		currentValue := lot.Quantity * currentPrice
		costBasis := lot.Quantity * lot.PurchasePrice
		gain := currentValue - costBasis

		gainPercent := 0.0
		if costBasis > 0 {
			gainPercent = gain / costBasis * 100
		}

		snapshot.Holdings = append(snapshot.Holdings, model.HoldingValuation{
			LotID:         lot.ID,
			Symbol:        lot.Symbol,
			Quantity:      lot.Quantity,
			PurchasePrice: lot.PurchasePrice,
			PurchaseDate:  lot.PurchaseDate.Format("2006-01-02"),
			CurrentPrice:  currentPrice,
			CurrentValue:  currentValue,
			CostBasis:     costBasis,
			Gain:          gain,
			GainPercent:   gainPercent,
		})

		snapshot.TotalValue += currentValue
		snapshot.TotalCost += costBasis
	}

	snapshot.TotalGain = snapshot.TotalValue - snapshot.TotalCost
	if snapshot.TotalCost > 0 {
		snapshot.TotalGainPercent = snapshot.TotalGain / snapshot.TotalCost * 100
	}

	return snapshot, nil
}

// distinctSymbols returns the unique symbols across lots in first-seen order.
func distinctSymbols(lots []model.Lot) []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, lot := range lots {
		if !seen[lot.Symbol] {
			seen[lot.Symbol] = true
			symbols = append(symbols, lot.Symbol)
		}
	}
	return symbols
}
