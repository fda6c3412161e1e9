package model

// HoldingValuation is the computed value of a single lot against the current
// cached quote. A symbol without a cached quote values at price 0; that makes
// missing-price lots visibly zero instead of silently excluded.
type HoldingValuation struct {
	LotID         string  `json:"lotId"`
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
	PurchaseDate  string  `json:"purchaseDate"` // YYYY-MM-DD
	CurrentPrice  float64 `json:"currentPrice"`
	CurrentValue  float64 `json:"currentValue"`
	CostBasis     float64 `json:"costBasis"`
	Gain          float64 `json:"gain"`
	GainPercent   float64 `json:"gainPercent"`
}

// ValuationSnapshot is the derived, non-persisted valuation of a portfolio.
// It is recomputed on every read from the current lots and cached quotes.
// Totals are straight sums over lots; two lots of the same symbol contribute
// two line items.
type ValuationSnapshot struct {
	PortfolioID      string             `json:"portfolioId"`
	Name             string             `json:"name"`
	UserID           string             `json:"userId"`
	Holdings         []HoldingValuation `json:"holdings"`
	TotalValue       float64            `json:"totalValue"`
	TotalCost        float64            `json:"totalCost"`
	TotalGain        float64            `json:"totalGain"`
	TotalGainPercent float64            `json:"totalGainPercent"`
}
