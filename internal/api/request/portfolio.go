package request

// CreatePortfolioRequest represents the request body for creating a portfolio.
type CreatePortfolioRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// AddLotRequest represents the request body for appending a purchase lot
// to a portfolio's ledger. PurchaseDate is YYYY-MM-DD or RFC3339.
type AddLotRequest struct {
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
	PurchaseDate  string  `json:"purchaseDate"`
}
