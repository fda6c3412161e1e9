package model

import "time"

// Portfolio represents a portfolio from the database.
// A portfolio is owned by exactly one user and is never merged or split.
type Portfolio struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Lot is one immutable purchase record within a portfolio. Multiple lots of
// the same symbol are independent line items and are never netted.
type Lot struct {
	ID            string    `json:"id"`
	PortfolioID   string    `json:"portfolioId"`
	Symbol        string    `json:"symbol"`
	Quantity      float64   `json:"quantity"`
	PurchasePrice float64   `json:"purchasePrice"`
	PurchaseDate  time.Time `json:"purchaseDate"`
	CreatedAt     time.Time `json:"createdAt"`
}
