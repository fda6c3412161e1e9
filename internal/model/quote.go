package model

import "time"

// Quote is the most recently cached market snapshot for a symbol.
// At most one quote is cached per symbol; a refresh overwrites it in place.
// Staleness is visible through LastUpdated but the cache never self-evicts.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent string    `json:"changePercent"`
	Volume        int64     `json:"volume"`
	LastUpdated   time.Time `json:"lastUpdated"`
}
