package request

// RefreshMarketDataRequest represents the request body for a quote refresh.
type RefreshMarketDataRequest struct {
	Symbols []string `json:"symbols"`
}

// SetAPIKeyRequest represents the request body for storing the market-data
// provider API key.
type SetAPIKeyRequest struct {
	APIKey string `json:"apiKey"`
}
