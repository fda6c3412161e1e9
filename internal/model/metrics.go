package model

// RiskLevel classifies a portfolio by its Technology sector weight.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// Metrics holds statistical summaries derived from a valuation snapshot.
// HasReturns is false when every holding had a gain percent of exactly zero,
// in which case AvgReturn, Volatility and SharpeRatio are not meaningful.
type Metrics struct {
	AvgReturn        float64            `json:"avgReturn"`
	Volatility       float64            `json:"volatility"`
	SharpeRatio      float64            `json:"sharpeRatio"`
	HasReturns       bool               `json:"hasReturns"`
	SectorAllocation map[string]float64 `json:"sectorAllocation"`
	RiskLevel        RiskLevel          `json:"riskLevel"`
}

// Recommendation is a single advisory message produced by the rule engine.
// The order of recommendations reflects rule evaluation order, not priority.
type Recommendation struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}
