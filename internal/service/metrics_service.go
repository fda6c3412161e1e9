package service

import (
	"math"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
)

// sectors is the static reference table mapping known symbols to sector
// names. Symbols outside the table fall back to "Other". This mapping is
// fixed data, not discovered at runtime.
var sectors = map[string]string{
	"AAPL":  "Technology",
	"MSFT":  "Technology",
	"GOOGL": "Technology",
	"AMZN":  "Consumer Cyclical",
	"TSLA":  "Automotive",
	"JPM":   "Financial",
	"JNJ":   "Healthcare",
	"XOM":   "Energy",
	"WMT":   "Consumer Defensive",
	"V":     "Financial",
	"PG":    "Consumer Defensive",
	"DIS":   "Communication Services",
}

// riskProfiles is the static target asset mix per risk profile.
// This is configuration reference data used by the recommendation rules.
var riskProfiles = map[model.RiskProfile]model.RiskProfileTarget{
	model.RiskProfileConservative: {
		Stocks:      40,
		Bonds:       50,
		Cash:        10,
		Description: "Low risk, income-focused portfolio",
	},
	model.RiskProfileModerate: {
		Stocks:      60,
		Bonds:       35,
		Cash:        5,
		Description: "Balanced growth and income portfolio",
	},
	model.RiskProfileAggressive: {
		Stocks:      80,
		Bonds:       15,
		Cash:        5,
		Description: "High growth potential with higher risk",
	},
}

// Technology-weight thresholds for the risk classifier. The exact values are
// part of the external contract and must not change.
const (
	techWeightHigh   = 0.4
	techWeightMedium = 0.2
)

// recommendationRule is one predicate in the ordered rule list. Evaluation
// order determines display order; Priority is advisory metadata only.
type recommendationRule struct {
	Type     string
	Message  string
	Priority string
	When     func(snapshot model.ValuationSnapshot, sectorAllocation map[string]float64, profile model.RiskProfile) bool
}

// recommendationRules is evaluated top to bottom against a snapshot.
var recommendationRules = []recommendationRule{
	{
		Type:     "Rebalance",
		Message:  "Technology sector overweight. Consider diversifying into other sectors.",
		Priority: "High",
		When: func(snapshot model.ValuationSnapshot, sectorAllocation map[string]float64, _ model.RiskProfile) bool {
			return sectorAllocation["Technology"]/snapshot.TotalValue > techWeightHigh
		},
	},
	{
		Type:     "Diversification",
		Message:  "Consider adding bond ETFs for stability and income.",
		Priority: "Medium",
		When: func(snapshot model.ValuationSnapshot, sectorAllocation map[string]float64, profile model.RiskProfile) bool {
			return profile == model.RiskProfileConservative &&
				sectorAllocation["Bonds"]/snapshot.TotalValue < 0.4
		},
	},
}

// MetricsService derives statistical summaries and rule-based
// recommendations from a valuation snapshot. It is pure computation over the
// snapshot; nothing here touches storage or the network.
type MetricsService struct{}

// NewMetricsService creates a new MetricsService.
func NewMetricsService() *MetricsService {
	return &MetricsService{}
}

// RiskProfileTargets returns the static risk-profile reference table.
func (s *MetricsService) RiskProfileTargets() map[model.RiskProfile]model.RiskProfileTarget {
	return riskProfiles
}

// ComputeMetrics derives metrics from a valuation snapshot.
// Returns (zero Metrics, false) when the snapshot has no holdings.
//
// Holdings with a gain percent of exactly zero are excluded from the return
// sample. That also removes lots priced at 0 by a cache miss, so a cold
// cache does not drag the average down.
func (s *MetricsService) ComputeMetrics(snapshot model.ValuationSnapshot) (model.Metrics, bool) {
	if len(snapshot.Holdings) == 0 {
		return model.Metrics{}, false
	}

	metrics := model.Metrics{
		SectorAllocation: make(map[string]float64),
	}

	var returns []float64
	for _, holding := range snapshot.Holdings {
		if holding.GainPercent != 0 {
			returns = append(returns, holding.GainPercent/100)
		}
	}

	if len(returns) > 0 {
		metrics.HasReturns = true
		metrics.AvgReturn = mean(returns)
		if len(returns) > 1 {
			metrics.Volatility = sampleStdDev(returns, metrics.AvgReturn)
		}
		if metrics.Volatility > 0 {
			metrics.SharpeRatio = metrics.AvgReturn / metrics.Volatility
		}
	}

	for _, holding := range snapshot.Holdings {
		sector, ok := sectors[holding.Symbol]
		if !ok {
			sector = "Other"
		}
		metrics.SectorAllocation[sector] += holding.CurrentValue
	}

	metrics.RiskLevel = classifyRisk(metrics.SectorAllocation, snapshot.TotalValue)

	return metrics, true
}

// Recommendations evaluates the ordered rule list against a snapshot.
// An empty portfolio (total value 0) produces no recommendations.
func (s *MetricsService) Recommendations(snapshot model.ValuationSnapshot, profile model.RiskProfile) []model.Recommendation {
	recommendations := []model.Recommendation{}
	if snapshot.TotalValue == 0 {
		return recommendations
	}

	sectorAllocation := make(map[string]float64)
	for _, holding := range snapshot.Holdings {
		sector, ok := sectors[holding.Symbol]
		if !ok {
			sector = "Other"
		}
		sectorAllocation[sector] += holding.CurrentValue
	}

	for _, rule := range recommendationRules {
		if rule.When(snapshot, sectorAllocation, profile) {
			recommendations = append(recommendations, model.Recommendation{
				Type:     rule.Type,
				Message:  rule.Message,
				Priority: rule.Priority,
			})
		}
	}

	return recommendations
}

// classifyRisk maps the Technology sector weight to a risk level.
// High iff weight > 0.4, Medium iff weight > 0.2, else Low. A total value of
// zero classifies as Low rather than dividing by zero.
func classifyRisk(sectorAllocation map[string]float64, totalValue float64) model.RiskLevel {
	techWeight := 0.0
	if totalValue > 0 {
		techWeight = sectorAllocation["Technology"] / totalValue
	}

	switch {
	case techWeight > techWeightHigh:
		return model.RiskLevelHigh
	case techWeight > techWeightMedium:
		return model.RiskLevelMedium
	default:
		return model.RiskLevelLow
	}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev is the sample (n-1) standard deviation. Callers guard the
// len < 2 case; a single sample has no defined deviation.
func sampleStdDev(values []float64, mean float64) float64 {
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}
