// internal/engine/score_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapshot(totalRevenue, topRevenue, avgPrice, avgReviews float64) MarketSnapshot {
	return MarketSnapshot{
		TotalRevenue:       totalRevenue,
		AveragePrice:       avgPrice,
		AverageReviewCount: avgReviews,
		TopSeller:          EnrichedListing{EstimatedRevenue: topRevenue},
		ListingCount:       10,
	}
}

func TestScoreHotMarketScenario(t *testing.T) {
	// Ten listings at $50k revenue each, avg 250 reviews, avg price $30,
	// top seller $50k.
	s := Score(snapshot(500000, 50000, 30, 250))

	assert.Equal(t, 10, s.Demand)
	assert.Equal(t, 9.5, s.Competition)
	assert.Equal(t, 10, s.Dominance)
	assert.Equal(t, 10, s.Opportunity) // round(10*0.4 + 9.5*0.4 + 10*0.2) = round(9.8)
	assert.Equal(t, VerdictHot, s.Verdict)
	assert.Equal(t, MarketOpen, s.Status)

	// PL viability: 9.5*0.4 + 10*0.3 + (10 - 10/10)*0.3 = 9.5
	assert.Equal(t, 9.5, s.PLViability)
	assert.Equal(t, "Excellent", s.PLViabilityTier)
}

func TestDemandThresholds(t *testing.T) {
	tests := []struct {
		revenue float64
		want    int
	}{
		{600000, 10}, {500000, 10}, {499999, 9}, {300000, 9},
		{200000, 8}, {150000, 7}, {100000, 6}, {75000, 5},
		{50000, 4}, {25000, 3}, {10000, 2}, {9999, 1}, {0, 1},
	}
	for _, tt := range tests {
		s := Score(snapshot(tt.revenue, tt.revenue/10, 30, 100))
		assert.Equal(t, tt.want, s.Demand, "revenue %.0f", tt.revenue)
	}
}

func TestCompetitionClampsAtZero(t *testing.T) {
	s := Score(snapshot(100000, 10000, 30, 5000))
	assert.Equal(t, 0.0, s.Competition)

	s = Score(snapshot(100000, 10000, 30, 7500))
	assert.Equal(t, 0.0, s.Competition)
}

func TestDominanceZeroRevenue(t *testing.T) {
	s := Score(snapshot(0, 0, 30, 100))
	assert.Equal(t, 0, s.Dominance)
}

func TestPriceTierScore(t *testing.T) {
	tests := []struct {
		avgPrice float64
		want     int
	}{
		{15, 10}, {30, 10}, {50, 10},
		{10, 6}, {14.99, 6}, {50.01, 6}, {70, 6},
		{5, 3}, {9.99, 3}, {70.01, 3}, {200, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, priceTierScore(tt.avgPrice), "avg price %.2f", tt.avgPrice)
	}
}

func TestVerdictCutoffs(t *testing.T) {
	for opp := 0; opp <= 10; opp++ {
		v := verdictFor(opp)
		switch {
		case opp >= 7:
			assert.Equal(t, VerdictHot, v, "opportunity %d", opp)
		case opp >= 4:
			assert.Equal(t, VerdictOK, v, "opportunity %d", opp)
		default:
			assert.Equal(t, VerdictBad, v, "opportunity %d", opp)
		}
	}
}

func TestViabilityTiers(t *testing.T) {
	assert.Equal(t, "Excellent", viabilityTier(8.0))
	assert.Equal(t, "Medium", viabilityTier(7.9))
	assert.Equal(t, "Medium", viabilityTier(5.0))
	assert.Equal(t, "Low", viabilityTier(4.9))
}

func TestMarketStatus(t *testing.T) {
	assert.Equal(t, MarketOpen, statusFor(0))
	assert.Equal(t, MarketOpen, statusFor(29))
	assert.Equal(t, MarketContested, statusFor(30))
	assert.Equal(t, MarketContested, statusFor(49))
	assert.Equal(t, MarketLocked, statusFor(50))
	assert.Equal(t, MarketLocked, statusFor(100))
}

func TestScoreBoundsHoldOnHostileSnapshots(t *testing.T) {
	snaps := []MarketSnapshot{
		snapshot(0, 0, 0, 0),
		snapshot(1e12, 1e12, -50, -100),
		snapshot(100, 1e9, 9999, 1e6),
		{TopSeller: EnrichedListing{EstimatedRevenue: -100}, TotalRevenue: -5},
	}
	for _, snap := range snaps {
		s := Score(snap)
		assert.GreaterOrEqual(t, s.Demand, 0)
		assert.LessOrEqual(t, s.Demand, 10)
		assert.GreaterOrEqual(t, s.Competition, 0.0)
		assert.LessOrEqual(t, s.Competition, 10.0)
		assert.GreaterOrEqual(t, s.Dominance, 0)
		assert.LessOrEqual(t, s.Dominance, 100)
		assert.GreaterOrEqual(t, s.PLViability, 0.0)
		assert.LessOrEqual(t, s.PLViability, 10.0)
		assert.GreaterOrEqual(t, s.Opportunity, 0)
		assert.LessOrEqual(t, s.Opportunity, 10)
	}
}
