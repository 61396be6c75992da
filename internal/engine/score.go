// internal/engine/score.go
package engine

import "math"

// Demand score thresholds: total top-10 revenue to 0..10 steps.
var demandThresholds = []struct {
	revenue float64
	score   int
}{
	{500000, 10},
	{300000, 9},
	{200000, 8},
	{150000, 7},
	{100000, 6},
	{75000, 5},
	{50000, 4},
	{25000, 3},
	{10000, 2},
}

const competitionReviewDivisor = 500

// Opportunity weighting: demand and competition dominate, price tier
// nudges.
const (
	opportunityDemandWeight      = 0.4
	opportunityCompetitionWeight = 0.4
	opportunityPriceWeight       = 0.2
)

// PL viability weighting.
const (
	viabilityCompetitionWeight = 0.4
	viabilityDemandWeight      = 0.3
	viabilityDominanceWeight   = 0.3
)

// Viability tier cutoffs. Two call sites of the predecessor system
// disagreed on the Excellent cutoff (7 vs 8); 8 is the product decision
// here and lives in one named constant so it stays auditable.
const (
	viabilityExcellentMin = 8.0
	viabilityMediumMin    = 5.0
)

// Verdict cutoffs over the opportunity score.
const (
	verdictHotMin = 7
	verdictOKMin  = 4
)

// Dominance cutoffs for the market status label.
const (
	statusOpenMaxDominance      = 30
	statusContestedMaxDominance = 50
)

// Score converts a market snapshot into the five normalized scores and
// the final verdict. Pure function, total over any non-empty snapshot;
// every intermediate score is clamped to its documented range before it
// feeds a composite.
func Score(snap MarketSnapshot) ScoreSet {
	demand := clampInt(demandScore(snap.TotalRevenue), 0, 10)
	competition := round1(clampFloat(10-snap.AverageReviewCount/competitionReviewDivisor, 0, 10))
	dominance := clampInt(dominancePercent(snap), 0, 100)
	priceTier := priceTierScore(snap.AveragePrice)

	opportunity := clampInt(int(math.Round(
		float64(demand)*opportunityDemandWeight+
			competition*opportunityCompetitionWeight+
			float64(priceTier)*opportunityPriceWeight)), 0, 10)

	viability := round1(clampFloat(
		competition*viabilityCompetitionWeight+
			float64(demand)*viabilityDemandWeight+
			math.Max(0, 10-float64(dominance)/10)*viabilityDominanceWeight, 0, 10))

	verdict := verdictFor(opportunity)

	return ScoreSet{
		Demand:          demand,
		Competition:     competition,
		Dominance:       dominance,
		PLViability:     viability,
		PLViabilityTier: viabilityTier(viability),
		Opportunity:     opportunity,
		Verdict:         verdict,
		Status:          statusFor(dominance),
		Recommendation:  recommendationFor(verdict),
	}
}

func demandScore(totalRevenue float64) int {
	for _, t := range demandThresholds {
		if totalRevenue >= t.revenue {
			return t.score
		}
	}
	return 1
}

func dominancePercent(snap MarketSnapshot) int {
	if snap.TotalRevenue == 0 {
		return 0
	}
	return int(math.Round(snap.TopSeller.EstimatedRevenue / snap.TotalRevenue * 100))
}

// priceTierScore is internal to the opportunity formula: the 15-50
// sweet spot scores 10, the adjacent bands 6, everything else 3.
func priceTierScore(avgPrice float64) int {
	switch {
	case avgPrice >= 15 && avgPrice <= 50:
		return 10
	case (avgPrice >= 10 && avgPrice < 15) || (avgPrice > 50 && avgPrice <= 70):
		return 6
	default:
		return 3
	}
}

func viabilityTier(score float64) string {
	switch {
	case score >= viabilityExcellentMin:
		return "Excellent"
	case score >= viabilityMediumMin:
		return "Medium"
	default:
		return "Low"
	}
}

func verdictFor(opportunity int) Verdict {
	switch {
	case opportunity >= verdictHotMin:
		return VerdictHot
	case opportunity >= verdictOKMin:
		return VerdictOK
	default:
		return VerdictBad
	}
}

func statusFor(dominance int) MarketStatus {
	switch {
	case dominance < statusOpenMaxDominance:
		return MarketOpen
	case dominance < statusContestedMaxDominance:
		return MarketContested
	default:
		return MarketLocked
	}
}

func recommendationFor(v Verdict) string {
	switch v {
	case VerdictHot:
		return "This market shows strong potential for new entrants!"
	case VerdictOK:
		return "Proceed with caution - moderate competition detected."
	default:
		return "High barriers to entry - consider alternative niches."
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
