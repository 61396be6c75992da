// internal/engine/estimator_test.go
package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func knownListing(asin string, price float64, reviews int, rating float64) RawListing {
	return RawListing{
		ASIN:         asin,
		Title:        "Test Product",
		Price:        price,
		PriceKnown:   true,
		ReviewCount:  reviews,
		ReviewsKnown: true,
		Rating:       rating,
	}
}

func TestAuthoritativeSalesFromReviews(t *testing.T) {
	l := knownListing("B0TESTASIN", 29.99, 1000, 4.5)
	e := AuthoritativeEstimator{}.Estimate(l, 1)

	assert.Equal(t, 150, e.EstimatedMonthlySales)
	assert.Equal(t, math.Round(29.99*150), e.EstimatedRevenue)
	assert.Equal(t, 100000/151, e.EstimatedRank)
	assert.False(t, e.PriceAssumed)
}

func TestAuthoritativeUnknownReviewsFallback(t *testing.T) {
	l := RawListing{ASIN: "B0NOREVIEW", Price: 19.99, PriceKnown: true}
	e := AuthoritativeEstimator{}.Estimate(l, 1)

	assert.GreaterOrEqual(t, e.EstimatedMonthlySales, 50)
	assert.Less(t, e.EstimatedMonthlySales, 250)
}

func TestAuthoritativeTinyReviewCountNeverZeroSales(t *testing.T) {
	// floor(3 * 0.15) would be zero, which is implausible for a listing
	// that appears in a live result set.
	l := knownListing("B0FEWREVS1", 9.99, 3, 4.0)
	e := AuthoritativeEstimator{}.Estimate(l, 1)
	assert.Greater(t, e.EstimatedMonthlySales, 0)
}

func TestEstimatorsAreDeterministic(t *testing.T) {
	sparse := RawListing{ASIN: "B0SPARSE01", Rating: 4.5}

	a1 := AuthoritativeEstimator{}.Estimate(sparse, 3)
	a2 := AuthoritativeEstimator{}.Estimate(sparse, 3)
	assert.Equal(t, a1, a2)

	h1 := HeuristicEstimator{}.Estimate(sparse, 3)
	h2 := HeuristicEstimator{}.Estimate(sparse, 3)
	assert.Equal(t, h1, h2)
}

func TestHeuristicSparseListing(t *testing.T) {
	// Unknown price and reviews must still produce a defined, plausible
	// estimate: no zeroes, no NaN.
	l := RawListing{ASIN: "B0SPARSE99"}
	e := HeuristicEstimator{}.Estimate(l, 1)

	assert.GreaterOrEqual(t, e.EstimatedMonthlySales, 10)
	assert.False(t, math.IsNaN(e.EstimatedRevenue))
	assert.Equal(t, DefaultListPrice, e.Price)
	assert.True(t, e.PriceAssumed)
	assert.Equal(t, math.Round(DefaultListPrice*float64(e.EstimatedMonthlySales)), e.EstimatedRevenue)
}

func TestHeuristicSalesCeiling(t *testing.T) {
	// Rank 1, dirt cheap, prime: the raw estimate blows past the cap
	// and must clamp deterministically.
	l := knownListing("B0CHEAP001", 1.00, 5000, 4.8)
	l.Prime = true
	e := HeuristicEstimator{}.Estimate(l, 1)

	assert.LessOrEqual(t, e.EstimatedMonthlySales, 12000)
	assert.Greater(t, e.EstimatedMonthlySales, 10000)

	again := HeuristicEstimator{}.Estimate(l, 1)
	assert.Equal(t, e.EstimatedMonthlySales, again.EstimatedMonthlySales)
}

func TestHeuristicSalesFloor(t *testing.T) {
	// Deep positions with expensive items drop under the floor and get
	// a deterministic hash-derived replacement.
	l := knownListing("B0DEEPPOS1", 500, 0, 3.0)
	e := HeuristicEstimator{}.Estimate(l, 1000)

	assert.GreaterOrEqual(t, e.EstimatedMonthlySales, 10)
	assert.Less(t, e.EstimatedMonthlySales, 30)
}

func TestHeuristicPositionDecay(t *testing.T) {
	l := knownListing("B0DECAY001", 24.99, 500, 4.5)
	first := HeuristicEstimator{}.Estimate(l, 1)
	tenth := HeuristicEstimator{}.Estimate(l, 10)
	assert.Greater(t, first.EstimatedMonthlySales, tenth.EstimatedMonthlySales)
}

func TestRevenueIsRoundedPriceTimesSales(t *testing.T) {
	prices := []float64{0.99, 7.77, 24.99, 49.95, 123.45}
	for _, p := range prices {
		l := knownListing("B0REVENUE1", p, 800, 4.3)
		for _, e := range []EnrichedListing{
			AuthoritativeEstimator{}.Estimate(l, 2),
			HeuristicEstimator{}.Estimate(l, 2),
		} {
			assert.Equal(t, math.Round(p*float64(e.EstimatedMonthlySales)), e.EstimatedRevenue)
			assert.GreaterOrEqual(t, e.EstimatedRevenue, 0.0)
		}
	}
}

func TestQualityScoreRange(t *testing.T) {
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'x'
	}
	best := RawListing{
		ASIN:         "B0QUALITY1",
		Title:        string(long),
		ImageURL:     "https://images.example.com/real.jpg",
		Rating:       4.6,
		ReviewCount:  500,
		ReviewsKnown: true,
		Price:        20,
		PriceKnown:   true,
	}
	worst := RawListing{ASIN: "B0QUALITY2", Title: "Short"}

	require.Equal(t, 9, AuthoritativeEstimator{}.Estimate(best, 1).QualityScore)
	require.Equal(t, 5, HeuristicEstimator{}.Estimate(worst, 1).QualityScore)
}

func TestQualityScoreIgnoresPlaceholderImage(t *testing.T) {
	l := RawListing{
		ASIN:     "B0PLACEHLD",
		Title:    "Short",
		ImageURL: "https://cdn.example.com/grey-pixel.gif",
	}
	e := HeuristicEstimator{}.Estimate(l, 1)
	assert.Equal(t, 5, e.QualityScore)
}

func TestFulfillmentFeeTiers(t *testing.T) {
	tests := []struct {
		price float64
		want  float64
	}{
		{10, 3.22},
		{15, 3.22},
		{15.01, 4.75},
		{25, 4.75},
		{25.01, 6.10},
		{50, 6.10},
		{50.01, 9.50},
		{120, 9.50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FulfillmentFeeForPrice(tt.price), "price %.2f", tt.price)
	}
}

func TestCalculateFeesNeverNegative(t *testing.T) {
	fees := CalculateFees(-10)
	assert.GreaterOrEqual(t, fees.ReferralFee, 0.0)
	assert.GreaterOrEqual(t, fees.FulfillmentFee, 0.0)

	fees = CalculateFees(40)
	assert.InDelta(t, 6.0, fees.ReferralFee, 1e-9)
	assert.Equal(t, 6.10, fees.FulfillmentFee)
	assert.InDelta(t, 12.10, fees.Total(), 1e-9)
}
