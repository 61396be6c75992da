// internal/engine/aggregate.go
package engine

import "errors"

// TopListingCount is how many listings, in caller-supplied rank order,
// feed the market aggregate.
const TopListingCount = 10

// ErrNoListings means zero listings survived normalization and
// enrichment for a market. Unlike sparse fields, this is a reportable
// failure: an empty market cannot produce a meaningful verdict.
var ErrNoListings = errors.New("no listings to aggregate")

// Aggregate reduces the top listings of a market to a snapshot of sums,
// means and the top seller. Callers are responsible for ordering by
// search rank before calling.
func Aggregate(listings []EnrichedListing) (MarketSnapshot, error) {
	if len(listings) == 0 {
		return MarketSnapshot{}, ErrNoListings
	}
	if len(listings) > TopListingCount {
		listings = listings[:TopListingCount]
	}

	snap := MarketSnapshot{
		ListingCount: len(listings),
		TopSeller:    listings[0],
	}

	var sumPrice, sumRating float64
	var sumReviews int
	brands := make(map[string]struct{}, len(listings))

	for _, l := range listings {
		snap.TotalRevenue += l.EstimatedRevenue
		snap.TotalSales += l.EstimatedMonthlySales
		sumPrice += l.Price
		sumReviews += l.ReviewCount
		sumRating += l.Rating
		if l.Brand != "" {
			brands[l.Brand] = struct{}{}
		}
		// Ties go to the earliest listing, hence strictly-greater.
		if l.EstimatedRevenue > snap.TopSeller.EstimatedRevenue {
			snap.TopSeller = l
		}
	}

	n := float64(len(listings))
	snap.AveragePrice = sumPrice / n
	snap.AverageReviewCount = float64(sumReviews) / n
	snap.AverageRating = sumRating / n
	snap.UniqueBrands = len(brands)

	return snap, nil
}
