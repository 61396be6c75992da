// internal/engine/listing.go
package engine

// RawRecord is one product record exactly as a collaborator supplied it:
// a scraped search-result card or a provider API row. Price, Reviews and
// Rating are left untyped because sources disagree on their shape (bare
// number, formatted string, or an object exposing a raw string and a
// numeric value).
type RawRecord struct {
	ASIN      string      `json:"asin"`
	Title     string      `json:"title"`
	Price     interface{} `json:"price"`
	Reviews   interface{} `json:"reviews"`
	Rating    interface{} `json:"rating"`
	Position  int         `json:"position"`
	Brand     string      `json:"brand"`
	ImageURL  string      `json:"imgUrl"`
	Thumbnail string      `json:"thumbnail"`
	IsPrime   bool        `json:"isPrime"`
	Link      string      `json:"link"`
}

// RawListing is the canonical, validated form of a record. Every field
// except ASIN may carry an "unknown" sentinel; the Known flags tell
// downstream heuristics whether a real signal was present.
type RawListing struct {
	ASIN         string
	Title        string
	Price        float64
	PriceKnown   bool
	ReviewCount  int
	ReviewsKnown bool
	Rating       float64
	Rank         int // 1-based position in the result set
	Brand        string
	ImageURL     string
	Link         string
	Prime        bool // featured-fulfillment badge
}

// FeeBreakdown is the per-unit marketplace fee estimate.
type FeeBreakdown struct {
	ReferralFee    float64 `json:"referralFee"`
	FulfillmentFee float64 `json:"fulfillmentFee"`
}

// Total returns the combined per-unit fee.
func (f FeeBreakdown) Total() float64 {
	return f.ReferralFee + f.FulfillmentFee
}

// EnrichedListing is a RawListing plus the derived financial estimates.
// Created once by an estimator and never mutated afterward.
type EnrichedListing struct {
	RawListing

	EstimatedMonthlySales int
	EstimatedRevenue      float64 // round(Price * EstimatedMonthlySales)
	EstimatedRank         int     // synthesized BSR, >= 1
	QualityScore          int     // 5..9
	Fees                  FeeBreakdown

	// PriceAssumed marks listings whose price was unknown and replaced
	// with DefaultListPrice so revenue and fee arithmetic stay defined.
	PriceAssumed bool
}

// MarketSnapshot aggregates the top listings of one search market.
type MarketSnapshot struct {
	TotalRevenue       float64
	TotalSales         int
	AveragePrice       float64
	AverageReviewCount float64
	AverageRating      float64
	TopSeller          EnrichedListing
	ListingCount       int
	UniqueBrands       int
}

// Verdict is the final market classification.
type Verdict string

const (
	VerdictHot Verdict = "HOT"
	VerdictOK  Verdict = "OK"
	VerdictBad Verdict = "BAD"
)

// MarketStatus describes how contested a market is, from dominance.
type MarketStatus string

const (
	MarketOpen      MarketStatus = "OPEN"
	MarketContested MarketStatus = "CONTESTED"
	MarketLocked    MarketStatus = "LOCKED"
)

// ScoreSet is the Scorer output for one MarketSnapshot. Every bounded
// score is clamped to its documented range before it is combined into a
// composite, not only at the end.
type ScoreSet struct {
	Demand          int     // 0..10
	Competition     float64 // 0..10, one decimal
	Dominance       int     // 0..100 percent
	PLViability     float64 // 0..10, one decimal
	PLViabilityTier string  // Low / Medium / Excellent
	Opportunity     int     // 0..10
	Verdict         Verdict
	Status          MarketStatus
	Recommendation  string
}
