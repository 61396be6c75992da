// internal/services/market_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakvibe/zakvibe-backend/internal/engine"
	"github.com/zakvibe/zakvibe-backend/internal/provider"
	"github.com/zakvibe/zakvibe-backend/internal/utils"
)

func testRecords() []engine.RawRecord {
	return []engine.RawRecord{
		{ASIN: "B0TESTAAA1", Title: "Anker Wireless Charger Pad", Brand: "Anker", Price: 25.99, Reviews: 12000, Rating: 4.6, IsPrime: true},
		{ASIN: "B0TESTBBB2", Title: "Belkin Fast Charging Stand", Brand: "Belkin", Price: 32.50, Reviews: 4300, Rating: 4.4, IsPrime: true},
		{ASIN: "B0TESTCCC3", Title: "Yootech Charging Pad 10W", Brand: "Yootech", Price: 13.99, Reviews: 800, Rating: 4.1, IsPrime: false},
	}
}

func newTestService(p provider.Provider) (*MarketService, *ActivityService) {
	activity := NewActivityService(50)
	svc := NewMarketService(p, activity, nil, logrus.New(), 5*time.Second)
	return svc, activity
}

func TestAnalyzeKeywordUsesProviderData(t *testing.T) {
	mock := provider.NewMock(testRecords())
	svc, activity := newTestService(mock)

	result, err := svc.AnalyzeKeyword(context.Background(), "wireless charger")
	require.NoError(t, err)

	assert.Equal(t, "wireless charger", result.Keyword)
	assert.Equal(t, "api", result.DataSource)
	assert.Equal(t, []string{"wireless charger"}, mock.Searches)
	assert.Len(t, result.Listings, 3)
	assert.Equal(t, 3, result.MarketData.SellerCount)
	assert.Equal(t, 3, result.MarketData.UniqueBrands)
	assert.Contains(t, []string{"HOT", "OK", "BAD"}, result.Verdict)
	assert.NotEmpty(t, result.Recommendation)

	// every alias carries the same estimate
	first := result.Listings[0]
	assert.Equal(t, first.Sales, first.EstSales)
	assert.Equal(t, first.Sales, first.EstimatedMonthlySales)
	assert.Equal(t, first.Revenue, first.EstimatedRevenue)
	assert.Greater(t, first.Sales, 0)
	assert.Greater(t, first.BSR, 0)
	assert.Regexp(t, `^-\$\d+\.\d{2}$`, first.Fees)

	// the analysis lands on the activity feed
	recent := activity.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, "wireless charger", recent[0].Keyword)
	assert.Equal(t, result.Verdict, recent[0].Verdict)
	assert.Equal(t, "api", recent[0].DataSource)
}

func TestAnalyzeKeywordProviderOffline(t *testing.T) {
	svc, activity := newTestService(&provider.Mock{Offline: true})

	_, err := svc.AnalyzeKeyword(context.Background(), "wireless charger")
	assert.ErrorIs(t, err, ErrNoData)
	assert.Empty(t, activity.Recent(), "failed analyses do not hit the feed")
}

func TestAnalyzeKeywordEmptyKeyword(t *testing.T) {
	svc, _ := newTestService(provider.NewMock(testRecords()))

	_, err := svc.AnalyzeKeyword(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestAnalyzeListingsFallsBackToHeuristics(t *testing.T) {
	mock := &provider.Mock{Err: provider.ErrUnavailable}
	svc, _ := newTestService(mock)

	result, err := svc.AnalyzeListings(context.Background(), "wireless charger", testRecords())
	require.NoError(t, err)

	assert.Equal(t, "heuristic", result.DataSource)
	assert.Len(t, result.Listings, 3)
	assert.NotEmpty(t, mock.Searches, "the provider is still attempted first")
}

func TestAnalyzeListingsPrefersProviderData(t *testing.T) {
	mock := provider.NewMock(testRecords())
	svc, _ := newTestService(mock)

	supplied := []engine.RawRecord{
		{ASIN: "B0SCRAPED01", Title: "Scraped Listing", Price: 9.99, Reviews: 10},
	}
	result, err := svc.AnalyzeListings(context.Background(), "wireless charger", supplied)
	require.NoError(t, err)

	assert.Equal(t, "api", result.DataSource)
	assert.Len(t, result.Listings, 3, "provider data wins over the scraped records")
}

func TestAnalyzeListingsWithoutKeywordSkipsProvider(t *testing.T) {
	mock := provider.NewMock(testRecords())
	svc, _ := newTestService(mock)

	result, err := svc.AnalyzeListings(context.Background(), "", testRecords())
	require.NoError(t, err)

	assert.Equal(t, "heuristic", result.DataSource)
	assert.Empty(t, mock.Searches)
}

func TestAnalyzeListingsNilProvider(t *testing.T) {
	svc, _ := newTestService(nil)

	result, err := svc.AnalyzeListings(context.Background(), "wireless charger", testRecords())
	require.NoError(t, err)
	assert.Equal(t, "heuristic", result.DataSource)
}

func TestAnalyzeListingsNoUsableRecords(t *testing.T) {
	svc, _ := newTestService(nil)

	malformed := []engine.RawRecord{{Title: "No identifier"}}
	_, err := svc.AnalyzeListings(context.Background(), "anything", malformed)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestAnalyzeCapsListingsAtTopTen(t *testing.T) {
	records := make([]engine.RawRecord, 16)
	for i := range records {
		records[i] = engine.RawRecord{
			ASIN:    string(rune('A'+i)) + "0TESTASIN",
			Title:   "Listing",
			Price:   19.99,
			Reviews: 100 * (i + 1),
		}
	}
	svc, _ := newTestService(nil)

	result, err := svc.AnalyzeListings(context.Background(), "", records)
	require.NoError(t, err)
	assert.Len(t, result.Listings, engine.TopListingCount)
}

func TestSourcingRequiresProvider(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Sourcing(context.Background(), "silicone spatula")
	assert.ErrorIs(t, err, provider.ErrNotConfigured)
}

func TestSourcingReturnsOffers(t *testing.T) {
	mock := &provider.Mock{Offers: []provider.SourcingOffer{
		{Source: "Shenzhen Housewares", Price: "$1.20", ExtractedPrice: 1.20},
	}}
	svc, _ := newTestService(mock)

	offers, err := svc.Sourcing(context.Background(), "silicone spatula")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "Shenzhen Housewares", offers[0].Source)
}

func TestHistoryWithoutDatabase(t *testing.T) {
	svc, _ := newTestService(nil)

	_, _, err := svc.History(utils.PaginationParams{Page: 1, Limit: 20})
	assert.Error(t, err)
}

func TestExtractKeyword(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain keyword", "yoga mat", "yoga mat"},
		{"search url", "https://www.amazon.com/s?k=yoga+mat&ref=nb_sb_noss", "yoga mat"},
		{"url without scheme", "www.amazon.com/s?k=garlic+press", "garlic press"},
		{"keywords param", "https://www.amazon.com/s?keywords=desk+lamp", "desk lamp"},
		{"url without keyword", "https://www.amazon.com/dp/B0TESTAAA1", ""},
		{"empty", "   ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractKeyword(tc.in))
		})
	}
}
