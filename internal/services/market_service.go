// internal/services/market_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zakvibe/zakvibe-backend/internal/engine"
	"github.com/zakvibe/zakvibe-backend/internal/models"
	"github.com/zakvibe/zakvibe-backend/internal/provider"
	"github.com/zakvibe/zakvibe-backend/internal/utils"
)

// ErrNoData is returned when neither the data provider nor the caller
// supplied any listings worth analyzing.
var ErrNoData = errors.New("no market data available for this keyword")

// MarketService runs the full analysis pipeline: fetch or accept
// listings, normalize, estimate, aggregate, score, and record the
// result. db may be nil, in which case history lives only in the
// activity ring.
type MarketService struct {
	provider        provider.Provider
	activity        *ActivityService
	db              *gorm.DB
	logger          *logrus.Logger
	providerTimeout time.Duration
}

func NewMarketService(p provider.Provider, activity *ActivityService, db *gorm.DB, logger *logrus.Logger, providerTimeout time.Duration) *MarketService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if providerTimeout <= 0 {
		providerTimeout = 20 * time.Second
	}
	return &MarketService{
		provider:        p,
		activity:        activity,
		db:              db,
		logger:          logger,
		providerTimeout: providerTimeout,
	}
}

// FeeView renders the per-unit fee estimate for API consumers.
type FeeView struct {
	Referral    float64 `json:"referral"`
	Fulfillment float64 `json:"fulfillment"`
	Total       float64 `json:"total"`
}

// ListingView is one enriched listing as the API presents it. The
// sales and revenue figures are deliberately exposed under every alias
// historical clients have depended on.
type ListingView struct {
	ASIN                  string  `json:"asin"`
	Title                 string  `json:"title"`
	Brand                 string  `json:"brand"`
	Price                 float64 `json:"price"`
	Reviews               int     `json:"reviews"`
	Rating                float64 `json:"rating"`
	Position              int     `json:"position"`
	Sales                 int     `json:"sales"`
	EstSales              int     `json:"estSales"`
	EstimatedMonthlySales int     `json:"estimatedMonthlySales"`
	Revenue               float64 `json:"revenue"`
	EstimatedRevenue      float64 `json:"estimatedRevenue"`
	BSR                   int     `json:"bsr"`
	Fees                  string  `json:"fees"`
	FeeBreakdown          FeeView `json:"feeBreakdown"`
	LQS                   int     `json:"lqs"`
	Prime                 bool    `json:"prime"`
	PriceAssumed          bool    `json:"priceAssumed,omitempty"`
}

// MarketDataView is the aggregated snapshot block of an analysis.
type MarketDataView struct {
	TotalRevenue float64 `json:"totalRevenue"`
	TotalSales   int     `json:"totalSales"`
	AvgPrice     float64 `json:"avgPrice"`
	AvgReviews   float64 `json:"avgReviews"`
	AvgRating    float64 `json:"avgRating"`
	SellerCount  int     `json:"sellerCount"`
	UniqueBrands int     `json:"uniqueBrands"`
	MarketStatus string  `json:"marketStatus"`
}

// AnalysisResult is the complete scored market report for one keyword.
type AnalysisResult struct {
	Keyword          string         `json:"keyword"`
	DemandScore      float64        `json:"demandScore"`
	CompetitionScore float64        `json:"competitionScore"`
	Dominance        float64        `json:"dominance"`
	PLViability      float64        `json:"plViability"`
	PLViabilityText  string         `json:"plViabilityText"`
	OpportunityScore int            `json:"opportunityScore"`
	Verdict          string         `json:"verdict"`
	Recommendation   string         `json:"recommendation"`
	MarketData       MarketDataView `json:"marketData"`
	TopSeller        string         `json:"topSeller"`
	Listings         []ListingView  `json:"listings"`
	DataSource       string         `json:"dataSource"`
	DroppedListings  int            `json:"droppedListings,omitempty"`
	AnalyzedAt       time.Time      `json:"analyzedAt"`
}

// AnalyzeKeyword runs the authoritative path: the data provider is the
// only listing source, so a provider failure here means no analysis.
func (s *MarketService) AnalyzeKeyword(ctx context.Context, keyword string) (*AnalysisResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrNoData
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	records, err := s.fetchRecords(fetchCtx, keyword)
	if err != nil {
		return nil, err
	}

	result, err := s.analyze(keyword, records, engine.AuthoritativeEstimator{}, string(models.DataSourceAPI))
	if err != nil {
		return nil, err
	}

	s.record(result)
	return result, nil
}

// AnalyzeListings runs the x-ray path over caller-supplied records. The
// provider is still given a chance to supply authoritative data within
// the timeout; when it cannot, the heuristic estimator runs over the
// supplied records instead.
func (s *MarketService) AnalyzeListings(ctx context.Context, keyword string, records []engine.RawRecord) (*AnalysisResult, error) {
	keyword = strings.TrimSpace(keyword)

	if s.provider != nil && s.provider.Available() && keyword != "" {
		fetchCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
		apiRecords, err := s.provider.SearchProducts(fetchCtx, keyword)
		cancel()

		if err == nil {
			result, aerr := s.analyze(keyword, apiRecords, engine.AuthoritativeEstimator{}, string(models.DataSourceAPI))
			if aerr == nil {
				s.record(result)
				return result, nil
			}
			s.logger.WithField("keyword", keyword).WithError(aerr).Warn("provider data unusable, falling back to heuristics")
		} else {
			s.logProviderFailure(keyword, err)
		}
	}

	result, err := s.analyze(keyword, records, engine.HeuristicEstimator{}, string(models.DataSourceHeuristic))
	if err != nil {
		return nil, err
	}

	s.record(result)
	return result, nil
}

// Sourcing looks up supplier offers for a product query.
func (s *MarketService) Sourcing(ctx context.Context, query string) ([]provider.SourcingOffer, error) {
	if s.provider == nil {
		return nil, provider.ErrNotConfigured
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	return s.provider.FindSourcing(fetchCtx, query)
}

// History returns persisted analyses, newest first.
func (s *MarketService) History(params utils.PaginationParams) ([]models.Analysis, int64, error) {
	if s.db == nil {
		return nil, 0, errors.New("analysis history requires database persistence")
	}

	query := s.db.Model(&models.Analysis{})
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(keyword) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count analyses: %w", err)
	}

	allowedSortFields := []string{"created_at", "keyword", "verdict", "opportunity_score"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var analyses []models.Analysis
	if err := query.Find(&analyses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch analyses: %w", err)
	}

	return analyses, total, nil
}

func (s *MarketService) fetchRecords(ctx context.Context, keyword string) ([]engine.RawRecord, error) {
	if s.provider == nil {
		return nil, ErrNoData
	}

	records, err := s.provider.SearchProducts(ctx, keyword)
	if err != nil {
		s.logProviderFailure(keyword, err)
		return nil, ErrNoData
	}
	return records, nil
}

func (s *MarketService) logProviderFailure(keyword string, err error) {
	entry := s.logger.WithField("keyword", keyword).WithError(err)
	switch {
	case errors.Is(err, provider.ErrNotConfigured):
		entry.Info("data provider not configured")
	case errors.Is(err, context.DeadlineExceeded):
		entry.Warn("data provider timed out")
	default:
		entry.Warn("data provider request failed")
	}
}

func (s *MarketService) analyze(keyword string, records []engine.RawRecord, est engine.Estimator, dataSource string) (*AnalysisResult, error) {
	listings, dropped := engine.NormalizeAll(records)
	if dropped > 0 {
		s.logger.WithFields(logrus.Fields{
			"keyword": keyword,
			"dropped": dropped,
		}).Debug("dropped malformed listings")
	}
	if len(listings) == 0 {
		return nil, ErrNoData
	}

	enriched := make([]engine.EnrichedListing, len(listings))
	for i, l := range listings {
		enriched[i] = est.Estimate(l, i+1)
	}

	snapshot, err := engine.Aggregate(enriched)
	if err != nil {
		return nil, ErrNoData
	}
	scores := engine.Score(snapshot)

	top := enriched
	if len(top) > engine.TopListingCount {
		top = top[:engine.TopListingCount]
	}

	views := make([]ListingView, len(top))
	for i, l := range top {
		views[i] = listingView(l)
	}

	return &AnalysisResult{
		Keyword:          keyword,
		DemandScore:      float64(scores.Demand),
		CompetitionScore: scores.Competition,
		Dominance:        float64(scores.Dominance),
		PLViability:      scores.PLViability,
		PLViabilityText:  scores.PLViabilityTier,
		OpportunityScore: scores.Opportunity,
		Verdict:          string(scores.Verdict),
		Recommendation:   scores.Recommendation,
		MarketData: MarketDataView{
			TotalRevenue: snapshot.TotalRevenue,
			TotalSales:   snapshot.TotalSales,
			AvgPrice:     snapshot.AveragePrice,
			AvgReviews:   snapshot.AverageReviewCount,
			AvgRating:    snapshot.AverageRating,
			SellerCount:  snapshot.ListingCount,
			UniqueBrands: snapshot.UniqueBrands,
			MarketStatus: string(scores.Status),
		},
		TopSeller:       topSellerName(snapshot.TopSeller),
		Listings:        views,
		DataSource:      dataSource,
		DroppedListings: dropped,
		AnalyzedAt:      time.Now().UTC(),
	}, nil
}

func listingView(l engine.EnrichedListing) ListingView {
	return ListingView{
		ASIN:                  l.ASIN,
		Title:                 l.Title,
		Brand:                 l.Brand,
		Price:                 l.Price,
		Reviews:               l.ReviewCount,
		Rating:                l.Rating,
		Position:              l.Rank,
		Sales:                 l.EstimatedMonthlySales,
		EstSales:              l.EstimatedMonthlySales,
		EstimatedMonthlySales: l.EstimatedMonthlySales,
		Revenue:               l.EstimatedRevenue,
		EstimatedRevenue:      l.EstimatedRevenue,
		BSR:                   l.EstimatedRank,
		Fees:                  fmt.Sprintf("-$%.2f", l.Fees.Total()),
		FeeBreakdown: FeeView{
			Referral:    l.Fees.ReferralFee,
			Fulfillment: l.Fees.FulfillmentFee,
			Total:       l.Fees.Total(),
		},
		LQS:          l.QualityScore,
		Prime:        l.Prime,
		PriceAssumed: l.PriceAssumed,
	}
}

func topSellerName(top engine.EnrichedListing) string {
	if top.Brand != "" {
		return top.Brand
	}
	if top.Title != "" {
		return top.Title
	}
	return top.ASIN
}

func (s *MarketService) record(result *AnalysisResult) {
	if s.activity != nil {
		s.activity.Record(ActivityEntry{
			Keyword:          result.Keyword,
			Verdict:          result.Verdict,
			OpportunityScore: result.OpportunityScore,
			DemandScore:      result.DemandScore,
			CompetitionScore: result.CompetitionScore,
			Dominance:        result.Dominance,
			DataSource:       result.DataSource,
			CreatedAt:        result.AnalyzedAt,
		})
	}

	if s.db == nil {
		return
	}

	brands := make([]string, 0, len(result.Listings))
	seen := make(map[string]struct{}, len(result.Listings))
	for _, l := range result.Listings {
		if l.Brand == "" {
			continue
		}
		if _, ok := seen[l.Brand]; ok {
			continue
		}
		seen[l.Brand] = struct{}{}
		brands = append(brands, l.Brand)
	}

	record := &models.Analysis{
		Keyword:          result.Keyword,
		Verdict:          result.Verdict,
		OpportunityScore: result.OpportunityScore,
		DemandScore:      result.DemandScore,
		CompetitionScore: result.CompetitionScore,
		Dominance:        result.Dominance,
		PLViability:      result.PLViability,
		TotalRevenue:     result.MarketData.TotalRevenue,
		TotalSales:       result.MarketData.TotalSales,
		AvgPrice:         result.MarketData.AvgPrice,
		SellerCount:      result.MarketData.SellerCount,
		TopSeller:        result.TopSeller,
		TopBrands:        brands,
		MarketStatus:     result.MarketData.MarketStatus,
		DataSource:       models.DataSource(result.DataSource),
		Snapshot: models.JSONB{
			"avgReviews":   result.MarketData.AvgReviews,
			"avgRating":    result.MarketData.AvgRating,
			"uniqueBrands": result.MarketData.UniqueBrands,
			"listings":     len(result.Listings),
		},
	}

	if err := s.db.Create(record).Error; err != nil {
		s.logger.WithField("keyword", result.Keyword).WithError(err).Warn("failed to persist analysis")
	}
}

// ExtractKeyword pulls the search keyword out of a marketplace search
// URL ("...?k=wireless+earbuds..."). A string that does not look like a
// URL is treated as the keyword itself.
func ExtractKeyword(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if !strings.Contains(raw, "://") && !strings.HasPrefix(raw, "www.") {
		return raw
	}
	if strings.HasPrefix(raw, "www.") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	for _, param := range []string{"k", "keywords", "field-keywords"} {
		if v := u.Query().Get(param); v != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
