// internal/provider/serpapi.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/zakvibe/zakvibe-backend/internal/engine"
)

// SerpClient talks to a SerpApi-compatible search endpoint for live
// Amazon result pages and Google Shopping sourcing offers.
type SerpClient struct {
	apiKey       string
	baseURL      string
	amazonDomain string
	httpClient   *http.Client
	limiter      *rate.Limiter
	maxRetries   int
}

// SerpConfig configures a SerpClient. Zero values get sane defaults.
type SerpConfig struct {
	APIKey         string
	BaseURL        string
	AmazonDomain   string
	RequestTimeout time.Duration
	RequestsPerSec float64
	MaxRetries     int
}

const defaultSerpBaseURL = "https://serpapi.com/search.json"

// NewSerpClient creates a rate-limited client. A client without an API
// key is still constructable so the orchestrator can probe Available()
// and fall back cleanly instead of panicking at boot.
func NewSerpClient(cfg SerpConfig) *SerpClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultSerpBaseURL
	}
	if cfg.AmazonDomain == "" {
		cfg.AmazonDomain = "amazon.com"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 2
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 3
	}
	return &SerpClient{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		amazonDomain: cfg.AmazonDomain,
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		limiter:      rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), int(cfg.RequestsPerSec)+1),
		maxRetries:   cfg.MaxRetries,
	}
}

func (c *SerpClient) Name() string { return "serpapi" }

func (c *SerpClient) Available() bool { return c.apiKey != "" }

type serpResponse struct {
	OrganicResults  []serpOrganicResult `json:"organic_results"`
	ShoppingResults []SourcingOffer     `json:"shopping_results"`
	Error           string              `json:"error"`
}

type serpOrganicResult struct {
	Position     int         `json:"position"`
	ASIN         string      `json:"asin"`
	Title        string      `json:"title"`
	Price        interface{} `json:"price"`
	Rating       interface{} `json:"rating"`
	Reviews      interface{} `json:"reviews"`
	RatingsTotal interface{} `json:"ratings_total"`
	Brand        string      `json:"brand"`
	Thumbnail    string      `json:"thumbnail"`
	Link         string      `json:"link"`
	IsPrime      bool        `json:"is_prime"`
}

// SearchProducts runs an Amazon search and returns the organic results
// as raw records in rank order.
func (c *SerpClient) SearchProducts(ctx context.Context, keyword string) ([]engine.RawRecord, error) {
	if !c.Available() {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("engine", "amazon")
	params.Set("amazon_domain", c.amazonDomain)
	params.Set("k", keyword)

	var resp serpResponse
	if err := c.getJSON(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Error)
	}
	if len(resp.OrganicResults) == 0 {
		return nil, fmt.Errorf("%w: zero organic results for %q", ErrUnavailable, keyword)
	}

	records := make([]engine.RawRecord, 0, len(resp.OrganicResults))
	for i, r := range resp.OrganicResults {
		reviews := r.Reviews
		if reviews == nil {
			reviews = r.RatingsTotal
		}
		pos := r.Position
		if pos < 1 {
			pos = i + 1
		}
		records = append(records, engine.RawRecord{
			ASIN:      r.ASIN,
			Title:     r.Title,
			Price:     r.Price,
			Reviews:   reviews,
			Rating:    r.Rating,
			Position:  pos,
			Brand:     r.Brand,
			Thumbnail: r.Thumbnail,
			Link:      r.Link,
			IsPrime:   r.IsPrime,
		})
	}
	return records, nil
}

// FindSourcing runs a Google Shopping query and returns up to ten
// supplier offers.
func (c *SerpClient) FindSourcing(ctx context.Context, query string) ([]SourcingOffer, error) {
	if !c.Available() {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("engine", "google_shopping")
	params.Set("q", query)
	params.Set("google_domain", "google.com")
	params.Set("gl", "us")
	params.Set("hl", "en")

	var resp serpResponse
	if err := c.getJSON(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Error)
	}

	offers := resp.ShoppingResults
	if len(offers) > 10 {
		offers = offers[:10]
	}
	return offers, nil
}

// getJSON performs a rate-limited GET with retry and 429 handling.
func (c *SerpClient) getJSON(ctx context.Context, params url.Values, out interface{}) error {
	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			sleepWithContext(ctx, time.Duration(attempt+1)*time.Second)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			lastErr = fmt.Errorf("rate limited (429)")
			sleepWithContext(ctx, time.Duration(5*(attempt+1))*time.Second)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: parse response: %v", ErrUnavailable, err)
		}
		return nil
	}

	return fmt.Errorf("%w: retries exhausted: %v", ErrUnavailable, lastErr)
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
