// internal/provider/provider.go
package provider

import (
	"context"
	"errors"

	"github.com/zakvibe/zakvibe-backend/internal/engine"
)

// Sentinel errors. ErrNotConfigured means the deployment intentionally
// runs without a data provider credential; ErrUnavailable means a
// configured provider failed or returned nothing usable. Callers treat
// both as "fall back to heuristics" but log them differently so
// operators can tell intentionally-offline from transient failure.
var (
	ErrNotConfigured = errors.New("provider: credential not configured")
	ErrUnavailable   = errors.New("provider: unavailable")
)

// SourcingOffer is one supplier offer found for a product query.
type SourcingOffer struct {
	Source         string  `json:"source"`
	Price          string  `json:"price"`
	ExtractedPrice float64 `json:"extracted_price"`
	Delivery       string  `json:"delivery"`
	Rating         float64 `json:"rating"`
	Link           string  `json:"link"`
	Thumbnail      string  `json:"thumbnail"`
}

// Provider resolves a search keyword to raw product records with real
// review figures, and looks up sourcing offers for a product query.
type Provider interface {
	// Available reports whether the provider is configured and usable.
	Available() bool

	// SearchProducts returns the organic results for a keyword, in rank
	// order. A configured provider that fails or returns zero results
	// yields ErrUnavailable; a missing credential yields ErrNotConfigured.
	SearchProducts(ctx context.Context, keyword string) ([]engine.RawRecord, error)

	// FindSourcing returns supplier offers for a product query.
	FindSourcing(ctx context.Context, query string) ([]SourcingOffer, error)

	// Name identifies the provider in logs and data-source tags.
	Name() string
}
