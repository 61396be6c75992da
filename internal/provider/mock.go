// internal/provider/mock.go
package provider

import (
	"context"

	"github.com/zakvibe/zakvibe-backend/internal/engine"
)

// Mock is a canned provider for tests and offline development.
type Mock struct {
	Records  []engine.RawRecord
	Offers   []SourcingOffer
	Err      error
	Offline  bool
	Searches []string
}

func NewMock(records []engine.RawRecord) *Mock {
	return &Mock{Records: records}
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Available() bool { return !m.Offline }

func (m *Mock) SearchProducts(_ context.Context, keyword string) ([]engine.RawRecord, error) {
	m.Searches = append(m.Searches, keyword)
	if m.Offline {
		return nil, ErrNotConfigured
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Records) == 0 {
		return nil, ErrUnavailable
	}
	return m.Records, nil
}

func (m *Mock) FindSourcing(_ context.Context, _ string) ([]SourcingOffer, error) {
	if m.Offline {
		return nil, ErrNotConfigured
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Offers, nil
}
