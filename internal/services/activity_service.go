// internal/services/activity_service.go
package services

import (
	"sync"
	"time"
)

// ActivityEntry is one completed analysis as shown on the activity feed.
type ActivityEntry struct {
	Keyword          string    `json:"keyword"`
	Verdict          string    `json:"verdict"`
	OpportunityScore int       `json:"opportunity_score"`
	DemandScore      float64   `json:"demand_score"`
	CompetitionScore float64   `json:"competition_score"`
	Dominance        float64   `json:"dominance"`
	DataSource       string    `json:"data_source"`
	CreatedAt        time.Time `json:"created_at"`
}

// ActivityStats summarizes everything the service has scored since boot.
type ActivityStats struct {
	TotalScans     int      `json:"total_scans"`
	HotMarkets     int      `json:"hot_markets"`
	AvgDominance   float64  `json:"avg_dominance"`
	RecentSearches []string `json:"recent_searches"`
}

// ActivityService keeps a bounded in-memory feed of recent analyses in
// a fixed circular buffer: head is the next write slot and count how
// many slots are filled. The counters cover the whole process lifetime
// regardless of what the ring has overwritten.
type ActivityService struct {
	mu           sync.Mutex
	entries      []ActivityEntry // fixed length, allocated once
	head         int
	count        int
	totalScans   int
	hotMarkets   int
	dominanceSum float64
}

func NewActivityService(size int) *ActivityService {
	if size < 1 {
		size = 1
	}
	return &ActivityService{
		entries: make([]ActivityEntry, size),
	}
}

func (s *ActivityService) Record(entry ActivityEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	s.entries[s.head] = entry
	s.head = (s.head + 1) % len(s.entries)
	if s.count < len(s.entries) {
		s.count++
	}

	s.totalScans++
	if entry.Verdict == "HOT" {
		s.hotMarkets++
	}
	s.dominanceSum += entry.Dominance
}

// Recent returns the feed newest-first.
func (s *ActivityService) Recent() []ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ActivityEntry, s.count)
	for i := range out {
		out[i] = s.entryBack(i)
	}
	return out
}

func (s *ActivityService) Stats() ActivityStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := ActivityStats{
		TotalScans: s.totalScans,
		HotMarkets: s.hotMarkets,
	}
	if s.totalScans > 0 {
		stats.AvgDominance = s.dominanceSum / float64(s.totalScans)
	}

	limit := 5
	if s.count < limit {
		limit = s.count
	}
	stats.RecentSearches = make([]string, limit)
	for i := range stats.RecentSearches {
		stats.RecentSearches[i] = s.entryBack(i).Keyword
	}
	return stats
}

// entryBack returns the i-th newest entry. Callers hold the lock and
// keep i < count.
func (s *ActivityService) entryBack(i int) ActivityEntry {
	idx := (s.head - 1 - i + 2*len(s.entries)) % len(s.entries)
	return s.entries[idx]
}
