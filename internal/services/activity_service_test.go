// internal/services/activity_service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityServiceRecordAndRecent(t *testing.T) {
	svc := NewActivityService(50)

	svc.Record(ActivityEntry{Keyword: "yoga mat", Verdict: "HOT", Dominance: 20})
	svc.Record(ActivityEntry{Keyword: "garlic press", Verdict: "BAD", Dominance: 80})

	recent := svc.Recent()
	assert.Len(t, recent, 2)
	assert.Equal(t, "garlic press", recent[0].Keyword, "feed should be newest-first")
	assert.Equal(t, "yoga mat", recent[1].Keyword)
	assert.False(t, recent[0].CreatedAt.IsZero())
}

func TestActivityServiceRingEviction(t *testing.T) {
	svc := NewActivityService(50)

	for i := 0; i < 60; i++ {
		svc.Record(ActivityEntry{Keyword: fmt.Sprintf("keyword-%d", i), Verdict: "OK"})
	}

	recent := svc.Recent()
	assert.Len(t, recent, 50)
	assert.Equal(t, "keyword-59", recent[0].Keyword)
	assert.Equal(t, "keyword-10", recent[49].Keyword, "oldest entries should be evicted")
}

func TestActivityServiceStatsSurviveEviction(t *testing.T) {
	svc := NewActivityService(5)

	for i := 0; i < 20; i++ {
		verdict := "OK"
		if i%2 == 0 {
			verdict = "HOT"
		}
		svc.Record(ActivityEntry{Keyword: fmt.Sprintf("k%d", i), Verdict: verdict, Dominance: 50})
	}

	stats := svc.Stats()
	assert.Equal(t, 20, stats.TotalScans, "counters cover the whole lifetime, not just the ring")
	assert.Equal(t, 10, stats.HotMarkets)
	assert.InDelta(t, 50.0, stats.AvgDominance, 0.001)
	assert.Equal(t, []string{"k19", "k18", "k17", "k16", "k15"}, stats.RecentSearches)
}

func TestActivityServiceWrapAround(t *testing.T) {
	svc := NewActivityService(3)

	svc.Record(ActivityEntry{Keyword: "one"})
	svc.Record(ActivityEntry{Keyword: "two"})

	recent := svc.Recent()
	require.Len(t, recent, 2, "partially filled ring reports only what it holds")
	assert.Equal(t, "two", recent[0].Keyword)
	assert.Equal(t, "one", recent[1].Keyword)

	// Push past the buffer boundary twice over.
	for _, kw := range []string{"three", "four", "five", "six", "seven"} {
		svc.Record(ActivityEntry{Keyword: kw})
	}

	recent = svc.Recent()
	require.Len(t, recent, 3)
	assert.Equal(t, "seven", recent[0].Keyword)
	assert.Equal(t, "six", recent[1].Keyword)
	assert.Equal(t, "five", recent[2].Keyword)

	stats := svc.Stats()
	assert.Equal(t, 7, stats.TotalScans)
	assert.Equal(t, []string{"seven", "six", "five"}, stats.RecentSearches)
}

func TestActivityServiceStatsEmpty(t *testing.T) {
	svc := NewActivityService(10)

	stats := svc.Stats()
	assert.Equal(t, 0, stats.TotalScans)
	assert.Equal(t, 0, stats.HotMarkets)
	assert.Zero(t, stats.AvgDominance)
	assert.Empty(t, stats.RecentSearches)
}
