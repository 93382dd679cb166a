package domain_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"NewsPulse/internal/domain"
)

func TestRank(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	items := []domain.EnrichedItem{
		{ID: "old", Title: "B old story", PubDate: base.Add(-time.Hour), Confidence: 0.95},
		{ID: "forum", Title: "A forum take", PubDate: base, Confidence: 0.9, SourceCategory: domain.SourceCommunityForum},
		{ID: "low", Title: "A low confidence item", PubDate: base, Confidence: 0.7},
		{ID: "high", Title: "Z high confidence story", PubDate: base, Confidence: 0.9},
	}

	domain.Rank(items)

	order := make([]string, 0, len(items))
	for _, item := range items {
		order = append(order, item.ID)
	}
	// Same timestamp: high tier beats low tier, non-forum beats forum within
	// a tier, and the older item sorts last despite top confidence.
	gt.Value(t, order).Equal([]string{"high", "forum", "low", "old"})
}

func TestLessIsTotalOrder(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	items := []domain.EnrichedItem{
		{Title: "a", PubDate: base, Confidence: 0.9},
		{Title: "a", PubDate: base, Confidence: 0.5},
		{Title: "b", PubDate: base, Confidence: 0.9, SourceCategory: domain.SourceCommunityForum},
		{Title: "b", PubDate: base.Add(time.Minute), Confidence: 0.1},
	}

	for i, a := range items {
		for j, b := range items {
			if i == j {
				continue
			}
			// Antisymmetry: exactly one direction holds for distinct items.
			gt.Value(t, domain.Less(a, b)).Equal(!domain.Less(b, a))
		}
	}
}

func TestSeenIDs(t *testing.T) {
	t.Parallel()

	var missing *domain.Dataset
	gt.Value(t, len(missing.SeenIDs())).Equal(0)

	ds := &domain.Dataset{Articles: []domain.EnrichedItem{{ID: "x"}, {ID: "y"}}}
	seen := ds.SeenIDs()
	gt.Bool(t, seen["x"]).True()
	gt.Bool(t, seen["y"]).True()
	gt.Bool(t, seen["z"]).False()
}
