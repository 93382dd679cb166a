package domain

import (
	"sort"
	"time"
)

// Dataset is the persisted output of a pipeline run. Once written it is
// read-only input for the site renderer and for the next run's merge step.
type Dataset struct {
	ProcessedAt    time.Time      `json:"processedAt"`
	TotalArticles  int            `json:"totalArticles"`
	Categories     []string       `json:"categories"`
	CategoryCounts map[string]int `json:"categoryCounts"`
	Articles       []EnrichedItem `json:"articles"`
}

// SeenIDs returns the set of item IDs already present in the dataset.
func (d *Dataset) SeenIDs() map[string]bool {
	if d == nil {
		return map[string]bool{}
	}
	seen := make(map[string]bool, len(d.Articles))
	for _, a := range d.Articles {
		seen[a.ID] = true
	}
	return seen
}

const confidenceTier = 0.8

// Less defines the presentation order of the dataset: newest first, then
// high-confidence items, then non-forum sources, then title ascending. The
// order is strict and total so ranked output is reproducible.
func Less(a, b EnrichedItem) bool {
	if !a.PubDate.Equal(b.PubDate) {
		return a.PubDate.After(b.PubDate)
	}
	aHigh := a.Confidence > confidenceTier
	bHigh := b.Confidence > confidenceTier
	if aHigh != bHigh {
		return aHigh
	}
	aForum := a.SourceCategory == SourceCommunityForum
	bForum := b.SourceCategory == SourceCommunityForum
	if aForum != bForum {
		return bForum
	}
	return a.Title < b.Title
}

// Rank sorts items into presentation order in place.
func Rank(items []EnrichedItem) {
	sort.Slice(items, func(i, j int) bool {
		return Less(items[i], items[j])
	})
}
