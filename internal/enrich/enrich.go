package enrich

import (
	"context"
	"net/url"
	"strings"
	"time"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/fingerprint"
	"NewsPulse/internal/ports"
)

// Enricher runs the three enrichment sub-steps and assembles the final item.
// Each sub-step degrades independently; Enrich always returns a usable item.
type Enricher struct {
	entities   ports.EntityExtractor
	difficulty *DifficultyScorer
	summary    ports.Summarizer
	language   string
}

// NewEnricher wires the enrichment sub-steps.
func NewEnricher(entities ports.EntityExtractor, difficulty *DifficultyScorer, summary ports.Summarizer, language string) *Enricher {
	return &Enricher{
		entities:   entities,
		difficulty: difficulty,
		summary:    summary,
		language:   language,
	}
}

// Enrich builds the persisted representation of a classified item.
func (e *Enricher) Enrich(ctx context.Context, item domain.RawItem, cls domain.Classification, now time.Time) domain.EnrichedItem {
	return domain.EnrichedItem{
		ID:             fingerprint.Key(item.Title, item.URL),
		Title:          item.Title,
		URL:            item.URL,
		Source:         item.SourceName,
		SourceDomain:   sourceDomain(item.URL),
		SourceCategory: item.SourceCategory,
		PubDate:        item.PublishedAt,
		Category:       cls.Category,
		Confidence:     cls.Confidence,
		Difficulty:     e.difficulty.Score(cls.Category, item.Title),
		Entities:       e.entities.Extract(ctx, item.Title, item.Excerpt),
		Summary:        e.summary.Summarize(ctx, item, cls.Category),
		Language:       e.language,
		ProcessedAt:    now,
	}
}

func sourceDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
}
