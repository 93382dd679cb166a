package ports

import (
	"context"

	"NewsPulse/internal/domain"
)

// ItemSource hands over the raw items produced by the fetch collaborator.
type ItemSource interface {
	Fetch(ctx context.Context) ([]domain.RawItem, error)
}

// Classifier assigns ranked category labels to an item's text. The returned
// slice is ordered best-first and never empty; implementations absorb their
// own failures and degrade to a low-confidence fallback label instead of
// returning an error for an individual item.
type Classifier interface {
	Classify(ctx context.Context, title, excerpt string) ([]domain.RankedLabel, error)
}

// EntityExtractor pulls organization/product/technology mentions from text.
type EntityExtractor interface {
	Extract(ctx context.Context, title, excerpt string) domain.Entities
}

// Summarizer produces a short, never-empty summary for an item.
type Summarizer interface {
	Summarize(ctx context.Context, item domain.RawItem, category domain.Category) string
}

// DatasetStore loads the previous run's dataset and atomically persists the
// merged result. Load reports ok=false when no previous dataset exists.
type DatasetStore interface {
	Load(ctx context.Context) (*domain.Dataset, bool, error)
	Persist(ctx context.Context, dataset *domain.Dataset) error
}

// HistoryRepository tracks processed item IDs across runs for dedup/audit.
// Implementations are nil-safe: an unconfigured repository sees nothing and
// records nothing.
type HistoryRepository interface {
	SeenIDs(ctx context.Context, ids []string) (map[string]bool, error)
	MarkProcessed(ctx context.Context, items []domain.EnrichedItem) error
}
