package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/enrich"
	"NewsPulse/internal/fingerprint"
	"NewsPulse/internal/ports"
	"NewsPulse/internal/relevance"
)

// Options are the run-level knobs supplied by the invoking collaborator.
type Options struct {
	Threshold           float64
	Limit               int
	RetentionDays       int
	Workers             int
	SimilarityThreshold float64
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source   ports.ItemSource
	Store    ports.DatasetStore
	History  ports.HistoryRepository
	Filter   *relevance.Filter
	Classify ports.Classifier
	Enricher *enrich.Enricher
	Logger   *slog.Logger
	Options  Options
}

// Pipeline implements the classification-and-deduplication workflow.
type Pipeline struct {
	source   ports.ItemSource
	store    ports.DatasetStore
	history  ports.HistoryRepository
	filter   *relevance.Filter
	classify ports.Classifier
	enricher *enrich.Enricher
	logger   *slog.Logger
	opts     Options
}

// RunReport summarizes one pipeline run for the invoking collaborator.
type RunReport struct {
	RunID      string
	Fetched    int
	Relevant   int
	Duplicates int
	Skipped    int
	Accepted   int
	Rejected   int
	Merged     int
	Pruned     int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:   deps.Source,
		store:    deps.Store,
		history:  deps.History,
		filter:   deps.Filter,
		classify: deps.Classify,
		enricher: deps.Enricher,
		logger:   deps.Logger,
		opts:     deps.Options,
	}
}

// Accept is the confidence gate: an item passes iff its classification
// confidence reaches the threshold. Monotone in the threshold by definition.
func Accept(confidence, threshold float64) bool {
	return confidence >= threshold
}

// Run executes one full pipeline pass and persists the merged dataset. Only
// two conditions are fatal: the item input cannot be read at all, or the
// dataset cannot be written. Everything else degrades locally.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	now := time.Now().UTC()
	report := &RunReport{RunID: uuid.NewString()}
	logger := p.logger.With("run_id", report.RunID)

	items, err := p.source.Fetch(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch raw items")
	}
	report.Fetched = len(items)

	previous, ok, err := p.store.Load(ctx)
	if err != nil {
		logger.Warn("previous dataset unreadable, proceeding with full reprocessing", "error", err)
		previous = nil
	} else if !ok {
		logger.Info("no previous dataset, starting fresh")
	}

	// Newest first, so the first instance of a duplicate is the freshest.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	if p.opts.Limit > 0 && len(items) > p.opts.Limit {
		items = items[:p.opts.Limit]
	}

	relevant := make([]domain.RawItem, 0, len(items))
	for _, item := range items {
		if p.filter.IsRelevant(item) {
			relevant = append(relevant, item)
		}
	}
	report.Relevant = len(relevant)

	deduped := fingerprint.Dedupe(relevant)
	report.Duplicates = len(relevant) - len(deduped)

	fresh := p.dropSeen(ctx, logger, previous, deduped, report)

	accepted := p.process(ctx, logger, fresh, now, report)

	merged, pruned := p.merge(previous, accepted, now)
	report.Merged = len(merged)
	report.Pruned = pruned

	domain.Rank(merged)
	// Annotations from earlier runs may point at items the retention cut just
	// removed, so grouping starts from a clean slate every run.
	for i := range merged {
		merged[i].DuplicateOf = ""
	}
	fingerprint.GroupNearDuplicates(merged, p.opts.SimilarityThreshold)

	dataset := buildDataset(merged, now)
	if err := p.store.Persist(ctx, dataset); err != nil {
		return nil, goerr.Wrap(err, "failed to persist dataset")
	}

	if err := p.history.MarkProcessed(ctx, accepted); err != nil {
		logger.Warn("failed to record processed items in history", "error", err)
	}

	logger.Info("pipeline run completed",
		"fetched", report.Fetched,
		"relevant", report.Relevant,
		"duplicates", report.Duplicates,
		"skipped", report.Skipped,
		"accepted", report.Accepted,
		"rejected", report.Rejected,
		"merged", report.Merged,
		"pruned", report.Pruned,
	)

	return report, nil
}

// dropSeen removes items whose derived ID is already present in the previous
// dataset or the cross-run history, so they are never reprocessed.
func (p *Pipeline) dropSeen(ctx context.Context, logger *slog.Logger, previous *domain.Dataset, items []domain.RawItem, report *RunReport) []domain.RawItem {
	seen := previous.SeenIDs()

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, fingerprint.Key(item.Title, item.URL))
	}
	historic, err := p.history.SeenIDs(ctx, ids)
	if err != nil {
		logger.Warn("history lookup failed, relying on previous dataset only", "error", err)
		historic = map[string]bool{}
	}

	fresh := make([]domain.RawItem, 0, len(items))
	for i, item := range items {
		if seen[ids[i]] || historic[ids[i]] {
			report.Skipped++
			continue
		}
		fresh = append(fresh, item)
	}
	return fresh
}

// process classifies and enriches items on a bounded worker pool, then
// applies the confidence gate. Results are written by index, so parallel
// execution cannot perturb ordering.
func (p *Pipeline) process(ctx context.Context, logger *slog.Logger, items []domain.RawItem, now time.Time, report *RunReport) []domain.EnrichedItem {
	workers := p.opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]domain.EnrichedItem, len(items))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, item := range items {
		eg.Go(func() error {
			cls := domain.Classification{Category: domain.CategoryGeneral, Confidence: 0.6}
			labels, err := p.classify.Classify(gctx, item.Title, item.Excerpt)
			if err != nil || len(labels) == 0 {
				logger.Warn("classification failed, using fallback category", "title", item.Title, "error", err)
			} else {
				cls = domain.Classification{Category: labels[0].Category, Confidence: labels[0].Confidence}
			}

			results[i] = p.enricher.Enrich(gctx, item, cls, now)
			return nil
		})
	}
	// Workers absorb their own failures; Wait only drains the pool.
	_ = eg.Wait()

	accepted := make([]domain.EnrichedItem, 0, len(results))
	for _, item := range results {
		if !Accept(item.Confidence, p.opts.Threshold) {
			report.Rejected++
			logger.Debug("item rejected by confidence gate",
				"id", item.ID, "confidence", item.Confidence, "threshold", p.opts.Threshold)
			continue
		}
		accepted = append(accepted, item)
	}
	report.Accepted = len(accepted)

	return accepted
}

// merge combines the previous dataset with newly accepted items, keeps IDs
// unique (previous wins), and drops everything older than the retention
// horizon so the dataset cannot grow unbounded even if the external cleanup
// collaborator is skipped.
func (p *Pipeline) merge(previous *domain.Dataset, accepted []domain.EnrichedItem, now time.Time) ([]domain.EnrichedItem, int) {
	var prevItems []domain.EnrichedItem
	if previous != nil {
		prevItems = previous.Articles
	}

	cutoff := now.AddDate(0, 0, -p.opts.RetentionDays)
	seen := make(map[string]struct{}, len(prevItems)+len(accepted))
	merged := make([]domain.EnrichedItem, 0, len(prevItems)+len(accepted))
	pruned := 0

	appendItem := func(item domain.EnrichedItem) {
		if _, ok := seen[item.ID]; ok {
			return
		}
		if item.PubDate.Before(cutoff) {
			pruned++
			return
		}
		seen[item.ID] = struct{}{}
		merged = append(merged, item)
	}

	for _, item := range prevItems {
		appendItem(item)
	}
	for _, item := range accepted {
		appendItem(item)
	}

	return merged, pruned
}

func buildDataset(items []domain.EnrichedItem, now time.Time) *domain.Dataset {
	counts := map[string]int{}
	for _, item := range items {
		counts[string(item.Category)]++
	}

	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	return &domain.Dataset{
		ProcessedAt:    now,
		TotalArticles:  len(items),
		Categories:     categories,
		CategoryCounts: counts,
		Articles:       items,
	}
}
