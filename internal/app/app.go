package app

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"

	"NewsPulse/internal/classify"
	"NewsPulse/internal/config"
	"NewsPulse/internal/enrich"
	"NewsPulse/internal/infrastructure/feed"
	"NewsPulse/internal/infrastructure/history"
	"NewsPulse/internal/infrastructure/llm"
	"NewsPulse/internal/infrastructure/store"
	"NewsPulse/internal/relevance"
	"NewsPulse/internal/source"
	"NewsPulse/internal/usecase"
)

// Application wires configs to the pipeline use case and owns shared handles.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	db       *sql.DB
}

// New builds a runnable application instance. The model backend and the
// history database are both optional; everything else is required.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Application, error) {
	if cfg.Pipeline.Threshold <= 0 || cfg.Pipeline.Threshold > 1 {
		return nil, goerr.New("confidence threshold must be in (0,1]",
			goerr.V("threshold", cfg.Pipeline.Threshold))
	}
	if cfg.Pipeline.RetentionDays <= 0 {
		return nil, goerr.New("retention horizon must be positive",
			goerr.V("retentionDays", cfg.Pipeline.RetentionDays))
	}

	registry := source.NewRegistry()
	registry.Register(feed.NewFileSource(logger.With("component", "source.file")))
	itemSource := feed.NewStrategySource(registry, cfg.Input, logger.With("component", "source"))

	datasetStore := store.NewFileStore(cfg.Output.Path, logger.With("component", "store"))

	var db *sql.DB
	if cfg.Database.DSN != "" {
		var err error
		db, err = history.Open(cfg.Database.DSN)
		if err != nil {
			logger.Warn("history database unavailable, cross-run dedup limited to previous dataset", "error", err)
			db = nil
		}
	}
	historyRepo := history.NewPostgresRepository(db)

	llmClient, err := llm.Configure(ctx, cfg.LLM)
	if err != nil {
		logger.Warn("LLM client unavailable, using rule-based processing", "error", err)
		llmClient = nil
	}

	rules := classify.NewRuleBased(cfg.Categories)
	classifier := classify.Resolve(ctx, llmClient, rules, logger.With("component", "classifier"))

	enricher := enrich.NewEnricher(
		enrich.NewEntityExtractor(llmClient, cfg.Entities, logger.With("component", "entities")),
		enrich.NewDifficultyScorer(cfg.Categories, cfg.Difficulty),
		enrich.NewSummarizer(llmClient, cfg.Relevance, logger.With("component", "summary")),
		cfg.Pipeline.Language,
	)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:   itemSource,
		Store:    datasetStore,
		History:  historyRepo,
		Filter:   relevance.New(cfg.Relevance),
		Classify: classifier,
		Enricher: enricher,
		Logger:   logger.With("component", "pipeline"),
		Options: usecase.Options{
			Threshold:           cfg.Pipeline.Threshold,
			Limit:               cfg.Pipeline.Limit,
			RetentionDays:       cfg.Pipeline.RetentionDays,
			Workers:             cfg.Pipeline.Workers,
			SimilarityThreshold: cfg.Pipeline.SimilarityThreshold,
		},
	})

	return &Application{cfg: cfg, pipeline: pipeline, db: db}, nil
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) (*usecase.RunReport, error) {
	return a.pipeline.Run(ctx)
}

// Close releases shared resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
