package feed

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"

	"NewsPulse/internal/config"
	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
	"NewsPulse/internal/source"
)

// StrategySource implements ItemSource via registered source strategies.
type StrategySource struct {
	registry *source.Registry
	cfg      config.InputConfig
	logger   *slog.Logger
}

var _ ports.ItemSource = (*StrategySource)(nil)

// NewStrategySource wires the registry with the config-selected input.
func NewStrategySource(reg *source.Registry, cfg config.InputConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		cfg:      cfg,
		logger:   log,
	}
}

// Fetch resolves the configured strategy and executes it.
func (s *StrategySource) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	if s.registry == nil {
		return nil, goerr.New("source registry is not configured")
	}

	strategy, err := s.registry.Resolve(s.cfg.Source)
	if err != nil {
		return nil, err
	}

	items, err := strategy.Fetch(ctx, source.Request{Path: s.cfg.Path})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch items", goerr.V("source", s.cfg.Source))
	}

	s.logger.Debug("source produced items", "source", s.cfg.Source, "count", len(items))
	return items, nil
}
