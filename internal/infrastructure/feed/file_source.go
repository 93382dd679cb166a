// Package feed adapts the fetch collaborator's item export into the pipeline's
// item source port.
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/source"
)

// exportItem mirrors one entry of the fetch collaborator's JSON export.
type exportItem struct {
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	SourceCategory string    `json:"sourceCategory"`
	PubDate        time.Time `json:"pubDate"`
	Excerpt        string    `json:"excerpt"`
}

type exportDocument struct {
	Items []exportItem `json:"items"`
}

// FileSource reads raw items from the fetch collaborator's export document.
type FileSource struct {
	logger *slog.Logger
}

var _ source.Strategy = (*FileSource)(nil)

// NewFileSource wires a logger for discard diagnostics.
func NewFileSource(logger *slog.Logger) *FileSource {
	return &FileSource{logger: logger}
}

// Name identifies the strategy inside the registry.
func (f *FileSource) Name() string {
	return "file"
}

// Fetch parses the export and drops entries violating the non-empty
// title/url invariant; such entries are the fetch collaborator's defects and
// are discarded without error.
func (f *FileSource) Fetch(ctx context.Context, req source.Request) ([]domain.RawItem, error) {
	raw, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read item export", goerr.V("path", req.Path))
	}

	var doc exportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse item export", goerr.V("path", req.Path))
	}

	items := make([]domain.RawItem, 0, len(doc.Items))
	discarded := 0
	for _, entry := range doc.Items {
		if strings.TrimSpace(entry.Title) == "" || strings.TrimSpace(entry.URL) == "" {
			discarded++
			continue
		}
		items = append(items, domain.RawItem{
			Title:          entry.Title,
			URL:            entry.URL,
			SourceName:     entry.Source,
			SourceCategory: domain.ParseSourceCategory(entry.SourceCategory),
			PublishedAt:    entry.PubDate,
			Excerpt:        entry.Excerpt,
		})
	}

	if discarded > 0 {
		f.logger.Warn("discarded invalid export entries", "count", discarded, "path", req.Path)
	}

	return items, nil
}
