package relevance

import (
	"strings"

	"NewsPulse/internal/config"
	"NewsPulse/internal/domain"
)

// Filter decides whether an item is topically in scope before any expensive
// work is spent on it. Deterministic for fixed keyword and source lists, no
// side effects.
type Filter struct {
	keywords []string
	sources  []string
	trusted  map[domain.SourceCategory]struct{}
}

// New builds a filter from configuration; all terms are matched case-insensitively.
func New(cfg config.RelevanceConfig) *Filter {
	f := &Filter{
		keywords: lowerAll(cfg.Keywords),
		sources:  lowerAll(cfg.Sources),
		trusted:  make(map[domain.SourceCategory]struct{}, len(cfg.TrustedSourceCategories)),
	}
	for _, sc := range cfg.TrustedSourceCategories {
		f.trusted[domain.SourceCategory(sc)] = struct{}{}
	}
	return f
}

// IsRelevant reports whether the item should enter the pipeline. Trusted
// source categories pass unconditionally; everything else needs a title
// keyword hit or a known AI-specific source name. Absent title: not relevant.
func (f *Filter) IsRelevant(item domain.RawItem) bool {
	if strings.TrimSpace(item.Title) == "" {
		return false
	}

	if _, ok := f.trusted[item.SourceCategory]; ok {
		return true
	}

	title := strings.ToLower(item.Title)
	for _, kw := range f.keywords {
		if strings.Contains(title, kw) {
			return true
		}
	}

	source := strings.ToLower(item.SourceName)
	for _, s := range f.sources {
		if strings.Contains(source, s) {
			return true
		}
	}

	return false
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}
