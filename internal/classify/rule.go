// Package classify implements the classifier adapter: a rule-based keyword
// scorer, a model-backed variant on top of it, and the startup capability
// probe that picks between them.
package classify

import (
	"context"
	"sort"
	"strings"

	"NewsPulse/internal/config"
	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
)

const (
	baseConfidence = 0.6
	perHitBonus    = 0.08
	maxConfidence  = 0.92
)

type ruleCategory struct {
	name     domain.Category
	keywords []string
}

// RuleBased scores categories by keyword hits in the title. It is fully
// deterministic: the same title and tables always yield the same labels.
type RuleBased struct {
	categories []ruleCategory
}

var _ ports.Classifier = (*RuleBased)(nil)

// NewRuleBased builds the scorer from config; category order is preserved
// because it breaks ties between equal hit counts.
func NewRuleBased(categories []config.CategoryConfig) *RuleBased {
	rb := &RuleBased{categories: make([]ruleCategory, 0, len(categories))}
	for _, cat := range categories {
		rb.categories = append(rb.categories, ruleCategory{
			name:     cat.Name,
			keywords: lowerAll(cat.Keywords),
		})
	}
	return rb
}

// Classify counts keyword matches per category. Score is
// min(0.6 + 0.08*hits, 0.92); the cap stays below certainty because this is
// a heuristic. Zero hits anywhere yields the general category at 0.6.
func (r *RuleBased) Classify(ctx context.Context, title, excerpt string) ([]domain.RankedLabel, error) {
	text := strings.ToLower(title)

	type scored struct {
		label domain.RankedLabel
		hits  int
	}

	var matched []scored
	for _, cat := range r.categories {
		hits := 0
		for _, kw := range cat.keywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}

		confidence := baseConfidence + perHitBonus*float64(hits)
		if confidence > maxConfidence {
			confidence = maxConfidence
		}
		matched = append(matched, scored{
			label: domain.RankedLabel{Category: cat.name, Confidence: confidence},
			hits:  hits,
		})
	}

	if len(matched) == 0 {
		return []domain.RankedLabel{{Category: domain.CategoryGeneral, Confidence: baseConfidence}}, nil
	}

	// Stable sort keeps declaration order among equal hit counts.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].hits > matched[j].hits
	})

	labels := make([]domain.RankedLabel, 0, len(matched))
	for _, m := range matched {
		labels = append(labels, m.label)
	}
	return labels, nil
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}
