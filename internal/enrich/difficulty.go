package enrich

import (
	"strings"

	"NewsPulse/internal/config"
	"NewsPulse/internal/domain"
)

const (
	minDifficulty     = 1
	maxDifficulty     = 10
	defaultDifficulty = 5
)

// DifficultyScorer derives a 1-10 reading-difficulty score from the item's
// category with per-term adjustments from the title.
type DifficultyScorer struct {
	base      map[domain.Category]int
	technical []string
	beginner  []string
}

// NewDifficultyScorer builds the scorer from the category table and the
// technical/beginner signal terms.
func NewDifficultyScorer(categories []config.CategoryConfig, cfg config.DifficultyConfig) *DifficultyScorer {
	base := make(map[domain.Category]int, len(categories))
	for _, cat := range categories {
		if cat.Difficulty > 0 {
			base[cat.Name] = cat.Difficulty
		}
	}
	return &DifficultyScorer{
		base:      base,
		technical: lowerAll(cfg.TechnicalTerms),
		beginner:  lowerAll(cfg.BeginnerTerms),
	}
}

// Score starts from the category base, adds one per technical term and
// subtracts one per beginner term found in the title, clamped to [1,10].
func (s *DifficultyScorer) Score(category domain.Category, title string) int {
	score, ok := s.base[category]
	if !ok {
		score = defaultDifficulty
	}

	text := strings.ToLower(title)
	for _, term := range s.technical {
		if strings.Contains(text, term) {
			score++
		}
	}
	for _, term := range s.beginner {
		if strings.Contains(text, term) {
			score--
		}
	}

	if score < minDifficulty {
		score = minDifficulty
	}
	if score > maxDifficulty {
		score = maxDifficulty
	}
	return score
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}
