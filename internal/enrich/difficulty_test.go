package enrich_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"NewsPulse/internal/config"
	"NewsPulse/internal/domain"
	"NewsPulse/internal/enrich"
)

func newScorer() *enrich.DifficultyScorer {
	return enrich.NewDifficultyScorer(
		[]config.CategoryConfig{
			{Name: domain.CategoryModelRelease, Difficulty: 7},
			{Name: domain.CategoryResearch, Difficulty: 8},
			{Name: domain.CategoryTutorial, Difficulty: 3},
		},
		config.DifficultyConfig{
			TechnicalTerms: []string{"quantization", "distillation", "gradient"},
			BeginnerTerms:  []string{"beginner", "introduction", "basics"},
		},
	)
}

func TestDifficultyScore(t *testing.T) {
	t.Parallel()

	scorer := newScorer()

	t.Run("category base without modifiers", func(t *testing.T) {
		score := scorer.Score(domain.CategoryModelRelease, "OpenAI releases GPT-5 with new reasoning capabilities")
		gt.Value(t, score).Equal(7)
	})

	t.Run("technical terms raise the score", func(t *testing.T) {
		score := scorer.Score(domain.CategoryResearch, "Quantization and distillation tricks")
		gt.Value(t, score).Equal(10)
	})

	t.Run("beginner terms lower the score", func(t *testing.T) {
		score := scorer.Score(domain.CategoryTutorial, "Introduction to basics for beginners")
		gt.Value(t, score).Equal(1)
	})

	t.Run("clamped to upper bound", func(t *testing.T) {
		score := scorer.Score(domain.CategoryResearch, "gradient quantization distillation deep dive")
		gt.Value(t, score).Equal(10)
	})

	t.Run("unknown category uses default base", func(t *testing.T) {
		score := scorer.Score(domain.CategoryGeneral, "plain title")
		gt.Value(t, score).Equal(5)
	})
}
