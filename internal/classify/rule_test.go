package classify_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/m-mizutani/gt"

	"NewsPulse/internal/classify"
	"NewsPulse/internal/config"
	"NewsPulse/internal/domain"
)

func testCategories() []config.CategoryConfig {
	return []config.CategoryConfig{
		{Name: domain.CategoryModelRelease, Keywords: []string{"release", "launch", "gpt", "claude"}},
		{Name: domain.CategoryResearch, Keywords: []string{"paper", "study", "benchmark"}},
		{Name: domain.CategoryTutorial, Keywords: []string{"tutorial", "guide"}},
		{Name: domain.CategoryGeneral},
	}
}

func TestRuleBasedClassify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rb := classify.NewRuleBased(testCategories())

	t.Run("two keyword hits score 0.76", func(t *testing.T) {
		labels, err := rb.Classify(ctx, "OpenAI releases GPT-5 with new reasoning capabilities", "")
		gt.NoError(t, err).Required()
		gt.Value(t, len(labels) > 0).Equal(true)
		gt.Value(t, labels[0].Category).Equal(domain.CategoryModelRelease)
		gt.Bool(t, math.Abs(labels[0].Confidence-0.76) < 1e-9).True()
		gt.Bool(t, labels[0].Confidence >= 0.68).True()
	})

	t.Run("zero hits fall back to general at 0.6", func(t *testing.T) {
		labels, err := rb.Classify(ctx, "Quarterly municipal budget approved", "")
		gt.NoError(t, err).Required()
		gt.Value(t, len(labels)).Equal(1)
		gt.Value(t, labels[0].Category).Equal(domain.CategoryGeneral)
		gt.Value(t, labels[0].Confidence).Equal(0.6)
	})

	t.Run("confidence capped below certainty", func(t *testing.T) {
		labels, err := rb.Classify(ctx, "release launch gpt claude mega title", "")
		gt.NoError(t, err).Required()
		gt.Bool(t, labels[0].Confidence <= 0.92).True()
	})

	t.Run("ties break by declaration order", func(t *testing.T) {
		// One hit each for model-release ("release") and research ("paper").
		labels, err := rb.Classify(ctx, "a release paper", "")
		gt.NoError(t, err).Required()
		gt.Value(t, labels[0].Category).Equal(domain.CategoryModelRelease)
		gt.Value(t, labels[1].Category).Equal(domain.CategoryResearch)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		title := "A practical guide to GPT fine-tuning"
		first, err := rb.Classify(ctx, title, "")
		gt.NoError(t, err).Required()
		for i := 0; i < 5; i++ {
			again, err := rb.Classify(ctx, title, "")
			gt.NoError(t, err).Required()
			gt.Value(t, again).Equal(first)
		}
	})
}

func TestResolveWithoutClient(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rb := classify.NewRuleBased(testCategories())

	resolved := classify.Resolve(context.Background(), nil, rb, logger)
	gt.Value(t, resolved).Equal(rb)
}
