package relevance_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"NewsPulse/internal/config"
	"NewsPulse/internal/domain"
	"NewsPulse/internal/relevance"
)

func newFilter() *relevance.Filter {
	return relevance.New(config.RelevanceConfig{
		Keywords: []string{"gpt", "machine learning", "llm"},
		Sources:  []string{"openai", "anthropic"},
		TrustedSourceCategories: []string{
			string(domain.SourceAcademicRepository),
			string(domain.SourceVideoChannel),
			string(domain.SourceNewsletter),
		},
	})
}

func TestIsRelevant(t *testing.T) {
	t.Parallel()

	filter := newFilter()

	t.Run("source match", func(t *testing.T) {
		item := domain.RawItem{
			Title:          "OpenAI releases GPT-5 with new reasoning capabilities",
			SourceName:     "OpenAI Blog",
			SourceCategory: domain.SourceNewsOutlet,
		}
		gt.Bool(t, filter.IsRelevant(item)).True()
	})

	t.Run("title keyword match", func(t *testing.T) {
		item := domain.RawItem{
			Title:          "Why Machine Learning needs better data",
			SourceName:     "Random Tech Site",
			SourceCategory: domain.SourceNewsOutlet,
		}
		gt.Bool(t, filter.IsRelevant(item)).True()
	})

	t.Run("trusted source categories always pass", func(t *testing.T) {
		item := domain.RawItem{
			Title:          "Completely unrelated gardening topic",
			SourceName:     "arXiv",
			SourceCategory: domain.SourceAcademicRepository,
		}
		gt.Bool(t, filter.IsRelevant(item)).True()
	})

	t.Run("no match", func(t *testing.T) {
		item := domain.RawItem{
			Title:          "Local sports roundup",
			SourceName:     "City Gazette",
			SourceCategory: domain.SourceNewsOutlet,
		}
		gt.Bool(t, filter.IsRelevant(item)).False()
	})

	t.Run("absent title is not relevant", func(t *testing.T) {
		item := domain.RawItem{
			Title:          "   ",
			SourceName:     "OpenAI Blog",
			SourceCategory: domain.SourceNewsOutlet,
		}
		gt.Bool(t, filter.IsRelevant(item)).False()
	})
}
