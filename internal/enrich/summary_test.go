package enrich_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"NewsPulse/internal/config"
	"NewsPulse/internal/domain"
	"NewsPulse/internal/enrich"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSanitizeExcerpt(t *testing.T) {
	t.Parallel()

	gt.String(t, enrich.SanitizeExcerpt("<p>Hello <a href=\"x\">world</a></p>")).Equal("Hello world")
	gt.String(t, enrich.SanitizeExcerpt("  plain   text\n\twith gaps ")).Equal("plain text with gaps")
	gt.String(t, enrich.SanitizeExcerpt("")).Equal("")
}

func TestIsBoilerplate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		excerpt string
		want    bool
	}{
		{"too short", "short blurb", true},
		{"bare url", "https://example.com/article/123", true},
		{"placeholder pattern", "This article appeared first on Example Site and has lots of words here", true},
		{"real content", strings.Repeat("Informative sentence about model evaluation. ", 3), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, enrich.IsBoilerplate(tc.excerpt)).Equal(tc.want)
		})
	}
}

func TestTemplateSummaryNeverEmpty(t *testing.T) {
	t.Parallel()

	summarizer := enrich.NewSummarizer(nil, config.RelevanceConfig{
		Keywords: []string{"gpt", "machine learning"},
	}, discardLogger())

	item := domain.RawItem{
		Title:      "OpenAI releases GPT-5 with new reasoning capabilities",
		SourceName: "OpenAI Blog",
		Excerpt:    "read more",
	}

	summary := summarizer.Summarize(context.Background(), item, domain.CategoryModelRelease)
	gt.String(t, summary).NotEqual("")
	gt.Bool(t, strings.Contains(summary, "gpt")).True()
	gt.Bool(t, strings.Contains(summary, "OpenAI Blog")).True()

	t.Run("unknown category still produces a sentence", func(t *testing.T) {
		summary := summarizer.Summarize(context.Background(), domain.RawItem{
			Title:      "Completely uncategorized thing",
			SourceName: "Somewhere",
		}, domain.Category("bogus"))
		gt.String(t, summary).NotEqual("")
	})
}
