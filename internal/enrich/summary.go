package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/m-mizutani/gollem"

	"NewsPulse/internal/config"
	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
)

// minExcerptLen is the shortest excerpt worth sending to the model; anything
// below it is boilerplate from the feed, not article content.
const minExcerptLen = 40

var placeholderPatterns = []string{
	"read more",
	"continue reading",
	"comments",
	"submitted by",
	"appeared first on",
	"click here",
}

// Summarizer produces a short human-readable summary per item. It prefers a
// model-backed abstractive summary of the sanitized excerpt and degrades to a
// templated sentence built from category and detected topic keywords. The
// result is never empty.
type Summarizer struct {
	client   gollem.LLMClient
	keywords []string
	logger   *slog.Logger
}

var _ ports.Summarizer = (*Summarizer)(nil)

// NewSummarizer builds the summarizer; client may be nil (template only).
// Relevance keywords double as topic markers for the templated fallback.
func NewSummarizer(client gollem.LLMClient, cfg config.RelevanceConfig, logger *slog.Logger) *Summarizer {
	return &Summarizer{
		client:   client,
		keywords: lowerAll(cfg.Keywords),
		logger:   logger,
	}
}

// Summarize returns the best summary available for the item.
func (s *Summarizer) Summarize(ctx context.Context, item domain.RawItem, category domain.Category) string {
	excerpt := SanitizeExcerpt(item.Excerpt)

	if s.client != nil && !IsBoilerplate(excerpt) {
		summary, err := s.summarizeModel(ctx, item.Title, excerpt)
		if err == nil && strings.TrimSpace(summary) != "" {
			return strings.TrimSpace(summary)
		}
		if err != nil {
			s.logger.Debug("model summary degraded to template", "title", item.Title, "error", err)
		}
	}

	return s.templateSummary(item, category)
}

func (s *Summarizer) summarizeModel(ctx context.Context, title, excerpt string) (string, error) {
	session, err := s.client.NewSession(ctx,
		gollem.WithSessionSystemPrompt("You summarize AI news items in one or two plain sentences. No preamble."),
	)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf("Summarize this item.\n\n## Title:\n\n%s\n\n## Excerpt:\n\n%s", title, excerpt)
	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Texts) == 0 {
		return "", fmt.Errorf("model returned no content")
	}
	return resp.Texts[0], nil
}

var categoryPhrases = map[domain.Category]string{
	domain.CategoryModelRelease: "A new model or product release",
	domain.CategoryResearch:     "A research publication",
	domain.CategoryIndustryNews: "Industry news",
	domain.CategoryOpenSource:   "An open-source project update",
	domain.CategoryTutorial:     "A tutorial",
	domain.CategoryPolicy:       "A policy and governance item",
	domain.CategoryGeneral:      "An AI news item",
}

func (s *Summarizer) templateSummary(item domain.RawItem, category domain.Category) string {
	phrase, ok := categoryPhrases[category]
	if !ok {
		phrase = categoryPhrases[domain.CategoryGeneral]
	}

	topic := "AI"
	title := strings.ToLower(item.Title)
	for _, kw := range s.keywords {
		if strings.Contains(title, kw) {
			topic = kw
			break
		}
	}

	return fmt.Sprintf("%s about %s from %s.", phrase, topic, item.SourceName)
}

// SanitizeExcerpt strips HTML markup from a feed excerpt and collapses
// whitespace. Excerpts arrive as arbitrary feed payloads and regularly carry
// tags, entities, and embedded links.
func SanitizeExcerpt(excerpt string) string {
	trimmed := strings.TrimSpace(excerpt)
	if trimmed == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return strings.Join(strings.Fields(trimmed), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// IsBoilerplate reports whether an excerpt carries no summarizable content:
// too short, a known placeholder pattern, or a bare URL.
func IsBoilerplate(excerpt string) bool {
	trimmed := strings.TrimSpace(excerpt)
	if len(trimmed) < minExcerptLen {
		return true
	}

	lower := strings.ToLower(trimmed)
	if (strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")) && !strings.ContainsAny(trimmed, " \t") {
		return true
	}

	for _, pattern := range placeholderPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	return false
}
