package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/m-mizutani/gollem"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
)

// ModelClassifier delegates classification to an LLM and falls back to the
// rule-based scorer per item. A failure is local: it downgrades one item's
// result, never the run.
type ModelClassifier struct {
	client gollem.LLMClient
	rules  *RuleBased
	logger *slog.Logger
}

var _ ports.Classifier = (*ModelClassifier)(nil)

// Resolve probes the model backend once at pipeline start. A nil client or a
// failed probe resolves to the rule-based classifier for the whole run; retry
// happens on the next scheduled invocation, outside this process.
func Resolve(ctx context.Context, client gollem.LLMClient, rules *RuleBased, logger *slog.Logger) ports.Classifier {
	if client == nil {
		logger.Info("model classifier unavailable, using rule-based classifier")
		return rules
	}

	if _, err := client.NewSession(ctx); err != nil {
		logger.Warn("model classifier probe failed, using rule-based classifier", "error", err)
		return rules
	}

	logger.Info("model classifier ready")
	return &ModelClassifier{client: client, rules: rules, logger: logger}
}

type modelResponse struct {
	Labels []struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
	} `json:"labels"`
}

// Classify asks the model for ranked labels constrained to the fixed category
// set. Malformed or failed responses degrade to the rule-based result.
func (m *ModelClassifier) Classify(ctx context.Context, title, excerpt string) ([]domain.RankedLabel, error) {
	labels, err := m.classifyModel(ctx, title, excerpt)
	if err != nil || len(labels) == 0 {
		m.logger.Warn("model classification degraded to rule-based", "title", title, "error", err)
		return m.rules.Classify(ctx, title, excerpt)
	}
	return labels, nil
}

func (m *ModelClassifier) classifyModel(ctx context.Context, title, excerpt string) ([]domain.RankedLabel, error) {
	session, err := m.client.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(classificationSchema()),
		gollem.WithSessionSystemPrompt(systemPrompt()),
	)
	if err != nil {
		return nil, err
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(userPrompt(title, excerpt)))
	if err != nil {
		return nil, err
	}
	if len(resp.Texts) == 0 {
		return nil, fmt.Errorf("model returned no content")
	}

	var parsed modelResponse
	if err := json.Unmarshal([]byte(resp.Texts[0]), &parsed); err != nil {
		return nil, err
	}

	labels := make([]domain.RankedLabel, 0, len(parsed.Labels))
	for _, l := range parsed.Labels {
		category := domain.Category(l.Category)
		if !domain.ValidCategory(category) {
			continue
		}
		confidence := l.Confidence
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}
		labels = append(labels, domain.RankedLabel{Category: category, Confidence: confidence})
	}

	sort.SliceStable(labels, func(i, j int) bool {
		return labels[i].Confidence > labels[j].Confidence
	})
	return labels, nil
}

func systemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You classify AI news items into a fixed category set.\n\n")
	sb.WriteString("## Instructions:\n\n")
	sb.WriteString("1. Read the item title and excerpt.\n")
	sb.WriteString("2. Return ranked labels, best first, using only these categories: ")
	for i, c := range domain.Categories() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(c))
	}
	sb.WriteString(".\n3. Confidence is a number between 0 and 1.\n")
	return sb.String()
}

func userPrompt(title, excerpt string) string {
	var sb strings.Builder
	sb.WriteString("## Title:\n\n")
	sb.WriteString(title)
	if excerpt != "" {
		sb.WriteString("\n\n## Excerpt:\n\n")
		sb.WriteString(excerpt)
	}
	return sb.String()
}

func classificationSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "ClassificationResponse",
		Description: "Ranked category labels for a news item",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"labels": {
				Type:        gollem.TypeArray,
				Description: "Ranked labels, best first",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"category": {
							Type:        gollem.TypeString,
							Description: "One of the fixed category identifiers",
							Required:    true,
						},
						"confidence": {
							Type:        gollem.TypeNumber,
							Description: "Confidence between 0 and 1",
							Required:    true,
						},
					},
				},
			},
		},
	}
}
