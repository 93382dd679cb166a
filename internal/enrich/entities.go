// Package enrich implements the enrichment stage: entity extraction,
// difficulty scoring, and summary generation. Every sub-step has a local
// fallback and never aborts processing of an item.
package enrich

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/m-mizutani/gollem"

	"NewsPulse/internal/config"
	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
)

// nerMinConfidence filters model-extracted entities; below this the lexicon
// fallback is more trustworthy than the model's guess.
const nerMinConfidence = 0.8

type lexicon struct {
	kind  string
	terms []string
}

// EntityExtractor finds organization/product/technology mentions, preferring
// model-backed NER and falling back to fixed-list matching, which is always
// available and never fails.
type EntityExtractor struct {
	client   gollem.LLMClient
	lexicons []lexicon
	logger   *slog.Logger
}

var _ ports.EntityExtractor = (*EntityExtractor)(nil)

// NewEntityExtractor builds the extractor; client may be nil (lexicon only).
func NewEntityExtractor(client gollem.LLMClient, cfg config.EntityConfig, logger *slog.Logger) *EntityExtractor {
	return &EntityExtractor{
		client: client,
		lexicons: []lexicon{
			{kind: domain.EntityOrganization, terms: cfg.Organizations},
			{kind: domain.EntityProduct, terms: cfg.Products},
			{kind: domain.EntityTechnology, terms: cfg.Technologies},
		},
		logger: logger,
	}
}

// Extract returns the entities found in the title and excerpt.
func (e *EntityExtractor) Extract(ctx context.Context, title, excerpt string) domain.Entities {
	if e.client != nil {
		entities, err := e.extractModel(ctx, title, excerpt)
		if err == nil && len(entities) > 0 {
			return entities
		}
		if err != nil {
			e.logger.Debug("model entity extraction degraded to lexicon", "error", err)
		}
	}
	return e.extractLexicon(title, excerpt)
}

func (e *EntityExtractor) extractLexicon(title, excerpt string) domain.Entities {
	text := strings.ToLower(title + " " + excerpt)
	entities := domain.Entities{}

	for _, lex := range e.lexicons {
		seen := map[string]struct{}{}
		for _, term := range lex.terms {
			if _, ok := seen[term]; ok {
				continue
			}
			if strings.Contains(text, strings.ToLower(term)) {
				entities[lex.kind] = append(entities[lex.kind], term)
				seen[term] = struct{}{}
			}
		}
	}

	return entities
}

type nerResponse struct {
	Entities []struct {
		Kind       string  `json:"kind"`
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"entities"`
}

func (e *EntityExtractor) extractModel(ctx context.Context, title, excerpt string) (domain.Entities, error) {
	session, err := e.client.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(nerSchema()),
		gollem.WithSessionSystemPrompt("You extract named entities from AI news items. Kinds: organization, product, technology."),
	)
	if err != nil {
		return nil, err
	}

	prompt := "## Title:\n\n" + title
	if excerpt != "" {
		prompt += "\n\n## Excerpt:\n\n" + excerpt
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, err
	}
	if len(resp.Texts) == 0 {
		return nil, nil
	}

	var parsed nerResponse
	if err := json.Unmarshal([]byte(resp.Texts[0]), &parsed); err != nil {
		return nil, err
	}

	entities := domain.Entities{}
	seen := map[string]struct{}{}
	for _, ent := range parsed.Entities {
		if ent.Confidence < nerMinConfidence {
			continue
		}
		switch ent.Kind {
		case domain.EntityOrganization, domain.EntityProduct, domain.EntityTechnology:
		default:
			continue
		}
		name := strings.TrimSpace(ent.Name)
		if name == "" {
			continue
		}
		key := ent.Kind + "/" + strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		entities[ent.Kind] = append(entities[ent.Kind], name)
	}

	return entities, nil
}

func nerSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "EntityExtractionResponse",
		Description: "Named entities found in a news item",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"entities": {
				Type:     gollem.TypeArray,
				Required: true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"kind": {
							Type:        gollem.TypeString,
							Description: "organization, product, or technology",
							Required:    true,
						},
						"name": {
							Type:        gollem.TypeString,
							Description: "Entity surface string",
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
