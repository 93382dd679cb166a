package enrich_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"

	"NewsPulse/internal/config"
	"NewsPulse/internal/domain"
	"NewsPulse/internal/enrich"
)

type stubSession struct {
	generateFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *stubSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.generateFn(ctx, input...)
}

func (s *stubSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *stubSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	return s.generateFn(ctx, input...)
}

func (s *stubSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *stubSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *stubSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *stubSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

type stubClient struct {
	sessions   int
	generateFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (c *stubClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	c.sessions++
	return &stubSession{generateFn: c.generateFn}, nil
}

func (c *stubClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func TestModelEntityExtraction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lexicons := config.EntityConfig{Organizations: []string{"OpenAI"}}

	t.Run("low-confidence and invalid entities are filtered", func(t *testing.T) {
		client := &stubClient{generateFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
			return &gollem.Response{Texts: []string{`{"entities":[
				{"kind":"organization","name":"OpenAI","confidence":0.95},
				{"kind":"product","name":"Claude","confidence":0.5},
				{"kind":"person","name":"Jane Doe","confidence":0.99},
				{"kind":"technology","name":"  ","confidence":0.9}
			]}`}}, nil
		}}

		extractor := enrich.NewEntityExtractor(client, lexicons, discardLogger())
		entities := extractor.Extract(ctx, "OpenAI news", "")

		gt.Value(t, entities[domain.EntityOrganization]).Equal([]string{"OpenAI"})
		gt.Value(t, len(entities[domain.EntityProduct])).Equal(0)
		gt.Value(t, len(entities)).Equal(1)
	})

	t.Run("model failure degrades to lexicon", func(t *testing.T) {
		client := &stubClient{generateFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
			return nil, goerr.New("model timeout")
		}}

		extractor := enrich.NewEntityExtractor(client, lexicons, discardLogger())
		entities := extractor.Extract(ctx, "OpenAI ships something", "")
		gt.Value(t, entities[domain.EntityOrganization]).Equal([]string{"OpenAI"})
	})
}

func TestModelSummary(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := config.RelevanceConfig{Keywords: []string{"gpt"}}
	item := domain.RawItem{
		Title:      "OpenAI releases GPT-5 with new reasoning capabilities",
		SourceName: "OpenAI Blog",
		Excerpt:    strings.Repeat("The new model improves long-context reasoning. ", 2),
	}

	t.Run("model summary is used when available", func(t *testing.T) {
		client := &stubClient{generateFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
			return &gollem.Response{Texts: []string{"  GPT-5 brings better reasoning.  "}}, nil
		}}

		summarizer := enrich.NewSummarizer(client, cfg, discardLogger())
		summary := summarizer.Summarize(ctx, item, domain.CategoryModelRelease)
		gt.String(t, summary).Equal("GPT-5 brings better reasoning.")
	})

	t.Run("generate failure degrades to template", func(t *testing.T) {
		client := &stubClient{generateFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
			return nil, goerr.New("model timeout")
		}}

		summarizer := enrich.NewSummarizer(client, cfg, discardLogger())
		summary := summarizer.Summarize(ctx, item, domain.CategoryModelRelease)
		gt.Bool(t, strings.Contains(summary, "OpenAI Blog")).True()
	})

	t.Run("boilerplate excerpt never reaches the model", func(t *testing.T) {
		client := &stubClient{generateFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
			return &gollem.Response{Texts: []string{"should not be used"}}, nil
		}}

		summarizer := enrich.NewSummarizer(client, cfg, discardLogger())
		short := domain.RawItem{Title: "GPT news", SourceName: "Feed", Excerpt: "read more"}
		summary := summarizer.Summarize(ctx, short, domain.CategoryGeneral)

		gt.Value(t, client.sessions).Equal(0)
		gt.Bool(t, strings.Contains(summary, "Feed")).True()
	})
}
