package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"NewsPulse/internal/domain"
)

const (
	configPathEnv   = "NEWSPULSE_CONFIG"
	databaseDSNEnv  = "DATABASE_DSN"
	llmAPIKeyEnv    = "OPENAI_API_KEY"
	llmModelEnv     = "NEWSPULSE_LLM_MODEL"
	datasetPathEnv  = "NEWSPULSE_DATASET"
	inputPathEnv    = "NEWSPULSE_INPUT"
	logLevelEnv     = "NEWSPULSE_LOG_LEVEL"
	defaultLanguage = "en"
)

// Config holds high-level settings required across the application.
type Config struct {
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Database   DatabaseConfig   `yaml:"database"`
	LLM        LLMConfig        `yaml:"llm"`
	Logging    LoggingConfig    `yaml:"logging"`
	Relevance  RelevanceConfig  `yaml:"relevance"`
	Categories []CategoryConfig `yaml:"categories"`
	Entities   EntityConfig     `yaml:"entities"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PipelineConfig carries the run-level knobs the invoking collaborator sets.
// Threshold has no default on purpose: it must arrive via file, env, or flag,
// and is validated at startup.
type PipelineConfig struct {
	Threshold           float64 `yaml:"threshold"`
	Limit               int     `yaml:"limit"`
	RetentionDays       int     `yaml:"retentionDays"`
	Workers             int     `yaml:"workers"`
	SimilarityThreshold float64 `yaml:"similarityThreshold"`
	Language            string  `yaml:"language"`
}

// InputConfig selects the item source strategy and its location.
type InputConfig struct {
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
}

// OutputConfig points at the persisted dataset document.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// DatabaseConfig describes the optional Postgres history connection.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" masq:"secret"`
}

// LLMConfig defines how to reach the optional model backend.
type LLMConfig struct {
	APIKey string `yaml:"apiKey" masq:"secret"`
	Model  string `yaml:"model"`
}

// LoggingConfig selects log verbosity and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RelevanceConfig feeds the relevance filter: title keywords, known
// AI-specific source names, and source categories trusted unconditionally.
type RelevanceConfig struct {
	Keywords                []string `yaml:"keywords"`
	Sources                 []string `yaml:"sources"`
	TrustedSourceCategories []string `yaml:"trustedSourceCategories"`
}

// CategoryConfig binds a category to its rule-based keyword list and its
// base difficulty score.
type CategoryConfig struct {
	Name       domain.Category `yaml:"name"`
	Keywords   []string        `yaml:"keywords"`
	Difficulty int             `yaml:"difficulty"`
}

// EntityConfig holds the lexicons backing the fallback entity extractor.
type EntityConfig struct {
	Organizations []string `yaml:"organizations"`
	Products      []string `yaml:"products"`
	Technologies  []string `yaml:"technologies"`
}

// DifficultyConfig lists the title terms that nudge the difficulty score.
type DifficultyConfig struct {
	TechnicalTerms []string `yaml:"technicalTerms"`
	BeginnerTerms  []string `yaml:"beginnerTerms"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(llmAPIKeyEnv); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(llmModelEnv); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(datasetPathEnv); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv(inputPathEnv); v != "" {
		c.Input.Path = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Pipeline.Threshold != 0 {
		base.Pipeline.Threshold = override.Pipeline.Threshold
	}
	if override.Pipeline.Limit != 0 {
		base.Pipeline.Limit = override.Pipeline.Limit
	}
	if override.Pipeline.RetentionDays != 0 {
		base.Pipeline.RetentionDays = override.Pipeline.RetentionDays
	}
	if override.Pipeline.Workers != 0 {
		base.Pipeline.Workers = override.Pipeline.Workers
	}
	if override.Pipeline.SimilarityThreshold != 0 {
		base.Pipeline.SimilarityThreshold = override.Pipeline.SimilarityThreshold
	}
	if override.Pipeline.Language != "" {
		base.Pipeline.Language = override.Pipeline.Language
	}

	if override.Input.Source != "" {
		base.Input.Source = override.Input.Source
	}
	if override.Input.Path != "" {
		base.Input.Path = override.Input.Path
	}
	if override.Output.Path != "" {
		base.Output.Path = override.Output.Path
	}
	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if len(override.Relevance.Keywords) > 0 {
		base.Relevance.Keywords = override.Relevance.Keywords
	}
	if len(override.Relevance.Sources) > 0 {
		base.Relevance.Sources = override.Relevance.Sources
	}
	if len(override.Relevance.TrustedSourceCategories) > 0 {
		base.Relevance.TrustedSourceCategories = override.Relevance.TrustedSourceCategories
	}

	if len(override.Categories) > 0 {
		base.Categories = override.Categories
	}
	if len(override.Entities.Organizations) > 0 {
		base.Entities.Organizations = override.Entities.Organizations
	}
	if len(override.Entities.Products) > 0 {
		base.Entities.Products = override.Entities.Products
	}
	if len(override.Entities.Technologies) > 0 {
		base.Entities.Technologies = override.Entities.Technologies
	}
	if len(override.Difficulty.TechnicalTerms) > 0 {
		base.Difficulty.TechnicalTerms = override.Difficulty.TechnicalTerms
	}
	if len(override.Difficulty.BeginnerTerms) > 0 {
		base.Difficulty.BeginnerTerms = override.Difficulty.BeginnerTerms
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Pipeline: PipelineConfig{
			RetentionDays:       15,
			Workers:             4,
			SimilarityThreshold: 0.8,
			Language:            defaultLanguage,
		},
		Input:  InputConfig{Source: "file", Path: "items.json"},
		Output: OutputConfig{Path: "dataset.json"},
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Relevance: RelevanceConfig{
			Keywords: []string{
				"ai", "artificial intelligence", "machine learning", "deep learning",
				"neural network", "llm", "large language model", "transformer",
				"gpt", "claude", "gemini", "llama", "mistral", "stable diffusion",
				"openai", "anthropic", "deepmind", "hugging face", "agent",
				"fine-tuning", "inference", "rag", "embedding", "diffusion model",
				"reinforcement learning", "chatbot", "copilot", "multimodal",
			},
			Sources: []string{
				"openai", "anthropic", "deepmind", "google ai", "meta ai",
				"hugging face", "mistral", "stability ai", "ai news",
			},
			TrustedSourceCategories: []string{
				string(domain.SourceAcademicRepository),
				string(domain.SourceVideoChannel),
				string(domain.SourceNewsletter),
			},
		},
		Categories: []CategoryConfig{
			{
				Name:       domain.CategoryModelRelease,
				Difficulty: 7,
				Keywords: []string{
					"release", "launch", "announce", "unveil", "introduce",
					"gpt", "claude", "gemini", "llama", "mistral", "version",
					"preview", "now available", "ships",
				},
			},
			{
				Name:       domain.CategoryResearch,
				Difficulty: 8,
				Keywords: []string{
					"paper", "study", "research", "benchmark", "arxiv",
					"survey", "dataset", "evaluation", "state-of-the-art",
					"findings",
				},
			},
			{
				Name:       domain.CategoryIndustryNews,
				Difficulty: 4,
				Keywords: []string{
					"funding", "raise", "acquisition", "acquire", "partnership",
					"valuation", "startup", "ceo", "lawsuit", "revenue", "ipo",
				},
			},
			{
				Name:       domain.CategoryOpenSource,
				Difficulty: 6,
				Keywords: []string{
					"open source", "open-source", "github", "framework",
					"library", "sdk", "toolkit", "self-hosted", "weights",
				},
			},
			{
				Name:       domain.CategoryTutorial,
				Difficulty: 3,
				Keywords: []string{
					"tutorial", "guide", "how to", "introduction", "getting started",
					"step by step", "walkthrough", "explained", "learn",
				},
			},
			{
				Name:       domain.CategoryPolicy,
				Difficulty: 5,
				Keywords: []string{
					"regulation", "policy", "law", "ban", "copyright",
					"governance", "safety", "ethics", "compliance", "eu ai act",
				},
			},
			{
				Name:       domain.CategoryGeneral,
				Difficulty: 5,
			},
		},
		Entities: EntityConfig{
			Organizations: []string{
				"OpenAI", "Anthropic", "Google", "DeepMind", "Meta", "Microsoft",
				"Nvidia", "Hugging Face", "Mistral", "Stability AI", "xAI",
				"Amazon", "Apple", "Cohere",
			},
			Products: []string{
				"GPT-5", "GPT-4", "ChatGPT", "Claude", "Gemini", "Llama",
				"Copilot", "Midjourney", "Stable Diffusion", "DALL-E", "Sora",
				"Grok", "Cursor",
			},
			Technologies: []string{
				"transformer", "diffusion", "RAG", "fine-tuning", "RLHF",
				"quantization", "embedding", "LoRA", "mixture of experts",
				"attention", "tokenizer", "multimodal",
			},
		},
		Difficulty: DifficultyConfig{
			TechnicalTerms: []string{
				"architecture", "quantization", "gradient", "kernel", "distillation",
				"optimization", "theorem", "probabilistic", "rlhf", "lora",
			},
			BeginnerTerms: []string{
				"beginner", "introduction", "basics", "simple", "easy",
				"getting started", "explained", "101",
			},
		},
	}
}
