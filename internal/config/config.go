package config

import (
	"github.com/caarlos0/env/v10"

	"reddit-persona/internal/persona"
)

// Config centraliza la configuracion del servicio.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string `env:"DATABASE_URL"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	JWTSecret     string `env:"JWT_SECRET"`

	RedditBaseURL   string `env:"REDDIT_BASE_URL"`
	RedditUserAgent string `env:"REDDIT_USER_AGENT"`
	FetchLimit      int    `env:"FETCH_LIMIT" envDefault:"50"`
	CacheTTLMinutes int    `env:"CACHE_TTL_MINUTES" envDefault:"30"`
	TaxonomyPath    string `env:"TAXONOMY_PATH"`

	LLMAPIKey  string `env:"LLM_API_KEY"`
	LLMBaseURL string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel   string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	TopKInterests              int `env:"TOP_K_INTERESTS" envDefault:"3"`
	MaxCitationsPerTrait       int `env:"MAX_CITATIONS_PER_TRAIT" envDefault:"3"`
	MinToneSignal              int `env:"MIN_TONE_SIGNAL" envDefault:"3"`
	PostingRatioTieBandPercent int `env:"POSTING_RATIO_TIE_BAND_PERCENT" envDefault:"10"`
	SnippetMaxLen              int `env:"SNIPPET_MAX_LEN" envDefault:"120"`
}

// LoadConfig carga la configuracion desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AnalysisConfig mapea los knobs de entorno al Config del core. La
// validacion dura la hace el core al construir el Analyzer.
func (c *Config) AnalysisConfig() persona.Config {
	ac := persona.DefaultConfig()
	ac.TopKInterests = c.TopKInterests
	ac.MaxCitationsPerTrait = c.MaxCitationsPerTrait
	ac.MinToneSignal = c.MinToneSignal
	ac.PostingRatioTieBand = c.PostingRatioTieBandPercent
	ac.SnippetMaxLen = c.SnippetMaxLen
	return ac
}
