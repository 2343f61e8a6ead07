package persona

import (
	"strings"
	"testing"

	"reddit-persona/internal/taxonomy"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"zero top k", func(c *Config) { c.TopKInterests = 0 }, "TopKInterests"},
		{"zero citation cap", func(c *Config) { c.MaxCitationsPerTrait = 0 }, "MaxCitationsPerTrait"},
		{"negative tone signal", func(c *Config) { c.MinToneSignal = -1 }, "MinToneSignal"},
		{"tie band over half", func(c *Config) { c.PostingRatioTieBand = 60 }, "PostingRatioTieBand"},
		{"zero snippet len", func(c *Config) { c.SnippetMaxLen = 0 }, "SnippetMaxLen"},
		{"zero keyword weight", func(c *Config) { c.KeywordMatchWeight = 0 }, "match weights"},
		{"engagement inverted", func(c *Config) { c.HighEngagementScore = 1 }, "HighEngagementScore"},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
		if !strings.Contains(err.Error(), tc.wantMsg) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.wantMsg)
		}
	}
}

func TestNewAnalyzerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopKInterests = -1

	if _, err := NewAnalyzer(cfg, taxonomy.Default(), nil); err == nil {
		t.Fatalf("expected error for invalid config")
	}
}
