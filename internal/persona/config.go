package persona

import "fmt"

// Config reune los umbrales heuristicos del clasificador. Son politica
// configurable, no contrato: los defaults solo deben ser razonables.
type Config struct {
	// TopKInterests define cuantos intereses primarios (y secundarios) se emiten.
	TopKInterests int
	// MaxCitationsPerTrait limita la evidencia adjunta a cada rasgo.
	MaxCitationsPerTrait int
	// MinToneSignal es el minimo de matches de polaridad para afirmar un tono.
	MinToneSignal int
	// PostingRatioTieBand es el porcentaje alrededor de 50/50 que se reporta como balanceado.
	PostingRatioTieBand int
	// SnippetMaxLen acota el extracto citado, en caracteres.
	SnippetMaxLen int
	// SubredditMatchWeight y KeywordMatchWeight ponderan cada tipo de match.
	// El subreddit pesa mas: publicar en una comunidad es senal mas fuerte
	// que una palabra suelta.
	SubredditMatchWeight int
	KeywordMatchWeight   int
	// HighEngagementScore y ModerateEngagementScore separan los niveles de engagement.
	HighEngagementScore     int
	ModerateEngagementScore int
}

// DefaultConfig devuelve los valores usados cuando no hay configuracion externa.
func DefaultConfig() Config {
	return Config{
		TopKInterests:           3,
		MaxCitationsPerTrait:    3,
		MinToneSignal:           3,
		PostingRatioTieBand:     10,
		SnippetMaxLen:           120,
		SubredditMatchWeight:    3,
		KeywordMatchWeight:      1,
		HighEngagementScore:     10,
		ModerateEngagementScore: 2,
	}
}

// Validate rechaza configuraciones fuera de contrato antes de clasificar.
// Es el unico punto donde el core devuelve error duro.
func (c Config) Validate() error {
	if c.TopKInterests <= 0 {
		return fmt.Errorf("invalid config: TopKInterests must be positive, got %d", c.TopKInterests)
	}
	if c.MaxCitationsPerTrait <= 0 {
		return fmt.Errorf("invalid config: MaxCitationsPerTrait must be positive, got %d", c.MaxCitationsPerTrait)
	}
	if c.MinToneSignal < 0 {
		return fmt.Errorf("invalid config: MinToneSignal must not be negative, got %d", c.MinToneSignal)
	}
	if c.PostingRatioTieBand < 0 || c.PostingRatioTieBand > 50 {
		return fmt.Errorf("invalid config: PostingRatioTieBand must be within [0,50], got %d", c.PostingRatioTieBand)
	}
	if c.SnippetMaxLen <= 0 {
		return fmt.Errorf("invalid config: SnippetMaxLen must be positive, got %d", c.SnippetMaxLen)
	}
	if c.SubredditMatchWeight <= 0 || c.KeywordMatchWeight <= 0 {
		return fmt.Errorf("invalid config: match weights must be positive, got subreddit=%d keyword=%d",
			c.SubredditMatchWeight, c.KeywordMatchWeight)
	}
	if c.HighEngagementScore < c.ModerateEngagementScore {
		return fmt.Errorf("invalid config: HighEngagementScore (%d) below ModerateEngagementScore (%d)",
			c.HighEngagementScore, c.ModerateEngagementScore)
	}
	return nil
}
