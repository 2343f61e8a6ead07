package persona

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"reddit-persona/internal/domain"
)

// buildSectionCitations resuelve la evidencia de los rasgos de una seccion.
// Dentro de la seccion cada item se cita una sola vez: el rasgo mejor
// rankeado se queda con la cita. Los ids irresolubles se descartan con
// warning, nunca tumban la corrida.
func (a *Analyzer) buildSectionCitations(traits []domain.Trait, index map[string]domain.ContentItem) []domain.Citation {
	used := make(map[string]struct{})
	var citations []domain.Citation

	for _, trait := range traits {
		if trait.Fallback {
			continue
		}
		count := 0
		for _, id := range trait.SourceIDs {
			if count >= a.cfg.MaxCitationsPerTrait {
				break
			}
			if _, ok := used[id]; ok {
				continue
			}
			item, ok := index[id]
			if !ok {
				a.logger.Warn("citation source not found",
					zap.String("item_id", id),
					zap.String("trait", trait.Label),
				)
				continue
			}
			used[id] = struct{}{}
			citations = append(citations, domain.Citation{
				TraitLabel: trait.Label,
				Section:    trait.Section,
				ItemID:     item.ID,
				Kind:       item.Kind,
				Subreddit:  item.Subreddit,
				Permalink:  item.Permalink,
				Snippet:    snippet(item.Text, a.cfg.SnippetMaxLen),
			})
			count++
		}
	}
	return citations
}

// snippet acota el extracto a maxLen caracteres, cortando en limite de
// palabra cuando se puede y marcando el recorte con "...".
func snippet(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}

	runes := []rune(text)
	cut := maxLen
	for i := maxLen; i > maxLen/2; i-- {
		if runes[i-1] == ' ' {
			cut = i - 1
			break
		}
	}
	return strings.TrimSpace(string(runes[:cut])) + "..."
}
