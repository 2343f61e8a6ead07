package persona

import (
	"regexp"
	"strings"

	"reddit-persona/internal/domain"
)

var (
	reMarkdownLink = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	reBareURL      = regexp.MustCompile(`https?://\S+`)
	reListMarker   = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	reInlineMarkup = regexp.MustCompile("[`*_~>#]+")
	reWhitespace   = regexp.MustCompile(`\s+`)
)

// Normalize convierte un registro crudo en la forma canonica. Devuelve
// false cuando el item no carga senal alguna (sin texto y sin subreddit)
// o le falta un campo obligatorio. Transformacion pura, sin efectos.
func Normalize(raw domain.RawContent) (domain.ContentItem, bool) {
	if raw.ID == "" {
		return domain.ContentItem{}, false
	}
	if raw.Kind != domain.KindPost && raw.Kind != domain.KindComment {
		return domain.ContentItem{}, false
	}

	text := strings.TrimSpace(raw.Title)
	if body := strings.TrimSpace(raw.Body); body != "" {
		if text != "" {
			text += " "
		}
		text += body
	}
	text = cleanMarkup(text)

	subreddit := strings.TrimSpace(raw.Subreddit)
	if text == "" && subreddit == "" {
		return domain.ContentItem{}, false
	}

	return domain.ContentItem{
		ID:        raw.ID,
		Kind:      raw.Kind,
		Subreddit: subreddit,
		Text:      text,
		Score:     raw.Score,
		CreatedAt: raw.CreatedAt.UTC(),
		Permalink: raw.Permalink,
	}, true
}

// NormalizeAll filtra y normaliza la secuencia completa, reportando
// cuantos items se descartaron (observabilidad, nunca error).
func NormalizeAll(raws []domain.RawContent) ([]domain.ContentItem, int) {
	items := make([]domain.ContentItem, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		item, ok := Normalize(raw)
		if !ok {
			skipped++
			continue
		}
		items = append(items, item)
	}
	return items, skipped
}

// cleanMarkup quita artefactos de markdown (links, listas, enfasis) para
// que el matching de keywords no se contamine con sintaxis.
func cleanMarkup(text string) string {
	s := reMarkdownLink.ReplaceAllString(text, "$1")
	s = reBareURL.ReplaceAllString(s, "")
	s = reListMarker.ReplaceAllString(s, "")
	s = reInlineMarkup.ReplaceAllString(s, "")
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
