package persona

import (
	"fmt"
	"sort"
	"strings"

	"reddit-persona/internal/domain"
)

// sourceRef acumula la contribucion de un item a un candidato.
// idx es la posicion en el orden de recencia (menor = mas reciente).
type sourceRef struct {
	id     string
	weight int
	idx    int
}

// candidate es una categoria con peso acumulado antes del ranking.
type candidate struct {
	label    string
	weight   int
	firstIdx int
	sources  []sourceRef
}

// tally acumula pesos por categoria registrando que item contribuyo cada match.
type tally struct {
	weights  map[string]int
	firstIdx map[string]int
	sources  map[string]map[string]*sourceRef
}

func newTally() *tally {
	return &tally{
		weights:  make(map[string]int),
		firstIdx: make(map[string]int),
		sources:  make(map[string]map[string]*sourceRef),
	}
}

func (t *tally) add(label, itemID string, weight, idx int) {
	t.weights[label] += weight
	if cur, ok := t.firstIdx[label]; !ok || idx < cur {
		t.firstIdx[label] = idx
	}
	refs, ok := t.sources[label]
	if !ok {
		refs = make(map[string]*sourceRef)
		t.sources[label] = refs
	}
	if ref, ok := refs[itemID]; ok {
		ref.weight += weight
	} else {
		refs[itemID] = &sourceRef{id: itemID, weight: weight, idx: idx}
	}
}

// candidates devuelve las categorias rankeadas: peso descendente, luego
// recencia del primer item contribuyente, luego label lexicografico.
// El orden es total, asi que el resultado es reproducible.
func (t *tally) candidates() []candidate {
	out := make([]candidate, 0, len(t.weights))
	for label, weight := range t.weights {
		c := candidate{label: label, weight: weight, firstIdx: t.firstIdx[label]}
		for _, ref := range t.sources[label] {
			c.sources = append(c.sources, *ref)
		}
		sortSources(c.sources)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].weight != out[j].weight {
			return out[i].weight > out[j].weight
		}
		if out[i].firstIdx != out[j].firstIdx {
			return out[i].firstIdx < out[j].firstIdx
		}
		return out[i].label < out[j].label
	})
	return out
}

// sortSources ordena evidencia por peso de contribucion y luego recencia.
func sortSources(refs []sourceRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].weight != refs[j].weight {
			return refs[i].weight > refs[j].weight
		}
		return refs[i].idx < refs[j].idx
	})
}

func sourceIDs(refs []sourceRef) []string {
	ids := make([]string, len(refs))
	for i, r := range refs {
		ids[i] = r.id
	}
	return ids
}

// tokenSet parte el texto en tokens minusculos para matching de palabra exacta.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '\'')
	})
	for _, f := range fields {
		set[strings.Trim(f, "'")] = struct{}{}
	}
	return set
}

// matchKeyword: palabras sueltas matchean por token exacto; frases con
// espacio matchean por substring sobre el texto en minusculas.
func matchKeyword(textLower string, tokens map[string]struct{}, keyword string) bool {
	kw := strings.ToLower(keyword)
	if strings.ContainsRune(kw, ' ') {
		return strings.Contains(textLower, kw)
	}
	_, ok := tokens[kw]
	return ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// classifyInterests combina matches de subreddit (peso fuerte) y de
// keywords (peso debil) y corta en top-K primarios y K secundarios.
func (a *Analyzer) classifyInterests(items []domain.ContentItem) []domain.Trait {
	t := newTally()
	categories := sortedKeys(a.tax.Interests)

	for idx, item := range items {
		if cat, ok := a.tax.SubredditCategory(item.Subreddit); ok {
			t.add(cat, item.ID, a.cfg.SubredditMatchWeight, idx)
		}
		textLower := strings.ToLower(item.Text)
		tokens := tokenSet(item.Text)
		for _, cat := range categories {
			for _, kw := range a.tax.Interests[cat] {
				if matchKeyword(textLower, tokens, kw) {
					t.add(cat, item.ID, a.cfg.KeywordMatchWeight, idx)
				}
			}
		}
	}

	ranked := t.candidates()
	var traits []domain.Trait
	for i, c := range ranked {
		if i >= 2*a.cfg.TopKInterests {
			break
		}
		tier := "Primary interest"
		if i >= a.cfg.TopKInterests {
			tier = "Secondary interest"
		}
		traits = append(traits, domain.Trait{
			Section:   domain.SectionInterests,
			Label:     fmt.Sprintf("%s: %s", tier, c.label),
			SourceIDs: sourceIDs(c.sources),
		})
	}
	return traits
}

// classifyPersonality deriva el ratio post/comentario y el tono dominante.
func (a *Analyzer) classifyPersonality(items []domain.ContentItem) []domain.Trait {
	if len(items) == 0 {
		return nil
	}
	var traits []domain.Trait

	posts := 0
	for _, item := range items {
		if item.Kind == domain.KindPost {
			posts++
		}
	}
	ratio := float64(posts) / float64(len(items))
	band := float64(a.cfg.PostingRatioTieBand) / 100.0

	var label string
	var dominant domain.ContentKind
	switch {
	case ratio > 0.5+band:
		label = "Active content creator (more of a poster)"
		dominant = domain.KindPost
	case ratio < 0.5-band:
		label = "More of a commenter than poster"
		dominant = domain.KindComment
	default:
		label = "Balanced between posting and commenting"
	}
	var ratioSources []string
	for _, item := range items {
		if dominant == "" || item.Kind == dominant {
			ratioSources = append(ratioSources, item.ID)
		}
	}
	traits = append(traits, domain.Trait{
		Section:   domain.SectionPersonality,
		Label:     label,
		SourceIDs: ratioSources,
	})

	traits = append(traits, a.classifyTone(items))
	return traits
}

// classifyTone cuenta matches de polaridad; bajo el umbral minimo no se
// adivina: se reporta neutral/unclear como rasgo sin evidencia.
func (a *Analyzer) classifyTone(items []domain.ContentItem) domain.Trait {
	posTotal, negTotal := 0, 0
	var posRefs, negRefs []sourceRef

	for idx, item := range items {
		textLower := strings.ToLower(item.Text)
		tokens := tokenSet(item.Text)
		pos, neg := 0, 0
		for _, w := range a.tax.PositiveWords {
			if matchKeyword(textLower, tokens, w) {
				pos++
			}
		}
		for _, w := range a.tax.NegativeWords {
			if matchKeyword(textLower, tokens, w) {
				neg++
			}
		}
		if pos > 0 {
			posRefs = append(posRefs, sourceRef{id: item.ID, weight: pos, idx: idx})
		}
		if neg > 0 {
			negRefs = append(negRefs, sourceRef{id: item.ID, weight: neg, idx: idx})
		}
		posTotal += pos
		negTotal += neg
	}

	if posTotal+negTotal < a.cfg.MinToneSignal {
		return domain.Trait{
			Section:  domain.SectionPersonality,
			Label:    "Tone: neutral or unclear",
			Fallback: true,
		}
	}

	// Factor 1.5 para exigir dominancia clara, no mayoria simple.
	switch {
	case 2*posTotal > 3*negTotal:
		sortSources(posRefs)
		return domain.Trait{
			Section:   domain.SectionPersonality,
			Label:     "Generally positive tone",
			SourceIDs: sourceIDs(posRefs),
		}
	case 2*negTotal > 3*posTotal:
		sortSources(negRefs)
		return domain.Trait{
			Section:   domain.SectionPersonality,
			Label:     "Often critical or negative tone",
			SourceIDs: sourceIDs(negRefs),
		}
	default:
		mixed := append(append([]sourceRef{}, posRefs...), negRefs...)
		sortSources(mixed)
		return domain.Trait{
			Section:   domain.SectionPersonality,
			Label:     "Mixed emotional tone",
			SourceIDs: dedupIDs(sourceIDs(mixed)),
		}
	}
}

func dedupIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// classifyDemographics emite exactamente un valor por dimension; sin
// trigger la dimension sale como Unknown, nunca se omite ni se inventa.
func (a *Analyzer) classifyDemographics(items []domain.ContentItem) []domain.Trait {
	if len(items) == 0 {
		return nil
	}
	dims := []struct {
		prefix string
		table  map[string]string
	}{
		{"Likely Age Range", a.tax.AgeHints},
		{"Location", a.tax.Locations},
		{"Occupation", a.tax.Occupations},
	}

	var traits []domain.Trait
	for _, dim := range dims {
		trait := domain.Trait{
			Section:  domain.SectionDemographics,
			Label:    dim.prefix + ": Unknown",
			Fallback: true,
		}
		keywords := sortedKeys(dim.table)
	scan:
		for _, item := range items {
			textLower := strings.ToLower(item.Text)
			tokens := tokenSet(item.Text)
			for _, kw := range keywords {
				if matchKeyword(textLower, tokens, kw) {
					trait = domain.Trait{
						Section:   domain.SectionDemographics,
						Label:     fmt.Sprintf("%s: %s", dim.prefix, dim.table[kw]),
						SourceIDs: []string{item.ID},
					}
					break scan
				}
			}
		}
		traits = append(traits, trait)
	}
	return traits
}

// classifyBehavior agrega diversidad de comunidades, volumen y engagement.
func (a *Analyzer) classifyBehavior(items []domain.ContentItem) []domain.Trait {
	if len(items) == 0 {
		return nil
	}
	var traits []domain.Trait

	// Diversidad: un representante (el mas reciente) por subreddit.
	seen := make(map[string]struct{})
	var diversitySources []string
	for _, item := range items {
		if item.Subreddit == "" {
			continue
		}
		key := strings.ToLower(item.Subreddit)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		diversitySources = append(diversitySources, item.ID)
	}
	if len(seen) > 0 {
		traits = append(traits, domain.Trait{
			Section:   domain.SectionBehavior,
			Label:     fmt.Sprintf("Active in %d different subreddits", len(seen)),
			SourceIDs: diversitySources,
		})
	}

	allIDs := make([]string, len(items))
	for i, item := range items {
		allIDs[i] = item.ID
	}
	traits = append(traits, domain.Trait{
		Section:   domain.SectionBehavior,
		Label:     fmt.Sprintf("Has contributed %d posts and comments", len(items)),
		SourceIDs: allIDs,
	})

	total := 0
	for _, item := range items {
		total += item.Score
	}
	avg := total / len(items)
	var engagement string
	switch {
	case avg > a.cfg.HighEngagementScore:
		engagement = fmt.Sprintf("Content receives strong engagement (average score %d)", avg)
	case avg > a.cfg.ModerateEngagementScore:
		engagement = fmt.Sprintf("Content receives moderate engagement (average score %d)", avg)
	default:
		engagement = fmt.Sprintf("Content receives low engagement (average score %d)", avg)
	}
	scored := make([]sourceRef, len(items))
	for idx, item := range items {
		w := item.Score
		if w < 1 {
			w = 1
		}
		scored[idx] = sourceRef{id: item.ID, weight: w, idx: idx}
	}
	sortSources(scored)
	traits = append(traits, domain.Trait{
		Section:   domain.SectionBehavior,
		Label:     engagement,
		SourceIDs: sourceIDs(scored),
	})

	return traits
}

// classifyThemes es el matcher compartido de metas y frustraciones:
// dos tablas disjuntas, mismo ranking que intereses.
func (a *Analyzer) classifyThemes(items []domain.ContentItem, section domain.SectionKey, table map[string][]string) []domain.Trait {
	t := newTally()
	themes := sortedKeys(table)

	for idx, item := range items {
		textLower := strings.ToLower(item.Text)
		tokens := tokenSet(item.Text)
		for _, theme := range themes {
			for _, kw := range table[theme] {
				if matchKeyword(textLower, tokens, kw) {
					t.add(theme, item.ID, a.cfg.KeywordMatchWeight, idx)
				}
			}
		}
	}

	var traits []domain.Trait
	for i, c := range t.candidates() {
		if i >= a.cfg.TopKInterests {
			break
		}
		traits = append(traits, domain.Trait{
			Section:   section,
			Label:     c.label,
			SourceIDs: sourceIDs(c.sources),
		})
	}
	return traits
}

// classifyHabits deriva la hora mas activa (histograma de 24 buckets UTC)
// y la comunidad con mas actividad.
func (a *Analyzer) classifyHabits(items []domain.ContentItem) []domain.Trait {
	if len(items) == 0 {
		return nil
	}
	var traits []domain.Trait

	var hourCounts [24]int
	hourSources := make([][]string, 24)
	for _, item := range items {
		h := item.CreatedAt.UTC().Hour()
		hourCounts[h]++
		hourSources[h] = append(hourSources[h], item.ID)
	}
	topHour := 0
	for h := 1; h < 24; h++ {
		// Empates se resuelven por hora numericamente menor.
		if hourCounts[h] > hourCounts[topHour] {
			topHour = h
		}
	}
	traits = append(traits, domain.Trait{
		Section:   domain.SectionOnlineHabits,
		Label:     fmt.Sprintf("Most active around %02d:00 UTC", topHour),
		SourceIDs: hourSources[topHour],
	})

	subTally := newTally()
	for idx, item := range items {
		if item.Subreddit == "" {
			continue
		}
		subTally.add(strings.ToLower(item.Subreddit), item.ID, 1, idx)
	}
	if ranked := subTally.candidates(); len(ranked) > 0 {
		top := ranked[0]
		traits = append(traits, domain.Trait{
			Section:   domain.SectionOnlineHabits,
			Label:     fmt.Sprintf("Most active in r/%s", top.label),
			SourceIDs: sourceIDs(top.sources),
		})
	}

	return traits
}
