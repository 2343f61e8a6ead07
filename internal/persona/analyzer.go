package persona

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"reddit-persona/internal/domain"
	"reddit-persona/internal/taxonomy"
)

// FallbackLabel es el rasgo neutro que recibe toda seccion sin evidencia.
const FallbackLabel = "Not enough data"

// Analyzer es el motor de inferencia: taxonomia inmutable + umbrales.
// No hace I/O; opera sobre el set de contenido ya acotado en memoria.
type Analyzer struct {
	cfg    Config
	tax    taxonomy.Taxonomy
	logger *zap.Logger
}

// Result agrupa el persona con su evidencia plana.
type Result struct {
	Persona   domain.Persona    `json:"persona"`
	Citations []domain.Citation `json:"citations"`
}

// NewAnalyzer valida la configuracion antes de aceptar trabajo (spec de
// fallo rapido: es el unico error duro del core).
func NewAnalyzer(cfg Config, tax taxonomy.Taxonomy, logger *zap.Logger) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{cfg: cfg, tax: tax, logger: logger}, nil
}

// Analyze corre las siete secciones sobre el contenido normalizado y
// arma el persona final. Cada seccion depende solo del input compartido
// de solo lectura, asi que corren en paralelo; el merge es deterministico
// porque el ranking no depende del orden de llegada.
func (a *Analyzer) Analyze(username string, items []domain.ContentItem) Result {
	ordered := orderByRecency(items)

	jobs := []struct {
		key domain.SectionKey
		fn  func([]domain.ContentItem) []domain.Trait
	}{
		{domain.SectionDemographics, a.classifyDemographics},
		{domain.SectionInterests, a.classifyInterests},
		{domain.SectionPersonality, a.classifyPersonality},
		{domain.SectionBehavior, a.classifyBehavior},
		{domain.SectionGoals, func(in []domain.ContentItem) []domain.Trait {
			return a.classifyThemes(in, domain.SectionGoals, a.tax.Goals)
		}},
		{domain.SectionFrustrations, func(in []domain.ContentItem) []domain.Trait {
			return a.classifyThemes(in, domain.SectionFrustrations, a.tax.Frustrations)
		}},
		{domain.SectionOnlineHabits, a.classifyHabits},
	}

	results := make([][]domain.Trait, len(jobs))
	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = jobs[i].fn(ordered)
		}(i)
	}
	wg.Wait()

	sections := make(map[domain.SectionKey][]domain.Trait, len(jobs))
	for i, job := range jobs {
		traits := results[i]
		if len(traits) == 0 {
			traits = []domain.Trait{{
				Section:  job.key,
				Label:    FallbackLabel,
				Fallback: true,
			}}
		}
		for j := range traits {
			traits[j].Section = job.key
			traits[j].Rank = j + 1
		}
		sections[job.key] = traits
	}

	index := make(map[string]domain.ContentItem, len(ordered))
	for _, item := range ordered {
		index[item.ID] = item
	}
	var citations []domain.Citation
	for _, key := range domain.SectionOrder {
		citations = append(citations, a.buildSectionCitations(sections[key], index)...)
	}

	return Result{
		Persona: domain.Persona{
			Username: username,
			Sections: sections,
		},
		Citations: citations,
	}
}

// orderByRecency establece el orden canonico de procesamiento: timestamp
// descendente, estable ante empates para que la entrada fija reproduzca
// salida identica.
func orderByRecency(items []domain.ContentItem) []domain.ContentItem {
	ordered := make([]domain.ContentItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	return ordered
}
