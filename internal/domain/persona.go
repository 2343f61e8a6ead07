package domain

import "time"

// SectionKey identifica una seccion del persona.
type SectionKey string

const (
	SectionDemographics SectionKey = "demographics"
	SectionInterests    SectionKey = "interests"
	SectionPersonality  SectionKey = "personality_traits"
	SectionBehavior     SectionKey = "behavior_patterns"
	SectionGoals        SectionKey = "goals_motivations"
	SectionFrustrations SectionKey = "frustrations"
	SectionOnlineHabits SectionKey = "online_habits"
)

// SectionOrder fija el orden canonico de emision, independiente del input.
var SectionOrder = []SectionKey{
	SectionDemographics,
	SectionInterests,
	SectionPersonality,
	SectionBehavior,
	SectionGoals,
	SectionFrustrations,
	SectionOnlineHabits,
}

// SectionTitles para render en texto plano.
var SectionTitles = map[SectionKey]string{
	SectionDemographics: "DEMOGRAPHICS",
	SectionInterests:    "INTERESTS",
	SectionPersonality:  "PERSONALITY TRAITS",
	SectionBehavior:     "BEHAVIOR PATTERNS",
	SectionGoals:        "GOALS & MOTIVATIONS",
	SectionFrustrations: "FRUSTRATIONS",
	SectionOnlineHabits: "ONLINE HABITS",
}

// Trait es un atributo inferido, rankeado dentro de su seccion.
// Fallback marca rasgos de "sin datos": nunca llevan citas y no son error.
type Trait struct {
	Section   SectionKey `json:"section"`
	Label     string     `json:"label"`
	Rank      int        `json:"rank"`
	SourceIDs []string   `json:"source_ids,omitempty"`
	Fallback  bool       `json:"fallback,omitempty"`
}

// Citation vincula un rasgo con el contenido que lo justifica.
type Citation struct {
	TraitLabel string      `json:"trait_label"`
	Section    SectionKey  `json:"section"`
	ItemID     string      `json:"item_id"`
	Kind       ContentKind `json:"kind"`
	Subreddit  string      `json:"subreddit"`
	Permalink  string      `json:"permalink"`
	Snippet    string      `json:"snippet"`
}

// Persona es el agregado final: cada seccion canonica siempre presente.
type Persona struct {
	Username string                 `json:"username"`
	Sections map[SectionKey][]Trait `json:"sections"`
}

// AnalysisRun es una corrida persistida del analisis.
type AnalysisRun struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Persona      Persona    `json:"persona"`
	Citations    []Citation `json:"citations"`
	ItemCount    int        `json:"item_count"`
	SkippedCount int        `json:"skipped_count"`
	CreatedAt    time.Time  `json:"created_at"`
}
