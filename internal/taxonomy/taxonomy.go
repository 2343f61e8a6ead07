package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Taxonomy agrupa las tablas estaticas keyword/subreddit -> categoria.
// Es un valor inmutable despues de cargarse: el clasificador solo lee.
type Taxonomy struct {
	Interests     map[string][]string
	Subreddits    map[string]string
	PositiveWords []string
	NegativeWords []string
	Goals         map[string][]string
	Frustrations  map[string][]string
	AgeHints      map[string]string
	Locations     map[string]string
	Occupations   map[string]string
}

// Default devuelve las tablas incorporadas. Sirven sin archivo externo.
func Default() Taxonomy {
	return Taxonomy{
		Interests: map[string][]string{
			"Programming": {"code", "coding", "python", "javascript", "golang", "programming", "developer", "software"},
			"Gaming":      {"game", "gaming", "steam", "xbox", "playstation", "nintendo"},
			"Technology":  {"tech", "technology", "computer", "laptop", "phone", "gadget"},
			"Music":       {"music", "song", "album", "artist", "band", "concert"},
			"Sports":      {"football", "basketball", "soccer", "baseball", "sport", "league"},
			"Movies & TV": {"movie", "film", "cinema", "series", "episode"},
			"Cooking":     {"cook", "recipe", "food", "kitchen", "meal", "baking"},
			"Travel":      {"travel", "trip", "vacation", "flight", "abroad"},
			"Fitness":     {"gym", "workout", "running", "fitness", "exercise"},
			"Finance":     {"invest", "investing", "stock", "crypto", "budget", "savings"},
		},
		Subreddits: map[string]string{
			"programming":      "Programming",
			"learnprogramming": "Programming",
			"learnpython":      "Programming",
			"python":           "Programming",
			"golang":           "Programming",
			"webdev":           "Programming",
			"gaming":           "Gaming",
			"games":            "Gaming",
			"pcgaming":         "Gaming",
			"technology":       "Technology",
			"buildapc":         "Technology",
			"android":          "Technology",
			"music":            "Music",
			"listentothis":     "Music",
			"soccer":           "Sports",
			"nba":              "Sports",
			"nfl":              "Sports",
			"movies":           "Movies & TV",
			"television":       "Movies & TV",
			"cooking":          "Cooking",
			"recipes":          "Cooking",
			"travel":           "Travel",
			"solotravel":       "Travel",
			"fitness":          "Fitness",
			"personalfinance":  "Finance",
			"wallstreetbets":   "Finance",
		},
		PositiveWords: []string{"good", "great", "awesome", "love", "amazing", "excellent", "happy", "thanks"},
		NegativeWords: []string{"bad", "terrible", "hate", "awful", "horrible", "worst", "annoying"},
		Goals: map[string][]string{
			"Learning new skills": {"learn", "learning", "study", "course", "tutorial"},
			"Career advancement":  {"job", "career", "promotion", "interview", "salary"},
			"Helping others":      {"help", "helping", "advice", "support", "mentor"},
			"Entertainment":       {"fun", "hobby", "enjoy", "entertainment"},
		},
		Frustrations: map[string][]string{
			"Technical issues":      {"bug", "error", "crash", "broken", "glitch"},
			"Time pressure":         {"deadline", "busy", "overtime", "no time"},
			"Steep learning curves": {"difficult", "struggle", "confusing", "stuck"},
			"Costs and pricing":     {"expensive", "overpriced", "fees", "paywall"},
		},
		AgeHints: map[string]string{
			"high school": "13-18",
			"college":     "18-25",
			"university":  "18-25",
			"grad school": "22-30",
			"mortgage":    "25-40",
			"my kids":     "25-40",
			"retirement":  "40+",
		},
		Locations: map[string]string{
			"usa":       "United States",
			"america":   "United States",
			"canada":    "Canada",
			"uk":        "United Kingdom",
			"britain":   "United Kingdom",
			"australia": "Australia",
			"germany":   "Germany",
			"india":     "India",
		},
		Occupations: map[string]string{
			"student":    "Student",
			"developer":  "Software Developer",
			"programmer": "Software Developer",
			"engineer":   "Engineer",
			"teacher":    "Teacher",
			"nurse":      "Healthcare",
			"doctor":     "Healthcare",
			"designer":   "Designer",
		},
	}
}

// SubredditCategory resuelve la categoria de interes de un subreddit, si existe.
func (t Taxonomy) SubredditCategory(subreddit string) (string, bool) {
	cat, ok := t.Subreddits[strings.ToLower(strings.TrimSpace(subreddit))]
	return cat, ok
}

// Estructura del archivo TOML de override. Cada tabla presente reemplaza
// completa a la incorporada; las ausentes conservan el default.
type fileTaxonomy struct {
	Interests    map[string][]string `toml:"interests"`
	Subreddits   map[string]string   `toml:"subreddits"`
	Tone         fileTone            `toml:"tone"`
	Goals        map[string][]string `toml:"goals"`
	Frustrations map[string][]string `toml:"frustrations"`
	Demographics fileDemographics    `toml:"demographics"`
}

type fileTone struct {
	Positive []string `toml:"positive"`
	Negative []string `toml:"negative"`
}

type fileDemographics struct {
	Age         map[string]string `toml:"age"`
	Locations   map[string]string `toml:"locations"`
	Occupations map[string]string `toml:"occupations"`
}

// LoadFile carga un override TOML sobre las tablas default.
func LoadFile(path string) (Taxonomy, error) {
	base := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("read taxonomy file '%s': %w", path, err)
	}

	var f fileTaxonomy
	if err := toml.Unmarshal(data, &f); err != nil {
		return Taxonomy{}, fmt.Errorf("parse taxonomy TOML: %w", err)
	}

	if len(f.Interests) > 0 {
		base.Interests = f.Interests
	}
	if len(f.Subreddits) > 0 {
		base.Subreddits = lowerKeys(f.Subreddits)
	}
	if len(f.Tone.Positive) > 0 {
		base.PositiveWords = f.Tone.Positive
	}
	if len(f.Tone.Negative) > 0 {
		base.NegativeWords = f.Tone.Negative
	}
	if len(f.Goals) > 0 {
		base.Goals = f.Goals
	}
	if len(f.Frustrations) > 0 {
		base.Frustrations = f.Frustrations
	}
	if len(f.Demographics.Age) > 0 {
		base.AgeHints = f.Demographics.Age
	}
	if len(f.Demographics.Locations) > 0 {
		base.Locations = f.Demographics.Locations
	}
	if len(f.Demographics.Occupations) > 0 {
		base.Occupations = f.Demographics.Occupations
	}

	return base, nil
}

func lowerKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}
