package format

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"reddit-persona/internal/domain"
)

func sampleRun() domain.AnalysisRun {
	sections := map[domain.SectionKey][]domain.Trait{
		domain.SectionInterests: {
			{Section: domain.SectionInterests, Label: "Primary interest: Programming", Rank: 1, SourceIDs: []string{"t3_1"}},
		},
		domain.SectionGoals: {
			{Section: domain.SectionGoals, Label: "Not enough data", Rank: 1, Fallback: true},
		},
	}
	return domain.AnalysisRun{
		ID:       "run-1",
		Username: "kojied",
		Persona:  domain.Persona{Username: "kojied", Sections: sections},
		Citations: []domain.Citation{{
			TraitLabel: "Primary interest: Programming",
			Section:    domain.SectionInterests,
			ItemID:     "t3_1",
			Kind:       domain.KindPost,
			Subreddit:  "golang",
			Permalink:  "https://reddit.com/r/golang/comments/t3_1/",
			Snippet:    "learning go generics",
		}},
		ItemCount:    5,
		SkippedCount: 1,
		CreatedAt:    time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
	}
}

func TestTextBannerAndFooter(t *testing.T) {
	out := Text(sampleRun())

	if !strings.HasPrefix(out, "USER PERSONA: KOJIED\n") {
		t.Fatalf("missing banner:\n%s", out)
	}
	if !strings.Contains(out, "Analyzed 5 items (1 skipped) at 2025-06-01 14:30:00 UTC") {
		t.Fatalf("missing footer:\n%s", out)
	}
}

func TestTextSectionsInCanonicalOrder(t *testing.T) {
	out := Text(sampleRun())

	last := -1
	for _, key := range domain.SectionOrder {
		idx := strings.Index(out, domain.SectionTitles[key]+":")
		if idx < 0 {
			t.Fatalf("section %s missing from report", key)
		}
		if idx < last {
			t.Fatalf("section %s out of order", key)
		}
		last = idx
	}
}

func TestTextIncludesCitations(t *testing.T) {
	out := Text(sampleRun())

	if !strings.Contains(out, "CITATIONS:") {
		t.Fatalf("missing citations block:\n%s", out)
	}
	if !strings.Contains(out, "https://reddit.com/r/golang/comments/t3_1/") {
		t.Fatalf("missing permalink:\n%s", out)
	}
	if !strings.Contains(out, `"learning go generics" (r/golang, post)`) {
		t.Fatalf("missing snippet line:\n%s", out)
	}
}

func TestTextOmitsCitationsBlockWhenEmpty(t *testing.T) {
	run := sampleRun()
	run.Citations = nil

	if strings.Contains(Text(run), "CITATIONS:") {
		t.Fatalf("citations block should be omitted when empty")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := JSON(sampleRun())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var decoded domain.AnalysisRun
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal rendered json: %v", err)
	}
	if decoded.ID != "run-1" || decoded.ItemCount != 5 {
		t.Fatalf("unexpected decoded run: %+v", decoded)
	}
	if len(decoded.Citations) != 1 {
		t.Fatalf("citations lost in rendering")
	}
}
