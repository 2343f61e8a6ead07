package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"reddit-persona/internal/domain"
	"reddit-persona/internal/llm"
)

func sampleRun() domain.AnalysisRun {
	return domain.AnalysisRun{
		Username: "kojied",
		Persona: domain.Persona{
			Username: "kojied",
			Sections: map[domain.SectionKey][]domain.Trait{
				domain.SectionInterests: {
					{Section: domain.SectionInterests, Label: "Primary interest: Programming", Rank: 1},
				},
				domain.SectionGoals: {
					{Section: domain.SectionGoals, Label: "Not enough data", Rank: 1, Fallback: true},
				},
			},
		},
	}
}

func TestWriteNarrative(t *testing.T) {
	mock := &llm.MockClient{Response: "A curious developer who spends time on programming communities."}
	svc := NewNarrativeService(mock)

	got, err := svc.WriteNarrative(context.Background(), sampleRun())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != mock.Response {
		t.Fatalf("unexpected narrative: %q", got)
	}
}

func TestWriteNarrativeStripsCodeFences(t *testing.T) {
	mock := &llm.MockClient{Response: "```text\nA developer persona.\n```"}
	svc := NewNarrativeService(mock)

	got, err := svc.WriteNarrative(context.Background(), sampleRun())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "A developer persona." {
		t.Fatalf("expected fences stripped, got %q", got)
	}
}

func TestWriteNarrativePropagatesLLMError(t *testing.T) {
	mock := &llm.MockClient{Err: errors.New("rate limited")}
	svc := NewNarrativeService(mock)

	if _, err := svc.WriteNarrative(context.Background(), sampleRun()); err == nil {
		t.Fatalf("expected error from llm client")
	}
}

func TestWriteNarrativeRejectsEmptyResponse(t *testing.T) {
	mock := &llm.MockClient{Response: "```\n```"}
	svc := NewNarrativeService(mock)

	if _, err := svc.WriteNarrative(context.Background(), sampleRun()); err == nil {
		t.Fatalf("expected error for empty narrative")
	}
}

func TestRenderAttributesMarksFallbacks(t *testing.T) {
	out := renderAttributes(sampleRun().Persona)

	if !strings.Contains(out, "Primary interest: Programming") {
		t.Fatalf("missing trait in attributes:\n%s", out)
	}
	if !strings.Contains(out, "Not enough data [no evidence]") {
		t.Fatalf("fallback trait not marked:\n%s", out)
	}
}
