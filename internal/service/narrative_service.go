package service

import (
	"context"
	"fmt"
	"strings"

	"reddit-persona/internal/domain"
	"reddit-persona/internal/llm"
)

const narrativePromptTemplate = `You are a UX researcher writing a short user persona narrative.
You receive a structured persona derived from a Reddit user's public activity.
Write 2-3 flowing paragraphs in third person summarizing who this user seems to be.

Rules:
- Use ONLY the attributes listed below. Do not invent facts.
- Attributes marked [no evidence] are unknowns: mention them as unknowns or skip them.
- Plain prose, no headings, no bullet points, no markdown.

Structured persona for u/%s:
%s`

// NarrativeService convierte el persona estructurado en prosa via LLM.
// Es un colaborador de formato opcional: el core nunca depende de el.
type NarrativeService struct {
	llmClient llm.Client
}

func NewNarrativeService(llmClient llm.Client) *NarrativeService {
	return &NarrativeService{llmClient: llmClient}
}

// WriteNarrative genera la prosa a partir de una corrida. Los rasgos
// fallback se marcan para que el modelo no los convierta en hechos.
func (s *NarrativeService) WriteNarrative(ctx context.Context, run domain.AnalysisRun) (string, error) {
	prompt := fmt.Sprintf(narrativePromptTemplate, run.Username, renderAttributes(run.Persona))

	raw, err := s.llmClient.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("llm generate: %w", err)
	}

	narrative := cleanLLMResponse(raw)
	if narrative == "" {
		return "", fmt.Errorf("llm empty narrative")
	}
	return narrative, nil
}

func renderAttributes(p domain.Persona) string {
	var b strings.Builder
	for _, key := range domain.SectionOrder {
		b.WriteString(domain.SectionTitles[key])
		b.WriteString(":\n")
		for _, trait := range p.Sections[key] {
			b.WriteString("- ")
			b.WriteString(trait.Label)
			if trait.Fallback {
				b.WriteString(" [no evidence]")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
