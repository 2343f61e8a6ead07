package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"reddit-persona/internal/domain"
)

// Text renderiza la corrida como reporte plano: secciones en orden
// canonico, rasgos en orden de ranking y citas al final.
func Text(run domain.AnalysisRun) string {
	var b strings.Builder

	fmt.Fprintf(&b, "USER PERSONA: %s\n", strings.ToUpper(run.Username))
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, key := range domain.SectionOrder {
		b.WriteString(domain.SectionTitles[key] + ":\n")
		b.WriteString(strings.Repeat("-", 20) + "\n")
		for _, trait := range run.Persona.Sections[key] {
			fmt.Fprintf(&b, "- %s\n", trait.Label)
		}
		b.WriteString("\n")
	}

	if len(run.Citations) > 0 {
		b.WriteString("CITATIONS:\n")
		b.WriteString(strings.Repeat("-", 20) + "\n")
		for _, c := range run.Citations {
			fmt.Fprintf(&b, "%s (%s):\n", c.TraitLabel, c.Section)
			fmt.Fprintf(&b, "  - %s\n", c.Permalink)
			if c.Snippet != "" {
				fmt.Fprintf(&b, "    %q (r/%s, %s)\n", c.Snippet, c.Subreddit, c.Kind)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Analyzed %d items (%d skipped) at %s\n",
		run.ItemCount, run.SkippedCount, run.CreatedAt.Format("2006-01-02 15:04:05 UTC"))

	return b.String()
}

// JSON renderiza la corrida completa con indentacion. Los mapas se
// serializan con claves ordenadas, asi que la salida es reproducible.
func JSON(run domain.AnalysisRun) ([]byte, error) {
	return json.MarshalIndent(run, "", "  ")
}
