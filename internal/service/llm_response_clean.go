package service

import (
	"regexp"
	"strings"
)

// cleanLLMResponse quita fences ```...``` y BOM, dejando el contenido usable.
func cleanLLMResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// BOM (por si acaso)
	s = strings.TrimPrefix(s, "\ufeff")

	// Quitar fences tipo ```text ... ``` o ``` ... ```
	reStart := regexp.MustCompile("(?is)^\\s*```[a-z]*\\s*")
	reEnd := regexp.MustCompile("(?is)\\s*```\\s*$")
	s = reStart.ReplaceAllString(s, "")
	s = reEnd.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
