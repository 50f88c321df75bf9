package llmadapter

import "strings"

// sanitizeNarrative strips a provider's response of surrounding Markdown
// code fences, a common artifact when a model wraps its narrative in a
// ```...``` block despite being asked for plain text. Content with no
// fences passes through unchanged.
func sanitizeNarrative(raw string) string {
	trimmed := strings.TrimSpace(raw)

	start := strings.Index(trimmed, "```")
	if start != 0 {
		return raw
	}
	end := strings.LastIndex(trimmed, "```")
	if end <= start {
		return raw
	}

	inner := strings.TrimSpace(trimmed[start+3 : end])
	if nl := strings.IndexAny(inner, "\n"); nl != -1 {
		firstLine := inner[:nl]
		if firstLine != "" && !strings.ContainsAny(firstLine, " \t") {
			inner = strings.TrimLeft(inner[nl+1:], "\n")
		}
	}
	return inner
}
