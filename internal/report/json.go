package report

import (
	"bytes"
	"encoding/json"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/redact"
	"github.com/reviewlens/reviewlens/internal/scanner"
)

// jsonReport is the externalized shape of a Report: stable field names and
// key order (struct field order is preserved by encoding/json; map keys
// inside are sorted alphabetically by the standard library, so two runs
// over identical input always produce byte-identical output).
type jsonReport struct {
	Summary        string          `json:"summary"`
	Issues         []scanner.Issue `json:"issues"`
	CodeQuality    []string        `json:"code_quality"`
	Hotspots       []string        `json:"hotspots"`
	MermaidDiagram *string         `json:"mermaid_diagram,omitempty"`
	Config         json.RawMessage `json:"config"`
}

// JSON renders r as indented, redacted, canonical JSON. Every string field
// — including ones nested inside issues and code-quality notes — is redacted
// before serialization, so the JSON report carries the same privacy
// guarantee as the Markdown report.
func JSON(r *Report) ([]byte, error) {
	configJSON, err := canonicalConfigJSON(r.Config)
	if err != nil {
		return nil, err
	}
	out := jsonReport{
		Summary:     redact.Redact(r.Config, r.Summary),
		Issues:      redactIssues(r.Config, r.Issues),
		CodeQuality: redactAll(r.Config, r.CodeQuality),
		Hotspots:    redactAll(r.Config, r.Hotspots),
		Config:      json.RawMessage(redact.Redact(r.Config, configJSON)),
	}
	if r.MermaidDiagram != "" {
		diagram := redact.Redact(r.Config, r.MermaidDiagram)
		out.MermaidDiagram = &diagram
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func redactIssues(cfg *config.Config, issues []scanner.Issue) []scanner.Issue {
	out := make([]scanner.Issue, len(issues))
	for i, issue := range issues {
		issue.Title = redact.Redact(cfg, issue.Title)
		issue.FilePath = redact.Redact(cfg, issue.FilePath)
		issue.Description = redact.Redact(cfg, issue.Description)
		issue.SuggestedFix = redact.Redact(cfg, issue.SuggestedFix)
		issue.DiffHint = redact.Redact(cfg, issue.DiffHint)
		out[i] = issue
	}
	return out
}

func redactAll(cfg *config.Config, notes []string) []string {
	out := make([]string, len(notes))
	for i, note := range notes {
		out[i] = redact.Redact(cfg, note)
	}
	return out
}

// canonicalConfigJSON renders cfg as indented JSON for the configuration
// snapshot of both reports, sharing the same encoder settings as JSON.
func canonicalConfigJSON(cfg *config.Config) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cfg); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
