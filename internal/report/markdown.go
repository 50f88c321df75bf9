// Package report renders a ReviewReport as Markdown or canonical JSON. Both
// serializers apply redaction to every externalized string so that secrets
// caught only in descriptions or diff hints never reach disk or stdout.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/redact"
	"github.com/reviewlens/reviewlens/internal/scanner"
)

// Report mirrors engine.ReviewReport without importing internal/engine, so
// internal/report has no dependency on the orchestrator.
type Report struct {
	Summary        string
	Issues         []scanner.Issue
	CodeQuality    []string
	Hotspots       []string
	MermaidDiagram string
	Config         *config.Config
}

// Markdown renders r as a fixed-section Markdown document: Summary, Security
// Findings, Code Quality & Conventions, Hotspots, an optional Diagram, and a
// Configuration Snapshot appendix.
func Markdown(r *Report) (string, error) {
	var md strings.Builder

	md.WriteString("# Code Review Report\n\n")

	md.WriteString("## Summary\n\n")
	md.WriteString(redact.Redact(r.Config, r.Summary))
	md.WriteString("\n\n")

	md.WriteString("## 🚨 Security Findings\n\n")
	issues := make([]scanner.Issue, len(r.Issues))
	copy(issues, r.Issues)
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Severity > issues[j].Severity })

	if len(issues) == 0 {
		md.WriteString("✅ No issues found.\n")
	} else {
		md.WriteString("| Severity | Title | File:Line | Description | Suggested Fix |\n")
		md.WriteString("|---|---|---|---|---|\n")
		for _, issue := range issues {
			fix := issue.SuggestedFix
			if fix == "" {
				fix = "-"
			}
			md.WriteString(fmt.Sprintf(
				"| `%s` | %s | `%s:%d` | %s | %s |\n",
				issue.Severity,
				redact.Redact(r.Config, issue.Title),
				redact.Redact(r.Config, issue.FilePath),
				issue.LineNumber,
				redact.Redact(r.Config, issue.Description),
				redact.Redact(r.Config, fix),
			))
		}

		for _, issue := range issues {
			if issue.DiffHint == "" {
				continue
			}
			md.WriteString(fmt.Sprintf(
				"\n<details>\n<summary>Diff suggestion for `%s` at `%s:%d`</summary>\n\n```diff\n%s\n```\n</details>\n",
				redact.Redact(r.Config, issue.Title), redact.Redact(r.Config, issue.FilePath), issue.LineNumber, redact.Redact(r.Config, issue.DiffHint),
			))
		}
	}

	md.WriteString("\n## 🧹 Code Quality & Conventions\n\n")
	if len(r.CodeQuality) == 0 {
		md.WriteString("No code quality issues found.\n")
	} else {
		md.WriteString("| Location | Note |\n|---|---|\n")
		for _, note := range r.CodeQuality {
			note = redact.Redact(r.Config, note)
			if loc, desc, ok := strings.Cut(note, " - "); ok {
				md.WriteString(fmt.Sprintf("| `%s` | %s |\n", loc, desc))
			} else {
				md.WriteString(fmt.Sprintf("| %s | |\n", note))
			}
		}
	}

	md.WriteString("\n## 🔥 Hotspots\n\n")
	if len(r.Hotspots) == 0 {
		md.WriteString("No hotspots identified.\n")
	} else {
		md.WriteString("| File | Changes |\n|---|---|\n")
		for _, spot := range r.Hotspots {
			spot = redact.Redact(r.Config, spot)
			if file, changes, ok := strings.Cut(spot, " ("); ok {
				changes = strings.TrimSuffix(changes, ")")
				md.WriteString(fmt.Sprintf("| `%s` | %s |\n", file, changes))
			} else {
				md.WriteString(fmt.Sprintf("| %s | |\n", spot))
			}
		}
	}

	if r.MermaidDiagram != "" {
		md.WriteString("\n## Diagram\n\n")
		md.WriteString("```mermaid\n")
		md.WriteString(redact.Redact(r.Config, r.MermaidDiagram))
		md.WriteString("\n```\n")
	}

	md.WriteString("\n---\n\n")
	md.WriteString("## Appendix: Configuration Snapshot\n\n")
	md.WriteString("This review was run with the following configuration:\n\n")
	md.WriteString("```json\n")
	configJSON, err := canonicalConfigJSON(r.Config)
	if err != nil {
		return "", err
	}
	md.WriteString(redact.Redact(r.Config, configJSON))
	md.WriteString("\n```\n")

	return md.String(), nil
}
