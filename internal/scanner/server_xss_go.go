package scanner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/ignore"
)

var (
	textTemplateRe = regexp.MustCompile(`(?i)text/template`)

	// taintSourceRe captures a variable assigned directly from unescaped
	// request input: `name := r.FormValue("x")`, `name = r.Form.Get("x")`,
	// `name := r.URL.Query().Get("x")`.
	taintSourceRe = regexp.MustCompile(`(\w+)\s*:?=\s*[^\n]*(?:r\.FormValue|r\.Form\.Get|r\.URL\.Query\(\)\.Get)\s*\(`)

	// escapeAssignRe matches a tainted variable being reassigned through an
	// escaping call, clearing its taint: `name = html.EscapeString(name)`.
	escapeAssignRe = regexp.MustCompile(`(\w+)\s*=\s*(?:html\.EscapeString|template\.HTMLEscapeString|template\.HTMLEscaper)\s*\(`)

	// writeCallRe matches a write to an http.ResponseWriter.
	writeCallRe = regexp.MustCompile(`(?:w\.Write|fmt\.Fprintf\(\s*w\s*,|io\.WriteString\(\s*w\s*,)`)

	identifierRe = regexp.MustCompile(`\w+`)
)

type serverXSSGoScanner struct{}

func (s *serverXSSGoScanner) Name() string { return "server-xss-go" }

func (s *serverXSSGoScanner) Scan(path, content string, cfg *config.Config) ([]Issue, error) {
	sev := severityFor(cfg, "server-xss-go", config.SeverityMedium)
	directives := ignore.Parse(content)

	tainted := map[string]bool{}
	var issues []Issue

	emit := func(lineNo int, title, desc, fix, diffHint string) {
		if suppressedOrLog(directives, lineNo, s.Name(), path) {
			return
		}
		issues = append(issues, Issue{
			Title:        title,
			Description:  desc,
			FilePath:     path,
			LineNumber:   lineNo,
			Severity:     sev,
			SuggestedFix: fix,
			DiffHint:     diffHint,
			Rule:         s.Name(),
		})
	}

	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1

		if textTemplateRe.MatchString(line) {
			emit(lineNo,
				"text/template used for HTML",
				"text/template does not auto-escape HTML; use html/template instead.",
				"Use html/template which auto-escapes HTML.",
				fmt.Sprintf("-%s\n+%s", strings.TrimSpace(line), strings.TrimSpace(strings.ReplaceAll(line, "text/template", "html/template"))),
			)
		}

		if m := escapeAssignRe.FindStringSubmatch(line); m != nil {
			delete(tainted, m[1])
			continue
		}

		if m := taintSourceRe.FindStringSubmatch(line); m != nil {
			tainted[m[1]] = true
			continue
		}

		if writeCallRe.MatchString(line) {
			for _, ident := range identifierRe.FindAllString(line, -1) {
				if !tainted[ident] {
					continue
				}
				emit(lineNo,
					"Unescaped user input written to ResponseWriter",
					fmt.Sprintf("%q is tainted from request input and is written to the response without escaping; this can lead to XSS.", ident),
					"Escape the value (e.g. html.EscapeString) before writing it to the response.",
					fmt.Sprintf("-%s\n+// escape %s before writing", strings.TrimSpace(line), ident),
				)
				break
			}
		}
	}

	return issues, nil
}
