package scanner

import (
	"regexp"
	"strings"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/ignore"
)

var (
	sqlSprintfCallRe = regexp.MustCompile(`\w*[Dd][Bb]\.(Query|Exec|QueryRow)(?:Context)?\s*\(\s*(?:[\w.]+,\s*)?fmt\.Sprintf\(`)
	sqlConcatRe      = regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE)\b[^"'` + "`" + `]*["'` + "`" + `][^"'` + "`" + `]*["'` + "`" + `]\s*\+`)
)

type sqlInjectionGoScanner struct{}

func (s *sqlInjectionGoScanner) Name() string { return "sql-injection-go" }

func (s *sqlInjectionGoScanner) Scan(path, content string, cfg *config.Config) ([]Issue, error) {
	sev := severityFor(cfg, "sql-injection-go", config.SeverityCritical)
	directives := ignore.Parse(content)

	var issues []Issue
	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		matched := sqlSprintfCallRe.MatchString(line) || sqlConcatRe.MatchString(line)
		if !matched {
			continue
		}
		if suppressedOrLog(directives, lineNo, s.Name(), path) {
			continue
		}
		issues = append(issues, Issue{
			Title:        "Possible SQL Injection",
			Description:  "SQL built via fmt.Sprintf or string concatenation instead of a parameterized query.",
			FilePath:     path,
			LineNumber:   lineNo,
			Severity:     sev,
			SuggestedFix: "Use a parameterized query with placeholder arguments instead of building the SQL string dynamically.",
			Rule:         s.Name(),
		})
	}
	return issues, nil
}
