package scanner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/ignore"
)

var secretRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)api[_-]?key\s*[:=]\s*['"][a-zA-Z0-9\-_]{16,}['"]`),
	regexp.MustCompile(`(?i)aws_secret_access_key\s*[:=]\s*['"][a-zA-Z0-9/+=]{40}['"]`),
	regexp.MustCompile(`(?i)token\s*[:=]\s*['"][a-zA-Z0-9\-_]{20,}['"]`),
	regexp.MustCompile(`-----BEGIN [A-Z ]+ PRIVATE KEY-----`),
}

type secretsScanner struct{}

func (s *secretsScanner) Name() string { return "secrets" }

func (s *secretsScanner) Scan(path, content string, cfg *config.Config) ([]Issue, error) {
	sev := severityFor(cfg, "secrets", config.SeverityHigh)
	directives := ignore.Parse(content)

	var issues []Issue
	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		for _, re := range secretRegexes {
			if !re.MatchString(line) {
				continue
			}
			if suppressedOrLog(directives, lineNo, s.Name(), path) {
				break
			}
			issues = append(issues, Issue{
				Title: "Potential Secret Found",
				Description: fmt.Sprintf(
					"A line matching the pattern for a secret was found: `%s`. Please verify and rotate if necessary.",
					re.String()),
				FilePath:     path,
				LineNumber:   lineNo,
				Severity:     sev,
				SuggestedFix: "Remove secrets from source control and use secure storage or environment variables.",
				DiffHint:     fmt.Sprintf("-%s\n+<redacted>", strings.TrimSpace(line)),
				Rule:         s.Name(),
			})
			break // don't flag the same line multiple times
		}
	}
	return issues, nil
}
