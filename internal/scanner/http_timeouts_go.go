package scanner

import (
	"regexp"
	"strings"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/ignore"
)

var (
	httpShorthandCallRe = regexp.MustCompile(`\bhttp\.(Get|Post|Head|Do)\s*\(`)
	httpClientLiteralRe = regexp.MustCompile(`\bhttp\.Client\s*\{`)
	httpTimeoutFieldRe  = regexp.MustCompile(`Timeout\s*:`)
)

type httpTimeoutsGoScanner struct{}

func (s *httpTimeoutsGoScanner) Name() string { return "http-timeouts-go" }

func (s *httpTimeoutsGoScanner) Scan(path, content string, cfg *config.Config) ([]Issue, error) {
	sev := severityFor(cfg, "http-timeouts-go", config.SeverityMedium)
	directives := ignore.Parse(content)

	var issues []Issue
	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1

		var title, desc string
		switch {
		case httpShorthandCallRe.MatchString(line):
			title = "http package-level client used without timeout"
			desc = "net/http's package-level Get/Post/Head/Do use http.DefaultClient, which has no timeout and can hang indefinitely."
		case httpClientLiteralRe.MatchString(line) && !httpTimeoutFieldRe.MatchString(line):
			title = "http.Client constructed without Timeout"
			desc = "An http.Client literal without a Timeout field can hang indefinitely on a slow or unresponsive server."
		default:
			continue
		}

		if suppressedOrLog(directives, lineNo, s.Name(), path) {
			continue
		}

		issues = append(issues, Issue{
			Title:        title,
			Description:  desc,
			FilePath:     path,
			LineNumber:   lineNo,
			Severity:     sev,
			SuggestedFix: "Set an explicit Timeout (directly, or via context.WithTimeout on the request).",
			Rule:         s.Name(),
		})
	}
	return issues, nil
}
