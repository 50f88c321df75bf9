package scanner

import (
	"regexp"
	"strings"
	"sync"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/ignore"
	"github.com/reviewlens/reviewlens/internal/index"
)

type conventionBaseline struct {
	prefersLogging   bool
	discourageUnwrap bool
	requireResult    bool
}

// conventionsScanner derives a baseline once per Engine run (guarded by
// once) from the persisted index, then flags lines in scanned files that
// violate it.
type conventionsScanner struct {
	once     sync.Once
	baseline *conventionBaseline
}

func newConventionsScanner() *conventionsScanner {
	return &conventionsScanner{}
}

func (s *conventionsScanner) Name() string { return "conventions" }

var topLevelFuncRe = regexp.MustCompile(`^func\s+[\w.]*\([^)]*\)`)

func (s *conventionsScanner) Scan(path, content string, cfg *config.Config) ([]Issue, error) {
	baseline := s.ensureBaseline(cfg)
	if baseline == nil {
		return nil, nil
	}

	sev := severityFor(cfg, "conventions", config.SeverityMedium)
	directives := ignore.Parse(content)

	var issues []Issue
	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1

		if baseline.prefersLogging && (strings.Contains(line, "println!") || strings.Contains(line, "eprintln!") || strings.Contains(line, "fmt.Println(") || strings.Contains(line, "fmt.Printf(")) {
			if !suppressedOrLog(directives, lineNo, s.Name(), path) {
				issues = append(issues, Issue{
					Title:        "Inconsistent Logging",
					Description:  "Use the repository's structured logger instead of println/Printf per repository conventions.",
					FilePath:     path,
					LineNumber:   lineNo,
					Severity:     sev,
					SuggestedFix: "Replace the direct print call with the repository's logger.",
					Rule:         s.Name(),
				})
			}
		}

		if baseline.discourageUnwrap && (strings.Contains(line, ".unwrap()") || strings.Contains(line, ".expect(")) {
			if !suppressedOrLog(directives, lineNo, s.Name(), path) {
				issues = append(issues, Issue{
					Title:        "Avoid unwrap/expect",
					Description:  "Prefer explicit error propagation instead of unwrap()/expect() per repository conventions.",
					FilePath:     path,
					LineNumber:   lineNo,
					Severity:     sev,
					SuggestedFix: "Propagate the error to the caller or handle it explicitly.",
					Rule:         s.Name(),
				})
			}
		}

		if baseline.requireResult {
			trimmed := strings.TrimSpace(line)
			if topLevelFuncRe.MatchString(trimmed) && !strings.Contains(trimmed, "Result<") && !strings.Contains(trimmed, "error") {
				if !suppressedOrLog(directives, lineNo, s.Name(), path) {
					issues = append(issues, Issue{
						Title:        "Missing error return",
						Description:  "Every indexed top-level function returns an error/Result; this signature does not.",
						FilePath:     path,
						LineNumber:   lineNo,
						Severity:     sev,
						SuggestedFix: "Return an error from this function, matching the rest of the codebase.",
						Rule:         s.Name(),
					})
				}
			}
		}
	}

	return issues, nil
}

func (s *conventionsScanner) ensureBaseline(cfg *config.Config) *conventionBaseline {
	s.once.Do(func() {
		store, err := index.Load(cfg.IndexPath())
		if err != nil || len(store.Documents) == 0 {
			return
		}

		var logMacro, prints, unwrapExpect, resultErr, totalFns, resultFns int
		for _, doc := range store.Documents {
			for _, line := range doc.LogLines {
				if strings.Contains(line, "log::") {
					logMacro++
				}
				if strings.Contains(line, "println!") || strings.Contains(line, "eprintln!") {
					prints++
				}
			}
			for _, line := range doc.ErrorLines {
				if strings.Contains(line, ".unwrap()") || strings.Contains(line, ".expect(") {
					unwrapExpect++
				}
				if strings.Contains(line, "Result<") || strings.Contains(line, "Err(") {
					resultErr++
				}
			}
			for _, sig := range doc.FunctionSigs {
				totalFns++
				if strings.Contains(sig, "->") && strings.Contains(sig, "Result<") {
					resultFns++
				} else if strings.Contains(sig, "error") {
					resultFns++
				}
			}
		}

		s.baseline = &conventionBaseline{
			prefersLogging:   logMacro >= prints,
			discourageUnwrap: resultErr >= unwrapExpect,
			requireResult:    totalFns > 0 && resultFns == totalFns,
		}
	})
	return s.baseline
}
