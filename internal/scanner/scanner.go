// Package scanner implements the diff-restricted rule scanning stage: a
// registry of named rules, each producing Issues from a file's on-disk
// content restricted to the lines a diff actually added.
package scanner

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/ignore"
)

// Issue is a single finding emitted by a scanner.
type Issue struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	FilePath     string          `json:"file_path"`
	LineNumber   int             `json:"line_number"`
	Severity     config.Severity `json:"severity"`
	SuggestedFix string          `json:"suggested_fix,omitempty"`
	DiffHint     string          `json:"diff,omitempty"`
	// Rule is the registry name of the rule that produced this issue; it is
	// not part of the externalized report shape but is used by the engine
	// to route conventions findings into code_quality.
	Rule string `json:"-"`
}

// Error reports a rule execution failure.
type Error struct {
	Rule    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("scanner %s: %s", e.Rule, e.Message)
}

// Scanner is the capability set every rule implements.
type Scanner interface {
	Name() string
	Scan(path, content string, cfg *config.Config) ([]Issue, error)
}

// Factory constructs a fresh Scanner instance.
type Factory func() Scanner

var registry = map[string]Factory{}

func init() {
	register("secrets", func() Scanner { return &secretsScanner{} })
	register("sql-injection-go", func() Scanner { return &sqlInjectionGoScanner{} })
	register("http-timeouts-go", func() Scanner { return &httpTimeoutsGoScanner{} })
	register("server-xss-go", func() Scanner { return &serverXSSGoScanner{} })
	register("conventions", func() Scanner { return newConventionsScanner() })
}

func register(name string, factory Factory) {
	registry[name] = factory
}

// LoadEnabled materializes one Scanner per rule enabled in cfg.Rules,
// preserving deterministic (name-sorted) order so iteration never depends
// on map order.
func LoadEnabled(cfg *config.Config) []Scanner {
	var names []string
	for name, rule := range cfg.Rules {
		if rule.Enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var scanners []Scanner
	for _, name := range names {
		factory, ok := registry[name]
		if !ok {
			continue
		}
		scanners = append(scanners, factory())
	}
	return scanners
}

// severityFor resolves a rule's configured severity, falling back to def
// when unset or invalid.
func severityFor(cfg *config.Config, rule string, def config.Severity) config.Severity {
	rc, ok := cfg.Rules[rule]
	if !ok || rc.Severity == "" {
		return def
	}
	sev, err := config.ParseSeverity(rc.Severity)
	if err != nil {
		return def
	}
	return sev
}

// suppressedOrLog checks the ignore map for a suppression of rule at lineNo;
// callers skip emitting the issue when this returns true. Suppressions are
// logged, never silently dropped.
func suppressedOrLog(directives map[int][]ignore.Directive, lineNo int, rule, path string) bool {
	suppressed, reason := ignore.Suppresses(directives, lineNo, rule)
	if suppressed {
		slog.Info("suppressed finding", "rule", rule, "file", path, "line", lineNo, "reason", reason)
	}
	return suppressed
}
