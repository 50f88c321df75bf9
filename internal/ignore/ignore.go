// Package ignore extracts inline reviewlens:ignore suppression directives
// from file text.
package ignore

import (
	"regexp"
	"strings"
)

// Directive is a single suppression marker: a rule name, an optional
// free-text reason, and the 1-based source line it applies to.
type Directive struct {
	Rule   string
	Reason string
	Line   int
}

var directiveRe = regexp.MustCompile(`//\s*reviewlens:ignore\s+([a-z0-9-]+)(?:\s+(.*))?$`)

// commentOnlyRe matches lines that are nothing but a // comment (optionally
// indented), used to decide whether a directive targets the next line.
var commentOnlyRe = regexp.MustCompile(`^\s*//`)

// Parse scans file content line by line for suppression directives and
// returns a map from target line number to the directives active there.
func Parse(content string) map[int][]Directive {
	result := make(map[int][]Directive)
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		m := directiveRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		lineNo := i + 1
		target := lineNo
		if isCommentOnlyLine(line) {
			target = lineNo + 1
		}

		d := Directive{Rule: m[1], Line: target}
		if len(m) > 2 {
			d.Reason = strings.TrimSpace(m[2])
		}
		result[target] = append(result[target], d)
	}

	return result
}

func isCommentOnlyLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return commentOnlyRe.MatchString(line) && strings.HasPrefix(trimmed, "//")
}

// Suppresses reports whether the given rule is suppressed at lineNo, and if
// so, the reason (which may be empty).
func Suppresses(directives map[int][]Directive, lineNo int, rule string) (bool, string) {
	for _, d := range directives[lineNo] {
		if d.Rule == rule {
			return true, d.Reason
		}
	}
	return false, ""
}
