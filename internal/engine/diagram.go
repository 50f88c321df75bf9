package engine

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// buildSequenceDiagram renders a Mermaid sequenceDiagram from cross-file call
// interactions among the reviewed files: when one file's content invokes an
// exported symbol through another reviewed file's base name (its package- or
// module-local identifier), an edge is emitted from the caller to the
// callee. This is a coarse textual heuristic with no type information — it
// exists to surface which changed files call into which others, not to
// replace real call-graph analysis. Returns "" when no interaction is
// detected, so the report omits the Diagram section entirely.
func buildSequenceDiagram(paths []string, contents map[string]string) string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	type edge struct {
		from, to, call string
	}
	var edges []edge

	for _, from := range sorted {
		for _, to := range sorted {
			if from == to {
				continue
			}
			ident := strings.TrimSuffix(filepath.Base(to), filepath.Ext(to))
			if ident == "" {
				continue
			}
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(ident) + `\.([A-Z]\w*)\(`)
			m := re.FindStringSubmatch(contents[from])
			if m == nil {
				continue
			}
			edges = append(edges, edge{
				from: filepath.Base(from),
				to:   filepath.Base(to),
				call: fmt.Sprintf("%s.%s()", ident, m[1]),
			})
		}
	}

	if len(edges) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("sequenceDiagram\n")
	for _, e := range edges {
		fmt.Fprintf(&b, "    %s->>%s: %s\n", e.from, e.to, e.call)
	}
	return strings.TrimRight(b.String(), "\n")
}
