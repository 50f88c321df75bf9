package index

import (
	"regexp"
	"strings"
)

// Document is one indexed file: its content plus derived metadata used by
// the RAG retriever and the convention-deviation baseline.
type Document struct {
	ID           string       `json:"id"`
	Filename     string       `json:"filename"`
	Content      string       `json:"content"`
	Embedding    [Dim]float64 `json:"embedding"`
	FunctionSigs []string     `json:"function_signatures"`
	LogLines     []string     `json:"log_lines"`
	ErrorLines   []string     `json:"error_lines"`
	ModifiedNs   int64        `json:"modified_ns"`
}

var functionSigRe = regexp.MustCompile(`(?m)^\s*func\s+[\w.]*\([^)]*\)[^{]*\{?`)

// extractMetadata derives FunctionSigs/LogLines/ErrorLines from content,
// matching the log::/println!/unwrap idiom vocabulary the convention
// baseline is tallied against (see scanner.conventions).
func extractMetadata(content string) (sigs, logLines, errLines []string) {
	sigs = functionSigRe.FindAllString(content, -1)

	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "log::") || strings.Contains(line, "println!") || strings.Contains(line, "eprintln!") {
			logLines = append(logLines, line)
		}
		if strings.Contains(line, ".unwrap()") || strings.Contains(line, ".expect(") ||
			strings.Contains(line, "Result<") || strings.Contains(line, "Err(") {
			errLines = append(errLines, line)
		}
	}
	return sigs, logLines, errLines
}
