// Package engine orchestrates the review pipeline: parse a diff, scan
// retained files, consult the RAG retriever, call the LLM adapter under
// budget, compute hotspots, and assemble a deterministic ReviewReport.
package engine

import (
	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/scanner"
)

// ReviewReport is the final, consolidated review output.
type ReviewReport struct {
	Summary        string
	Issues         []scanner.Issue
	CodeQuality    []string
	Hotspots       []string
	MermaidDiagram string
	Config         *config.Config
}
