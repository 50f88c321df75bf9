package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/diffparser"
	"github.com/reviewlens/reviewlens/internal/index"
	"github.com/reviewlens/reviewlens/internal/llmadapter"
	"github.com/reviewlens/reviewlens/internal/rag"
	"github.com/reviewlens/reviewlens/internal/redact"
	"github.com/reviewlens/reviewlens/internal/scanner"
	"golang.org/x/sync/errgroup"
)

// Engine owns the pipeline's long-lived resources for the duration of one
// run: a single VectorStore handle, a single LLM adapter, and a freshly
// materialized scanner set. None of these are shared across runs.
type Engine struct {
	cfg       *config.Config
	rootDir   string
	scanners  []scanner.Scanner
	retriever *rag.Retriever
	provider  llmadapter.Provider
	isNull    bool
	logger    *slog.Logger
}

// New constructs an Engine rooted at rootDir (the repository root; relative
// diff paths resolve against it).
func New(cfg *config.Config, rootDir string, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := index.Load(cfg.IndexPath())
	if err != nil {
		return nil, &IoError{Message: "load vector index", Cause: err}
	}

	provider, err := llmadapter.New(cfg)
	if err != nil {
		return nil, &ConfigError{Message: "construct llm provider", Cause: err}
	}

	_, isNull := provider.(*llmadapter.NullProvider)
	if !isNull {
		provider = llmadapter.NewBudgeted(provider, cfg.Budget.Tokens.MaxPerRun)
	}

	return &Engine{
		cfg:       cfg,
		rootDir:   rootDir,
		scanners:  scanner.LoadEnabled(cfg),
		retriever: rag.New(store),
		provider:  provider,
		isNull:    isNull,
		logger:    logger,
	}, nil
}

// Run executes the full review pipeline against diffText and returns the
// assembled ReviewReport.
func (e *Engine) Run(ctx context.Context, diffText string) (*ReviewReport, error) {
	files, err := diffparser.Parse(diffText)
	if err != nil {
		return nil, &DiffParserError{Cause: err}
	}

	if len(files) == 0 {
		return &ReviewReport{
			Summary: "Reviewed 0 files — no issues",
			Config:  e.cfg,
		}, nil
	}

	filter := index.NewPathFilter(e.cfg.Paths.Allow, e.cfg.Paths.Deny)
	var retained []diffparser.ChangedFile
	for _, f := range files {
		if filter.Match(f.Path) {
			retained = append(retained, f)
		}
	}

	type fileScan struct {
		path        string
		addedLines  map[int]bool
		churn       int
		issues      []scanner.Issue
		codeQuality []scanner.Issue
		content     string
	}

	scans := make([]fileScan, len(retained))
	for i, f := range retained {
		added, churn := f.AddedLines()
		scans[i] = fileScan{path: f.Path, addedLines: added, churn: churn}
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range scans {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			issues, codeQuality, content, err := e.scanFile(scans[i].path, scans[i].addedLines)
			if err != nil {
				return err
			}
			scans[i].issues = issues
			scans[i].codeQuality = codeQuality
			scans[i].content = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var scanErr *ScannerError
		var ioErr *IoError
		if errors.As(err, &scanErr) || errors.As(err, &ioErr) {
			return nil, err
		}
		return nil, &IoError{Message: "scan retained files", Cause: err}
	}

	stats := make(map[string]fileStat, len(scans))
	contents := make(map[string]string, len(scans))
	paths := make([]string, 0, len(scans))
	var allIssues []scanner.Issue
	var codeQualityNotes []string
	for _, s := range scans {
		stats[s.path] = fileStat{path: s.path, churn: s.churn, findings: len(s.issues) + len(s.codeQuality)}
		contents[s.path] = s.content
		paths = append(paths, s.path)
		allIssues = append(allIssues, s.issues...)
		for _, cq := range s.codeQuality {
			codeQualityNotes = append(codeQualityNotes, fmt.Sprintf("%s:%d - %s", cq.FilePath, cq.LineNumber, cq.Description))
		}
	}

	sort.Slice(allIssues, func(i, j int) bool {
		if allIssues[i].Severity != allIssues[j].Severity {
			return allIssues[i].Severity > allIssues[j].Severity
		}
		if allIssues[i].FilePath != allIssues[j].FilePath {
			return allIssues[i].FilePath < allIssues[j].FilePath
		}
		return allIssues[i].LineNumber < allIssues[j].LineNumber
	})
	sort.Strings(codeQualityNotes)

	var contextSnippets []string
	for _, issue := range allIssues {
		query := fmt.Sprintf("%s:%d %s", issue.FilePath, issue.LineNumber, issue.Description)
		snippet, err := e.retriever.Retrieve(query)
		if err != nil {
			e.logger.Debug("rag retrieval skipped", "file", issue.FilePath, "line", issue.LineNumber, "error", err)
			continue
		}
		contextSnippets = append(contextSnippets, snippet)
	}

	prompt := e.buildPrompt(allIssues, contextSnippets)

	summary, err := e.generateSummary(ctx, prompt, len(retained), allIssues)
	if err != nil {
		return nil, err
	}

	hotspots := computeHotspots(stats, e.cfg.Report.HotspotWeights)
	diagram := buildSequenceDiagram(paths, contents)

	return &ReviewReport{
		Summary:        summary,
		Issues:         allIssues,
		CodeQuality:    codeQualityNotes,
		Hotspots:       hotspots,
		MermaidDiagram: diagram,
		Config:         e.cfg,
	}, nil
}

func (e *Engine) scanFile(path string, addedLines map[int]bool) (issues, codeQuality []scanner.Issue, content string, err error) {
	full := filepath.Join(e.rootDir, filepath.FromSlash(path))
	data, readErr := os.ReadFile(full)
	if readErr != nil {
		return nil, nil, "", &IoError{Message: fmt.Sprintf("read %s", path), Cause: readErr}
	}
	content = string(data)

	for _, s := range e.scanners {
		found, scanErr := s.Scan(path, content, e.cfg)
		if scanErr != nil {
			return nil, nil, "", &ScannerError{Cause: fmt.Errorf("%s: %w", s.Name(), scanErr)}
		}
		for _, issue := range found {
			if !addedLines[issue.LineNumber] {
				continue
			}
			if issue.Rule == "conventions" {
				codeQuality = append(codeQuality, issue)
			} else {
				issues = append(issues, issue)
			}
		}
	}
	return issues, codeQuality, content, nil
}

func (e *Engine) buildPrompt(issues []scanner.Issue, contextSnippets []string) string {
	var b strings.Builder
	for _, issue := range issues {
		line := fmt.Sprintf("%s:%d %s - %s", issue.FilePath, issue.LineNumber, issue.Title, issue.Description)
		b.WriteString(redact.Redact(e.cfg, line))
		b.WriteString("\n")
	}
	if len(contextSnippets) > 0 {
		b.WriteString("\nContext:\n")
		for _, snippet := range contextSnippets {
			b.WriteString(redact.Redact(e.cfg, snippet))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (e *Engine) generateSummary(ctx context.Context, prompt string, fileCount int, issues []scanner.Issue) (string, error) {
	if e.isNull {
		if _, err := e.provider.Generate(ctx, prompt); err != nil {
			return "", &LlmProviderError{Cause: err}
		}
		return nullFallbackSummary(fileCount, issues), nil
	}

	resp, err := e.provider.Generate(ctx, prompt)
	if err != nil {
		var budgetErr *llmadapter.TokenBudgetExceededError
		if errors.As(err, &budgetErr) {
			return "", err
		}
		return "", &LlmProviderError{Cause: err}
	}
	return resp.Content, nil
}

func nullFallbackSummary(fileCount int, issues []scanner.Issue) string {
	base := fmt.Sprintf("Reviewed %d file(s)", fileCount)
	if len(issues) == 0 {
		return base + " — no issues"
	}
	titles := make([]string, 0, len(issues))
	seen := map[string]bool{}
	for _, issue := range issues {
		if seen[issue.Title] {
			continue
		}
		seen[issue.Title] = true
		titles = append(titles, issue.Title)
	}
	return fmt.Sprintf("%s — found: %s", base, strings.Join(titles, ", "))
}
