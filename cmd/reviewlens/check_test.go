package main

import (
	"testing"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/engine"
	"github.com/reviewlens/reviewlens/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultReportPath(t *testing.T) {
	assert.Equal(t, "review_report.json", defaultReportPath("json"))
	assert.Equal(t, "review_report.json", defaultReportPath("JSON"))
	assert.Equal(t, "review_report.md", defaultReportPath("md"))
	assert.Equal(t, "review_report.md", defaultReportPath(""))
}

func TestRenderReport_MarkdownAndJSON(t *testing.T) {
	cfg := &config.Config{Rules: map[string]config.RuleConfig{}}
	r := &engine.ReviewReport{
		Summary: "Reviewed 1 file(s) — no issues",
		Issues: []scanner.Issue{
			{Title: "t", Description: "d", FilePath: "a.go", LineNumber: 1, Severity: config.SeverityHigh},
		},
		Config: cfg,
	}

	md, err := renderReport(r, "md")
	require.NoError(t, err)
	assert.Contains(t, md, "# Code Review Report")

	js, err := renderReport(r, "json")
	require.NoError(t, err)
	assert.Contains(t, js, `"summary"`)
}

func TestResolveFailOn_FlagOverridesConfig(t *testing.T) {
	cfg := &config.Config{FailOn: "low"}
	oldFlag := checkFailOn
	checkFailOn = "critical"
	defer func() { checkFailOn = oldFlag }()

	sev, err := resolveFailOn(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.SeverityCritical, sev)
}

func TestResolveFailOn_FallsBackToConfig(t *testing.T) {
	cfg := &config.Config{FailOn: "high"}
	oldFlag := checkFailOn
	checkFailOn = ""
	defer func() { checkFailOn = oldFlag }()

	sev, err := resolveFailOn(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.SeverityHigh, sev)
}
