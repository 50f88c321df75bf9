package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func baseConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{Provider: "null"},
		Privacy: config.PrivacyConfig{Redaction: config.RedactionConfig{
			Enabled:  true,
			Patterns: []string{`(?i)api[_-]?key`},
		}},
		Paths: config.PathsConfig{Allow: []string{"**/*"}},
		Rules: map[string]config.RuleConfig{
			"secrets": {Enabled: true, Severity: "high"},
		},
		Report: config.ReportConfig{HotspotWeights: config.HotspotWeights{Severity: intPtr(3), Churn: intPtr(1)}},
		Index:  config.IndexConfig{Path: "nonexistent-index.json"},
	}
}

func TestRun_EmptyDiff(t *testing.T) {
	e, err := New(baseConfig(), t.TempDir(), nil)
	require.NoError(t, err)

	report, err := e.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, report.Summary, "Reviewed 0 files")
	assert.Empty(t, report.Issues)
}

func TestRun_SecretOnAddedLine(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte(`api_key = "ABCDEFGHIJKLMNOP"`+"\n"), 0o644))

	diff := "diff --git a/file.txt b/file.txt\n" +
		"--- a/file.txt\n" +
		"+++ b/file.txt\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-hello\n" +
		`+api_key = "ABCDEFGHIJKLMNOP"` + "\n"

	e, err := New(baseConfig(), root, nil)
	require.NoError(t, err)

	report, err := e.Run(context.Background(), diff)
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, 1, report.Issues[0].LineNumber)
	assert.Equal(t, config.SeverityHigh, report.Issues[0].Severity)
}

func TestRun_IgnoreDirectiveSuppresses(t *testing.T) {
	root := t.TempDir()
	content := `api_key = "ABCDEFGHIJKLMNOP" // reviewlens:ignore secrets approved-by-appsec` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte(content), 0o644))

	diff := "diff --git a/file.txt b/file.txt\n" +
		"--- a/file.txt\n" +
		"+++ b/file.txt\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-hello\n" +
		"+" + content

	e, err := New(baseConfig(), root, nil)
	require.NoError(t, err)

	report, err := e.Run(context.Background(), diff)
	require.NoError(t, err)
	assert.Empty(t, report.Issues)
}

func TestComputeHotspots_ScoringAndOrdering(t *testing.T) {
	stats := map[string]fileStat{
		"a.go": {path: "a.go", churn: 10, findings: 0},
		"b.go": {path: "b.go", churn: 0, findings: 2},
	}
	weights := config.HotspotWeights{Severity: intPtr(3), Churn: intPtr(1)}

	hotspots := computeHotspots(stats, weights)
	require.Len(t, hotspots, 2)
	assert.Equal(t, "a.go (risk 10)", hotspots[0])
	assert.Equal(t, "b.go (risk 6)", hotspots[1])
}

func TestComputeHotspots_CapsAtFiveAndExcludesZeroRisk(t *testing.T) {
	stats := map[string]fileStat{}
	for i := 0; i < 7; i++ {
		stats[string(rune('a'+i))+".go"] = fileStat{churn: i + 1}
	}
	stats["silent.go"] = fileStat{churn: 0, findings: 0}

	hotspots := computeHotspots(stats, config.HotspotWeights{Severity: intPtr(3), Churn: intPtr(1)})
	assert.LessOrEqual(t, len(hotspots), 5)
	for _, h := range hotspots {
		assert.NotContains(t, h, "silent.go")
	}
}

func TestComputeHotspots_ExplicitZeroWeightIsNotOverridden(t *testing.T) {
	stats := map[string]fileStat{
		"a.go": {path: "a.go", churn: 10, findings: 0},
		"b.go": {path: "b.go", churn: 0, findings: 2},
	}
	// An explicit severity-weight of 0 excludes finding-count from risk
	// entirely; b.go has findings but no churn, so it must drop out.
	weights := config.HotspotWeights{Severity: intPtr(0), Churn: intPtr(1)}

	hotspots := computeHotspots(stats, weights)
	require.Len(t, hotspots, 1)
	assert.Equal(t, "a.go (risk 10)", hotspots[0])
}

func TestNullFallbackSummary(t *testing.T) {
	assert.Contains(t, nullFallbackSummary(3, nil), "no issues")
	assert.Contains(t, nullFallbackSummary(3, nil), "Reviewed 3 file(s)")
}
