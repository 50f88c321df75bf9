package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/engine"
	"github.com/reviewlens/reviewlens/internal/report"
)

var (
	checkFormat   string
	checkBaseRef  string
	checkCI       bool
	checkPath     string
	checkOutput   string
	checkFailOn   string
	checkNoWrite  bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Review the working tree's uncommitted changes against a base ref",
	Long: `check runs "git diff <base>" against the repository at --path, feeds
the result through the review engine, writes a deterministic report, and
exits non-zero when findings meet or exceed the configured severity
threshold.`,
	RunE: runCheck,
}

func init() { //nolint:gochecknoinits
	checkCmd.Flags().StringVar(&checkFormat, "format", "md", `report format: "md" or "json"`)
	checkCmd.Flags().StringVar(&checkBaseRef, "diff", "HEAD", "base ref to diff against")
	checkCmd.Flags().BoolVar(&checkCI, "ci", false, "run in CI mode (forces generation temperature to 0)")
	checkCmd.Flags().StringVar(&checkPath, "path", ".", "path to the repository to check")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "", "path to write the report to (default: review_report.<ext>)")
	checkCmd.Flags().StringVar(&checkFailOn, "fail-on", "", "minimum severity that triggers a non-zero exit (default: the config's fail-on)")
	checkCmd.Flags().BoolVar(&checkNoWrite, "no-write", false, "print the report to stdout instead of writing a file")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	titleColor := color.New(color.FgCyan, color.Bold)
	dimColor := color.New(color.FgHiBlack)

	cfg, err := config.Load(configPath)
	if err != nil {
		return classifyEngineError(&engine.ConfigError{Message: "load configuration", Cause: err})
	}
	cfg.CI = checkCI

	logger := newLogger(cfg)

	if verbose {
		titleColor.Println("🚀 reviewlens check")
		dimColor.Printf("   Path: %s\n   Base: %s\n\n", checkPath, checkBaseRef)
	}

	diffText, err := gitDiff(checkPath, checkBaseRef)
	if err != nil {
		return classifyEngineError(&engine.IoError{Message: "run git diff", Cause: err})
	}

	absPath, err := filepath.Abs(checkPath)
	if err != nil {
		return classifyEngineError(&engine.IoError{Message: "resolve repository path", Cause: err})
	}

	eng, err := engine.New(cfg, absPath, logger)
	if err != nil {
		return classifyEngineError(err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	result, err := eng.Run(ctx, diffText)
	if err != nil {
		return classifyEngineError(err)
	}
	if verbose {
		dimColor.Printf("   Reviewed in %s\n\n", time.Since(start).Round(time.Millisecond))
	}

	fmt.Println("Summary:", result.Summary)
	if len(result.Hotspots) == 0 {
		fmt.Println("No hotspots identified.")
	} else {
		fmt.Println("Top hotspots:")
		for _, spot := range result.Hotspots {
			fmt.Println("-", spot)
		}
	}

	rendered, err := renderReport(result, checkFormat)
	if err != nil {
		return classifyEngineError(&engine.ReportError{Cause: err})
	}

	if checkNoWrite {
		fmt.Println()
		fmt.Println(rendered)
	} else {
		outputPath := checkOutput
		if outputPath == "" {
			outputPath = defaultReportPath(checkFormat)
		}
		if err := os.WriteFile(outputPath, []byte(rendered), 0o644); err != nil {
			return classifyEngineError(&engine.IoError{Message: "write report", Cause: err})
		}
		slog.Info("review complete", "report", outputPath)
	}

	threshold, err := resolveFailOn(cfg)
	if err != nil {
		return classifyEngineError(&engine.ConfigError{Message: "resolve fail-on", Cause: err})
	}

	severities := make([]config.Severity, len(result.Issues))
	for i, issue := range result.Issues {
		severities[i] = issue.Severity
	}
	if thresholdExceeded(severities, threshold) {
		return &cliError{err: fmt.Errorf("issues at or above %s severity found", threshold), code: 1}
	}
	return nil
}

func resolveFailOn(cfg *config.Config) (config.Severity, error) {
	if checkFailOn != "" {
		return config.ParseSeverity(checkFailOn)
	}
	return cfg.FailOnSeverity()
}

func defaultReportPath(format string) string {
	if strings.EqualFold(format, "json") {
		return "review_report.json"
	}
	return "review_report.md"
}

func renderReport(r *engine.ReviewReport, format string) (string, error) {
	rpt := &report.Report{
		Summary:        r.Summary,
		Issues:         r.Issues,
		CodeQuality:    r.CodeQuality,
		Hotspots:       r.Hotspots,
		MermaidDiagram: r.MermaidDiagram,
		Config:         r.Config,
	}
	if strings.EqualFold(format, "json") {
		data, err := report.JSON(rpt)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return report.Markdown(rpt)
}

// gitDiff shells out to "git -C path diff base" and returns its stdout.
func gitDiff(path, base string) (string, error) {
	cmd := exec.Command("git", "-C", path, "diff", base)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git diff failed: %w (%s)", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git diff failed: %w", err)
	}
	return string(out), nil
}
