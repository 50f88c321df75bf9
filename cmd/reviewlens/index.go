package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/engine"
	"github.com/reviewlens/reviewlens/internal/index"
)

var (
	indexPath  string
	indexForce bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or incrementally refresh the repository's vector index",
	RunE:  runIndex,
}

func init() { //nolint:gochecknoinits
	indexCmd.Flags().StringVar(&indexPath, "path", ".", "path to the repository to index")
	indexCmd.Flags().BoolVar(&indexForce, "force", false, "force a full re-index, ignoring any existing cache")
}

func runIndex(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return classifyEngineError(&engine.ConfigError{Message: "load configuration", Cause: err})
	}

	root, err := filepath.Abs(indexPath)
	if err != nil {
		return classifyEngineError(&engine.IoError{Message: "resolve repository path", Cause: err})
	}

	filter := index.NewPathFilter(cfg.Paths.Allow, cfg.Paths.Deny)
	indexFile := cfg.IndexPath()
	if !filepath.IsAbs(indexFile) {
		indexFile = filepath.Join(root, indexFile)
	}

	store, err := index.Refresh(root, indexFile, filter, indexForce)
	if err != nil {
		return classifyEngineError(&engine.IoError{Message: "refresh index", Cause: err})
	}

	if err := store.Save(indexFile); err != nil {
		return classifyEngineError(&engine.IoError{Message: "persist index", Cause: err})
	}

	slog.Info("index written", "path", indexFile, "documents", len(store.Documents))
	fmt.Printf("Indexed %d document(s) to %s\n", len(store.Documents), indexFile)
	return nil
}
