package index

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

var vcsDirs = map[string]bool{".git": true, ".hg": true, ".svn": true, ".bzr": true}

// PathFilter decides whether a repo-relative path is eligible for indexing:
// at least one allow glob must match (any path passes when there are no
// allow globs), and no deny glob may match.
type PathFilter struct {
	allow []glob.Glob
	deny  []glob.Glob
}

// NewPathFilter compiles allow/deny glob patterns. Invalid patterns are
// skipped rather than treated as fatal, matching the redactor's tolerance
// for malformed user-supplied patterns.
func NewPathFilter(allow, deny []string) *PathFilter {
	return &PathFilter{allow: compileGlobs(allow), deny: compileGlobs(deny)}
}

func compileGlobs(patterns []string) []glob.Glob {
	var compiled []glob.Glob
	for _, p := range patterns {
		// gobwas/glob matches the "/" after "**" literally, so "**/" alone
		// would need at least one directory. Also compile each variant with
		// some whole-segment "**/" dropped so it matches zero directories too.
		parts := strings.Split(p, "**/")
		variants := []string{parts[0]}
		for _, part := range parts[1:] {
			next := make([]string, 0, 2*len(variants))
			for _, v := range variants {
				next = append(next, v+"**/"+part)
				if v == "" || strings.HasSuffix(v, "/") {
					next = append(next, v+part)
				}
			}
			variants = next
		}
		for _, variant := range variants {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				continue
			}
			compiled = append(compiled, g)
		}
	}
	return compiled
}

// Match reports whether path is retained: allow matches (vacuously true
// when no allow patterns compiled) and deny does not match. Deny has strict
// precedence over allow.
func (f *PathFilter) Match(path string) bool {
	for _, d := range f.deny {
		if d.Match(path) {
			return false
		}
	}
	if len(f.allow) == 0 {
		return true
	}
	for _, a := range f.allow {
		if a.Match(path) {
			return true
		}
	}
	return false
}

// Build walks root recursively, excluding VCS directories, indexing every
// file the filter retains. It always performs a full (non-incremental)
// build; Refresh should be preferred for repeat runs.
func Build(root string, filter *PathFilter) (*Store, error) {
	return refresh(root, filter, &Store{}, true)
}

// Refresh loads the store at indexPath (if present and force is false) and
// incrementally re-ingests only files whose on-disk modified timestamp has
// changed, dropping documents for files no longer present.
func Refresh(root, indexPath string, filter *PathFilter, force bool) (*Store, error) {
	existing := &Store{}
	if !force {
		loaded, err := Load(indexPath)
		if err != nil {
			return nil, err
		}
		existing = loaded
	}
	return refresh(root, filter, existing, force)
}

func refresh(root string, filter *PathFilter, existing *Store, force bool) (*Store, error) {
	byFilename := make(map[string]Document, len(existing.Documents))
	for _, d := range existing.Documents {
		byFilename[d.Filename] = d
	}

	var candidates []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if vcsDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if filter.Match(rel) {
			candidates = append(candidates, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk repository root: %w", err)
	}
	sort.Strings(candidates)

	var documents []Document

	for _, rel := range candidates {
		full := filepath.Join(root, filepath.FromSlash(rel))

		info, statErr := os.Stat(full)
		if statErr != nil {
			continue
		}
		modifiedNs := info.ModTime().UnixNano()

		if !force {
			if existingDoc, ok := byFilename[rel]; ok && existingDoc.ModifiedNs == modifiedNs {
				documents = append(documents, existingDoc)
				continue
			}
		}

		data, readErr := os.ReadFile(full)
		if readErr != nil {
			continue
		}
		if !isLikelyText(data) {
			continue
		}

		documents = append(documents, NewDocument(rel, string(data), modifiedNs))
	}

	return &Store{Documents: documents}, nil
}

func isLikelyText(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
	}
	return !strings.ContainsRune(string(sample), 0)
}
