package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

const storeSchemaVersion = 1

// Store is an ordered, content-addressed collection of Documents. It is
// serializable as a single self-describing JSON blob.
type Store struct {
	Documents []Document
}

type storeBlob struct {
	SchemaVersion int        `json:"schema_version"`
	Documents     []Document `json:"documents"`
}

// NewDocument builds a Document, deriving its embedding and metadata from
// content and assigning it a stable ID derived from its filename alone.
func NewDocument(filename, content string, modifiedNs int64) Document {
	sigs, logLines, errLines := extractMetadata(content)
	return Document{
		ID:           uuid.NewSHA1(uuid.NameSpaceURL, []byte(filename)).String(),
		Filename:     filename,
		Content:      content,
		Embedding:    Embed(content),
		FunctionSigs: sigs,
		LogLines:     logLines,
		ErrorLines:   errLines,
		ModifiedNs:   modifiedNs,
	}
}

// Save serializes the store to path atomically: write to a temp file in the
// same directory, then rename over the destination.
func (s *Store) Save(path string) error {
	sorted := make([]Document, len(s.Documents))
	copy(sorted, s.Documents)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Filename < sorted[j].Filename })

	blob := storeBlob{SchemaVersion: storeSchemaVersion, Documents: sorted}
	data, err := json.MarshalIndent(blob, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".index-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp index file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp index file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp index file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename index into place: %w", err)
	}
	return nil
}

// Load reads a store previously written by Save. A missing or
// undeserializable file is treated as an absent (empty) store per the
// persisted-index schema-evolution policy, not an error.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{}, nil
		}
		return nil, fmt.Errorf("read index file: %w", err)
	}

	var blob storeBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return &Store{}, nil
	}

	return &Store{Documents: blob.Documents}, nil
}
