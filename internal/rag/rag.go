// Package rag implements the retrieval-augmented-generation context
// retriever: embed a query, return the top-K most similar indexed
// documents formatted for prompt inclusion.
package rag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reviewlens/reviewlens/internal/index"
)

const topK = 5

// Error reports a retrieval failure: the retriever has no store or the store
// holds no documents.
type Error struct {
	Message string
}

func (e *Error) Error() string { return "rag: " + e.Message }

// Retriever owns a vector store and answers similarity queries against it.
type Retriever struct {
	store *index.Store
}

// New wraps store in a Retriever.
func New(store *index.Store) *Retriever {
	return &Retriever{store: store}
}

type scoredDoc struct {
	doc   index.Document
	score float64
	order int
}

// Retrieve embeds query with the same embedding used to build the index,
// ranks documents by cosine similarity (ties broken by insertion order),
// and returns the top-K formatted as "{i}. {filename}: {content}" joined by
// newlines. Fails when the store is empty.
func (r *Retriever) Retrieve(query string) (string, error) {
	if r.store == nil || len(r.store.Documents) == 0 {
		return "", &Error{Message: "vector store is empty"}
	}

	queryVec := index.Embed(query)

	scored := make([]scoredDoc, len(r.store.Documents))
	for i, doc := range r.store.Documents {
		scored[i] = scoredDoc{doc: doc, score: index.CosineSimilarity(queryVec, doc.Embedding), order: i}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].order < scored[j].order
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	var lines []string
	for i, s := range scored {
		lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, s.doc.Filename, s.doc.Content))
	}

	return strings.Join(lines, "\n"), nil
}
