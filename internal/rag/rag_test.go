package rag

import (
	"testing"

	"github.com/reviewlens/reviewlens/internal/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrieve_EmptyStoreFails(t *testing.T) {
	r := New(&index.Store{})
	_, err := r.Retrieve("anything")
	require.Error(t, err)
	var ragErr *Error
	require.ErrorAs(t, err, &ragErr)
}

func TestRetrieve_RanksBySimilarity(t *testing.T) {
	store := &index.Store{Documents: []index.Document{
		index.NewDocument("unrelated.go", "package unrelated\n\nfunc Foo() {}\n", 1),
		index.NewDocument("http_client.go", "package net\n\nfunc NewClient() *http.Client { return &http.Client{Timeout: time.Second} }\n", 2),
	}}
	r := New(store)

	result, err := r.Retrieve("http.Client Timeout configuration")
	require.NoError(t, err)
	assert.Contains(t, result, "1. http_client.go:")
}

func TestRetrieve_CapsAtTopFive(t *testing.T) {
	var docs []index.Document
	for i := 0; i < 10; i++ {
		docs = append(docs, index.NewDocument("file.go", "package p func F() {}", int64(i)))
	}
	r := New(&index.Store{Documents: docs})

	result, err := r.Retrieve("func F")
	require.NoError(t, err)
	assert.Equal(t, 5, countLines(result))
}

func countLines(s string) int {
	n := 1
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}
