package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSequenceDiagram_DetectsCallChain(t *testing.T) {
	paths := []string{"a.go", "b.go", "c.go"}
	contents := map[string]string{
		"a.go": "package main\n\nfunc A() { b.Run() }\n",
		"b.go": "package main\n\nfunc Run() { c.Handle() }\n",
		"c.go": "package main\n\nfunc Handle() {}\n",
	}

	diagram := buildSequenceDiagram(paths, contents)
	require := assert.New(t)
	require.Contains(diagram, "sequenceDiagram")
	require.Contains(diagram, "a.go->>b.go: b.Run()")
	require.Contains(diagram, "b.go->>c.go: c.Handle()")
}

func TestBuildSequenceDiagram_EmptyWhenNoInteractions(t *testing.T) {
	paths := []string{"a.go", "b.go"}
	contents := map[string]string{
		"a.go": "package main\n\nfunc A() {}\n",
		"b.go": "package main\n\nfunc B() {}\n",
	}

	assert.Empty(t, buildSequenceDiagram(paths, contents))
}
