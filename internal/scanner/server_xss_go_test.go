package scanner

import (
	"testing"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerXSSGoScanner_TextTemplateImport(t *testing.T) {
	s := &serverXSSGoScanner{}
	issues, err := s.Scan("file.go", "import \"text/template\"\n", &config.Config{})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Title, "text/template")
}

func TestServerXSSGoScanner_TaintedWriteFlagged(t *testing.T) {
	s := &serverXSSGoScanner{}
	content := "name := r.FormValue(\"name\")\n" +
		"fmt.Fprintf(w, \"Hello %s\", name)\n"

	issues, err := s.Scan("handler.go", content, &config.Config{})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].LineNumber)
}

func TestServerXSSGoScanner_EscapedWriteNotFlagged(t *testing.T) {
	s := &serverXSSGoScanner{}
	content := "name := r.FormValue(\"name\")\n" +
		"name = html.EscapeString(name)\n" +
		"fmt.Fprintf(w, \"Hello %s\", name)\n"

	issues, err := s.Scan("handler.go", content, &config.Config{})
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestServerXSSGoScanner_UntaintedWriteNotFlagged(t *testing.T) {
	s := &serverXSSGoScanner{}
	content := "greeting := \"hello\"\n" +
		"fmt.Fprintf(w, \"%s\", greeting)\n"

	issues, err := s.Scan("handler.go", content, &config.Config{})
	require.NoError(t, err)
	assert.Empty(t, issues)
}
