package scanner

import (
	"testing"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLInjectionGoScanner_DetectsSprintf(t *testing.T) {
	s := &sqlInjectionGoScanner{}
	content := "rows, err := db.Query(fmt.Sprintf(\"SELECT * FROM users WHERE id = %s\", id))\n"

	issues, err := s.Scan("file.go", content, &config.Config{})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, config.SeverityCritical, issues[0].Severity)
}

func TestSQLInjectionGoScanner_DetectsConcatenation(t *testing.T) {
	s := &sqlInjectionGoScanner{}
	content := "query := \"SELECT * FROM users WHERE name = '\" + name + \"'\"\n"

	issues, err := s.Scan("file.go", content, &config.Config{})
	require.NoError(t, err)
	require.Len(t, issues, 1)
}

func TestSQLInjectionGoScanner_ParameterizedQueryIsFine(t *testing.T) {
	s := &sqlInjectionGoScanner{}
	content := "rows, err := db.Query(\"SELECT * FROM users WHERE id = $1\", id)\n"

	issues, err := s.Scan("file.go", content, &config.Config{})
	require.NoError(t, err)
	assert.Empty(t, issues)
}
