package llmadapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeNarrative(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text passes through", "Reviewed 2 files, no issues.", "Reviewed 2 files, no issues."},
		{"fenced with language tag", "```markdown\nReviewed 2 files.\n```", "Reviewed 2 files."},
		{"fenced with no language tag", "```\nReviewed 2 files.\n```", "Reviewed 2 files."},
		{"unterminated fence passes through", "```\nstill open", "```\nstill open"},
		{"leading whitespace before fence", "  ```\nReviewed 1 file.\n```  ", "Reviewed 1 file."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeNarrative(tt.in))
		})
	}
}
