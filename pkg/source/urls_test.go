package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "trim_and_keep_order",
			input:    "  https://www.bbc.com/a  \nhttps://teamster.org/b\r\n\thttps://aflcio.org/c\n",
			expected: []string{"https://www.bbc.com/a", "https://teamster.org/b", "https://aflcio.org/c"},
		},
		{
			name:     "duplicates_kept",
			input:    "https://x/a\nhttps://x/a\n",
			expected: []string{"https://x/a", "https://x/a"},
		},
		{
			name:     "blank_lines_skipped",
			input:    "\n   \nhttps://x/a\n\n",
			expected: []string{"https://x/a"},
		},
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urls, err := ReadLines(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, urls)
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Run("existing_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "targets.txt")
		require.NoError(t, os.WriteFile(path, []byte("https://x/a\nhttps://x/b\n"), 0o644))

		urls, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://x/a", "https://x/b"}, urls)
	})

	t.Run("missing_file_is_fatal", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope.txt")
	})
}
