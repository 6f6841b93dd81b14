package sink

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-article-exact/pkg/types"
)

func TestCSVSink_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.WriteHeader(Columns))
	require.NoError(t, s.Append(&types.Record{Title: "T", Author: "A", Text: "B", URL: "https://x/1"}))
	require.NoError(t, s.Close())

	assert.Equal(t, "Title,Author,Text,URL\nT,A,B,https://x/1\n", buf.String())
}

func TestCSVSink_Escaping(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)
	rec := &types.Record{
		Title:  `He said "no", twice`,
		Author: "Smith, John",
		Text:   "line one\nline two",
		URL:    "https://x/2?a=1,2",
	}
	require.NoError(t, s.Append(rec))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{rec.Title, rec.Author, rec.Text, rec.URL}, rows[0])
}

func TestCSVSink_NilRecord(t *testing.T) {
	s := New(&bytes.Buffer{})
	assert.Error(t, s.Append(nil))
}

// 各行は Append の時点でファイルに反映されている
func TestCreate_RowAtATime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.csv")
	s, err := Create(path)
	require.NoError(t, err)

	require.NoError(t, s.WriteHeader(Columns))
	require.NoError(t, s.Append(&types.Record{Title: "T1", Author: "A1", Text: "X1", URL: "u1"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Title,Author,Text,URL\nT1,A1,X1,u1\n", string(data))

	require.NoError(t, s.Close())
}

func TestCreate_TruncatesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.csv")
	require.NoError(t, os.WriteFile(path, []byte("old,data\nmore,rows\n"), 0o644))

	s, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, s.WriteHeader(Columns))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Title,Author,Text,URL\n", string(data))
}

func TestCreate_BadPath(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "missing", "output.csv"))
	assert.Error(t, err)
}
