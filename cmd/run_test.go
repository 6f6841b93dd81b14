package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-article-exact/pkg/source"
)

// stubFetcher は常に同じHTMLを返す PageFetcher です。
type stubFetcher struct {
	calls int
}

func (f *stubFetcher) FetchHTML(_ context.Context, _ string) (string, error) {
	f.calls++
	return `<html><body><article><div data-component="headline-block">T</div></article></body></html>`, nil
}

// 空のURLリストでも出力は作り直され、ヘッダー行のみになる
func TestRunBatchPipeline_EmptyList(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "targets.txt")
	outPath := filepath.Join(dir, "output.csv")
	require.NoError(t, os.WriteFile(inPath, []byte("\n  \n"), 0o644))
	require.NoError(t, os.WriteFile(outPath, []byte("stale,row\n"), 0o644))

	urls, err := source.ReadFile(inPath)
	require.NoError(t, err)
	require.Empty(t, urls)

	fetcher := &stubFetcher{}
	summary, err := runBatchPipeline(context.Background(), fetcher, urls, outPath)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, fetcher.calls)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "Title,Author,Text,URL\n", string(data))
}

func TestRunBatchPipeline_WritesRows(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "output.csv")
	urls := []string{"https://www.bbc.com/news/a", "https://unknown.example/b"}

	fetcher := &stubFetcher{}
	summary, err := runBatchPipeline(context.Background(), fetcher, urls, outPath)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Written)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "Title,Author,Text,URL\nT,No Author Found,No Text Found,https://www.bbc.com/news/a\n", string(data))
}
