package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shouni/go-article-exact/pkg/render"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// config.yaml が見つからないディレクトリで読み込む
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, render.DefaultSettleDelay, cfg.Render.SettleDelay)
	assert.Equal(t, render.DefaultNavigationTimeout, cfg.Render.NavigationTimeout)
	assert.True(t, cfg.Render.Headless)
	assert.Equal(t, render.UserAgent, cfg.Render.UserAgent)
	assert.Empty(t, cfg.Render.ExecPath)
	assert.Equal(t, "targets.txt", cfg.Input.Path)
	assert.Equal(t, "output.csv", cfg.Output.Path)
	assert.Equal(t, 10*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, uint64(2), cfg.Feed.MaxRetries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
render:
  settle_delay: 2s
  navigation_timeout: 0s
  headless: false
  exec_path: /usr/bin/chromium
output:
  path: articles.csv
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Render.SettleDelay)
	assert.Equal(t, time.Duration(0), cfg.Render.NavigationTimeout)
	assert.False(t, cfg.Render.Headless)
	assert.Equal(t, "/usr/bin/chromium", cfg.Render.ExecPath)
	assert.Equal(t, "articles.csv", cfg.Output.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	// 未設定の値にはデフォルトが適用される
	assert.Equal(t, "targets.txt", cfg.Input.Path)

	chrome := cfg.Render.Chrome()
	assert.False(t, chrome.Headless)
	assert.Equal(t, "/usr/bin/chromium", chrome.ExecPath)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "scrape.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input:\n  path: urls.txt\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "urls.txt", cfg.Input.Path)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "明示的に指定した設定ファイルがない場合はエラー")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("render:\n  settle_delay: 2s\n"), 0o644))
	t.Setenv("ARTICLE_EXACT_RENDER_SETTLE_DELAY", "7s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.Render.SettleDelay)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	_, err = NewLogger(LogConfig{Level: "loud", Format: "console"})
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))
}
