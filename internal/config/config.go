package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shouni/go-article-exact/pkg/render"
)

// EnvPrefix は環境変数の接頭辞です (例: ARTICLE_EXACT_RENDER_SETTLE_DELAY)。
const EnvPrefix = "ARTICLE_EXACT"

// Config はアプリケーション全体の設定です。
type Config struct {
	Render RenderConfig `yaml:"render" mapstructure:"render"`
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Feed   FeedConfig   `yaml:"feed" mapstructure:"feed"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// RenderConfig はヘッドレスブラウザの設定です。
type RenderConfig struct {
	SettleDelay       time.Duration `yaml:"settle_delay" mapstructure:"settle_delay"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout" mapstructure:"navigation_timeout"`
	Headless          bool          `yaml:"headless" mapstructure:"headless"`
	ExecPath          string        `yaml:"exec_path" mapstructure:"exec_path"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// InputConfig はURLリストの入力元です。
type InputConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// OutputConfig はCSVの出力先です。
type OutputConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// FeedConfig はフィード取得用HTTPクライアントの設定です。
type FeedConfig struct {
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxRetries uint64        `yaml:"max_retries" mapstructure:"max_retries"`
}

// LogConfig はロガーの設定です。
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Chrome は RenderConfig を render.ChromeConfig に変換します。
func (c RenderConfig) Chrome() render.ChromeConfig {
	return render.ChromeConfig{
		Headless:          c.Headless,
		ExecPath:          c.ExecPath,
		UserAgent:         c.UserAgent,
		NavigationTimeout: c.NavigationTimeout,
	}
}

// Load は設定ファイル・環境変数・デフォルト値から設定を読み込みます。
// configFile が空の場合はカレントディレクトリの config.yaml を任意で読みます。
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("render.settle_delay", render.DefaultSettleDelay)
	v.SetDefault("render.navigation_timeout", render.DefaultNavigationTimeout)
	v.SetDefault("render.headless", true)
	v.SetDefault("render.exec_path", "")
	v.SetDefault("render.user_agent", render.UserAgent)
	v.SetDefault("input.path", "targets.txt")
	v.SetDefault("output.path", "output.csv")
	v.SetDefault("feed.timeout", 10*time.Second)
	v.SetDefault("feed.max_retries", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional unless explicitly given)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// NewLogger は LogConfig から zap ロガーを構築します。
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "config: build logger")
	}
	return logger, nil
}

// InitLogger はグローバルな zap ロガーを初期化します。
func InitLogger(cfg LogConfig) error {
	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
