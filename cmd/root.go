package cmd

import (
	"time"

	clibase "github.com/shouni/go-cli-base"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shouni/go-article-exact/internal/config"
	"github.com/shouni/go-article-exact/pkg/render"
)

// --- グローバル定数 ---

const (
	appName = "article-exact"
)

// --- グローバル変数とフラグ構造体 ---

// AppFlags はこのアプリケーション固有の永続フラグを保持
type AppFlags struct {
	ConfigFile  string        // --config-file 設定ファイル (YAML)
	Settle      time.Duration // --settle ページ読み込み後の固定待機時間
	NavTimeout  time.Duration // --nav-timeout 1ページあたりの取得上限時間
	ExecPath    string        // --chrome Chrome/Chromium の実行ファイル
	ShowBrowser bool          // --show-browser ヘッドレスを無効化
}

var Flags AppFlags

var (
	appConfig         *config.Config
	globalFetcher     *render.Fetcher
	globalFeedFetcher *httpkit.Client
)

// --- 初期化とロジック (clibaseへのコールバックとして利用) ---

// addAppPersistentFlags は、アプリケーション固有の永続フラグをルートコマンドに追加します。
func addAppPersistentFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVar(&Flags.ConfigFile, "config-file", "", "設定ファイル (YAML) のパス")
	rootCmd.PersistentFlags().DurationVar(&Flags.Settle, "settle", render.DefaultSettleDelay, "ページ読み込み後にDOMの描画を待つ固定時間")
	rootCmd.PersistentFlags().DurationVar(&Flags.NavTimeout, "nav-timeout", render.DefaultNavigationTimeout, "1ページの取得上限時間 (0 で無制限)")
	rootCmd.PersistentFlags().StringVar(&Flags.ExecPath, "chrome", "", "Chrome/Chromium の実行ファイルのパス")
	rootCmd.PersistentFlags().BoolVar(&Flags.ShowBrowser, "show-browser", false, "ヘッドレスモードを無効にしてブラウザを表示する")
}

// initAppPreRunE は、clibase共通処理の後に実行される、アプリケーション固有のPersistentPreRunEです。
// 設定の読み込み、ロガーと共有フェッチャーの初期化を行います。
func initAppPreRunE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(Flags.ConfigFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	if clibase.Flags.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return err
	}
	appConfig = cfg

	zap.L().Debug("設定を読み込みました",
		zap.Duration("settle_delay", cfg.Render.SettleDelay),
		zap.Duration("navigation_timeout", cfg.Render.NavigationTimeout),
		zap.Bool("headless", cfg.Render.Headless),
	)

	globalFetcher, err = render.NewFetcher(
		render.NewChromeBrowser(cfg.Render.Chrome()),
		render.WithSettleDelay(cfg.Render.SettleDelay),
		render.WithLogger(zap.L().Named("render")),
	)
	if err != nil {
		return err
	}

	globalFeedFetcher = httpkit.New(cfg.Feed.Timeout, httpkit.WithMaxRetries(cfg.Feed.MaxRetries))
	return nil
}

// applyFlagOverrides は、明示的に指定されたフラグで設定値を上書きします。
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("settle") {
		cfg.Render.SettleDelay = Flags.Settle
	}
	if flags.Changed("nav-timeout") {
		cfg.Render.NavigationTimeout = Flags.NavTimeout
	}
	if flags.Changed("chrome") {
		cfg.Render.ExecPath = Flags.ExecPath
	}
	if flags.Changed("show-browser") {
		cfg.Render.Headless = !Flags.ShowBrowser
	}
}

// --- エントリポイント ---

// Execute は clibase を使ってアプリケーションを実行します。
func Execute() {
	defer func() { _ = zap.L().Sync() }()

	clibase.Execute(
		appName,
		addAppPersistentFlags,
		initAppPreRunE,
		runCmd,
		extractCmd,
		parseCmd,
		sitesCmd,
	)
}
