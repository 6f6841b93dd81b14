package render

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
)

// ChromeConfig はヘッドレスChromeの起動設定です。
type ChromeConfig struct {
	Headless          bool
	ExecPath          string        // 空の場合は chromedp の既定探索に任せる
	UserAgent         string        // 空の場合は UserAgent 定数
	NavigationTimeout time.Duration // 0 の場合は無制限
}

// DefaultChromeConfig は推奨されるデフォルト設定を返します。
func DefaultChromeConfig() ChromeConfig {
	return ChromeConfig{
		Headless:          true,
		UserAgent:         UserAgent,
		NavigationTimeout: DefaultNavigationTimeout,
	}
}

// ChromeBrowser は chromedp を使って Session を生成する Browser 実装です。
// セッションごとに独立したブラウザプロセスを起動します。
type ChromeBrowser struct {
	cfg ChromeConfig
}

// NewChromeBrowser は ChromeBrowser を初期化します。
func NewChromeBrowser(cfg ChromeConfig) *ChromeBrowser {
	if cfg.UserAgent == "" {
		cfg.UserAgent = UserAgent
	}
	if cfg.NavigationTimeout < 0 {
		cfg.NavigationTimeout = 0
	}
	return &ChromeBrowser{cfg: cfg}
}

// allocatorOptions は ExecAllocator に渡すオプションを組み立てます。
func (b *ChromeBrowser) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", b.cfg.Headless),
		chromedp.UserAgent(b.cfg.UserAgent),
	)
	if b.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.cfg.ExecPath))
	}
	return opts
}

// NewSession はブラウザプロセスを起動し、1タブ分のセッションを返します。
func (b *ChromeBrowser) NewSession(ctx context.Context) (Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)

	// 空のRunでブラウザを実際に起動し、起動失敗をここで検出する
	if err := chromedp.Run(taskCtx); err != nil {
		taskCancel()
		allocCancel()
		return nil, eris.Wrap(err, "ブラウザの起動に失敗しました")
	}

	return &chromeSession{
		ctx:         taskCtx,
		cancel:      taskCancel,
		allocCancel: allocCancel,
		timeout:     b.cfg.NavigationTimeout,
		run:         chromedp.Run,
	}, nil
}

type chromeSession struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	timeout     time.Duration
	run         func(ctx context.Context, actions ...chromedp.Action) error
}

// Capture は遷移、固定待機、DOM取得を順に行います。
// timeout は遷移とDOM取得それぞれに適用し、固定待機には適用しません。
func (s *chromeSession) Capture(ctx context.Context, url string, settle time.Duration) (string, error) {
	// 呼び出し元のキャンセルをセッションへ伝播させる
	stop := context.AfterFunc(ctx, s.cancel)
	defer stop()

	if err := s.bounded(chromedp.Navigate(url)); err != nil {
		return "", eris.Wrap(err, "chromedp: navigate")
	}
	if err := s.run(s.ctx, chromedp.Sleep(settle)); err != nil {
		return "", eris.Wrap(err, "chromedp: settle")
	}

	var html string
	if err := s.bounded(chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", eris.Wrap(err, "chromedp: outer html")
	}
	return html, nil
}

// bounded は timeout を上限として action を実行します。
func (s *chromeSession) bounded(action chromedp.Action) error {
	if s.timeout <= 0 {
		return s.run(s.ctx, action)
	}
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	return s.run(ctx, action)
}

// Close はブラウザを終了させ、アロケーターを解放します。
func (s *chromeSession) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancel()
	s.allocCancel()
	if err != nil && !eris.Is(err, context.Canceled) {
		return eris.Wrap(err, "ブラウザの終了に失敗しました")
	}
	return nil
}
