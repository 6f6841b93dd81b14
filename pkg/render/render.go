package render

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	// DefaultSettleDelay は、ページ読み込み後にスクリプトがDOMを埋めるまで待つ固定時間です。
	DefaultSettleDelay = 5 * time.Second
	// DefaultNavigationTimeout は、1回のキャプチャ全体の上限時間です (0 で無制限)。
	DefaultNavigationTimeout = 60 * time.Second

	// サイトからのブロックを避けるためのUser-Agent
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// ----------------------------------------------------------------------
// 依存性の定義
// ----------------------------------------------------------------------

// Browser は、独立したレンダリングセッションを生成する機能のインターフェースです。
type Browser interface {
	NewSession(ctx context.Context) (Session, error)
}

// Session は1回分のレンダリングセッションです。
// OSのプロセス資源を保持するため、Close は必ず呼ばれなければなりません。
type Session interface {
	// Capture は url へ遷移し、settle だけ待ってから最終的なHTMLを返します。
	Capture(ctx context.Context, url string, settle time.Duration) (string, error)
	Close() error
}

// Fetcher は、URLをレンダリングして最終HTMLを取得する PageFetcher です。
// 1URLにつき1回だけ試行し、リトライは行いません。
type Fetcher struct {
	browser     Browser
	settleDelay time.Duration
	logger      *zap.Logger
}

// Option は Fetcher の設定を行うための関数型です。
type Option func(*Fetcher)

// WithSettleDelay は固定の待機時間を設定します。
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.settleDelay = d
		}
	}
}

// WithLogger はロガーを設定します。
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFetcher は新しい Fetcher を初期化します。
func NewFetcher(browser Browser, opts ...Option) (*Fetcher, error) {
	if browser == nil {
		return nil, eris.New("render.NewFetcher: Browser cannot be nil")
	}
	f := &Fetcher{
		browser:     browser,
		settleDelay: DefaultSettleDelay,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// SettleDelay は設定済みの待機時間を返します。
func (f *Fetcher) SettleDelay() time.Duration {
	return f.settleDelay
}

// FetchHTML は url をレンダリングしたHTMLを返します。
// セッションは成功・遷移エラー・内部パニックのいずれの経路でも必ず破棄されます。
func (f *Fetcher) FetchHTML(ctx context.Context, url string) (html string, err error) {
	var session Session

	// 起動中のパニックも含めて回収するため、セッション生成より前に登録する
	defer func() {
		if r := recover(); r != nil {
			html = ""
			err = eris.Errorf("レンダリング中に内部エラーが発生しました (URL: %s): %v", url, r)
		}
		if session == nil {
			return
		}
		// 破棄エラーは取得結果に影響させず、警告に留める
		if closeErr := session.Close(); closeErr != nil {
			f.logger.Warn("レンダリングセッションの破棄に失敗しました", zap.String("url", url), zap.Error(closeErr))
		}
	}()

	session, err = f.browser.NewSession(ctx)
	if err != nil {
		session = nil
		return "", eris.Wrapf(err, "レンダリングセッションの起動に失敗しました (URL: %s)", url)
	}

	html, err = session.Capture(ctx, url, f.settleDelay)
	if err != nil {
		return "", eris.Wrapf(err, "ページの取得に失敗しました (URL: %s)", url)
	}
	if html == "" {
		return "", eris.Errorf("空のドキュメントが返されました (URL: %s)", url)
	}
	return html, nil
}
