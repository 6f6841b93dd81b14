package pipeline

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/shouni/go-article-exact/pkg/extract"
	"github.com/shouni/go-article-exact/pkg/sink"
	"github.com/shouni/go-article-exact/pkg/types"
)

// ----------------------------------------------------------------------
// 依存性の定義
// ----------------------------------------------------------------------

// PageFetcher は、URLをレンダリングして最終HTMLを返します。
type PageFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// Router は、URLに対応する抽出器を選択します。
type Router interface {
	Route(url string) (extract.SiteExtractor, bool)
}

// RecordSink は、Record を表形式で書き出します。
type RecordSink interface {
	WriteHeader(columns []string) error
	Append(rec *types.Record) error
}

// Summary は1回の実行結果です。
type Summary struct {
	Total   int
	Written int
	Failed  int
	Results []types.URLResult // 入力順
}

// Pipeline は、取得 → ルーティング → 抽出 → 書き出し を逐次実行します。
// URLごとのエラーはそのURLの処理内に閉じ込められ、実行全体は止まりません。
type Pipeline struct {
	fetcher PageFetcher
	router  Router
	sink    RecordSink
	logger  *zap.Logger
}

// New は Pipeline を初期化します。logger が nil の場合は何も出力しません。
func New(fetcher PageFetcher, router Router, sink RecordSink, logger *zap.Logger) (*Pipeline, error) {
	if fetcher == nil || router == nil || sink == nil {
		return nil, eris.New("pipeline.New: fetcher, router and sink are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{fetcher: fetcher, router: router, sink: sink, logger: logger}, nil
}

// Run はヘッダー行を1度だけ書き出し、urls を入力順に処理します。
// 返されるエラーはシンクへの書き込み失敗とコンテキストのキャンセルのみです。
func (p *Pipeline) Run(ctx context.Context, urls []string) (Summary, error) {
	logger := p.logger.With(zap.String("run_id", uuid.NewString()))
	summary := Summary{Results: make([]types.URLResult, 0, len(urls))}

	if err := p.sink.WriteHeader(sink.Columns); err != nil {
		return summary, eris.Wrap(err, "ヘッダー行の書き込みに失敗しました")
	}

	logger.Info("パイプライン開始", zap.Int("urls", len(urls)))
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			logger.Warn("パイプラインを中断しました", zap.Int("processed", i), zap.Error(err))
			return summary, eris.Wrap(err, "パイプラインがキャンセルされました")
		}

		res := p.processURL(ctx, logger.With(zap.String("url", url), zap.Int("index", i+1)), url)
		summary.Total++
		summary.Results = append(summary.Results, res)
		if res.OK() {
			summary.Written++
			continue
		}
		summary.Failed++
		if res.Stage == types.StageSink {
			return summary, res.Error
		}
	}

	logger.Info("パイプライン完了",
		zap.Int("total", summary.Total),
		zap.Int("written", summary.Written),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// processURL は1つのURLを処理します。失敗はログに記録して結果として返します。
func (p *Pipeline) processURL(ctx context.Context, logger *zap.Logger, url string) types.URLResult {
	logger.Info("処理中")

	// 1. 取得
	html, err := p.fetcher.FetchHTML(ctx, url)
	if err != nil {
		logger.Warn("ページの取得に失敗したためスキップします", zap.Error(err))
		return types.URLResult{URL: url, Stage: types.StageFetch, Error: err}
	}

	// 2. ルーティング
	extractor, ok := p.router.Route(url)
	if !ok {
		logger.Warn("未対応のドメインのためスキップします")
		return types.URLResult{URL: url, Stage: types.StageRoute, Error: eris.Errorf("未対応のドメインです: %s", url)}
	}

	// 3. 抽出
	rec, err := p.extract(extractor, html, url)
	if err != nil {
		fields := []zap.Field{zap.String("extractor", extractor.Name()), zap.Error(err)}
		var sf *extract.StructuralFailure
		if errors.As(err, &sf) {
			fields = append(fields, zap.String("level", sf.Level), zap.Int("depth", sf.Depth))
		}
		logger.Warn("記事の抽出に失敗したためスキップします", fields...)
		return types.URLResult{URL: url, Stage: types.StageExtract, Error: err}
	}

	// 4. 書き出し
	if err := p.sink.Append(rec); err != nil {
		logger.Error("レコードの書き込みに失敗しました", zap.Error(err))
		return types.URLResult{URL: url, Stage: types.StageSink, Error: eris.Wrapf(err, "レコードの書き込みに失敗しました (URL: %s)", url)}
	}

	logger.Debug("レコードを書き込みました", zap.String("title", rec.Title), zap.String("author", rec.Author))
	return types.URLResult{URL: url, Stage: types.StageOK}
}

// extract はHTMLを解析して抽出器を適用します。抽出器内のパニックもエラーとして扱います。
func (p *Pipeline) extract(extractor extract.SiteExtractor, html, url string) (rec *types.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = eris.Errorf("抽出器 %s で内部エラーが発生しました: %v", extractor.Name(), r)
		}
	}()

	doc, err := extract.ParseHTML(html)
	if err != nil {
		return nil, err
	}
	return extractor.Extract(doc, url)
}
