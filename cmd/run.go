package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shouni/go-article-exact/internal/pipeline"
	"github.com/shouni/go-article-exact/pkg/extract"
	"github.com/shouni/go-article-exact/pkg/feed"
	"github.com/shouni/go-article-exact/pkg/sink"
	"github.com/shouni/go-article-exact/pkg/source"
)

// コマンドラインフラグ変数を定義
var (
	inputPath  string // --input URLリストファイル
	outputPath string // --output 出力CSV
	runFeedURL string // --feed URLリストの代わりに使うフィード
)

// loadURLs は、フィードまたはURLリストファイルから処理対象URLを決定します。
func loadURLs(ctx context.Context) ([]string, error) {
	if runFeedURL != "" {
		parser, err := feed.NewParser(globalFeedFetcher)
		if err != nil {
			return nil, err
		}
		return parser.FetchLinks(ctx, runFeedURL)
	}
	return source.ReadFile(inputPath)
}

// runBatchPipeline は、URLリストを逐次処理してCSVへ書き出すメインロジックです。
// URLが0件でも出力ファイルは作り直され、ヘッダー行だけが書き込まれます。
func runBatchPipeline(ctx context.Context, fetcher pipeline.PageFetcher, urls []string, outPath string) (pipeline.Summary, error) {
	out, err := sink.Create(outPath)
	if err != nil {
		return pipeline.Summary{}, err
	}

	p, err := pipeline.New(fetcher, extract.DefaultRouter(), out, zap.L().Named("pipeline"))
	if err != nil {
		_ = out.Close()
		return pipeline.Summary{}, err
	}

	summary, runErr := p.Run(ctx, urls)
	if closeErr := out.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	return summary, runErr
}

// printSummary は実行結果を標準出力へ表示します。
func printSummary(summary pipeline.Summary, outPath string) {
	fmt.Println("--- 抽出結果 ---")
	for i, res := range summary.Results {
		if res.OK() {
			fmt.Printf("✅ [%d] %s\n", i+1, res.URL)
			continue
		}
		fmt.Printf("❌ [%d] %s (%s)\n", i+1, res.URL, res.Stage)
		fmt.Printf("     エラー: %v\n", res.Error)
	}
	fmt.Println("----------------")
	fmt.Printf("完了: 書き込み %d 件, 失敗 %d 件 (出力: %s)\n", summary.Written, summary.Failed, outPath)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "URLリストの記事を順番に抽出し、CSVへ書き出します",
	Long:  `URLリストファイル (1行1URL) またはRSS/Atomフィードの記事URLを入力順に1件ずつレンダリングし、対応サイトの抽出ルールでタイトル・著者・本文を取り出してCSVへ書き出します。失敗したURLはスキップされます。`,
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("input") {
			inputPath = appConfig.Input.Path
		}
		if !cmd.Flags().Changed("output") {
			outputPath = appConfig.Output.Path
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// 1. 処理対象URLのリストを決定 (読めない場合は致命的エラー)
		urls, err := loadURLs(ctx)
		if err != nil {
			return eris.Wrap(err, "URLリストの読み込みに失敗しました")
		}
		if len(urls) == 0 {
			zap.L().Warn("処理対象のURLが一つもありません。ヘッダー行のみを出力します")
		}

		// 2. メインロジックの実行
		summary, err := runBatchPipeline(ctx, globalFetcher, urls, outputPath)
		printSummary(summary, outputPath)
		return err
	},
}

func init() {
	runCmd.Flags().StringVarP(&inputPath, "input", "i", "", "URLリストファイル (1行1URL, 既定は設定の input.path)")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "出力CSVファイル (既定は設定の output.path)")
	runCmd.Flags().StringVarP(&runFeedURL, "feed", "f", "", "URLリストの代わりに記事URLを取得するRSS/AtomフィードのURL")
}
