package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shouni/go-article-exact/pkg/extract"
	"github.com/shouni/go-article-exact/pkg/feed"
)

// フィードURLを保持するフラグ変数
var feedURL string

// フィード取得全体のタイムアウトはクライアントタイムアウトの2倍とします。
const overallFeedTimeoutFactor = 2

// runParsePipeline は、フィードの取得とパースを実行するメインロジックです。
func runParsePipeline(url string, parser *feed.Parser, overallTimeout time.Duration) (*gofeed.Feed, error) {
	ctx, cancel := context.WithTimeout(context.Background(), overallTimeout)
	defer cancel()

	parsedFeed, err := parser.FetchAndParse(ctx, url)
	if err != nil {
		return nil, eris.Wrapf(err, "フィードの取得およびパースエラー (URL: %s)", url)
	}
	return parsedFeed, nil
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "RSS/Atomフィードを取得し、記事URLと対応する抽出ルールを一覧表示します",
	Long:  `指定されたURLからRSSまたはAtomフィードを取得し、記事タイトル・URLと、run コマンドで使われる抽出ルール名を表示します。`,
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		processedURL, err := ensureScheme(feedURL)
		if err != nil {
			return eris.Wrap(err, "URLスキームの処理エラー")
		}

		overallTimeout := appConfig.Feed.Timeout * overallFeedTimeoutFactor
		zap.L().Info("処理対象フィード", zap.String("url", processedURL), zap.Duration("timeout", overallTimeout))

		parser, err := feed.NewParser(globalFeedFetcher)
		if err != nil {
			return err
		}

		parsedFeed, err := runParsePipeline(processedURL, parser, overallTimeout)
		if err != nil {
			return eris.Wrap(err, "フィード解析パイプラインの実行エラー")
		}

		router := extract.DefaultRouter()

		fmt.Printf("--- フィード解析結果 ---\n")
		fmt.Printf("フィードタイトル: %s\n", parsedFeed.Title)
		if parsedFeed.Link != "" {
			fmt.Printf("リンク: %s\n", parsedFeed.Link)
		}
		fmt.Printf("合計記事数: %d\n", len(parsedFeed.Items))
		fmt.Println("-----------------------")

		for i, item := range parsedFeed.Items {
			fmt.Printf("[%d] %s\n", i+1, item.Title)
			fmt.Printf("    URL: %s\n", item.Link)
			if ex, ok := router.Route(item.Link); ok {
				fmt.Printf("    抽出ルール: %s\n", ex.Name())
			} else {
				fmt.Printf("    抽出ルール: (未対応)\n")
			}
			if item.PublishedParsed != nil {
				fmt.Printf("    公開日: %s\n", item.PublishedParsed.Local().Format("2006-01-02 15:04:05"))
			}
		}
		fmt.Println()
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVarP(&feedURL, "url", "u", "", "解析対象のフィード (RSS/Atom) URL")
	_ = parseCmd.MarkFlagRequired("url")
}
