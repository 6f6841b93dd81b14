package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shouni/go-article-exact/pkg/extract"
	"github.com/shouni/go-article-exact/pkg/render"
	"github.com/shouni/go-article-exact/pkg/types"
)

var rawUrl string

// runExtraction は、1つのURLをレンダリングして抽出するメインロジックです。
func runExtraction(ctx context.Context, fetcher *render.Fetcher, router *extract.Router, rawURL string) (*types.Record, error) {
	extractor, ok := router.Route(rawURL)
	if !ok {
		return nil, eris.Errorf("未対応のドメインです: %s", rawURL)
	}

	html, err := fetcher.FetchHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := extract.ParseHTML(html)
	if err != nil {
		return nil, err
	}
	return extractor.Extract(doc, rawURL)
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "指定されたURLの記事を1件抽出して表示します",
	Long:  `指定されたURLまたは標準入力のURLをレンダリングし、対応サイトの抽出ルールで記事のタイトル・著者・本文を表示します。`,
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 処理対象URLの決定 (フラグ優先)
		urlToProcess := rawUrl
		if urlToProcess == "" {
			zap.L().Info("URLが指定されていないため、標準入力からURLを読み込みます")
			scanner := bufio.NewScanner(os.Stdin)
			fmt.Print("処理するURLを入力してください: ")

			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return eris.Wrap(err, "標準入力の読み取りエラー")
				}
				return eris.New("URLが入力されていません")
			}
			urlToProcess = scanner.Text()
		}

		// 2. URLのスキーム補完とバリデーション
		processedURL, err := ensureScheme(strings.TrimSpace(urlToProcess))
		if err != nil {
			return eris.Wrap(err, "URLスキームの処理エラー")
		}
		zap.L().Info("処理対象URL", zap.String("url", processedURL), zap.Duration("settle", globalFetcher.SettleDelay()))

		// 3. メインロジックの実行
		rec, err := runExtraction(cmd.Context(), globalFetcher, extract.DefaultRouter(), processedURL)
		if err != nil {
			return eris.Wrapf(err, "記事の抽出に失敗しました (URL: %s)", processedURL)
		}

		// 4. 結果の出力
		fmt.Println("--- 抽出された記事 ---")
		fmt.Printf("Title:  %s\n", rec.Title)
		fmt.Printf("Author: %s\n", rec.Author)
		fmt.Printf("URL:    %s\n", rec.URL)
		fmt.Println()
		fmt.Println(rec.Text)
		fmt.Println("-----------------------")
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&rawUrl, "url", "u", "", "抽出対象のURL")
}
