package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-article-exact/pkg/extract"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "対応サイトの一覧を表示します",
	Long:  `URLに含まれる部分文字列と、その URL に適用される抽出ルール名を登録順 (先に一致したものが優先) に表示します。`,
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		for i, site := range extract.DefaultRouter().Sites() {
			fmt.Printf("[%d] %-16s -> %s\n", i+1, site.Matcher, site.Extractor)
		}
		return nil
	},
}
