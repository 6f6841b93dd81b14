package extract

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/shouni/go-article-exact/pkg/types"
)

// ----------------------------------------------------------------------
// 依存性の定義
// ----------------------------------------------------------------------

// SiteExtractor は、レンダリング済みドキュメントとURLから Record を生成する
// サイト固有の抽出機能のインターフェースです。
// 必須の構造が見つからない場合は *StructuralFailure を返します。
type SiteExtractor interface {
	Name() string
	Extract(doc *goquery.Document, sourceURL string) (*types.Record, error)
}

// AuthorStrategy は、記事ルートから著者文字列を取り出す戦略です。
// 見つからない場合は ok=false を返し、呼び出し側がセンチネル値に置き換えます。
type AuthorStrategy interface {
	Author(root *goquery.Selection) (author string, ok bool)
}

// StructuralFailure は、期待したコンテナが存在しないことを示します。
// テンプレート変更やペイウォールの兆候であり、取得失敗とは区別されます。
type StructuralFailure struct {
	Site  string // 抽出器の名前
	Level string // 見つからなかった階層のセレクター
	Depth int    // 0始まりの階層番号
}

func (e *StructuralFailure) Error() string {
	return fmt.Sprintf("%s: 記事構造が見つかりません (階層 %d: %s)", e.Site, e.Depth, e.Level)
}
