package extract

// ----------------------------------------------------------------------
// サイト別の抽出ルール
// ----------------------------------------------------------------------

// BBCRules は BBC News の記事ページ用ルールです。
var BBCRules = SiteRules{
	Name:  "bbc",
	Root:  []string{"article"},
	Title: `div[data-component="headline-block"]`,
	Author: NameHeuristic{
		Container:  `div[data-component="byline-block"]`,
		Candidates: "span",
	},
	Body: []string{`div[data-component="text-block"]`},
}

// TeamsterRules は teamster.org (Drupal) のプレスリリース用ルールです。
var TeamsterRules = SiteRules{
	Name: "teamster",
	Root: []string{
		"body.path-node",
		"div.dialog-off-canvas-main-canvas",
		"main",
		"article",
	},
	Title:  "h1.page-title",
	Author: LinkHarvest{Container: "div.field--name-field-author"},
	Body:   []string{"div.field--name-body p"},
}

// pressContact は AFL-CIO のプレスリリースにある連絡先行です。
var pressContact = CreditLine{
	Selector: "strong, b",
	Label:    "Press Contact:",
}

// AFLCIORules は aflcio.org のプレスリリース用ルールです。
// 連絡先の段落は著者として扱い、本文には含めません。
var AFLCIORules = SiteRules{
	Name:   "aflcio",
	Root:   []string{"main", "article.node--type-press-release"},
	Title:  "h1.page-title",
	Author: pressContact,
	Body:   []string{"div.field--name-body p"},
	Skip:   pressContact.Contains,
}

// DefaultRouter は、対応サイトをすべて登録した Router を返します。
func DefaultRouter() *Router {
	return NewRouter().
		Register("bbc.co", MustExtractor(BBCRules)).
		Register("teamster.org", MustExtractor(TeamsterRules)).
		Register("aflcio.org", MustExtractor(AFLCIORules))
}
