package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	textUtils "github.com/shouni/go-utils/text"

	"github.com/shouni/go-article-exact/pkg/types"
)

// blockSeparator は本文ブロックを結合する区切り文字です。
const blockSeparator = " "

// SiteRules は、1つのサイトのマークアップに対するノード照合ルールを宣言的に保持します。
type SiteRules struct {
	Name string

	// Root は記事ルートに至るまでの入れ子のセレクターです (外側から順に評価)。
	Root []string

	// Title はタイトルノードのセレクターです。最初に一致したノードを使います。
	Title string

	Author AuthorStrategy

	// Body は本文ブロックのセレクターです。複数指定時も文書順で収集されます。
	Body []string

	// Exclude に一致するノード、またはその内側にあるブロックは本文から除外します。
	Exclude string

	// Skip が true を返すブロックも本文から除外します。
	// セレクターで表せない条件 (著者戦略と同じ判定など) に使います。
	Skip func(block *goquery.Selection) bool
}

// Extractor は SiteRules に従って記事を抽出する SiteExtractor 実装です。
type Extractor struct {
	rules SiteRules
}

// NewExtractor は、新しいExtractorのインスタンスを生成します。
func NewExtractor(rules SiteRules) (*Extractor, error) {
	if rules.Name == "" {
		return nil, eris.New("extract.NewExtractor: rules.Name cannot be empty")
	}
	if len(rules.Root) == 0 {
		return nil, eris.Errorf("extract.NewExtractor: %s: Root cannot be empty", rules.Name)
	}
	if rules.Author == nil {
		return nil, eris.Errorf("extract.NewExtractor: %s: Author strategy cannot be nil", rules.Name)
	}
	return &Extractor{rules: rules}, nil
}

// MustExtractor は NewExtractor のパニック版です。サイト表の初期化に使います。
func MustExtractor(rules SiteRules) *Extractor {
	e, err := NewExtractor(rules)
	if err != nil {
		panic(err)
	}
	return e
}

// Name は抽出器の名前を返します。
func (e *Extractor) Name() string {
	return e.rules.Name
}

// ParseHTML はレンダリング済みHTMLを goquery.Document に変換します。
func ParseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "HTML解析に失敗しました")
	}
	return doc, nil
}

// Extract は SiteExtractor インターフェースを実装します。
// 同じ (doc, sourceURL) に対しては常に同じ Record を返します。
func (e *Extractor) Extract(doc *goquery.Document, sourceURL string) (*types.Record, error) {
	// 1. 記事ルートの特定
	root, err := e.findRoot(doc)
	if err != nil {
		return nil, err
	}

	// 2. 各フィールドは独立に抽出し、欠損はセンチネル値に置き換える
	rec := &types.Record{
		Title:  e.extractTitle(root),
		Author: types.NoAuthor,
		Text:   e.extractBody(root),
		URL:    sourceURL,
	}
	if author, ok := e.rules.Author.Author(root); ok {
		rec.Author = author
	}
	return rec, nil
}

// findRoot は Root の各階層を順にたどります。
// どこかの階層が欠けていれば、その階層を示す StructuralFailure を返します。
func (e *Extractor) findRoot(doc *goquery.Document) (*goquery.Selection, error) {
	current := doc.Selection
	for depth, sel := range e.rules.Root {
		next := current.Find(sel).First()
		if next.Length() == 0 {
			return nil, &StructuralFailure{Site: e.rules.Name, Level: sel, Depth: depth}
		}
		current = next
	}
	return current, nil
}

func (e *Extractor) extractTitle(root *goquery.Selection) string {
	if e.rules.Title == "" {
		return types.NoTitle
	}
	title := strings.TrimSpace(root.Find(e.rules.Title).First().Text())
	if title == "" {
		return types.NoTitle
	}
	return title
}

// extractBody は本文ブロックを文書順に集め、単一スペースで結合します。
// ブロックの並べ替えや重複除去は行いません。
func (e *Extractor) extractBody(root *goquery.Selection) string {
	if len(e.rules.Body) == 0 {
		return types.NoText
	}

	var blocks []string
	root.Find(strings.Join(e.rules.Body, ", ")).Each(func(_ int, s *goquery.Selection) {
		if e.excluded(root, s) {
			return
		}
		blocks = append(blocks, textUtils.NormalizeText(s.Text()))
	})

	// 空のブロックも結合には含めるが、結果が空白のみならセンチネル値とする
	joined := strings.Join(blocks, blockSeparator)
	if strings.TrimSpace(joined) == "" {
		return types.NoText
	}
	return joined
}

// excluded は、ブロックが Skip に該当するか、ブロック自身またはルート内の祖先が
// Exclude に一致するかを判定します。
func (e *Extractor) excluded(root, s *goquery.Selection) bool {
	if e.rules.Skip != nil && e.rules.Skip(s) {
		return true
	}
	if e.rules.Exclude == "" {
		return false
	}
	if s.Is(e.rules.Exclude) {
		return true
	}
	return s.ParentsUntilSelection(root).Filter(e.rules.Exclude).Length() > 0
}
