package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// NameHeuristic は、署名欄の候補ノードから人名らしいテキストを選ぶ戦略です。
// 空白で区切った最初の2語がどちらも大文字で始まる、最初の候補を採用します。
// 言語機能ではなく大文字パターンによる簡易判定です。
type NameHeuristic struct {
	Container  string // 署名欄のセレクター
	Candidates string // 署名欄内の候補ノード (例: "span")
}

func (h NameHeuristic) Author(root *goquery.Selection) (string, bool) {
	byline := root.Find(h.Container).First()
	if byline.Length() == 0 {
		return "", false
	}

	var author string
	byline.Find(h.Candidates).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if LooksLikeName(text) {
			author = text
			return false
		}
		return true
	})
	return author, author != ""
}

// LooksLikeName は、テキストが2語以上で、先頭2語が大文字で始まるかを判定します。
func LooksLikeName(text string) bool {
	words := strings.Fields(text)
	if len(words) < 2 {
		return false
	}
	for _, w := range words[:2] {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// LinkHarvest は、署名欄内のすべてのリンクテキストを ", " で結合する戦略です。
type LinkHarvest struct {
	Container string
}

// linkSeparator はリンクテキストの結合に使う区切り文字です。
const linkSeparator = ", "

func (h LinkHarvest) Author(root *goquery.Selection) (string, bool) {
	var names []string
	root.Find(h.Container).First().Find("a").Each(func(_ int, a *goquery.Selection) {
		if name := strings.TrimSpace(a.Text()); name != "" {
			names = append(names, name)
		}
	})
	if len(names) == 0 {
		return "", false
	}
	return strings.Join(names, linkSeparator), true
}

// CreditLine は、太字ノードに付いた既知のラベル (例: "Press Contact:") を
// 取り除いて著者文字列とする戦略です。
type CreditLine struct {
	Selector string // 太字ノードのセレクター (例: "strong, b")
	Label    string
}

func (h CreditLine) Author(root *goquery.Selection) (string, bool) {
	var author string
	found := false
	root.Find(h.Selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		value, ok := h.credit(s)
		if !ok {
			return true
		}
		author = value
		found = true
		return false
	})
	if !found || author == "" {
		return "", false
	}
	return author, true
}

// Contains は、block の内側にラベル付きの太字ノードがあるかを判定します。
// Author と同じ判定なので、SiteRules.Skip に渡せば著者行を本文から除外できます。
func (h CreditLine) Contains(block *goquery.Selection) bool {
	hit := false
	block.Find(h.Selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		_, hit = h.credit(s)
		return !hit
	})
	return hit
}

// credit は、ノードのテキストがラベルで始まる場合にラベル以降の文字列を返します。
func (h CreditLine) credit(s *goquery.Selection) (string, bool) {
	text := strings.TrimSpace(s.Text())
	if !strings.HasPrefix(text, h.Label) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(text, h.Label)), true
}
