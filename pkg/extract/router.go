package extract

import (
	"strings"
)

// route は、ドメイン部分文字列と抽出器の組です。
type route struct {
	matcher   string
	extractor SiteExtractor
}

// Router は、URLに対応する SiteExtractor を登録順の表から選択します。
// サイトを追加する場合は Register を呼ぶだけでよく、Router や
// パイプライン側の変更は不要です。
type Router struct {
	routes []route
}

// NewRouter は空のRouterを生成します。
func NewRouter() *Router {
	return &Router{}
}

// Register は、matcher (URLに含まれるべき部分文字列) と抽出器を登録します。
func (r *Router) Register(matcher string, extractor SiteExtractor) *Router {
	r.routes = append(r.routes, route{matcher: matcher, extractor: extractor})
	return r
}

// Route は、URLに部分文字列として含まれる最初の matcher の抽出器を返します。
// 一致しない場合は ok=false (未対応) です。
func (r *Router) Route(rawURL string) (SiteExtractor, bool) {
	for _, rt := range r.routes {
		if rt.matcher != "" && strings.Contains(rawURL, rt.matcher) {
			return rt.extractor, true
		}
	}
	return nil, false
}

// Site は登録済みの matcher と抽出器名の組です。
type Site struct {
	Matcher   string
	Extractor string
}

// Sites は登録順に matcher 一覧を返します。
func (r *Router) Sites() []Site {
	sites := make([]Site, 0, len(r.routes))
	for _, rt := range r.routes {
		sites = append(sites, Site{Matcher: rt.matcher, Extractor: rt.extractor.Name()})
	}
	return sites
}
