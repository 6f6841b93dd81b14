package feed

import (
	"strings"

	"github.com/mmcdole/gofeed"
)

// FeedAdapter は gofeed.Feed から記事URLのリストを取り出すためのアダプターです。
type FeedAdapter struct {
	*gofeed.Feed
}

// NewFeedAdapter は gofeed.Feed から新しいアダプターを作成します。
func NewFeedAdapter(feed *gofeed.Feed) *FeedAdapter {
	return &FeedAdapter{Feed: feed}
}

// GetLinks はフィード内の記事リンクをフィードの順序で返します。
// パイプラインの入力と同じく、前後の空白を除去し、空のリンクは除外します。
func (a *FeedAdapter) GetLinks() []string {
	if a.Feed == nil || len(a.Items) == 0 {
		return []string{}
	}

	urls := make([]string, 0, len(a.Items))
	for _, item := range a.Items {
		if item == nil {
			continue
		}
		if link := strings.TrimSpace(item.Link); link != "" {
			urls = append(urls, link)
		}
	}
	return urls
}
