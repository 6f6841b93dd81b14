package feed

import (
	"bytes"
	"context"

	"github.com/mmcdole/gofeed"
	"github.com/rotisserie/eris"
)

// Fetcher は、フィードの生バイト列を取得する機能のインターフェースです。
// *httpkit.Client はこのインターフェースを満たします。
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Parser はフィードの取得とパースを行います。
type Parser struct {
	client Fetcher
}

// NewParser は新しい Parser インスタンスを初期化し、依存関係を注入します。
func NewParser(client Fetcher) (*Parser, error) {
	if client == nil {
		return nil, eris.New("feed.NewParser: Fetcher cannot be nil")
	}
	return &Parser{client: client}, nil
}

// FetchAndParse は指定されたURLからフィードを取得し、パースします。
func (p *Parser) FetchAndParse(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	body, err := p.client.FetchBytes(ctx, feedURL)
	if err != nil {
		return nil, eris.Wrapf(err, "フィードの取得失敗 (URL: %s)", feedURL)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrapf(err, "フィードのパース失敗 (URL: %s)", feedURL)
	}
	return feed, nil
}

// FetchLinks はフィードを取得し、記事リンクを返します。
func (p *Parser) FetchLinks(ctx context.Context, feedURL string) ([]string, error) {
	feed, err := p.FetchAndParse(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	return NewFeedAdapter(feed).GetLinks(), nil
}
