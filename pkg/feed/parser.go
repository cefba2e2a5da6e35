// Package feed は、RSS/Atomフィードの取得・解析と、フィードから
// 処理対象URLのリストを取り出すためのアダプターを提供します。
package feed

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// Fetcher は、Parser が依存するコンテンツ取得機能のインターフェースです。
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Parser は、フィードの取得とパースを管理します。
type Parser struct {
	client Fetcher
}

// NewParser は、新しい Parser インスタンスを初期化し、依存関係を注入します。
func NewParser(client Fetcher) (*Parser, error) {
	if client == nil {
		return nil, fmt.Errorf("feed.NewParser: Fetcher cannot be nil")
	}
	return &Parser{client: client}, nil
}

// FetchAndParse は、指定されたURLからフィードを取得し、パースします。
func (p *Parser) FetchAndParse(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	body, err := p.client.FetchBytes(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("フィードの取得失敗 (URL: %s): %w", feedURL, err)
	}

	fp := gofeed.NewParser()
	parsed, parseErr := fp.Parse(bytes.NewReader(body))
	if parseErr != nil {
		return nil, fmt.Errorf("RSSフィードのパース失敗 (URL: %s): %w", feedURL, parseErr)
	}
	return parsed, nil
}
