// Package page は、単一URLのフェッチとHTML解析（タイトル・可視テキスト抽出）を提供します。
package page

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/shouni/go-url-scan/pkg/httpclient"
	"github.com/shouni/go-url-scan/pkg/types"
)

// NoTitle は、ページに title 要素が存在しない場合のセンチネル値です。
const NoTitle = "No title"

// ----------------------------------------------------------------------
// 依存性の定義 (DIP)
// ----------------------------------------------------------------------

// Fetcher は、HTMLドキュメントの生バイト配列を取得する機能のインターフェースです。
// Extractor は、この抽象に依存します。
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Extractor は、Fetcher を使って単一URLのフェッチと解析を管理します。
type Extractor struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

// NewExtractor は、新しい Extractor のインスタンスを生成します。
func NewExtractor(fetcher Fetcher, logger zerolog.Logger) (*Extractor, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("page.NewExtractor: Fetcher cannot be nil")
	}
	return &Extractor{
		fetcher: fetcher,
		logger:  logger,
	}, nil
}

// ----------------------------------------------------------------------
// メイン関数
// ----------------------------------------------------------------------

// FetchAndExtract は、1つのURLをGETし、タイトルと可視テキスト行を抽出します。
// フェッチは一度きり（リトライなし）で、結果は必ず FetchResult として返されます。
// 通信エラー・HTTPエラー・解析エラーはすべて StatusError の結果値に変換され、
// エラーとして呼び出し元へ伝播することはありません。
func (e *Extractor) FetchAndExtract(ctx context.Context, url string) types.FetchResult {
	body, err := e.fetcher.FetchBytes(ctx, url)
	if err != nil {
		return e.errorResult(url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		e.logger.Warn().Str("url", url).Err(err).Msg("HTML解析に失敗しました")
		return types.FetchResult{
			URL:    url,
			Status: types.StatusError,
			Error:  fmt.Sprintf("HTML解析に失敗しました: %v", err),
		}
	}

	title := extractTitle(doc)
	lines := extractVisibleLines(doc)

	e.logger.Debug().
		Str("url", url).
		Str("title", title).
		Int("content_length", len(body)).
		Int("lines", len(lines)).
		Msg("フェッチと抽出が完了しました")

	return types.FetchResult{
		URL:           url,
		Status:        types.StatusSuccess,
		Title:         title,
		ContentLength: len(body),
		Lines:         lines,
	}
}

// errorResult は、フェッチ失敗を FetchResult に変換します。
// ステータスコードエラーは "HTTP <code>" 形式、それ以外は失敗内容の説明になります。
func (e *Extractor) errorResult(url string, err error) types.FetchResult {
	msg := err.Error()
	if scErr, ok := httpclient.AsStatusCodeError(err); ok {
		msg = fmt.Sprintf("HTTP %d", scErr.StatusCode)
	}

	e.logger.Debug().Str("url", url).Err(err).Msg("フェッチに失敗しました")

	return types.FetchResult{
		URL:    url,
		Status: types.StatusError,
		Error:  msg,
	}
}

// extractTitle は、最初の title 要素のテキストを返します。存在しない場合はセンチネル値です。
func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return NoTitle
	}
	return title
}

// extractVisibleLines は、script/style 要素を除去した上で可視テキストを行に分割し、
// 各行をトリムして空行を捨てた結果を返します。
func extractVisibleLines(doc *goquery.Document) []string {
	doc.Find("script, style").Remove()

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
