// Package httpclient は、HTTP GET によるコンテンツ取得の共通処理を提供します。
// User-Agent・タイムアウト・ボディサイズ上限・ステータスコード分類を一元化し、
// 必要に応じて retry パッケージによるリトライを適用します。
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shouni/go-url-scan/pkg/retry"
)

const (
	// DefaultHTTPTimeout は、1リクエストあたりのデフォルトの総タイムアウトです。
	DefaultHTTPTimeout = 10 * time.Second

	// MaxBodySize は、レスポンスボディの最大読み込みサイズです (10MB)。
	MaxBodySize = int64(10 * 1024 * 1024)

	// UserAgent は、テストクライアントを識別する固定のUser-Agentです。
	UserAgent = "Mozilla/5.0 (compatible; TestBot/1.0)"

	// maxErrorBodyLen は、エラーメッセージに含めるボディの最大長です。
	maxErrorBodyLen = 1024
)

// Doer は、標準の *http.Client.Do() と互換性のあるHTTPクライアントのインターフェースです。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusCodeError は、200以外のHTTPステータスコードを受信したことを示すエラーです。
type StatusCodeError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusCodeError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("HTTPステータスコードエラー: %d, ボディなし", e.StatusCode)
	}
	body := strings.TrimSpace(string(e.Body))
	if len(body) > maxErrorBodyLen {
		body = body[:maxErrorBodyLen] + "..."
	}
	return fmt.Sprintf("HTTPステータスコードエラー: %d, ボディ: %s", e.StatusCode, body)
}

// Retryable は、このステータスコードがリトライに値するか (5xx系) を返します。
func (e *StatusCodeError) Retryable() bool {
	return e.StatusCode >= 500 && e.StatusCode <= 599
}

// AsStatusCodeError は、エラーチェーンから StatusCodeError を取り出します。
func AsStatusCodeError(err error) (*StatusCodeError, bool) {
	var scErr *StatusCodeError
	if errors.As(err, &scErr) {
		return scErr, true
	}
	return nil, false
}

// IsNonRetryableError は、与えられたエラーがリトライ対象外のHTTPエラー (4xx系) であるかを返します。
func IsNonRetryableError(err error) bool {
	if scErr, ok := AsStatusCodeError(err); ok {
		return !scErr.Retryable()
	}
	return false
}

// Client は、HTTPリクエストとリトライロジックを管理します。
type Client struct {
	httpClient  Doer
	retryConfig retry.Config
	userAgent   string
}

// Option は、Client の設定を行うための関数型です。
type Option func(*Client)

// WithHTTPClient は、カスタムのDoerを設定します。主にテストで使用します。
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithMaxRetries は、最大リトライ回数を設定します。
// デフォルトは 0（初回試行のみのワンショット）です。
func WithMaxRetries(max uint64) Option {
	return func(c *Client) {
		c.retryConfig.MaxRetries = max
	}
}

// WithUserAgent は、User-Agentヘッダーを上書きします。
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New は、新しい Client を生成します。timeout が 0 以下の場合はデフォルトを適用します。
func New(timeout time.Duration, options ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	c := &Client{
		httpClient:  &http.Client{Timeout: timeout},
		retryConfig: retry.OneShotConfig(),
		userAgent:   UserAgent,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// FetchBytes は、URLからコンテンツをGETし、生のバイト配列として返します。
// リトライ設定に従い、リトライ対象のエラー (通信エラー・5xx) は再試行されます。
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	op := func() error {
		var fetchErr error
		body, fetchErr = c.doFetch(ctx, url)
		return fetchErr
	}

	err := retry.Do(
		ctx,
		c.retryConfig,
		fmt.Sprintf("URL(%s)のフェッチ", url),
		op,
		isRetryableError,
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// doFetch は、一度のHTTP GETリクエストを実行し、ボディを読み込みます。
func (c *Client) doFetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("GETリクエスト作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストに失敗しました (ネットワーク/接続エラー): %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	return readLimitedBody(resp)
}

// checkStatus は、レスポンスのステータスコードを評価します。200以外はエラーです。
func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	// エラー診断用にボディの先頭のみ読み込む。読み込み失敗はボディなしとして扱う。
	bodyBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	if readErr != nil {
		return &StatusCodeError{StatusCode: resp.StatusCode}
	}
	return &StatusCodeError{StatusCode: resp.StatusCode, Body: bodyBytes}
}

// readLimitedBody は、サイズ上限を適用してレスポンスボディを読み込みます。
func readLimitedBody(resp *http.Response) ([]byte, error) {
	if resp.ContentLength > MaxBodySize {
		return nil, fmt.Errorf("レスポンスボディが最大サイズ (%dバイト) を超えました", MaxBodySize)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み込みに失敗しました: %w", err)
	}
	if int64(len(bodyBytes)) > MaxBodySize {
		return nil, fmt.Errorf("レスポンスボディが最大サイズ (%dバイト) を超えました", MaxBodySize)
	}
	return bodyBytes, nil
}

// isRetryableError は、エラーがリトライ対象かどうかを判定します。
// 4xx系のステータスコードエラーのみリトライ対象外、それ以外 (通信エラー・5xx) は対象です。
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if IsNonRetryableError(err) {
		return false
	}
	return true
}
