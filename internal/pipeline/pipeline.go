// Package pipeline は、デフォルト設定で一括実行するための薄いラッパーを提供します。
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shouni/go-url-scan/pkg/httpclient"
	"github.com/shouni/go-url-scan/pkg/page"
	"github.com/shouni/go-url-scan/pkg/processor"
	"github.com/shouni/go-url-scan/pkg/types"
)

// ScanText は、テキストからURLを抽出し、デフォルト設定の逐次パイプラインで
// 処理してレポートを返します。ライブラリとして1関数で使いたい場合の入口です。
func ScanText(text string) (*types.Report, error) {
	const (
		clientTimeout  = 10 * time.Second
		overallTimeout = 60 * time.Second
	)

	// 1. 依存性の初期化
	client := httpclient.New(clientTimeout)
	extractor, err := page.NewExtractor(client, zerolog.Nop())
	if err != nil {
		return nil, fmt.Errorf("Extractorの初期化エラー: %w", err)
	}
	proc := processor.New(extractor, zerolog.Nop())

	// 2. 全体処理のコンテキストを設定
	ctx, cancel := context.WithTimeout(context.Background(), overallTimeout)
	defer cancel()

	// 3. 抽出と逐次フェッチの実行
	return proc.ProcessText(ctx, text), nil
}
