// Package processor は、テキストからのURL抽出・妥当性判定・逐次フェッチを
// 束ねる処理パイプラインと、その結果の集約を提供します。
package processor

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shouni/go-url-scan/pkg/page"
	"github.com/shouni/go-url-scan/pkg/types"
	"github.com/shouni/go-url-scan/pkg/urltext"
)

// DefaultMaxURLs は、1回の実行で処理するURL数のデフォルト上限です。
const DefaultMaxURLs = 3

// Processor は、URLを1件ずつ順番に処理するシーケンシャルなパイプラインです。
// ワーカープールやチャネルは使用しません。結果リストへの追記は
// 単一のタスクのみが行うため、共有状態の排他制御は不要です。
type Processor struct {
	extractor *page.Extractor
	maxURLs   int
	logger    zerolog.Logger
}

// Option は、Processor の設定を行うための関数型です。
type Option func(*Processor)

// WithMaxURLs は、1回の実行で処理するURL数の上限を設定します。
// 0 以下を指定すると無制限になります。
func WithMaxURLs(n int) Option {
	return func(p *Processor) {
		p.maxURLs = n
	}
}

// New は、新しい Processor を生成します。
func New(extractor *page.Extractor, logger zerolog.Logger, options ...Option) *Processor {
	p := &Processor{
		extractor: extractor,
		maxURLs:   DefaultMaxURLs,
		logger:    logger,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// ProcessText は、テキストからURLを抽出し、妥当なものを順番にフェッチして
// レポートを返します。抽出 → 妥当性判定 → 逐次フェッチ → 集約の一連の流れです。
func (p *Processor) ProcessText(ctx context.Context, text string) *types.Report {
	candidates := urltext.Extract(text)
	valid := urltext.FilterValid(candidates)

	p.logger.Debug().
		Int("candidates", len(candidates)).
		Int("valid", len(valid)).
		Msg("URL抽出が完了しました")

	return p.ProcessURLs(ctx, valid)
}

// ProcessURLs は、URLのリストを1件ずつ順番にフェッチし、レポートを返します。
// 各URLのフェッチは前のフェッチの完了を待ってから開始されます（並列化しない）。
// キャンセルはURLとURLの間でのみ確認され、実行中の1リクエストは
// クライアントのタイムアウトによってのみ打ち切られます。
func (p *Processor) ProcessURLs(ctx context.Context, urls []string) *types.Report {
	report := &types.Report{ID: uuid.NewString()}

	if p.maxURLs > 0 && len(urls) > p.maxURLs {
		p.logger.Debug().
			Int("total", len(urls)).
			Int("max", p.maxURLs).
			Msg("URL数が上限を超えたため切り詰めます")
		urls = urls[:p.maxURLs]
	}

	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			report.Append(types.FetchResult{
				URL:    u,
				Status: types.StatusError,
				Error:  err.Error(),
			})
			continue
		}

		report.Append(p.extractor.FetchAndExtract(ctx, u))
	}

	p.logger.Info().
		Str("report_id", report.ID).
		Int("success", report.SuccessCount).
		Int("error", report.ErrorCount).
		Msg("URL処理が完了しました")

	return report
}
