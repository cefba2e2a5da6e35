// Package retry は、指数バックオフによる汎用リトライ処理を提供します。
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultMaxRetries は、デフォルトの最大リトライ回数です。
	DefaultMaxRetries = 3

	// InitialBackoffInterval は、バックオフの初期間隔です。
	InitialBackoffInterval = 500 * time.Millisecond
	// MaxBackoffInterval は、バックオフ間隔の上限です。
	MaxBackoffInterval = 5 * time.Second
)

// Operation は、リトライ可能な処理を表す関数です。成功時は nil を返します。
type Operation func() error

// ShouldRetryFunc は、エラーがリトライ可能かどうかを判定する関数です。
type ShouldRetryFunc func(error) bool

// Config は、リトライ動作の設定です。
// MaxRetries を 0 にすると初回試行のみ（リトライなし）になります。
type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultConfig は、推奨されるデフォルト設定を返します。
func DefaultConfig() Config {
	return Config{
		MaxRetries:      DefaultMaxRetries,
		InitialInterval: InitialBackoffInterval,
		MaxInterval:     MaxBackoffInterval,
	}
}

// OneShotConfig は、リトライを行わない設定を返します。
// 一度きりのフェッチ（結果値へ変換される操作）に使用します。
func OneShotConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxRetries = 0
	return cfg
}

// newBackOffPolicy は、Config とコンテキストからバックオフポリシーを構築します。
func newBackOffPolicy(ctx context.Context, cfg Config) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.MaxInterval = cfg.MaxInterval

	bo := backoff.WithMaxRetries(b, cfg.MaxRetries)
	return backoff.WithContext(bo, ctx)
}

// Do は、指数バックオフとカスタムエラー判定を使用して操作をリトライします。
// shouldRetryFn が false を返したエラーは永続エラーとして即時に終了します。
func Do(ctx context.Context, cfg Config, operationName string, op Operation, shouldRetryFn ShouldRetryFunc) error {
	bo := newBackOffPolicy(ctx, cfg)

	var lastErr error

	retryableOp := func() error {
		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		if shouldRetryFn(err) {
			return err
		}
		// 永続エラーとしてラップし、即時終了させる
		return backoff.Permanent(err)
	}

	err := backoff.Retry(retryableOp, bo)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return fmt.Errorf("%sに失敗しました: コンテキストタイムアウト/キャンセル: %w", operationName, err)
	case lastErr != nil && !shouldRetryFn(lastErr):
		return fmt.Errorf("%sに失敗しました: 致命的なエラーのためリトライを中止: %w", operationName, lastErr)
	default:
		return fmt.Errorf("%sに失敗しました: 最大リトライ回数 (%d回) に到達。最終エラー: %w", operationName, cfg.MaxRetries, lastErr)
	}
}
