package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, uint64(DefaultMaxRetries), cfg.MaxRetries)
	require.Equal(t, InitialBackoffInterval, cfg.InitialInterval)
	require.Equal(t, MaxBackoffInterval, cfg.MaxInterval)
}

func TestOneShotConfig(t *testing.T) {
	cfg := OneShotConfig()
	require.Equal(t, uint64(0), cfg.MaxRetries, "ワンショット設定はリトライ回数0であるべきです")
}

func TestNewBackOffPolicy(t *testing.T) {
	cfg := Config{
		MaxRetries:      5,
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     500 * time.Millisecond,
	}

	bo := newBackOffPolicy(context.Background(), cfg)
	require.NotNil(t, bo)
}

func TestDo(t *testing.T) {
	// テスト用の高速な設定
	testCfg := Config{MaxRetries: 3, InitialInterval: 1 * time.Millisecond, MaxInterval: 10 * time.Millisecond}
	opName := "test_operation"

	// 予期されるエラーメッセージを実装に合わせて正確に生成
	fatalErrText := fmt.Sprintf("%sに失敗しました: 致命的なエラーのためリトライを中止: %s", opName, "fatal error")
	maxRetriesErrText := fmt.Sprintf("%sに失敗しました: 最大リトライ回数 (%d回) に到達。最終エラー: %s", opName, testCfg.MaxRetries, "retryable error")

	tests := []struct {
		name          string
		ctx           context.Context
		cfg           Config
		operation     Operation
		shouldRetry   ShouldRetryFunc
		expectedError string
		exactMatch    bool
	}{
		{
			name:          "successful operation",
			ctx:           context.Background(),
			cfg:           testCfg,
			operation:     func() error { return nil },
			shouldRetry:   func(err error) bool { return false },
			expectedError: "",
		},
		{
			name: "retryable error and success within max retries",
			ctx:  context.Background(),
			cfg:  testCfg,
			operation: func() Operation {
				attempt := 0
				return func() error {
					attempt++
					if attempt < 3 {
						return errors.New("retryable error")
					}
					return nil
				}
			}(),
			shouldRetry:   func(err error) bool { return err.Error() == "retryable error" },
			expectedError: "",
		},
		{
			name:          "non-retryable error stops immediately",
			ctx:           context.Background(),
			cfg:           testCfg,
			operation:     func() error { return errors.New("fatal error") },
			shouldRetry:   func(err error) bool { return false },
			expectedError: fatalErrText,
			exactMatch:    true,
		},
		{
			name:          "max retries exceeded",
			ctx:           context.Background(),
			cfg:           testCfg,
			operation:     func() error { return errors.New("retryable error") },
			shouldRetry:   func(err error) bool { return true },
			expectedError: maxRetriesErrText,
			exactMatch:    true,
		},
		{
			name:          "context canceled",
			ctx:           func() context.Context { ctx, cancel := context.WithCancel(context.Background()); cancel(); return ctx }(),
			cfg:           testCfg,
			operation:     func() error { return errors.New("some error") },
			shouldRetry:   func(err error) bool { return true },
			expectedError: "test_operationに失敗しました: コンテキストタイムアウト/キャンセル: context canceled",
		},
		{
			name: "context timeout",
			ctx: func() context.Context {
				ctx, cancel := context.WithTimeout(context.Background(), 1*time.Millisecond)
				time.Sleep(2 * time.Millisecond) // 確実にタイムアウトさせる
				defer cancel()
				return ctx
			}(),
			cfg:           testCfg,
			operation:     func() error { return errors.New("some error") },
			shouldRetry:   func(err error) bool { return true },
			expectedError: "test_operationに失敗しました: コンテキストタイムアウト/キャンセル: context deadline exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Do(tt.ctx, tt.cfg, opName, tt.operation, tt.shouldRetry)

			if tt.expectedError == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			if tt.exactMatch {
				require.Equal(t, tt.expectedError, err.Error())
			} else {
				// コンテキストエラーは元のエラーをラップしているため、Containsを使用
				require.Contains(t, err.Error(), tt.expectedError)
			}
		})
	}
}

// TestDo_OneShot は、MaxRetries=0 のとき操作が一度だけ実行されることをテストします。
func TestDo_OneShot(t *testing.T) {
	attempts := 0
	op := func() error {
		attempts++
		return errors.New("always fails")
	}

	cfg := Config{MaxRetries: 0, InitialInterval: 1 * time.Millisecond, MaxInterval: 10 * time.Millisecond}
	err := Do(context.Background(), cfg, "one_shot", op, func(err error) bool { return true })

	require.Error(t, err)
	require.Equal(t, 1, attempts, "ワンショットでは操作は一度だけ実行されるべきです")
	require.Contains(t, err.Error(), "最大リトライ回数 (0回)")
}
