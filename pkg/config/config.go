// Package config は、YAMLファイルからの実行時設定の読み込みを提供します。
// 設定ファイルは任意であり、省略された項目にはデフォルト値が適用されます。
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shouni/go-url-scan/pkg/httpclient"
	"github.com/shouni/go-url-scan/pkg/processor"
)

const (
	defaultTimeoutSec = 10
	defaultMaxRetries = 0
)

// Config は、YAMLから読み込まれる実行時設定のルートです。
type Config struct {
	HTTP HTTPConfig `yaml:"http"`
	Scan ScanConfig `yaml:"scan"`
}

// HTTPConfig は、HTTPクライアントの設定です。
type HTTPConfig struct {
	TimeoutSec int    `yaml:"timeout_sec"`
	MaxRetries int    `yaml:"max_retries"`
	UserAgent  string `yaml:"user_agent"`
}

// ScanConfig は、処理パイプラインの設定です。
type ScanConfig struct {
	MaxURLs int `yaml:"max_urls"`
}

// DefaultConfig は、すべての項目にデフォルト値を適用した設定を返します。
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			TimeoutSec: defaultTimeoutSec,
			MaxRetries: defaultMaxRetries,
			UserAgent:  httpclient.UserAgent,
		},
		Scan: ScanConfig{
			MaxURLs: processor.DefaultMaxURLs,
		},
	}
}

// Parse は、YAMLバイト列をパースし、省略項目へデフォルトを適用した設定を返します。
func Parse(raw []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("設定ファイルのパースに失敗しました: %w", err)
	}

	// ゼロ値で上書きされた項目にはデフォルトを再適用する
	if cfg.HTTP.TimeoutSec == 0 {
		cfg.HTTP.TimeoutSec = defaultTimeoutSec
	}
	if cfg.HTTP.UserAgent == "" {
		cfg.HTTP.UserAgent = httpclient.UserAgent
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load は、指定されたパスの設定ファイルを読み込みます。
// パスが空文字列の場合は、デフォルト設定をそのまま返します。
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("設定ファイルの読み込みに失敗しました (%s): %w", path, err)
	}
	return Parse(raw)
}

// Validate は、設定値の妥当性を検証します。
func (c Config) Validate() error {
	if c.HTTP.TimeoutSec < 0 {
		return fmt.Errorf("http.timeout_sec は 0 以上である必要があります: %d", c.HTTP.TimeoutSec)
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries は 0 以上である必要があります: %d", c.HTTP.MaxRetries)
	}
	if c.Scan.MaxURLs < 0 {
		return fmt.Errorf("scan.max_urls は 0 以上である必要があります: %d", c.Scan.MaxURLs)
	}
	return nil
}

// Timeout は、HTTPタイムアウトを time.Duration として返します。
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSec) * time.Second
}
