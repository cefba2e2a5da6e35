package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shouni/go-url-scan/pkg/config"
	"github.com/shouni/go-url-scan/pkg/httpclient"
	"github.com/shouni/go-url-scan/pkg/page"
	"github.com/shouni/go-url-scan/pkg/processor"
)

// --- グローバル定数 ---

const (
	appName           = "url-scan"
	defaultTimeoutSec = 10 // 秒
	defaultMaxRetries = 0  // ページフェッチはワンショット

	// DefaultOverallTimeout は、クライアントタイムアウトが0の場合の全体タイムアウトです。
	DefaultOverallTimeout = 20 * time.Second
)

// --- グローバル変数とフラグ構造体 ---

// AppFlags は、このアプリケーション固有の永続フラグを保持します。
type AppFlags struct {
	ConfigPath string // --config 設定ファイルのパス
	TimeoutSec int    // --timeout タイムアウト
	MaxRetries int    // --max-retries リトライ回数
	Verbose    bool   // --verbose デバッグログ
}

var Flags AppFlags

var (
	appConfig    config.Config      // 読み込み済みの実行時設定
	logger       zerolog.Logger     // 共有ロガー
	globalClient *httpclient.Client // 共有HTTPクライアント
)

var rootCmd = &cobra.Command{
	Use:               appName,
	Short:             "テキストからのURL抽出、妥当性判定、逐次Webスクレイピングツール",
	Long:              `テキストからのURL抽出（extract）、単一URLのフェッチと解析（fetch）、抽出から逐次フェッチまでの一括実行（scan）、およびRSS/Atomフィードのリンク処理（feed）を実行します。`,
	SilenceUsage:      true,
	PersistentPreRunE: initAppPreRunE,
}

// --- 初期化 ---

// initAppPreRunE は、設定の読み込み・ロガーの構築・共有HTTPクライアントの
// 初期化を行う PersistentPreRunE です。すべてのサブコマンドの実行前に呼ばれます。
func initAppPreRunE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(Flags.ConfigPath)
	if err != nil {
		return fmt.Errorf("設定の読み込みエラー: %w", err)
	}

	// コマンドラインフラグは設定ファイルより優先する
	if cmd.Flags().Changed("timeout") {
		cfg.HTTP.TimeoutSec = Flags.TimeoutSec
	}
	if cmd.Flags().Changed("max-retries") {
		cfg.HTTP.MaxRetries = Flags.MaxRetries
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("設定の検証エラー: %w", err)
	}
	appConfig = cfg

	level := zerolog.InfoLevel
	if Flags.Verbose {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	// 共有クライアントの初期化
	globalClient = httpclient.New(
		appConfig.Timeout(),
		httpclient.WithMaxRetries(uint64(appConfig.HTTP.MaxRetries)),
		httpclient.WithUserAgent(appConfig.HTTP.UserAgent),
	)

	logger.Debug().
		Dur("timeout", appConfig.Timeout()).
		Int("max_retries", appConfig.HTTP.MaxRetries).
		Msg("HTTPクライアントを初期化しました")

	return nil
}

// GetClient は、初期化された共有HTTPクライアントを返します。
func GetClient() *httpclient.Client {
	return globalClient
}

// overallTimeout は、全体処理のタイムアウトを返します。
// クライアントタイムアウトの2倍を基準とし、0の場合はデフォルトを適用します。
func overallTimeout() time.Duration {
	if appConfig.HTTP.TimeoutSec == 0 {
		return DefaultOverallTimeout
	}
	return 2 * appConfig.Timeout()
}

// newProcessor は、共有クライアントから逐次処理パイプラインを組み立てます。
func newProcessor() (*processor.Processor, error) {
	client := GetClient()
	if client == nil {
		return nil, fmt.Errorf("HTTPクライアントが初期化されていません。rootコマンドのPreRunを確認してください")
	}

	extractor, err := page.NewExtractor(client, logger)
	if err != nil {
		return nil, fmt.Errorf("Extractorの初期化エラー: %w", err)
	}

	return processor.New(extractor, logger,
		processor.WithMaxURLs(appConfig.Scan.MaxURLs)), nil
}

// --- エントリポイント ---

// Execute は、rootCmd を実行するメイン関数です。
// エラー発生時は終了コード1でプロセスを終了します。
func Execute() {
	rootCmd.AddCommand(extractCmd, fetchCmd, scanCmd, feedCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&Flags.ConfigPath,
		"config",
		"",
		"設定ファイル (YAML) のパス",
	)
	rootCmd.PersistentFlags().IntVar(
		&Flags.TimeoutSec,
		"timeout",
		defaultTimeoutSec,
		"HTTPリクエストのタイムアウト時間（秒）",
	)
	rootCmd.PersistentFlags().IntVar(
		&Flags.MaxRetries,
		"max-retries",
		defaultMaxRetries,
		"HTTPリクエストのリトライ最大回数",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&Flags.Verbose,
		"verbose", "v",
		false,
		"デバッグログを出力する",
	)
}
