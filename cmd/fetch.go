package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-url-scan/pkg/page"
	"github.com/shouni/go-url-scan/pkg/urltext"
)

var fetchURL string

// previewLineCount は、fetchコマンドで表示する可視テキストの最大行数です。
const previewLineCount = 10

var fetchCmd = &cobra.Command{
	Use:   "fetch [URL]",
	Short: "単一のURLをフェッチし、タイトルと可視テキストのプレビューを表示します",
	Long:  `指定された1つのURLをHTTP GETでフェッチし、ページタイトル・コンテンツ長・可視テキストの先頭行を表示します。フェッチはリトライなしのワンショットです。`,
	Args:  cobra.MaximumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 処理対象URLの決定（フラグ優先、次に位置引数）
		urlToProcess := fetchURL
		if urlToProcess == "" && len(args) > 0 {
			urlToProcess = args[0]
		}
		if urlToProcess == "" {
			return fmt.Errorf("フェッチ対象のURLが指定されていません")
		}

		// 2. URLのスキーム補完と妥当性判定
		processedURL, err := ensureScheme(urlToProcess)
		if err != nil {
			return fmt.Errorf("URLスキームの処理エラー: %w", err)
		}
		if !urltext.IsValid(processedURL) {
			return fmt.Errorf("妥当性判定で拒否されたURLです: %s", processedURL)
		}

		// 3. 依存性の初期化
		client := GetClient()
		if client == nil {
			return fmt.Errorf("HTTPクライアントが初期化されていません。rootコマンドのPreRunを確認してください")
		}
		extractor, err := page.NewExtractor(client, logger)
		if err != nil {
			return fmt.Errorf("Extractorの初期化エラー: %w", err)
		}

		// 4. フェッチと抽出の実行
		ctx, cancel := context.WithTimeout(context.Background(), overallTimeout())
		defer cancel()

		logger.Debug().Str("url", processedURL).Msg("フェッチを開始します")
		result := extractor.FetchAndExtract(ctx, processedURL)

		// 5. 結果の出力
		if !result.IsSuccess() {
			fmt.Printf("❌ %s\n", result.URL)
			fmt.Printf("   エラー: %s\n", result.Error)
			return fmt.Errorf("フェッチに失敗しました (URL: %s): %s", result.URL, result.Error)
		}

		fmt.Printf("✅ %s\n", result.URL)
		fmt.Printf("タイトル: %s\n", result.Title)
		fmt.Printf("コンテンツ長: %d 文字\n", result.ContentLength)

		preview := result.Lines
		if len(preview) > previewLineCount {
			preview = preview[:previewLineCount]
		}
		if len(preview) > 0 {
			fmt.Println("--- 可視テキストのプレビュー ---")
			for _, line := range preview {
				fmt.Println(line)
			}
			fmt.Println("-------------------------------")
		}

		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchURL, "url", "u", "", "フェッチ対象のURL")
}
