package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-url-scan/pkg/types"
)

// コマンドラインフラグ変数を定義
var (
	scanText string // --text フラグで受け取るテキスト
	scanFile string // --file フラグで受け取るテキストファイルのパス
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "テキストからURLを抽出し、妥当なURLを1件ずつ順番にフェッチして集計します",
	Long:  `--text フラグ、--file フラグ、または標準入力からテキストを受け取り、URL抽出 → 妥当性判定 → 逐次フェッチ → 結果集計の一連のパイプラインを実行します。1件でもエラーがあれば終了コードは1になります。`,
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 処理対象テキストの決定
		text, err := readInputText(scanText, scanFile)
		if err != nil {
			return err
		}

		// 2. 依存性の初期化
		proc, err := newProcessor()
		if err != nil {
			return err
		}

		// 3. 全体処理のコンテキストを設定
		ctx, cancel := context.WithTimeout(context.Background(), overallTimeout())
		defer cancel()

		// 4. メインロジックの実行
		report := proc.ProcessText(ctx, text)

		// 5. 結果の出力と終了コードの決定
		printReport(report)
		if !report.Succeeded() {
			return fmt.Errorf("スキャンは失敗で終了しました (成功 %d 件, 失敗 %d 件)",
				report.SuccessCount, report.ErrorCount)
		}
		return nil
	},
}

// printReport は、レポートの内容を人間向けのサマリとして出力します。
// この出力は情報提供のみを目的とし、安定したインターフェースではありません。
func printReport(report *types.Report) {
	fmt.Println("--- URL処理結果 ---")
	fmt.Printf("レポートID: %s\n", report.ID)

	if len(report.Results) == 0 {
		fmt.Println("処理対象のURLはありませんでした")
	}
	for i, res := range report.Results {
		fmt.Printf("[%d] %s\n", i+1, res.Summary())
	}

	fmt.Println("-------------------")
	fmt.Printf("完了: 成功 %d 件, 失敗 %d 件\n", report.SuccessCount, report.ErrorCount)
}

func init() {
	scanCmd.Flags().StringVarP(&scanText, "text", "t", "", "処理対象のテキスト")
	scanCmd.Flags().StringVarP(&scanFile, "file", "f", "", "処理対象のテキストファイルのパス")
}
