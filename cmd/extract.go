package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-url-scan/pkg/urltext"
)

// コマンドラインフラグ変数を定義
var (
	extractText string // --text フラグで受け取るテキスト
	extractFile string // --file フラグで受け取るテキストファイルのパス
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "テキストからURLを抽出し、妥当性判定の結果とともに表示します",
	Long:  `--text フラグ、--file フラグ、または標準入力からテキストを受け取り、URL候補の抽出と妥当性判定を行います。ネットワークアクセスは行いません。`,
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 処理対象テキストの決定
		text, err := readInputText(extractText, extractFile)
		if err != nil {
			return err
		}

		// 2. 抽出と妥当性判定の実行
		candidates := urltext.Extract(text)
		logger.Debug().Int("candidates", len(candidates)).Msg("URL候補を抽出しました")

		// 3. 結果の出力
		fmt.Println("--- URL抽出結果 ---")
		if len(candidates) == 0 {
			fmt.Println("URL候補は見つかりませんでした")
			return nil
		}

		validCount := 0
		for _, u := range candidates {
			if urltext.IsValid(u) {
				validCount++
				fmt.Printf("✅ %s\n", u)
			} else {
				fmt.Printf("❌ %s (妥当性判定で拒否)\n", u)
			}
		}
		fmt.Println("-------------------")
		fmt.Printf("候補 %d 件中、妥当 %d 件\n", len(candidates), validCount)

		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractText, "text", "t", "", "抽出対象のテキスト")
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "抽出対象のテキストファイルのパス")
}
