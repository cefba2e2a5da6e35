package cmd

import (
	"fmt"
	"io"
	"os"
)

// readInputText は、処理対象のテキストを決定します。
// --text フラグが最優先、次に --file フラグ、どちらも無ければ標準入力を最後まで読みます。
func readInputText(text, filePath string) (string, error) {
	if text != "" {
		return text, nil
	}

	if filePath != "" {
		raw, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("テキストファイルの読み込みに失敗しました (%s): %w", filePath, err)
		}
		return string(raw), nil
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("標準入力の読み取りエラー: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("処理対象のテキストが入力されていません")
	}
	return string(raw), nil
}
