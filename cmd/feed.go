package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-url-scan/pkg/feed"
	"github.com/shouni/go-url-scan/pkg/httpclient"
	"github.com/shouni/go-url-scan/pkg/retry"
	"github.com/shouni/go-url-scan/pkg/urltext"
)

// フィードURLを保持するフラグ変数
var feedURL string

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "RSS/Atomフィードを取得・解析し、記事リンクを逐次フェッチして集計します",
	Long:  `指定されたURLからRSSまたはAtomフィードを取得し、各記事のリンクを妥当性判定にかけた上で、1件ずつ順番にフェッチして結果を集計します。`,
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. URLのスキーム補完
		processedURL, err := ensureScheme(feedURL)
		if err != nil {
			return fmt.Errorf("URLスキームの処理エラー: %w", err)
		}

		// 2. フィード取得用クライアントの初期化
		// フィードの取得は冪等なため、設定でリトライが無効でもデフォルト回数のリトライを適用する
		retries := uint64(appConfig.HTTP.MaxRetries)
		if retries == 0 {
			retries = retry.DefaultMaxRetries
		}
		feedClient := httpclient.New(
			appConfig.Timeout(),
			httpclient.WithMaxRetries(retries),
			httpclient.WithUserAgent(appConfig.HTTP.UserAgent),
		)

		parser, err := feed.NewParser(feedClient)
		if err != nil {
			return fmt.Errorf("Parserの初期化エラー: %w", err)
		}

		// 3. 全体処理のコンテキストを設定
		ctx, cancel := context.WithTimeout(context.Background(), overallTimeout())
		defer cancel()

		logger.Debug().Str("url", processedURL).Msg("フィードの取得を開始します")

		// 4. フィードの取得とパース
		parsedFeed, err := parser.FetchAndParse(ctx, processedURL)
		if err != nil {
			return fmt.Errorf("フィード解析パイプラインの実行エラー: %w", err)
		}

		fmt.Println("--- フィード解析結果 ---")
		fmt.Printf("フィードタイトル: %s\n", parsedFeed.Title)
		fmt.Printf("合計記事数: %d\n", len(parsedFeed.Items))

		// 5. 記事リンクの抽出と妥当性判定
		links := feed.GetAllLinks(feed.NewFeedAdapter(parsedFeed))
		valid := urltext.FilterValid(links)
		logger.Debug().
			Int("links", len(links)).
			Int("valid", len(valid)).
			Msg("フィードからリンクを抽出しました")

		if len(valid) == 0 {
			fmt.Println("処理対象となる妥当なリンクはありませんでした")
			return nil
		}

		// 6. 逐次フェッチの実行
		proc, err := newProcessor()
		if err != nil {
			return err
		}
		report := proc.ProcessURLs(ctx, valid)

		// 7. 結果の出力と終了コードの決定
		printReport(report)
		if !report.Succeeded() {
			return fmt.Errorf("フィードリンクの処理は失敗で終了しました (成功 %d 件, 失敗 %d 件)",
				report.SuccessCount, report.ErrorCount)
		}
		return nil
	},
}

func init() {
	feedCmd.Flags().StringVarP(&feedURL, "url", "u", "", "解析対象のフィード (RSS/Atom) URL")

	// URLフラグを必須にする
	feedCmd.MarkFlagRequired("url")
}
