package types

import "fmt"

// FetchStatus は、1回のフェッチ試行の最終状態を表します。
type FetchStatus string

const (
	// StatusSuccess は、HTTP 200 を受信し解析まで完了した状態です。
	StatusSuccess FetchStatus = "success"
	// StatusError は、HTTPエラー・通信エラーなど、何らかの失敗で終了した状態です。
	StatusError FetchStatus = "error"
)

// FetchResult は、1つのURLに対するフェッチ試行の結果レコードです。
// フェッチは必ずこのレコードを生成します。失敗が呼び出し元に
// エラーとして伝播することはありません。生成後は変更されません。
type FetchResult struct {
	URL           string      // 処理対象のURL
	Status        FetchStatus // success または error
	Title         string      // ページタイトル（successの場合のみ有効）
	ContentLength int         // レスポンスボディの長さ（successの場合のみ有効）
	Lines         []string    // 可視テキストの行（トリム済み・空行除去済み）
	Error         string      // 失敗理由（errorの場合のみ非空）
}

// IsSuccess は、結果が成功であるかを返します。
func (r FetchResult) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// Summary は、結果の1行サマリを返します。
func (r FetchResult) Summary() string {
	if r.IsSuccess() {
		return fmt.Sprintf("✅ %s - %s (%d 文字)", r.URL, r.Title, r.ContentLength)
	}
	return fmt.Sprintf("❌ %s - %s", r.URL, r.Error)
}

// Report は、1回の処理実行に対する結果の集約です。
// 単一のシーケンシャルなタスクのみが Results に追記するため、排他制御は不要です。
type Report struct {
	ID           string        // 実行ごとに付与される一意なID
	Results      []FetchResult // フェッチ試行の結果（処理順）
	SuccessCount int
	ErrorCount   int
}

// Append は、結果を追加しカウンタを更新します。
func (rep *Report) Append(res FetchResult) {
	rep.Results = append(rep.Results, res)
	if res.IsSuccess() {
		rep.SuccessCount++
	} else {
		rep.ErrorCount++
	}
}

// Succeeded は、実行全体の成功フラグを返します。
// 1件でもエラー結果があれば false です（結果ゼロ件は成功とみなします）。
func (rep *Report) Succeeded() bool {
	return rep.ErrorCount == 0
}
