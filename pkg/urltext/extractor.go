// Package urltext は、自由テキストからのURL抽出と、
// 抽出された候補URLに対する妥当性判定を提供します。
// どちらもネットワークアクセスを行わない純粋な文字列操作です。
package urltext

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// urlPattern は、URL候補を検出する字句パターンです。
// スキーム (http/https) のみ大文字小文字を区別せず、末尾が文末記号
// （ピリオド・カンマ等）で終わらないように最終1文字を別クラスで縛ります。
// 句読点を正当に含むURLを切り詰める可能性があるのは既知の制限です。
var urlPattern = regexp.MustCompile(
	`(?i:https?)://[^\s<>"'{}|\\^` + "`" + `\[\]]+[^\s<>"'{}|\\^` + "`" + `\[\].,;!?)]`)

// blockedHostParts は、妥当性判定で拒否するネットワークロケーションの部分文字列です。
// "10." と "172." は部分一致による粗い判定であり、正確なRFC1918の
// CIDR判定ではありません。この不正確さは仕様として維持します。
var blockedHostParts = []string{
	"localhost",
	"127.0.0.1",
	"192.168.",
	"10.",
	"172.",
}

// Extract は、テキストからURL候補を抽出し、重複を除去して返します。
// 候補が存在しない場合は空のスライスを返します。
// 集合としての意味論のため、返却順に意味はありません（出力の安定性のためソート済み）。
func Extract(text string) []string {
	matches := urlPattern.FindAllString(text, -1)

	seen := make(map[string]struct{}, len(matches))
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		urls = append(urls, m)
	}

	sort.Strings(urls)
	return urls
}

// IsValid は、URL候補が処理対象として妥当かを判定します。
// 妥当条件: スキームが http または https であり、ネットワークロケーションが
// 非空であり、かつ拒否対象の部分文字列を含まないこと。
// パース失敗は常に false になります（呼び出し元へエラーは返しません）。
func IsValid(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	host := strings.ToLower(parsed.Host)
	if host == "" {
		return false
	}

	for _, blocked := range blockedHostParts {
		if strings.Contains(host, blocked) {
			return false
		}
	}
	return true
}

// FilterValid は、候補URLのうち IsValid を満たすものだけを順序を保って返します。
func FilterValid(urls []string) []string {
	valid := make([]string, 0, len(urls))
	for _, u := range urls {
		if IsValid(u) {
			valid = append(valid, u)
		}
	}
	return valid
}
