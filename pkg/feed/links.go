package feed

import (
	"github.com/mmcdole/gofeed"
)

// LinkSource は、リンクのリストを提供できる任意の型を表します。
// このインターフェースが、フィード固有の構造と処理パイプラインの境界線になります。
type LinkSource interface {
	GetLinks() []string
}

// FeedAdapter は、gofeed.Feed を LinkSource に適合させるアダプターです。
// gofeed.Feed の具体的な構造への依存を内部に閉じ込めます。
type FeedAdapter struct {
	*gofeed.Feed
}

// NewFeedAdapter は、gofeed.Feed から新しいアダプターを作成します。
func NewFeedAdapter(feed *gofeed.Feed) *FeedAdapter {
	return &FeedAdapter{Feed: feed}
}

// GetLinks は、LinkSource インターフェースを満たし、フィードの各アイテムから
// リンクを抽出します。空のリンクは無視されます。
func (a *FeedAdapter) GetLinks() []string {
	if a.Feed == nil || len(a.Items) == 0 {
		return []string{}
	}

	urls := make([]string, 0, len(a.Items))
	for _, item := range a.Items {
		if item.Link != "" {
			urls = append(urls, item.Link)
		}
	}
	return urls
}

// GetAllLinks は、LinkSource からリンクを抽出する汎用関数です。
// nil ソースは空のスライスとして扱われます。
func GetAllLinks(source LinkSource) []string {
	if source == nil {
		return []string{}
	}
	return source.GetLinks()
}
