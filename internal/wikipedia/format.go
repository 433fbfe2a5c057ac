package wikipedia

import (
	"fmt"
	"regexp"
	"strings"
)

// Rendering limits for article details
const (
	MaxCategories  = 10
	MaxLinks       = 10
	MaxImages      = 5
	MaxContentChar = 500
)

const (
	noSnippet       = "説明なし"
	ellipsis        = "..."
	searchSeparator = "\n---\n\n"
	categoryPrefix  = "Category:"
	categoryNS      = 14
)

// htmlTagRegex strips markup from search snippets
var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// stripTags removes every <...> sequence
func stripTags(s string) string {
	return htmlTagRegex.ReplaceAllString(s, "")
}

// NoSearchResultsText is returned when a search has no matches
func NoSearchResultsText(query string) string {
	return fmt.Sprintf("検索結果が見つかりませんでした: \"%s\"", query)
}

// ArticleNotFoundText is returned for pages the API marks missing
func ArticleNotFoundText(title string) string {
	return fmt.Sprintf("記事が見つかりませんでした: \"%s\"", title)
}

// NoRandomArticlesText is returned when random sampling yields nothing
const NoRandomArticlesText = "ランダム記事を取得できませんでした"

// FormatSearch renders search hits as paragraphs separated by "---" lines.
// At most limit hits are rendered.
func FormatSearch(site string, hits []SearchHit, limit int) string {
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	paragraphs := make([]string, 0, len(hits))
	for _, hit := range hits {
		snippet := stripTags(hit.Snippet)
		if snippet == "" {
			snippet = noSnippet
		}
		paragraphs = append(paragraphs, fmt.Sprintf("**%s**\n%s\n記事サイズ: %d文字 | 単語数: %d\nURL: %s\n",
			hit.Title, snippet, hit.Size, hit.WordCount, ArticleURL(site, hit.Title)))
	}

	return fmt.Sprintf("Wikipedia検索結果 (%d件):\n\n%s", len(paragraphs), strings.Join(paragraphs, searchSeparator))
}

// FormatArticle renders page details. Sections without data are omitted.
func FormatArticle(site string, page *Page, includeContent bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**%s**\n\n", page.Title)
	fmt.Fprintf(&sb, "記事ID: %d\n", page.PageID)
	fmt.Fprintf(&sb, "最終更新: %s\n", page.Touched)
	fmt.Fprintf(&sb, "記事サイズ: %d文字\n", page.Length)
	fmt.Fprintf(&sb, "URL: %s\n\n", ArticleURL(site, page.Title))

	if len(page.Categories) > 0 {
		sb.WriteString("**カテゴリ:**\n")
		for _, cat := range head(page.Categories, MaxCategories) {
			fmt.Fprintf(&sb, "- %s\n", categoryName(cat))
		}
		sb.WriteString("\n")
	}

	if len(page.Links) > 0 {
		fmt.Fprintf(&sb, "**関連記事 (最初の%d件):**\n", MaxLinks)
		for _, link := range head(page.Links, MaxLinks) {
			fmt.Fprintf(&sb, "- %s\n", link.Title)
		}
		sb.WriteString("\n")
	}

	if len(page.Images) > 0 {
		fmt.Fprintf(&sb, "**使用画像 (最初の%d件):**\n", MaxImages)
		for _, img := range head(page.Images, MaxImages) {
			fmt.Fprintf(&sb, "- %s\n", img.Title)
		}
		sb.WriteString("\n")
	}

	if includeContent && len(page.Revisions) > 0 {
		if text, ok := page.Revisions[0].Text(); ok {
			fmt.Fprintf(&sb, "**記事内容 (最初の%d文字):**\n", MaxContentChar)
			sb.WriteString(truncateChars(text, MaxContentChar))
		}
	}

	return sb.String()
}

// FormatRandom renders sampled articles as title/URL pairs separated by blank lines.
// At most count articles are rendered.
func FormatRandom(site string, articles []RandomArticle, count int) string {
	if count > 0 && len(articles) > count {
		articles = articles[:count]
	}

	entries := make([]string, 0, len(articles))
	for _, article := range articles {
		entries = append(entries, fmt.Sprintf("**%s**\nURL: %s", article.Title, ArticleURL(site, article.Title)))
	}

	return fmt.Sprintf("ランダム記事 (%d件):\n\n%s", len(entries), strings.Join(entries, "\n\n"))
}

// categoryName drops the namespace prefix from a category title.
// Localized prefixes (Kategorie:, Catégorie:) are dropped for namespace-14 entries.
func categoryName(cat PageLink) string {
	if name, ok := strings.CutPrefix(cat.Title, categoryPrefix); ok {
		return name
	}
	if cat.NS == categoryNS {
		if _, name, ok := strings.Cut(cat.Title, ":"); ok {
			return name
		}
	}
	return cat.Title
}

// truncateChars keeps the first n code points and appends an ellipsis when text was cut
func truncateChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + ellipsis
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
