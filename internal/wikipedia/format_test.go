package wikipedia

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const enSite = "https://en.wikipedia.org"

// markdownShape summarizes how a Markdown renderer sees formatted output
type markdownShape struct {
	strong    []string
	listItems int
	breaks    int
}

func parseMarkdown(t *testing.T, out string) markdownShape {
	t.Helper()
	src := []byte(out)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var shape markdownShape
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Emphasis:
			if node.Level == 2 {
				shape.strong = append(shape.strong, inlineText(node, src))
			}
		case *ast.ListItem:
			shape.listItems++
		case *ast.ThematicBreak:
			shape.breaks++
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return shape
}

func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if txt, ok := c.(*ast.Text); ok {
			sb.Write(txt.Segment.Value(src))
			continue
		}
		sb.WriteString(inlineText(c, src))
	}
	return sb.String()
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`<span class="searchmatch">Go</span> is a language`, "Go is a language"},
		{"plain", "plain"},
		{"a <b>bold</b> &amp; <i>it</i>", "a bold &amp; it"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripTags(tt.in))
	}
}

func TestFormatSearch(t *testing.T) {
	hits := []SearchHit{
		{Title: "Tokyo", Snippet: `<span class="searchmatch">Tokyo</span> is the capital`, Size: 100, WordCount: 10},
		{Title: "Kyoto", Snippet: "", Size: 50, WordCount: 5},
	}

	got := FormatSearch(enSite, hits, 5)

	want := "Wikipedia検索結果 (2件):\n\n" +
		"**Tokyo**\nTokyo is the capital\n記事サイズ: 100文字 | 単語数: 10\nURL: https://en.wikipedia.org/wiki/Tokyo\n" +
		"\n---\n\n" +
		"**Kyoto**\n説明なし\n記事サイズ: 50文字 | 単語数: 5\nURL: https://en.wikipedia.org/wiki/Kyoto\n"
	assert.Equal(t, want, got)

	shape := parseMarkdown(t, got)
	assert.Equal(t, []string{"Tokyo", "Kyoto"}, shape.strong)
	assert.Equal(t, 1, shape.breaks)
}

func TestFormatSearch_CapsAtLimit(t *testing.T) {
	hits := make([]SearchHit, 8)
	for i := range hits {
		hits[i] = SearchHit{Title: fmt.Sprintf("Hit %d", i), Snippet: "x"}
	}

	got := FormatSearch(enSite, hits, 3)

	assert.True(t, strings.HasPrefix(got, "Wikipedia検索結果 (3件):\n\n"))
	shape := parseMarkdown(t, got)
	assert.Len(t, shape.strong, 3)
	assert.Equal(t, 2, shape.breaks)
	assert.NotContains(t, got, "Hit 3")
}

func TestFormatSearch_SnippetOnlyTags(t *testing.T) {
	got := FormatSearch(enSite, []SearchHit{{Title: "T", Snippet: "<br/>"}}, 5)
	assert.Contains(t, got, "**T**\n説明なし\n")
}

func samplePage() *Page {
	return &Page{
		PageID:  42,
		Title:   "Tokyo",
		Touched: "2024-05-01T12:00:00Z",
		Length:  1234,
		Categories: []PageLink{
			{NS: 14, Title: "Category:Cities in Japan"},
		},
		Links:  []PageLink{{NS: 0, Title: "Japan"}},
		Images: []PageLink{{NS: 6, Title: "File:Tokyo.jpg"}},
	}
}

func TestFormatArticle(t *testing.T) {
	got := FormatArticle(enSite, samplePage(), false)

	want := "**Tokyo**\n\n" +
		"記事ID: 42\n" +
		"最終更新: 2024-05-01T12:00:00Z\n" +
		"記事サイズ: 1234文字\n" +
		"URL: https://en.wikipedia.org/wiki/Tokyo\n\n" +
		"**カテゴリ:**\n- Cities in Japan\n\n" +
		"**関連記事 (最初の10件):**\n- Japan\n\n" +
		"**使用画像 (最初の5件):**\n- File:Tokyo.jpg\n\n"
	assert.Equal(t, want, got)

	shape := parseMarkdown(t, got)
	assert.Equal(t, []string{"Tokyo", "カテゴリ:", "関連記事 (最初の10件):", "使用画像 (最初の5件):"}, shape.strong)
	assert.Equal(t, 3, shape.listItems)
}

func TestFormatArticle_OmitsEmptySections(t *testing.T) {
	page := &Page{PageID: 1, Title: "Stub", Touched: "t", Length: 10}

	got := FormatArticle(enSite, page, true)

	assert.Equal(t, "**Stub**\n\n記事ID: 1\n最終更新: t\n記事サイズ: 10文字\nURL: https://en.wikipedia.org/wiki/Stub\n\n", got)
	assert.NotContains(t, got, "カテゴリ")
	assert.NotContains(t, got, "記事内容")
}

func TestFormatArticle_Caps(t *testing.T) {
	page := &Page{Title: "Big"}
	for i := 0; i < 15; i++ {
		page.Categories = append(page.Categories, PageLink{NS: 14, Title: fmt.Sprintf("Category:C%d", i)})
		page.Links = append(page.Links, PageLink{Title: fmt.Sprintf("L%d", i)})
		page.Images = append(page.Images, PageLink{NS: 6, Title: fmt.Sprintf("File:I%d.png", i)})
	}

	got := FormatArticle(enSite, page, false)

	assert.Equal(t, MaxCategories+MaxLinks+MaxImages, parseMarkdown(t, got).listItems)
	assert.Contains(t, got, "- C9\n")
	assert.NotContains(t, got, "- C10\n")
	assert.Contains(t, got, "- L9\n")
	assert.NotContains(t, got, "- L10\n")
	assert.Contains(t, got, "- File:I4.png\n")
	assert.NotContains(t, got, "- File:I5.png\n")
}

func TestFormatArticle_Content(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"short", "短い本文", "短い本文"},
		{"exactly 500", strings.Repeat("あ", 500), strings.Repeat("あ", 500)},
		{"over 500", strings.Repeat("あ", 501), strings.Repeat("あ", 500) + "..."},
		{"ascii over", strings.Repeat("a", 800), strings.Repeat("a", 500) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := tt.content
			page := samplePage()
			page.Revisions = []Revision{{RevisionSlot: RevisionSlot{Star: &content}}}

			got := FormatArticle(enSite, page, true)

			section := "**記事内容 (最初の500文字):**\n"
			idx := strings.Index(got, section)
			require.GreaterOrEqual(t, idx, 0)
			assert.Equal(t, tt.want, got[idx+len(section):])
		})
	}
}

func TestFormatArticle_ContentIgnoredWhenNotRequested(t *testing.T) {
	content := "body"
	page := samplePage()
	page.Revisions = []Revision{{RevisionSlot: RevisionSlot{Star: &content}}}

	assert.NotContains(t, FormatArticle(enSite, page, false), "記事内容")
}

func TestCategoryName(t *testing.T) {
	tests := []struct {
		cat  PageLink
		want string
	}{
		{PageLink{NS: 14, Title: "Category:Cities"}, "Cities"},
		{PageLink{NS: 14, Title: "Kategorie:Stadt"}, "Stadt"},
		{PageLink{NS: 14, Title: "Catégorie:Ville"}, "Ville"},
		{PageLink{NS: 14, Title: "Category:Time: a history"}, "Time: a history"},
		{PageLink{NS: 0, Title: "Plain"}, "Plain"},
		{PageLink{NS: 0, Title: "Not:category"}, "Not:category"},
	}

	for _, tt := range tests {
		t.Run(tt.cat.Title, func(t *testing.T) {
			assert.Equal(t, tt.want, categoryName(tt.cat))
		})
	}
}

func TestFormatRandom(t *testing.T) {
	articles := []RandomArticle{
		{ID: 1, Title: "Alpha"},
		{ID: 2, Title: "Beta Gamma"},
	}

	got := FormatRandom(enSite, articles, 5)

	want := "ランダム記事 (2件):\n\n" +
		"**Alpha**\nURL: https://en.wikipedia.org/wiki/Alpha" +
		"\n\n" +
		"**Beta Gamma**\nURL: https://en.wikipedia.org/wiki/Beta%20Gamma"
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"Alpha", "Beta Gamma"}, parseMarkdown(t, got).strong)
}

func TestFormatRandom_CapsAtCount(t *testing.T) {
	articles := []RandomArticle{{Title: "A"}, {Title: "B"}, {Title: "C"}}
	got := FormatRandom(enSite, articles, 2)
	assert.True(t, strings.HasPrefix(got, "ランダム記事 (2件):"))
	assert.NotContains(t, got, "**C**")
}

func TestTruncateChars(t *testing.T) {
	assert.Equal(t, "abc", truncateChars("abc", 3))
	assert.Equal(t, "ab...", truncateChars("abc", 2))
	assert.Equal(t, "日本...", truncateChars("日本語", 2))
	assert.Equal(t, "", truncateChars("", 5))
}

func TestNotFoundTexts(t *testing.T) {
	assert.Equal(t, `検索結果が見つかりませんでした: "xyz"`, NoSearchResultsText("xyz"))
	assert.Equal(t, `記事が見つかりませんでした: "存在しない"`, ArticleNotFoundText("存在しない"))
	assert.Equal(t, "ランダム記事を取得できませんでした", NoRandomArticlesText)
}
