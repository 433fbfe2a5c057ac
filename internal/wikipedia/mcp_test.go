package wikipedia

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/olgasafonova/wikipedia-mcp-server/internal/errors"
)

func TestSearchMCP(t *testing.T) {
	api := &fakeAPI{body: `{"query":{"search":[{"ns":0,"title":"Go","size":10,"wordcount":2,"snippet":"<b>Go</b> lang"}]}}`}
	c, base := newTestClient(t, api)

	out, err := c.SearchMCP(context.Background(), SearchArgs{Query: "Go", Lang: "en"})

	require.NoError(t, err)
	want := "Wikipedia検索結果 (1件):\n\n**Go**\nGo lang\n記事サイズ: 10文字 | 単語数: 2\nURL: " + base + "/en/wiki/Go\n"
	assert.Equal(t, want, out)
}

func TestSearchMCP_Defaults(t *testing.T) {
	api := &fakeAPI{body: `{"query":{"search":[]}}`}
	c, _ := newTestClient(t, api)

	out, err := c.SearchMCP(context.Background(), SearchArgs{Query: "東京"})

	require.NoError(t, err)
	assert.Equal(t, `検索結果が見つかりませんでした: "東京"`, out)
	assert.Equal(t, "/ja/w/api.php", api.last.URL.Path)
	assert.Equal(t, "5", api.last.URL.Query().Get("srlimit"))
}

func TestSearchMCP_ValidationSkipsRequest(t *testing.T) {
	api := &fakeAPI{body: `{}`}
	c, _ := newTestClient(t, api)

	_, err := c.SearchMCP(context.Background(), SearchArgs{Query: ""})
	require.Error(t, err)
	assert.True(t, apierrors.IsValidation(err))

	_, err = c.SearchMCP(context.Background(), SearchArgs{Query: "x", Lang: "evil.com/"})
	require.Error(t, err)

	assert.Zero(t, api.calls)
}

func TestGetArticleMCP(t *testing.T) {
	body := `{"query":{"pages":{"7":{"pageid":7,"ns":0,"title":"Go","touched":"2024-01-01T00:00:00Z","length":300,
		"categories":[{"ns":14,"title":"Category:Languages"}],
		"revisions":[{"slots":{"main":{"contentmodel":"wikitext","*":"'''Go''' is a language."}}}]}}}}`
	c, base := newTestClient(t, &fakeAPI{body: body})

	out, err := c.GetArticleMCP(context.Background(), GetArticleArgs{Title: "Go", Lang: "en", IncludeContent: true})

	require.NoError(t, err)
	want := "**Go**\n\n記事ID: 7\n最終更新: 2024-01-01T00:00:00Z\n記事サイズ: 300文字\nURL: " + base + "/en/wiki/Go\n\n" +
		"**カテゴリ:**\n- Languages\n\n" +
		"**記事内容 (最初の500文字):**\n'''Go''' is a language."
	assert.Equal(t, want, out)
}

func TestGetArticleMCP_Missing(t *testing.T) {
	c, _ := newTestClient(t, &fakeAPI{body: `{"query":{"pages":{"-1":{"ns":0,"title":"Zzz","missing":true}}}}`})

	out, err := c.GetArticleMCP(context.Background(), GetArticleArgs{Title: "Zzz"})

	require.NoError(t, err)
	assert.Equal(t, `記事が見つかりませんでした: "Zzz"`, out)
}

func TestGetArticleMCP_NoPages(t *testing.T) {
	c, _ := newTestClient(t, &fakeAPI{body: `{"batchcomplete":""}`})

	_, err := c.GetArticleMCP(context.Background(), GetArticleArgs{Title: "Zzz"})

	require.Error(t, err)
	assert.True(t, apierrors.IsNotFound(err))
}

func TestGetRandomMCP(t *testing.T) {
	api := &fakeAPI{body: `{"query":{"random":[{"id":1,"ns":0,"title":"A"},{"id":2,"ns":0,"title":"B"}]}}`}
	c, base := newTestClient(t, api)

	out, err := c.GetRandomMCP(context.Background(), RandomArgs{Count: 2})

	require.NoError(t, err)
	assert.Equal(t, "ランダム記事 (2件):\n\n**A**\nURL: "+base+"/ja/wiki/A\n\n**B**\nURL: "+base+"/ja/wiki/B", out)
	assert.Equal(t, "2", api.last.URL.Query().Get("rnlimit"))
}

func TestGetRandomMCP_Empty(t *testing.T) {
	c, _ := newTestClient(t, &fakeAPI{body: `{"query":{"random":[]}}`})

	out, err := c.GetRandomMCP(context.Background(), RandomArgs{})

	require.NoError(t, err)
	assert.Equal(t, NoRandomArticlesText, out)
}

func TestMCP_UpstreamFailure(t *testing.T) {
	c, _ := newTestClient(t, &fakeAPI{status: http.StatusInternalServerError, body: "oops"})
	ctx := context.Background()

	_, err := c.SearchMCP(ctx, SearchArgs{Query: "x"})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Wikipedia API request failed: 500"))

	_, err = c.GetArticleMCP(ctx, GetArticleArgs{Title: "x"})
	assert.True(t, apierrors.IsHTTP(err))

	_, err = c.GetRandomMCP(ctx, RandomArgs{})
	assert.True(t, apierrors.IsHTTP(err))
}
