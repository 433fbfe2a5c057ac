package wikipedia

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseQuery(t *testing.T, raw string) (*url.URL, url.Values) {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u, u.Query()
}

func TestSiteRoot(t *testing.T) {
	tests := []struct {
		name     string
		template string
		lang     string
		want     string
	}{
		{"default ja", DefaultSiteURL, "ja", "https://ja.wikipedia.org"},
		{"default en", DefaultSiteURL, "en", "https://en.wikipedia.org"},
		{"trailing slash", "https://{lang}.wikipedia.org/", "de", "https://de.wikipedia.org"},
		{"no placeholder", "http://127.0.0.1:8080", "fr", "http://127.0.0.1:8080"},
		{"path placeholder", "http://mirror.local/{lang}", "fr", "http://mirror.local/fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, siteRoot(tt.template, tt.lang))
		})
	}
}

func TestBuildSearchURL(t *testing.T) {
	raw := buildSearchURL("https://en.wikipedia.org", "Go & Rust", 3)
	u, q := parseQuery(t, raw)

	assert.Equal(t, "en.wikipedia.org", u.Host)
	assert.Equal(t, "/w/api.php", u.Path)
	assert.Equal(t, "json", q.Get("format"))
	assert.Equal(t, "query", q.Get("action"))
	assert.Equal(t, "search", q.Get("list"))
	assert.Equal(t, "Go & Rust", q.Get("srsearch"))
	assert.Equal(t, "3", q.Get("srlimit"))
	assert.Equal(t, "snippet|size|wordcount|timestamp", q.Get("srprop"))
	assert.NotContains(t, u.RawQuery, "Go & Rust", "query text must be percent-encoded")
}

func TestBuildSearchURL_Unicode(t *testing.T) {
	_, q := parseQuery(t, buildSearchURL("https://ja.wikipedia.org", "東京タワー", 5))
	assert.Equal(t, "東京タワー", q.Get("srsearch"))
}

func TestBuildArticleURL(t *testing.T) {
	t.Run("without content", func(t *testing.T) {
		_, q := parseQuery(t, buildArticleURL("https://ja.wikipedia.org", "東京", false))
		assert.Equal(t, "info|categories|links|images", q.Get("prop"))
		assert.Equal(t, "東京", q.Get("titles"))
		assert.False(t, q.Has("rvprop"))
	})

	t.Run("with content", func(t *testing.T) {
		_, q := parseQuery(t, buildArticleURL("https://ja.wikipedia.org", "東京", true))
		assert.Equal(t, "info|categories|links|images|revisions", q.Get("prop"))
		assert.Equal(t, "content", q.Get("rvprop"))
	})
}

func TestBuildRandomURL(t *testing.T) {
	_, q := parseQuery(t, buildRandomURL("https://ja.wikipedia.org", 7))
	assert.Equal(t, "random", q.Get("list"))
	assert.Equal(t, "0", q.Get("rnnamespace"))
	assert.Equal(t, "7", q.Get("rnlimit"))
}

func TestArticleURL(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Go", "https://en.wikipedia.org/wiki/Go"},
		{"Go (programming language)", "https://en.wikipedia.org/wiki/Go%20(programming%20language)"},
		{"C++", "https://en.wikipedia.org/wiki/C%2B%2B"},
		{"AC/DC", "https://en.wikipedia.org/wiki/AC%2FDC"},
		{"Rock 'n' Roll!", "https://en.wikipedia.org/wiki/Rock%20'n'%20Roll!"},
		{"100%", "https://en.wikipedia.org/wiki/100%25"},
		{"東京", "https://en.wikipedia.org/wiki/%E6%9D%B1%E4%BA%AC"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ArticleURL("https://en.wikipedia.org", tt.title))
		})
	}
}
