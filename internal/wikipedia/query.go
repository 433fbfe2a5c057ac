package wikipedia

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultSiteURL is the site root template; {lang} becomes the language subdomain.
const DefaultSiteURL = "https://{lang}.wikipedia.org"

// Query property sets requested from the API
const (
	searchProps  = "snippet|size|wordcount|timestamp"
	articleProps = "info|categories|links|images"
)

// mainNamespace restricts random sampling to articles
const mainNamespace = "0"

// siteRoot resolves the site template for a language
func siteRoot(siteURL, lang string) string {
	return strings.TrimRight(strings.ReplaceAll(siteURL, "{lang}", lang), "/")
}

// apiURL joins the site root, the action API path and the query string
func apiURL(site string, params url.Values) string {
	params.Set("format", "json")
	params.Set("action", "query")
	return site + "/w/api.php?" + params.Encode()
}

// ArticleURL is the reader-facing URL for a title
func ArticleURL(site, title string) string {
	return site + "/wiki/" + encodeComponent(title)
}

// componentUnescaper restores the characters encodeURIComponent leaves as is
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes text for use in a path segment.
// Spaces become %20 rather than "+".
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// buildSearchURL builds the list=search request
func buildSearchURL(site, query string, limit int) string {
	params := url.Values{}
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(limit))
	params.Set("srprop", searchProps)
	return apiURL(site, params)
}

// buildArticleURL builds the single-title page lookup
func buildArticleURL(site, title string, includeContent bool) string {
	params := url.Values{}
	props := articleProps
	if includeContent {
		props += "|revisions"
		params.Set("rvprop", "content")
	}
	params.Set("prop", props)
	params.Set("titles", title)
	return apiURL(site, params)
}

// buildRandomURL builds the list=random request
func buildRandomURL(site string, count int) string {
	params := url.Values{}
	params.Set("list", "random")
	params.Set("rnnamespace", mainNamespace)
	params.Set("rnlimit", strconv.Itoa(count))
	return apiURL(site, params)
}
