package tools

import (
	"slices"

	"github.com/olgasafonova/wikipedia-mcp-server/internal/wikipedia"
)

// toolTable holds every tool specification for the Wikipedia MCP server.
// It is fixed at build time; callers outside the package get copies from AllTools.
// Tool descriptions follow a structured format for LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var toolTable = []ToolSpec{
	{
		Name:          "search_wikipedia",
		Method:        "Search",
		Title:         "Search Wikipedia",
		Category:      "search",
		FailurePhrase: wikipedia.SearchFailurePhrase,
		Description: `Search Wikipedia articles by keyword（キーワードでWikipedia記事を検索する）

USE WHEN: User asks "find articles about X", "what does Wikipedia have on X", or doesn't know the exact article title.

NOT FOR: Reading a known article (use get_wikipedia_article instead).

PARAMETERS:
- query: Search keyword (required)
- lang: Language code (default "ja")
- limit: Number of search results (default 5)

RETURNS: Titles, snippets, article size, word count and URL per hit.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:          "get_wikipedia_article",
		Method:        "GetArticle",
		Title:         "Get Wikipedia Article",
		Category:      "read",
		FailurePhrase: wikipedia.ArticleFailurePhrase,
		Description: `Get detailed information about a Wikipedia article（Wikipedia記事の詳細情報を取得する）

USE WHEN: User names a specific article, asks "tell me about the X article", or wants its categories, links or images.

NOT FOR: Finding articles by keyword (use search_wikipedia instead).

PARAMETERS:
- title: Article title (required)
- lang: Language code (default "ja")
- include_content: Include the first 500 characters of wikitext (default false)

RETURNS: Page id, last update, size, URL, up to 10 categories, 10 links and 5 images.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:          "get_random_wikipedia",
		Method:        "GetRandom",
		Title:         "Get Random Wikipedia Articles",
		Category:      "discovery",
		FailurePhrase: wikipedia.RandomFailurePhrase,
		Description: `Get random Wikipedia articles（ランダムなWikipedia記事を取得する）

USE WHEN: User asks for "a random article", "surprise me", or wants something to read.

NOT FOR: Topic-specific lookups (use search_wikipedia instead).

PARAMETERS:
- lang: Language code (default "ja")
- count: Number of random articles to get (default 5)

RETURNS: Titles and URLs of articles from the main namespace.`,
		ReadOnly:   true,
		Idempotent: false,
		OpenWorld:  true,
	},
}

// AllTools returns a copy of the tool table in registration order.
func AllTools() []ToolSpec {
	return slices.Clone(toolTable)
}

// ToolsByCategory returns the specs in a category
func ToolsByCategory(category string) []ToolSpec {
	var specs []ToolSpec
	for _, spec := range toolTable {
		if spec.Category == category {
			specs = append(specs, spec)
		}
	}
	return specs
}

// ToolByName looks up a spec by tool name
func ToolByName(name string) (ToolSpec, bool) {
	for _, spec := range toolTable {
		if spec.Name == name {
			return spec, true
		}
	}
	return ToolSpec{}, false
}
