package wikipedia

// Argument defaults, applied by the handlers even when the dispatcher already did.
const (
	DefaultLang  = "ja"
	DefaultLimit = 5
	DefaultCount = 5
)

// SearchArgs contains parameters for search_wikipedia
type SearchArgs struct {
	Query string `json:"query" jsonschema:"Search keyword"`
	Lang  string `json:"lang,omitempty" jsonschema:"Language code (ja, en, etc.)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Number of search results"`
}

// GetArticleArgs contains parameters for get_wikipedia_article
type GetArticleArgs struct {
	Title          string `json:"title" jsonschema:"Article title"`
	Lang           string `json:"lang,omitempty" jsonschema:"Language code (ja, en, etc.)"`
	IncludeContent bool   `json:"include_content,omitempty" jsonschema:"Include article content (wikitext)"`
}

// RandomArgs contains parameters for get_random_wikipedia
type RandomArgs struct {
	Lang  string `json:"lang,omitempty" jsonschema:"Language code (ja, en, etc.)"`
	Count int    `json:"count,omitempty" jsonschema:"Number of random articles to get"`
}
