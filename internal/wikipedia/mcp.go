package wikipedia

import (
	"context"
)

// MCP tool wrapper methods.
// Each returns the display text for one tool call. Errors are left for the
// tool boundary to render with the operation's failure phrase.

// Failure phrases prefixed to error messages at the tool boundary
const (
	SearchFailurePhrase  = "Wikipedia検索に失敗しました"
	ArticleFailurePhrase = "記事取得に失敗しました"
	RandomFailurePhrase  = "ランダム記事取得に失敗しました"
)

// SearchMCP is the MCP wrapper for Search
func (c *Client) SearchMCP(ctx context.Context, args SearchArgs) (string, error) {
	args, err := args.Normalize()
	if err != nil {
		return "", err
	}

	hits, err := c.Search(ctx, args.Lang, args.Query, args.Limit)
	if err != nil {
		return "", err
	}
	if len(hits) == 0 {
		return NoSearchResultsText(args.Query), nil
	}
	return FormatSearch(c.Site(args.Lang), hits, args.Limit), nil
}

// GetArticleMCP is the MCP wrapper for GetPage
func (c *Client) GetArticleMCP(ctx context.Context, args GetArticleArgs) (string, error) {
	args, err := args.Normalize()
	if err != nil {
		return "", err
	}

	page, err := c.GetPage(ctx, args.Lang, args.Title, args.IncludeContent)
	if err != nil {
		return "", err
	}
	if page.NotFound() {
		return ArticleNotFoundText(args.Title), nil
	}
	return FormatArticle(c.Site(args.Lang), page, args.IncludeContent), nil
}

// GetRandomMCP is the MCP wrapper for Random
func (c *Client) GetRandomMCP(ctx context.Context, args RandomArgs) (string, error) {
	args, err := args.Normalize()
	if err != nil {
		return "", err
	}

	articles, err := c.Random(ctx, args.Lang, args.Count)
	if err != nil {
		return "", err
	}
	if len(articles) == 0 {
		return NoRandomArticlesText, nil
	}
	return FormatRandom(c.Site(args.Lang), articles, args.Count), nil
}
