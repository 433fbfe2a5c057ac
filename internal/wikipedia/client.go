package wikipedia

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/olgasafonova/wikipedia-mcp-server/internal/base"
	apierrors "github.com/olgasafonova/wikipedia-mcp-server/internal/errors"
)

// Operation names used for metrics and spans
const (
	OperationSearch  = "search"
	OperationArticle = "article"
	OperationRandom  = "random"
)

// Client provides access to the Wikipedia action API
type Client struct {
	*base.Client
	siteURL string
}

// ClientOption configures the Client (re-export base.ClientOption for compatibility)
type ClientOption = base.ClientOption

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return base.WithHTTPClient(c)
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return base.WithLogger(l)
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return base.WithUserAgent(ua)
}

// WithTimeout bounds each request; zero leaves requests unbounded
func WithTimeout(d time.Duration) ClientOption {
	return base.WithTimeout(d)
}

// NewClient creates a Wikipedia client. siteURL is a site root template such as
// DefaultSiteURL; an empty value selects DefaultSiteURL.
func NewClient(siteURL string, opts ...ClientOption) *Client {
	if siteURL == "" {
		siteURL = DefaultSiteURL
	}
	return &Client{
		Client:  base.NewClient(opts...),
		siteURL: siteURL,
	}
}

// Site returns the site root for a language
func (c *Client) Site(lang string) string {
	return siteRoot(c.siteURL, lang)
}

// Search runs a full-text search and returns the hits in API order
func (c *Client) Search(ctx context.Context, lang, query string, limit int) ([]SearchHit, error) {
	var resp SearchResponse
	err := c.GetJSON(ctx, base.RequestConfig{
		URL:       buildSearchURL(c.Site(lang), query, limit),
		Lang:      lang,
		Operation: OperationSearch,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Query == nil {
		return nil, nil
	}
	return resp.Query.Search, nil
}

// GetPage looks up a single title. It fails with a NotFoundError when the
// response has no page map at all; a page flagged missing is returned as is.
func (c *Client) GetPage(ctx context.Context, lang, title string, includeContent bool) (*Page, error) {
	var resp PageResponse
	err := c.GetJSON(ctx, base.RequestConfig{
		URL:       buildArticleURL(c.Site(lang), title, includeContent),
		Lang:      lang,
		Operation: OperationArticle,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Query == nil || len(resp.Query.Pages) == 0 {
		return nil, apierrors.NewNotFoundError(title)
	}

	// One title yields one entry; sort keys so the choice is stable regardless.
	ids := make([]string, 0, len(resp.Query.Pages))
	for id := range resp.Query.Pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	page := resp.Query.Pages[ids[0]]
	return &page, nil
}

// Random samples articles from the main namespace
func (c *Client) Random(ctx context.Context, lang string, count int) ([]RandomArticle, error) {
	var resp RandomResponse
	err := c.GetJSON(ctx, base.RequestConfig{
		URL:       buildRandomURL(c.Site(lang), count),
		Lang:      lang,
		Operation: OperationRandom,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Query == nil {
		return nil, nil
	}
	return resp.Query.Random, nil
}
