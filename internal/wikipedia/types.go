// Package wikipedia provides a client for the Wikipedia action API and renders
// its search, page and random-article responses as display-ready text.
package wikipedia

import "encoding/json"

// SearchResponse is the list=search response shape
type SearchResponse struct {
	Query *SearchQuery `json:"query,omitempty"`
}

// SearchQuery holds the search hits
type SearchQuery struct {
	SearchInfo *SearchInfo  `json:"searchinfo,omitempty"`
	Search     []SearchHit `json:"search"`
}

// SearchInfo carries the total number of matches reported by the API
type SearchInfo struct {
	TotalHits int `json:"totalhits"`
}

// SearchHit is a single search match
type SearchHit struct {
	NS        int    `json:"ns"`        // Namespace id
	Title     string `json:"title"`     // Article title
	PageID    int    `json:"pageid"`    // Page id
	Size      int    `json:"size"`      // Article size in bytes
	WordCount int    `json:"wordcount"` // Word count
	Snippet   string `json:"snippet"`   // HTML-marked excerpt
	Timestamp string `json:"timestamp"` // Last edit (ISO 8601)
}

// PageResponse is the prop=info|categories|links|images response shape
type PageResponse struct {
	Query *PageQuery `json:"query,omitempty"`
}

// PageQuery holds pages keyed by page id (negative ids for missing pages)
type PageQuery struct {
	Pages map[string]Page `json:"pages,omitempty"`
}

// Page is a single page record
type Page struct {
	PageID     int        `json:"pageid"`
	NS         int        `json:"ns"`
	Title      string     `json:"title"`
	Touched    string     `json:"touched"`
	Length     int        `json:"length"`
	Missing    Flag       `json:"missing"`
	Invalid    Flag       `json:"invalid"`
	Categories []PageLink `json:"categories,omitempty"`
	Links      []PageLink `json:"links,omitempty"`
	Images     []PageLink `json:"images,omitempty"`
	Revisions  []Revision `json:"revisions,omitempty"`
}

// NotFound reports whether the API marked the page missing or the title invalid
func (p *Page) NotFound() bool {
	return bool(p.Missing) || bool(p.Invalid)
}

// PageLink is a namespaced title reference (category, link or image)
type PageLink struct {
	NS    int    `json:"ns"`
	Title string `json:"title"`
}

// RevisionSlot holds raw page text. Legacy responses use the "*" key,
// formatversion=2 uses "content".
type RevisionSlot struct {
	Star    *string `json:"*,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Revision is a page revision; text sits either on the revision itself or in slots.main
type Revision struct {
	RevisionSlot
	Slots map[string]RevisionSlot `json:"slots,omitempty"`
}

// Text returns the raw revision text and whether any was present
func (r Revision) Text() (string, bool) {
	if s, ok := r.RevisionSlot.text(); ok {
		return s, true
	}
	if main, ok := r.Slots["main"]; ok {
		return main.text()
	}
	return "", false
}

func (s RevisionSlot) text() (string, bool) {
	switch {
	case s.Star != nil:
		return *s.Star, true
	case s.Content != nil:
		return *s.Content, true
	default:
		return "", false
	}
}

// RandomResponse is the list=random response shape
type RandomResponse struct {
	Query *RandomQuery `json:"query,omitempty"`
}

// RandomQuery holds the sampled articles
type RandomQuery struct {
	Random []RandomArticle `json:"random"`
}

// RandomArticle is one randomly sampled article
type RandomArticle struct {
	ID    int    `json:"id"`
	NS    int    `json:"ns"`
	Title string `json:"title"`
}

// Flag decodes MediaWiki presence flags. formatversion=1 marks a set flag
// with an empty string ("missing": ""), formatversion=2 with true.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler
func (f *Flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	*f = true
	return nil
}
