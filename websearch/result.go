package websearch

import "context"

// Result is a single web search hit. Content holds the extracted page
// text when enrichment succeeded, otherwise it falls back to the snippet.
type Result struct {
	Title   string
	URL     string
	Snippet string
	Content string
}

// Body returns the best available text for the result: extracted page
// content when present, otherwise the search snippet.
func (r Result) Body() string {
	if r.Content != "" {
		return r.Content
	}
	return r.Snippet
}

// Searcher finds web results for a query. Implementations return results
// best-first and may enrich them with full page content.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}
