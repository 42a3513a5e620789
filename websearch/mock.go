package websearch

import "context"

// MockSearcher is a test double for Searcher.
// It allows custom behavior injection via function fields.
type MockSearcher struct {
	// SearchFunc is called by Search if set.
	// If nil, Results and Err are returned as-is.
	SearchFunc func(ctx context.Context, query string) ([]Result, error)

	// Results and Err are the canned response when SearchFunc is nil.
	Results []Result
	Err     error

	// Queries records every query passed to Search.
	Queries []string
}

// Search records the query and returns the injected behavior.
func (m *MockSearcher) Search(ctx context.Context, query string) ([]Result, error) {
	m.Queries = append(m.Queries, query)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return m.Results, m.Err
}
