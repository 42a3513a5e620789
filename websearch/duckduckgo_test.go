package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fgo&amp;rut=abc">Go Programming Language</a>
  <div class="result__snippet">Go is an open source language.</div>
</div>
<div class="result">
  <a class="result__a" href="https://example.org/direct">Direct Link</a>
  <div class="result__snippet">A direct result.</div>
</div>
<div class="result">
  <a class="result__a" href="javascript:void(0)">Bogus</a>
</div>
</body></html>`

func newTestSearcher(t *testing.T, handler http.HandlerFunc, opts ...DuckDuckGoOption) *DuckDuckGo {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base := []DuckDuckGoOption{
		WithEndpoint(server.URL),
		WithPoliteDelay(0),
		WithContentEnrichment(false),
	}
	return NewDuckDuckGo(append(base, opts...)...)
}

func TestSearch_ParsesResults(t *testing.T) {
	var gotQuery string
	d := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(resultsPage))
	})

	results, err := d.Search(context.Background(), "go language")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "go language", gotQuery)
	assert.Equal(t, "Go Programming Language", results[0].Title)
	assert.Equal(t, "https://example.com/go", results[0].URL)
	assert.Equal(t, "Go is an open source language.", results[0].Snippet)
	assert.Equal(t, "https://example.org/direct", results[1].URL)
}

func TestSearch_MaxResults(t *testing.T) {
	d := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(resultsPage))
	}, WithMaxResults(1))

	results, err := d.Search(context.Background(), "go")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_EmptyQuery(t *testing.T) {
	d := NewDuckDuckGo(WithPoliteDelay(0))
	_, err := d.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearch_ServerError(t *testing.T) {
	d := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := d.Search(context.Background(), "go")
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestSearch_NoResults(t *testing.T) {
	d := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="no-results">nothing</div></body></html>`))
	})

	results, err := d.Search(context.Background(), "gibberish qwertyasdf")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFetchPageContent(t *testing.T) {
	page := `<html><head><script>var x = 1;</script><style>p{}</style></head>
<body><nav>menu</nav><p>Real content here.</p><footer>legal</footer></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	d := NewDuckDuckGo(WithPoliteDelay(0))
	content, err := d.FetchPageContent(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Contains(t, content, "Real content here.")
	assert.NotContains(t, content, "menu")
	assert.NotContains(t, content, "legal")
	assert.NotContains(t, content, "var x")
}

func TestResolveRedirect(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"uddg redirect", "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fpage&rut=x", "https://example.com/page"},
		{"direct https", "https://example.com/page", "https://example.com/page"},
		{"direct http", "http://example.com", "http://example.com"},
		{"javascript link", "javascript:void(0)", ""},
		{"relative path", "/html/?q=next", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveRedirect(tt.href))
		})
	}
}

func TestResultBody(t *testing.T) {
	withContent := Result{Snippet: "snip", Content: "full text"}
	assert.Equal(t, "full text", withContent.Body())

	snippetOnly := Result{Snippet: "snip"}
	assert.Equal(t, "snip", snippetOnly.Body())
}
