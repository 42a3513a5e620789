// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package websearch

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultMaxResults is the number of search hits returned per query.
	DefaultMaxResults = 5

	// DefaultTimeout bounds each outbound HTTP request.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxContentLength caps extracted page text per result.
	DefaultMaxContentLength = 5000

	defaultEndpoint = "https://html.duckduckgo.com/html/"
)

// Rotated per request to avoid trivial blocking of the scraper.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// DuckDuckGo searches via DuckDuckGo's HTML endpoint, which needs no API
// key. Each hit can be enriched with the linked page's extracted text.
type DuckDuckGo struct {
	client           *http.Client
	endpoint         string
	maxResults       int
	maxContentLength int
	enrichContent    bool
	politeDelay      time.Duration
	logger           *slog.Logger
}

// DuckDuckGoOption configures a DuckDuckGo searcher.
type DuckDuckGoOption func(*DuckDuckGo)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if client != nil {
			d.client = client
		}
	}
}

// WithEndpoint overrides the search endpoint URL.
func WithEndpoint(endpoint string) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if endpoint != "" {
			d.endpoint = endpoint
		}
	}
}

// WithMaxResults sets how many hits a search returns.
func WithMaxResults(n int) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if n > 0 {
			d.maxResults = n
		}
	}
}

// WithMaxContentLength caps the extracted text per enriched result.
func WithMaxContentLength(n int) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if n > 0 {
			d.maxContentLength = n
		}
	}
}

// WithContentEnrichment toggles fetching full page text for each hit.
// Enabled by default; disabling leaves only the search snippets.
func WithContentEnrichment(enabled bool) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.enrichContent = enabled
	}
}

// WithPoliteDelay sets the upper bound of the randomized pause before
// each outbound request. Zero disables pausing.
func WithPoliteDelay(delay time.Duration) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.politeDelay = delay
	}
}

// WithSearchLogger sets the logger used for search events.
func WithSearchLogger(logger *slog.Logger) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if logger != nil {
			d.logger = logger.With("component", "websearch")
		}
	}
}

// NewDuckDuckGo creates a DuckDuckGo searcher with content enrichment
// enabled.
func NewDuckDuckGo(opts ...DuckDuckGoOption) *DuckDuckGo {
	d := &DuckDuckGo{
		client:           &http.Client{Timeout: DefaultTimeout},
		endpoint:         defaultEndpoint,
		maxResults:       DefaultMaxResults,
		maxContentLength: DefaultMaxContentLength,
		enrichContent:    true,
		politeDelay:      600 * time.Millisecond,
		logger:           slog.Default().With("component", "websearch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Search fetches the result page for query and parses out hits best-first.
// When enrichment is on, each hit's linked page is fetched and its main
// text extracted; a hit whose page cannot be fetched keeps its snippet.
func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	d.logger.Info("searching web", "query", query)

	var results []Result
	err := RetryWithBackoff(ctx, func() error {
		var fetchErr error
		results, fetchErr = d.fetchResults(ctx, query)
		return fetchErr
	}, 2, time.Second)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	if len(results) > d.maxResults {
		results = results[:d.maxResults]
	}

	if d.enrichContent {
		for i := range results {
			content, err := d.FetchPageContent(ctx, results[i].URL)
			if err != nil {
				d.logger.Warn("content fetch failed, keeping snippet", "url", results[i].URL, "error", err)
				continue
			}
			results[i].Content = content
		}
	}

	d.logger.Info("web search complete", "query", query, "results", len(results))
	return results, nil
}

func (d *DuckDuckGo) fetchResults(ctx context.Context, query string) ([]Result, error) {
	if err := d.pause(ctx); err != nil {
		return nil, err
	}

	searchURL := d.endpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	setBrowserHeaders(req)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var results []Result
	doc.Find("div.result").Each(func(_ int, sel *goquery.Selection) {
		link := sel.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		target := resolveRedirect(href)
		if target == "" {
			return
		}

		title := strings.TrimSpace(link.Text())
		if title == "" {
			title = "No Title"
		}

		results = append(results, Result{
			Title:   title,
			URL:     target,
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").Text()),
		})
	})

	return results, nil
}

// FetchPageContent downloads url and extracts its main text, with
// boilerplate elements stripped and length capped.
func (d *DuckDuckGo) FetchPageContent(ctx context.Context, pageURL string) (string, error) {
	var content string
	err := RetryWithBackoff(ctx, func() error {
		if err := d.pause(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return err
		}
		setBrowserHeaders(req)

		resp, err := d.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		content, err = ExtractText(resp.Body, d.maxContentLength)
		return err
	}, 2, time.Second)
	if err != nil {
		return "", err
	}

	d.logger.Debug("extracted page content", "url", pageURL, "chars", len(content))
	return content, nil
}

// pause sleeps a randomized fraction of the polite delay, honoring ctx.
func (d *DuckDuckGo) pause(ctx context.Context) error {
	if d.politeDelay <= 0 {
		return nil
	}
	min := d.politeDelay / 3
	jitter := min + time.Duration(rand.Int63n(int64(d.politeDelay-min)+1))

	timer := time.NewTimer(jitter)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("DNT", "1")
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links to the
// target URL. Direct links pass through unchanged.
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	if parsed.Scheme == "http" || parsed.Scheme == "https" {
		return href
	}
	return ""
}
