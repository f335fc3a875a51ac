// Package rss fetches raw entries from RSS/Atom feeds.
package rss

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jaehoon-dev/themeradar/internal/feeds"
)

// Source fetches entries from a single RSS/Atom feed over HTTP.
type Source struct {
	name   string
	url    string
	client *http.Client
}

// New creates an RSS source with the given per-request timeout.
func New(name, url string, timeout time.Duration) *Source {
	return &Source{
		name: name,
		url:  url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *Source) Name() string {
	return s.name
}

// Fetch retrieves the feed and converts it to raw entries. Entries keep the
// feed's unparsed timestamp string; the normalizer owns time parsing.
func (s *Source) Fetch(ctx context.Context) ([]feeds.Entry, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "themeradar/1.0 (+https://github.com/jaehoon-dev/themeradar)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := make([]feeds.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		published := item.Published
		if published == "" {
			published = item.Updated
		}
		entries = append(entries, feeds.Entry{
			Title:       item.Title,
			Link:        item.Link,
			Published:   published,
			Description: item.Description,
		})
	}

	return entries, nil
}
