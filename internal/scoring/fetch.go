package scoring

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jaehoon-dev/themeradar/internal/quotes"
)

// fetchQuotes fans out quote lookups with a bounded concurrency limit.
// No ordering dependency exists between tickers, so each fetch runs
// independently; aggregation happens after Wait. Tickers whose fetch did
// not resolve before cancellation come back as empty quotes.
func fetchQuotes(ctx context.Context, provider quotes.Provider, tickers []string, maxConcurrent int) map[string]quotes.Quote {
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}

	var mu sync.Mutex
	out := make(map[string]quotes.Quote, len(tickers))

	var g errgroup.Group
	g.SetLimit(maxConcurrent)

	seen := make(map[string]bool, len(tickers))
	for _, ticker := range tickers {
		if ticker == "" || seen[ticker] {
			continue
		}
		seen[ticker] = true

		ticker := ticker // per-iteration copy for Go <1.22 loop semantics
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil // unresolved quote = quote unavailable
			}
			q := provider.Fetch(ctx, ticker)
			mu.Lock()
			out[ticker] = q
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait() // goroutines never fail the group

	return out
}
