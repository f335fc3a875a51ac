package quotes

import (
	"context"
	"sync"
)

// CachedProvider memoizes quotes per ticker for the lifetime of the
// wrapper. Wrapping the provider once per run gives every pipeline stage
// the same price snapshot and hits the backend at most once per ticker.
type CachedProvider struct {
	inner Provider

	mu   sync.Mutex
	seen map[string]Quote
}

// NewCachedProvider wraps inner with a per-instance quote cache.
func NewCachedProvider(inner Provider) *CachedProvider {
	return &CachedProvider{inner: inner, seen: make(map[string]Quote)}
}

// Fetch returns the cached quote when present, otherwise delegates to the
// inner provider and caches the result. An unavailable quote is cached
// too: within one run a ticker is either quoted or it is not.
func (p *CachedProvider) Fetch(ctx context.Context, ticker string) Quote {
	p.mu.Lock()
	q, ok := p.seen[ticker]
	p.mu.Unlock()
	if ok {
		return q
	}

	q = p.inner.Fetch(ctx, ticker)

	p.mu.Lock()
	p.seen[ticker] = q
	p.mu.Unlock()
	return q
}
