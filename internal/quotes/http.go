package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/jaehoon-dev/themeradar/internal/logging"
)

// HTTPProvider fetches quotes from a JSON endpoint. Expected response shape:
//
//	{"last": 71200, "prev": 70500, "volume": 1234567}
//
// Any transport, decode, or status failure degrades to an empty Quote.
type HTTPProvider struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewHTTPProvider creates a provider against the given endpoint. Requests
// are throttled to ratePerSec to stay inside the backend's limits.
func NewHTTPProvider(endpoint string, timeout time.Duration, ratePerSec float64) *HTTPProvider {
	if ratePerSec <= 0 {
		ratePerSec = 8
	}
	return &HTTPProvider{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Limit(ratePerSec), 1),
	}
}

type quoteResponse struct {
	Last   *float64 `json:"last"`
	Prev   *float64 `json:"prev"`
	Volume *int64   `json:"volume"`
}

func (p *HTTPProvider) Fetch(ctx context.Context, ticker string) Quote {
	if err := p.limiter.Wait(ctx); err != nil {
		return Quote{}
	}

	reqURL := fmt.Sprintf("%s?ticker=%s", p.endpoint, url.QueryEscape(ticker))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		logging.Debug("quote request build failed", "ticker", ticker, "err", err)
		return Quote{}
	}
	req.Header.Set("User-Agent", "themeradar/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		logging.Debug("quote fetch failed", "ticker", ticker, "err", err)
		return Quote{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logging.Debug("quote fetch bad status", "ticker", ticker, "status", resp.StatusCode)
		return Quote{}
	}

	var body quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logging.Debug("quote decode failed", "ticker", ticker, "err", err)
		return Quote{}
	}

	var q Quote
	if body.Last != nil {
		q.Last = Float{Value: *body.Last, Valid: true}
	}
	if body.Prev != nil {
		q.Prev = Float{Value: *body.Prev, Valid: true}
	}
	if body.Volume != nil {
		q.Volume = Int{Value: *body.Volume, Valid: true}
	}
	return q
}
