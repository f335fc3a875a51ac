package scoring

import (
	"context"
	"sort"

	"github.com/jaehoon-dev/themeradar/internal/config"
	"github.com/jaehoon-dev/themeradar/internal/quotes"
	"github.com/jaehoon-dev/themeradar/internal/themes"
)

// Eligibility thresholds. Rejections are hard, not penalties.
const (
	minVolume   = 30_000 // shares; unknown volume passes
	maxAbsPct   = 35.0   // outlier rejection on the uncapped change
	scoreCapPct = 25.0   // change is capped to ±this for scoring only
	freqWeight  = 0.4
	priceWeight = 0.6
)

// Pick is one selected stock: a theme's sole representative.
type Pick struct {
	Theme     string     `json:"theme"`
	StockName string     `json:"stock_name"`
	Ticker    string     `json:"ticker"`
	ChangePct float64    `json:"change_pct"` // actual, uncapped
	NewsCount int        `json:"news_count"`
	AIScore   float64    `json:"ai_score"` // 0-100
	Volume    quotes.Int `json:"-"`
}

// HasVolume reports whether volume information was available.
func (p Pick) HasVolume() bool { return p.Volume.Valid }

// PickStocks selects at most one representative stock per theme across the
// top themes of the ranking, then orders the result descending by AI score.
// At most topN picks are returned. Within a theme the first candidate with
// the strictly highest score wins, so ties keep input stock order.
func PickStocks(ctx context.Context, counts []themes.Count, stockMap map[string][]config.Stock, provider quotes.Provider, topN, maxConcurrent int) []Pick {
	window := counts
	if len(window) > maxReportThemes {
		window = window[:maxReportThemes]
	}

	var tickers []string
	for _, tc := range window {
		for _, s := range stockMap[tc.Theme] {
			tickers = append(tickers, s.Ticker)
		}
	}
	quoteMap := fetchQuotes(ctx, provider, tickers, maxConcurrent)

	var picks []Pick
	for _, tc := range window {
		if pick, ok := pickForTheme(tc, stockMap[tc.Theme], quoteMap); ok {
			picks = append(picks, pick)
		}
	}

	// Stable: equal scores keep the per-theme selection order.
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].AIScore > picks[j].AIScore
	})

	if topN > 0 && len(picks) > topN {
		picks = picks[:topN]
	}
	return picks
}

// pickForTheme evaluates a theme's candidates in order and returns the one
// with the strictly highest score, or ok=false when no candidate survives
// the eligibility filters.
func pickForTheme(tc themes.Count, stocks []config.Stock, quoteMap map[string]quotes.Quote) (Pick, bool) {
	var best Pick
	bestScore := 0.0
	found := false

	for _, s := range stocks {
		q := quoteMap[s.Ticker]

		pct, ok := q.ChangePct()
		if !ok {
			continue // quote unobtainable or prev price unusable
		}
		if q.Volume.Valid && q.Volume.Value < minVolume {
			continue // illiquid; unknown volume passes
		}
		if pct > maxAbsPct || pct < -maxAbsPct {
			continue // outlier on the actual, uncapped change
		}

		capped := clamp(pct, -scoreCapPct, scoreCapPct)
		score := FreqNorm(tc.Count)*freqWeight + (capped/scoreCapPct)*priceWeight
		ai := round2(score * 100)

		// Scores can be negative (down market, quiet news day); the first
		// eligible candidate always becomes the baseline.
		if !found || ai > bestScore {
			bestScore = ai
			best = Pick{
				Theme:     tc.Theme,
				StockName: s.Name,
				Ticker:    s.Ticker,
				ChangePct: pct,
				NewsCount: tc.Count,
				AIScore:   ai,
				Volume:    q.Volume,
			}
			found = true
		}
	}

	return best, found
}
