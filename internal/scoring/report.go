package scoring

import (
	"context"

	"github.com/jaehoon-dev/themeradar/internal/config"
	"github.com/jaehoon-dev/themeradar/internal/quotes"
	"github.com/jaehoon-dev/themeradar/internal/themes"
)

// ReportRow is one theme's line in the theme report.
type ReportRow struct {
	Theme       string  `json:"theme"`
	NewsCount   int     `json:"news_count"`
	AvgDeltaPct float64 `json:"avg_delta_pct"`
	Strength    float64 `json:"strength"`
	RiskTier    int     `json:"risk_tier"`
}

// BuildReport produces report rows for the top themes of the given ranking.
// The input order is the ranking; it is not re-sorted here. For each theme
// the average percent delta is taken across mapped stocks with valid
// quotes; stocks with missing or invalid quotes are excluded from the
// average, not treated as zero. An empty average is 0.0.
func BuildReport(ctx context.Context, counts []themes.Count, stockMap map[string][]config.Stock, provider quotes.Provider, maxConcurrent int) []ReportRow {
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

	rows := make([]ReportRow, 0, len(window))
	for _, tc := range window {
		avg := avgDelta(stockMap[tc.Theme], quoteMap)
		rows = append(rows, ReportRow{
			Theme:       tc.Theme,
			NewsCount:   tc.Count,
			AvgDeltaPct: avg,
			Strength:    Strength(tc.Count, avg),
			RiskTier:    RiskTier(avg),
		})
	}

	return rows
}

// avgDelta averages the percent change of stocks with computable quotes.
func avgDelta(stocks []config.Stock, quoteMap map[string]quotes.Quote) float64 {
	var sum float64
	var n int
	for _, s := range stocks {
		pct, ok := quoteMap[s.Ticker].ChangePct()
		if !ok {
			continue
		}
		sum += pct
		n++
	}
	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}
