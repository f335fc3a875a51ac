// Package quotes supplies price quotes for tickers. Providers never return
// errors: a failed lookup surfaces as a Quote with no valid fields, and
// scoring treats it the same as missing data.
package quotes

import "context"

// Float is a float64 that may be absent.
type Float struct {
	Value float64
	Valid bool
}

// Int is an int64 that may be absent.
type Int struct {
	Value int64
	Valid bool
}

// Quote is one ticker's snapshot. Each field is independently optional.
type Quote struct {
	Last   Float
	Prev   Float
	Volume Int
}

// ChangePct returns the actual percent change (last-prev)/prev*100.
// Only valid when both prices are present and prev is nonzero.
func (q Quote) ChangePct() (float64, bool) {
	if !q.Last.Valid || !q.Prev.Valid || q.Prev.Value == 0 {
		return 0, false
	}
	return (q.Last.Value - q.Prev.Value) / q.Prev.Value * 100, true
}

// Provider fetches a quote for a ticker. Implementations must not return
// errors to the caller; unavailability is an all-absent Quote. They must
// respect context cancellation by returning early with an empty Quote.
type Provider interface {
	Fetch(ctx context.Context, ticker string) Quote
}
