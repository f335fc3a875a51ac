package feeds

import (
	"context"
	"time"
)

// Entry is a raw feed entry as delivered by a source. Any field may be
// empty; Published is the unparsed timestamp string from the feed.
type Entry struct {
	Title       string
	Link        string
	Published   string
	Description string
}

// Item is the canonical news record produced by the Normalizer.
// Immutable after normalization.
type Item struct {
	Title       string
	Link        string
	Published   time.Time // zero when the feed timestamp was absent or unparseable
	Description string    // markup stripped
	Recency     string    // "방금 전", "{m}분 전", "{h}시간 전"; empty when Published is zero
}

// Source is the interface all feed sources implement.
type Source interface {
	// Name returns human-readable source name
	Name() string

	// Fetch retrieves the latest raw entries from this source.
	Fetch(ctx context.Context) ([]Entry, error)
}

// KST is the fixed report timezone. A fixed offset avoids depending on a
// timezone database at runtime.
var KST = time.FixedZone("KST", 9*60*60)

type zoneKey struct{}

// WithReportZone returns a context carrying the report timezone.
func WithReportZone(ctx context.Context, loc *time.Location) context.Context {
	return context.WithValue(ctx, zoneKey{}, loc)
}

// ReportZone returns the report timezone from ctx, defaulting to KST.
func ReportZone(ctx context.Context) *time.Location {
	if loc, ok := ctx.Value(zoneKey{}).(*time.Location); ok && loc != nil {
		return loc
	}
	return KST
}
