package feeds

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jaehoon-dev/themeradar/internal/logging"
)

// HTMLStripper converts markup to plain text. Implementations are
// best-effort and never fail.
type HTMLStripper interface {
	Strip(s string) string
}

// GoqueryStripper strips markup by parsing it and extracting text.
type GoqueryStripper struct{}

func (GoqueryStripper) Strip(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		// Degrade to the fixed substitution table rather than fail.
		return TableStripper{}.Strip(s)
	}
	return strings.TrimSpace(doc.Text())
}

// TableStripper applies a minimal fixed substitution table. Deterministic
// fallback for when a markup-aware stripper is not wired in.
type TableStripper struct{}

var tableReplacer = strings.NewReplacer(
	"<br>", " ",
	"<br/>", " ",
	"<p>", " ",
	"</p>", " ",
)

func (TableStripper) Strip(s string) string {
	return strings.TrimSpace(tableReplacer.Replace(s))
}

// feedTimeLayouts are tried in order when parsing feed timestamps.
var feedTimeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalizer converts raw feed entries into canonical Items.
type Normalizer struct {
	stripper HTMLStripper
	now      func() time.Time
}

// NewNormalizer creates a Normalizer with the given stripper. A nil
// stripper selects the substitution-table fallback.
func NewNormalizer(stripper HTMLStripper) *Normalizer {
	if stripper == nil {
		stripper = TableStripper{}
	}
	return &Normalizer{stripper: stripper, now: time.Now}
}

// Normalize converts one raw entry. Missing fields become empty strings;
// an unparseable published time yields a zero Published and empty Recency,
// never an error.
func (n *Normalizer) Normalize(ctx context.Context, e Entry) Item {
	item := Item{
		Title:       strings.TrimSpace(e.Title),
		Link:        strings.TrimSpace(e.Link),
		Description: n.stripper.Strip(e.Description),
	}

	if ts := strings.TrimSpace(e.Published); ts != "" {
		if t, ok := parseFeedTime(ts); ok {
			loc := ReportZone(ctx)
			item.Published = t.In(loc)
			item.Recency = relativeTime(n.now().In(loc), item.Published)
		} else {
			logging.Debug("unparseable feed timestamp", "value", ts)
		}
	}

	return item
}

// parseFeedTime tries the known layouts in order.
func parseFeedTime(s string) (time.Time, bool) {
	for _, layout := range feedTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// relativeTime renders elapsed time in whole minutes: "방금 전" under a
// minute, "{m}분 전" under an hour, otherwise "{h}시간 전" with
// integer-floor hours.
func relativeTime(now, published time.Time) string {
	minutes := int(now.Sub(published).Minutes())
	switch {
	case minutes < 1:
		return "방금 전"
	case minutes < 60:
		return fmt.Sprintf("%d분 전", minutes)
	default:
		return fmt.Sprintf("%d시간 전", minutes/60)
	}
}
