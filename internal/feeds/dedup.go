package feeds

import "strings"

// DefaultNewsLimit caps how many items survive deduplication.
const DefaultNewsLimit = 50

// Dedup collapses items with equal normalized titles, preserving first-seen
// order, bounded to limit. The key is the trimmed, lower-cased title; items
// with an empty key are never deduplicated against each other but still
// count toward the limit. Admission stops as soon as the limit is reached,
// so later duplicates of an admitted title are dropped regardless.
func Dedup(items []Item, limit int) []Item {
	if limit <= 0 {
		limit = DefaultNewsLimit
	}

	seen := make(map[string]bool, len(items))
	out := make([]Item, 0, min(limit, len(items)))

	for _, item := range items {
		if len(out) >= limit {
			break
		}
		key := strings.ToLower(strings.TrimSpace(item.Title))
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, item)
	}

	return out
}
