// Package themes classifies news items into thematic clusters by keyword
// matching.
package themes

import (
	"sort"
	"strings"

	"github.com/jaehoon-dev/themeradar/internal/feeds"
)

// Count is the per-theme aggregation for one run.
type Count struct {
	Theme      string `json:"theme"`
	Count      int    `json:"count"`
	SampleLink string `json:"sample_link,omitempty"`
}

// Classifier matches item text against keyword dictionaries. The dictionary
// is read-only after construction.
type Classifier struct {
	keywords map[string][]string
	order    []string // theme names in a fixed, deterministic scan order
}

// NewClassifier builds a classifier from a theme -> keyword map. Keywords
// are matched case-insensitively, so they are lowered once here.
func NewClassifier(keywords map[string][]string) *Classifier {
	order := make([]string, 0, len(keywords))
	lowered := make(map[string][]string, len(keywords))
	for theme, kws := range keywords {
		order = append(order, theme)
		list := make([]string, len(kws))
		for i, kw := range kws {
			list[i] = strings.ToLower(kw)
		}
		lowered[theme] = list
	}
	// Map iteration order is random; scanning themes in sorted name order
	// keeps discovery order, and therefore tie order, deterministic.
	sort.Strings(order)

	return &Classifier{keywords: lowered, order: order}
}

// Classify counts how many items match each theme. A single keyword hit
// counts the item for that theme; an item may count toward several themes.
// Themes with zero matches are omitted. Output is ordered by descending
// count; ties retain discovery order. SampleLink is the link of the first
// matching item in input order, never overwritten.
func (c *Classifier) Classify(items []feeds.Item) []Count {
	var counts []Count
	index := make(map[string]int)

	for _, item := range items {
		text := strings.ToLower(item.Title + " " + item.Description)

		for _, theme := range c.order {
			if !matchesAny(text, c.keywords[theme]) {
				continue
			}

			i, ok := index[theme]
			if !ok {
				i = len(counts)
				index[theme] = i
				counts = append(counts, Count{Theme: theme, SampleLink: item.Link})
			}
			counts[i].Count++
		}
	}

	// Stable sort on count only: equal counts keep discovery order.
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	return counts
}

// matchesAny reports whether text contains at least one keyword.
func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
