package feeds

import "strings"

// Filter drops promotional and boilerplate entries before classification.
type Filter struct {
	// Keywords in title/description that indicate ads or boilerplate
	BlockKeywords []string
}

// DefaultFilter returns a filter configured for Korean finance feeds.
func DefaultFilter() *Filter {
	return &Filter{
		BlockKeywords: []string{
			// Ads and sponsored placements
			"sponsored",
			"advertisement",
			"광고",
			"협찬",
			"프로모션",
			// Boilerplate that carries no theme signal
			"보도자료",
			"인사•부고",
			"부고",
			"포토뉴스",
			"오늘의 운세",
		},
	}
}

// ShouldBlock returns true if the item should be filtered out.
func (f *Filter) ShouldBlock(item Item) bool {
	titleLower := strings.ToLower(item.Title)
	descLower := strings.ToLower(item.Description)
	for _, kw := range f.BlockKeywords {
		if strings.Contains(titleLower, kw) || strings.Contains(descLower, kw) {
			return true
		}
	}
	return false
}

// FilterItems returns items with blocked content removed.
func (f *Filter) FilterItems(items []Item) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		if !f.ShouldBlock(item) {
			result = append(result, item)
		}
	}
	return result
}
