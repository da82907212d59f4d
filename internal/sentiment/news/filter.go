package news

import "strings"

// FilterByTicker keeps the items whose text mentions ticker, case-insensitively.
// This is a plain substring match: "AI" also matches "RAIN". An empty ticker keeps everything.
func FilterByTicker(items []Item, ticker string) []Item {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return items
	}

	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToUpper(item.Text), ticker) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
