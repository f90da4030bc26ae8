package analytics

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseImpact extracts the dollar magnitude from labels such as "+$2,340/mo".
// Every non-digit is discarded, so signs are ignored. Labels without digits
// or with values that overflow return 0.
func ParseImpact(label string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, label)
	if digits == "" {
		return 0
	}
	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// TotalOpportunity sums ParseImpact over every insight.
func TotalOpportunity(insights []Insight) int64 {
	var total int64
	for _, insight := range insights {
		total += ParseImpact(insight.Impact)
	}
	return total
}

// InsightGroups splits insights by priority preserving their order.
type InsightGroups struct {
	High   []Insight `json:"high"`
	Medium []Insight `json:"medium"`
	Low    []Insight `json:"low"`
	Total  int64     `json:"total"`
}

// GroupByPriority buckets insights. Unknown priorities are treated as low.
func GroupByPriority(insights []Insight) InsightGroups {
	groups := InsightGroups{High: []Insight{}, Medium: []Insight{}, Low: []Insight{}}
	for _, insight := range insights {
		switch Priority(strings.ToLower(strings.TrimFunc(string(insight.Priority), unicode.IsSpace))) {
		case PriorityHigh:
			groups.High = append(groups.High, insight)
		case PriorityMedium:
			groups.Medium = append(groups.Medium, insight)
		default:
			groups.Low = append(groups.Low, insight)
		}
	}
	groups.Total = TotalOpportunity(insights)
	return groups
}

// FilterInsightsBySource returns the insights shown on one page. An empty
// source returns every insight.
func FilterInsightsBySource(insights []Insight, source string) []Insight {
	out := []Insight{}
	for _, insight := range insights {
		if source == "" || strings.EqualFold(insight.Source, source) {
			out = append(out, insight)
		}
	}
	return out
}
