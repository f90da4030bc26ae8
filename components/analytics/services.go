package analytics

import "sort"

// ServiceAnalysis pairs a service with its derived monthly figures.
type ServiceAnalysis struct {
	Service        Service `json:"service"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	NetProfit      float64 `json:"netProfit"`
	Margin         float64 `json:"margin"`
	Score          float64 `json:"score"`
}

// ServiceSummary is the services page header plus the ranked table.
type ServiceSummary struct {
	Services       []ServiceAnalysis `json:"services"`
	TotalRevenue   float64           `json:"totalRevenue"`
	TotalNetProfit float64           `json:"totalNetProfit"`
	AverageMargin  float64           `json:"averageMargin"`
	TopPerformers  []ServiceAnalysis `json:"topPerformers"`
	NeedsAttention []ServiceAnalysis `json:"needsAttention"`
}

// MonthlyRevenue is price times bookings per month.
func MonthlyRevenue(s Service) float64 {
	return s.Price * float64(s.Popularity)
}

// NetProfit is the per-booking contribution after product cost times bookings.
func NetProfit(s Service) float64 {
	return (s.Price - s.ProductCost) * float64(s.Popularity)
}

// Margin is the contribution margin as a percentage of price. A service
// without a positive price has a margin of 0.
func Margin(s Service) float64 {
	if s.Price <= 0 {
		return 0
	}
	return (s.Price - s.ProductCost) / s.Price * 100
}

// HourlyRevenue returns the recorded revenue per hour, deriving it from
// price and duration when it was not recorded.
func HourlyRevenue(s Service) float64 {
	if s.RevenuePerHour > 0 {
		return s.RevenuePerHour
	}
	if s.Duration <= 0 {
		return 0
	}
	return s.Price * 60 / float64(s.Duration)
}

// PerformanceScore blends hourly revenue and popularity against reference values.
func PerformanceScore(s Service, w ScoreWeights) float64 {
	return ratio(HourlyRevenue(s), w.RevenuePerHourReference)*w.RevenuePerHourWeight +
		ratio(float64(s.Popularity), w.PopularityReference)*w.PopularityWeight
}

// AnalyzeService computes every derived figure for one service.
func AnalyzeService(s Service, w ScoreWeights) ServiceAnalysis {
	return ServiceAnalysis{
		Service:        s,
		MonthlyRevenue: MonthlyRevenue(s),
		NetProfit:      NetProfit(s),
		Margin:         Margin(s),
		Score:          PerformanceScore(s, w),
	}
}

// AnalyzeServices ranks services by descending score. Equal scores keep
// their input order.
func AnalyzeServices(services []Service, w ScoreWeights) []ServiceAnalysis {
	out := make([]ServiceAnalysis, len(services))
	for i, s := range services {
		out[i] = AnalyzeService(s, w)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// TotalMonthlyRevenue sums MonthlyRevenue over services.
func TotalMonthlyRevenue(services []Service) float64 {
	total := 0.0
	for _, s := range services {
		total += MonthlyRevenue(s)
	}
	return total
}

// SummarizeServices builds the services page figures. topN and bottomN
// bound the highlight lists; the bottom list is ordered weakest first.
func SummarizeServices(services []Service, w ScoreWeights, topN, bottomN int) ServiceSummary {
	ranked := AnalyzeServices(services, w)
	summary := ServiceSummary{Services: ranked}
	margins := 0.0
	for _, a := range ranked {
		summary.TotalRevenue += a.MonthlyRevenue
		summary.TotalNetProfit += a.NetProfit
		margins += a.Margin
	}
	summary.AverageMargin = average(margins, len(ranked))
	summary.TopPerformers = head(ranked, topN)
	summary.NeedsAttention = reversed(tail(ranked, bottomN))
	return summary
}

// CategoryRevenue sums monthly revenue per category in first-seen order.
type CategoryRevenue struct {
	Category ServiceCategory `json:"category"`
	Revenue  float64         `json:"revenue"`
	Bookings int             `json:"bookings"`
}

// RevenueByCategory groups monthly revenue by service category.
func RevenueByCategory(services []Service) []CategoryRevenue {
	index := map[ServiceCategory]int{}
	out := []CategoryRevenue{}
	for _, s := range services {
		pos, ok := index[s.Category]
		if !ok {
			pos = len(out)
			index[s.Category] = pos
			out = append(out, CategoryRevenue{Category: s.Category})
		}
		out[pos].Revenue += MonthlyRevenue(s)
		out[pos].Bookings += s.Popularity
	}
	return out
}

func ratio(value, reference float64) float64 {
	if reference == 0 {
		return 0
	}
	return value / reference
}

func average(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func head[T any](items []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(items) {
		n = len(items)
	}
	out := make([]T, n)
	copy(out, items[:n])
	return out
}

func tail[T any](items []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(items) {
		n = len(items)
	}
	out := make([]T, n)
	copy(out, items[len(items)-n:])
	return out
}

func reversed[T any](items []T) []T {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}
