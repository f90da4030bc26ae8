package analytics

import "sort"

// StaffSummary is the staff page leaderboard.
type StaffSummary struct {
	Ranked             []Therapist `json:"ranked"`
	Top                []Therapist `json:"top"`
	Development        []Therapist `json:"development"`
	TotalBookings      int         `json:"totalBookings"`
	TotalRevenue       float64     `json:"totalRevenue"`
	AveragePerformance float64     `json:"averagePerformance"`
	RevenuePerBooking  float64     `json:"revenuePerBooking"`
}

// RankTherapists orders therapists by descending performance. Ties keep
// their input order and the input slice is left untouched.
func RankTherapists(therapists []Therapist) []Therapist {
	out := make([]Therapist, len(therapists))
	copy(out, therapists)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Performance > out[j].Performance
	})
	return out
}

// SummarizeStaff ranks therapists and totals their month. The development
// list holds the lowest ranked therapists in ranking order.
func SummarizeStaff(therapists []Therapist, topN, developmentN int) StaffSummary {
	ranked := RankTherapists(therapists)
	summary := StaffSummary{Ranked: ranked}
	performance := 0.0
	for _, t := range ranked {
		summary.TotalBookings += t.BookingsThisMonth
		summary.TotalRevenue += t.RevenueThisMonth
		performance += t.Performance
	}
	summary.AveragePerformance = average(performance, len(ranked))
	summary.RevenuePerBooking = average(summary.TotalRevenue, summary.TotalBookings)
	summary.Top = head(ranked, topN)
	summary.Development = tail(ranked, developmentN)
	return summary
}
