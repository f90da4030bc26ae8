package analytics

import (
	"math"
	"strings"
)

// PatientSummary drives the patients page header and growth cards.
type PatientSummary struct {
	Total             int     `json:"total"`
	Active            int     `json:"active"`
	Inactive          int     `json:"inactive"`
	TotalSpent        float64 `json:"totalSpent"`
	AverageSpend      float64 `json:"averageSpend"`
	HighValueCount    int     `json:"highValueCount"`
	HighValueSpent    float64 `json:"highValueSpent"`
	BirthdaysPerMonth int     `json:"birthdaysPerMonth"`
}

// FilterByStatus keeps patients with the given status in source order. An
// empty status keeps everyone.
func FilterByStatus(patients []Patient, status PatientStatus) []Patient {
	out := make([]Patient, 0, len(patients))
	for _, p := range patients {
		if status == "" || strings.EqualFold(string(p.Status), string(status)) {
			out = append(out, p)
		}
	}
	return out
}

// FilterBySearch keeps patients whose name or email contains term, ignoring
// case. Only the empty term keeps everyone; whitespace is matched literally.
func FilterBySearch(patients []Patient, term string) []Patient {
	needle := strings.ToLower(term)
	out := make([]Patient, 0, len(patients))
	for _, p := range patients {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Email), needle) {
			out = append(out, p)
		}
	}
	return out
}

// SummarizePatients computes the patients page totals. Patients who spent
// more than highValueSpend count as high value.
func SummarizePatients(patients []Patient, highValueSpend float64) PatientSummary {
	summary := PatientSummary{Total: len(patients)}
	for _, p := range patients {
		summary.TotalSpent += p.TotalSpent
		switch p.Status {
		case PatientActive:
			summary.Active++
		case PatientInactive:
			summary.Inactive++
		}
		if p.TotalSpent > highValueSpend {
			summary.HighValueCount++
			summary.HighValueSpent += p.TotalSpent
		}
	}
	summary.AverageSpend = average(summary.TotalSpent, summary.Total)
	summary.BirthdaysPerMonth = int(math.Round(float64(summary.Total) / 12))
	return summary
}
