package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func therapistIDs(items []Therapist) []string {
	ids := make([]string, len(items))
	for i, t := range items {
		ids[i] = t.ID
	}
	return ids
}

func TestSummarizeStaffSample(t *testing.T) {
	therapists := SampleCatalogAt(fixedNow).Therapists
	summary := SummarizeStaff(therapists, 3, 2)

	assert.Equal(t, []string{"t1", "t3", "t4", "t2", "t5"}, therapistIDs(summary.Ranked))
	assert.Equal(t, []string{"t1", "t3", "t4"}, therapistIDs(summary.Top))
	assert.Equal(t, []string{"t2", "t5"}, therapistIDs(summary.Development))
	assert.Equal(t, 264, summary.TotalBookings)
	assert.Equal(t, 31730.0, summary.TotalRevenue)
	assert.InDelta(t, 90, summary.AveragePerformance, 1e-9)
	assert.InDelta(t, 31730.0/264, summary.RevenuePerBooking, 1e-9)
	assert.Equal(t, "t1", therapists[0].ID)
	assert.Equal(t, "t2", therapists[1].ID, "input must not be reordered")
}

func TestRankTherapistsKeepsTieOrder(t *testing.T) {
	ranked := RankTherapists([]Therapist{
		{ID: "a", Performance: 80},
		{ID: "b", Performance: 90},
		{ID: "c", Performance: 80},
	})
	assert.Equal(t, []string{"b", "a", "c"}, therapistIDs(ranked))
}
