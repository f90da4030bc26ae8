package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeOccupancy(t *testing.T) {
	summary := SummarizeOccupancy(SampleCatalogAt(fixedNow).Occupancy)

	assert.Equal(t, OccupancySlot{Day: "Fri", Hour: "1pm", Value: 100}, summary.Busiest)
	assert.Equal(t, OccupancySlot{Day: "Sun", Hour: "6pm", Value: 20}, summary.Quietest)
	assert.InDelta(t, 84, summary.DayAverages["Fri"], 1e-9)
	require.Len(t, summary.HourAverages, 10)
	assert.InDelta(t, (45.0+50+55+60+70+75+60)/7, summary.HourAverages[0], 1e-9)
}

func TestSummarizeOccupancyRaggedRows(t *testing.T) {
	summary := SummarizeOccupancy(OccupancyGrid{
		Hours: []string{"9am", "10am"},
		Days: []OccupancyDay{
			{Day: "Mon", Slots: []float64{10}},
			{Day: "Tue", Slots: []float64{30, 50, 99}},
		},
	})
	assert.InDelta(t, 20, summary.HourAverages[0], 1e-9)
	assert.InDelta(t, 50, summary.HourAverages[1], 1e-9)
	assert.InDelta(t, 30, summary.Overall, 1e-9)
	assert.Equal(t, 50.0, summary.Busiest.Value)
}
