package analytics

// OccupancySlot identifies one cell of the heatmap.
type OccupancySlot struct {
	Day   string  `json:"day"`
	Hour  string  `json:"hour"`
	Value float64 `json:"value"`
}

// OccupancySummary condenses the heatmap into per-day and per-hour averages.
type OccupancySummary struct {
	DayAverages  map[string]float64 `json:"dayAverages"`
	HourAverages []float64          `json:"hourAverages"`
	Overall      float64            `json:"overall"`
	Busiest      OccupancySlot      `json:"busiest"`
	Quietest     OccupancySlot      `json:"quietest"`
}

// SummarizeOccupancy scans every slot once. Rows shorter than the hour
// list only contribute the slots they have. The first slot wins ties.
func SummarizeOccupancy(grid OccupancyGrid) OccupancySummary {
	summary := OccupancySummary{
		DayAverages:  make(map[string]float64, len(grid.Days)),
		HourAverages: make([]float64, len(grid.Hours)),
	}
	hourCounts := make([]int, len(grid.Hours))
	total, cells := 0.0, 0
	first := true
	for _, day := range grid.Days {
		daySum, dayCells := 0.0, 0
		for i, value := range day.Slots {
			if i >= len(grid.Hours) {
				break
			}
			daySum += value
			dayCells++
			summary.HourAverages[i] += value
			hourCounts[i]++
			slot := OccupancySlot{Day: day.Day, Hour: grid.Hours[i], Value: value}
			if first || value > summary.Busiest.Value {
				summary.Busiest = slot
			}
			if first || value < summary.Quietest.Value {
				summary.Quietest = slot
			}
			first = false
		}
		summary.DayAverages[day.Day] = average(daySum, dayCells)
		total += daySum
		cells += dayCells
	}
	for i := range summary.HourAverages {
		summary.HourAverages[i] = average(summary.HourAverages[i], hourCounts[i])
	}
	summary.Overall = average(total, cells)
	return summary
}
