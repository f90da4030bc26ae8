package dashboard

import (
	"context"
	"strings"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
)

// serviceRevenueChart plots monthly revenue and net profit per service,
// ranked by score.
func serviceRevenueChart(src ReportSource) ChartSource {
	return func(ctx context.Context, meta WidgetContext) (ChartSpec, error) {
		if src == nil {
			return ChartSpec{}, errMissingReports
		}
		summary, err := src.Services(ctx)
		if err != nil {
			return ChartSpec{}, err
		}
		rows := summary.Services
		if limit := intOr(meta.Instance.Configuration, "limit", 0); limit > 0 && limit < len(rows) {
			rows = rows[:limit]
		}
		label := labeler(ctx, meta)
		revenue := ChartSeries{Name: label("series.revenue", "Revenue")}
		profit := ChartSeries{Name: label("series.net_profit", "Net Profit")}
		axis := make([]string, len(rows))
		for i, row := range rows {
			axis[i] = row.Service.Name
			revenue.Points = append(revenue.Points, ChartPoint{Label: row.Service.Name, Value: row.MonthlyRevenue})
			profit.Points = append(profit.Points, ChartPoint{Label: row.Service.Name, Value: row.NetProfit})
		}
		return ChartSpec{
			Title:    "Service Revenue",
			Subtitle: analytics.FormatUSD(summary.TotalRevenue) + " / month",
			XAxis:    axis,
			Series:   []ChartSeries{revenue, profit},
		}, nil
	}
}

func categoryRevenueChart(src ReportSource) ChartSource {
	return func(ctx context.Context, meta WidgetContext) (ChartSpec, error) {
		if src == nil {
			return ChartSpec{}, errMissingReports
		}
		categories, err := src.ServiceRevenue(ctx)
		if err != nil {
			return ChartSpec{}, err
		}
		series := ChartSeries{Name: labeler(ctx, meta)("series.revenue", "Revenue")}
		for _, c := range categories {
			series.Points = append(series.Points, ChartPoint{Label: string(c.Category), Value: c.Revenue})
		}
		return ChartSpec{
			Title:  "Revenue by Category",
			Series: []ChartSeries{series},
		}, nil
	}
}

// occupancyChart draws one line per weekday across the hour slots. The
// "days" option narrows the lines to the named weekdays.
func occupancyChart(src ReportSource) ChartSource {
	return func(ctx context.Context, meta WidgetContext) (ChartSpec, error) {
		if src == nil {
			return ChartSpec{}, errMissingReports
		}
		report, err := src.Occupancy(ctx)
		if err != nil {
			return ChartSpec{}, err
		}
		wanted := daySet(meta.Instance.Configuration["days"])
		spec := ChartSpec{
			Title:    "Occupancy",
			Subtitle: analytics.FormatPercent(report.Summary.Overall) + " average",
			XAxis:    append([]string(nil), report.Grid.Hours...),
		}
		for _, day := range report.Grid.Days {
			if len(wanted) > 0 && !wanted[strings.ToLower(day.Day)] {
				continue
			}
			series := ChartSeries{Name: day.Day}
			for i, value := range day.Slots {
				hour := ""
				if i < len(report.Grid.Hours) {
					hour = report.Grid.Hours[i]
				}
				series.Points = append(series.Points, ChartPoint{Label: hour, Value: value})
			}
			spec.Series = append(spec.Series, series)
		}
		return spec, nil
	}
}

// serviceMixChart scatters price against monthly bookings.
func serviceMixChart(src ReportSource) ChartSource {
	return func(ctx context.Context, meta WidgetContext) (ChartSpec, error) {
		if src == nil {
			return ChartSpec{}, errMissingReports
		}
		summary, err := src.Services(ctx)
		if err != nil {
			return ChartSpec{}, err
		}
		byCategory := map[analytics.ServiceCategory]int{}
		var series []ChartSeries
		for _, row := range summary.Services {
			svc := row.Service
			pos, ok := byCategory[svc.Category]
			if !ok {
				pos = len(series)
				byCategory[svc.Category] = pos
				series = append(series, ChartSeries{Name: string(svc.Category)})
			}
			series[pos].Points = append(series[pos].Points, ChartPoint{
				Label: svc.Name,
				Value: float64(svc.Popularity),
				Pair:  []float64{svc.Price, float64(svc.Popularity)},
			})
		}
		return ChartSpec{
			Title:    "Service Mix",
			Subtitle: "price vs bookings",
			Series:   series,
		}, nil
	}
}

// staffGaugeChart shows team average performance, or one therapist when
// "therapist" names an id.
func staffGaugeChart(src ReportSource) ChartSource {
	return func(ctx context.Context, meta WidgetContext) (ChartSpec, error) {
		if src == nil {
			return ChartSpec{}, errMissingReports
		}
		summary, err := src.Staff(ctx)
		if err != nil {
			return ChartSpec{}, err
		}
		label := labeler(ctx, meta)
		point := ChartPoint{Label: label("team", "Team"), Value: summary.AveragePerformance}
		if id := stringOr(meta.Instance.Configuration, "therapist", ""); id != "" {
			for _, t := range summary.Ranked {
				if t.ID == id {
					point = ChartPoint{Label: t.Name, Value: t.Performance}
					break
				}
			}
		}
		return ChartSpec{
			Title:  "Staff Performance",
			Series: []ChartSeries{{Name: label("series.performance", "Performance"), Points: []ChartPoint{point}}},
		}, nil
	}
}

func daySet(raw any) map[string]bool {
	set := map[string]bool{}
	switch v := raw.(type) {
	case []string:
		for _, day := range v {
			set[strings.ToLower(strings.TrimSpace(day))] = true
		}
	case []any:
		for _, item := range v {
			if day, ok := item.(string); ok {
				set[strings.ToLower(strings.TrimSpace(day))] = true
			}
		}
	case string:
		for _, day := range strings.Split(v, ",") {
			if day = strings.TrimSpace(day); day != "" {
				set[strings.ToLower(day)] = true
			}
		}
	}
	return set
}
