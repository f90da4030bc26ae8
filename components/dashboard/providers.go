package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
	"github.com/goliatone/go-spa-dashboard/components/reports"
)

// ReportSource is the read side the spa widgets render from. *reports.Service
// satisfies it.
type ReportSource interface {
	Overview(ctx context.Context) (analytics.Overview, error)
	Services(ctx context.Context) (analytics.ServiceSummary, error)
	ServiceRevenue(ctx context.Context) ([]analytics.CategoryRevenue, error)
	Patients(ctx context.Context, query reports.PatientQuery) (reports.PatientReport, error)
	Staff(ctx context.Context) (analytics.StaffSummary, error)
	Promotions(ctx context.Context) (reports.PromotionReport, error)
	Insights(ctx context.Context, source string) (analytics.InsightGroups, error)
	Opportunities(ctx context.Context) (reports.OpportunityReport, error)
	GiftCards(ctx context.Context) (reports.GiftCardReport, error)
	Reminders(ctx context.Context) (reports.ReminderReport, error)
	Occupancy(ctx context.Context) (reports.OccupancyReport, error)
}

var _ ReportSource = (*reports.Service)(nil)

var errMissingReports = errors.New("dashboard: report source is required")

// Widget kinds tell templates how to lay out a payload.
const (
	kindMetrics = "metrics"
	kindTable   = "table"
	kindList    = "list"
	kindChart   = "chart"
)

const (
	WidgetRevenueOverview    = "spa.widget.revenue_overview"
	WidgetServicePerformance = "spa.widget.service_performance"
	WidgetPatientStats       = "spa.widget.patient_stats"
	WidgetStaffLeaderboard   = "spa.widget.staff_leaderboard"
	WidgetPromotionImpact    = "spa.widget.promotion_impact"
	WidgetInsights           = "spa.widget.insights"
	WidgetGiftCards          = "spa.widget.gift_cards"
	WidgetReminderROI        = "spa.widget.reminder_roi"
	WidgetRecentActivity     = "spa.widget.recent_activity"
	WidgetServiceRevenue     = "spa.widget.service_revenue_chart"
	WidgetCategoryRevenue    = "spa.widget.category_revenue_chart"
	WidgetOccupancy          = "spa.widget.occupancy_chart"
	WidgetServiceMix         = "spa.widget.service_mix_chart"
	WidgetStaffGauge         = "spa.widget.staff_performance_gauge"
)

// SpaProviders builds the provider for every built-in spa widget.
func SpaProviders(src ReportSource, feed ActivityFeed, chartOpts ...EChartsProviderOption) map[string]Provider {
	return map[string]Provider{
		WidgetRevenueOverview:    revenueOverviewProvider(src),
		WidgetServicePerformance: servicePerformanceProvider(src),
		WidgetPatientStats:       patientStatsProvider(src),
		WidgetStaffLeaderboard:   staffLeaderboardProvider(src),
		WidgetPromotionImpact:    promotionImpactProvider(src),
		WidgetInsights:           insightsProvider(src),
		WidgetGiftCards:          giftCardsProvider(src),
		WidgetReminderROI:        reminderROIProvider(src),
		WidgetRecentActivity:     newRecentActivityProvider(feed),
		WidgetServiceRevenue:     NewEChartsProvider(ChartBar, serviceRevenueChart(src), chartOpts...),
		WidgetCategoryRevenue:    NewEChartsProvider(ChartPie, categoryRevenueChart(src), chartOpts...),
		WidgetOccupancy:          NewEChartsProvider(ChartLine, occupancyChart(src), chartOpts...),
		WidgetServiceMix:         NewEChartsProvider(ChartScatter, serviceMixChart(src), chartOpts...),
		WidgetStaffGauge:         NewEChartsProvider(ChartGauge, staffGaugeChart(src), chartOpts...),
	}
}

var (
	sampleReports    = reports.NewService(reports.Options{})
	sampleFeed       = NewReminderActivityFeed(sampleReports)
	defaultProviders = SpaProviders(sampleReports, sampleFeed)
)

func metric(label string, value any, display string) map[string]any {
	return map[string]any{"label": label, "value": value, "display": display}
}

func revenueOverviewProvider(src ReportSource) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		if src == nil {
			return nil, errMissingReports
		}
		overview, err := src.Overview(ctx)
		if err != nil {
			return nil, err
		}
		label := labeler(ctx, meta)
		metrics := []map[string]any{
			metric(label("total_revenue", "Monthly Revenue"), overview.Services.TotalRevenue, analytics.FormatUSD(overview.Services.TotalRevenue)),
			metric(label("net_profit", "Net Profit"), overview.Services.TotalNetProfit, analytics.FormatUSD(overview.Services.TotalNetProfit)),
			metric(label("average_margin", "Average Margin"), overview.Services.AverageMargin, analytics.FormatPercent(overview.Services.AverageMargin)),
			metric(label("promotion_impact", "Promotion Impact"), overview.Promotions.Total, analytics.FormatImpact(overview.Promotions.Total)),
		}
		if boolOr(meta.Instance.Configuration, "show_opportunities", true) {
			total := float64(overview.Opportunities)
			metrics = append(metrics, metric(label("opportunities", "Open Opportunities"), total, analytics.FormatImpact(total)))
		}
		return WidgetData{
			"kind":     kindMetrics,
			"metrics":  metrics,
			"overview": overview,
		}, nil
	})
}

func servicePerformanceProvider(src ReportSource) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		if src == nil {
			return nil, errMissingReports
		}
		summary, err := src.Services(ctx)
		if err != nil {
			return nil, err
		}
		cfg := meta.Instance.Configuration
		view := stringOr(cfg, "view", "top")
		var selected []analytics.ServiceAnalysis
		switch view {
		case "attention":
			selected = summary.NeedsAttention
		case "all":
			selected = summary.Services
		default:
			view = "top"
			selected = summary.TopPerformers
		}
		if limit := intOr(cfg, "limit", 0); limit > 0 && limit < len(selected) {
			selected = selected[:limit]
		}
		label := labeler(ctx, meta)
		rows := make([]map[string]any, len(selected))
		for i, item := range selected {
			rows[i] = map[string]any{
				"id":       item.Service.ID,
				"name":     item.Service.Name,
				"category": string(item.Service.Category),
				"revenue":  analytics.FormatUSD(item.MonthlyRevenue),
				"margin":   analytics.FormatPercent(item.Margin),
				"score":    fmt.Sprintf("%.1f", item.Score),
			}
		}
		return WidgetData{
			"kind": kindTable,
			"view": view,
			"columns": []map[string]any{
				{"key": "name", "label": label("col.service", "Service")},
				{"key": "revenue", "label": label("col.revenue", "Revenue")},
				{"key": "margin", "label": label("col.margin", "Margin")},
				{"key": "score", "label": label("col.score", "Score")},
			},
			"rows":          rows,
			"total_revenue": summary.TotalRevenue,
		}, nil
	})
}

func patientStatsProvider(src ReportSource) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		if src == nil {
			return nil, errMissingReports
		}
		cfg := meta.Instance.Configuration
		report, err := src.Patients(ctx, reports.PatientQuery{
			Search: stringOr(cfg, "search", ""),
			Status: analytics.PatientStatus(stringOr(cfg, "status", "")),
		})
		if err != nil {
			return nil, err
		}
		s := report.Summary
		label := labeler(ctx, meta)
		return WidgetData{
			"kind": kindMetrics,
			"metrics": []map[string]any{
				metric(label("total", "Patients"), s.Total, fmt.Sprintf("%d", s.Total)),
				metric(label("active", "Active"), s.Active, fmt.Sprintf("%d", s.Active)),
				metric(label("average_spend", "Average Spend"), s.AverageSpend, analytics.FormatUSD(s.AverageSpend)),
				metric(label("high_value", "High Value"), s.HighValueCount, fmt.Sprintf("%d", s.HighValueCount)),
				metric(label("birthdays", "Birthdays / Month"), s.BirthdaysPerMonth, fmt.Sprintf("%d", s.BirthdaysPerMonth)),
			},
			"matched": report.Matched,
			"summary": s,
		}, nil
	})
}

func staffLeaderboardProvider(src ReportSource) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		if src == nil {
			return nil, errMissingReports
		}
		summary, err := src.Staff(ctx)
		if err != nil {
			return nil, err
		}
		ranked := summary.Ranked
		if limit := intOr(meta.Instance.Configuration, "limit", 0); limit > 0 && limit < len(ranked) {
			ranked = ranked[:limit]
		}
		items := make([]map[string]any, len(ranked))
		for i, t := range ranked {
			items[i] = map[string]any{
				"id":       t.ID,
				"title":    t.Name,
				"subtitle": strings.Join(t.Specialties, ", "),
				"meta":     fmt.Sprintf("%.0f%% · %s", t.Performance, analytics.FormatUSD(t.RevenueThisMonth)),
				"rank":     i + 1,
			}
		}
		return WidgetData{
			"kind":                kindList,
			"items":               items,
			"total_bookings":      summary.TotalBookings,
			"total_revenue":       analytics.FormatUSD(summary.TotalRevenue),
			"average_performance": summary.AveragePerformance,
		}, nil
	})
}

func promotionImpactProvider(src ReportSource) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		if src == nil {
			return nil, errMissingReports
		}
		report, err := src.Promotions(ctx)
		if err != nil {
			return nil, err
		}
		impact := report.Impact
		label := labeler(ctx, meta)
		metrics := []map[string]any{
			metric(label("packages", "Packages"), impact.Packages, analytics.FormatImpact(impact.Packages)),
			metric(label("happy_hours", "Happy Hours"), impact.HappyHours, analytics.FormatImpact(impact.HappyHours)),
			metric(label("peak_pricing", "Peak Pricing"), impact.PeakPricing, analytics.FormatImpact(impact.PeakPricing)),
		}
		switch stringOr(meta.Instance.Configuration, "kind", "all") {
		case string(analytics.PromotionPackage):
			metrics = metrics[:1]
		case string(analytics.PromotionHappyHour):
			metrics = metrics[1:2]
		case string(analytics.PromotionPeakPrice):
			metrics = metrics[2:]
		default:
			metrics = append(metrics, metric(label("total", "Total Impact"), impact.Total, analytics.FormatImpact(impact.Total)))
		}
		return WidgetData{
			"kind":    kindMetrics,
			"metrics": metrics,
			"impact":  impact,
		}, nil
	})
}

func insightsProvider(src ReportSource) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		if src == nil {
			return nil, errMissingReports
		}
		cfg := meta.Instance.Configuration
		groups, err := src.Insights(ctx, stringOr(cfg, "source", ""))
		if err != nil {
			return nil, err
		}
		var selected []analytics.Insight
		switch analytics.Priority(stringOr(cfg, "priority", "all")) {
		case analytics.PriorityHigh:
			selected = groups.High
		case analytics.PriorityMedium:
			selected = groups.Medium
		case analytics.PriorityLow:
			selected = groups.Low
		default:
			selected = append(append(append([]analytics.Insight{}, groups.High...), groups.Medium...), groups.Low...)
		}
		if limit := intOr(cfg, "limit", 0); limit > 0 && limit < len(selected) {
			selected = selected[:limit]
		}
		items := make([]map[string]any, len(selected))
		var total int64
		for i, insight := range selected {
			value := analytics.ParseImpact(insight.Impact)
			total += value
			subtitle := insight.Action
			if subtitle == "" {
				subtitle = insight.Description
			}
			items[i] = map[string]any{
				"title":    insight.Title,
				"subtitle": subtitle,
				"meta":     insight.Impact,
				"priority": string(insight.Priority),
				"value":    value,
			}
		}
		return WidgetData{
			"kind":          kindList,
			"items":         items,
			"total":         total,
			"total_display": analytics.FormatImpact(float64(total)),
		}, nil
	})
}

func giftCardsProvider(src ReportSource) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		if src == nil {
			return nil, errMissingReports
		}
		report, err := src.GiftCards(ctx)
		if err != nil {
			return nil, err
		}
		s := report.Summary
		label := labeler(ctx, meta)
		active := make([]map[string]any, 0, len(report.Cards))
		limit := intOr(meta.Instance.Configuration, "limit", 5)
		for _, card := range report.Cards {
			if card.Status != analytics.GiftCardActive || len(active) >= limit {
				continue
			}
			active = append(active, map[string]any{
				"code":      card.Code,
				"recipient": card.RecipientName,
				"balance":   analytics.FormatUSD(card.Balance),
			})
		}
		return WidgetData{
			"kind": kindMetrics,
			"metrics": []map[string]any{
				metric(label("total_sold", "Total Sold"), s.TotalSold, analytics.FormatUSD(s.TotalSold)),
				metric(label("active_balance", "Active Balance"), s.ActiveBalance, analytics.FormatUSD(s.ActiveBalance)),
				metric(label("redeemed", "Redeemed"), s.RedeemedCount, fmt.Sprintf("%d", s.RedeemedCount)),
				metric(label("unredeemed", "Unredeemed"), s.UnredeemedPercent, analytics.FormatPercent(s.UnredeemedPercent)),
			},
			"active_cards": active,
		}, nil
	})
}

func reminderROIProvider(src ReportSource) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		if src == nil {
			return nil, errMissingReports
		}
		report, err := src.Reminders(ctx)
		if err != nil {
			return nil, err
		}
		channel := strings.ToLower(stringOr(meta.Instance.Configuration, "channel", ""))
		rows := make([]map[string]any, 0, len(report.Channels))
		for _, c := range report.Channels {
			if channel != "" && strings.ToLower(c.Channel) != channel {
				continue
			}
			rows = append(rows, map[string]any{
				"channel":  c.Channel,
				"sent":     fmt.Sprintf("%d", c.Sent),
				"delivery": analytics.FormatPercent(c.DeliveryRate),
				"savings":  analytics.FormatUSD(c.Savings),
				"roi":      analytics.FormatPercent(c.ROI),
			})
		}
		label := labeler(ctx, meta)
		return WidgetData{
			"kind": kindTable,
			"columns": []map[string]any{
				{"key": "channel", "label": label("col.channel", "Channel")},
				{"key": "sent", "label": label("col.sent", "Sent")},
				{"key": "delivery", "label": label("col.delivery", "Delivered")},
				{"key": "roi", "label": label("col.roi", "ROI")},
			},
			"rows": rows,
		}, nil
	})
}

// labeler translates widget captions under dashboard.widget.<code>.<key>.
func labeler(ctx context.Context, meta WidgetContext) func(key, fallback string) string {
	return func(key, fallback string) string {
		if meta.Translator == nil {
			return fallback
		}
		full := "dashboard.widget." + meta.Instance.DefinitionID + "." + key
		return translateOrFallback(ctx, meta.Translator, full, meta.Viewer.Locale, fallback, nil)
	}
}

func stringOr(cfg map[string]any, key, fallback string) string {
	if v, ok := cfg[key].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func intOr(cfg map[string]any, key string, fallback int) int {
	switch v := cfg[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

func boolOr(cfg map[string]any, key string, fallback bool) bool {
	if v, ok := cfg[key].(bool); ok {
		return v
	}
	return fallback
}
