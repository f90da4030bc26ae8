package export

import (
	"context"
	"strings"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
	"github.com/goliatone/go-spa-dashboard/components/reports"
)

func summarySheet(ctx context.Context, src Source) (Sheet, error) {
	overview, err := src.Overview(ctx)
	if err != nil {
		return Sheet{}, err
	}
	return Sheet{
		Header: []string{"Metric", "Value", "Display"},
		Rows: [][]any{
			{"Monthly revenue", overview.Services.TotalRevenue, analytics.FormatUSD(overview.Services.TotalRevenue)},
			{"Net profit", overview.Services.TotalNetProfit, analytics.FormatUSD(overview.Services.TotalNetProfit)},
			{"Average margin", overview.Services.AverageMargin, analytics.FormatPercent(overview.Services.AverageMargin)},
			{"Patients", overview.Patients.Total, ""},
			{"Active patients", overview.Patients.Active, ""},
			{"Staff bookings", overview.Staff.TotalBookings, ""},
			{"Promotion impact", overview.Promotions.Total, analytics.FormatImpact(overview.Promotions.Total)},
			{"Opportunities", overview.Opportunities, analytics.FormatImpact(float64(overview.Opportunities))},
			{"Gift card balance", overview.GiftCards.ActiveBalance, analytics.FormatUSD(overview.GiftCards.ActiveBalance)},
			{"Average occupancy", overview.Occupancy.Overall, analytics.FormatPercent(overview.Occupancy.Overall)},
		},
	}, nil
}

func servicesSheet(ctx context.Context, src Source) (Sheet, error) {
	summary, err := src.Services(ctx)
	if err != nil {
		return Sheet{}, err
	}
	rows := make([][]any, len(summary.Services))
	for i, a := range summary.Services {
		rows[i] = []any{
			a.Service.Name, string(a.Service.Category), a.Service.Price, a.Service.Popularity,
			a.Service.ProductCost, a.MonthlyRevenue, a.NetProfit, a.Margin, a.Score,
		}
	}
	return Sheet{
		Header: []string{"Service", "Category", "Price", "Bookings", "Product Cost", "Monthly Revenue", "Net Profit", "Margin %", "Score"},
		Rows:   rows,
	}, nil
}

func patientsSheet(ctx context.Context, src Source) (Sheet, error) {
	report, err := src.Patients(ctx, reports.PatientQuery{})
	if err != nil {
		return Sheet{}, err
	}
	rows := make([][]any, len(report.Patients))
	for i, p := range report.Patients {
		rows[i] = []any{p.Name, p.Email, string(p.Status), p.TotalVisits, p.TotalSpent, p.LastVisit, p.NextAppointment}
	}
	return Sheet{
		Header: []string{"Patient", "Email", "Status", "Visits", "Total Spent", "Last Visit", "Next Appointment"},
		Rows:   rows,
	}, nil
}

func staffSheet(ctx context.Context, src Source) (Sheet, error) {
	summary, err := src.Staff(ctx)
	if err != nil {
		return Sheet{}, err
	}
	rows := make([][]any, len(summary.Ranked))
	for i, t := range summary.Ranked {
		rows[i] = []any{i + 1, t.Name, strings.Join(t.Specialties, ", "), t.Performance, t.BookingsThisMonth, t.RevenueThisMonth}
	}
	return Sheet{
		Header: []string{"Rank", "Therapist", "Specialties", "Performance", "Bookings", "Revenue"},
		Rows:   rows,
	}, nil
}

func promotionsSheet(ctx context.Context, src Source) (Sheet, error) {
	report, err := src.Promotions(ctx)
	if err != nil {
		return Sheet{}, err
	}
	var rows [][]any
	for _, group := range [][]analytics.PromotionRule{report.Packages, report.HappyHours, report.PeakPricing} {
		for _, rule := range group {
			rows = append(rows, []any{rule.Name, string(rule.Kind), rule.Percent, rule.Active, rule.Day, rule.StartTime, rule.EndTime})
		}
	}
	return Sheet{
		Header: []string{"Promotion", "Kind", "Percent", "Active", "Day", "Start", "End"},
		Rows:   rows,
	}, nil
}

func insightsSheet(ctx context.Context, src Source) (Sheet, error) {
	groups, err := src.Insights(ctx, "")
	if err != nil {
		return Sheet{}, err
	}
	var rows [][]any
	for _, group := range [][]analytics.Insight{groups.High, groups.Medium, groups.Low} {
		for _, in := range group {
			rows = append(rows, []any{string(in.Priority), in.Title, in.Impact, analytics.ParseImpact(in.Impact), in.Source, in.Action})
		}
	}
	return Sheet{
		Header: []string{"Priority", "Insight", "Impact", "Impact $", "Source", "Action"},
		Rows:   rows,
	}, nil
}

func giftCardsSheet(ctx context.Context, src Source) (Sheet, error) {
	report, err := src.GiftCards(ctx)
	if err != nil {
		return Sheet{}, err
	}
	rows := make([][]any, len(report.Cards))
	for i, c := range report.Cards {
		rows[i] = []any{c.Code, c.RecipientName, c.Amount, c.Balance, string(c.Status), c.PurchaseDate, c.ExpiryDate}
	}
	return Sheet{
		Header: []string{"Code", "Recipient", "Amount", "Balance", "Status", "Purchased", "Expires"},
		Rows:   rows,
	}, nil
}

func remindersSheet(ctx context.Context, src Source) (Sheet, error) {
	report, err := src.Reminders(ctx)
	if err != nil {
		return Sheet{}, err
	}
	rows := make([][]any, len(report.Channels))
	for i, c := range report.Channels {
		rows[i] = []any{c.Channel, c.Sent, c.DeliveryRate, c.FailureRate, c.Cost, c.Savings, c.ROI}
	}
	return Sheet{
		Header: []string{"Channel", "Sent", "Delivery %", "Failure %", "Cost", "Savings", "ROI %"},
		Rows:   rows,
	}, nil
}

func occupancySheet(ctx context.Context, src Source) (Sheet, error) {
	report, err := src.Occupancy(ctx)
	if err != nil {
		return Sheet{}, err
	}
	header := append([]string{"Day"}, report.Grid.Hours...)
	rows := make([][]any, len(report.Grid.Days))
	for i, day := range report.Grid.Days {
		row := make([]any, 0, len(day.Slots)+1)
		row = append(row, day.Day)
		for _, v := range day.Slots {
			row = append(row, v)
		}
		rows[i] = row
	}
	return Sheet{Header: header, Rows: rows}, nil
}
