package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-spa-dashboard/components/analytics"
	dashboard "github.com/goliatone/go-spa-dashboard/components/dashboard"
	"github.com/goliatone/go-spa-dashboard/components/reports"
)

// Report names accepted by ReportQuery.
const (
	ReportOverview       = "overview"
	ReportServices       = "services"
	ReportServiceRevenue = "service-revenue"
	ReportPatients       = "patients"
	ReportStaff          = "staff"
	ReportPromotions     = "promotions"
	ReportInsights       = "insights"
	ReportOpportunities  = "opportunities"
	ReportGiftCards      = "gift-cards"
	ReportReminders      = "reminders"
	ReportRemindersDue   = "reminders-due"
	ReportOccupancy      = "occupancy"
)

// ErrUnknownReport is returned for report names outside ReportNames.
var ErrUnknownReport = errors.New("queries: unknown report")

var reportNames = []string{
	ReportOverview,
	ReportServices,
	ReportServiceRevenue,
	ReportPatients,
	ReportStaff,
	ReportPromotions,
	ReportInsights,
	ReportOpportunities,
	ReportGiftCards,
	ReportReminders,
	ReportRemindersDue,
	ReportOccupancy,
}

// ReportNames lists every report in display order.
func ReportNames() []string {
	return append([]string(nil), reportNames...)
}

// ReportInput selects a report and its filters. Filters that do not apply to
// the selected report are ignored.
type ReportInput struct {
	Report string `json:"report"`
	Search string `json:"search,omitempty"`
	Status string `json:"status,omitempty"`
	Source string `json:"source,omitempty"`
	// Window is the reminder look-ahead, "24h" or "2h".
	Window string `json:"window,omitempty"`
}

type reportService interface {
	dashboard.ReportSource
	RemindersDue(ctx context.Context, window analytics.ReminderWindow) ([]analytics.Appointment, error)
}

var _ reportService = (*reports.Service)(nil)

// ReportQuery runs one spa report by name.
type ReportQuery struct {
	service reportService
}

// NewReportQuery builds the query.
func NewReportQuery(service reportService) *ReportQuery {
	return &ReportQuery{service: service}
}

var _ gocommand.Querier[ReportInput, any] = (*ReportQuery)(nil)

// Query returns the report payload, ready for JSON encoding.
func (q *ReportQuery) Query(ctx context.Context, input ReportInput) (any, error) {
	if q.service == nil {
		return nil, errors.New("report query requires service")
	}
	switch strings.ToLower(strings.TrimSpace(input.Report)) {
	case ReportOverview:
		return q.service.Overview(ctx)
	case ReportServices:
		return q.service.Services(ctx)
	case ReportServiceRevenue:
		return q.service.ServiceRevenue(ctx)
	case ReportPatients:
		return q.service.Patients(ctx, reports.PatientQuery{
			Search: input.Search,
			Status: analytics.PatientStatus(strings.ToLower(input.Status)),
		})
	case ReportStaff:
		return q.service.Staff(ctx)
	case ReportPromotions:
		return q.service.Promotions(ctx)
	case ReportInsights:
		return q.service.Insights(ctx, input.Source)
	case ReportOpportunities:
		return q.service.Opportunities(ctx)
	case ReportGiftCards:
		return q.service.GiftCards(ctx)
	case ReportReminders:
		return q.service.Reminders(ctx)
	case ReportRemindersDue:
		window := analytics.ReminderWindow(input.Window)
		if window == "" {
			window = analytics.Reminder24h
		}
		return q.service.RemindersDue(ctx, window)
	case ReportOccupancy:
		return q.service.Occupancy(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownReport, input.Report)
	}
}
