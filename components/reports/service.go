package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
)

var (
	errMissingSource = errors.New("reports: catalog source not configured")

	// ErrUnknownReminderWindow is returned for reminder windows other than 24h and 2h.
	ErrUnknownReminderWindow = errors.New("reports: unknown reminder window")

	// ErrInvalidGiftCard is returned when a card has no amount or recipient.
	ErrInvalidGiftCard = errors.New("reports: invalid gift card")
)

// CatalogSource loads the records a report aggregates.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) (analytics.Catalog, error)
}

// CatalogSourceFunc adapts a function to CatalogSource.
type CatalogSourceFunc func(ctx context.Context) (analytics.Catalog, error)

// FetchCatalog implements CatalogSource.
func (fn CatalogSourceFunc) FetchCatalog(ctx context.Context) (analytics.Catalog, error) {
	return fn(ctx)
}

// StaticSource always returns the same catalog.
func StaticSource(catalog analytics.Catalog) CatalogSource {
	return CatalogSourceFunc(func(context.Context) (analytics.Catalog, error) {
		return catalog, nil
	})
}

// Telemetry records report events.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

// Options configures the reports Service.
type Options struct {
	Source    CatalogSource
	Config    *analytics.Config
	Telemetry Telemetry
	Now       func() time.Time
}

// Service fetches a catalog per call and runs the aggregator over it.
type Service struct {
	source     CatalogSource
	aggregator analytics.Aggregator
	telemetry  Telemetry
	now        func() time.Time
}

// NewService builds a Service. A nil source serves the sample catalog and a
// nil config uses analytics.DefaultConfig.
func NewService(opts Options) *Service {
	cfg := analytics.DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if opts.Telemetry == nil {
		opts.Telemetry = noopTelemetry{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Source == nil {
		now := opts.Now
		opts.Source = CatalogSourceFunc(func(context.Context) (analytics.Catalog, error) {
			return analytics.SampleCatalogAt(now()), nil
		})
	}
	return &Service{
		source:     opts.Source,
		aggregator: analytics.NewAggregator(cfg),
		telemetry:  opts.Telemetry,
		now:        opts.Now,
	}
}

// Config returns the aggregator constants.
func (s *Service) Config() analytics.Config {
	return s.aggregator.Config()
}

// Catalog returns the raw catalog snapshot.
func (s *Service) Catalog(ctx context.Context) (analytics.Catalog, error) {
	return s.fetch(ctx, "catalog")
}

// Overview aggregates every report.
func (s *Service) Overview(ctx context.Context) (analytics.Overview, error) {
	catalog, err := s.fetch(ctx, "overview")
	if err != nil {
		return analytics.Overview{}, err
	}
	return s.aggregator.Overview(catalog), nil
}

// Services ranks services by performance score.
func (s *Service) Services(ctx context.Context) (analytics.ServiceSummary, error) {
	catalog, err := s.fetch(ctx, "services")
	if err != nil {
		return analytics.ServiceSummary{}, err
	}
	return s.aggregator.Services(catalog.Services), nil
}

// ServiceRevenue returns monthly revenue grouped by category.
func (s *Service) ServiceRevenue(ctx context.Context) ([]analytics.CategoryRevenue, error) {
	catalog, err := s.fetch(ctx, "service_revenue")
	if err != nil {
		return nil, err
	}
	return analytics.RevenueByCategory(catalog.Services), nil
}

// PatientQuery narrows the patient table.
type PatientQuery struct {
	Search string
	Status analytics.PatientStatus
}

// PatientReport carries header figures over every patient and the filtered rows.
type PatientReport struct {
	Summary  analytics.PatientSummary `json:"summary"`
	Patients []analytics.Patient      `json:"patients"`
	Matched  int                      `json:"matched"`
}

// Patients filters by status then by search term.
func (s *Service) Patients(ctx context.Context, query PatientQuery) (PatientReport, error) {
	catalog, err := s.fetch(ctx, "patients")
	if err != nil {
		return PatientReport{}, err
	}
	rows := analytics.FilterBySearch(analytics.FilterByStatus(catalog.Patients, query.Status), query.Search)
	return PatientReport{
		Summary:  s.aggregator.Patients(catalog.Patients),
		Patients: rows,
		Matched:  len(rows),
	}, nil
}

// Staff ranks therapists.
func (s *Service) Staff(ctx context.Context) (analytics.StaffSummary, error) {
	catalog, err := s.fetch(ctx, "staff")
	if err != nil {
		return analytics.StaffSummary{}, err
	}
	return s.aggregator.Staff(catalog.Therapists), nil
}

// PromotionReport lists rules alongside their estimated impact.
type PromotionReport struct {
	Packages    []analytics.PromotionRule `json:"packages"`
	HappyHours  []analytics.PromotionRule `json:"happyHours"`
	PeakPricing []analytics.PromotionRule `json:"peakPricing"`
	Impact      analytics.RevenueImpact   `json:"impact"`
}

// Promotions computes the revenue impact of active rules.
func (s *Service) Promotions(ctx context.Context) (PromotionReport, error) {
	catalog, err := s.fetch(ctx, "promotions")
	if err != nil {
		return PromotionReport{}, err
	}
	return PromotionReport{
		Packages:    analytics.FilterPromotions(catalog.Promotions, analytics.PromotionPackage),
		HappyHours:  analytics.FilterPromotions(catalog.Promotions, analytics.PromotionHappyHour),
		PeakPricing: analytics.FilterPromotions(catalog.Promotions, analytics.PromotionPeakPrice),
		Impact:      s.aggregator.Promotions(catalog.Promotions),
	}, nil
}

// Insights groups insights by priority, optionally limited to one source page.
func (s *Service) Insights(ctx context.Context, source string) (analytics.InsightGroups, error) {
	catalog, err := s.fetch(ctx, "insights")
	if err != nil {
		return analytics.InsightGroups{}, err
	}
	return analytics.GroupByPriority(analytics.FilterInsightsBySource(catalog.Insights, source)), nil
}

// OpportunityReport is the revenue page "money left on the table" list.
type OpportunityReport struct {
	Opportunities []analytics.Insight `json:"opportunities"`
	Total         int64               `json:"total"`
}

// Opportunities totals the revenue page opportunities.
func (s *Service) Opportunities(ctx context.Context) (OpportunityReport, error) {
	catalog, err := s.fetch(ctx, "opportunities")
	if err != nil {
		return OpportunityReport{}, err
	}
	return OpportunityReport{
		Opportunities: catalog.Opportunities,
		Total:         analytics.TotalOpportunity(catalog.Opportunities),
	}, nil
}

// GiftCardReport lists cards with their summary.
type GiftCardReport struct {
	Cards   []analytics.GiftCard      `json:"cards"`
	Summary analytics.GiftCardSummary `json:"summary"`
}

// GiftCards summarizes sold and outstanding balances.
func (s *Service) GiftCards(ctx context.Context) (GiftCardReport, error) {
	catalog, err := s.fetch(ctx, "gift_cards")
	if err != nil {
		return GiftCardReport{}, err
	}
	return GiftCardReport{
		Cards:   catalog.GiftCards,
		Summary: analytics.SummarizeGiftCards(catalog.GiftCards),
	}, nil
}

// IssueGiftCard builds a new active card. Cards are not persisted; callers
// own storage.
func (s *Service) IssueGiftCard(ctx context.Context, input analytics.GiftCardInput) (analytics.GiftCard, error) {
	if input.Amount <= 0 {
		return analytics.GiftCard{}, fmt.Errorf("%w: amount must be positive", ErrInvalidGiftCard)
	}
	if strings.TrimSpace(input.RecipientName) == "" {
		return analytics.GiftCard{}, fmt.Errorf("%w: recipient is required", ErrInvalidGiftCard)
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	card := analytics.IssueGiftCard(uuid.NewString(), suffix, input, s.now())
	s.telemetry.Record(ctx, "reports.gift_card.issue", map[string]any{
		"code":   card.Code,
		"amount": card.Amount,
	})
	return card, nil
}

// ReminderReport carries per channel ROI and the recent message log.
type ReminderReport struct {
	Channels []analytics.ReminderSummary `json:"channels"`
	Recent   []analytics.ReminderMessage `json:"recent"`
}

// Reminders summarizes reminder delivery and ROI.
func (s *Service) Reminders(ctx context.Context) (ReminderReport, error) {
	catalog, err := s.fetch(ctx, "reminders")
	if err != nil {
		return ReminderReport{}, err
	}
	return ReminderReport{
		Channels: s.aggregator.Reminders(catalog.Reminders),
		Recent:   catalog.RecentSent,
	}, nil
}

// RemindersDue returns confirmed appointments inside the reminder window.
func (s *Service) RemindersDue(ctx context.Context, window analytics.ReminderWindow) ([]analytics.Appointment, error) {
	span, ok := window.Duration()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReminderWindow, window)
	}
	catalog, err := s.fetch(ctx, "reminders_due")
	if err != nil {
		return nil, err
	}
	due := analytics.AppointmentsDueForReminder(catalog.Appointments, span, s.now())
	s.telemetry.Record(ctx, "reports.reminders.due", map[string]any{
		"window": string(window),
		"count":  len(due),
	})
	return due, nil
}

// OccupancyReport carries the heatmap and its summary.
type OccupancyReport struct {
	Grid    analytics.OccupancyGrid    `json:"grid"`
	Summary analytics.OccupancySummary `json:"summary"`
}

// Occupancy summarizes the weekly heatmap.
func (s *Service) Occupancy(ctx context.Context) (OccupancyReport, error) {
	catalog, err := s.fetch(ctx, "occupancy")
	if err != nil {
		return OccupancyReport{}, err
	}
	return OccupancyReport{
		Grid:    catalog.Occupancy,
		Summary: analytics.SummarizeOccupancy(catalog.Occupancy),
	}, nil
}

func (s *Service) fetch(ctx context.Context, report string) (analytics.Catalog, error) {
	if s == nil || s.source == nil {
		return analytics.Catalog{}, errMissingSource
	}
	catalog, err := s.source.FetchCatalog(ctx)
	if err != nil {
		s.telemetry.Record(ctx, "reports.catalog.error", map[string]any{
			"report": report,
			"error":  err.Error(),
		})
		return analytics.Catalog{}, fmt.Errorf("reports: fetch catalog: %w", err)
	}
	s.telemetry.Record(ctx, "reports.generate", map[string]any{
		"report": report,
	})
	return catalog, nil
}
