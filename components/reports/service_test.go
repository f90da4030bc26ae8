package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
)

var fixedNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

type recordingTelemetry struct {
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.events = append(r.events, event)
}

func newSampleService(t *testing.T, telemetry Telemetry) *Service {
	t.Helper()
	return NewService(Options{
		Source:    StaticSource(analytics.SampleCatalogAt(fixedNow)),
		Telemetry: telemetry,
		Now:       func() time.Time { return fixedNow },
	})
}

func TestServicesReport(t *testing.T) {
	telemetry := &recordingTelemetry{}
	svc := newSampleService(t, telemetry)

	summary, err := svc.Services(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50465.0, summary.TotalRevenue)
	assert.Equal(t, []string{"reports.generate"}, telemetry.events)
}

func TestPatientsReportFiltersRowsButNotSummary(t *testing.T) {
	svc := newSampleService(t, nil)

	report, err := svc.Patients(context.Background(), PatientQuery{Search: "son", Status: analytics.PatientActive})
	require.NoError(t, err)
	assert.Equal(t, 10, report.Summary.Total)
	assert.Equal(t, 4, report.Matched)
	for _, p := range report.Patients {
		assert.Equal(t, analytics.PatientActive, p.Status)
	}

	report, err = svc.Patients(context.Background(), PatientQuery{Search: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, report.Patients)
	assert.NotNil(t, report.Patients)
}

func TestPromotionsReport(t *testing.T) {
	report, err := newSampleService(t, nil).Promotions(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Packages, 2)
	assert.Len(t, report.HappyHours, 1)
	assert.Len(t, report.PeakPricing, 2)
	assert.Equal(t, 8700.0, report.Impact.Total)
}

func TestInsightsAndOpportunities(t *testing.T) {
	svc := newSampleService(t, nil)

	groups, err := svc.Insights(context.Background(), "promotions")
	require.NoError(t, err)
	assert.Equal(t, int64(2340+1820+1100), groups.Total)

	opps, err := svc.Opportunities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1630), opps.Total)
	assert.Len(t, opps.Opportunities, 4)
}

func TestRemindersDue(t *testing.T) {
	telemetry := &recordingTelemetry{}
	svc := newSampleService(t, telemetry)

	due, err := svc.RemindersDue(context.Background(), analytics.Reminder2h)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "a2", due[0].ID)
	assert.Contains(t, telemetry.events, "reports.reminders.due")

	_, err = svc.RemindersDue(context.Background(), "weekly")
	require.ErrorIs(t, err, ErrUnknownReminderWindow)
}

func TestFetchErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	telemetry := &recordingTelemetry{}
	svc := NewService(Options{
		Source: CatalogSourceFunc(func(context.Context) (analytics.Catalog, error) {
			return analytics.Catalog{}, boom
		}),
		Telemetry: telemetry,
	})

	_, err := svc.Overview(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "reports: fetch catalog")
	assert.Equal(t, []string{"reports.catalog.error"}, telemetry.events)
}

func TestDefaultSourceServesSampleCatalog(t *testing.T) {
	svc := NewService(Options{Now: func() time.Time { return fixedNow }})

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, overview.Patients.Total)
	assert.Equal(t, analytics.DefaultConfig(), svc.Config())
}

func TestCustomConfigChangesImpact(t *testing.T) {
	cfg := analytics.DefaultConfig()
	cfg.PromotionImpact.Package = 0
	svc := NewService(Options{Config: &cfg, Now: func() time.Time { return fixedNow }})

	report, err := svc.Promotions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8700.0-2200, report.Impact.Total)
}

func TestGiftCardsRemindersOccupancy(t *testing.T) {
	svc := newSampleService(t, nil)
	ctx := context.Background()

	cards, err := svc.GiftCards(ctx)
	require.NoError(t, err)
	assert.Equal(t, 175.0, cards.Summary.ActiveBalance)

	reminders, err := svc.Reminders(ctx)
	require.NoError(t, err)
	require.Len(t, reminders.Channels, 1)
	assert.Len(t, reminders.Recent, 5)

	occupancy, err := svc.Occupancy(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fri", occupancy.Summary.Busiest.Day)

	staff, err := svc.Staff(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", staff.Top[0].ID)

	categories, err := svc.ServiceRevenue(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 5)
}

func TestIssueGiftCard(t *testing.T) {
	telemetry := &recordingTelemetry{}
	svc := newSampleService(t, telemetry)

	card, err := svc.IssueGiftCard(context.Background(), analytics.GiftCardInput{
		Amount:        120,
		RecipientName: "Ana Ruiz",
		PurchasedBy:   "Luis Ruiz",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^GIFT-2026-[0-9A-F]{4}$`, card.Code)
	assert.Equal(t, 120.0, card.Balance)
	assert.Equal(t, analytics.GiftCardActive, card.Status)
	assert.Equal(t, "2027-03-10", card.ExpiryDate)
	assert.NotEmpty(t, card.ID)
	assert.Contains(t, telemetry.events, "reports.gift_card.issue")

	_, err = svc.IssueGiftCard(context.Background(), analytics.GiftCardInput{RecipientName: "Ana"})
	assert.ErrorIs(t, err, ErrInvalidGiftCard)
	_, err = svc.IssueGiftCard(context.Background(), analytics.GiftCardInput{Amount: 10})
	assert.ErrorIs(t, err, ErrInvalidGiftCard)
}
