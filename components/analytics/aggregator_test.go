package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func TestOverviewSample(t *testing.T) {
	overview := NewAggregator(DefaultConfig()).Overview(SampleCatalogAt(fixedNow))

	assert.Equal(t, 50465.0, overview.Services.TotalRevenue)
	assert.Equal(t, 8700.0, overview.Promotions.Total)
	assert.Equal(t, int64(21975), overview.Insights.Total)
	assert.Equal(t, int64(1630), overview.Opportunities)
	assert.Equal(t, 10, overview.Patients.Total)
	assert.Equal(t, 264, overview.Staff.TotalBookings)
	assert.Equal(t, 500.0, overview.GiftCards.TotalSold)
	require.Len(t, overview.Reminders, 1)
	assert.Equal(t, "sms", overview.Reminders[0].Channel)
	assert.Equal(t, "Fri", overview.Occupancy.Busiest.Day)
}

func TestOverviewEmptyCatalog(t *testing.T) {
	overview := NewAggregator(DefaultConfig()).Overview(Catalog{})

	assert.Zero(t, overview.Services.TotalRevenue)
	assert.Zero(t, overview.Services.AverageMargin)
	assert.Zero(t, overview.Patients.AverageSpend)
	assert.Zero(t, overview.Staff.AveragePerformance)
	assert.Zero(t, overview.Staff.RevenuePerBooking)
	assert.Zero(t, overview.GiftCards.UnredeemedPercent)
	assert.Zero(t, overview.Occupancy.Overall)
	assert.Empty(t, overview.Reminders)
}

func TestSampleCatalogReturnsFreshSlices(t *testing.T) {
	first := SampleCatalogAt(fixedNow)
	first.Services[0].Name = "changed"

	second := SampleCatalogAt(fixedNow)
	assert.Equal(t, "Deep Tissue Massage", second.Services[0].Name)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
weights:
  revenuePerHourReference: 200
promotionImpact:
  happyHour: 2000
`))
	require.NoError(t, err)

	assert.Equal(t, 200.0, cfg.Weights.RevenuePerHourReference)
	assert.Equal(t, float64(DefaultRevenuePerHourWeight), cfg.Weights.RevenuePerHourWeight)
	assert.Equal(t, 2000.0, cfg.PromotionImpact.HappyHour)
	assert.Equal(t, float64(DefaultPackageImpact), cfg.PromotionImpact.Package)
}

func TestLoadConfigEmptyDocument(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigRejectsUnknownAndNegative(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("unknown: 1\n"))
	require.Error(t, err)

	_, err = LoadConfig(strings.NewReader("highValueSpend: -1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "highValueSpend")
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$21,940", FormatUSD(21940))
	assert.Equal(t, "$0", FormatUSD(0))
	assert.Equal(t, "-$1,200", FormatUSD(-1200))
	assert.Equal(t, "47%", FormatPercent(46.6))
	assert.Equal(t, "+$2,340/mo", FormatImpact(2340))
	assert.Equal(t, int64(2340), ParseImpact(FormatImpact(2340)))
}
