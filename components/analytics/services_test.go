package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeServices() []Service {
	return []Service{
		{ID: "a", Price: 110, ProductCost: 12, Popularity: 62},
		{ID: "b", Price: 180, ProductCost: 15, Popularity: 45},
		{ID: "c", Price: 135, ProductCost: 25, Popularity: 52},
	}
}

func TestTotalMonthlyRevenueExample(t *testing.T) {
	assert.Equal(t, 21940.0, TotalMonthlyRevenue(threeServices()))
}

func TestRevenueAndProfitAreLinearInPopularity(t *testing.T) {
	s := Service{Price: 135, ProductCost: 25, Popularity: 52}
	doubled := s
	doubled.Popularity *= 2

	assert.Equal(t, 2*MonthlyRevenue(s), MonthlyRevenue(doubled))
	assert.Equal(t, 2*NetProfit(s), NetProfit(doubled))
	assert.Equal(t, 5720.0, NetProfit(s))
}

func TestMargin(t *testing.T) {
	cases := []struct {
		name    string
		service Service
		want    float64
	}{
		{name: "regular", service: Service{Price: 200, ProductCost: 50}, want: 75},
		{name: "no cost", service: Service{Price: 80}, want: 100},
		{name: "cost equals price", service: Service{Price: 80, ProductCost: 80}, want: 0},
		{name: "zero price", service: Service{Price: 0, ProductCost: 10}, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Margin(tc.service)
			assert.InDelta(t, tc.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestPerformanceScoreUsesConfiguredWeights(t *testing.T) {
	w := DefaultConfig().Weights
	s := Service{RevenuePerHour: 150, Popularity: 70}
	assert.InDelta(t, 100, PerformanceScore(s, w), 1e-9)

	s = Service{RevenuePerHour: 98, Popularity: 62}
	assert.InDelta(t, 98.0/150*50+62.0/70*50, PerformanceScore(s, w), 1e-9)

	custom := ScoreWeights{RevenuePerHourReference: 100, RevenuePerHourWeight: 10, PopularityReference: 0, PopularityWeight: 90}
	assert.InDelta(t, 9.8, PerformanceScore(s, custom), 1e-9)
}

func TestPerformanceScoreDerivesHourlyRevenue(t *testing.T) {
	s := Service{Price: 180, Duration: 90}
	assert.InDelta(t, 120, HourlyRevenue(s), 1e-9)
	assert.Zero(t, HourlyRevenue(Service{Price: 180}))
}

func TestAnalyzeServicesIsStable(t *testing.T) {
	w := DefaultConfig().Weights
	services := []Service{
		{ID: "first", RevenuePerHour: 100, Popularity: 10},
		{ID: "best", RevenuePerHour: 200, Popularity: 70},
		{ID: "second", RevenuePerHour: 100, Popularity: 10},
		{ID: "third", RevenuePerHour: 100, Popularity: 10},
	}

	ranked := AnalyzeServices(services, w)
	require.Len(t, ranked, 4)
	ids := []string{ranked[0].Service.ID, ranked[1].Service.ID, ranked[2].Service.ID, ranked[3].Service.ID}
	assert.Equal(t, []string{"best", "first", "second", "third"}, ids)
	assert.Equal(t, "first", services[0].ID, "input must not be reordered")
}

func TestSummarizeServicesSample(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	summary := agg.Services(SampleCatalogAt(fixedNow).Services)

	assert.Equal(t, 50465.0, summary.TotalRevenue)
	require.Len(t, summary.TopPerformers, 3)
	assert.Equal(t, "s7", summary.TopPerformers[0].Service.ID)
	assert.Equal(t, "s2", summary.TopPerformers[1].Service.ID)
	assert.Equal(t, "s4", summary.TopPerformers[2].Service.ID)

	require.Len(t, summary.NeedsAttention, 3)
	assert.Equal(t, "s6", summary.NeedsAttention[0].Service.ID)
	assert.Equal(t, "s10", summary.NeedsAttention[1].Service.ID)
	assert.Equal(t, "s8", summary.NeedsAttention[2].Service.ID)
	assert.Greater(t, summary.AverageMargin, 0.0)
}

func TestSummarizeServicesEmpty(t *testing.T) {
	summary := SummarizeServices(nil, DefaultConfig().Weights, 3, 3)
	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.TotalNetProfit)
	assert.Zero(t, summary.AverageMargin)
	assert.Empty(t, summary.TopPerformers)
	assert.Empty(t, summary.NeedsAttention)
}

func TestRevenueByCategory(t *testing.T) {
	groups := RevenueByCategory(SampleCatalogAt(fixedNow).Services)
	require.Len(t, groups, 5)
	assert.Equal(t, CategoryMassage, groups[0].Category)
	assert.Equal(t, 8100.0+6820+4060+1875, groups[0].Revenue)
	assert.Equal(t, 45+62+28+15, groups[0].Bookings)
	assert.Equal(t, CategorySpecial, groups[4].Category)
}
