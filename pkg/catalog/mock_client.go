package catalog

import (
	"context"
	"sync"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
)

// MockClient implements Client using an in-memory catalog.
type MockClient struct {
	data analytics.Catalog
	mu   sync.RWMutex
}

// NewMockClient builds a mock client from the provided fixtures.
func NewMockClient(data analytics.Catalog) *MockClient {
	return &MockClient{data: data}
}

// SetCatalog swaps the served catalog.
func (c *MockClient) SetCatalog(data analytics.Catalog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
}

// FetchCatalog returns a copy of the configured catalog.
func (c *MockClient) FetchCatalog(context.Context) (analytics.Catalog, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneCatalog(c.data), nil
}

// FetchServices returns a copy of the configured services.
func (c *MockClient) FetchServices(context.Context) ([]analytics.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]analytics.Service{}, c.data.Services...), nil
}

// FetchPatients applies the status and search filters locally.
func (c *MockClient) FetchPatients(_ context.Context, query PatientQuery) ([]analytics.Patient, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return analytics.FilterBySearch(analytics.FilterByStatus(c.data.Patients, query.Status), query.Search), nil
}

func cloneCatalog(in analytics.Catalog) analytics.Catalog {
	out := analytics.Catalog{
		Services:      append([]analytics.Service(nil), in.Services...),
		Patients:      append([]analytics.Patient(nil), in.Patients...),
		Therapists:    make([]analytics.Therapist, len(in.Therapists)),
		Promotions:    make([]analytics.PromotionRule, len(in.Promotions)),
		Insights:      append([]analytics.Insight(nil), in.Insights...),
		Opportunities: append([]analytics.Insight(nil), in.Opportunities...),
		GiftCards:     append([]analytics.GiftCard(nil), in.GiftCards...),
		Reminders:     append([]analytics.ReminderStats(nil), in.Reminders...),
		RecentSent:    append([]analytics.ReminderMessage(nil), in.RecentSent...),
		Appointments:  append([]analytics.Appointment(nil), in.Appointments...),
		Occupancy: analytics.OccupancyGrid{
			Hours: append([]string(nil), in.Occupancy.Hours...),
			Days:  make([]analytics.OccupancyDay, len(in.Occupancy.Days)),
		},
	}
	for i, t := range in.Therapists {
		t.Specialties = append([]string(nil), t.Specialties...)
		t.Availability = append([]string(nil), t.Availability...)
		out.Therapists[i] = t
	}
	for i, p := range in.Promotions {
		p.Services = append([]string(nil), p.Services...)
		out.Promotions[i] = p
	}
	for i, d := range in.Occupancy.Days {
		out.Occupancy.Days[i] = analytics.OccupancyDay{Day: d.Day, Slots: append([]float64(nil), d.Slots...)}
	}
	return out
}
