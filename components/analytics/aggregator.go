package analytics

// Aggregator applies a Config to the package level functions. The zero
// value is not usable; build one with NewAggregator.
type Aggregator struct {
	cfg Config
}

// NewAggregator captures cfg by value.
func NewAggregator(cfg Config) Aggregator {
	return Aggregator{cfg: cfg}
}

// Config returns the constants in use.
func (a Aggregator) Config() Config {
	return a.cfg
}

// Overview is the full dashboard snapshot derived from a catalog.
type Overview struct {
	Services      ServiceSummary    `json:"services"`
	Categories    []CategoryRevenue `json:"categories"`
	Patients      PatientSummary    `json:"patients"`
	Staff         StaffSummary      `json:"staff"`
	Promotions    RevenueImpact     `json:"promotions"`
	Insights      InsightGroups     `json:"insights"`
	Opportunities int64             `json:"opportunities"`
	GiftCards     GiftCardSummary   `json:"giftCards"`
	Reminders     []ReminderSummary `json:"reminders"`
	Occupancy     OccupancySummary  `json:"occupancy"`
}

// Services ranks the catalog services with the configured weights.
func (a Aggregator) Services(services []Service) ServiceSummary {
	return SummarizeServices(services, a.cfg.Weights, a.cfg.TopPerformers, a.cfg.NeedsAttention)
}

// Patients summarizes patients against the high-value spend threshold.
func (a Aggregator) Patients(patients []Patient) PatientSummary {
	return SummarizePatients(patients, a.cfg.HighValueSpend)
}

// Staff ranks therapists and splits top performers from development picks.
func (a Aggregator) Staff(therapists []Therapist) StaffSummary {
	return SummarizeStaff(therapists, a.cfg.StaffTop, a.cfg.StaffDevelopment)
}

// Promotions totals the monthly impact of active promotion rules.
func (a Aggregator) Promotions(rules []PromotionRule) RevenueImpact {
	return AggregateRevenueImpact(rules, a.cfg.PromotionImpact)
}

// Reminders summarizes each reminder campaign.
func (a Aggregator) Reminders(stats []ReminderStats) []ReminderSummary {
	out := make([]ReminderSummary, len(stats))
	for i, s := range stats {
		out[i] = SummarizeReminders(s)
	}
	return out
}

// Overview runs every aggregation over the catalog.
func (a Aggregator) Overview(catalog Catalog) Overview {
	return Overview{
		Services:      a.Services(catalog.Services),
		Categories:    RevenueByCategory(catalog.Services),
		Patients:      a.Patients(catalog.Patients),
		Staff:         a.Staff(catalog.Therapists),
		Promotions:    a.Promotions(catalog.Promotions),
		Insights:      GroupByPriority(catalog.Insights),
		Opportunities: TotalOpportunity(catalog.Opportunities),
		GiftCards:     SummarizeGiftCards(catalog.GiftCards),
		Reminders:     a.Reminders(catalog.Reminders),
		Occupancy:     SummarizeOccupancy(catalog.Occupancy),
	}
}
