package analytics

import "time"

// SampleCatalog returns the demo data set with appointments scheduled
// relative to the current time.
func SampleCatalog() Catalog {
	return SampleCatalogAt(time.Now())
}

// SampleCatalogAt returns the demo data set with appointments scheduled
// relative to now. Every call returns fresh slices.
func SampleCatalogAt(now time.Time) Catalog {
	return Catalog{
		Services:      sampleServices(),
		Patients:      samplePatients(),
		Therapists:    sampleTherapists(),
		Promotions:    samplePromotions(),
		Insights:      sampleInsights(),
		Opportunities: sampleOpportunities(),
		GiftCards:     sampleGiftCards(),
		Reminders:     sampleReminders(),
		RecentSent:    sampleRecentReminders(),
		Appointments:  sampleAppointments(now),
		Occupancy:     sampleOccupancy(),
	}
}

func sampleServices() []Service {
	return []Service{
		{ID: "s1", Name: "Deep Tissue Massage", Description: "90-minute therapeutic massage focusing on chronic tension", Duration: 90, Price: 180, Category: CategoryMassage, Popularity: 45, ProductCost: 15, RevenuePerHour: 120},
		{ID: "s2", Name: "Swedish Massage", Description: "60-minute relaxation massage with essential oils", Duration: 60, Price: 110, Category: CategoryMassage, Popularity: 62, ProductCost: 12, RevenuePerHour: 98},
		{ID: "s3", Name: "Hot Stone Therapy", Description: "75-minute massage using heated stones", Duration: 75, Price: 145, Category: CategoryMassage, Popularity: 28, ProductCost: 18, RevenuePerHour: 101},
		{ID: "s4", Name: "Signature Facial", Description: "60-minute customized facial treatment", Duration: 60, Price: 135, Category: CategoryFacial, Popularity: 52, ProductCost: 25, RevenuePerHour: 110},
		{ID: "s5", Name: "Anti-Aging Facial", Description: "90-minute advanced anti-aging treatment", Duration: 90, Price: 210, Category: CategoryFacial, Popularity: 31, ProductCost: 45, RevenuePerHour: 110},
		{ID: "s6", Name: "Body Scrub & Wrap", Description: "90-minute exfoliation and detox treatment", Duration: 90, Price: 165, Category: CategoryBody, Popularity: 22, ProductCost: 30, RevenuePerHour: 90},
		{ID: "s7", Name: "Couples Massage", Description: "60-minute synchronized massage for two", Duration: 60, Price: 250, Category: CategoryCouples, Popularity: 18, ProductCost: 24, RevenuePerHour: 226},
		{ID: "s8", Name: "Prenatal Massage", Description: "60-minute gentle massage for expecting mothers", Duration: 60, Price: 125, Category: CategoryMassage, Popularity: 15, ProductCost: 10, RevenuePerHour: 115},
		{ID: "s9", Name: "Express Facial", Description: "30-minute quick refresh facial", Duration: 30, Price: 75, Category: CategoryFacial, Popularity: 38, ProductCost: 15, RevenuePerHour: 120},
		{ID: "s10", Name: "Luxury Spa Package", Description: "3-hour complete spa experience", Duration: 180, Price: 425, Category: CategorySpecial, Popularity: 12, ProductCost: 65, RevenuePerHour: 120},
	}
}

func samplePatients() []Patient {
	return []Patient{
		{ID: "p1", Name: "Sarah Mitchell", Email: "sarah.mitchell@email.com", Phone: "+1 (555) 234-5678", DateOfBirth: "1985-03-15", LastVisit: "2 days ago", NextAppointment: "Tomorrow 10:00 AM", TotalVisits: 24, TotalSpent: 3240, Status: PatientActive, MemberSince: "2023-01-10"},
		{ID: "p2", Name: "Michael Chen", Email: "michael.chen@techcorp.com", Phone: "+1 (555) 345-6789", DateOfBirth: "1978-11-22", LastVisit: "1 week ago", NextAppointment: "Friday 3:00 PM", TotalVisits: 18, TotalSpent: 2475, Status: PatientActive, MemberSince: "2023-05-20"},
		{ID: "p3", Name: "Jennifer Rodriguez", Email: "j.rodriguez@gmail.com", Phone: "+1 (555) 456-7890", DateOfBirth: "1992-07-08", LastVisit: "3 days ago", TotalVisits: 31, TotalSpent: 4650, Status: PatientActive, MemberSince: "2022-08-15"},
		{ID: "p4", Name: "David Thompson", Email: "dthompson@finance.com", Phone: "+1 (555) 567-8901", DateOfBirth: "1970-04-30", LastVisit: "Today", NextAppointment: "Today 4:30 PM", TotalVisits: 6, TotalSpent: 780, Status: PatientActive, MemberSince: "2024-09-05"},
		{ID: "p5", Name: "Emily Watson", Email: "emily.w@creative.studio", Phone: "+1 (555) 678-9012", DateOfBirth: "1988-12-10", LastVisit: "1 month ago", TotalVisits: 42, TotalSpent: 5985, Status: PatientActive, MemberSince: "2022-02-20"},
		{ID: "p6", Name: "Robert Johnson", Email: "rob.johnson@law.com", Phone: "+1 (555) 789-0123", DateOfBirth: "1965-09-25", LastVisit: "2 weeks ago", NextAppointment: "Monday 2:00 PM", TotalVisits: 12, TotalSpent: 1560, Status: PatientActive, MemberSince: "2023-11-10"},
		{ID: "p7", Name: "Amanda Foster", Email: "amanda.foster@startup.io", Phone: "+1 (555) 890-1234", DateOfBirth: "1995-06-18", LastVisit: "5 days ago", TotalVisits: 28, TotalSpent: 3220, Status: PatientActive, MemberSince: "2023-03-15"},
		{ID: "p8", Name: "Lisa Anderson", Email: "lisa.a@health.org", Phone: "+1 (555) 901-2345", DateOfBirth: "1990-02-14", LastVisit: "3 months ago", TotalVisits: 8, TotalSpent: 960, Status: PatientInactive},
		{ID: "p9", Name: "Patricia Lee", Email: "patricia.lee@consultant.com", Phone: "+1 (555) 012-3456", DateOfBirth: "1983-08-05", LastVisit: "1 week ago", NextAppointment: "Next Thursday 11:00 AM", TotalVisits: 19, TotalSpent: 3610, Status: PatientActive, MemberSince: "2023-06-01"},
		{ID: "p10", Name: "James Wilson", Email: "james.wilson@corp.com", Phone: "+1 (555) 123-4567", DateOfBirth: "1972-01-20", LastVisit: "4 days ago", NextAppointment: "Saturday 9:00 AM", TotalVisits: 15, TotalSpent: 2025, Status: PatientActive, MemberSince: "2023-09-10"},
	}
}

func sampleTherapists() []Therapist {
	return []Therapist{
		{ID: "t1", Name: "Jessica Martinez", Specialties: []string{"Deep Tissue", "Sports Massage", "Trigger Point"}, HourlyRate: 45, Performance: 95, BookingsThisMonth: 68, RevenueThisMonth: 7820, Availability: []string{"Mon", "Tue", "Wed", "Thu", "Fri"}},
		{ID: "t2", Name: "David Park", Specialties: []string{"Swedish", "Hot Stone", "Aromatherapy"}, HourlyRate: 42, Performance: 88, BookingsThisMonth: 52, RevenueThisMonth: 5940, Availability: []string{"Tue", "Wed", "Thu", "Fri", "Sat"}},
		{ID: "t3", Name: "Rachel Green", Specialties: []string{"Facials", "Anti-Aging", "Skincare"}, HourlyRate: 48, Performance: 92, BookingsThisMonth: 61, RevenueThisMonth: 8235, Availability: []string{"Mon", "Tue", "Thu", "Fri", "Sat"}},
		{ID: "t4", Name: "Michelle Adams", Specialties: []string{"Prenatal", "Swedish", "Relaxation"}, HourlyRate: 43, Performance: 90, BookingsThisMonth: 45, RevenueThisMonth: 5175, Availability: []string{"Mon", "Wed", "Thu", "Fri"}},
		{ID: "t5", Name: "Brandon Cole", Specialties: []string{"Sports Massage", "Deep Tissue", "Couples"}, HourlyRate: 44, Performance: 85, BookingsThisMonth: 38, RevenueThisMonth: 4560, Availability: []string{"Wed", "Thu", "Fri", "Sat", "Sun"}},
	}
}

func samplePromotions() []PromotionRule {
	return []PromotionRule{
		{ID: "pkg-1", Name: "Relaxation Package", Kind: PromotionPackage, Percent: 10, Active: true, Services: []string{"Swedish Massage", "Aromatherapy"}, Price: 198},
		{ID: "pkg-2", Name: "Renewal Package", Kind: PromotionPackage, Percent: 12, Active: true, Services: []string{"Signature Facial", "Hot Stone Therapy"}, Price: 246},
		{ID: "hh-1", Name: "Tuesday Afternoon Special", Kind: PromotionHappyHour, Percent: 15, Active: true, Day: "Tuesday", StartTime: "14:00", EndTime: "16:00"},
		{ID: "dp-1", Name: "Deep Tissue Massage", Kind: PromotionPeakPrice, Percent: 15, Active: true, Day: "Friday", StartTime: "17:00", EndTime: "19:00", Services: []string{"Deep Tissue Massage"}},
		{ID: "dp-2", Name: "Signature Facial", Kind: PromotionPeakPrice, Percent: 12, Active: true, Day: "Saturday", StartTime: "10:00", EndTime: "14:00", Services: []string{"Signature Facial"}},
	}
}

func sampleInsights() []Insight {
	return []Insight{
		{Title: "Peak Performance Optimizer", Description: "Increase pricing during high-demand peak hours (Friday 5-7pm) to maximize revenue without losing bookings.", Impact: "+$2,340/mo", Priority: PriorityHigh, Source: "promotions"},
		{Title: "Fill the Gaps Strategy", Description: "Offer strategic discounts during low-traffic periods (Tuesday 2-4pm) to fill empty slots and boost revenue.", Impact: "+$1,820/mo", Priority: PriorityHigh, Source: "promotions"},
		{Title: "No-Show Prevention", Description: "Implement stricter no-show policies with credit card holds to reduce the current 3% no-show rate.", Impact: "+$4,680/mo", Priority: PriorityHigh, Source: "sms-reminders"},
		{Title: "Capacity Utilization", Description: "Optimize staff scheduling by adding top performers during peak hours and reducing coverage during slow periods.", Impact: "+$6,420/mo", Priority: PriorityHigh, Source: "staff"},
		{Title: "Seasonal Trend Analyzer", Description: "Prepare inventory and promotions based on seasonal booking patterns (summer facials, winter hot stone).", Impact: "+$3,150/mo", Priority: PriorityMedium, Source: "services"},
		{Title: "Service Bundle Creator", Description: "Create attractive service packages that increase average booking value and encourage clients to try multiple services.", Impact: "+$1,100/mo", Priority: PriorityMedium, Source: "promotions"},
		{Title: "Price Elasticity Testing", Description: "Test price sensitivity for high-demand services to find optimal pricing that maximizes revenue without losing clients.", Impact: "+$1,575/mo", Priority: PriorityMedium, Source: "services"},
		{Title: "Customer Behavior Patterns", Description: "Send targeted \"We miss you\" campaigns to inactive clients and birthday promotions to drive repeat bookings.", Impact: "+$890/mo", Priority: PriorityLow, Source: "patients"},
	}
}

func sampleOpportunities() []Insight {
	return []Insight{
		{Title: "Peak Hour Pricing", Window: "Fri 5-7pm", Impact: "+$580/mo", Action: "Increase prices 15%", Source: "revenue"},
		{Title: "Fill Tuesday Gaps", Window: "Tue 2-4pm", Impact: "+$450/mo", Action: "Offer 15% discount", Source: "revenue"},
		{Title: "Weekend Mornings", Window: "Sat-Sun 9-11am", Impact: "+$320/mo", Action: "Promote early slots", Source: "revenue"},
		{Title: "Thursday Evenings", Window: "Thu 6-8pm", Impact: "+$280/mo", Action: "Add therapist hours", Source: "revenue"},
	}
}

func sampleGiftCards() []GiftCard {
	return []GiftCard{
		{ID: "1", Code: "GIFT-2024-ABCD", Amount: 150, Balance: 150, RecipientName: "Sarah Mitchell", RecipientEmail: "sarah.m@email.com", PurchasedBy: "John Mitchell", PurchaseDate: "2024-01-15", ExpiryDate: "2025-01-15", Status: GiftCardActive},
		{ID: "2", Code: "GIFT-2024-EFGH", Amount: 100, Balance: 25, RecipientName: "Emma Johnson", RecipientEmail: "emma.j@email.com", PurchasedBy: "Michael Chen", PurchaseDate: "2024-02-01", ExpiryDate: "2025-02-01", Status: GiftCardActive},
		{ID: "3", Code: "GIFT-2024-IJKL", Amount: 200, Balance: 0, RecipientName: "Lisa Anderson", RecipientEmail: "lisa.a@email.com", PurchasedBy: "David Rodriguez", PurchaseDate: "2023-12-20", ExpiryDate: "2024-12-20", Status: GiftCardRedeemed},
		{ID: "4", Code: "GIFT-2023-MNOP", Amount: 50, Balance: 50, RecipientName: "Maria Garcia", RecipientEmail: "maria.g@email.com", PurchasedBy: "Carlos Martinez", PurchaseDate: "2023-11-10", ExpiryDate: "2024-11-10", Status: GiftCardExpired},
	}
}

func sampleReminders() []ReminderStats {
	return []ReminderStats{
		{Channel: "sms", Sent: 847, Delivered: 839, Failed: 8, Cost: 5.21, NoShowReduction: 9, Savings: 2450},
	}
}

func sampleRecentReminders() []ReminderMessage {
	return []ReminderMessage{
		{Patient: "Sarah Mitchell", SentAt: "2 hours ago", Status: "delivered", Message: "24h reminder for Deep Tissue"},
		{Patient: "Michael Chen", SentAt: "3 hours ago", Status: "delivered", Message: "2h reminder for Swedish Massage"},
		{Patient: "Emma Johnson", SentAt: "4 hours ago", Status: "delivered", Message: "24h reminder for Facial"},
		{Patient: "David Rodriguez", SentAt: "5 hours ago", Status: "failed", Message: "24h reminder for Hot Stone"},
		{Patient: "Lisa Anderson", SentAt: "6 hours ago", Status: "delivered", Message: "2h reminder for Couples Massage"},
	}
}

func sampleAppointments(now time.Time) []Appointment {
	at := func(d time.Duration) time.Time { return now.Add(d).Truncate(time.Minute) }
	return []Appointment{
		{ID: "a1", PatientID: "p1", ServiceID: "s1", TherapistID: "t1", RoomID: "individual", StartsAt: at(20 * time.Hour), Status: AppointmentConfirmed, Price: 180},
		{ID: "a2", PatientID: "p4", ServiceID: "s2", TherapistID: "t2", RoomID: "individual", StartsAt: at(90 * time.Minute), Status: AppointmentConfirmed, Price: 110},
		{ID: "a3", PatientID: "p2", ServiceID: "s4", TherapistID: "t3", RoomID: "individual", StartsAt: at(30 * time.Hour), Status: AppointmentConfirmed, Price: 135},
		{ID: "a4", PatientID: "p6", ServiceID: "s3", TherapistID: "t2", RoomID: "principal", StartsAt: at(5 * time.Hour), Status: AppointmentCancelled, Price: 145},
		{ID: "a5", PatientID: "p10", ServiceID: "s7", TherapistID: "t5", RoomID: "principal", StartsAt: at(-3 * time.Hour), Status: AppointmentCompleted, Price: 250},
	}
}

func sampleOccupancy() OccupancyGrid {
	return OccupancyGrid{
		Hours: []string{"9am", "10am", "11am", "12pm", "1pm", "2pm", "3pm", "4pm", "5pm", "6pm"},
		Days: []OccupancyDay{
			{Day: "Mon", Slots: []float64{45, 60, 75, 80, 85, 90, 75, 60, 40, 30}},
			{Day: "Tue", Slots: []float64{50, 55, 40, 35, 70, 80, 85, 70, 50, 35}},
			{Day: "Wed", Slots: []float64{55, 65, 70, 75, 85, 95, 90, 80, 60, 45}},
			{Day: "Thu", Slots: []float64{60, 70, 80, 85, 90, 95, 85, 75, 55, 40}},
			{Day: "Fri", Slots: []float64{70, 80, 90, 95, 100, 100, 95, 90, 70, 50}},
			{Day: "Sat", Slots: []float64{75, 85, 90, 90, 85, 80, 70, 60, 45, 30}},
			{Day: "Sun", Slots: []float64{60, 70, 75, 70, 65, 60, 50, 40, 30, 20}},
		},
	}
}
