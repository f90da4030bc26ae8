package analytics

import "time"

// ServiceCategory groups bookable offerings on the services page.
type ServiceCategory string

const (
	CategoryMassage ServiceCategory = "massage"
	CategoryFacial  ServiceCategory = "facial"
	CategoryBody    ServiceCategory = "body"
	CategoryCouples ServiceCategory = "couples"
	CategorySpecial ServiceCategory = "special"
)

// Service is a bookable spa offering.
type Service struct {
	ID             string          `json:"id" yaml:"id" validate:"required"`
	Name           string          `json:"name" yaml:"name" validate:"required"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	Category       ServiceCategory `json:"category" yaml:"category" validate:"required,oneof=massage facial body couples special"`
	Duration       int             `json:"duration" yaml:"duration" validate:"gte=0"`
	Price          float64         `json:"price" yaml:"price" validate:"gtfield=ProductCost"`
	Popularity     int             `json:"popularity" yaml:"popularity" validate:"gte=0"`
	ProductCost    float64         `json:"productCost" yaml:"productCost" validate:"gte=0"`
	RevenuePerHour float64         `json:"revenuePerHour,omitempty" yaml:"revenuePerHour,omitempty" validate:"gte=0"`
}

// PatientStatus reports whether a patient is still booking.
type PatientStatus string

const (
	PatientActive   PatientStatus = "active"
	PatientInactive PatientStatus = "inactive"
)

// Patient is a customer record with visit and spend history.
type Patient struct {
	ID              string        `json:"id" yaml:"id" validate:"required"`
	Name            string        `json:"name" yaml:"name" validate:"required"`
	Email           string        `json:"email" yaml:"email" validate:"omitempty,email"`
	Phone           string        `json:"phone,omitempty" yaml:"phone,omitempty"`
	DateOfBirth     string        `json:"dateOfBirth,omitempty" yaml:"dateOfBirth,omitempty"`
	LastVisit       string        `json:"lastVisit,omitempty" yaml:"lastVisit,omitempty"`
	NextAppointment string        `json:"nextAppointment,omitempty" yaml:"nextAppointment,omitempty"`
	TotalVisits     int           `json:"totalVisits" yaml:"totalVisits" validate:"gte=0"`
	TotalSpent      float64       `json:"totalSpent" yaml:"totalSpent" validate:"gte=0"`
	Status          PatientStatus `json:"status" yaml:"status" validate:"required,oneof=active inactive"`
	MemberSince     string        `json:"memberSince,omitempty" yaml:"memberSince,omitempty"`
}

// Therapist is a staff member whose bookings and performance are tracked.
type Therapist struct {
	ID                string   `json:"id" yaml:"id" validate:"required"`
	Name              string   `json:"name" yaml:"name" validate:"required"`
	Specialties       []string `json:"specialties,omitempty" yaml:"specialties,omitempty"`
	HourlyRate        float64  `json:"hourlyRate" yaml:"hourlyRate" validate:"gte=0"`
	Performance       float64  `json:"performance" yaml:"performance" validate:"gte=0,lte=100"`
	BookingsThisMonth int      `json:"bookingsThisMonth" yaml:"bookingsThisMonth" validate:"gte=0"`
	RevenueThisMonth  float64  `json:"revenueThisMonth" yaml:"revenueThisMonth" validate:"gte=0"`
	Availability      []string `json:"availability,omitempty" yaml:"availability,omitempty"`
}

// PromotionKind selects the fixed revenue impact applied to a rule.
type PromotionKind string

const (
	PromotionPackage   PromotionKind = "package"
	PromotionHappyHour PromotionKind = "happy_hour"
	PromotionPeakPrice PromotionKind = "peak_price"
)

// PromotionRule is a discount or surcharge tied to a bundle or time window.
// Percent is a discount for packages and happy hours and a surcharge for
// peak pricing.
type PromotionRule struct {
	ID        string        `json:"id" yaml:"id" validate:"required"`
	Name      string        `json:"name" yaml:"name"`
	Kind      PromotionKind `json:"kind" yaml:"kind" validate:"required,oneof=package happy_hour peak_price"`
	Percent   float64       `json:"percent" yaml:"percent" validate:"gte=0,lte=100"`
	Active    bool          `json:"active" yaml:"active"`
	Day       string        `json:"day,omitempty" yaml:"day,omitempty"`
	StartTime string        `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime   string        `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	Services  []string      `json:"services,omitempty" yaml:"services,omitempty"`
	Price     float64       `json:"price,omitempty" yaml:"price,omitempty" validate:"gte=0"`
}

// Priority ranks insights on the insights page.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Insight is a recommendation carrying a human readable impact label such as "+$2,340/mo".
type Insight struct {
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Impact      string   `json:"impact" yaml:"impact"`
	Priority    Priority `json:"priority" yaml:"priority" validate:"omitempty,oneof=high medium low"`
	Action      string   `json:"action,omitempty" yaml:"action,omitempty"`
	Window      string   `json:"window,omitempty" yaml:"window,omitempty"`
	Source      string   `json:"source,omitempty" yaml:"source,omitempty"`
}

// GiftCardStatus tracks the redemption lifecycle of a card.
type GiftCardStatus string

const (
	GiftCardActive   GiftCardStatus = "active"
	GiftCardRedeemed GiftCardStatus = "redeemed"
	GiftCardExpired  GiftCardStatus = "expired"
)

// GiftCard is a prepaid balance sold to a customer.
type GiftCard struct {
	ID             string         `json:"id" yaml:"id" validate:"required"`
	Code           string         `json:"code" yaml:"code" validate:"required"`
	Amount         float64        `json:"amount" yaml:"amount" validate:"gte=0"`
	Balance        float64        `json:"balance" yaml:"balance" validate:"gte=0,ltefield=Amount"`
	RecipientName  string         `json:"recipientName" yaml:"recipientName"`
	RecipientEmail string         `json:"recipientEmail,omitempty" yaml:"recipientEmail,omitempty" validate:"omitempty,email"`
	PurchasedBy    string         `json:"purchasedBy,omitempty" yaml:"purchasedBy,omitempty"`
	PurchaseDate   string         `json:"purchaseDate,omitempty" yaml:"purchaseDate,omitempty"`
	ExpiryDate     string         `json:"expiryDate,omitempty" yaml:"expiryDate,omitempty"`
	Status         GiftCardStatus `json:"status" yaml:"status" validate:"required,oneof=active redeemed expired"`
}

// ReminderStats aggregates a month of reminder delivery for one channel.
type ReminderStats struct {
	Channel         string  `json:"channel" yaml:"channel"`
	Sent            int     `json:"sent" yaml:"sent" validate:"gte=0"`
	Delivered       int     `json:"delivered" yaml:"delivered" validate:"gte=0"`
	Failed          int     `json:"failed" yaml:"failed" validate:"gte=0"`
	Cost            float64 `json:"cost" yaml:"cost" validate:"gte=0"`
	NoShowReduction float64 `json:"noShowReduction" yaml:"noShowReduction"`
	Savings         float64 `json:"savings" yaml:"savings"`
}

// ReminderMessage is one entry of the recent reminder log.
type ReminderMessage struct {
	Patient string `json:"patient" yaml:"patient"`
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
	SentAt  string `json:"sentAt" yaml:"sentAt"`
}

// AppointmentStatus is the booking lifecycle state.
type AppointmentStatus string

const (
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentNoShow    AppointmentStatus = "no-show"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment is a scheduled booking.
type Appointment struct {
	ID          string            `json:"id" yaml:"id" validate:"required"`
	PatientID   string            `json:"patientId" yaml:"patientId" validate:"required"`
	ServiceID   string            `json:"serviceId" yaml:"serviceId" validate:"required"`
	TherapistID string            `json:"therapistId,omitempty" yaml:"therapistId,omitempty"`
	RoomID      string            `json:"roomId,omitempty" yaml:"roomId,omitempty"`
	StartsAt    time.Time         `json:"startsAt" yaml:"startsAt"`
	Status      AppointmentStatus `json:"status" yaml:"status" validate:"required,oneof=confirmed completed no-show cancelled"`
	Price       float64           `json:"price" yaml:"price" validate:"gte=0"`
	Notes       string            `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// OccupancyGrid holds booked capacity percentages per weekday and hour slot.
type OccupancyGrid struct {
	Hours []string       `json:"hours" yaml:"hours"`
	Days  []OccupancyDay `json:"days" yaml:"days"`
}

// OccupancyDay is one row of the occupancy heatmap.
type OccupancyDay struct {
	Day   string    `json:"day" yaml:"day"`
	Slots []float64 `json:"slots" yaml:"slots"`
}

// Catalog is a snapshot of every record the dashboard aggregates.
type Catalog struct {
	Services      []Service         `json:"services" yaml:"services" validate:"dive"`
	Patients      []Patient         `json:"patients" yaml:"patients" validate:"dive"`
	Therapists    []Therapist       `json:"therapists" yaml:"therapists" validate:"dive"`
	Promotions    []PromotionRule   `json:"promotions" yaml:"promotions" validate:"dive"`
	Insights      []Insight         `json:"insights" yaml:"insights" validate:"dive"`
	Opportunities []Insight         `json:"opportunities" yaml:"opportunities" validate:"dive"`
	GiftCards     []GiftCard        `json:"giftCards" yaml:"giftCards" validate:"dive"`
	Reminders     []ReminderStats   `json:"reminders" yaml:"reminders" validate:"dive"`
	RecentSent    []ReminderMessage `json:"recentReminders,omitempty" yaml:"recentReminders,omitempty"`
	Appointments  []Appointment     `json:"appointments,omitempty" yaml:"appointments,omitempty" validate:"dive"`
	Occupancy     OccupancyGrid     `json:"occupancy" yaml:"occupancy"`
}
