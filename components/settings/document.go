package settings

// Document is the booking settings payload served at GET/POST /settings.
type Document struct {
	CalendarEnabled            bool                        `json:"calendarEnabled"`
	BufferTime                 int                         `json:"bufferTime"`
	MinimumAdvanceBookingHours int                         `json:"minimumAdvanceBookingHours"`
	WorkingHours               map[string]WorkingDay       `json:"workingHours"`
	Rooms                      map[string]Room             `json:"rooms"`
	Services                   map[string][]ServiceSetting `json:"services"`
}

// WorkingDay holds opening hours for a weekday in "HH:MM" form.
type WorkingDay struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// Room is a treatment room that can take bookings.
type Room struct {
	Name     string `json:"name"`
	Enabled  bool   `json:"enabled"`
	Capacity int    `json:"capacity,omitempty"`
}

// ServiceSetting toggles a service on the booking calendar.
type ServiceSetting struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
	Enabled  bool    `json:"enabled"`
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Weekdays returns the working hour keys in calendar order.
func Weekdays() []string {
	return append([]string(nil), weekdays...)
}

// Defaults returns the settings a new spa starts with.
func Defaults() Document {
	hours := make(map[string]WorkingDay, len(weekdays))
	for _, day := range weekdays {
		hours[day] = WorkingDay{Enabled: day != "sunday", Start: "09:00", End: "19:00"}
	}
	hours["saturday"] = WorkingDay{Enabled: true, Start: "09:00", End: "17:00"}
	return Document{
		CalendarEnabled:            true,
		BufferTime:                 15,
		MinimumAdvanceBookingHours: 2,
		WorkingHours:               hours,
		Rooms: map[string]Room{
			"individual": {Name: "Individual Room", Enabled: true, Capacity: 1},
			"principal":  {Name: "Main Room", Enabled: true, Capacity: 2},
		},
		Services: map[string][]ServiceSetting{
			"massage": {
				{ID: "s1", Name: "Deep Tissue Massage", Duration: 90, Price: 180, Enabled: true},
				{ID: "s2", Name: "Swedish Massage", Duration: 60, Price: 110, Enabled: true},
				{ID: "s3", Name: "Hot Stone Therapy", Duration: 75, Price: 145, Enabled: true},
				{ID: "s8", Name: "Prenatal Massage", Duration: 60, Price: 125, Enabled: true},
			},
			"facial": {
				{ID: "s4", Name: "Signature Facial", Duration: 60, Price: 135, Enabled: true},
				{ID: "s5", Name: "Anti-Aging Facial", Duration: 90, Price: 210, Enabled: true},
				{ID: "s9", Name: "Express Facial", Duration: 30, Price: 75, Enabled: true},
			},
			"body": {
				{ID: "s6", Name: "Body Scrub & Wrap", Duration: 90, Price: 165, Enabled: true},
			},
			"couples": {
				{ID: "s7", Name: "Couples Massage", Duration: 60, Price: 250, Enabled: true},
			},
			"special": {
				{ID: "s10", Name: "Luxury Spa Package", Duration: 180, Price: 425, Enabled: false},
			},
		},
	}
}

// Summary counts what is currently bookable.
type Summary struct {
	OpenDays        int `json:"openDays"`
	EnabledRooms    int `json:"enabledRooms"`
	EnabledServices int `json:"enabledServices"`
	TotalServices   int `json:"totalServices"`
}

// Summarize counts enabled days, rooms, and services.
func (d Document) Summarize() Summary {
	var s Summary
	for _, day := range d.WorkingHours {
		if day.Enabled {
			s.OpenDays++
		}
	}
	for _, room := range d.Rooms {
		if room.Enabled {
			s.EnabledRooms++
		}
	}
	for _, list := range d.Services {
		for _, svc := range list {
			s.TotalServices++
			if svc.Enabled {
				s.EnabledServices++
			}
		}
	}
	return s
}

// Clone deep copies the document.
func (d Document) Clone() Document {
	out := d
	out.WorkingHours = make(map[string]WorkingDay, len(d.WorkingHours))
	for k, v := range d.WorkingHours {
		out.WorkingHours[k] = v
	}
	out.Rooms = make(map[string]Room, len(d.Rooms))
	for k, v := range d.Rooms {
		out.Rooms[k] = v
	}
	out.Services = make(map[string][]ServiceSetting, len(d.Services))
	for k, v := range d.Services {
		out.Services[k] = append([]ServiceSetting(nil), v...)
	}
	return out
}
