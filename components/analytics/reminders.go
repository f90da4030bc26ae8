package analytics

import (
	"sort"
	"time"
)

// ReminderSummary reports delivery quality and return on reminder spend.
type ReminderSummary struct {
	Channel         string  `json:"channel"`
	Sent            int     `json:"sent"`
	DeliveryRate    float64 `json:"deliveryRate"`
	FailureRate     float64 `json:"failureRate"`
	Cost            float64 `json:"cost"`
	Savings         float64 `json:"savings"`
	NoShowReduction float64 `json:"noShowReduction"`
	ROI             float64 `json:"roi"`
}

// SummarizeReminders derives rates and ROI. Rates are 0 when nothing was
// sent and ROI is 0 when the channel cost nothing.
func SummarizeReminders(stats ReminderStats) ReminderSummary {
	summary := ReminderSummary{
		Channel:         stats.Channel,
		Sent:            stats.Sent,
		Cost:            stats.Cost,
		Savings:         stats.Savings,
		NoShowReduction: stats.NoShowReduction,
	}
	if stats.Sent > 0 {
		summary.DeliveryRate = float64(stats.Delivered) / float64(stats.Sent) * 100
		summary.FailureRate = float64(stats.Failed) / float64(stats.Sent) * 100
	}
	if stats.Cost > 0 {
		summary.ROI = stats.Savings / stats.Cost * 100
	}
	return summary
}

// ReminderWindow selects which reminder batch to prepare.
type ReminderWindow string

const (
	Reminder24h ReminderWindow = "24h"
	Reminder2h  ReminderWindow = "2h"
)

// Duration returns the look-ahead for a window and false for unknown values.
func (w ReminderWindow) Duration() (time.Duration, bool) {
	switch w {
	case Reminder24h:
		return 24 * time.Hour, true
	case Reminder2h:
		return 2 * time.Hour, true
	default:
		return 0, false
	}
}

// AppointmentsDueForReminder returns confirmed appointments starting after
// now and no later than now+window, ordered by start time.
func AppointmentsDueForReminder(appointments []Appointment, window time.Duration, now time.Time) []Appointment {
	deadline := now.Add(window)
	out := []Appointment{}
	for _, appt := range appointments {
		if appt.Status != AppointmentConfirmed {
			continue
		}
		if !appt.StartsAt.After(now) || appt.StartsAt.After(deadline) {
			continue
		}
		out = append(out, appt)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	return out
}
