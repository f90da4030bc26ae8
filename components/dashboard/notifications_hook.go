package dashboard

import (
	"context"
	"errors"
)

// NotificationsClient publishes dashboard events to an external channel
// (staff chat, SMS gateway, email digest).
type NotificationsClient interface {
	PublishDashboardEvent(ctx context.Context, channel string, event WidgetEvent) error
}

// NotificationsHook forwards selected widget events to a notifications client.
type NotificationsHook struct {
	Client  NotificationsClient
	Channel string
	// Reasons limits forwarding to these event reasons. Empty forwards all.
	Reasons []string
}

// WidgetUpdated publishes events to the configured notifications client.
func (h *NotificationsHook) WidgetUpdated(ctx context.Context, event WidgetEvent) error {
	if h == nil || h.Client == nil || !h.wants(event.Reason) {
		return nil
	}
	return h.Client.PublishDashboardEvent(ctx, h.Channel, event)
}

func (h *NotificationsHook) wants(reason string) bool {
	if len(h.Reasons) == 0 {
		return true
	}
	for _, r := range h.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}

// RefreshHooks fans an event out to every hook and joins their errors.
type RefreshHooks []RefreshHook

// WidgetUpdated implements RefreshHook.
func (hooks RefreshHooks) WidgetUpdated(ctx context.Context, event WidgetEvent) error {
	var errs []error
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := hook.WidgetUpdated(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
