package dashboard

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-spa-dashboard/components/reports"
	"github.com/goliatone/go-spa-dashboard/pkg/activity"
)

// ActivityItem represents a recent activity entry displayed by the widget.
type ActivityItem struct {
	User    string        `json:"user"`
	Action  string        `json:"action"`
	Details string        `json:"details,omitempty"`
	Status  string        `json:"status,omitempty"`
	When    string        `json:"when,omitempty"`
	Ago     time.Duration `json:"ago,omitempty"`
}

// ActivityFeed fetches recent activity entries for the current viewer.
type ActivityFeed interface {
	Recent(ctx context.Context, viewer ViewerContext, limit int) ([]ActivityItem, error)
}

// ActivityFeedFunc adapts a function to ActivityFeed.
type ActivityFeedFunc func(ctx context.Context, viewer ViewerContext, limit int) ([]ActivityItem, error)

// Recent implements ActivityFeed.
func (fn ActivityFeedFunc) Recent(ctx context.Context, viewer ViewerContext, limit int) ([]ActivityItem, error) {
	return fn(ctx, viewer, limit)
}

// NewReminderActivityFeed lists the most recent reminder messages.
func NewReminderActivityFeed(src ReportSource) ActivityFeed {
	return ActivityFeedFunc(func(ctx context.Context, _ ViewerContext, limit int) ([]ActivityItem, error) {
		if src == nil {
			return nil, errMissingReports
		}
		report, err := src.Reminders(ctx)
		if err != nil {
			return nil, err
		}
		return limitItems(reminderItems(report), limit), nil
	})
}

func reminderItems(report reports.ReminderReport) []ActivityItem {
	items := make([]ActivityItem, len(report.Recent))
	for i, msg := range report.Recent {
		items[i] = ActivityItem{
			User:    msg.Patient,
			Action:  "reminder " + msg.Status,
			Details: msg.Message,
			Status:  msg.Status,
			When:    msg.SentAt,
		}
	}
	return items
}

// NewEventActivityFeed renders events captured by an activity.Feed hook.
func NewEventActivityFeed(feed *activity.Feed, now func() time.Time) ActivityFeed {
	if now == nil {
		now = time.Now
	}
	return ActivityFeedFunc(func(_ context.Context, _ ViewerContext, limit int) ([]ActivityItem, error) {
		if feed == nil {
			return nil, errors.New("dashboard: activity feed is nil")
		}
		events := feed.Recent(limit)
		items := make([]ActivityItem, len(events))
		current := now()
		for i, evt := range events {
			user := evt.ActorID
			if user == "" {
				user = evt.UserID
			}
			items[i] = ActivityItem{
				User:    user,
				Action:  strings.ReplaceAll(evt.Verb, ".", " "),
				Details: strings.TrimSpace(evt.ObjectType + " " + evt.ObjectID),
				Ago:     current.Sub(evt.OccurredAt),
			}
		}
		return items, nil
	})
}

// MergeActivityFeeds concatenates feeds in order and trims to limit.
func MergeActivityFeeds(feeds ...ActivityFeed) ActivityFeed {
	return ActivityFeedFunc(func(ctx context.Context, viewer ViewerContext, limit int) ([]ActivityItem, error) {
		var (
			out  []ActivityItem
			errs []error
		)
		for _, feed := range feeds {
			if feed == nil {
				continue
			}
			items, err := feed.Recent(ctx, viewer, limit)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			out = append(out, items...)
		}
		if len(out) == 0 && len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
		return limitItems(out, limit), nil
	})
}

func limitItems(items []ActivityItem, limit int) []ActivityItem {
	if limit <= 0 || limit >= len(items) {
		return items
	}
	return items[:limit]
}

func newRecentActivityProvider(feed ActivityFeed) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		if feed == nil {
			return nil, errors.New("dashboard: recent activity feed is not configured")
		}
		limit := intOr(meta.Instance.Configuration, "limit", 10)
		entries, err := feed.Recent(ctx, meta.Viewer, limit)
		if err != nil {
			return nil, err
		}
		items := make([]map[string]any, len(entries))
		for i, entry := range entries {
			when := entry.When
			if when == "" && entry.Ago > 0 {
				when = formatAgo(entry.Ago)
			}
			items[i] = map[string]any{
				"title":    entry.User,
				"subtitle": entry.Action,
				"meta":     when,
				"details":  entry.Details,
				"status":   entry.Status,
			}
		}
		return WidgetData{
			"kind":  kindList,
			"items": items,
		}, nil
	})
}

func formatAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return strings.TrimSuffix(d.Truncate(time.Minute).String(), "0s") + " ago"
	default:
		return strings.TrimSuffix(d.Truncate(time.Hour).String(), "0m0s") + " ago"
	}
}
