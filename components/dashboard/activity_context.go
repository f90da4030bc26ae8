package dashboard

import (
	"context"
	"strings"

	"github.com/goliatone/go-spa-dashboard/pkg/activity"
)

// ActivityContext identifies who changed the dashboard. Transports attach it
// to the request context; requests may also carry their own identifiers,
// which win over the context.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

type activityContextKey struct{}

func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, activityContextKey{}, meta)
}

// ActivityFromContext returns the identifiers attached by ContextWithActivity.
func ActivityFromContext(ctx context.Context) (ActivityContext, bool) {
	if ctx == nil {
		return ActivityContext{}, false
	}
	meta, ok := ctx.Value(activityContextKey{}).(ActivityContext)
	return meta, ok
}

// resolve fills blanks from ctx. A missing actor falls back to the user.
func (a ActivityContext) resolve(ctx context.Context) ActivityContext {
	fromCtx, _ := ActivityFromContext(ctx)
	pick := func(own, other string) string {
		if own = strings.TrimSpace(own); own != "" {
			return own
		}
		return other
	}
	a.UserID = pick(a.UserID, fromCtx.UserID)
	a.TenantID = pick(a.TenantID, fromCtx.TenantID)
	a.ActorID = pick(pick(a.ActorID, fromCtx.ActorID), a.UserID)
	return a
}

// emitActivity records a widget change on the activity hooks. Hook failures
// never fail the mutation; they surface as dashboard.activity.error telemetry.
func (s *Service) emitActivity(ctx context.Context, actor ActivityContext, verb, objectID string, metadata map[string]any) {
	if !s.activity.Enabled() {
		return
	}
	actor = actor.resolve(ctx)
	event := activity.Event{
		Verb:       verb,
		ActorID:    actor.ActorID,
		UserID:     actor.UserID,
		TenantID:   actor.TenantID,
		ObjectType: "widget_instance",
		ObjectID:   objectID,
		Metadata:   metadata,
	}
	if err := s.activity.Emit(ctx, event); err != nil {
		s.recordTelemetry(ctx, "dashboard.activity.error", map[string]any{"verb": verb, "error": err.Error()})
	}
}
