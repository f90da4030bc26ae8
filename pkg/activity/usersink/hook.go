// Package usersink forwards activity events into a go-users activity sink.
package usersink

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/goliatone/go-spa-dashboard/pkg/activity"
)

// Sink is the subset of the go-users activity sink used by Hook.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook maps activity events to go-users activity records.
type Hook struct {
	Sink Sink
}

// Notify implements activity.Hook. Identifiers that are not UUIDs are
// recorded as uuid.Nil.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	evt = activity.NormalizeEvent(evt)
	if evt.Verb == "" {
		return nil
	}
	data := map[string]any{}
	if evt.Metadata != nil {
		data = maps.Clone(evt.Metadata)
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = append([]string(nil), evt.Recipients...)
	}
	return h.Sink.Log(ctx, types.ActivityRecord{
		ActorID:    parseID(evt.ActorID),
		UserID:     parseID(evt.UserID),
		TenantID:   parseID(evt.TenantID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
		Data:       data,
	})
}

func parseID(value string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return id
}
