package usersink

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-spa-dashboard/pkg/activity"
)

type recordingSink struct {
	records []types.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record types.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := Hook{Sink: sink}

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	userID := uuid.New()
	tenantID := uuid.New()

	err := hook.Notify(context.Background(), activity.Event{
		Verb:           "settings.update",
		ActorID:        actorID.String(),
		UserID:         userID.String(),
		TenantID:       tenantID.String(),
		ObjectType:     "settings",
		ObjectID:       "booking",
		Channel:        "dashboard",
		DefinitionCode: "settings:update",
		Recipients:     []string{"manager@example.com"},
		Metadata:       map[string]any{"bufferTime": 15},
		OccurredAt:     now,
	})
	require.NoError(t, err)
	require.Len(t, sink.records, 1)

	record := sink.records[0]
	assert.Equal(t, actorID, record.ActorID)
	assert.Equal(t, userID, record.UserID)
	assert.Equal(t, tenantID, record.TenantID)
	assert.Equal(t, "settings.update", record.Verb)
	assert.Equal(t, "settings", record.ObjectType)
	assert.Equal(t, "booking", record.ObjectID)
	assert.Equal(t, "dashboard", record.Channel)
	assert.Equal(t, now, record.OccurredAt)
	assert.Equal(t, "settings:update", record.Data["definition_code"])
	assert.Equal(t, 15, record.Data["bufferTime"])
	assert.Equal(t, []string{"manager@example.com"}, record.Data["recipients"])
}

func TestHookNotifyInvalidIdentifiers(t *testing.T) {
	sink := &recordingSink{}
	require.NoError(t, Hook{Sink: sink}.Notify(context.Background(), activity.Event{
		Verb:       "giftcard.issue",
		ActorID:    "admin",
		ObjectType: "gift_card",
	}))
	require.Len(t, sink.records, 1)
	assert.Equal(t, uuid.Nil, sink.records[0].ActorID)
}

func TestHookNotifySkipsMissingVerbOrSink(t *testing.T) {
	sink := &recordingSink{}
	require.NoError(t, Hook{Sink: sink}.Notify(context.Background(), activity.Event{}))
	assert.Empty(t, sink.records)

	assert.NoError(t, Hook{}.Notify(context.Background(), activity.Event{Verb: "v"}))
}
