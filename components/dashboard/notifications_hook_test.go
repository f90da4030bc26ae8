package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	channels []string
	events   []WidgetEvent
}

func (c *recordingClient) PublishDashboardEvent(_ context.Context, channel string, event WidgetEvent) error {
	c.channels = append(c.channels, channel)
	c.events = append(c.events, event)
	return nil
}

func TestNotificationsHookFiltersReasons(t *testing.T) {
	client := &recordingClient{}
	hook := &NotificationsHook{Client: client, Channel: "front-desk", Reasons: []string{"add"}}

	require.NoError(t, hook.WidgetUpdated(context.Background(), WidgetEvent{Reason: "reorder"}))
	require.NoError(t, hook.WidgetUpdated(context.Background(), WidgetEvent{Reason: "add"}))

	require.Len(t, client.events, 1)
	assert.Equal(t, "front-desk", client.channels[0])

	var nilHook *NotificationsHook
	assert.NoError(t, nilHook.WidgetUpdated(context.Background(), WidgetEvent{}))
}

type failingHook struct{ err error }

func (h failingHook) WidgetUpdated(context.Context, WidgetEvent) error { return h.err }

func TestRefreshHooksFanOut(t *testing.T) {
	boom := errors.New("boom")
	counter := &collectingHook{}
	hooks := RefreshHooks{counter, nil, failingHook{err: boom}, counter}

	err := hooks.WidgetUpdated(context.Background(), WidgetEvent{Reason: "add"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, counter.events)
}
