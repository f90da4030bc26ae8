package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-spa-dashboard/pkg/activity"
)

func newActivityService(store WidgetStore, cfg activity.Config) (*Service, *activity.CaptureHook) {
	capture := &activity.CaptureHook{}
	return NewService(Options{
		WidgetStore:    store,
		ActivityHooks:  activity.Hooks{capture},
		ActivityConfig: cfg,
	}), capture
}

func TestAddGiftCardWidgetEmitsActivity(t *testing.T) {
	service, capture := newActivityService(&fakeWidgetStore{}, activity.Config{Enabled: true, Channel: "spa"})

	require.NoError(t, service.AddWidget(context.Background(), AddWidgetRequest{
		DefinitionID: WidgetGiftCards,
		AreaCode:     AreaSidebar,
		ActorID:      "maria",
		TenantID:     "serenity-spa",
	}))
	require.Len(t, capture.Events, 1)
	event := capture.Events[0]
	assert.Equal(t, "dashboard.widget.add", event.Verb)
	assert.Equal(t, "widget_instance", event.ObjectType)
	assert.Equal(t, "spa", event.Channel)
	assert.Equal(t, "maria", event.ActorID)
	assert.Equal(t, "serenity-spa", event.TenantID)
	assert.Equal(t, AreaSidebar, event.Metadata["area_code"])
}

func TestRemoveWidgetTakesActorFromContext(t *testing.T) {
	store := &fakeWidgetStore{instances: map[string]WidgetInstance{
		"reminders-1": {ID: "reminders-1", DefinitionID: WidgetReminderROI, AreaCode: AreaFooter},
	}}
	service, capture := newActivityService(store, activity.Config{Enabled: true})

	ctx := ContextWithActivity(context.Background(), ActivityContext{UserID: "front-desk"})
	require.NoError(t, service.RemoveWidget(ctx, "reminders-1"))
	require.Len(t, capture.Events, 1)
	event := capture.Events[0]
	assert.Equal(t, "dashboard.widget.remove", event.Verb)
	assert.Equal(t, "reminders-1", event.ObjectID)
	assert.Equal(t, "front-desk", event.UserID)
	assert.Equal(t, "front-desk", event.ActorID)
	assert.Equal(t, WidgetReminderROI, event.Metadata["definition_id"])
}

func TestUpdateWidgetPrefersRequestActor(t *testing.T) {
	store := &fakeWidgetStore{instances: map[string]WidgetInstance{
		"staff-1": {ID: "staff-1", DefinitionID: WidgetStaffLeaderboard, AreaCode: AreaMain},
	}}
	service, capture := newActivityService(store, activity.Config{Enabled: true})

	ctx := ContextWithActivity(context.Background(), ActivityContext{ActorID: "from-context", TenantID: "serenity-spa"})
	require.NoError(t, service.UpdateWidget(ctx, "staff-1", UpdateWidgetRequest{
		Configuration: map[string]any{"limit": 3},
		ActorID:       "owner",
	}))
	require.Len(t, capture.Events, 1)
	assert.Equal(t, "owner", capture.Events[0].ActorID)
	assert.Equal(t, "serenity-spa", capture.Events[0].TenantID)
}

func TestReorderWidgetsActivityAndDisabledEmitter(t *testing.T) {
	service, capture := newActivityService(&fakeWidgetStore{}, activity.Config{Enabled: true})
	require.NoError(t, service.ReorderWidgets(context.Background(), AreaMain, []string{"revenue-1", "staff-1"}))
	require.Len(t, capture.Events, 1)
	assert.Equal(t, "dashboard.widget.reorder", capture.Events[0].Verb)
	assert.Equal(t, 2, capture.Events[0].Metadata["count"])

	quiet, silent := newActivityService(&fakeWidgetStore{}, activity.Config{})
	require.NoError(t, quiet.ReorderWidgets(context.Background(), AreaMain, []string{"revenue-1"}))
	assert.Empty(t, silent.Events)
}
