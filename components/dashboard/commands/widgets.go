package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-spa-dashboard/components/dashboard"
)

// Telemetry receives one record per successful command.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type telemetryFunc func(ctx context.Context, event string, payload map[string]any)

func (fn telemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	fn(ctx, event, payload)
}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t != nil {
		return t
	}
	return telemetryFunc(func(context.Context, string, map[string]any) {})
}

var errMissingService = errors.New("commands: service is required")

// Command runs one dashboard service call as a go-command Commander. check
// rejects bad input before the call and the telemetry record named event is
// written only after the call succeeds.
type Command[T any] struct {
	event     string
	check     func(T) error
	run       func(context.Context, T) error
	payload   func(T) map[string]any
	telemetry Telemetry
}

func (c *Command[T]) Execute(ctx context.Context, msg T) error {
	if c.run == nil {
		return fmt.Errorf("%w: %s", errMissingService, c.event)
	}
	if c.check != nil {
		if err := c.check(msg); err != nil {
			return err
		}
	}
	if err := c.run(ctx, msg); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "spa."+c.event, c.payload(msg))
	return nil
}

func newCommand[T any](event string, telemetry Telemetry, payload func(T) map[string]any) *Command[T] {
	return &Command[T]{event: event, payload: payload, telemetry: normalizeTelemetry(telemetry)}
}

// withActor attributes the activity emitted by the wrapped service call.
func withActor(ctx context.Context, actor, user, tenant string) context.Context {
	if actor == "" && user == "" && tenant == "" {
		return ctx
	}
	return dashboard.ContextWithActivity(ctx, dashboard.ActivityContext{ActorID: actor, UserID: user, TenantID: tenant})
}

type (
	AssignWidgetCommand          = Command[dashboard.AddWidgetRequest]
	UpdateWidgetCommand          = Command[UpdateWidgetInput]
	RemoveWidgetCommand          = Command[RemoveWidgetInput]
	ReorderWidgetsCommand        = Command[ReorderWidgetsInput]
	RefreshWidgetCommand         = Command[RefreshWidgetInput]
	SaveLayoutPreferencesCommand = Command[SaveLayoutPreferencesInput]
)

var (
	_ gocommand.Commander[dashboard.AddWidgetRequest] = (*AssignWidgetCommand)(nil)
	_ gocommand.Commander[UpdateWidgetInput]          = (*UpdateWidgetCommand)(nil)
	_ gocommand.Commander[RemoveWidgetInput]          = (*RemoveWidgetCommand)(nil)
	_ gocommand.Commander[ReorderWidgetsInput]        = (*ReorderWidgetsCommand)(nil)
	_ gocommand.Commander[RefreshWidgetInput]         = (*RefreshWidgetCommand)(nil)
	_ gocommand.Commander[SaveLayoutPreferencesInput] = (*SaveLayoutPreferencesCommand)(nil)
)

// NewAssignWidgetCommand places a spa widget into a dashboard area.
func NewAssignWidgetCommand(service interface {
	AddWidget(context.Context, dashboard.AddWidgetRequest) error
}, telemetry Telemetry) *AssignWidgetCommand {
	cmd := newCommand("widget.assign", telemetry, func(msg dashboard.AddWidgetRequest) map[string]any {
		return map[string]any{"definition_id": msg.DefinitionID, "area_code": msg.AreaCode}
	})
	if service != nil {
		cmd.run = func(ctx context.Context, msg dashboard.AddWidgetRequest) error {
			return service.AddWidget(withActor(ctx, msg.ActorID, msg.UserID, msg.TenantID), msg)
		}
	}
	return cmd
}

// UpdateWidgetInput replaces the saved filters of a placed widget, for
// example the view of a service performance widget.
type UpdateWidgetInput struct {
	WidgetID      string         `json:"widget_id"`
	Configuration map[string]any `json:"configuration"`
	Metadata      map[string]any `json:"metadata"`
	ActorID       string         `json:"actor_id"`
	UserID        string         `json:"user_id"`
	TenantID      string         `json:"tenant_id"`
}

func NewUpdateWidgetCommand(service interface {
	UpdateWidget(context.Context, string, dashboard.UpdateWidgetRequest) error
}, telemetry Telemetry) *UpdateWidgetCommand {
	cmd := newCommand("widget.update", telemetry, func(msg UpdateWidgetInput) map[string]any {
		return map[string]any{"widget_id": msg.WidgetID, "keys": len(msg.Configuration)}
	})
	cmd.check = func(msg UpdateWidgetInput) error {
		if msg.WidgetID == "" {
			return errors.New("commands: update requires a widget id")
		}
		return nil
	}
	if service != nil {
		cmd.run = func(ctx context.Context, msg UpdateWidgetInput) error {
			ctx = withActor(ctx, msg.ActorID, msg.UserID, msg.TenantID)
			return service.UpdateWidget(ctx, msg.WidgetID, dashboard.UpdateWidgetRequest{
				Configuration: msg.Configuration,
				Metadata:      msg.Metadata,
				ActorID:       msg.ActorID,
				UserID:        msg.UserID,
				TenantID:      msg.TenantID,
			})
		}
	}
	return cmd
}

type RemoveWidgetInput struct {
	WidgetID string `json:"widget_id"`
	ActorID  string `json:"actor_id"`
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
}

func NewRemoveWidgetCommand(service interface {
	RemoveWidget(context.Context, string) error
}, telemetry Telemetry) *RemoveWidgetCommand {
	cmd := newCommand("widget.remove", telemetry, func(msg RemoveWidgetInput) map[string]any {
		return map[string]any{"widget_id": msg.WidgetID}
	})
	if service != nil {
		cmd.run = func(ctx context.Context, msg RemoveWidgetInput) error {
			return service.RemoveWidget(withActor(ctx, msg.ActorID, msg.UserID, msg.TenantID), msg.WidgetID)
		}
	}
	return cmd
}

// ReorderWidgetsInput is the full widget order of one area.
type ReorderWidgetsInput struct {
	AreaCode  string   `json:"area_code"`
	WidgetIDs []string `json:"widget_ids"`
}

func NewReorderWidgetsCommand(service interface {
	ReorderWidgets(context.Context, string, []string) error
}, telemetry Telemetry) *ReorderWidgetsCommand {
	cmd := newCommand("widget.reorder", telemetry, func(msg ReorderWidgetsInput) map[string]any {
		return map[string]any{"area_code": msg.AreaCode, "count": len(msg.WidgetIDs)}
	})
	if service != nil {
		cmd.run = func(ctx context.Context, msg ReorderWidgetsInput) error {
			return service.ReorderWidgets(ctx, msg.AreaCode, msg.WidgetIDs)
		}
	}
	return cmd
}

// RefreshWidgetInput asks transports to re-fetch a widget, typically after
// the booking catalog changed.
type RefreshWidgetInput struct {
	Event dashboard.WidgetEvent `json:"event"`
}

func NewRefreshWidgetCommand(service interface {
	NotifyWidgetUpdated(context.Context, dashboard.WidgetEvent) error
}, telemetry Telemetry) *RefreshWidgetCommand {
	cmd := newCommand("widget.refresh", telemetry, func(msg RefreshWidgetInput) map[string]any {
		return map[string]any{"area_code": msg.Event.AreaCode, "widget_id": msg.Event.Instance.ID}
	})
	if service != nil {
		cmd.run = func(ctx context.Context, msg RefreshWidgetInput) error {
			return service.NotifyWidgetUpdated(ctx, msg.Event)
		}
	}
	return cmd
}

// SaveLayoutPreferencesInput carries one viewer's area order and hidden widgets.
type SaveLayoutPreferencesInput struct {
	Viewer        dashboard.ViewerContext `json:"viewer"`
	AreaOrder     map[string][]string     `json:"area_order"`
	HiddenWidgets []string                `json:"hidden_widget_ids"`
}

func (in SaveLayoutPreferencesInput) overrides() dashboard.LayoutOverrides {
	hidden := make(map[string]bool, len(in.HiddenWidgets))
	for _, id := range in.HiddenWidgets {
		hidden[id] = true
	}
	return dashboard.LayoutOverrides{AreaOrder: in.AreaOrder, HiddenWidgets: hidden}
}

func NewSaveLayoutPreferencesCommand(service interface {
	SavePreferences(context.Context, dashboard.ViewerContext, dashboard.LayoutOverrides) error
}, telemetry Telemetry) *SaveLayoutPreferencesCommand {
	cmd := newCommand("preferences.save", telemetry, func(msg SaveLayoutPreferencesInput) map[string]any {
		return map[string]any{"user_id": msg.Viewer.UserID, "areas": len(msg.AreaOrder), "hidden": len(msg.HiddenWidgets)}
	})
	cmd.check = func(msg SaveLayoutPreferencesInput) error {
		if msg.Viewer.UserID == "" {
			return errors.New("commands: preferences require a viewer user id")
		}
		return nil
	}
	if service != nil {
		cmd.run = func(ctx context.Context, msg SaveLayoutPreferencesInput) error {
			return service.SavePreferences(ctx, msg.Viewer, msg.overrides())
		}
	}
	return cmd
}
