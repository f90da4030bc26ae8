package dashboard

import (
	"context"
	"time"
)

// WidgetStore persists areas, definitions and widget instances.
// Implementations must be safe for concurrent use.
type WidgetStore interface {
	EnsureArea(ctx context.Context, def WidgetAreaDefinition) (bool, error)
	EnsureDefinition(ctx context.Context, def WidgetDefinition) (bool, error)
	CreateInstance(ctx context.Context, input CreateWidgetInstanceInput) (WidgetInstance, error)
	GetInstance(ctx context.Context, instanceID string) (WidgetInstance, error)
	UpdateInstance(ctx context.Context, input UpdateWidgetInstanceInput) (WidgetInstance, error)
	DeleteInstance(ctx context.Context, instanceID string) error
	AssignInstance(ctx context.Context, input AssignWidgetInput) error
	ReorderArea(ctx context.Context, input ReorderAreaInput) error
	ResolveArea(ctx context.Context, input ResolveAreaInput) (ResolvedArea, error)
}

// Authorizer hides widgets from viewers, e.g. revenue widgets from front-desk staff.
type Authorizer interface {
	CanViewWidget(ctx context.Context, viewer ViewerContext, instance WidgetInstance) bool
}

// PreferenceStore keeps each viewer's layout overrides.
type PreferenceStore interface {
	LayoutOverrides(ctx context.Context, viewer ViewerContext) (LayoutOverrides, error)
	SaveLayoutOverrides(ctx context.Context, viewer ViewerContext, overrides LayoutOverrides) error
}

// ProviderRegistry stores widget definitions and their data providers.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []WidgetDefinition
}

// RefreshHook is told about every accepted widget change.
type RefreshHook interface {
	WidgetUpdated(ctx context.Context, event WidgetEvent) error
}

// WidgetAreaDefinition names a region of the spa dashboard.
type WidgetAreaDefinition struct {
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// WidgetDefinition describes a widget and the JSON schema of its configuration.
type WidgetDefinition struct {
	Code                 string            `json:"code" yaml:"code"`
	Name                 string            `json:"name" yaml:"name"`
	NameLocalized        map[string]string `json:"name_localized,omitempty" yaml:"name_localized,omitempty"`
	Description          string            `json:"description,omitempty" yaml:"description,omitempty"`
	DescriptionLocalized map[string]string `json:"description_localized,omitempty" yaml:"description_localized,omitempty"`
	Schema               map[string]any    `json:"schema,omitempty" yaml:"schema,omitempty"`
	Category             string            `json:"category,omitempty" yaml:"category,omitempty"`
}

// WidgetInstance is a configured widget placed in an area.
type WidgetInstance struct {
	ID            string         `json:"id"`
	DefinitionID  string         `json:"definition"`
	AreaCode      string         `json:"area"`
	Configuration map[string]any `json:"config,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

type CreateWidgetInstanceInput struct {
	DefinitionID  string
	Configuration map[string]any
	Visibility    WidgetVisibility
	Metadata      map[string]any
}

// UpdateWidgetInstanceInput replaces configuration and merges metadata.
type UpdateWidgetInstanceInput struct {
	InstanceID    string
	Configuration map[string]any
	Metadata      map[string]any
}

// WidgetVisibility limits a widget to roles and an optional time window,
// such as a seasonal promotion widget.
type WidgetVisibility struct {
	Roles    []string
	StartAt  *time.Time
	EndAt    *time.Time
	Audience []string
}

// AssignWidgetInput places an instance in an area. A nil Position appends.
type AssignWidgetInput struct {
	AreaCode   string
	InstanceID string
	Position   *int
}

type ReorderAreaInput struct {
	AreaCode  string
	WidgetIDs []string
}

// ResolveAreaInput asks for the widgets of an area visible to an audience.
type ResolveAreaInput struct {
	AreaCode string
	Audience []string
	Locale   string
}

// ResolvedArea lists an area's widgets in display order.
type ResolvedArea struct {
	AreaCode string           `json:"area"`
	Widgets  []WidgetInstance `json:"widgets"`
}

// LayoutOverrides are a viewer's saved changes to the shared layout. AreaRows
// win over AreaOrder for the same area.
type LayoutOverrides struct {
	Locale        string                 `json:"locale,omitempty"`
	AreaOrder     map[string][]string    `json:"area_order,omitempty"`
	AreaRows      map[string][]LayoutRow `json:"area_rows,omitempty"`
	HiddenWidgets map[string]bool        `json:"hidden_widgets,omitempty"`
}

// LayoutRow groups widgets rendered side by side on a 12 column grid.
type LayoutRow struct {
	Widgets []WidgetSlot `json:"widgets"`
}

// WidgetSlot places a widget inside a row.
type WidgetSlot struct {
	ID    string `json:"id"`
	Width int    `json:"width"`
}

// ViewerContext is the staff member looking at the dashboard.
type ViewerContext struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles,omitempty"`
	Locale string   `json:"locale,omitempty"`
}

// Layout maps area codes to their resolved widgets.
type Layout struct {
	Areas map[string][]WidgetInstance `json:"areas"`
}

// WidgetEvent is broadcast after a change. Service mutations use the reasons
// add, update, delete and reorder; manual refreshes carry their own.
type WidgetEvent struct {
	AreaCode string         `json:"area_code,omitempty"`
	Instance WidgetInstance `json:"instance"`
	Reason   string         `json:"reason"`
}
