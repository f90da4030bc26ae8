package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-spa-dashboard/pkg/activity"
)

const (
	AreaMain    = "spa.dashboard.main"
	AreaSidebar = "spa.dashboard.sidebar"
	AreaFooter  = "spa.dashboard.footer"
)

var defaultAreas = []string{AreaMain, AreaSidebar, AreaFooter}

var (
	errMissingWidgetStore = errors.New("dashboard: widget store not configured")
	errInvalidArea        = errors.New("dashboard: area code is required")
	errInvalidDefinition  = errors.New("dashboard: definition id is required")
	errInvalidWidgetID    = errors.New("dashboard: widget id is required")
	errUnknownDefinition  = errors.New("dashboard: unknown widget definition")

	// ErrInvalidConfiguration wraps widget configs rejected by the definition schema.
	ErrInvalidConfiguration = errors.New("dashboard: invalid widget configuration")
)

// Options configures the dashboard Service. Collaborators are interfaces so
// applications can swap implementations.
type Options struct {
	WidgetStore     WidgetStore
	Authorizer      Authorizer
	PreferenceStore PreferenceStore
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	Translator      TranslationService
	ActivityHooks   activity.Hooks
	ActivityConfig  activity.Config
	Areas           []string
	// StrictDefinitions rejects widgets whose definition is not registered.
	StrictDefinitions bool
}

// Service orchestrates dashboard widgets.
type Service struct {
	opts     Options
	activity *activity.Emitter
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Authorizer == nil {
		opts.Authorizer = allowAllAuthorizer{}
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.PreferenceStore == nil {
		opts.PreferenceStore = NewInMemoryPreferenceStore()
	}
	return &Service{
		opts:     opts,
		activity: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
	}
}

// AddWidgetRequest captures the data required to create widget assignments.
type AddWidgetRequest struct {
	DefinitionID  string         `json:"definition_id"`
	AreaCode      string         `json:"area_code"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Position      *int           `json:"position,omitempty"`
	Roles         []string       `json:"roles,omitempty"`
	StartAt       *time.Time     `json:"start_at,omitempty"`
	EndAt         *time.Time     `json:"end_at,omitempty"`
	ActorID       string         `json:"actor_id,omitempty"`
	UserID        string         `json:"user_id,omitempty"`
	TenantID      string         `json:"tenant_id,omitempty"`
}

// UpdateWidgetRequest replaces a widget configuration and merges metadata.
type UpdateWidgetRequest struct {
	Configuration map[string]any `json:"configuration,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	ActorID       string         `json:"actor_id,omitempty"`
	UserID        string         `json:"user_id,omitempty"`
	TenantID      string         `json:"tenant_id,omitempty"`
}

// Registry exposes the provider registry in use.
func (s *Service) Registry() ProviderRegistry {
	return s.opts.Providers
}

// Areas returns the area codes the service resolves, in render order.
func (s *Service) Areas() []string {
	return append([]string(nil), s.areaList()...)
}

// IsInvalidRequest reports whether err was caused by caller input rather than
// the store or a provider.
func IsInvalidRequest(err error) bool {
	for _, target := range []error{errInvalidArea, errInvalidDefinition, errInvalidWidgetID, errUnknownDefinition, ErrInvalidConfiguration} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// widgetChange is what every mutation publishes once the store accepted it:
// a refresh event for transports, a telemetry record and an activity event.
type widgetChange struct {
	verb     string
	event    WidgetEvent
	actor    ActivityContext
	objectID string
	details  map[string]any
}

func (s *Service) publish(ctx context.Context, change widgetChange) error {
	if err := s.opts.RefreshHook.WidgetUpdated(ctx, change.event); err != nil {
		return err
	}
	name := "dashboard.widget." + change.verb
	s.recordTelemetry(ctx, name, change.details)
	s.emitActivity(ctx, change.actor, name, change.objectID, change.details)
	return nil
}

// AddWidget validates the configuration against the definition schema, then
// creates the instance and assigns it to the area.
func (s *Service) AddWidget(ctx context.Context, req AddWidgetRequest) error {
	store, err := s.widgetStore()
	if err != nil {
		return err
	}
	switch {
	case req.AreaCode == "":
		return errInvalidArea
	case req.DefinitionID == "":
		return errInvalidDefinition
	}
	if err := s.validateConfiguration(req.DefinitionID, req.Configuration); err != nil {
		return err
	}
	instance, err := store.CreateInstance(ctx, CreateWidgetInstanceInput{
		DefinitionID:  req.DefinitionID,
		Configuration: req.Configuration,
		Visibility:    WidgetVisibility{Roles: req.Roles, StartAt: req.StartAt, EndAt: req.EndAt},
		Metadata:      map[string]any{"user_id": req.UserID},
	})
	if err != nil {
		return fmt.Errorf("dashboard: create instance: %w", err)
	}
	assign := AssignWidgetInput{AreaCode: req.AreaCode, InstanceID: instance.ID, Position: req.Position}
	if err := store.AssignInstance(ctx, assign); err != nil {
		return fmt.Errorf("dashboard: assign instance: %w", err)
	}
	instance.AreaCode = req.AreaCode
	return s.publish(ctx, widgetChange{
		verb:     "add",
		event:    WidgetEvent{AreaCode: req.AreaCode, Instance: instance, Reason: "add"},
		actor:    ActivityContext{ActorID: req.ActorID, UserID: req.UserID, TenantID: req.TenantID},
		objectID: instance.ID,
		details:  map[string]any{"area_code": req.AreaCode, "definition_id": req.DefinitionID},
	})
}

// UpdateWidget replaces the configuration of an existing widget after checking
// it against the widget's definition.
func (s *Service) UpdateWidget(ctx context.Context, widgetID string, req UpdateWidgetRequest) error {
	store, err := s.widgetStore()
	if err != nil {
		return err
	}
	if widgetID == "" {
		return errInvalidWidgetID
	}
	current, err := store.GetInstance(ctx, widgetID)
	if err != nil {
		return fmt.Errorf("dashboard: load widget %s: %w", widgetID, err)
	}
	if err := s.validateConfiguration(current.DefinitionID, req.Configuration); err != nil {
		return err
	}
	updated, err := store.UpdateInstance(ctx, UpdateWidgetInstanceInput{
		InstanceID:    widgetID,
		Configuration: req.Configuration,
		Metadata:      req.Metadata,
	})
	if err != nil {
		return fmt.Errorf("dashboard: update widget %s: %w", widgetID, err)
	}
	return s.publish(ctx, widgetChange{
		verb:     "update",
		event:    WidgetEvent{AreaCode: updated.AreaCode, Instance: updated, Reason: "update"},
		actor:    ActivityContext{ActorID: req.ActorID, UserID: req.UserID, TenantID: req.TenantID},
		objectID: widgetID,
		details:  map[string]any{"widget_id": widgetID, "definition_id": updated.DefinitionID},
	})
}

// RemoveWidget deletes the widget instance. The refresh event carries the
// area the widget lived in when the store still knows it.
func (s *Service) RemoveWidget(ctx context.Context, widgetID string) error {
	store, err := s.widgetStore()
	if err != nil {
		return err
	}
	if widgetID == "" {
		return errInvalidWidgetID
	}
	instance, lookupErr := store.GetInstance(ctx, widgetID)
	if lookupErr != nil {
		instance = WidgetInstance{ID: widgetID}
	}
	if err := store.DeleteInstance(ctx, widgetID); err != nil {
		return fmt.Errorf("dashboard: delete widget %s: %w", widgetID, err)
	}
	return s.publish(ctx, widgetChange{
		verb:     "remove",
		event:    WidgetEvent{AreaCode: instance.AreaCode, Instance: instance, Reason: "delete"},
		objectID: widgetID,
		details: map[string]any{
			"widget_id":     widgetID,
			"area_code":     instance.AreaCode,
			"definition_id": instance.DefinitionID,
		},
	})
}

func (s *Service) ReorderWidgets(ctx context.Context, areaCode string, widgetIDs []string) error {
	store, err := s.widgetStore()
	if err != nil {
		return err
	}
	if areaCode == "" {
		return errInvalidArea
	}
	if err := store.ReorderArea(ctx, ReorderAreaInput{AreaCode: areaCode, WidgetIDs: widgetIDs}); err != nil {
		return fmt.Errorf("dashboard: reorder %s: %w", areaCode, err)
	}
	return s.publish(ctx, widgetChange{
		verb:     "reorder",
		event:    WidgetEvent{AreaCode: areaCode, Reason: "reorder"},
		objectID: areaCode,
		details:  map[string]any{"area_code": areaCode, "count": len(widgetIDs)},
	})
}

// resolveArea loads one area for the viewer and stamps the area code on each
// instance, since stores return placements without it.
func (s *Service) resolveArea(ctx context.Context, store WidgetStore, viewer ViewerContext, area string) (ResolvedArea, error) {
	resolved, err := store.ResolveArea(ctx, ResolveAreaInput{
		AreaCode: area,
		Audience: viewer.Roles,
		Locale:   viewer.Locale,
	})
	if err != nil {
		return ResolvedArea{}, fmt.Errorf("dashboard: resolve %s: %w", area, err)
	}
	for i := range resolved.Widgets {
		resolved.Widgets[i].AreaCode = area
	}
	return resolved, nil
}

// ConfigureLayout resolves every area for the viewer. Saved preferences
// reorder, hide and size widgets before authorization drops the ones the
// viewer may not see; surviving widgets carry provider data.
func (s *Service) ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error) {
	store, err := s.widgetStore()
	if err != nil {
		return Layout{}, err
	}
	overrides, err := s.opts.PreferenceStore.LayoutOverrides(ctx, viewer)
	if err != nil {
		return Layout{}, fmt.Errorf("dashboard: load preferences: %w", err)
	}
	if viewer.Locale == "" {
		viewer.Locale = overrides.Locale
	}
	layout := Layout{Areas: make(map[string][]WidgetInstance)}
	for _, area := range s.areaList() {
		resolved, err := s.resolveArea(ctx, store, viewer, area)
		if err != nil {
			return Layout{}, err
		}
		arranged, widths := overrides.arrange(area, resolved.Widgets)
		widgets := s.present(ctx, viewer, arranged)
		applyWidths(widgets, widths)
		layout.Areas[area] = widgets
	}
	s.recordTelemetry(ctx, "dashboard.layout.resolve", map[string]any{"viewer": viewer.UserID})
	return layout, nil
}

// ResolveArea returns one area for the viewer without applying preferences.
func (s *Service) ResolveArea(ctx context.Context, viewer ViewerContext, areaCode string) (ResolvedArea, error) {
	store, err := s.widgetStore()
	if err != nil {
		return ResolvedArea{}, err
	}
	if areaCode == "" {
		return ResolvedArea{}, errInvalidArea
	}
	resolved, err := s.resolveArea(ctx, store, viewer, areaCode)
	if err != nil {
		return ResolvedArea{}, err
	}
	resolved.Widgets = s.present(ctx, viewer, resolved.Widgets)
	s.recordTelemetry(ctx, "dashboard.area.resolve", map[string]any{
		"viewer":    viewer.UserID,
		"area_code": areaCode,
	})
	return resolved, nil
}

// NotifyWidgetUpdated forwards an event raised outside the service, such as a
// manual refresh, to the refresh hook.
func (s *Service) NotifyWidgetUpdated(ctx context.Context, event WidgetEvent) error {
	if err := s.opts.RefreshHook.WidgetUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.widget.event", map[string]any{
		"area_code": event.AreaCode,
		"widget_id": event.Instance.ID,
		"reason":    event.Reason,
	})
	return nil
}

// SavePreferences persists per-viewer layout overrides.
func (s *Service) SavePreferences(ctx context.Context, viewer ViewerContext, overrides LayoutOverrides) error {
	if viewer.UserID == "" {
		return errors.New("dashboard: viewer context missing user id")
	}
	normalizeOverrides(&overrides)
	if err := s.opts.PreferenceStore.SaveLayoutOverrides(ctx, viewer, overrides); err != nil {
		return fmt.Errorf("dashboard: save preferences: %w", err)
	}
	s.recordTelemetry(ctx, "dashboard.preferences.save", map[string]any{
		"viewer": viewer.UserID,
		"hidden": len(overrides.HiddenWidgets),
	})
	return nil
}

// Preferences returns the stored overrides for a viewer.
func (s *Service) Preferences(ctx context.Context, viewer ViewerContext) (LayoutOverrides, error) {
	return s.opts.PreferenceStore.LayoutOverrides(ctx, viewer)
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) widgetStore() (WidgetStore, error) {
	if s.opts.WidgetStore == nil {
		return nil, errMissingWidgetStore
	}
	return s.opts.WidgetStore, nil
}

func (s *Service) validateConfiguration(definitionID string, config map[string]any) error {
	def, ok := s.opts.Providers.Definition(definitionID)
	if !ok {
		if s.opts.StrictDefinitions {
			return fmt.Errorf("%w: %s", errUnknownDefinition, definitionID)
		}
		return nil
	}
	return s.opts.ConfigValidator.Validate(def, config)
}

func (s *Service) areaList() []string {
	if len(s.opts.Areas) > 0 {
		return s.opts.Areas
	}
	return defaultAreas
}

// present drops widgets the viewer may not see and decorates the rest with a
// localized name and provider data. A provider failure is reported through
// telemetry and leaves that widget without data.
func (s *Service) present(ctx context.Context, viewer ViewerContext, widgets []WidgetInstance) []WidgetInstance {
	out := make([]WidgetInstance, 0, len(widgets))
	for _, inst := range widgets {
		if !s.opts.Authorizer.CanViewWidget(ctx, viewer, inst) {
			continue
		}
		meta := cloneMetadata(inst.Metadata)
		if def, ok := s.opts.Providers.Definition(inst.DefinitionID); ok {
			meta["name"] = translateOrFallback(ctx, s.opts.Translator,
				"dashboard.widget."+def.Code+".name", viewer.Locale, def.NameForLocale(viewer.Locale), nil)
		}
		if provider, ok := s.opts.Providers.Provider(inst.DefinitionID); ok && provider != nil {
			data, err := provider.Fetch(ctx, WidgetContext{Instance: inst, Viewer: viewer, Translator: s.opts.Translator})
			if err == nil {
				meta["data"] = data
			} else {
				s.recordTelemetry(ctx, "dashboard.widget.provider_error", map[string]any{
					"definition_id": inst.DefinitionID,
					"widget_id":     inst.ID,
					"error":         err.Error(),
				})
			}
		}
		inst.Metadata = meta
		out = append(out, inst)
	}
	return out
}

func cloneMetadata(in map[string]any) map[string]any {
	out := make(map[string]any, len(in)+2)
	for k, v := range in {
		out[k] = v
	}
	return out
}

type allowAllAuthorizer struct{}

func (allowAllAuthorizer) CanViewWidget(context.Context, ViewerContext, WidgetInstance) bool {
	return true
}

type noopRefreshHook struct{}

func (noopRefreshHook) WidgetUpdated(context.Context, WidgetEvent) error {
	return nil
}
