package dashboard

import "context"

// Provider fetches data required to render a widget instance.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

// Fetch implements Provider.
func (fn ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return fn(ctx, meta)
}

// WidgetContext contains the metadata needed by providers.
type WidgetContext struct {
	Instance   WidgetInstance
	Viewer     ViewerContext
	Translator TranslationService
}

// WidgetData is an opaque payload passed to templates.
type WidgetData map[string]any

// Telemetry records dashboard events such as spa.widget.render.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type discardTelemetry struct{}

func (discardTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return discardTelemetry{}
	}
	return t
}
