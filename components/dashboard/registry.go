package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var errEmptyWidgetCode = errors.New("dashboard: widget code is required")

type registryEntry struct {
	def      WidgetDefinition
	provider Provider
	meta     ManifestProvider
}

// Registry holds widget definitions and the provider bound to each code. A
// new registry starts with every built-in spa widget bound to the sample
// catalog; UseReports rebinds them to live reports.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registryEntry
}

func NewRegistry() *Registry {
	reg := &Registry{entries: make(map[string]*registryEntry)}
	for _, def := range DefaultWidgetDefinitions() {
		def.normalizeLocalizedFields()
		reg.entries[def.Code] = &registryEntry{def: def, provider: defaultProviders[def.Code]}
	}
	return reg
}

// UseReports rebinds every built-in spa widget to src. A nil feed falls back
// to the reminder log of src.
func (r *Registry) UseReports(src ReportSource, feed ActivityFeed, opts ...EChartsProviderOption) error {
	if src == nil {
		return errMissingReports
	}
	if feed == nil {
		feed = NewReminderActivityFeed(src)
	}
	for code, provider := range SpaProviders(src, feed, opts...) {
		if _, ok := r.Definition(code); !ok {
			continue
		}
		if err := r.RegisterProvider(code, provider); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition adds or replaces a definition. A replaced definition
// keeps its provider.
func (r *Registry) RegisterDefinition(def WidgetDefinition) error {
	if def.Code == "" {
		return errEmptyWidgetCode
	}
	def.normalizeLocalizedFields()
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[def.Code]; ok {
		entry.def = def
		return nil
	}
	r.entries[def.Code] = &registryEntry{def: def}
	return nil
}

// RegisterProvider binds provider to an already defined widget code.
func (r *Registry) RegisterProvider(code string, provider Provider) error {
	if code == "" {
		return errEmptyWidgetCode
	}
	if provider == nil {
		return fmt.Errorf("dashboard: nil provider for %s", code)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[code]
	if !ok {
		return fmt.Errorf("dashboard: widget definition %s not found", code)
	}
	entry.provider = provider
	return nil
}

func (r *Registry) Definition(code string) (WidgetDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.entries[code]; ok {
		return entry.def, true
	}
	return WidgetDefinition{}, false
}

func (r *Registry) Provider(code string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.entries[code]; ok && entry.provider != nil {
		return entry.provider, true
	}
	return nil, false
}

// ProviderMetadata returns the manifest provider block recorded for code.
func (r *Registry) ProviderMetadata(code string) (ManifestProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.entries[code]; ok && !entry.meta.isZero() {
		return entry.meta, true
	}
	return ManifestProvider{}, false
}

// Definitions returns every definition ordered by code.
func (r *Registry) Definitions() []WidgetDefinition {
	r.mu.RLock()
	defs := make([]WidgetDefinition, 0, len(r.entries))
	for _, entry := range r.entries {
		defs = append(defs, entry.def)
	}
	r.mu.RUnlock()
	sort.Slice(defs, func(i, j int) bool { return defs[i].Code < defs[j].Code })
	return defs
}

func (r *Registry) recordProviderMetadata(code string, meta ManifestProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[code]; ok {
		entry.meta = meta
	}
}
