package dashboard

import (
	"context"
	"errors"
	"sync"
)

const gridColumns = 12

var errPreferenceViewer = errors.New("dashboard: preference store requires viewer user id")

// InMemoryPreferenceStore keeps layout overrides per viewer and locale.
type InMemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]LayoutOverrides
}

// NewInMemoryPreferenceStore creates an empty preference store.
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		data: make(map[string]LayoutOverrides),
	}
}

// LayoutOverrides returns stored overrides or empty defaults.
func (s *InMemoryPreferenceStore) LayoutOverrides(_ context.Context, viewer ViewerContext) (LayoutOverrides, error) {
	if viewer.UserID != "" {
		s.mu.RLock()
		overrides, ok := s.data[s.key(viewer)]
		s.mu.RUnlock()
		if ok {
			overrides = cloneOverrides(overrides)
			if overrides.Locale == "" {
				overrides.Locale = viewer.Locale
			}
			return overrides, nil
		}
	}
	empty := LayoutOverrides{Locale: viewer.Locale}
	normalizeOverrides(&empty)
	return empty, nil
}

// SaveLayoutOverrides persists overrides for a viewer.
func (s *InMemoryPreferenceStore) SaveLayoutOverrides(_ context.Context, viewer ViewerContext, overrides LayoutOverrides) error {
	if viewer.UserID == "" {
		return errPreferenceViewer
	}
	if overrides.Locale == "" {
		overrides.Locale = viewer.Locale
	}
	overrides = cloneOverrides(overrides)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[s.key(viewer)] = overrides
	return nil
}

func (s *InMemoryPreferenceStore) key(viewer ViewerContext) string {
	if viewer.Locale == "" {
		return viewer.UserID
	}
	return viewer.UserID + "::" + viewer.Locale
}

func normalizeOverrides(overrides *LayoutOverrides) {
	if overrides.AreaOrder == nil {
		overrides.AreaOrder = map[string][]string{}
	}
	if overrides.AreaRows == nil {
		overrides.AreaRows = map[string][]LayoutRow{}
	}
	if overrides.HiddenWidgets == nil {
		overrides.HiddenWidgets = map[string]bool{}
	}
	for _, rows := range overrides.AreaRows {
		for r := range rows {
			for i, slot := range rows[r].Widgets {
				if slot.Width <= 0 || slot.Width > gridColumns {
					rows[r].Widgets[i].Width = gridColumns
				}
			}
		}
	}
}

func cloneOverrides(in LayoutOverrides) LayoutOverrides {
	out := LayoutOverrides{
		Locale:        in.Locale,
		AreaOrder:     make(map[string][]string, len(in.AreaOrder)),
		AreaRows:      make(map[string][]LayoutRow, len(in.AreaRows)),
		HiddenWidgets: make(map[string]bool, len(in.HiddenWidgets)),
	}
	for area, order := range in.AreaOrder {
		out.AreaOrder[area] = append([]string(nil), order...)
	}
	for area, rows := range in.AreaRows {
		copied := make([]LayoutRow, len(rows))
		for i, row := range rows {
			copied[i] = LayoutRow{Widgets: append([]WidgetSlot(nil), row.Widgets...)}
		}
		out.AreaRows[area] = copied
	}
	for id, hidden := range in.HiddenWidgets {
		if hidden {
			out.HiddenWidgets[id] = true
		}
	}
	normalizeOverrides(&out)
	return out
}
