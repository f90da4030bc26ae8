package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-spa-dashboard/pkg/activity"
)

// Store persists the settings document.
type Store interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
}

// ErrNotFound is returned by stores that have no document yet.
var ErrNotFound = errors.New("settings: document not found")

// InMemoryStore keeps one document guarded by a mutex.
type InMemoryStore struct {
	mu  sync.RWMutex
	doc *Document
}

// NewInMemoryStore returns an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Load implements Store.
func (s *InMemoryStore) Load(context.Context) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return Document{}, ErrNotFound
	}
	return s.doc.Clone(), nil
}

// Save implements Store.
func (s *InMemoryStore) Save(_ context.Context, doc Document) error {
	clone := doc.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &clone
	return nil
}

// Telemetry records settings events.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

// Options configures Service.
type Options struct {
	Store     Store
	Telemetry Telemetry
	Activity  *activity.Emitter
	Defaults  *Document
}

// Service validates and persists settings.
type Service struct {
	store     Store
	telemetry Telemetry
	activity  *activity.Emitter
	defaults  Document
}

// NewService builds a Service with an in-memory store when none is given.
func NewService(opts Options) *Service {
	if opts.Store == nil {
		opts.Store = NewInMemoryStore()
	}
	if opts.Telemetry == nil {
		opts.Telemetry = noopTelemetry{}
	}
	defaults := Defaults()
	if opts.Defaults != nil {
		defaults = opts.Defaults.Clone()
	}
	return &Service{
		store:     opts.Store,
		telemetry: opts.Telemetry,
		activity:  opts.Activity,
		defaults:  defaults,
	}
}

// Get returns the stored document or the defaults when nothing was saved.
func (s *Service) Get(ctx context.Context) (Document, error) {
	doc, err := s.store.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return s.defaults.Clone(), nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("settings: load: %w", err)
	}
	return doc, nil
}

// Save validates and stores doc. actor identifies who made the change.
func (s *Service) Save(ctx context.Context, actor string, doc Document) (Document, error) {
	if err := Validate(doc); err != nil {
		s.telemetry.Record(ctx, "settings.validation_error", map[string]any{"error": err.Error()})
		return Document{}, err
	}
	if err := s.store.Save(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("settings: save: %w", err)
	}
	summary := doc.Summarize()
	s.telemetry.Record(ctx, "settings.save", map[string]any{
		"open_days":        summary.OpenDays,
		"enabled_rooms":    summary.EnabledRooms,
		"enabled_services": summary.EnabledServices,
	})
	if err := s.activity.Emit(ctx, activity.Event{
		Verb:       "settings.update",
		ActorID:    actor,
		UserID:     actor,
		ObjectType: "settings",
		ObjectID:   "booking",
		Metadata: map[string]any{
			"calendar_enabled": doc.CalendarEnabled,
			"buffer_time":      doc.BufferTime,
		},
	}); err != nil {
		s.telemetry.Record(ctx, "settings.activity_error", map[string]any{"error": err.Error()})
	}
	return doc.Clone(), nil
}

// SaveJSON validates the raw payload before decoding and saving it.
func (s *Service) SaveJSON(ctx context.Context, actor string, raw []byte) (Document, error) {
	if err := ValidateJSON(raw); err != nil {
		s.telemetry.Record(ctx, "settings.validation_error", map[string]any{"error": err.Error()})
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, &ValidationError{Err: err}
	}
	return s.Save(ctx, actor, doc)
}

// Reset restores the defaults.
func (s *Service) Reset(ctx context.Context, actor string) (Document, error) {
	return s.Save(ctx, actor, s.defaults.Clone())
}
