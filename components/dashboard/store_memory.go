package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrWidgetNotFound is returned when an instance id is unknown.
var ErrWidgetNotFound = errors.New("dashboard: widget not found")

// MemoryWidgetStore keeps areas, definitions and instances in process. It
// backs the demo server, the CLI and tests.
type MemoryWidgetStore struct {
	mu          sync.RWMutex
	areas       map[string]WidgetAreaDefinition
	definitions map[string]WidgetDefinition
	instances   map[string]storedInstance
	assignments map[string][]string
	now         func() time.Time
}

type storedInstance struct {
	instance   WidgetInstance
	visibility WidgetVisibility
}

// NewMemoryWidgetStore builds an empty store.
func NewMemoryWidgetStore() *MemoryWidgetStore {
	return &MemoryWidgetStore{
		areas:       map[string]WidgetAreaDefinition{},
		definitions: map[string]WidgetDefinition{},
		instances:   map[string]storedInstance{},
		assignments: map[string][]string{},
		now:         time.Now,
	}
}

// EnsureArea stores the area, reporting whether it was new.
func (s *MemoryWidgetStore) EnsureArea(_ context.Context, def WidgetAreaDefinition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.areas[def.Code]
	s.areas[def.Code] = def
	return !exists, nil
}

// EnsureDefinition stores the definition, reporting whether it was new.
func (s *MemoryWidgetStore) EnsureDefinition(_ context.Context, def WidgetDefinition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.definitions[def.Code]
	s.definitions[def.Code] = def
	return !exists, nil
}

func (s *MemoryWidgetStore) CreateInstance(_ context.Context, input CreateWidgetInstanceInput) (WidgetInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst := WidgetInstance{
		ID:            uuid.NewString(),
		DefinitionID:  input.DefinitionID,
		Configuration: cloneMetadata(input.Configuration),
		Metadata:      cloneMetadata(input.Metadata),
	}
	s.instances[inst.ID] = storedInstance{instance: inst, visibility: input.Visibility}
	return inst, nil
}

func (s *MemoryWidgetStore) GetInstance(_ context.Context, id string) (WidgetInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.instances[id]
	if !ok {
		return WidgetInstance{}, fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
	}
	return stored.instance, nil
}

// UpdateInstance replaces configuration when provided and merges metadata.
func (s *MemoryWidgetStore) UpdateInstance(_ context.Context, input UpdateWidgetInstanceInput) (WidgetInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.instances[input.InstanceID]
	if !ok {
		return WidgetInstance{}, fmt.Errorf("%w: %s", ErrWidgetNotFound, input.InstanceID)
	}
	if input.Configuration != nil {
		stored.instance.Configuration = cloneMetadata(input.Configuration)
	}
	if len(input.Metadata) > 0 {
		merged := cloneMetadata(stored.instance.Metadata)
		for k, v := range input.Metadata {
			merged[k] = v
		}
		stored.instance.Metadata = merged
	}
	s.instances[input.InstanceID] = stored
	return stored.instance, nil
}

func (s *MemoryWidgetStore) DeleteInstance(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.instances[id]; !ok {
		return fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
	}
	delete(s.instances, id)
	for area, ids := range s.assignments {
		s.assignments[area] = dropID(ids, id)
	}
	return nil
}

// AssignInstance moves the instance into an area at Position, or appends it.
func (s *MemoryWidgetStore) AssignInstance(_ context.Context, input AssignWidgetInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.instances[input.InstanceID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrWidgetNotFound, input.InstanceID)
	}
	if stored.instance.AreaCode != "" {
		s.assignments[stored.instance.AreaCode] = dropID(s.assignments[stored.instance.AreaCode], input.InstanceID)
	}
	order := s.assignments[input.AreaCode]
	if input.Position != nil && *input.Position >= 0 && *input.Position <= len(order) {
		idx := *input.Position
		order = append(order[:idx], append([]string{input.InstanceID}, order[idx:]...)...)
	} else {
		order = append(order, input.InstanceID)
	}
	s.assignments[input.AreaCode] = order
	stored.instance.AreaCode = input.AreaCode
	s.instances[input.InstanceID] = stored
	return nil
}

// ReorderArea puts the listed ids first, keeping unlisted ones after them.
func (s *MemoryWidgetStore) ReorderArea(_ context.Context, input ReorderAreaInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.assignments[input.AreaCode]
	present := make(map[string]bool, len(current))
	for _, id := range current {
		present[id] = true
	}
	order := make([]string, 0, len(current))
	seen := map[string]bool{}
	for _, id := range input.WidgetIDs {
		if !present[id] || seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, id)
	}
	for _, id := range current {
		if !seen[id] {
			order = append(order, id)
		}
	}
	s.assignments[input.AreaCode] = order
	return nil
}

// ResolveArea returns the area's instances visible to the audience now.
func (s *MemoryWidgetStore) ResolveArea(_ context.Context, input ResolveAreaInput) (ResolvedArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	ids := s.assignments[input.AreaCode]
	widgets := make([]WidgetInstance, 0, len(ids))
	for _, id := range ids {
		stored, ok := s.instances[id]
		if !ok || !stored.visibility.allows(now, input.Audience) {
			continue
		}
		inst := stored.instance
		inst.Configuration = cloneMetadata(inst.Configuration)
		inst.Metadata = cloneMetadata(inst.Metadata)
		widgets = append(widgets, inst)
	}
	return ResolvedArea{AreaCode: input.AreaCode, Widgets: widgets}, nil
}

func (v WidgetVisibility) allows(now time.Time, audience []string) bool {
	if v.StartAt != nil && now.Before(*v.StartAt) {
		return false
	}
	if v.EndAt != nil && !now.Before(*v.EndAt) {
		return false
	}
	if len(v.Roles) == 0 {
		return true
	}
	for _, role := range v.Roles {
		for _, member := range audience {
			if role == member {
				return true
			}
		}
	}
	return false
}

func dropID(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
