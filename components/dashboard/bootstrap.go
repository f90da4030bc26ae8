package dashboard

import (
	"context"
	"errors"
	"fmt"
)

var errMissingService = errors.New("dashboard: service is required")

// RegisterAreas stores the spa areas. Existing areas are overwritten with the
// current titles.
func RegisterAreas(ctx context.Context, store WidgetStore) error {
	if store == nil {
		return errMissingWidgetStore
	}
	var errs []error
	for _, area := range DefaultAreaDefinitions() {
		if _, err := store.EnsureArea(ctx, area); err != nil {
			errs = append(errs, fmt.Errorf("dashboard: store area %s: %w", area.Code, err))
		}
	}
	return errors.Join(errs...)
}

// RegisterDefinitions stores the built-in spa widgets plus any definition the
// registry already knows, such as those loaded from manifests, so that every
// registered widget can be assigned.
func RegisterDefinitions(ctx context.Context, store WidgetStore, registry ProviderRegistry) error {
	if store == nil {
		return errMissingWidgetStore
	}
	defs := DefaultWidgetDefinitions()
	if registry != nil {
		builtin := make(map[string]struct{}, len(defs))
		for _, def := range defs {
			builtin[def.Code] = struct{}{}
			if err := registry.RegisterDefinition(def); err != nil {
				return fmt.Errorf("dashboard: registry rejected %s: %w", def.Code, err)
			}
		}
		for _, def := range registry.Definitions() {
			if _, ok := builtin[def.Code]; !ok {
				defs = append(defs, def)
			}
		}
	}
	for _, def := range defs {
		if _, err := store.EnsureDefinition(ctx, def); err != nil {
			return fmt.Errorf("dashboard: store definition %s: %w", def.Code, err)
		}
	}
	return nil
}

// SeedLayout assigns the starter widgets to areas that are still empty, so
// repeated boots never duplicate the seed.
func SeedLayout(ctx context.Context, service *Service) error {
	if service == nil {
		return errMissingService
	}
	store, err := service.widgetStore()
	if err != nil {
		return err
	}
	empty := map[string]bool{}
	var errs []error
	for _, req := range DefaultSeedWidgets() {
		seed, checked := empty[req.AreaCode]
		if !checked {
			resolved, err := store.ResolveArea(ctx, ResolveAreaInput{AreaCode: req.AreaCode})
			if err != nil {
				errs = append(errs, fmt.Errorf("dashboard: inspect %s: %w", req.AreaCode, err))
			}
			seed = err == nil && len(resolved.Widgets) == 0
			empty[req.AreaCode] = seed
		}
		if !seed {
			continue
		}
		if err := service.AddWidget(ctx, req); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Bootstrap runs RegisterAreas, RegisterDefinitions and SeedLayout against
// the service's store and registry.
func Bootstrap(ctx context.Context, service *Service) error {
	if service == nil {
		return errMissingService
	}
	store, err := service.widgetStore()
	if err != nil {
		return err
	}
	if err := RegisterAreas(ctx, store); err != nil {
		return err
	}
	if err := RegisterDefinitions(ctx, store, service.Registry()); err != nil {
		return err
	}
	return SeedLayout(ctx, service)
}
