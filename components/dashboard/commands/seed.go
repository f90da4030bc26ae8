package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-spa-dashboard/components/dashboard"
)

// SeedDashboardInput selects the boot steps. Areas and definitions are
// always stored; manifests load first so their widgets are stored too.
type SeedDashboardInput struct {
	SeedLayout  bool   `json:"seed_layout"`
	ManifestDir string `json:"manifest_dir,omitempty"`
}

type manifestLoader interface {
	LoadManifestDir(dir string) ([]*dashboard.WidgetManifestDocument, error)
}

type SeedDashboardCommand struct {
	store     dashboard.WidgetStore
	registry  dashboard.ProviderRegistry
	service   *dashboard.Service
	telemetry Telemetry
}

// NewSeedDashboardCommand builds the boot command. service may be nil when
// the layout is never seeded.
func NewSeedDashboardCommand(store dashboard.WidgetStore, registry dashboard.ProviderRegistry, service *dashboard.Service, telemetry Telemetry) *SeedDashboardCommand {
	return &SeedDashboardCommand{store: store, registry: registry, service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedDashboardInput] = (*SeedDashboardCommand)(nil)

func (c *SeedDashboardCommand) Execute(ctx context.Context, msg SeedDashboardInput) error {
	if c.store == nil {
		return fmt.Errorf("%w: seed", errMissingService)
	}
	manifests, err := c.loadManifests(msg.ManifestDir)
	if err != nil {
		return err
	}

	steps := []func(context.Context) error{
		func(ctx context.Context) error { return dashboard.RegisterAreas(ctx, c.store) },
		func(ctx context.Context) error { return dashboard.RegisterDefinitions(ctx, c.store, c.registry) },
	}
	if msg.SeedLayout && c.service != nil {
		steps = append(steps, func(ctx context.Context) error { return dashboard.SeedLayout(ctx, c.service) })
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}

	c.telemetry.Record(ctx, "spa.dashboard.seed", map[string]any{
		"seed_layout": msg.SeedLayout && c.service != nil,
		"manifests":   manifests,
	})
	return nil
}

func (c *SeedDashboardCommand) loadManifests(dir string) (int, error) {
	if dir == "" {
		return 0, nil
	}
	loader, ok := c.registry.(manifestLoader)
	if !ok {
		return 0, errors.New("seed command: registry cannot load manifests")
	}
	docs, err := loader.LoadManifestDir(dir)
	return len(docs), err
}
