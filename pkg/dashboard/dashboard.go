// Package dashboard assembles the spa dashboard for host applications: the
// report and settings services, the widget registry bound to those reports,
// an in-memory widget store, refresh broadcasting, the activity feed, and
// the HTTP executor.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
	core "github.com/goliatone/go-spa-dashboard/components/dashboard"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-spa-dashboard/components/reports"
	"github.com/goliatone/go-spa-dashboard/components/settings"
	"github.com/goliatone/go-spa-dashboard/pkg/activity"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// StackOptions configures NewStack. Every field is optional.
type StackOptions struct {
	// Source feeds the report service. Nil serves the sample catalog.
	Source         reports.CatalogSource
	Config         *analytics.Config
	Telemetry      core.Telemetry
	WidgetStore    core.WidgetStore
	SettingsStore  settings.Store
	Translator     core.TranslationService
	ActivityHooks  activity.Hooks
	ActivityConfig activity.Config
	// FeedCapacity bounds the in-process activity feed.
	FeedCapacity int
	ChartOptions []core.EChartsProviderOption
	// Notifications, when set, receives widget events next to the broadcast.
	Notifications *core.NotificationsHook
	ManifestDir   string
	Now           func() time.Time
}

// Stack is a fully wired spa dashboard.
type Stack struct {
	Reports    *reports.Service
	Settings   *settings.Service
	Registry   *core.Registry
	Store      core.WidgetStore
	Service    *core.Service
	Broadcast  *core.BroadcastHook
	Feed       *activity.Feed
	Controller *core.Controller
	Executor   *httpapi.CommandExecutor

	seed        *commands.SeedDashboardCommand
	manifestDir string
}

// NewStack builds every collaborator and binds the built-in widgets to the
// report service. Activity emitted by widget and settings changes lands in
// Feed as well as in opts.ActivityHooks, and the recent activity widget shows
// it next to the reminder log.
func NewStack(opts StackOptions) (*Stack, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.WidgetStore == nil {
		opts.WidgetStore = core.NewMemoryWidgetStore()
	}
	feed := activity.NewFeed(opts.FeedCapacity)
	hooks := append(activity.Hooks{feed}, opts.ActivityHooks...)
	activityCfg := opts.ActivityConfig
	activityCfg.Enabled = true

	reportSvc := reports.NewService(reports.Options{
		Source:    opts.Source,
		Config:    opts.Config,
		Telemetry: opts.Telemetry,
		Now:       opts.Now,
	})
	settingsSvc := settings.NewService(settings.Options{
		Store:     opts.SettingsStore,
		Telemetry: opts.Telemetry,
		Activity:  activity.NewEmitter(hooks, activityCfg),
	})

	registry := core.NewRegistry()
	activityFeed := core.MergeActivityFeeds(
		core.NewEventActivityFeed(feed, opts.Now),
		core.NewReminderActivityFeed(reportSvc),
	)
	if err := registry.UseReports(reportSvc, activityFeed, opts.ChartOptions...); err != nil {
		return nil, err
	}

	broadcast := core.NewBroadcastHook()
	var refresh core.RefreshHook = broadcast
	if opts.Notifications != nil {
		refresh = core.RefreshHooks{broadcast, opts.Notifications}
	}
	service := core.NewService(core.Options{
		WidgetStore:    opts.WidgetStore,
		Providers:      registry,
		RefreshHook:    refresh,
		Telemetry:      opts.Telemetry,
		Translator:     opts.Translator,
		ActivityHooks:  hooks,
		ActivityConfig: activityCfg,
	})

	renderer, err := core.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	stack := &Stack{
		Reports:   reportSvc,
		Settings:  settingsSvc,
		Registry:  registry,
		Store:     opts.WidgetStore,
		Service:   service,
		Broadcast: broadcast,
		Feed:      feed,
		Controller: core.NewController(core.ControllerOptions{
			Service:  service,
			Renderer: renderer,
		}),
		Executor: &httpapi.CommandExecutor{
			AssignCommand:      commands.NewAssignWidgetCommand(service, opts.Telemetry),
			UpdateCommand:      commands.NewUpdateWidgetCommand(service, opts.Telemetry),
			RemoveCommand:      commands.NewRemoveWidgetCommand(service, opts.Telemetry),
			ReorderCommand:     commands.NewReorderWidgetsCommand(service, opts.Telemetry),
			RefreshCommand:     commands.NewRefreshWidgetCommand(service, opts.Telemetry),
			PreferencesCommand: commands.NewSaveLayoutPreferencesCommand(service, opts.Telemetry),
			SettingsCommand:    commands.NewSaveSettingsCommand(settingsSvc, opts.Telemetry),
			LayoutQuery:        queries.NewLayoutQuery(service),
			AreaQuery:          queries.NewWidgetAreaQuery(service),
			ReportQuery:        queries.NewReportQuery(reportSvc),
			SettingsQuery:      queries.NewSettingsQuery(settingsSvc),
			GiftCards:          reportSvc,
		},
		seed:        commands.NewSeedDashboardCommand(opts.WidgetStore, registry, service, opts.Telemetry),
		manifestDir: opts.ManifestDir,
	}
	return stack, nil
}

// Bootstrap loads manifests, registers areas and definitions and seeds the
// starter layout.
func (s *Stack) Bootstrap(ctx context.Context) error {
	if s == nil || s.seed == nil {
		return errors.New("dashboard: stack is not initialised")
	}
	return s.seed.Execute(ctx, commands.SeedDashboardInput{
		SeedLayout:  true,
		ManifestDir: s.manifestDir,
	})
}

// Handlers returns the transport-agnostic handlers for this stack.
func (s *Stack) Handlers() *httpapi.Handlers {
	return &httpapi.Handlers{API: s.Executor, Spa: s.Executor, Broadcast: s.Broadcast}
}
