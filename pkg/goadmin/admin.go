package goadmin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	activitypkg "github.com/goliatone/go-spa-dashboard/pkg/activity"
	dashboardpkg "github.com/goliatone/go-spa-dashboard/pkg/dashboard"
)

// MenuBuilder ensures dashboard entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures dashboard link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// DefaultMenuItems lists the spa admin sections in navigation order.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Label: "Dashboard", Route: "admin.dashboard", Icon: "home", Position: 10},
		{Label: "Services", Route: "admin.spa.services", Icon: "sparkles", Position: 20},
		{Label: "Patients", Route: "admin.spa.patients", Icon: "users", Position: 30},
		{Label: "Staff", Route: "admin.spa.staff", Icon: "id-badge", Position: 40},
		{Label: "Promotions", Route: "admin.spa.promotions", Icon: "tag", Position: 50},
		{Label: "Insights", Route: "admin.spa.insights", Icon: "lightbulb", Position: 60},
		{Label: "Gift Cards", Route: "admin.spa.gift_cards", Icon: "gift", Position: 70},
		{Label: "Reminders", Route: "admin.spa.reminders", Icon: "bell", Position: 80},
		{Label: "Settings", Route: "admin.settings", Icon: "cog", Position: 90},
	}
}

// Config wires dashboard service + feature flags into an admin shell.
type Config struct {
	EnableDashboard bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *dashboardpkg.Service
	// MenuItems replaces DefaultMenuItems when set.
	MenuItems      []MenuItem
	ActivityHooks  activitypkg.Hooks
	ActivityConfig activitypkg.Config
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg      Config
	activity *activitypkg.Emitter
}

// New creates an Admin helper that can seed dashboard menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableDashboard && cfg.Service == nil {
		return nil, errors.New("goadmin: dashboard service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if len(cfg.MenuItems) == 0 {
		cfg.MenuItems = DefaultMenuItems()
	}
	for i, item := range cfg.MenuItems {
		if strings.TrimSpace(item.Label) == "" || strings.TrimSpace(item.Route) == "" {
			return nil, fmt.Errorf("goadmin: menu item %d needs a label and a route", i)
		}
	}
	return &Admin{
		cfg:      cfg,
		activity: activitypkg.NewEmitter(cfg.ActivityHooks, cfg.ActivityConfig),
	}, nil
}

// Dashboard exposes the configured dashboard service when enabled.
func (a *Admin) Dashboard() *dashboardpkg.Service {
	if !a.cfg.EnableDashboard {
		return nil
	}
	return a.cfg.Service
}

// MenuItems returns the configured navigation entries.
func (a *Admin) MenuItems() []MenuItem {
	return append([]MenuItem(nil), a.cfg.MenuItems...)
}

// Bootstrap seeds menu entries when dashboard support is enabled. Every item
// is attempted and failures are joined.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableDashboard || a.cfg.MenuBuilder == nil {
		return nil
	}
	var err error
	seeded := 0
	for _, item := range a.cfg.MenuItems {
		if ensureErr := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); ensureErr != nil {
			err = errors.Join(err, fmt.Errorf("goadmin: menu item %s: %w", item.Route, ensureErr))
			continue
		}
		seeded++
	}
	if emitErr := a.activity.Emit(ctx, activitypkg.Event{
		Verb:       "admin.menu.seed",
		ObjectType: "menu",
		ObjectID:   a.cfg.MenuCode,
		Metadata:   map[string]any{"items": seeded},
	}); emitErr != nil {
		err = errors.Join(err, emitErr)
	}
	return err
}
