package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-spa-dashboard/components/analytics"
	"github.com/goliatone/go-spa-dashboard/components/dashboard"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-spa-dashboard/components/settings"
)

// Executor is the widget side of the API.
type Executor interface {
	Assign(ctx context.Context, req dashboard.AddWidgetRequest) error
	Update(ctx context.Context, input commands.UpdateWidgetInput) error
	Remove(ctx context.Context, input commands.RemoveWidgetInput) error
	Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error
	Refresh(ctx context.Context, input commands.RefreshWidgetInput) error
	Preferences(ctx context.Context, input commands.SaveLayoutPreferencesInput) error
	Layout(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.Layout, error)
	Area(ctx context.Context, input queries.WidgetAreaInput) (dashboard.ResolvedArea, error)
}

// SpaExecutor serves reports, booking settings and gift cards.
type SpaExecutor interface {
	Report(ctx context.Context, input queries.ReportInput) (any, error)
	Settings(ctx context.Context) (settings.Document, error)
	SaveSettings(ctx context.Context, input commands.SaveSettingsInput) error
	IssueGiftCard(ctx context.Context, input analytics.GiftCardInput) (analytics.GiftCard, error)
}

// GiftCardIssuer is satisfied by *reports.Service.
type GiftCardIssuer interface {
	IssueGiftCard(ctx context.Context, input analytics.GiftCardInput) (analytics.GiftCard, error)
}

var errNotConfigured = errors.New("httpapi: operation not configured")

// CommandExecutor adapts go-command commanders and queriers to both executor
// interfaces. Nil members report errNotConfigured.
type CommandExecutor struct {
	AssignCommand      gocommand.Commander[dashboard.AddWidgetRequest]
	UpdateCommand      gocommand.Commander[commands.UpdateWidgetInput]
	RemoveCommand      gocommand.Commander[commands.RemoveWidgetInput]
	ReorderCommand     gocommand.Commander[commands.ReorderWidgetsInput]
	RefreshCommand     gocommand.Commander[commands.RefreshWidgetInput]
	PreferencesCommand gocommand.Commander[commands.SaveLayoutPreferencesInput]
	SettingsCommand    gocommand.Commander[commands.SaveSettingsInput]
	LayoutQuery        gocommand.Querier[dashboard.ViewerContext, dashboard.Layout]
	AreaQuery          gocommand.Querier[queries.WidgetAreaInput, dashboard.ResolvedArea]
	ReportQuery        gocommand.Querier[queries.ReportInput, any]
	SettingsQuery      gocommand.Querier[queries.SettingsInput, settings.Document]
	GiftCards          GiftCardIssuer
}

var (
	_ Executor    = (*CommandExecutor)(nil)
	_ SpaExecutor = (*CommandExecutor)(nil)
)

func (e *CommandExecutor) Assign(ctx context.Context, req dashboard.AddWidgetRequest) error {
	return execute(ctx, e.AssignCommand, req)
}

func (e *CommandExecutor) Update(ctx context.Context, input commands.UpdateWidgetInput) error {
	return execute(ctx, e.UpdateCommand, input)
}

func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemoveWidgetInput) error {
	return execute(ctx, e.RemoveCommand, input)
}

func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error {
	return execute(ctx, e.ReorderCommand, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshWidgetInput) error {
	return execute(ctx, e.RefreshCommand, input)
}

func (e *CommandExecutor) Preferences(ctx context.Context, input commands.SaveLayoutPreferencesInput) error {
	return execute(ctx, e.PreferencesCommand, input)
}

func (e *CommandExecutor) SaveSettings(ctx context.Context, input commands.SaveSettingsInput) error {
	return execute(ctx, e.SettingsCommand, input)
}

func (e *CommandExecutor) Layout(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.Layout, error) {
	return query(ctx, e.LayoutQuery, viewer)
}

func (e *CommandExecutor) Area(ctx context.Context, input queries.WidgetAreaInput) (dashboard.ResolvedArea, error) {
	return query(ctx, e.AreaQuery, input)
}

func (e *CommandExecutor) Report(ctx context.Context, input queries.ReportInput) (any, error) {
	return query(ctx, e.ReportQuery, input)
}

func (e *CommandExecutor) Settings(ctx context.Context) (settings.Document, error) {
	return query(ctx, e.SettingsQuery, queries.SettingsInput{})
}

func (e *CommandExecutor) IssueGiftCard(ctx context.Context, input analytics.GiftCardInput) (analytics.GiftCard, error) {
	if e.GiftCards == nil {
		return analytics.GiftCard{}, errNotConfigured
	}
	return e.GiftCards.IssueGiftCard(ctx, input)
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return errNotConfigured
	}
	return cmd.Execute(ctx, msg)
}

func query[I, O any](ctx context.Context, q gocommand.Querier[I, O], input I) (O, error) {
	if q == nil {
		var zero O
		return zero, errNotConfigured
	}
	return q.Query(ctx, input)
}
