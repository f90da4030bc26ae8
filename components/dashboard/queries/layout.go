package queries

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-spa-dashboard/components/dashboard"
)

var errNoLayoutService = errors.New("queries: layout service is required")

type layoutService interface {
	ConfigureLayout(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.Layout, error)
	ResolveArea(ctx context.Context, viewer dashboard.ViewerContext, areaCode string) (dashboard.ResolvedArea, error)
}

// LayoutQuery resolves every dashboard area for a viewer, with the viewer's
// saved order and hidden widgets applied.
type LayoutQuery struct {
	service layoutService
}

func NewLayoutQuery(service layoutService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.Layout] = (*LayoutQuery)(nil)

func (q *LayoutQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.Layout, error) {
	if q.service == nil {
		return dashboard.Layout{}, errNoLayoutService
	}
	return q.service.ConfigureLayout(ctx, viewer)
}

// WidgetAreaInput names one area, e.g. admin.dashboard.sidebar.
type WidgetAreaInput struct {
	Viewer   dashboard.ViewerContext
	AreaCode string
}

// WidgetAreaQuery resolves a single area, used by clients that refresh one
// column after a reorder.
type WidgetAreaQuery struct {
	service layoutService
}

func NewWidgetAreaQuery(service layoutService) *WidgetAreaQuery {
	return &WidgetAreaQuery{service: service}
}

var _ gocommand.Querier[WidgetAreaInput, dashboard.ResolvedArea] = (*WidgetAreaQuery)(nil)

func (q *WidgetAreaQuery) Query(ctx context.Context, input WidgetAreaInput) (dashboard.ResolvedArea, error) {
	if q.service == nil {
		return dashboard.ResolvedArea{}, errNoLayoutService
	}
	return q.service.ResolveArea(ctx, input.Viewer, strings.TrimSpace(input.AreaCode))
}
