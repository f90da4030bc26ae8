package gorouter

import (
	"context"
	"net/http"
	"testing"

	router "github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
	"github.com/goliatone/go-spa-dashboard/components/dashboard"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-spa-dashboard/components/settings"
)

// routerContext aliases router.Context so it can be embedded without
// clashing with the Context method below.
type routerContext = router.Context

// queryContext answers Query and Context; every other router.Context method
// is left unimplemented.
type queryContext struct {
	routerContext
	query map[string]string
}

func (c queryContext) Query(name string, defaultValue ...string) string {
	if v, ok := c.query[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (c queryContext) Context() context.Context { return context.Background() }

type recordingSpa struct {
	reports []queries.ReportInput
}

func (r *recordingSpa) Report(_ context.Context, input queries.ReportInput) (any, error) {
	r.reports = append(r.reports, input)
	return map[string]any{"report": input.Report}, nil
}

func (r *recordingSpa) Settings(context.Context) (settings.Document, error) {
	return settings.Defaults(), nil
}

func (r *recordingSpa) SaveSettings(context.Context, commands.SaveSettingsInput) error { return nil }

func (r *recordingSpa) IssueGiftCard(context.Context, analytics.GiftCardInput) (analytics.GiftCard, error) {
	return analytics.GiftCard{}, nil
}

func findEndpoint(t *testing.T, endpoints []endpoint, method, path string) endpoint {
	t.Helper()
	for _, ep := range endpoints {
		if ep.method == method && ep.path == path {
			return ep
		}
	}
	t.Fatalf("no endpoint %s %s", method, path)
	return endpoint{}
}

func TestRegisterValidatesConfig(t *testing.T) {
	err := Register(Config[struct{}]{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "router is required")
}

func TestDefaultRouteConfig(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{Settings: "/booking/settings"})
	assert.Equal(t, "/dashboard", routes.HTML)
	assert.Equal(t, "/dashboard/widgets/:id", routes.WidgetID)
	assert.Equal(t, "/dashboard/ws", routes.WebSocket)
	assert.Equal(t, "/booking/settings", routes.Settings)
	assert.Equal(t, "/spa/gift-cards", routes.GiftCards)
}

func TestControllerPayloadDefaults(t *testing.T) {
	layout := dashboard.Layout{Areas: map[string][]dashboard.WidgetInstance{}}
	payload := dashboard.NewController(dashboard.ControllerOptions{}).LayoutPayload(layout, dashboard.ViewerContext{})
	assert.Equal(t, "Spa Dashboard", payload["title"])
	assert.Equal(t, dashboard.DefaultEChartsAssetsHost, payload["assets_host"])
}

func TestAPIEndpointsKeepStaticPathsBeforeWidgetID(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{})
	endpoints := apiEndpoints(&httpapi.Handlers{}, routes)

	index := map[string]int{}
	for i, ep := range endpoints {
		index[ep.method+" "+ep.path] = i
	}
	assert.Less(t, index["POST /dashboard/widgets/reorder"], index["POST /dashboard/widgets/:id"])
	assert.Less(t, index["POST /dashboard/widgets/refresh"], index["POST /dashboard/widgets/:id"])
	assert.Contains(t, index, "DELETE /dashboard/widgets/:id")
	assert.Contains(t, index, "GET /dashboard/areas/:code")
}

func TestSpaEndpointsCoverReportsAndSettings(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{Settings: "/booking/settings"})
	endpoints := spaEndpoints(&httpapi.Handlers{}, routes)
	require.Len(t, endpoints, len(httpapi.SpaRoutes())+3)

	var methods []string
	for _, ep := range endpoints {
		if ep.path == "/booking/settings" {
			methods = append(methods, ep.method)
		}
	}
	assert.ElementsMatch(t, []string{"GET", "POST"}, methods)
}

func TestSpaReportEndpointsForwardQueryParameters(t *testing.T) {
	spa := &recordingSpa{}
	endpoints := spaEndpoints(&httpapi.Handlers{Spa: spa}, defaultRouteConfig(RouteConfig{}))

	patients := findEndpoint(t, endpoints, http.MethodGet, "/spa/patients")
	resp := patients.handle(queryContext{query: map[string]string{"search": "ana", "status": "active"}}, dashboard.ViewerContext{})
	assert.Equal(t, http.StatusOK, resp.Status)

	due := findEndpoint(t, endpoints, http.MethodGet, "/spa/reminders/appointments")
	resp = due.handle(queryContext{query: map[string]string{"type": "2h"}}, dashboard.ViewerContext{})
	assert.Equal(t, http.StatusOK, resp.Status)

	require.Len(t, spa.reports, 2)
	assert.Equal(t, queries.ReportInput{Report: queries.ReportPatients, Search: "ana", Status: "active"}, spa.reports[0])
	assert.Equal(t, queries.ReportRemindersDue, spa.reports[1].Report)
	assert.Equal(t, "2h", spa.reports[1].Window)
}
