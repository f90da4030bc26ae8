package gorouter

import (
	"bytes"
	"cmp"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-spa-dashboard/components/dashboard"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/httpapi"
)

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config mounts the spa dashboard on a go-router router. API and Spa are
// optional; their routes are skipped when nil.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	API            httpapi.Executor
	Spa            httpapi.SpaExecutor
	Broadcast      *dashboard.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig overrides endpoint paths relative to BasePath.
type RouteConfig struct {
	HTML        string
	Layout      string
	Area        string
	Widgets     string
	WidgetID    string
	Reorder     string
	Refresh     string
	Preferences string
	WebSocket   string
	Settings    string
	GiftCards   string
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	return RouteConfig{
		HTML:        cmp.Or(routes.HTML, "/dashboard"),
		Layout:      cmp.Or(routes.Layout, "/dashboard/_layout"),
		Area:        cmp.Or(routes.Area, "/dashboard/areas/:code"),
		Widgets:     cmp.Or(routes.Widgets, "/dashboard/widgets"),
		WidgetID:    cmp.Or(routes.WidgetID, "/dashboard/widgets/:id"),
		Reorder:     cmp.Or(routes.Reorder, "/dashboard/widgets/reorder"),
		Refresh:     cmp.Or(routes.Refresh, "/dashboard/widgets/refresh"),
		Preferences: cmp.Or(routes.Preferences, "/dashboard/preferences"),
		WebSocket:   cmp.Or(routes.WebSocket, "/dashboard/ws"),
		Settings:    cmp.Or(routes.Settings, "/settings"),
		GiftCards:   cmp.Or(routes.GiftCards, "/spa/gift-cards"),
	}
}

// endpoint is one JSON route answered by httpapi.Handlers.
type endpoint struct {
	method string
	path   string
	handle func(ctx router.Context, viewer dashboard.ViewerContext) httpapi.Response
}

// apiEndpoints lists the widget routes. reorder and refresh come before the
// :id route so they are not captured by it.
func apiEndpoints(h *httpapi.Handlers, routes RouteConfig) []endpoint {
	return []endpoint{
		{http.MethodGet, routes.Area, func(ctx router.Context, v dashboard.ViewerContext) httpapi.Response {
			return h.Area(ctx.Context(), v, ctx.Param("code"))
		}},
		{http.MethodPost, routes.Widgets, func(ctx router.Context, _ dashboard.ViewerContext) httpapi.Response {
			return h.AssignWidget(ctx.Context(), ctx.Body())
		}},
		{http.MethodPost, routes.Reorder, func(ctx router.Context, _ dashboard.ViewerContext) httpapi.Response {
			return h.ReorderWidgets(ctx.Context(), ctx.Body())
		}},
		{http.MethodPost, routes.Refresh, func(ctx router.Context, _ dashboard.ViewerContext) httpapi.Response {
			return h.RefreshWidget(ctx.Context(), ctx.Body())
		}},
		{http.MethodPost, routes.WidgetID, func(ctx router.Context, v dashboard.ViewerContext) httpapi.Response {
			return h.UpdateWidget(ctx.Context(), v, ctx.Param("id"), ctx.Body())
		}},
		{http.MethodDelete, routes.WidgetID, func(ctx router.Context, v dashboard.ViewerContext) httpapi.Response {
			return h.RemoveWidget(ctx.Context(), v, ctx.Param("id"))
		}},
		{http.MethodPost, routes.Preferences, func(ctx router.Context, v dashboard.ViewerContext) httpapi.Response {
			return h.SavePreferences(ctx.Context(), v, ctx.Body())
		}},
	}
}

// spaEndpoints lists the report, gift card and booking settings routes.
func spaEndpoints(h *httpapi.Handlers, routes RouteConfig) []endpoint {
	var out []endpoint
	for _, route := range httpapi.SpaRoutes() {
		report := route.Report
		out = append(out, endpoint{http.MethodGet, route.Path, func(ctx router.Context, _ dashboard.ViewerContext) httpapi.Response {
			return h.Report(ctx.Context(), report, func(key string) string { return ctx.Query(key) })
		}})
	}
	return append(out,
		endpoint{http.MethodPost, routes.GiftCards, func(ctx router.Context, _ dashboard.ViewerContext) httpapi.Response {
			return h.IssueGiftCard(ctx.Context(), ctx.Body())
		}},
		endpoint{http.MethodGet, routes.Settings, func(ctx router.Context, _ dashboard.ViewerContext) httpapi.Response {
			return h.Settings(ctx.Context())
		}},
		endpoint{http.MethodPost, routes.Settings, func(ctx router.Context, v dashboard.ViewerContext) httpapi.Response {
			return h.SaveSettings(ctx.Context(), v, ctx.Body())
		}},
	)
}

// Register mounts the dashboard page, its JSON layout, the widget API, the
// spa report endpoints and the refresh WebSocket under BasePath.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	resolve := cfg.ViewerResolver
	if resolve == nil {
		resolve = defaultViewerResolver
	}
	group := cfg.Router.Group(cmp.Or(cfg.BasePath, "/admin"))

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var page bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), resolve(ctx), &page); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(page.Bytes())
	}))
	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		viewer := resolve(ctx)
		layout, err := cfg.Controller.Render(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, cfg.Controller.LayoutPayload(layout, viewer))
	}))

	handlers := &httpapi.Handlers{API: cfg.API, Spa: cfg.Spa}
	var endpoints []endpoint
	if cfg.API != nil {
		endpoints = append(endpoints, apiEndpoints(handlers, routes)...)
	}
	if cfg.Spa != nil {
		endpoints = append(endpoints, spaEndpoints(handlers, routes)...)
	}
	for _, ep := range endpoints {
		mount(group, ep, resolve)
	}
	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}
	return nil
}

func mount[T any](r router.Router[T], ep endpoint, resolve ViewerResolver) {
	handler := router.WrapHandler(func(ctx router.Context) error {
		return respond(ctx, ep.handle(ctx, resolve(ctx)))
	})
	switch ep.method {
	case http.MethodGet:
		r.Get(ep.path, handler)
	case http.MethodPost:
		r.Post(ep.path, handler)
	case http.MethodDelete:
		r.Delete(ep.path, handler)
	}
}

// registerWebSocket streams every widget event to connected dashboards.
func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	r.WebSocket(path, router.DefaultWebSocketConfig(), func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case <-ws.Context().Done():
				return ws.Close()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			}
		}
	})
}

// defaultViewerResolver reads user_id, roles and locale from router locals,
// falling back to the locale query parameter and Accept-Language.
func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	viewer := dashboard.ViewerContext{}
	viewer.UserID, _ = ctx.Locals("user_id").(string)
	viewer.Roles, _ = ctx.Locals("roles").([]string)
	viewer.Locale, _ = ctx.Locals("locale").(string)
	if viewer.Locale == "" {
		viewer.Locale = strings.ToLower(strings.TrimSpace(ctx.Query("locale")))
	}
	if viewer.Locale == "" {
		viewer.Locale = httpapi.ParseAcceptLanguage(ctx.Header("Accept-Language"))
	}
	return viewer
}

func respond(ctx router.Context, resp httpapi.Response) error {
	if resp.Body == nil {
		return ctx.JSON(resp.Status, map[string]string{})
	}
	return ctx.JSON(resp.Status, resp.Body)
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}
