package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
	"github.com/goliatone/go-spa-dashboard/components/dashboard"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-spa-dashboard/components/reports"
	"github.com/goliatone/go-spa-dashboard/components/settings"
)

// Response is a status code and a JSON body, independent of the transport.
type Response struct {
	Status int
	Body   any
}

// SpaRoute maps a report endpoint to a ReportQuery name.
type SpaRoute struct {
	Path   string
	Report string
}

// SpaRoutes lists the read-only report endpoints relative to the base path.
func SpaRoutes() []SpaRoute {
	return []SpaRoute{
		{Path: "/spa/overview", Report: queries.ReportOverview},
		{Path: "/spa/services", Report: queries.ReportServices},
		{Path: "/spa/services/revenue", Report: queries.ReportServiceRevenue},
		{Path: "/spa/patients", Report: queries.ReportPatients},
		{Path: "/spa/staff", Report: queries.ReportStaff},
		{Path: "/spa/promotions/impact", Report: queries.ReportPromotions},
		{Path: "/spa/insights", Report: queries.ReportInsights},
		{Path: "/spa/opportunities", Report: queries.ReportOpportunities},
		{Path: "/spa/gift-cards", Report: queries.ReportGiftCards},
		{Path: "/spa/reminders", Report: queries.ReportReminders},
		{Path: "/spa/reminders/appointments", Report: queries.ReportRemindersDue},
		{Path: "/spa/occupancy", Report: queries.ReportOccupancy},
	}
}

// Handlers exposes the dashboard and spa endpoints. API and Spa may be nil,
// in which case their endpoints answer 501. Broadcast adds the WebSocket and
// server-sent event streams when set.
type Handlers struct {
	API       Executor
	Spa       SpaExecutor
	Broadcast *dashboard.BroadcastHook
}

// AssignWidget decodes an AddWidgetRequest and runs the assign command.
func (h *Handlers) AssignWidget(ctx context.Context, body []byte) Response {
	if h.API == nil {
		return errorResponse(errNotConfigured)
	}
	var payload dashboard.AddWidgetRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return Response{Status: http.StatusBadRequest, Body: errorBody(err)}
	}
	if err := h.API.Assign(ctx, payload); err != nil {
		return errorResponse(err)
	}
	return Response{Status: http.StatusCreated, Body: map[string]string{"status": "created"}}
}

// UpdateWidget replaces the configuration of widget id.
func (h *Handlers) UpdateWidget(ctx context.Context, viewer dashboard.ViewerContext, id string, body []byte) Response {
	if h.API == nil {
		return errorResponse(errNotConfigured)
	}
	var payload commands.UpdateWidgetInput
	if err := json.Unmarshal(body, &payload); err != nil {
		return Response{Status: http.StatusBadRequest, Body: errorBody(err)}
	}
	payload.WidgetID = id
	if payload.ActorID == "" {
		payload.ActorID = viewer.UserID
	}
	if err := h.API.Update(ctx, payload); err != nil {
		return errorResponse(err)
	}
	return Response{Status: http.StatusOK, Body: map[string]string{"status": "updated"}}
}

func (h *Handlers) RemoveWidget(ctx context.Context, viewer dashboard.ViewerContext, id string) Response {
	if h.API == nil {
		return errorResponse(errNotConfigured)
	}
	if strings.TrimSpace(id) == "" {
		return Response{Status: http.StatusBadRequest, Body: errorBody(errors.New("widget id is required"))}
	}
	if err := h.API.Remove(ctx, commands.RemoveWidgetInput{WidgetID: id, ActorID: viewer.UserID}); err != nil {
		return errorResponse(err)
	}
	return Response{Status: http.StatusNoContent}
}

func (h *Handlers) ReorderWidgets(ctx context.Context, body []byte) Response {
	if h.API == nil {
		return errorResponse(errNotConfigured)
	}
	var payload commands.ReorderWidgetsInput
	if err := json.Unmarshal(body, &payload); err != nil {
		return Response{Status: http.StatusBadRequest, Body: errorBody(err)}
	}
	if err := h.API.Reorder(ctx, payload); err != nil {
		return errorResponse(err)
	}
	return Response{Status: http.StatusOK, Body: map[string]string{"status": "reordered"}}
}

func (h *Handlers) RefreshWidget(ctx context.Context, body []byte) Response {
	if h.API == nil {
		return errorResponse(errNotConfigured)
	}
	var payload commands.RefreshWidgetInput
	if err := json.Unmarshal(body, &payload); err != nil {
		return Response{Status: http.StatusBadRequest, Body: errorBody(err)}
	}
	if err := h.API.Refresh(ctx, payload); err != nil {
		return errorResponse(err)
	}
	return Response{Status: http.StatusAccepted, Body: map[string]string{"status": "queued"}}
}

// SavePreferences stores the viewer's layout overrides. The viewer always
// comes from the request identity, never the body.
func (h *Handlers) SavePreferences(ctx context.Context, viewer dashboard.ViewerContext, body []byte) Response {
	if h.API == nil {
		return errorResponse(errNotConfigured)
	}
	var payload commands.SaveLayoutPreferencesInput
	if err := json.Unmarshal(body, &payload); err != nil {
		return Response{Status: http.StatusBadRequest, Body: errorBody(err)}
	}
	payload.Viewer = viewer
	if err := h.API.Preferences(ctx, payload); err != nil {
		return errorResponse(err)
	}
	return Response{Status: http.StatusOK, Body: map[string]string{"status": "saved"}}
}

// Layout resolves every area for the viewer.
func (h *Handlers) Layout(ctx context.Context, viewer dashboard.ViewerContext) Response {
	if h.API == nil {
		return errorResponse(errNotConfigured)
	}
	layout, err := h.API.Layout(ctx, viewer)
	if err != nil {
		return errorResponse(err)
	}
	return Response{Status: http.StatusOK, Body: layout}
}

// Area resolves a single dashboard area for the viewer.
func (h *Handlers) Area(ctx context.Context, viewer dashboard.ViewerContext, code string) Response {
	if h.API == nil {
		return errorResponse(errNotConfigured)
	}
	area, err := h.API.Area(ctx, queries.WidgetAreaInput{Viewer: viewer, AreaCode: code})
	if err != nil {
		return errorResponse(err)
	}
	return Response{Status: http.StatusOK, Body: area}
}

// Report runs a named report. lookup reads query parameters.
func (h *Handlers) Report(ctx context.Context, report string, lookup func(string) string) Response {
	if h.Spa == nil {
		return errorResponse(errNotConfigured)
	}
	if lookup == nil {
		lookup = func(string) string { return "" }
	}
	window := lookup("type")
	if window == "" {
		window = lookup("window")
	}
	result, err := h.Spa.Report(ctx, queries.ReportInput{
		Report: report,
		Search: lookup("search"),
		Status: lookup("status"),
		Source: lookup("source"),
		Window: window,
	})
	if err != nil {
		return errorResponse(err)
	}
	return Response{Status: http.StatusOK, Body: result}
}

func (h *Handlers) Settings(ctx context.Context) Response {
	if h.Spa == nil {
		return errorResponse(errNotConfigured)
	}
	doc, err := h.Spa.Settings(ctx)
	if err != nil {
		return errorResponse(err)
	}
	return Response{Status: http.StatusOK, Body: doc}
}

// SaveSettings validates the raw document against the settings schema, saves
// it and answers with the stored copy.
func (h *Handlers) SaveSettings(ctx context.Context, viewer dashboard.ViewerContext, body []byte) Response {
	if h.Spa == nil {
		return errorResponse(errNotConfigured)
	}
	if err := settings.ValidateJSON(body); err != nil {
		return errorResponse(err)
	}
	var doc settings.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return Response{Status: http.StatusBadRequest, Body: errorBody(err)}
	}
	if err := h.Spa.SaveSettings(ctx, commands.SaveSettingsInput{ActorID: viewer.UserID, Document: doc}); err != nil {
		return errorResponse(err)
	}
	return h.Settings(ctx)
}

func (h *Handlers) IssueGiftCard(ctx context.Context, body []byte) Response {
	if h.Spa == nil {
		return errorResponse(errNotConfigured)
	}
	var input analytics.GiftCardInput
	if err := json.Unmarshal(body, &input); err != nil {
		return Response{Status: http.StatusBadRequest, Body: errorBody(err)}
	}
	card, err := h.Spa.IssueGiftCard(ctx, input)
	if err != nil {
		return errorResponse(err)
	}
	return Response{Status: http.StatusCreated, Body: card}
}

// StatusFor maps service errors onto HTTP status codes.
func StatusFor(err error) int {
	var settingsErr *settings.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errNotConfigured):
		return http.StatusNotImplemented
	case errors.Is(err, dashboard.ErrWidgetNotFound):
		return http.StatusNotFound
	case errors.Is(err, queries.ErrUnknownReport):
		return http.StatusNotFound
	case dashboard.IsInvalidRequest(err),
		errors.Is(err, reports.ErrUnknownReminderWindow),
		errors.Is(err, reports.ErrInvalidGiftCard),
		errors.As(err, &settingsErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(err error) Response {
	return Response{Status: StatusFor(err), Body: errorBody(err)}
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}
