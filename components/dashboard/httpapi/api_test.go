package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
	"github.com/goliatone/go-spa-dashboard/components/dashboard"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-spa-dashboard/components/reports"
	"github.com/goliatone/go-spa-dashboard/components/settings"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(_ context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

func TestHandleAssignWidget(t *testing.T) {
	assign := &stubCommander[dashboard.AddWidgetRequest]{}
	api := &Handlers{API: &CommandExecutor{AssignCommand: assign}}
	payload := dashboard.AddWidgetRequest{DefinitionID: dashboard.WidgetGiftCards, AreaCode: dashboard.AreaSidebar}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/widgets", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleAssignWidget(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, assign.calls)
	assert.Equal(t, dashboard.WidgetGiftCards, assign.last.DefinitionID)
}

func TestHandleAssignWidgetBadJSON(t *testing.T) {
	assign := &stubCommander[dashboard.AddWidgetRequest]{}
	api := &Handlers{API: &CommandExecutor{AssignCommand: assign}}
	rec := httptest.NewRecorder()
	api.HandleAssignWidget(rec, httptest.NewRequest(http.MethodPost, "/widgets", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, assign.calls)
}

func TestHandleRemoveWidget(t *testing.T) {
	remove := &stubCommander[commands.RemoveWidgetInput]{}
	api := &Handlers{API: &CommandExecutor{RemoveCommand: remove}}
	req := httptest.NewRequest(http.MethodDelete, "/widgets/w1", nil)
	req.Header.Set("X-User-ID", "maria")
	rec := httptest.NewRecorder()
	api.HandleRemoveWidget(rec, req, "w1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "w1", remove.last.WidgetID)
	assert.Equal(t, "maria", remove.last.ActorID)
}

func TestHandleRemoveWidgetNotFound(t *testing.T) {
	remove := &stubCommander[commands.RemoveWidgetInput]{err: dashboard.ErrWidgetNotFound}
	api := &Handlers{API: &CommandExecutor{RemoveCommand: remove}}
	rec := httptest.NewRecorder()
	api.HandleRemoveWidget(rec, httptest.NewRequest(http.MethodDelete, "/widgets/w1", nil), "w1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleReorderWidgets(t *testing.T) {
	reorder := &stubCommander[commands.ReorderWidgetsInput]{}
	api := &Handlers{API: &CommandExecutor{ReorderCommand: reorder}}
	payload := commands.ReorderWidgetsInput{AreaCode: dashboard.AreaMain, WidgetIDs: []string{"w1", "w2"}}
	buf, _ := json.Marshal(payload)
	rec := httptest.NewRecorder()
	api.HandleReorderWidgets(rec, httptest.NewRequest(http.MethodPost, "/widgets/reorder", bytes.NewReader(buf)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"w1", "w2"}, reorder.last.WidgetIDs)
}

func TestHandleRefreshWidget(t *testing.T) {
	refresh := &stubCommander[commands.RefreshWidgetInput]{}
	api := &Handlers{API: &CommandExecutor{RefreshCommand: refresh}}
	payload := commands.RefreshWidgetInput{Event: dashboard.WidgetEvent{AreaCode: dashboard.AreaMain}}
	buf, _ := json.Marshal(payload)
	rec := httptest.NewRecorder()
	api.HandleRefreshWidget(rec, httptest.NewRequest(http.MethodPost, "/widgets/refresh", bytes.NewReader(buf)))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, refresh.calls)
}

func TestUnconfiguredOperations(t *testing.T) {
	api := &Handlers{API: &CommandExecutor{}}
	resp := api.ReorderWidgets(context.Background(), []byte(`{}`))
	assert.Equal(t, http.StatusNotImplemented, resp.Status)

	resp = (&Handlers{}).Report(context.Background(), queries.ReportOverview, nil)
	assert.Equal(t, http.StatusNotImplemented, resp.Status)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusFor(nil))
	assert.Equal(t, http.StatusBadRequest, StatusFor(dashboard.ErrInvalidConfiguration))
	assert.Equal(t, http.StatusBadRequest, StatusFor(&settings.ValidationError{Err: errors.New("bad")}))
	assert.Equal(t, http.StatusBadRequest, StatusFor(reports.ErrUnknownReminderWindow))
	assert.Equal(t, http.StatusNotFound, StatusFor(queries.ErrUnknownReport))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestParseAcceptLanguage(t *testing.T) {
	assert.Equal(t, "es-mx", ParseAcceptLanguage("es-MX;q=0.9, en;q=0.8"))
	assert.Equal(t, "", ParseAcceptLanguage(""))
}

var apiNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func newSpaServer(t *testing.T) (*httptest.Server, *dashboard.Service) {
	t.Helper()
	src := reports.NewService(reports.Options{
		Source: reports.StaticSource(analytics.SampleCatalogAt(apiNow)),
		Now:    func() time.Time { return apiNow },
	})
	service := dashboard.NewService(dashboard.Options{WidgetStore: dashboard.NewMemoryWidgetStore()})
	settingsSvc := settings.NewService(settings.Options{})
	exec := &CommandExecutor{
		AssignCommand:      commands.NewAssignWidgetCommand(service, nil),
		UpdateCommand:      commands.NewUpdateWidgetCommand(service, nil),
		RemoveCommand:      commands.NewRemoveWidgetCommand(service, nil),
		ReorderCommand:     commands.NewReorderWidgetsCommand(service, nil),
		RefreshCommand:     commands.NewRefreshWidgetCommand(service, nil),
		PreferencesCommand: commands.NewSaveLayoutPreferencesCommand(service, nil),
		SettingsCommand:    commands.NewSaveSettingsCommand(settingsSvc, nil),
		ReportQuery:        queries.NewReportQuery(src),
		SettingsQuery:      queries.NewSettingsQuery(settingsSvc),
		GiftCards:          src,
	}
	mux := http.NewServeMux()
	(&Handlers{API: exec, Spa: exec}).Mount(mux, "/admin", nil)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, service
}

func getJSON(t *testing.T, url string, target any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if target != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "owner")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSpaReportEndpoints(t *testing.T) {
	server, _ := newSpaServer(t)

	var services analytics.ServiceSummary
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/admin/spa/services", &services))
	assert.Equal(t, 50465.0, services.TotalRevenue)

	var patients reports.PatientReport
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/admin/spa/patients?status=inactive", &patients))
	assert.Equal(t, 1, patients.Matched)
	assert.Equal(t, 10, patients.Summary.Total)

	var promotions reports.PromotionReport
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/admin/spa/promotions/impact", &promotions))
	assert.Equal(t, 8700.0, promotions.Impact.Total)

	var due []analytics.Appointment
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/admin/spa/reminders/appointments?type=2h", &due))
	require.Len(t, due, 1)
	assert.Equal(t, "a2", due[0].ID)

	var failure map[string]string
	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/admin/spa/reminders/appointments?type=1w", &failure))
	assert.Contains(t, failure["error"], "unknown reminder window")
}

func TestSettingsEndpoints(t *testing.T) {
	server, _ := newSpaServer(t)

	var doc settings.Document
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/admin/settings", &doc))
	doc.BufferTime = 45
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	resp := postJSON(t, server.URL+"/admin/settings", string(raw))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var saved settings.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
	assert.Equal(t, 45, saved.BufferTime)

	resp = postJSON(t, server.URL+"/admin/settings", `{"calendarEnabled": "yes"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIssueGiftCardEndpoint(t *testing.T) {
	server, _ := newSpaServer(t)

	resp := postJSON(t, server.URL+"/admin/spa/gift-cards", `{"amount": 75, "recipientName": "Ana Ruiz"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var card analytics.GiftCard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&card))
	assert.True(t, strings.HasPrefix(card.Code, "GIFT-2026-"))
	assert.Equal(t, 75.0, card.Balance)

	resp = postJSON(t, server.URL+"/admin/spa/gift-cards", `{"amount": 0, "recipientName": "Ana"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWidgetEndpointsAgainstService(t *testing.T) {
	server, service := newSpaServer(t)

	resp := postJSON(t, server.URL+"/admin/dashboard/widgets", `{"definition_id":"spa.widget.insights","area_code":"spa.dashboard.sidebar","configuration":{"priority":"urgent"}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, server.URL+"/admin/dashboard/widgets", `{"definition_id":"spa.widget.insights","area_code":"spa.dashboard.sidebar","configuration":{"priority":"high"}}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	area, err := service.ResolveArea(context.Background(), dashboard.ViewerContext{UserID: "owner"}, dashboard.AreaSidebar)
	require.NoError(t, err)
	require.Len(t, area.Widgets, 1)
	id := area.Widgets[0].ID

	resp = postJSON(t, server.URL+"/admin/dashboard/widgets/"+id, `{"configuration":{"priority":"low"}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, server.URL+"/admin/dashboard/widgets/missing", `{"configuration":{}}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/admin/dashboard/widgets/"+id, nil)
	require.NoError(t, err)
	del, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)

	resp = postJSON(t, server.URL+"/admin/dashboard/preferences", `{"hidden_widget_ids":["w9"]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	prefs, err := service.Preferences(context.Background(), dashboard.ViewerContext{UserID: "owner"})
	require.NoError(t, err)
	assert.True(t, prefs.HiddenWidgets["w9"])
}
