package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-spa-dashboard/components/dashboard"
)

// ViewerFunc resolves the dashboard viewer for a request.
type ViewerFunc func(*http.Request) dashboard.ViewerContext

// ViewerFromHeaders reads X-User-ID, X-User-Roles (comma separated) and the
// first Accept-Language tag.
func ViewerFromHeaders(r *http.Request) dashboard.ViewerContext {
	viewer := dashboard.ViewerContext{UserID: strings.TrimSpace(r.Header.Get("X-User-ID"))}
	for _, role := range strings.Split(r.Header.Get("X-User-Roles"), ",") {
		if role = strings.TrimSpace(role); role != "" {
			viewer.Roles = append(viewer.Roles, role)
		}
	}
	if locale := strings.TrimSpace(r.URL.Query().Get("locale")); locale != "" {
		viewer.Locale = strings.ToLower(locale)
	} else {
		viewer.Locale = ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	}
	return viewer
}

// ParseAcceptLanguage returns the first language tag of an Accept-Language header.
func ParseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token = strings.TrimSpace(token); token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

// Mount registers every endpoint on mux under base (for example "/admin").
func (h *Handlers) Mount(mux *http.ServeMux, base string, viewer ViewerFunc) {
	if viewer == nil {
		viewer = ViewerFromHeaders
	}
	base = strings.TrimSuffix(base, "/")
	handle := func(pattern string, fn http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		mux.HandleFunc(method+" "+base+path, fn)
	}
	handle("GET /dashboard/layout", func(w http.ResponseWriter, r *http.Request) {
		write(w, h.Layout(r.Context(), viewer(r)))
	})
	handle("GET /dashboard/areas/{code}", func(w http.ResponseWriter, r *http.Request) {
		write(w, h.Area(r.Context(), viewer(r), r.PathValue("code")))
	})
	handle("POST /dashboard/widgets", h.HandleAssignWidget)
	handle("POST /dashboard/widgets/reorder", h.HandleReorderWidgets)
	handle("POST /dashboard/widgets/refresh", h.HandleRefreshWidget)
	handle("POST /dashboard/widgets/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleUpdateWidget(w, r, viewer(r), r.PathValue("id"))
	})
	handle("DELETE /dashboard/widgets/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleRemoveWidget(w, r, r.PathValue("id"))
	})
	handle("POST /dashboard/preferences", func(w http.ResponseWriter, r *http.Request) {
		write(w, h.SavePreferences(r.Context(), viewer(r), readBody(r)))
	})
	for _, route := range SpaRoutes() {
		report := route.Report
		handle("GET "+route.Path, func(w http.ResponseWriter, r *http.Request) {
			h.HandleReport(w, r, report)
		})
	}
	handle("POST /spa/gift-cards", func(w http.ResponseWriter, r *http.Request) {
		write(w, h.IssueGiftCard(r.Context(), readBody(r)))
	})
	if h.Broadcast != nil {
		handle("GET /dashboard/ws", h.Broadcast.ServeWebSocket)
		handle("GET /dashboard/events", h.Broadcast.ServeSSE)
	}
	handle("GET /settings", func(w http.ResponseWriter, r *http.Request) {
		write(w, h.Settings(r.Context()))
	})
	handle("POST /settings", func(w http.ResponseWriter, r *http.Request) {
		write(w, h.SaveSettings(r.Context(), viewer(r), readBody(r)))
	})
}

func (h *Handlers) HandleAssignWidget(w http.ResponseWriter, r *http.Request) {
	write(w, h.AssignWidget(r.Context(), readBody(r)))
}

func (h *Handlers) HandleUpdateWidget(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext, widgetID string) {
	write(w, h.UpdateWidget(r.Context(), viewer, widgetID, readBody(r)))
}

func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	write(w, h.RemoveWidget(r.Context(), ViewerFromHeaders(r), widgetID))
}

func (h *Handlers) HandleReorderWidgets(w http.ResponseWriter, r *http.Request) {
	write(w, h.ReorderWidgets(r.Context(), readBody(r)))
}

func (h *Handlers) HandleRefreshWidget(w http.ResponseWriter, r *http.Request) {
	write(w, h.RefreshWidget(r.Context(), readBody(r)))
}

func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request, report string) {
	write(w, h.Report(r.Context(), report, r.URL.Query().Get))
}

func readBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil
	}
	return data
}

func write(w http.ResponseWriter, resp Response) {
	if resp.Body == nil || resp.Status == http.StatusNoContent {
		w.WriteHeader(resp.Status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_ = json.NewEncoder(w).Encode(resp.Body)
}
