package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-leads-dashboard/components/dashboard"
	"github.com/goliatone/go-leads-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-leads-dashboard/components/dashboard/queries"
)

const maxBodyBytes = 64 << 10

// PageRenderer renders HTML for a mounted page. *dashboard.Controller satisfies it.
type PageRenderer interface {
	RenderTemplate(ctx context.Context, pageID string, out io.Writer) error
	RenderSection(ctx context.Context, pageID string, section dashboard.Section, out io.Writer) error
}

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	Executor  Executor
	Renderer  PageRenderer
	Broadcast *dashboard.BroadcastHook
	Validator dashboard.PayloadValidator
	Viewer    func(*http.Request) dashboard.ViewerContext
}

// Routes builds the JSON API: page resources, interactions and the event streams.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/pages", h.HandleMount)
	r.Route("/pages/{pageID}", func(r chi.Router) {
		r.Get("/", h.HandlePage)
		r.Delete("/", h.HandleClose)
		r.Get("/sections/{section}", h.HandleSection)
		for _, action := range Actions() {
			r.Post("/"+action.Path, h.HandleAction(action))
		}
	})
	if h.Broadcast != nil {
		r.Get("/events", h.Broadcast.ServeSSE)
		r.Get("/ws", h.Broadcast.ServeWebSocket)
	}
	return r
}

// Router composes the HTML page, the API under /api and the websocket under /ws.
func (h *Handlers) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares...)
	r.Get("/", h.HandleDashboard)
	r.Mount("/api", h.Routes())
	if h.Broadcast != nil {
		r.Get("/ws", h.Broadcast.ServeWebSocket)
	}
	return r
}

// HandleDashboard mounts a fresh page and renders it.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if h.Renderer == nil {
		writeError(w, errNotConfigured)
		return
	}
	pageID, err := h.mount(r, commands.MountPageInput{Path: r.URL.Query().Get("path")})
	if err != nil {
		writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := h.Renderer.RenderTemplate(r.Context(), pageID, &buf); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handlers) HandleMount(w http.ResponseWriter, r *http.Request) {
	var payload commands.MountPageInput
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, dashboard.ErrInvalidPayload("httpapi: read body: %v", err))
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			writeError(w, dashboard.ErrInvalidPayload("httpapi: decode mount payload: %v", err))
			return
		}
	}
	pageID, err := h.mount(r, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := h.Executor.Page(r.Context(), queries.PageInput{PageID: pageID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	view, err := h.Executor.Page(r.Context(), queries.PageInput{PageID: chi.URLParam(r, "pageID")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) HandleClose(w http.ResponseWriter, r *http.Request) {
	if err := h.Executor.Close(r.Context(), commands.ClosePageInput{PageID: chi.URLParam(r, "pageID")}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSection returns one section as JSON, or as an HTML fragment with ?format=html.
func (h *Handlers) HandleSection(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")
	section, err := dashboard.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		writeError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "html" && h.Renderer != nil {
		var buf bytes.Buffer
		if err := h.Renderer.RenderSection(r.Context(), pageID, section, &buf); err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
		return
	}
	view, err := h.Executor.Section(r.Context(), queries.SectionInput{PageID: pageID, Section: section})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ActionResult{PageID: pageID, Section: section, View: view})
}

// HandleAction returns the handler for one interaction.
func (h *Handlers) HandleAction(action Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, dashboard.ErrInvalidPayload("httpapi: read body: %v", err))
			return
		}
		result, err := action.Perform(r.Context(), h.Executor, h.Validator, chi.URLParam(r, "pageID"), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (h *Handlers) mount(r *http.Request, input commands.MountPageInput) (string, error) {
	if h.Executor == nil {
		return "", errNotConfigured
	}
	resolve := h.Viewer
	if resolve == nil {
		resolve = ResolveViewer
	}
	input.Viewer = resolve(r)
	if input.Locale == "" {
		input.Locale = input.Viewer.Locale
	}
	result := &commands.MountResult{}
	input.Result = result
	if err := h.Executor.Mount(r.Context(), input); err != nil {
		return "", err
	}
	return result.PageID, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, dashboard.HTTPStatus(err), dashboard.ErrorResponse(err))
}
