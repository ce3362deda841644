package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-leads-dashboard/components/dashboard"
	"github.com/goliatone/go-leads-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-leads-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-leads-dashboard/components/dashboard/queries"
)

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with the dashboard controller, API and refresh hook.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	API            httpapi.Executor
	Broadcast      *dashboard.BroadcastHook
	Validator      dashboard.PayloadValidator
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
// Page scoped paths must contain the :id parameter.
type RouteConfig struct {
	HTML      string
	Pages     string
	Page      string
	Section   string
	WebSocket string
}

// Register mounts dashboard routes (HTML, JSON, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api executor is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	resolver := cfg.ViewerResolver
	if resolver == nil {
		resolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		pageID, err := mount(ctx, cfg.API, resolver, commands.MountPageInput{Path: ctx.Query("path")})
		if err != nil {
			return respondError(ctx, err)
		}
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), pageID, &buf); err != nil {
			return respondError(ctx, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	registerAPI(group, cfg, resolver, routes)

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}
	return nil
}

func registerAPI[T any](r router.Router[T], cfg Config[T], resolver ViewerResolver, routes RouteConfig) {
	api := cfg.API

	r.Post(routes.Pages, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.MountPageInput
		if body := bytes.TrimSpace(ctx.Body()); len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				return respondError(ctx, dashboard.ErrInvalidPayload("gorouter: decode mount payload: %v", err))
			}
		}
		pageID, err := mount(ctx, api, resolver, payload)
		if err != nil {
			return respondError(ctx, err)
		}
		view, err := api.Page(ctx.Context(), queries.PageInput{PageID: pageID})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, view)
	}))

	r.Get(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		view, err := api.Page(ctx.Context(), queries.PageInput{PageID: ctx.Param("id")})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, view)
	}))

	r.Delete(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		if err := api.Close(ctx.Context(), commands.ClosePageInput{PageID: ctx.Param("id")}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.SendStatus(http.StatusNoContent)
	}))

	r.Get(routes.Section, router.WrapHandler(func(ctx router.Context) error {
		pageID := ctx.Param("id")
		section, err := dashboard.ParseSection(ctx.Param("section"))
		if err != nil {
			return respondError(ctx, err)
		}
		if ctx.Query("format") == "html" {
			var buf bytes.Buffer
			if err := cfg.Controller.RenderSection(ctx.Context(), pageID, section, &buf); err != nil {
				return respondError(ctx, err)
			}
			ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
			return ctx.Send(buf.Bytes())
		}
		view, err := api.Section(ctx.Context(), queries.SectionInput{PageID: pageID, Section: section})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, httpapi.ActionResult{PageID: pageID, Section: section, View: view})
	}))

	for _, action := range httpapi.Actions() {
		action := action
		r.Post(routes.Page+"/"+action.Path, router.WrapHandler(func(ctx router.Context) error {
			result, err := action.Perform(ctx.Context(), api, cfg.Validator, ctx.Param("id"), ctx.Body())
			if err != nil {
				return respondError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, result)
		}))
	}
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe(ws.Query("page"))
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func mount(ctx router.Context, api httpapi.Executor, resolver ViewerResolver, input commands.MountPageInput) (string, error) {
	input.Viewer = resolver(ctx)
	if input.Locale == "" {
		input.Locale = input.Viewer.Locale
	}
	result := &commands.MountResult{}
	input.Result = result
	if err := api.Mount(ctx.Context(), input); err != nil {
		return "", err
	}
	return result.PageID, nil
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	} else {
		viewer.UserID = strings.TrimSpace(ctx.Header(httpapi.HeaderUserID))
	}
	if v, ok := ctx.Locals("tenant_id").(string); ok {
		viewer.TenantID = v
	} else {
		viewer.TenantID = strings.TrimSpace(ctx.Header(httpapi.HeaderTenantID))
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	return httpapi.RequestLocale(ctx.Query("locale"), ctx.Header("Accept-Language"))
}

func respondError(ctx router.Context, err error) error {
	return ctx.JSON(dashboard.HTTPStatus(err), dashboard.ErrorResponse(err))
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.Pages == "" {
		routes.Pages = "/dashboard/api/pages"
	}
	if routes.Page == "" {
		routes.Page = "/dashboard/api/pages/:id"
	}
	if routes.Section == "" {
		routes.Section = routes.Page + "/sections/:section"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}
