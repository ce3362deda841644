// Package dashboard is the public entry point for embedding the leads
// dashboard in another application.
package dashboard

import (
	"context"

	core "github.com/goliatone/go-leads-dashboard/components/dashboard"
	"github.com/goliatone/go-leads-dashboard/components/dashboard/httpapi"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// PageView re-export for convenience.
type PageView = core.PageView

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// Handlers wires a service, the embedded templates and a broadcast hook into
// chi handlers. basePath is the prefix the returned router is mounted under.
func Handlers(service *Service, basePath string) (*httpapi.Handlers, error) {
	renderer, err := core.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	return &httpapi.Handlers{
		Executor: httpapi.NewCommandExecutor(service, nil),
		Renderer: core.NewController(core.ControllerOptions{
			Service:  service,
			Renderer: renderer,
			BasePath: basePath,
		}),
		Validator: core.NewJSONSchemaValidator(),
	}, nil
}

// Snapshot mounts a throwaway page, renders it and closes it again.
func Snapshot(ctx context.Context, service *Service, locale string) (PageView, error) {
	page, err := service.Mount(ctx, core.MountRequest{Locale: locale})
	if err != nil {
		return PageView{}, err
	}
	defer func() { _ = service.Close(ctx, page.ID) }()
	return service.View(ctx, page.ID)
}
