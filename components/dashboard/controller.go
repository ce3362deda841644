package dashboard

import (
	"context"
	"errors"
	"io"
)

// PageViewer resolves render-ready page data. *Service satisfies it.
type PageViewer interface {
	View(ctx context.Context, id string) (PageView, error)
	SectionView(ctx context.Context, id string, section Section) (any, error)
}

// ControllerOptions wires collaborators into the controller.
type ControllerOptions struct {
	Service  PageViewer
	Renderer Renderer
	Template string
	// BasePath is handed to templates so forms post back to the right routes.
	BasePath string
}

// Controller renders pages and sections for HTTP transports.
type Controller struct {
	service  PageViewer
	renderer Renderer
	template string
	basePath string
}

var (
	errMissingPageViewer = errors.New("dashboard: controller requires a page viewer")
	errMissingRenderer   = errors.New("dashboard: controller requires a renderer")
)

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	tpl := opts.Template
	if tpl == "" {
		tpl = TemplatePage
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		template: tpl,
		basePath: opts.BasePath,
	}
}

// RenderTemplate writes the full page as HTML.
func (c *Controller) RenderTemplate(ctx context.Context, pageID string, out io.Writer) error {
	if c.renderer == nil {
		return errMissingRenderer
	}
	payload, err := c.PagePayload(ctx, pageID)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(c.template, payload, out)
	return err
}

// RenderSection writes one section partial, used for in-place refreshes.
func (c *Controller) RenderSection(ctx context.Context, pageID string, section Section, out io.Writer) error {
	if c.renderer == nil {
		return errMissingRenderer
	}
	payload, err := c.SectionPayload(ctx, pageID, section)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(SectionTemplate(section), payload, out)
	return err
}

// PagePayload returns the template data for the whole page.
func (c *Controller) PagePayload(ctx context.Context, pageID string) (map[string]any, error) {
	if c.service == nil {
		return nil, errMissingPageViewer
	}
	view, err := c.service.View(ctx, pageID)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"page":      view,
		"base_path": c.basePath,
	}, nil
}

// SectionPayload returns the template data for a section. The section view
// sits under its own name, matching the keys of the page payload.
func (c *Controller) SectionPayload(ctx context.Context, pageID string, section Section) (map[string]any, error) {
	if c.service == nil {
		return nil, errMissingPageViewer
	}
	view, err := c.service.SectionView(ctx, pageID, section)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"page":      map[string]any{"id": pageID, string(section): view},
		"section":   string(section),
		"base_path": c.basePath,
	}, nil
}
