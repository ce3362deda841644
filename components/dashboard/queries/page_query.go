package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-leads-dashboard/components/dashboard"
)

// PageInput identifies a mounted page.
type PageInput struct {
	PageID string
}

type pageService interface {
	View(ctx context.Context, id string) (dashboard.PageView, error)
}

// PageQuery renders a full page view.
type PageQuery struct {
	service pageService
}

// NewPageQuery builds the query.
func NewPageQuery(service pageService) *PageQuery {
	return &PageQuery{service: service}
}

var _ gocommand.Querier[PageInput, dashboard.PageView] = (*PageQuery)(nil)

// Query renders the page.
func (q *PageQuery) Query(ctx context.Context, input PageInput) (dashboard.PageView, error) {
	return q.service.View(ctx, input.PageID)
}
