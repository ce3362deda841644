package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-leads-dashboard/components/dashboard"
)

// SectionInput identifies one section of a mounted page.
type SectionInput struct {
	PageID  string
	Section dashboard.Section
}

type sectionService interface {
	SectionView(ctx context.Context, id string, section dashboard.Section) (any, error)
}

// SectionQuery renders a single page section.
type SectionQuery struct {
	service sectionService
}

// NewSectionQuery builds the query.
func NewSectionQuery(service sectionService) *SectionQuery {
	return &SectionQuery{service: service}
}

var _ gocommand.Querier[SectionInput, any] = (*SectionQuery)(nil)

// Query renders the section.
func (q *SectionQuery) Query(ctx context.Context, input SectionInput) (any, error) {
	return q.service.SectionView(ctx, input.PageID, input.Section)
}
