package analytics

import (
	"context"

	dashboard "github.com/goliatone/go-leads-dashboard/components/dashboard"
)

// FixturesClient fetches the page fixtures (navigation, cards, summary) from
// an upstream reporting service.
type FixturesClient interface {
	FetchFixtures(ctx context.Context) (dashboard.Fixtures, error)
}

// BaselineClient fetches the unperturbed trend series the sampler jitters.
type BaselineClient interface {
	FetchBaseline(ctx context.Context) (dashboard.TrendBaseline, error)
}

// Client is a convenience union for services that implement all analytics calls.
type Client interface {
	FixturesClient
	BaselineClient
}
