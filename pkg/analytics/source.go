package analytics

import (
	"context"

	dashboard "github.com/goliatone/go-leads-dashboard/components/dashboard"
)

// SourceOption customizes NewSource.
type SourceOption func(*remoteSource)

// WithValidator checks remote fixtures against the manifest schema.
func WithValidator(validator dashboard.ManifestValidator) SourceOption {
	return func(s *remoteSource) {
		s.validator = validator
	}
}

// NewSource adapts an analytics client into a dashboard.Source. Remote
// fixtures must pass the same checks as a manifest file. When the remote call
// fails or its fixtures are invalid and fallback is set, the fallback answers
// instead and the remote error is dropped.
func NewSource(client Client, fallback dashboard.Source, opts ...SourceOption) dashboard.Source {
	s := &remoteSource{client: client, fallback: fallback}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type remoteSource struct {
	client    Client
	fallback  dashboard.Source
	validator dashboard.ManifestValidator
}

func (s *remoteSource) Fixtures(ctx context.Context) (dashboard.Fixtures, error) {
	fixtures, err := s.client.FetchFixtures(ctx)
	if err == nil {
		err = dashboard.ValidateFixtures(fixtures, s.validator)
	}
	if err != nil && s.fallback != nil {
		return s.fallback.Fixtures(ctx)
	}
	return fixtures, err
}

func (s *remoteSource) TrendBaseline(ctx context.Context) (dashboard.TrendBaseline, error) {
	baseline, err := s.client.FetchBaseline(ctx)
	if err != nil && s.fallback != nil {
		return s.fallback.TrendBaseline(ctx)
	}
	return baseline, err
}
