package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// Selections are the control choices remembered for a viewer between page
// sessions. Empty fields mean "use the fixture default".
type Selections struct {
	Tab         string      `json:"tab,omitempty"`
	HeaderRange string      `json:"header_range,omitempty"`
	ChartMetric TrendMetric `json:"chart_metric,omitempty"`
	ChartRange  string      `json:"chart_range,omitempty"`
}

// PreferenceStore persists Selections per viewer.
type PreferenceStore interface {
	Selections(ctx context.Context, viewer ViewerContext) (Selections, error)
	SaveSelections(ctx context.Context, viewer ViewerContext, selections Selections) error
}

// InMemoryPreferenceStore provides a concurrency-safe default store.
type InMemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]Selections
}

// NewInMemoryPreferenceStore creates an empty preference store.
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		data: make(map[string]Selections),
	}
}

// Selections returns stored selections, or the zero value for anonymous or unknown viewers.
func (s *InMemoryPreferenceStore) Selections(_ context.Context, viewer ViewerContext) (Selections, error) {
	if viewer.UserID == "" {
		return Selections{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[s.key(viewer)], nil
}

// SaveSelections persists selections for a viewer.
func (s *InMemoryPreferenceStore) SaveSelections(_ context.Context, viewer ViewerContext, selections Selections) error {
	if viewer.UserID == "" {
		return fmt.Errorf("preference store requires viewer user id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[s.key(viewer)] = selections
	return nil
}

func (s *InMemoryPreferenceStore) key(viewer ViewerContext) string {
	if viewer.TenantID == "" {
		return viewer.UserID
	}
	return viewer.TenantID + "::" + viewer.UserID
}

// Selections snapshots the page's current control choices.
func (p *Page) Selections() Selections {
	return Selections{
		Tab:         p.Header.Tabs.Selected().Token,
		HeaderRange: p.Header.Range.Selected().Token,
		ChartMetric: p.Trend.Metric(),
		ChartRange:  p.Trend.Range().Token,
	}
}

// applySelections restores remembered choices. Tokens that no longer exist
// in the fixtures are skipped; the first sampler failure is returned.
func (p *Page) applySelections(ctx context.Context, selections Selections) error {
	if selections.Tab != "" {
		_, _ = p.Header.SelectTab(selections.Tab)
	}
	if selections.HeaderRange != "" {
		_, _ = p.Header.SelectRange(selections.HeaderRange)
	}
	if selections.ChartMetric != "" {
		if metric, err := ParseTrendMetric(string(selections.ChartMetric)); err == nil {
			if _, err := p.Trend.SelectMetric(ctx, metric); err != nil && HTTPStatus(err) != http.StatusBadRequest {
				return err
			}
		}
	}
	if selections.ChartRange != "" {
		if _, err := p.Trend.SelectRange(ctx, selections.ChartRange); err != nil && HTTPStatus(err) != http.StatusBadRequest {
			return err
		}
	}
	return nil
}
