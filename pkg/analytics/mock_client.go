package analytics

import (
	"context"
	"sync"

	dashboard "github.com/goliatone/go-leads-dashboard/components/dashboard"
)

// MockData seeds deterministic analytics responses for tests or local demos.
type MockData struct {
	Fixtures dashboard.Fixtures
	// Err, when set, is returned by every call.
	Err error
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	mu    sync.RWMutex
	data  *dashboard.StaticSource
	err   error
	calls int
}

// NewMockClient builds a mock analytics client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: dashboard.NewStaticSource(data.Fixtures), err: data.Err}
}

var _ Client = (*MockClient)(nil)

// FetchFixtures returns a copy of the configured fixtures.
func (c *MockClient) FetchFixtures(ctx context.Context) (dashboard.Fixtures, error) {
	if err := c.record(); err != nil {
		return dashboard.Fixtures{}, err
	}
	return c.data.Fixtures(ctx)
}

// FetchBaseline returns a copy of the configured trend baseline.
func (c *MockClient) FetchBaseline(ctx context.Context) (dashboard.TrendBaseline, error) {
	if err := c.record(); err != nil {
		return dashboard.TrendBaseline{}, err
	}
	return c.data.TrendBaseline(ctx)
}

// SetError makes subsequent calls fail (nil restores success).
func (c *MockClient) SetError(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

// Calls reports how many fetches were attempted.
func (c *MockClient) Calls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls
}

func (c *MockClient) record() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.err
}
