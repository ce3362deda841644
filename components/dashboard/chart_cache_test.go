package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct{ at time.Time }

func (m *manualClock) Now() time.Time          { return m.at }
func (m *manualClock) Advance(d time.Duration) { m.at = m.at.Add(d) }

func TestChartCacheStoresEntry(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	val1, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	val2, err := cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, "html", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
}

func TestChartCacheExpires(t *testing.T) {
	clock := &manualClock{at: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewChartCache(time.Second)
	cache.now = clock.Now
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	clock.Advance(2 * time.Second)
	_, err = cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestChartCacheDoesNotStoreErrors(t *testing.T) {
	cache := NewChartCache(time.Minute)
	_, err := cache.GetOrRender("key", func() (string, error) { return "", errors.New("boom") })
	require.Error(t, err)
	assert.Zero(t, cache.Len())
}

func TestChartCacheSweep(t *testing.T) {
	clock := &manualClock{at: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewChartCache(time.Second)
	cache.now = clock.Now
	for _, key := range []string{"a", "b"} {
		_, err := cache.GetOrRender(key, func() (string, error) { return key, nil })
		require.NoError(t, err)
	}
	clock.Advance(500 * time.Millisecond)
	_, err := cache.GetOrRender("c", func() (string, error) { return "c", nil })
	require.NoError(t, err)
	clock.Advance(700 * time.Millisecond)

	assert.Equal(t, 2, cache.Sweep())
	assert.Equal(t, 1, cache.Len())
}

func TestChartCacheDisabled(t *testing.T) {
	cache := NewChartCache(0)
	calls := 0
	for i := 0; i < 2; i++ {
		_, err := cache.GetOrRender("key", func() (string, error) {
			calls++
			return "x", nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestConfigHash(t *testing.T) {
	assert.Equal(t, "empty", configHash(nil))
	assert.Equal(t, configHash(map[string]any{"a": 1}), configHash(map[string]any{"a": 1}))
	assert.NotEqual(t, configHash(map[string]any{"a": 1}), configHash(map[string]any{"a": 2}))
	assert.Equal(t, "invalid", configHash(func() {}))
}
