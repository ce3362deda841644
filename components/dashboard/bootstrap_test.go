package dashboard

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSourceDefaults(t *testing.T) {
	t.Parallel()
	source, err := LoadSource("", nil)
	require.NoError(t, err)
	fx, err := source.Fixtures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultBrand, fx.Brand)
}

func TestLoadAndReloadSourceFromManifest(t *testing.T) {
	t.Parallel()
	fixtures := DefaultFixtures()
	fixtures.Brand = "LeadsCo North"
	var buf bytes.Buffer
	require.NoError(t, EncodeManifest(&buf, "north", fixtures))
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	source, err := LoadSource(path, NewJSONSchemaValidator())
	require.NoError(t, err)
	fx, _ := source.Fixtures(context.Background())
	assert.Equal(t, "LeadsCo North", fx.Brand)

	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\nfixtures:\n  colour: blue\n"), 0o600))
	require.Error(t, ReloadSource(source, path, nil))
	fx, _ = source.Fixtures(context.Background())
	assert.Equal(t, "LeadsCo North", fx.Brand, "failed reload keeps previous fixtures")

	require.NoError(t, ReloadSource(source, "", nil))
	fx, _ = source.Fixtures(context.Background())
	assert.Equal(t, DefaultBrand, fx.Brand)
}

func TestReloadSourceRequiresSource(t *testing.T) {
	t.Parallel()
	assert.Error(t, ReloadSource(nil, "", nil))
}

func TestWarmChartsStoresNoSession(t *testing.T) {
	t.Parallel()
	cache := &countingCache{inner: NewChartCache(time.Minute)}
	service := NewService(Options{Charts: NewEChartsRenderer(WithChartCache(cache))})

	require.NoError(t, WarmCharts(context.Background(), service, "en", "es"))
	assert.Equal(t, 0, service.Sessions().Len())
	assert.Positive(t, cache.renders.Load())

	assert.Error(t, WarmCharts(context.Background(), nil))
}

func TestServicePreviewRendersDefaults(t *testing.T) {
	t.Parallel()
	service := NewService(Options{Charts: &stubChartRenderer{html: "<div></div>"}})

	view, err := service.Preview(context.Background(), MountRequest{Locale: "es"})
	require.NoError(t, err)
	assert.Equal(t, "es", view.Locale)
	assert.Equal(t, MetricConversion, view.Trend.Metric)
	assert.Equal(t, 0, service.Sessions().Len())
}
