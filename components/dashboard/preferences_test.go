package dashboard

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryPreferenceStore(t *testing.T) {
	t.Parallel()
	store := NewInMemoryPreferenceStore()
	ctx := context.Background()
	viewer := ViewerContext{UserID: "u-1", TenantID: "acme"}

	got, err := store.Selections(ctx, viewer)
	require.NoError(t, err)
	assert.Equal(t, Selections{}, got)

	want := Selections{Tab: TabSales, ChartMetric: MetricDealSize}
	require.NoError(t, store.SaveSelections(ctx, viewer, want))

	got, err = store.Selections(ctx, viewer)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	other, err := store.Selections(ctx, ViewerContext{UserID: "u-1", TenantID: "globex"})
	require.NoError(t, err)
	assert.Equal(t, Selections{}, other)
}

func TestInMemoryPreferenceStoreRequiresUser(t *testing.T) {
	t.Parallel()
	store := NewInMemoryPreferenceStore()
	require.Error(t, store.SaveSelections(context.Background(), ViewerContext{}, Selections{Tab: TabSales}))
}

func TestPageApplySelectionsSkipsStaleTokens(t *testing.T) {
	t.Parallel()
	page, err := NewPage(context.Background(), PageOptions{
		Source:  NewStaticSource(DefaultFixtures()),
		Sampler: NewJitterSampler(NewStaticSource(DefaultFixtures()), WithRandSource(rand.NewSource(7))),
	})
	require.NoError(t, err)

	err = page.applySelections(context.Background(), Selections{
		Tab:         TabSales,
		HeaderRange: "last_decade",
		ChartMetric: MetricLeadVolume,
		ChartRange:  "ytd",
	})
	require.NoError(t, err)

	got := page.Selections()
	assert.Equal(t, TabSales, got.Tab)
	assert.Equal(t, "last_6_months", got.HeaderRange)
	assert.Equal(t, MetricLeadVolume, got.ChartMetric)
	assert.Equal(t, "ytd", got.ChartRange)
	assert.NotEmpty(t, page.Trend.Series().LeadVolume)
}
