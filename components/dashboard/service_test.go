package dashboard

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-leads-dashboard/pkg/activity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRefreshHook struct {
	mu     sync.Mutex
	events []PageEvent
	err    error
}

func (h *recordingRefreshHook) PageUpdated(_ context.Context, event PageEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

type recordedTelemetry struct {
	event   string
	payload map[string]any
}

type recordingTelemetry struct {
	mu      sync.Mutex
	records []recordedTelemetry
}

func (r *recordingTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, recordedTelemetry{event: event, payload: payload})
}

func (r *recordingTelemetry) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.event
	}
	return out
}

type serviceFixture struct {
	service   *Service
	hook      *recordingRefreshHook
	telemetry *recordingTelemetry
	capture   *activity.CaptureHook
	charts    *stubChartRenderer
}

func newServiceFixture(t *testing.T, mutate func(*Options)) serviceFixture {
	t.Helper()
	fx := serviceFixture{
		hook:      &recordingRefreshHook{},
		telemetry: &recordingTelemetry{},
		capture:   &activity.CaptureHook{},
		charts:    &stubChartRenderer{html: "<div class=\"chart\"></div>"},
	}
	source := NewStaticSource(DefaultFixtures())
	opts := Options{
		Source:         source,
		Sampler:        NewJitterSampler(source, WithRandSource(rand.NewSource(7))),
		RefreshHook:    fx.hook,
		Telemetry:      fx.telemetry,
		ActivityHooks:  activity.Hooks{fx.capture},
		ActivityConfig: activity.Config{Enabled: true},
		Charts:         fx.charts,
	}
	if mutate != nil {
		mutate(&opts)
	}
	fx.service = NewService(opts)
	return fx
}

func TestServiceMountAndView(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, nil)
	ctx := context.Background()

	page, err := fx.service.Mount(ctx, MountRequest{Locale: "EN"})
	require.NoError(t, err)
	assert.NotEmpty(t, page.ID)
	assert.Equal(t, "en", page.Locale)

	view, err := fx.service.View(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultBrand, view.Shell.Brand)
	assert.Equal(t, DefaultActivePath, view.Shell.ActivePath)
	assert.False(t, view.Shell.DrawerOpen)
	assert.Equal(t, TabLeads, view.Header.Tabs.Selected.Token)
	require.Len(t, view.StatCards, 2)
	assert.Equal(t, StatCardFunnel, view.StatCards[0].Kind)
	assert.Equal(t, StatCardBreakdown, view.StatCards[1].Kind)
	assert.Equal(t, MetricConversion, view.Trend.Metric)
	assert.Len(t, view.Trend.Legend, 2)
	assert.Len(t, view.Summary, 2)
	assert.Contains(t, view.ThemeCSS, "--")
	assert.Contains(t, fx.telemetry.names(), EventPageMount)
}

func TestServiceMountPathOverride(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, nil)
	page, err := fx.service.Mount(context.Background(), MountRequest{Path: "/leads"})
	require.NoError(t, err)
	assert.Equal(t, "/leads", page.Shell.ActivePath)
}

func TestServiceUnknownPage(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, nil)
	_, err := fx.service.ToggleDrawer(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))
}

func TestServiceToggleDrawerPublishes(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, nil)
	ctx := context.Background()
	page, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)

	open, err := fx.service.ToggleDrawer(ctx, page.ID)
	require.NoError(t, err)
	assert.True(t, open)
	open, err = fx.service.ToggleDrawer(ctx, page.ID)
	require.NoError(t, err)
	assert.False(t, open)

	require.Len(t, fx.hook.events, 2)
	assert.Equal(t, SectionShell, fx.hook.events[0].Section)
	assert.Equal(t, EventDrawerToggle, fx.hook.events[0].Reason)
	assert.Equal(t, true, fx.hook.events[0].Payload["drawer_open"])

	events := fx.capture.Snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, EventDrawerToggle, events[0].Verb)
	assert.Equal(t, "page_session", events[0].ObjectType)
	assert.Equal(t, page.ID, events[0].ObjectID)
	assert.Equal(t, activity.DefaultChannel, events[0].Channel)
}

func TestServiceCloseDrawerNoopWhenClosed(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, nil)
	ctx := context.Background()
	page, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)

	require.NoError(t, fx.service.CloseDrawer(ctx, page.ID))
	assert.Empty(t, fx.hook.events)

	_, err = fx.service.ToggleDrawer(ctx, page.ID)
	require.NoError(t, err)
	require.NoError(t, fx.service.CloseDrawer(ctx, page.ID))
	assert.False(t, page.Shell.DrawerOpen())
	assert.Len(t, fx.hook.events, 2)
}

func TestServiceNavigateFromDrawerClosesIt(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, nil)
	ctx := context.Background()
	page, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)
	_, err = fx.service.ToggleDrawer(ctx, page.ID)
	require.NoError(t, err)

	entry, err := fx.service.Navigate(ctx, page.ID, "/leads")
	require.NoError(t, err)
	assert.Equal(t, "Leads", entry.Label)
	assert.False(t, page.Shell.DrawerOpen())
	assert.Equal(t, "/leads", page.Shell.ActivePath)

	last := fx.hook.events[len(fx.hook.events)-1]
	assert.Equal(t, EventNavigate, last.Reason)
	assert.Equal(t, false, last.Payload["drawer_open"])
}

func TestServiceNavigateUnknownPath(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, nil)
	ctx := context.Background()
	page, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)

	_, err = fx.service.Navigate(ctx, page.ID, "/nowhere")
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))
	assert.Equal(t, DefaultActivePath, page.Shell.ActivePath)
	assert.Contains(t, fx.telemetry.names(), EventInteractionError)
	assert.Empty(t, fx.hook.events)
}

func TestServiceHeaderControlsAreInert(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, nil)
	ctx := context.Background()
	page, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)
	before := page.Trend.Series()

	changed, err := fx.service.SelectTab(ctx, page.ID, TabSales)
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = fx.service.SelectHeaderRange(ctx, page.ID, "last_30_days")
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, before, page.Trend.Series())
	for _, event := range fx.hook.events {
		assert.Equal(t, SectionHeader, event.Section)
	}

	changed, err = fx.service.SelectTab(ctx, page.ID, TabSales)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, fx.hook.events, 2)

	_, err = fx.service.SelectTab(ctx, page.ID, "marketing")
	require.Error(t, err)
	assert.True(t, goerrors.IsValidation(err))
}

func TestServiceSelectChartMetricResamples(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, nil)
	ctx := context.Background()
	page, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)

	changed, err := fx.service.SelectChartMetric(ctx, page.ID, "deal_size")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, MetricDealSize, page.Trend.Metric())
	series := page.Trend.Series()
	assert.Equal(t, MetricDealSize, series.Metric)
	assert.NotEmpty(t, series.DealSize)
	assert.Empty(t, series.Conversion)

	view, err := fx.service.SectionView(ctx, page.ID, SectionTrend)
	require.NoError(t, err)
	trend, ok := view.(TrendChartView)
	require.True(t, ok)
	assert.Empty(t, trend.Legend)
	assert.Equal(t, MetricDealSize, fx.charts.lastSeries.Metric)

	last := fx.hook.events[len(fx.hook.events)-1]
	assert.Equal(t, SectionTrend, last.Section)
	assert.Equal(t, "dealSize", last.Payload["metric"])

	_, err = fx.service.SelectChartMetric(ctx, page.ID, "revenue")
	require.Error(t, err)
	assert.True(t, goerrors.IsValidation(err))
}

func TestServiceSelectChartRange(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, nil)
	ctx := context.Background()
	page, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)

	changed, err := fx.service.SelectChartRange(ctx, page.ID, "ytd")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "ytd", page.Trend.Range().Token)

	changed, err = fx.service.SelectChartRange(ctx, page.ID, "ytd")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestServiceSamplerFailureKeepsSeries(t *testing.T) {
	t.Parallel()
	var fail bool
	source := NewStaticSource(DefaultFixtures())
	jitter := NewJitterSampler(source, WithRandSource(rand.NewSource(1)))
	fx := newServiceFixture(t, func(o *Options) {
		o.Sampler = SamplerFunc(func(ctx context.Context, q TrendQuery) (TrendSeries, error) {
			if fail {
				return TrendSeries{}, errors.New("backend down")
			}
			return jitter.Sample(ctx, q)
		})
	})
	ctx := context.Background()
	page, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)
	before := page.Trend.Series()

	fail = true
	_, err = fx.service.SelectChartMetric(ctx, page.ID, "leadVolume")
	require.Error(t, err)
	assert.Equal(t, 502, HTTPStatus(err))
	assert.Equal(t, MetricConversion, page.Trend.Metric())
	assert.Equal(t, before, page.Trend.Series())
	assert.Empty(t, fx.hook.events)
}

func TestServiceSamplerFactoryPerPage(t *testing.T) {
	t.Parallel()
	var built int
	fx := newServiceFixture(t, func(o *Options) {
		o.SamplerFactory = func(source Source) Sampler {
			built++
			return NewJitterSampler(source, WithRandSource(rand.NewSource(int64(built))))
		}
	})
	ctx := context.Background()
	_, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)
	_, err = fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, built)
}

func TestServiceActivityUsesContextIdentity(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, nil)
	page, err := fx.service.Mount(context.Background(), MountRequest{Viewer: ViewerContext{UserID: "viewer-1", TenantID: "tenant-1"}})
	require.NoError(t, err)

	ctx := ContextWithActivity(context.Background(), ActivityContext{ActorID: "actor-9"})
	_, err = fx.service.SelectChartRange(ctx, page.ID, "last_3_months")
	require.NoError(t, err)

	events := fx.capture.Snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, "actor-9", events[0].ActorID)
	assert.Equal(t, "viewer-1", events[0].UserID)
	assert.Equal(t, "tenant-1", events[0].TenantID)
	assert.Equal(t, "last_3_months", events[0].Metadata["range"])
}

func TestServiceRefreshHookErrorSurfaces(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, nil)
	fx.hook.err = errors.New("transport gone")
	ctx := context.Background()
	page, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)

	open, err := fx.service.ToggleDrawer(ctx, page.ID)
	require.Error(t, err)
	assert.True(t, open, "state change is kept even when publishing fails")
}

func TestServiceCloseAndSweep(t *testing.T) {
	t.Parallel()
	clock := &manualClock{at: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	fx := newServiceFixture(t, func(o *Options) {
		o.Sessions = NewSessionStore(time.Minute, WithSessionClock(clock.Now))
	})
	ctx := context.Background()
	first, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)
	_, err = fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)

	require.NoError(t, fx.service.Close(ctx, first.ID))
	assert.Error(t, fx.service.Close(ctx, first.ID))

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, fx.service.Sweep(ctx))
	assert.Contains(t, fx.telemetry.names(), EventSessionSweep)
}

func TestServiceSectionViewUnknown(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, nil)
	ctx := context.Background()
	page, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)
	_, err = fx.service.SectionView(ctx, page.ID, Section("footer"))
	require.Error(t, err)
	assert.Equal(t, 404, HTTPStatus(err))
}

func TestServiceTranslatorOverridesFixtures(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(t, func(o *Options) {
		o.Translator = CatalogTranslator{Messages: map[string]map[string]string{
			"dashboard.nav.leads": {"es": "Prospectos"},
		}}
	})
	ctx := context.Background()
	page, err := fx.service.Mount(ctx, MountRequest{Locale: "es"})
	require.NoError(t, err)
	view, err := fx.service.SectionView(ctx, page.ID, SectionShell)
	require.NoError(t, err)
	shell := view.(ShellView)
	var labels []string
	for _, item := range shell.Navigation.Primary {
		labels = append(labels, item.Label)
	}
	assert.Contains(t, labels, "Prospectos")
}

func TestServiceRemembersSelectionsPerViewer(t *testing.T) {
	t.Parallel()
	prefs := NewInMemoryPreferenceStore()
	fx := newServiceFixture(t, func(opts *Options) { opts.Preferences = prefs })
	ctx := context.Background()
	viewer := ViewerContext{UserID: "u-7"}

	first, err := fx.service.Mount(ctx, MountRequest{Viewer: viewer})
	require.NoError(t, err)
	_, err = fx.service.SelectTab(ctx, first.ID, TabSales)
	require.NoError(t, err)
	_, err = fx.service.SelectChartMetric(ctx, first.ID, "deal_size")
	require.NoError(t, err)

	second, err := fx.service.Mount(ctx, MountRequest{Viewer: viewer})
	require.NoError(t, err)
	assert.Equal(t, TabSales, second.Header.Tabs.Selected().Token)
	assert.Equal(t, MetricDealSize, second.Trend.Metric())

	anonymous, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)
	assert.Equal(t, TabLeads, anonymous.Header.Tabs.Selected().Token)
	assert.Equal(t, MetricConversion, anonymous.Trend.Metric())
}

func TestServiceShellCarriesThemeLogo(t *testing.T) {
	t.Parallel()
	theme := DefaultTheme()
	theme.Assets = ThemeAssets{Values: map[string]string{AssetLogo: "img/logo.svg"}, Prefix: "/static/"}
	fx := newServiceFixture(t, func(opts *Options) {
		opts.ThemeProvider = StaticThemeProvider{Selection: theme}
	})
	ctx := context.Background()
	page, err := fx.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)

	view, err := fx.service.View(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, "/static/img/logo.svg", view.Shell.LogoURL)

	section, err := fx.service.SectionView(ctx, page.ID, SectionShell)
	require.NoError(t, err)
	assert.Equal(t, "/static/img/logo.svg", section.(ShellView).LogoURL)

	plain := newServiceFixture(t, nil)
	other, err := plain.service.Mount(ctx, MountRequest{})
	require.NoError(t, err)
	otherView, err := plain.service.View(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, otherView.Shell.LogoURL)
}
