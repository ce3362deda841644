package dashboard

import (
	"context"
	"time"

	"github.com/goliatone/go-leads-dashboard/pkg/activity"
)

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	Source  Source
	Sampler Sampler
	// SamplerFactory builds a sampler per page. It wins over Sampler.
	SamplerFactory func(source Source) Sampler
	Sessions       *SessionStore
	// Preferences remembers tab, range and metric choices per signed-in viewer.
	Preferences    PreferenceStore
	RefreshHook    RefreshHook
	Telemetry      Telemetry
	ActivityHooks  activity.Hooks
	ActivityConfig activity.Config
	Translator     TranslationService
	ThemeProvider  ThemeProvider
	ThemeSelector  ThemeSelector
	Charts         ChartRenderer
	Now            func() time.Time
}

// Service mounts page sessions and applies interactions to them.
type Service struct {
	opts     Options
	activity *activity.Emitter
}

// MountRequest opens a page session.
type MountRequest struct {
	Path   string
	Locale string
	Viewer ViewerContext
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Source == nil {
		opts.Source = NewStaticSource(DefaultFixtures())
	}
	if opts.Sessions == nil {
		opts.Sessions = NewSessionStore(DefaultSessionTTL)
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.ThemeProvider == nil {
		opts.ThemeProvider = StaticThemeProvider{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{
		opts:     opts,
		activity: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
	}
}

// Sessions exposes the session store, e.g. for a sweeper goroutine.
func (s *Service) Sessions() *SessionStore {
	return s.opts.Sessions
}

// Mount builds a fresh page from the source and stores it.
func (s *Service) Mount(ctx context.Context, req MountRequest) (*Page, error) {
	page, err := s.newPage(ctx, req)
	if err != nil {
		return nil, err
	}
	s.restoreSelections(ctx, page)
	s.opts.Sessions.Create(page)
	s.recordTelemetry(ctx, EventPageMount, map[string]any{
		"page_id": page.ID,
		"path":    page.Shell.ActivePath,
		"locale":  page.Locale,
		"viewer":  req.Viewer.UserID,
	})
	return page, nil
}

// Preview renders a page with default selections without storing it.
// Rendering goes through the chart renderer, so it also warms the chart cache.
func (s *Service) Preview(ctx context.Context, req MountRequest) (PageView, error) {
	page, err := s.newPage(ctx, req)
	if err != nil {
		return PageView{}, err
	}
	return page.View(ctx, s.theme(ctx), s.opts.Charts)
}

func (s *Service) newPage(ctx context.Context, req MountRequest) (*Page, error) {
	locale := req.Locale
	if locale == "" {
		locale = req.Viewer.Locale
	}
	page, err := NewPage(ctx, PageOptions{
		Source:     s.opts.Source,
		Sampler:    s.sampler(),
		Path:       req.Path,
		Locale:     locale,
		Viewer:     req.Viewer,
		Translator: s.opts.Translator,
		Now:        s.opts.Now,
	})
	if err != nil {
		s.recordTelemetry(ctx, EventInteractionError, map[string]any{"op": "mount", "error": err.Error()})
		return nil, err
	}
	return page, nil
}

// Page looks up a mounted page.
func (s *Service) Page(_ context.Context, id string) (*Page, error) {
	return s.opts.Sessions.Get(id)
}

// Close unmounts a page.
func (s *Service) Close(ctx context.Context, id string) error {
	if _, err := s.opts.Sessions.Get(id); err != nil {
		return err
	}
	s.opts.Sessions.Delete(id)
	s.recordTelemetry(ctx, EventPageClose, map[string]any{"page_id": id})
	return nil
}

// Sweep drops idle pages.
func (s *Service) Sweep(ctx context.Context) int {
	removed := s.opts.Sessions.Sweep()
	if removed > 0 {
		s.recordTelemetry(ctx, EventSessionSweep, map[string]any{"removed": removed})
	}
	return removed
}

// View renders the whole page.
func (s *Service) View(ctx context.Context, id string) (PageView, error) {
	page, err := s.Page(ctx, id)
	if err != nil {
		return PageView{}, err
	}
	return page.View(ctx, s.theme(ctx), s.opts.Charts)
}

// SectionView renders one section of the page.
func (s *Service) SectionView(ctx context.Context, id string, section Section) (any, error) {
	page, err := s.Page(ctx, id)
	if err != nil {
		return nil, err
	}
	return page.SectionView(ctx, section, s.theme(ctx), s.opts.Charts)
}

// ToggleDrawer flips the mobile drawer and returns the new state.
func (s *Service) ToggleDrawer(ctx context.Context, id string) (bool, error) {
	page, err := s.Page(ctx, id)
	if err != nil {
		return false, err
	}
	open := page.Shell.ToggleDrawer()
	err = s.publish(ctx, page, SectionShell, EventDrawerToggle, map[string]any{"drawer_open": open})
	return open, err
}

// CloseDrawer closes the mobile drawer. Closing a closed drawer publishes nothing.
func (s *Service) CloseDrawer(ctx context.Context, id string) error {
	page, err := s.Page(ctx, id)
	if err != nil {
		return err
	}
	if !page.Shell.DrawerOpen() {
		s.recordTelemetry(ctx, EventDrawerClose, map[string]any{"page_id": id, "changed": false})
		return nil
	}
	page.Shell.CloseDrawer()
	return s.publish(ctx, page, SectionShell, EventDrawerClose, map[string]any{"drawer_open": false})
}

// Navigate selects a navigation entry. When the drawer is open the mobile
// panel handles it and the drawer closes.
func (s *Service) Navigate(ctx context.Context, id, path string) (NavigationEntry, error) {
	page, err := s.Page(ctx, id)
	if err != nil {
		return NavigationEntry{}, err
	}
	entry, err := page.Shell.Navigate(path)
	if err != nil {
		s.recordError(ctx, page, "navigate", err)
		return NavigationEntry{}, err
	}
	err = s.publish(ctx, page, SectionShell, EventNavigate, map[string]any{
		"path":        entry.Path,
		"label":       entry.Label,
		"drawer_open": page.Shell.DrawerOpen(),
	})
	return entry, err
}

// SelectTab switches the header tab.
func (s *Service) SelectTab(ctx context.Context, id, token string) (bool, error) {
	return s.selectOn(ctx, id, "select_tab", SectionHeader, EventTabSelect, "tab", token,
		func(ctx context.Context, page *Page) (bool, error) { return page.Header.SelectTab(token) })
}

// SelectHeaderRange switches the header date range.
func (s *Service) SelectHeaderRange(ctx context.Context, id, token string) (bool, error) {
	return s.selectOn(ctx, id, "select_header_range", SectionHeader, EventHeaderRangeSelect, "range", token,
		func(ctx context.Context, page *Page) (bool, error) { return page.Header.SelectRange(token) })
}

// SelectChartMetric switches the trend metric and re-samples the series.
func (s *Service) SelectChartMetric(ctx context.Context, id, raw string) (bool, error) {
	metric, err := ParseTrendMetric(raw)
	if err != nil {
		return false, err
	}
	return s.selectOn(ctx, id, "select_chart_metric", SectionTrend, EventChartMetricSelect, "metric", string(metric),
		func(ctx context.Context, page *Page) (bool, error) { return page.Trend.SelectMetric(ctx, metric) })
}

// SelectChartRange switches the trend range and re-samples the series.
func (s *Service) SelectChartRange(ctx context.Context, id, token string) (bool, error) {
	return s.selectOn(ctx, id, "select_chart_range", SectionTrend, EventChartRangeSelect, "range", token,
		func(ctx context.Context, page *Page) (bool, error) { return page.Trend.SelectRange(ctx, token) })
}

func (s *Service) selectOn(ctx context.Context, id, op string, section Section, event, field, value string, apply func(context.Context, *Page) (bool, error)) (bool, error) {
	page, err := s.Page(ctx, id)
	if err != nil {
		return false, err
	}
	changed, err := apply(ctx, page)
	if err != nil {
		s.recordError(ctx, page, op, err)
		return false, err
	}
	if !changed {
		s.recordTelemetry(ctx, event, map[string]any{"page_id": page.ID, field: value, "changed": false})
		return false, nil
	}
	s.saveSelections(ctx, page)
	return true, s.publish(ctx, page, section, event, map[string]any{field: value})
}

func (s *Service) restoreSelections(ctx context.Context, page *Page) {
	if s.opts.Preferences == nil || page.Viewer.UserID == "" {
		return
	}
	selections, err := s.opts.Preferences.Selections(ctx, page.Viewer)
	if err == nil {
		err = page.applySelections(ctx, selections)
	}
	if err != nil {
		s.recordError(ctx, page, "restore_selections", err)
	}
}

func (s *Service) saveSelections(ctx context.Context, page *Page) {
	if s.opts.Preferences == nil || page.Viewer.UserID == "" {
		return
	}
	if err := s.opts.Preferences.SaveSelections(ctx, page.Viewer, page.Selections()); err != nil {
		s.recordError(ctx, page, "save_selections", err)
	}
}

// publish records telemetry, emits the audit event and notifies the refresh hook.
func (s *Service) publish(ctx context.Context, page *Page, section Section, event string, payload map[string]any) error {
	telemetry := map[string]any{"page_id": page.ID, "section": string(section), "changed": true}
	for k, v := range payload {
		telemetry[k] = v
	}
	s.recordTelemetry(ctx, event, telemetry)
	if err := s.activity.Emit(ctx, pageActivity(ctx, page, event, payload)); err != nil {
		s.recordTelemetry(ctx, EventInteractionError, map[string]any{"page_id": page.ID, "op": "activity", "error": err.Error()})
	}
	return s.opts.RefreshHook.PageUpdated(ctx, PageEvent{
		PageID:     page.ID,
		Section:    section,
		Reason:     event,
		Payload:    payload,
		OccurredAt: s.opts.Now(),
	})
}

func (s *Service) recordError(ctx context.Context, page *Page, op string, err error) {
	s.recordTelemetry(ctx, EventInteractionError, map[string]any{
		"page_id": page.ID,
		"op":      op,
		"status":  HTTPStatus(err),
		"error":   err.Error(),
	})
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) sampler() Sampler {
	if s.opts.SamplerFactory != nil {
		return s.opts.SamplerFactory(s.opts.Source)
	}
	return s.opts.Sampler
}

func (s *Service) theme(ctx context.Context) *ThemeSelection {
	selection, err := s.opts.ThemeProvider.SelectTheme(ctx, s.opts.ThemeSelector)
	if err != nil || selection == nil {
		if err != nil {
			s.recordTelemetry(ctx, EventInteractionError, map[string]any{"op": "theme", "error": err.Error()})
		}
		return DefaultTheme()
	}
	return selection
}
