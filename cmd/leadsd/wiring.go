package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-leads-dashboard/components/dashboard"
	"github.com/goliatone/go-leads-dashboard/pkg/activity"
	"github.com/goliatone/go-leads-dashboard/pkg/analytics"
	"github.com/goliatone/go-leads-dashboard/pkg/logging"
)

// SourceFlags selects where page fixtures come from.
type SourceFlags struct {
	Fixtures     string `name:"fixtures" env:"LEADS_FIXTURES" type:"path" help:"YAML fixture manifest. Built-in defaults when empty."`
	AnalyticsURL string `name:"analytics-url" env:"LEADS_ANALYTICS_URL" help:"Remote reporting service. Fixtures fall back to the manifest when it fails."`
	AnalyticsKey string `name:"analytics-key" env:"LEADS_ANALYTICS_KEY" help:"Bearer token for the reporting service."`
}

// ChartFlags configures ECharts output.
type ChartFlags struct {
	EChartsCDN string        `name:"echarts-cdn" env:"LEADS_ECHARTS_CDN" help:"ECharts assets host."`
	ChartTTL   time.Duration `name:"chart-cache-ttl" default:"5m" help:"Rendered chart cache TTL (0 disables)."`
}

func (f SourceFlags) load(validator dashboard.ManifestValidator) (dashboard.Source, error) {
	static, err := dashboard.LoadSource(f.Fixtures, validator)
	if err != nil {
		return nil, err
	}
	if f.AnalyticsURL == "" {
		return static, nil
	}
	client, err := analytics.NewHTTPClient(analytics.HTTPConfig{BaseURL: f.AnalyticsURL, APIKey: f.AnalyticsKey})
	if err != nil {
		return nil, err
	}
	return analytics.NewSource(client, static, analytics.WithValidator(validator)), nil
}

func (f ChartFlags) build() (*dashboard.EChartsRenderer, *dashboard.ChartCache) {
	cache := dashboard.NewChartCache(f.ChartTTL)
	opts := []dashboard.EChartsOption{dashboard.WithChartCache(cache)}
	if f.EChartsCDN != "" {
		opts = append(opts, dashboard.WithChartAssetsHost(f.EChartsCDN))
	}
	return dashboard.NewEChartsRenderer(opts...), cache
}

func newLogger(app *cli) (*zap.Logger, error) {
	return logging.New(logging.Config{Level: app.LogLevel, Development: app.Dev, Service: "leadsd"})
}

func serviceOptions(logger *zap.Logger, source dashboard.Source, charts dashboard.ChartRenderer) dashboard.Options {
	return dashboard.Options{
		Source:         source,
		Telemetry:      logging.NewTelemetry(logger),
		ActivityHooks:  activity.Hooks{logging.ActivityHook(logger)},
		ActivityConfig: activity.Config{Enabled: true},
		Charts:         charts,
		Preferences:    dashboard.NewInMemoryPreferenceStore(),
	}
}
