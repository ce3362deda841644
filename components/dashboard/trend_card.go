package dashboard

import (
	"context"
	"sync"

	"github.com/ettle/strcase"
)

// TrendSummary is a fixed headline number shown above the chart. It is not
// derived from the displayed series.
type TrendSummary struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// TrendChartCard is the metric state machine. Changing the metric or the
// date range replaces the displayed series as a single unit.
type TrendChartCard struct {
	Title   string
	Summary []TrendSummary
	Metrics []MetricButton

	sampler Sampler
	ranges  *Selector

	mu     sync.RWMutex
	metric TrendMetric
	series TrendSeries
}

// MetricButton labels a selectable metric.
type MetricButton struct {
	Metric TrendMetric `json:"metric" yaml:"metric"`
	Label  string      `json:"label" yaml:"label"`
}

// NewTrendChartCard mounts the card and samples its initial series.
func NewTrendChartCard(ctx context.Context, cfg TrendConfig, sampler Sampler) (*TrendChartCard, error) {
	metric := cfg.DefaultMetric
	if metric == "" {
		metric = MetricConversion
	}
	if _, err := ParseTrendMetric(string(metric)); err != nil {
		return nil, err
	}
	card := &TrendChartCard{
		Title:   cfg.Title,
		Summary: append([]TrendSummary(nil), cfg.Summary...),
		Metrics: append([]MetricButton(nil), cfg.Metrics...),
		sampler: sampler,
		ranges:  NewSelector(cfg.Ranges, cfg.DefaultRange),
		metric:  metric,
	}
	series, err := card.sample(ctx, metric, card.ranges.Selected().Token)
	if err != nil {
		return nil, err
	}
	card.series = series
	return card, nil
}

// Metric returns the active metric.
func (c *TrendChartCard) Metric() TrendMetric {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metric
}

// Series returns the displayed series.
func (c *TrendChartCard) Series() TrendSeries {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.series
}

// Range returns the selected chart date range.
func (c *TrendChartCard) Range() Option {
	return c.ranges.Selected()
}

// SelectMetric switches metric and re-samples. Selecting the active metric is
// a no-op. On sampler failure the previous metric and series stay in place.
func (c *TrendChartCard) SelectMetric(ctx context.Context, metric TrendMetric) (bool, error) {
	metric, err := ParseTrendMetric(string(metric))
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if metric == c.metric {
		return false, nil
	}
	series, err := c.sample(ctx, metric, c.ranges.Selected().Token)
	if err != nil {
		return false, err
	}
	c.metric = metric
	c.series = series
	return true, nil
}

// SelectRange switches the date range and re-samples the active metric.
func (c *TrendChartCard) SelectRange(ctx context.Context, token string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	previous := c.ranges.Selected().Token
	changed, err := c.ranges.Select(token)
	if err != nil || !changed {
		return false, err
	}
	series, err := c.sample(ctx, c.metric, token)
	if err != nil {
		_, _ = c.ranges.Select(previous)
		return false, err
	}
	c.series = series
	return true, nil
}

func (c *TrendChartCard) sample(ctx context.Context, metric TrendMetric, rangeToken string) (TrendSeries, error) {
	series, err := c.sampler.Sample(ctx, TrendQuery{Metric: metric, Range: rangeToken})
	if err != nil {
		return TrendSeries{}, wrapSamplerError(err, metric, rangeToken)
	}
	series.Metric = metric
	return series, nil
}

// TrendChartView is the render-ready trend card.
type TrendChartView struct {
	Title     string         `json:"title"`
	Summary   []TrendSummary `json:"summary"`
	Metric    TrendMetric    `json:"metric"`
	Metrics   []MetricOption `json:"metrics"`
	Range     SelectorView   `json:"range"`
	Legend    []TrendLegend  `json:"legend,omitempty"`
	Series    TrendSeries    `json:"series"`
	ChartHTML string         `json:"chart_html,omitempty"`
}

// MetricOption is a metric button with its active flag.
type MetricOption struct {
	Metric TrendMetric `json:"metric"`
	Label  string      `json:"label"`
	Active bool        `json:"active"`
}

// TrendLegend is a fixed legend entry, independent of the series count.
type TrendLegend struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

func (c *TrendChartCard) view(ctx context.Context, env renderEnv) (TrendChartView, error) {
	c.mu.RLock()
	metric := c.metric
	series := c.series
	c.mu.RUnlock()

	view := TrendChartView{
		Title:   env.translate(ctx, "dashboard.trend.title", c.Title),
		Metric:  metric,
		Range:   c.ranges.View(),
		Series:  series,
		Summary: make([]TrendSummary, 0, len(c.Summary)),
		Metrics: make([]MetricOption, 0, len(c.Metrics)),
	}
	for _, summary := range c.Summary {
		view.Summary = append(view.Summary, TrendSummary{
			Value: summary.Value,
			Label: env.translate(ctx, "dashboard.trend.summary."+strcase.ToSnake(summary.Label), summary.Label),
		})
	}
	for _, button := range c.Metrics {
		view.Metrics = append(view.Metrics, MetricOption{
			Metric: button.Metric,
			Label:  env.translate(ctx, "dashboard.trend.metric."+string(button.Metric), button.Label),
			Active: button.Metric == metric,
		})
	}
	if metric == MetricConversion {
		view.Legend = []TrendLegend{
			{Label: env.translate(ctx, "dashboard.trend.legend.closed_won", LabelClosedWon), Color: env.color(ColorClosedWon)},
			{Label: env.translate(ctx, "dashboard.trend.legend.closed_lost", LabelClosedLost), Color: env.color(ColorClosedLost)},
		}
	}
	if env.charts != nil {
		html, err := env.charts.RenderTrend(ctx, series, view.Legend)
		if err != nil {
			return TrendChartView{}, err
		}
		view.ChartHTML = html
	}
	return view, nil
}
