package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	defaultChartHeight     = "300px"
	defaultBreakdownHeight = "220px"

	labelLeads         = "Leads"
	labelTotalDealSize = "Total Deal Size"
)

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer turns section data into embeddable chart markup.
type ChartRenderer interface {
	RenderTrend(ctx context.Context, series TrendSeries, legend []TrendLegend) (string, error)
	RenderBreakdown(ctx context.Context, title string, points []PiePoint) (string, error)
}

// PiePoint is one resolved slice of the breakdown chart.
type PiePoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// EChartsRenderer renders charts server-side with go-echarts.
type EChartsRenderer struct {
	cache      RenderCache
	theme      string
	palette    *ThemeSelection
	assetsHost string
	height     string
}

// EChartsOption customizes renderer behavior.
type EChartsOption func(*EChartsRenderer)

// WithChartCache injects a render cache. A nil cache disables caching.
func WithChartCache(cache RenderCache) EChartsOption {
	return func(r *EChartsRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the ECharts theme (defaults to Westeros).
func WithChartTheme(theme string) EChartsOption {
	return func(r *EChartsRenderer) {
		r.theme = theme
	}
}

// WithChartPalette resolves series color tokens through the given theme and
// adopts its ChartTheme when one is set.
func WithChartPalette(palette *ThemeSelection) EChartsOption {
	return func(r *EChartsRenderer) {
		if palette == nil {
			return
		}
		r.palette = palette
		if palette.ChartTheme != "" {
			r.theme = palette.ChartTheme
		}
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsOption {
	return func(r *EChartsRenderer) {
		r.assetsHost = host
	}
}

// WithChartHeight overrides the trend chart height.
func WithChartHeight(height string) EChartsOption {
	return func(r *EChartsRenderer) {
		if height != "" {
			r.height = height
		}
	}
}

// NewEChartsRenderer builds a renderer with the shared cache and default palette.
func NewEChartsRenderer(options ...EChartsOption) *EChartsRenderer {
	palette := DefaultTheme()
	r := &EChartsRenderer{
		cache:   sharedChartCache,
		theme:   palette.ChartTheme,
		palette: palette,
		height:  defaultChartHeight,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderTrend draws the series for its metric: won/lost areas for
// conversion, a count line for lead volume and a currency line for deal size.
func (r *EChartsRenderer) RenderTrend(_ context.Context, series TrendSeries, legend []TrendLegend) (string, error) {
	key := "trend:" + string(series.Metric) + ":" + r.theme + ":" + configHash(series)
	return r.cached(key, func() (string, error) {
		switch series.Metric {
		case MetricConversion:
			return r.renderConversion(series, legend)
		case MetricLeadVolume:
			return r.renderLeadVolume(series)
		case MetricDealSize:
			return r.renderDealSize(series)
		default:
			return "", fmt.Errorf("dashboard: unsupported trend metric %q", series.Metric)
		}
	})
}

// RenderBreakdown draws a donut with one arc per point.
func (r *EChartsRenderer) RenderBreakdown(_ context.Context, title string, points []PiePoint) (string, error) {
	key := "breakdown:" + r.theme + ":" + configHash(map[string]any{"title": title, "points": points})
	return r.cached(key, func() (string, error) {
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalOptions(defaultBreakdownHeight, false)...)
		data := make([]opts.PieData, len(points))
		for i, point := range points {
			data[i] = opts.PieData{
				Name:      point.Name,
				Value:     point.Value,
				ItemStyle: &opts.ItemStyle{Color: point.Color},
			}
		}
		pie.AddSeries(title, data,
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{"55%", "80%"}}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)
		return renderChart(pie)
	})
}

func (r *EChartsRenderer) renderConversion(series TrendSeries, legend []TrendLegend) (string, error) {
	wonColor, lostColor := r.palette.Color(ColorClosedWon), r.palette.Color(ColorClosedLost)
	wonLabel, lostLabel := LabelClosedWon, LabelClosedLost
	if len(legend) == 2 {
		wonLabel, wonColor = legend[0].Label, legend[0].Color
		lostLabel, lostColor = legend[1].Label, legend[1].Color
	}
	won := make([]opts.LineData, len(series.Conversion))
	lost := make([]opts.LineData, len(series.Conversion))
	for i, sample := range series.Conversion {
		won[i] = opts.LineData{Name: sample.Period, Value: sample.ClosedWon}
		lost[i] = opts.LineData{Name: sample.Period, Value: sample.ClosedLost}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(append(r.globalOptions(r.height, true),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)...)
	line.SetXAxis(series.Periods())
	line.AddSeries(wonLabel, won, areaSeries(wonColor)...)
	line.AddSeries(lostLabel, lost, areaSeries(lostColor)...)
	return renderChart(line)
}

func (r *EChartsRenderer) renderLeadVolume(series TrendSeries) (string, error) {
	data := make([]opts.LineData, len(series.LeadVolume))
	for i, sample := range series.LeadVolume {
		data[i] = opts.LineData{Name: sample.Period, Value: sample.LeadCount}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(append(r.globalOptions(r.height, true),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: labelLeads, MinInterval: 1}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "axis",
			Formatter: opts.FuncOpts(tooltipFormatter(labelLeads, "Number(p.value)")),
		}),
	)...)
	line.SetXAxis(series.Periods())
	line.AddSeries(labelLeads, data, lineSeries(r.palette.Color(ColorTrendLine))...)
	return renderChart(line)
}

func (r *EChartsRenderer) renderDealSize(series TrendSeries) (string, error) {
	data := make([]opts.LineData, len(series.DealSize))
	for i, sample := range series.DealSize {
		data[i] = opts.LineData{Name: sample.Period, Value: sample.TotalDealSize}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(append(r.globalOptions(r.height, true),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "value",
			AxisLabel: &opts.AxisLabel{Formatter: opts.FuncOpts(thousandsAxisFormatter)},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "axis",
			Formatter: opts.FuncOpts(tooltipFormatter(labelTotalDealSize, "'$' + Number(p.value).toLocaleString('en-US')")),
		}),
	)...)
	line.SetXAxis(series.Periods())
	line.AddSeries(labelTotalDealSize, data, lineSeries(r.palette.Color(ColorTrendLine))...)
	return renderChart(line)
}

// thousandsAxisFormatter mirrors FormatThousands in the browser.
const thousandsAxisFormatter = `function (value) { return '$' + (value / 1000).toFixed(0) + 'k'; }`

func tooltipFormatter(label, valueExpr string) string {
	return fmt.Sprintf(`function (params) { var p = params[0]; return p.name + '<br/>%s: ' + %s; }`, label, valueExpr)
}

func areaSeries(color string) []charts.SeriesOpts {
	return []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Color: color, Opacity: 0.3}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
	}
}

func lineSeries(color string) []charts.SeriesOpts {
	return []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: color, Width: 2}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
	}
}

func (r *EChartsRenderer) globalOptions(height string, grid bool) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: height,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	}
	if !grid {
		global = append(global, charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}))
	}
	return global
}

func (r *EChartsRenderer) cached(key string, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender(key, render)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
