package dashboard

import (
	"strings"

	"github.com/ettle/strcase"
)

// TrendMetric is the active display mode of the trend chart.
type TrendMetric string

const (
	MetricConversion TrendMetric = "conversion"
	MetricLeadVolume TrendMetric = "leadVolume"
	MetricDealSize   TrendMetric = "dealSize"
)

// TrendMetrics lists the metrics in button order.
var TrendMetrics = []TrendMetric{MetricLeadVolume, MetricConversion, MetricDealSize}

// ParseTrendMetric accepts camel, snake or kebab spellings ("deal_size").
func ParseTrendMetric(value string) (TrendMetric, error) {
	normalized := TrendMetric(strcase.ToCamel(strings.TrimSpace(value)))
	for _, metric := range TrendMetrics {
		if metric == normalized {
			return metric, nil
		}
	}
	return "", validationError(TextCodeUnknownMetric, "dashboard: unknown trend metric %q", value).
		WithMetadata(map[string]any{"metric": value})
}

// ConversionSample is one period of won/lost counts.
type ConversionSample struct {
	Period     string  `json:"period" yaml:"period"`
	ClosedWon  float64 `json:"closed_won" yaml:"closed_won"`
	ClosedLost float64 `json:"closed_lost" yaml:"closed_lost"`
}

// LeadVolumeSample is one period of incoming lead counts.
type LeadVolumeSample struct {
	Period    string  `json:"period" yaml:"period"`
	LeadCount float64 `json:"lead_count" yaml:"lead_count"`
}

// DealSizeSample is one period of total deal size.
type DealSizeSample struct {
	Period        string  `json:"period" yaml:"period"`
	TotalDealSize float64 `json:"total_deal_size" yaml:"total_deal_size"`
}

// TrendSeries holds exactly one populated sample slice, the one named by Metric.
type TrendSeries struct {
	Metric     TrendMetric        `json:"metric"`
	Conversion []ConversionSample `json:"conversion,omitempty"`
	LeadVolume []LeadVolumeSample `json:"lead_volume,omitempty"`
	DealSize   []DealSizeSample   `json:"deal_size,omitempty"`
}

// Len returns the number of samples for the active metric.
func (s TrendSeries) Len() int {
	switch s.Metric {
	case MetricConversion:
		return len(s.Conversion)
	case MetricLeadVolume:
		return len(s.LeadVolume)
	case MetricDealSize:
		return len(s.DealSize)
	}
	return 0
}

// Periods returns the x-axis labels.
func (s TrendSeries) Periods() []string {
	periods := make([]string, 0, s.Len())
	switch s.Metric {
	case MetricConversion:
		for _, sample := range s.Conversion {
			periods = append(periods, sample.Period)
		}
	case MetricLeadVolume:
		for _, sample := range s.LeadVolume {
			periods = append(periods, sample.Period)
		}
	case MetricDealSize:
		for _, sample := range s.DealSize {
			periods = append(periods, sample.Period)
		}
	}
	return periods
}

// TrendBaseline carries the base fixture for every metric.
type TrendBaseline struct {
	Conversion []ConversionSample `json:"conversion" yaml:"conversion"`
	LeadVolume []LeadVolumeSample `json:"lead_volume" yaml:"lead_volume"`
	DealSize   []DealSizeSample   `json:"deal_size" yaml:"deal_size"`
}

// Series returns the unperturbed series for metric.
func (b TrendBaseline) Series(metric TrendMetric) TrendSeries {
	series := TrendSeries{Metric: metric}
	switch metric {
	case MetricConversion:
		series.Conversion = append([]ConversionSample(nil), b.Conversion...)
	case MetricLeadVolume:
		series.LeadVolume = append([]LeadVolumeSample(nil), b.LeadVolume...)
	case MetricDealSize:
		series.DealSize = append([]DealSizeSample(nil), b.DealSize...)
	}
	return series
}
