package dashboard

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// TrendQuery identifies the series a Sampler must produce.
type TrendQuery struct {
	Metric TrendMetric
	Range  string
}

// Sampler produces the displayed trend series. The jitter sampler stands in
// for a real data refresh; a backend-backed sampler can replace it without
// touching rendering.
type Sampler interface {
	Sample(ctx context.Context, query TrendQuery) (TrendSeries, error)
}

// SamplerFunc adapts a function into a Sampler.
type SamplerFunc func(ctx context.Context, query TrendQuery) (TrendSeries, error)

// Sample implements Sampler.
func (fn SamplerFunc) Sample(ctx context.Context, query TrendQuery) (TrendSeries, error) {
	return fn(ctx, query)
}

// JitterMagnitudes bounds the additive noise per metric.
type JitterMagnitudes struct {
	Conversion int
	LeadVolume int
	DealSize   int
}

// DefaultJitterMagnitudes are ±10 won/lost, ±15 leads and ±5000 deal size.
var DefaultJitterMagnitudes = JitterMagnitudes{Conversion: 10, LeadVolume: 15, DealSize: 5000}

// JitterSampler perturbs a baseline with bounded integer noise in [-m, m) and
// clamps every result at zero. The range token is accepted but does not
// change the baseline.
type JitterSampler struct {
	baseline   BaselineSource
	magnitudes JitterMagnitudes

	mu  sync.Mutex
	rng *rand.Rand
}

// BaselineSource supplies the unperturbed fixture series.
type BaselineSource interface {
	TrendBaseline(ctx context.Context) (TrendBaseline, error)
}

// JitterOption customizes a JitterSampler.
type JitterOption func(*JitterSampler)

// WithRandSource injects the random source, mostly for deterministic tests.
func WithRandSource(src rand.Source) JitterOption {
	return func(s *JitterSampler) {
		if src != nil {
			s.rng = rand.New(src)
		}
	}
}

// WithJitterMagnitudes overrides the per-metric noise bounds.
func WithJitterMagnitudes(m JitterMagnitudes) JitterOption {
	return func(s *JitterSampler) {
		s.magnitudes = m
	}
}

// NewJitterSampler builds a sampler over the given baseline source.
func NewJitterSampler(baseline BaselineSource, opts ...JitterOption) *JitterSampler {
	s := &JitterSampler{
		baseline:   baseline,
		magnitudes: DefaultJitterMagnitudes,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample returns a freshly jittered copy of the metric's baseline.
func (s *JitterSampler) Sample(ctx context.Context, query TrendQuery) (TrendSeries, error) {
	if _, err := ParseTrendMetric(string(query.Metric)); err != nil {
		return TrendSeries{}, err
	}
	baseline, err := s.baseline.TrendBaseline(ctx)
	if err != nil {
		return TrendSeries{}, err
	}
	series := baseline.Series(query.Metric)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range series.Conversion {
		series.Conversion[i].ClosedWon = s.jitter(series.Conversion[i].ClosedWon, s.magnitudes.Conversion)
		series.Conversion[i].ClosedLost = s.jitter(series.Conversion[i].ClosedLost, s.magnitudes.Conversion)
	}
	for i := range series.LeadVolume {
		series.LeadVolume[i].LeadCount = s.jitter(series.LeadVolume[i].LeadCount, s.magnitudes.LeadVolume)
	}
	for i := range series.DealSize {
		series.DealSize[i].TotalDealSize = s.jitter(series.DealSize[i].TotalDealSize, s.magnitudes.DealSize)
	}
	return series, nil
}

func (s *JitterSampler) jitter(value float64, magnitude int) float64 {
	if magnitude > 0 {
		value += float64(s.rng.Intn(2*magnitude) - magnitude)
	}
	return nonNegative(value)
}
