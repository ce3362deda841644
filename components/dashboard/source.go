package dashboard

import (
	"context"
	"sync"
)

// Source supplies the fixtures a page is mounted from. The static source
// serves compiled-in or file-loaded values; pkg/analytics adapts a remote
// fetch layer to the same contract.
type Source interface {
	Fixtures(ctx context.Context) (Fixtures, error)
	BaselineSource
}

// StaticSource serves a fixed fixture set. Every call returns a deep copy.
type StaticSource struct {
	mu       sync.RWMutex
	fixtures Fixtures
}

// NewStaticSource wraps the given fixtures.
func NewStaticSource(fixtures Fixtures) *StaticSource {
	return &StaticSource{fixtures: cloneFixtures(fixtures)}
}

// Fixtures implements Source.
func (s *StaticSource) Fixtures(context.Context) (Fixtures, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneFixtures(s.fixtures), nil
}

// TrendBaseline implements BaselineSource.
func (s *StaticSource) TrendBaseline(context.Context) (TrendBaseline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBaseline(s.fixtures.Trend.Baseline), nil
}

// Replace swaps the served fixtures, e.g. after a file reload. Mounted pages
// keep what they were built from.
func (s *StaticSource) Replace(fixtures Fixtures) {
	s.mu.Lock()
	s.fixtures = cloneFixtures(fixtures)
	s.mu.Unlock()
}

func cloneFixtures(in Fixtures) Fixtures {
	out := in
	out.Navigation = NavigationConfig{
		Primary:   cloneEntries(in.Navigation.Primary),
		Secondary: cloneEntries(in.Navigation.Secondary),
		Create:    cloneEntries(in.Navigation.Create),
	}
	out.Header.Tabs = append([]Option(nil), in.Header.Tabs...)
	out.Header.Ranges = append([]Option(nil), in.Header.Ranges...)
	out.StatCards = cloneStatCards(in.StatCards)
	out.Trend.Summary = append([]TrendSummary(nil), in.Trend.Summary...)
	out.Trend.Metrics = append([]MetricButton(nil), in.Trend.Metrics...)
	out.Trend.Ranges = append([]Option(nil), in.Trend.Ranges...)
	out.Trend.Baseline = cloneBaseline(in.Trend.Baseline)
	out.Summary = cloneFactCards(in.Summary)
	if in.Translations != nil {
		out.Translations = make(map[string]map[string]string, len(in.Translations))
		for key, locales := range in.Translations {
			copied := make(map[string]string, len(locales))
			for locale, value := range locales {
				copied[locale] = value
			}
			out.Translations[key] = copied
		}
	}
	return out
}

func cloneBaseline(in TrendBaseline) TrendBaseline {
	return TrendBaseline{
		Conversion: append([]ConversionSample(nil), in.Conversion...),
		LeadVolume: append([]LeadVolumeSample(nil), in.LeadVolume...),
		DealSize:   append([]DealSizeSample(nil), in.DealSize...),
	}
}

func cloneStatCards(in []StatCard) []StatCard {
	if in == nil {
		return nil
	}
	out := make([]StatCard, len(in))
	for i, card := range in {
		out[i] = card
		if card.Funnel != nil {
			funnel := *card.Funnel
			funnel.Stages = append([]FunnelStage(nil), card.Funnel.Stages...)
			out[i].Funnel = &funnel
		}
		if card.Breakdown != nil {
			slices := make([]PieSlice, len(card.Breakdown.Slices))
			for j, slice := range card.Breakdown.Slices {
				slices[j] = slice
				if slice.Amount != nil {
					slices[j].Amount = Float(*slice.Amount)
				}
				if slice.Percentage != nil {
					slices[j].Percentage = Float(*slice.Percentage)
				}
			}
			out[i].Breakdown = &BreakdownCard{Slices: slices}
		}
	}
	return out
}

func cloneFactCards(in []FactCard) []FactCard {
	if in == nil {
		return nil
	}
	out := make([]FactCard, len(in))
	for i, card := range in {
		out[i] = card
		out[i].Facts = append([]Fact(nil), card.Facts...)
	}
	return out
}
