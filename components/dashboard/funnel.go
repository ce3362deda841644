package dashboard

import "context"

// FunnelStage is one ordered step of the lead funnel. Explanation is an
// optional hover text; an empty value renders no tooltip.
type FunnelStage struct {
	Name          string  `json:"name" yaml:"name"`
	Count         float64 `json:"count" yaml:"count"`
	Budget        float64 `json:"budget" yaml:"budget"`
	DurationLabel string  `json:"duration_label" yaml:"duration_label"`
	ColorToken    string  `json:"color" yaml:"color"`
	Explanation   string  `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// FunnelSegment is a stage's slice of the stacked bar, in percent of the bar.
type FunnelSegment struct {
	Stage  FunnelStage
	Width  float64
	Offset float64
}

// ComputeSegments partitions the bar in stage order. Widths sum to 100 when
// the total count is positive; with a zero total every width and offset is 0.
// Negative counts are treated as 0.
func ComputeSegments(stages []FunnelStage) []FunnelSegment {
	total := 0.0
	for _, stage := range stages {
		total += nonNegative(stage.Count)
	}
	segments := make([]FunnelSegment, len(stages))
	offset := 0.0
	for i, stage := range stages {
		width := share(nonNegative(stage.Count), total)
		segments[i] = FunnelSegment{Stage: stage, Width: width, Offset: offset}
		offset += width
	}
	return segments
}

// FunnelCard is the payload of a funnel stat card.
type FunnelCard struct {
	MainStat      string        `json:"main_stat" yaml:"main_stat"`
	MainStatLabel string        `json:"main_stat_label" yaml:"main_stat_label"`
	Stages        []FunnelStage `json:"stages" yaml:"stages"`
}

// FunnelStageView is a rendered stage row plus its bar segment.
type FunnelStageView struct {
	Name          string  `json:"name"`
	Count         float64 `json:"count"`
	Budget        string  `json:"budget"`
	DurationLabel string  `json:"duration_label"`
	Color         string  `json:"color"`
	Explanation   string  `json:"explanation,omitempty"`
	HasTooltip    bool    `json:"has_tooltip"`
	Width         float64 `json:"width"`
	Offset        float64 `json:"offset"`
}

// FunnelView is the render-ready funnel card body.
type FunnelView struct {
	MainStat      string            `json:"main_stat"`
	MainStatLabel string            `json:"main_stat_label"`
	Stages        []FunnelStageView `json:"stages"`
}

func (c *FunnelCard) view(ctx context.Context, env renderEnv) FunnelView {
	segments := ComputeSegments(c.Stages)
	view := FunnelView{
		MainStat:      c.MainStat,
		MainStatLabel: env.translate(ctx, "dashboard.funnel.main_stat_label", c.MainStatLabel),
		Stages:        make([]FunnelStageView, 0, len(segments)),
	}
	for _, segment := range segments {
		stage := segment.Stage
		view.Stages = append(view.Stages, FunnelStageView{
			Name:          stage.Name,
			Count:         stage.Count,
			Budget:        FormatCurrencyIn(env.locale, stage.Budget),
			DurationLabel: stage.DurationLabel,
			Color:         env.color(stage.ColorToken),
			Explanation:   stage.Explanation,
			HasTooltip:    stage.Explanation != "",
			Width:         segment.Width,
			Offset:        segment.Offset,
		})
	}
	return view
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
