package dashboard

import (
	"context"
	"fmt"
)

// StatCardKind discriminates the StatCard payload.
type StatCardKind string

const (
	StatCardFunnel    StatCardKind = "funnel"
	StatCardBreakdown StatCardKind = "breakdown"
)

// StatCard is a tagged union: Kind names which of Funnel or Breakdown is set.
type StatCard struct {
	Kind       StatCardKind   `json:"kind" yaml:"kind"`
	Code       string         `json:"code" yaml:"code"`
	Title      string         `json:"title" yaml:"title"`
	FooterNote string         `json:"footer_note,omitempty" yaml:"footer_note,omitempty"`
	Funnel     *FunnelCard    `json:"funnel,omitempty" yaml:"funnel,omitempty"`
	Breakdown  *BreakdownCard `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
}

// Validate checks that exactly the payload named by Kind is present.
func (c StatCard) Validate() error {
	switch c.Kind {
	case StatCardFunnel:
		if c.Funnel == nil || c.Breakdown != nil {
			return invalidCard(c, "funnel card requires only a funnel payload")
		}
	case StatCardBreakdown:
		if c.Breakdown == nil || c.Funnel != nil {
			return invalidCard(c, "breakdown card requires only a breakdown payload")
		}
	default:
		return invalidCard(c, fmt.Sprintf("unknown kind %q", c.Kind))
	}
	return nil
}

// StatCardView is the rendered card. Only the body matching Kind is set.
type StatCardView struct {
	Kind       StatCardKind   `json:"kind"`
	Code       string         `json:"code"`
	Title      string         `json:"title"`
	FooterNote string         `json:"footer_note,omitempty"`
	Funnel     *FunnelView    `json:"funnel,omitempty"`
	Breakdown  *BreakdownView `json:"breakdown,omitempty"`
}

func (c StatCard) view(ctx context.Context, env renderEnv) (StatCardView, error) {
	if err := c.Validate(); err != nil {
		return StatCardView{}, err
	}
	view := StatCardView{
		Kind:  c.Kind,
		Code:  c.Code,
		Title: env.translate(ctx, "dashboard.card."+c.Code+".title", c.Title),
	}
	if c.FooterNote != "" {
		view.FooterNote = env.translate(ctx, "dashboard.card."+c.Code+".footer_note", c.FooterNote)
	}
	switch c.Kind {
	case StatCardFunnel:
		funnel := c.Funnel.view(ctx, env)
		view.Funnel = &funnel
	case StatCardBreakdown:
		breakdown, err := c.Breakdown.view(ctx, env, view.Title)
		if err != nil {
			return StatCardView{}, err
		}
		view.Breakdown = &breakdown
	}
	return view, nil
}

func invalidCard(c StatCard, reason string) error {
	return validationError(TextCodeInvalidCard, "dashboard: stat card %q: %s", c.Code, reason).
		WithMetadata(map[string]any{"kind": string(c.Kind)})
}
