package dashboard

import "context"

// Fact is a read-only value/label pair with an optional hover explanation.
type Fact struct {
	Value       string `json:"value" yaml:"value"`
	Label       string `json:"label" yaml:"label"`
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// FactCard is a titled list of facts.
type FactCard struct {
	Code  string `json:"code" yaml:"code"`
	Title string `json:"title" yaml:"title"`
	Facts []Fact `json:"facts" yaml:"facts"`
}

// LostReasonsSummary holds the static summary cards.
type LostReasonsSummary struct {
	Cards []FactCard
}

// FactView is a rendered fact.
type FactView struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Explanation string `json:"explanation,omitempty"`
	HasTooltip  bool   `json:"has_tooltip"`
}

// FactCardView is a rendered fact card.
type FactCardView struct {
	Code  string     `json:"code"`
	Title string     `json:"title"`
	Facts []FactView `json:"facts"`
}

func (s *LostReasonsSummary) view(ctx context.Context, env renderEnv) []FactCardView {
	cards := make([]FactCardView, 0, len(s.Cards))
	for _, card := range s.Cards {
		view := FactCardView{
			Code:  card.Code,
			Title: env.translate(ctx, "dashboard.summary."+card.Code+".title", card.Title),
			Facts: make([]FactView, 0, len(card.Facts)),
		}
		for _, fact := range card.Facts {
			view.Facts = append(view.Facts, FactView{
				Value:       fact.Value,
				Label:       fact.Label,
				Explanation: fact.Explanation,
				HasTooltip:  fact.Explanation != "",
			})
		}
		cards = append(cards, view)
	}
	return cards
}
