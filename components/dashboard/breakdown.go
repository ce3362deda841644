package dashboard

import "context"

// PieSlice is one named category of the breakdown card. Percentage and Amount
// are optional; nil means the legend omits them.
type PieSlice struct {
	Name       string   `json:"name" yaml:"name"`
	Value      float64  `json:"value" yaml:"value"`
	Percentage *float64 `json:"percentage,omitempty" yaml:"percentage,omitempty"`
	Amount     *float64 `json:"amount,omitempty" yaml:"amount,omitempty"`
	ColorToken string   `json:"color" yaml:"color"`
}

// BreakdownCard is the payload of a categorical breakdown stat card.
type BreakdownCard struct {
	Slices []PieSlice `json:"slices" yaml:"slices"`
}

// LegendRow is a rendered legend entry. Percentage is empty when the slice
// has none.
type LegendRow struct {
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Value      string  `json:"value"`
	Percentage string  `json:"percentage,omitempty"`
	Share      float64 `json:"share"`
}

// LegendRows renders the legend in slice order using US currency formatting.
func (c BreakdownCard) LegendRows() []LegendRow {
	return c.legendRows(renderEnv{})
}

// ArcShares returns each slice's share of the value total in percent, or all
// zeros when the total is zero.
func (c BreakdownCard) ArcShares() []float64 {
	total := 0.0
	for _, slice := range c.Slices {
		total += nonNegative(slice.Value)
	}
	shares := make([]float64, len(c.Slices))
	for i, slice := range c.Slices {
		shares[i] = share(nonNegative(slice.Value), total)
	}
	return shares
}

func (c *BreakdownCard) legendRows(env renderEnv) []LegendRow {
	shares := c.ArcShares()
	rows := make([]LegendRow, 0, len(c.Slices))
	for i, slice := range c.Slices {
		amount := slice.Value
		if slice.Amount != nil {
			amount = *slice.Amount
		}
		row := LegendRow{
			Name:  slice.Name,
			Color: env.color(slice.ColorToken),
			Value: FormatCurrencyIn(env.locale, amount),
			Share: shares[i],
		}
		if slice.Percentage != nil {
			row.Percentage = FormatPercent(*slice.Percentage)
		}
		rows = append(rows, row)
	}
	return rows
}

// BreakdownView is the render-ready breakdown card body.
type BreakdownView struct {
	Legend    []LegendRow `json:"legend"`
	ChartHTML string      `json:"chart_html,omitempty"`
}

func (c *BreakdownCard) view(ctx context.Context, env renderEnv, title string) (BreakdownView, error) {
	view := BreakdownView{Legend: c.legendRows(env)}
	if env.charts == nil {
		return view, nil
	}
	points := make([]PiePoint, 0, len(c.Slices))
	for _, slice := range c.Slices {
		points = append(points, PiePoint{Name: slice.Name, Value: nonNegative(slice.Value), Color: env.color(slice.ColorToken)})
	}
	html, err := env.charts.RenderBreakdown(ctx, title, points)
	if err != nil {
		return BreakdownView{}, err
	}
	view.ChartHTML = html
	return view, nil
}

// Float returns a pointer to v, for optional slice fields.
func Float(v float64) *float64 {
	return &v
}
