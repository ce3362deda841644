package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// SelectOptionInput picks an option token (tab or date range).
type SelectOptionInput struct {
	PageID string `json:"page_id"`
	Token  string `json:"token"`
}

// SelectMetricInput picks a trend metric.
type SelectMetricInput struct {
	PageID string `json:"page_id"`
	Metric string `json:"metric"`
}

type selectFunc func(ctx context.Context, id, value string) (bool, error)

// SelectCommand applies one selection interaction. The constructors below
// bind it to a specific control.
type SelectCommand struct {
	name      string
	apply     selectFunc
	telemetry Telemetry
}

func newSelectCommand(name string, apply selectFunc, telemetry Telemetry) *SelectCommand {
	return &SelectCommand{name: name, apply: apply, telemetry: normalizeTelemetry(telemetry)}
}

type headerService interface {
	SelectTab(ctx context.Context, id, token string) (bool, error)
	SelectHeaderRange(ctx context.Context, id, token string) (bool, error)
}

type chartService interface {
	SelectChartMetric(ctx context.Context, id, metric string) (bool, error)
	SelectChartRange(ctx context.Context, id, token string) (bool, error)
}

// NewSelectTabCommand switches the header tab.
func NewSelectTabCommand(service headerService, telemetry Telemetry) *SelectCommand {
	if service == nil {
		return newSelectCommand("select_tab", nil, telemetry)
	}
	return newSelectCommand("select_tab", service.SelectTab, telemetry)
}

// NewSelectHeaderRangeCommand switches the header date range.
func NewSelectHeaderRangeCommand(service headerService, telemetry Telemetry) *SelectCommand {
	if service == nil {
		return newSelectCommand("select_header_range", nil, telemetry)
	}
	return newSelectCommand("select_header_range", service.SelectHeaderRange, telemetry)
}

// NewSelectChartRangeCommand switches the trend chart date range.
func NewSelectChartRangeCommand(service chartService, telemetry Telemetry) *SelectCommand {
	if service == nil {
		return newSelectCommand("select_chart_range", nil, telemetry)
	}
	return newSelectCommand("select_chart_range", service.SelectChartRange, telemetry)
}

var _ gocommand.Commander[SelectOptionInput] = (*SelectCommand)(nil)

// Execute applies the selection.
func (c *SelectCommand) Execute(ctx context.Context, msg SelectOptionInput) error {
	return c.run(ctx, msg.PageID, msg.Token)
}

func (c *SelectCommand) run(ctx context.Context, pageID, value string) error {
	if c.apply == nil {
		return errors.New(c.name + " command requires service")
	}
	changed, err := c.apply(ctx, pageID, value)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command."+c.name, map[string]any{
		"page_id": pageID,
		"value":   value,
		"changed": changed,
	})
	return nil
}

// SelectChartMetricCommand switches the trend metric.
type SelectChartMetricCommand struct {
	inner *SelectCommand
}

// NewSelectChartMetricCommand creates the command.
func NewSelectChartMetricCommand(service chartService, telemetry Telemetry) *SelectChartMetricCommand {
	var apply selectFunc
	if service != nil {
		apply = service.SelectChartMetric
	}
	return &SelectChartMetricCommand{inner: newSelectCommand("select_chart_metric", apply, telemetry)}
}

var _ gocommand.Commander[SelectMetricInput] = (*SelectChartMetricCommand)(nil)

// Execute applies the metric selection.
func (c *SelectChartMetricCommand) Execute(ctx context.Context, msg SelectMetricInput) error {
	return c.inner.run(ctx, msg.PageID, msg.Metric)
}
