package httpapi

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/goliatone/go-leads-dashboard/components/dashboard"
	"github.com/goliatone/go-leads-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-leads-dashboard/components/dashboard/queries"
)

// Action is one page interaction exposed over HTTP. Path is relative to the
// page resource, e.g. "drawer/toggle".
type Action struct {
	Name    string
	Path    string
	Section dashboard.Section
	Schema  map[string]any
	run     func(ctx context.Context, exec Executor, pageID string, payload map[string]any) error
}

// ActionResult is the body returned after an interaction: the refreshed section.
type ActionResult struct {
	PageID  string            `json:"page_id"`
	Section dashboard.Section `json:"section"`
	View    any               `json:"view"`
}

func stringSchema(field string) map[string]any {
	prop := map[string]any{"type": "string", "minLength": 1}
	return map[string]any{
		"type":       "object",
		"required":   []string{field},
		"properties": map[string]any{field: prop},
	}
}

// Actions lists every interaction in registration order.
func Actions() []Action {
	return []Action{
		{
			Name:    "drawer_toggle",
			Path:    "drawer/toggle",
			Section: dashboard.SectionShell,
			run: func(ctx context.Context, exec Executor, pageID string, _ map[string]any) error {
				return exec.ToggleDrawer(ctx, commands.DrawerInput{PageID: pageID})
			},
		},
		{
			Name:    "drawer_close",
			Path:    "drawer/close",
			Section: dashboard.SectionShell,
			run: func(ctx context.Context, exec Executor, pageID string, _ map[string]any) error {
				return exec.CloseDrawer(ctx, commands.DrawerInput{PageID: pageID})
			},
		},
		{
			Name:    "navigate",
			Path:    "navigate",
			Section: dashboard.SectionShell,
			Schema:  stringSchema("path"),
			run: func(ctx context.Context, exec Executor, pageID string, payload map[string]any) error {
				return exec.Navigate(ctx, commands.NavigateInput{PageID: pageID, Path: field(payload, "path")})
			},
		},
		{
			Name:    "tab",
			Path:    "tab",
			Section: dashboard.SectionHeader,
			Schema:  stringSchema("token"),
			run: func(ctx context.Context, exec Executor, pageID string, payload map[string]any) error {
				return exec.SelectTab(ctx, commands.SelectOptionInput{PageID: pageID, Token: field(payload, "token")})
			},
		},
		{
			Name:    "range",
			Path:    "range",
			Section: dashboard.SectionHeader,
			Schema:  stringSchema("token"),
			run: func(ctx context.Context, exec Executor, pageID string, payload map[string]any) error {
				return exec.SelectRange(ctx, commands.SelectOptionInput{PageID: pageID, Token: field(payload, "token")})
			},
		},
		{
			Name:    "chart_metric",
			Path:    "chart/metric",
			Section: dashboard.SectionTrend,
			Schema:  stringSchema("metric"),
			run: func(ctx context.Context, exec Executor, pageID string, payload map[string]any) error {
				return exec.SelectChartMetric(ctx, commands.SelectMetricInput{PageID: pageID, Metric: field(payload, "metric")})
			},
		},
		{
			Name:    "chart_range",
			Path:    "chart/range",
			Section: dashboard.SectionTrend,
			Schema:  stringSchema("token"),
			run: func(ctx context.Context, exec Executor, pageID string, payload map[string]any) error {
				return exec.SelectChartRange(ctx, commands.SelectOptionInput{PageID: pageID, Token: field(payload, "token")})
			},
		},
	}
}

// Perform decodes body, validates it, runs the interaction and returns the
// refreshed section view.
func (a Action) Perform(ctx context.Context, exec Executor, validator dashboard.PayloadValidator, pageID string, body []byte) (ActionResult, error) {
	payload := map[string]any{}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return ActionResult{}, dashboard.ErrInvalidPayload("httpapi: decode %s payload: %v", a.Name, err)
		}
	}
	if validator != nil && len(a.Schema) > 0 {
		if err := validator.ValidatePayload("dashboard.action."+a.Name, a.Schema, payload); err != nil {
			return ActionResult{}, err
		}
	}
	if err := a.run(ctx, exec, pageID, payload); err != nil {
		return ActionResult{}, err
	}
	view, err := exec.Section(ctx, queries.SectionInput{PageID: pageID, Section: a.Section})
	if err != nil {
		return ActionResult{}, err
	}
	return ActionResult{PageID: pageID, Section: a.Section, View: view}, nil
}

func field(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return value
}
