package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-leads-dashboard/components/dashboard"
	"github.com/goliatone/go-leads-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-leads-dashboard/components/dashboard/queries"
)

// Executor is the transport-neutral surface shared by the chi handlers and
// the go-router adapter.
type Executor interface {
	Mount(ctx context.Context, input commands.MountPageInput) error
	Close(ctx context.Context, input commands.ClosePageInput) error
	ToggleDrawer(ctx context.Context, input commands.DrawerInput) error
	CloseDrawer(ctx context.Context, input commands.DrawerInput) error
	Navigate(ctx context.Context, input commands.NavigateInput) error
	SelectTab(ctx context.Context, input commands.SelectOptionInput) error
	SelectRange(ctx context.Context, input commands.SelectOptionInput) error
	SelectChartMetric(ctx context.Context, input commands.SelectMetricInput) error
	SelectChartRange(ctx context.Context, input commands.SelectOptionInput) error
	Page(ctx context.Context, input queries.PageInput) (dashboard.PageView, error)
	Section(ctx context.Context, input queries.SectionInput) (any, error)
}

// CommandExecutor routes Executor calls to go-command handlers.
type CommandExecutor struct {
	MountCmd        gocommand.Commander[commands.MountPageInput]
	CloseCmd        gocommand.Commander[commands.ClosePageInput]
	ToggleDrawerCmd gocommand.Commander[commands.DrawerInput]
	CloseDrawerCmd  gocommand.Commander[commands.DrawerInput]
	NavigateCmd     gocommand.Commander[commands.NavigateInput]
	TabCmd          gocommand.Commander[commands.SelectOptionInput]
	RangeCmd        gocommand.Commander[commands.SelectOptionInput]
	ChartMetricCmd  gocommand.Commander[commands.SelectMetricInput]
	ChartRangeCmd   gocommand.Commander[commands.SelectOptionInput]
	PageQuery       gocommand.Querier[queries.PageInput, dashboard.PageView]
	SectionQuery    gocommand.Querier[queries.SectionInput, any]
}

// NewCommandExecutor wires every command and query against one service.
func NewCommandExecutor(service *dashboard.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		MountCmd:        commands.NewMountPageCommand(service, telemetry),
		CloseCmd:        commands.NewClosePageCommand(service, telemetry),
		ToggleDrawerCmd: commands.NewToggleDrawerCommand(service, telemetry),
		CloseDrawerCmd:  commands.NewCloseDrawerCommand(service, telemetry),
		NavigateCmd:     commands.NewNavigateCommand(service, telemetry),
		TabCmd:          commands.NewSelectTabCommand(service, telemetry),
		RangeCmd:        commands.NewSelectHeaderRangeCommand(service, telemetry),
		ChartMetricCmd:  commands.NewSelectChartMetricCommand(service, telemetry),
		ChartRangeCmd:   commands.NewSelectChartRangeCommand(service, telemetry),
		PageQuery:       queries.NewPageQuery(service),
		SectionQuery:    queries.NewSectionQuery(service),
	}
}

var _ Executor = (*CommandExecutor)(nil)

var errNotConfigured = errors.New("httpapi: handler not configured")

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], input T) error {
	if cmd == nil {
		return errNotConfigured
	}
	return cmd.Execute(ctx, input)
}

func (e *CommandExecutor) Mount(ctx context.Context, input commands.MountPageInput) error {
	return execute(ctx, e.MountCmd, input)
}

func (e *CommandExecutor) Close(ctx context.Context, input commands.ClosePageInput) error {
	return execute(ctx, e.CloseCmd, input)
}

func (e *CommandExecutor) ToggleDrawer(ctx context.Context, input commands.DrawerInput) error {
	return execute(ctx, e.ToggleDrawerCmd, input)
}

func (e *CommandExecutor) CloseDrawer(ctx context.Context, input commands.DrawerInput) error {
	return execute(ctx, e.CloseDrawerCmd, input)
}

func (e *CommandExecutor) Navigate(ctx context.Context, input commands.NavigateInput) error {
	return execute(ctx, e.NavigateCmd, input)
}

func (e *CommandExecutor) SelectTab(ctx context.Context, input commands.SelectOptionInput) error {
	return execute(ctx, e.TabCmd, input)
}

func (e *CommandExecutor) SelectRange(ctx context.Context, input commands.SelectOptionInput) error {
	return execute(ctx, e.RangeCmd, input)
}

func (e *CommandExecutor) SelectChartMetric(ctx context.Context, input commands.SelectMetricInput) error {
	return execute(ctx, e.ChartMetricCmd, input)
}

func (e *CommandExecutor) SelectChartRange(ctx context.Context, input commands.SelectOptionInput) error {
	return execute(ctx, e.ChartRangeCmd, input)
}

func (e *CommandExecutor) Page(ctx context.Context, input queries.PageInput) (dashboard.PageView, error) {
	if e.PageQuery == nil {
		return dashboard.PageView{}, errNotConfigured
	}
	return e.PageQuery.Query(ctx, input)
}

func (e *CommandExecutor) Section(ctx context.Context, input queries.SectionInput) (any, error) {
	if e.SectionQuery == nil {
		return nil, errNotConfigured
	}
	return e.SectionQuery.Query(ctx, input)
}
