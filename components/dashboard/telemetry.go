package dashboard

import "context"

// Telemetry event names.
const (
	EventPageMount         = "dashboard.page.mount"
	EventPageClose         = "dashboard.page.close"
	EventDrawerToggle      = "dashboard.drawer.toggle"
	EventDrawerClose       = "dashboard.drawer.close"
	EventNavigate          = "dashboard.nav.select"
	EventTabSelect         = "dashboard.header.tab"
	EventHeaderRangeSelect = "dashboard.header.range"
	EventChartMetricSelect = "dashboard.chart.metric"
	EventChartRangeSelect  = "dashboard.chart.range"
	EventInteractionError  = "dashboard.interaction.error"
	EventSessionSweep      = "dashboard.session.sweep"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// TelemetryFunc adapts a function into Telemetry.
type TelemetryFunc func(ctx context.Context, event string, payload map[string]any)

// Record implements Telemetry.
func (fn TelemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	fn(ctx, event, payload)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
