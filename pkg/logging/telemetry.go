package logging

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-leads-dashboard/pkg/activity"
)

// Telemetry writes dashboard telemetry events as structured log lines.
// Error events (suffix ".error") log at warn, everything else at debug.
type Telemetry struct {
	Logger *zap.Logger
}

// NewTelemetry wraps logger; a nil logger discards everything.
func NewTelemetry(logger *zap.Logger) *Telemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Telemetry{Logger: logger.Named("telemetry")}
}

// Record implements the dashboard and command Telemetry interfaces.
func (t *Telemetry) Record(_ context.Context, event string, payload map[string]any) {
	if t == nil || t.Logger == nil {
		return
	}
	level := zapcore.DebugLevel
	if strings.HasSuffix(event, ".error") {
		level = zapcore.WarnLevel
	}
	if ce := t.Logger.Check(level, event); ce != nil {
		ce.Write(payloadFields(payload)...)
	}
}

func payloadFields(payload map[string]any) []zap.Field {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, zap.Any(key, payload[key]))
	}
	return fields
}

// ActivityHook logs audit events at info.
func ActivityHook(logger *zap.Logger) activity.Hook {
	if logger == nil {
		logger = zap.NewNop()
	}
	named := logger.Named("activity")
	return activity.HookFunc(func(_ context.Context, event activity.Event) error {
		named.Info(event.Verb,
			zap.String("actor_id", event.ActorID),
			zap.String("tenant_id", event.TenantID),
			zap.String("object_type", event.ObjectType),
			zap.String("object_id", event.ObjectID),
			zap.String("channel", event.Channel),
			zap.Any("metadata", event.Metadata),
		)
		return nil
	})
}
