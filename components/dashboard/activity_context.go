package dashboard

import (
	"context"

	"github.com/goliatone/go-leads-dashboard/pkg/activity"
)

const activityObjectType = "page_session"

// ActivityContext captures actor/user/tenant identifiers for activity events.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

type activityContextKey struct{}

// ContextWithActivity stores activity context on the provided context.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, activityContextKey{}, meta)
}

func activityContextFrom(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	if meta, ok := ctx.Value(activityContextKey{}).(ActivityContext); ok {
		return meta
	}
	return ActivityContext{}
}

// pageActivity builds the audit event for an interaction on page. Identifiers
// on the context win over the viewer the page was mounted for.
func pageActivity(ctx context.Context, page *Page, verb string, metadata map[string]any) activity.Event {
	meta := activityContextFrom(ctx)
	if meta.UserID == "" {
		meta.UserID = page.Viewer.UserID
	}
	if meta.TenantID == "" {
		meta.TenantID = page.Viewer.TenantID
	}
	if meta.ActorID == "" {
		meta.ActorID = meta.UserID
	}
	data := map[string]any{"locale": page.Locale}
	for k, v := range metadata {
		data[k] = v
	}
	return activity.Event{
		Verb:           verb,
		ActorID:        meta.ActorID,
		UserID:         meta.UserID,
		TenantID:       meta.TenantID,
		ObjectType:     activityObjectType,
		ObjectID:       page.ID,
		DefinitionCode: verb,
		Metadata:       data,
	}
}
