package dashboard

import "context"

// NotificationsClient defines the minimal interface needed from go-notifications (or similar).
type NotificationsClient interface {
	PublishPageEvent(ctx context.Context, channel string, event PageEvent) error
}

// NotificationsHook forwards page events to an external notifications client.
// Sections lists the sections worth notifying about; empty means all.
type NotificationsHook struct {
	Client   NotificationsClient
	Channel  string
	Sections []Section
}

// PageUpdated publishes events to the configured notifications client.
func (h *NotificationsHook) PageUpdated(ctx context.Context, event PageEvent) error {
	if h == nil || h.Client == nil || !h.wants(event.Section) {
		return nil
	}
	channel := h.Channel
	if channel == "" {
		channel = "dashboard"
	}
	return h.Client.PublishPageEvent(ctx, channel, event)
}

func (h *NotificationsHook) wants(section Section) bool {
	if len(h.Sections) == 0 {
		return true
	}
	for _, s := range h.Sections {
		if s == section {
			return true
		}
	}
	return false
}
