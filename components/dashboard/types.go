package dashboard

import (
	"context"
	"time"
)

// Section names a re-renderable part of the page.
type Section string

const (
	SectionShell     Section = "shell"
	SectionHeader    Section = "header"
	SectionStatCards Section = "stat_cards"
	SectionTrend     Section = "trend"
	SectionSummary   Section = "summary"
)

// Sections lists every section in page order.
var Sections = []Section{SectionShell, SectionHeader, SectionStatCards, SectionTrend, SectionSummary}

// ParseSection accepts any of the Sections.
func ParseSection(raw string) (Section, error) {
	for _, section := range Sections {
		if string(section) == raw {
			return section, nil
		}
	}
	return "", notFoundError(TextCodeUnknownSection, "dashboard: unknown section %q", raw)
}

// ViewerContext captures who is looking at a page and in which locale.
type ViewerContext struct {
	UserID   string
	TenantID string
	Locale   string
}

// RefreshHook notifies transports (websocket, SSE) about page changes.
type RefreshHook interface {
	PageUpdated(ctx context.Context, event PageEvent) error
}

// PageEvent describes one state change of a page session. Clients re-fetch
// Section when it arrives.
type PageEvent struct {
	PageID     string         `json:"page_id"`
	Section    Section        `json:"section"`
	Reason     string         `json:"reason"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type noopRefreshHook struct{}

func (noopRefreshHook) PageUpdated(context.Context, PageEvent) error {
	return nil
}

// RefreshHooks fans a page event out to several hooks.
type RefreshHooks []RefreshHook

// PageUpdated implements RefreshHook. Every hook is called; the first error wins.
func (h RefreshHooks) PageUpdated(ctx context.Context, event PageEvent) error {
	var first error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.PageUpdated(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}
