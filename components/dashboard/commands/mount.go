package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-leads-dashboard/components/dashboard"
)

// MountPageInput opens a page session. Result, when set, receives the new page id.
type MountPageInput struct {
	Path   string                  `json:"path,omitempty"`
	Locale string                  `json:"locale,omitempty"`
	Viewer dashboard.ViewerContext `json:"-"`
	Result *MountResult            `json:"-"`
}

// MountResult carries what a mount produced.
type MountResult struct {
	PageID string `json:"page_id"`
}

type mountService interface {
	Mount(ctx context.Context, req dashboard.MountRequest) (*dashboard.Page, error)
}

// MountPageCommand mounts a page session.
type MountPageCommand struct {
	service   mountService
	telemetry Telemetry
}

// NewMountPageCommand creates the command.
func NewMountPageCommand(service mountService, telemetry Telemetry) *MountPageCommand {
	return &MountPageCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[MountPageInput] = (*MountPageCommand)(nil)

// Execute mounts the page and fills msg.Result.
func (c *MountPageCommand) Execute(ctx context.Context, msg MountPageInput) error {
	if c.service == nil {
		return errors.New("mount command requires service")
	}
	page, err := c.service.Mount(ctx, dashboard.MountRequest{Path: msg.Path, Locale: msg.Locale, Viewer: msg.Viewer})
	if err != nil {
		return err
	}
	if msg.Result != nil {
		msg.Result.PageID = page.ID
	}
	c.telemetry.Record(ctx, "dashboard.command.mount", map[string]any{"page_id": page.ID})
	return nil
}

// ClosePageInput unmounts a page session.
type ClosePageInput struct {
	PageID string `json:"page_id"`
}

type closeService interface {
	Close(ctx context.Context, id string) error
}

// ClosePageCommand unmounts a page session.
type ClosePageCommand struct {
	service   closeService
	telemetry Telemetry
}

// NewClosePageCommand creates the command.
func NewClosePageCommand(service closeService, telemetry Telemetry) *ClosePageCommand {
	return &ClosePageCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ClosePageInput] = (*ClosePageCommand)(nil)

// Execute closes the page.
func (c *ClosePageCommand) Execute(ctx context.Context, msg ClosePageInput) error {
	if c.service == nil {
		return errors.New("close command requires service")
	}
	if err := c.service.Close(ctx, msg.PageID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.close", map[string]any{"page_id": msg.PageID})
	return nil
}
