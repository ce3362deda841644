package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// DrawerInput targets the mobile drawer of a page.
type DrawerInput struct {
	PageID string `json:"page_id"`
}

type drawerService interface {
	ToggleDrawer(ctx context.Context, id string) (bool, error)
	CloseDrawer(ctx context.Context, id string) error
}

// ToggleDrawerCommand flips the drawer open flag.
type ToggleDrawerCommand struct {
	service   drawerService
	telemetry Telemetry
}

// NewToggleDrawerCommand creates the command.
func NewToggleDrawerCommand(service drawerService, telemetry Telemetry) *ToggleDrawerCommand {
	return &ToggleDrawerCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DrawerInput] = (*ToggleDrawerCommand)(nil)

// Execute toggles the drawer.
func (c *ToggleDrawerCommand) Execute(ctx context.Context, msg DrawerInput) error {
	if c.service == nil {
		return errors.New("toggle drawer command requires service")
	}
	open, err := c.service.ToggleDrawer(ctx, msg.PageID)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.drawer_toggle", map[string]any{
		"page_id":     msg.PageID,
		"drawer_open": open,
	})
	return nil
}

// CloseDrawerCommand closes the drawer, e.g. on backdrop click.
type CloseDrawerCommand struct {
	service   drawerService
	telemetry Telemetry
}

// NewCloseDrawerCommand creates the command.
func NewCloseDrawerCommand(service drawerService, telemetry Telemetry) *CloseDrawerCommand {
	return &CloseDrawerCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DrawerInput] = (*CloseDrawerCommand)(nil)

// Execute closes the drawer.
func (c *CloseDrawerCommand) Execute(ctx context.Context, msg DrawerInput) error {
	if c.service == nil {
		return errors.New("close drawer command requires service")
	}
	if err := c.service.CloseDrawer(ctx, msg.PageID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.drawer_close", map[string]any{"page_id": msg.PageID})
	return nil
}
