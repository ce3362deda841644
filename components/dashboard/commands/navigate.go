package commands

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-leads-dashboard/components/dashboard"
)

// NavigateInput selects a navigation entry by path.
type NavigateInput struct {
	PageID string `json:"page_id"`
	Path   string `json:"path"`
}

type navigateService interface {
	Navigate(ctx context.Context, id, path string) (dashboard.NavigationEntry, error)
}

// NavigateCommand selects a navigation entry.
type NavigateCommand struct {
	service   navigateService
	telemetry Telemetry
}

// NewNavigateCommand creates the command.
func NewNavigateCommand(service navigateService, telemetry Telemetry) *NavigateCommand {
	return &NavigateCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[NavigateInput] = (*NavigateCommand)(nil)

// Execute delegates to the dashboard service.
func (c *NavigateCommand) Execute(ctx context.Context, msg NavigateInput) error {
	if c.service == nil {
		return errors.New("navigate command requires service")
	}
	if strings.TrimSpace(msg.Path) == "" {
		return errors.New("navigate command requires a path")
	}
	entry, err := c.service.Navigate(ctx, msg.PageID, msg.Path)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.navigate", map[string]any{
		"page_id": msg.PageID,
		"path":    entry.Path,
	})
	return nil
}
