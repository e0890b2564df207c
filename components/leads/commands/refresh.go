package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-leads-dashboard/components/leads"
	"github.com/goliatone/go-leads-dashboard/pkg/webhook"
)

// RefreshLeadsInput forces a webhook fetch. Reason only tags telemetry.
type RefreshLeadsInput struct {
	Reason string
}

type leadLoader interface {
	Load(ctx context.Context, force bool) (webhook.Result, error)
}

// RefreshLeadsCommand bypasses the lead cache and reloads from the webhook.
type RefreshLeadsCommand struct {
	loader    leadLoader
	telemetry leads.Telemetry
}

// NewRefreshLeadsCommand creates the command.
func NewRefreshLeadsCommand(loader leadLoader, telemetry leads.Telemetry) *RefreshLeadsCommand {
	return &RefreshLeadsCommand{loader: loader, telemetry: leads.NormalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshLeadsInput] = (*RefreshLeadsCommand)(nil)

// Execute reloads leads. A degraded reload (served from fallback data) is
// reported through telemetry, not as an error.
func (c *RefreshLeadsCommand) Execute(ctx context.Context, msg RefreshLeadsInput) error {
	if c.loader == nil {
		return errors.New("refresh command requires loader")
	}
	res, err := c.loader.Load(ctx, true)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"origin": string(res.Origin),
		"count":  len(res.Leads),
	}
	if msg.Reason != "" {
		payload["reason"] = msg.Reason
	}
	if res.Degraded() {
		payload["degraded"] = true
	}
	c.telemetry.Record(ctx, "leads.refresh", payload)
	return nil
}
