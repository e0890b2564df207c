package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-leads-dashboard/components/leads"
)

// ClearCacheInput drops the cached webhook payload.
type ClearCacheInput struct{}

type cacheClearer interface {
	Clear()
}

// ClearCacheCommand empties the lead cache so the next read hits the webhook.
type ClearCacheCommand struct {
	cache     cacheClearer
	telemetry leads.Telemetry
}

// NewClearCacheCommand creates the command.
func NewClearCacheCommand(cache cacheClearer, telemetry leads.Telemetry) *ClearCacheCommand {
	return &ClearCacheCommand{cache: cache, telemetry: leads.NormalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ClearCacheInput] = (*ClearCacheCommand)(nil)

// Execute clears the cache.
func (c *ClearCacheCommand) Execute(ctx context.Context, _ ClearCacheInput) error {
	if c.cache == nil {
		return errors.New("clear cache command requires cache")
	}
	c.cache.Clear()
	c.telemetry.Record(ctx, "leads.cache.clear", nil)
	return nil
}
