package queries

import (
	"context"

	"github.com/goliatone/go-leads-dashboard/pkg/webhook"
)

type leadLoader interface {
	Load(ctx context.Context, force bool) (webhook.Result, error)
}

// Source describes where the data behind a response came from.
type Source struct {
	Origin   string `json:"origin"`
	Degraded bool   `json:"degraded"`
	Error    string `json:"error,omitempty"`
	Loaded   int    `json:"loaded"`
}

func sourceOf(res webhook.Result) Source {
	src := Source{
		Origin:   string(res.Origin),
		Degraded: res.Degraded(),
		Loaded:   len(res.Leads),
	}
	if res.FetchErr != nil {
		src.Error = res.FetchErr.Error()
	}
	return src
}
