package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-leads-dashboard/components/leads"
)

// DefaultKeep is the number of snapshots retained by stores.
const DefaultKeep = 10

// ErrNoSnapshot is returned when nothing has been saved yet.
var ErrNoSnapshot = errors.New("snapshot: no snapshot stored")

// Snapshot is a durable copy of the last payload fetched from the webhook.
type Snapshot struct {
	ID         uint         `json:"id"`
	Leads      []leads.Lead `json:"leads"`
	CapturedAt time.Time    `json:"captured_at"`
}

// Store persists last-known-good lead payloads.
type Store interface {
	Save(ctx context.Context, items []leads.Lead) error
	Latest(ctx context.Context) (Snapshot, error)
}

func encodeLeads(items []leads.Lead) ([]byte, error) {
	if items == nil {
		items = []leads.Lead{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode leads: %w", err)
	}
	return payload, nil
}

func decodeLeads(payload []byte) ([]leads.Lead, error) {
	var items []leads.Lead
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("snapshot: decode leads: %w", err)
	}
	if items == nil {
		items = []leads.Lead{}
	}
	return items, nil
}
