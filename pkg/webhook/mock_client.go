package webhook

import (
	"context"
	"maps"
	"sync"

	"github.com/goliatone/go-leads-dashboard/components/leads"
)

// MockClient implements Client using in-memory rows.
type MockClient struct {
	mu      sync.RWMutex
	records []map[string]any
	err     error
	calls   int
}

// NewMockClient builds a mock webhook client from raw rows.
func NewMockClient(records []map[string]any) *MockClient {
	return &MockClient{records: cloneRecords(records)}
}

// FetchLeads returns the configured rows normalized, or the configured error.
func (c *MockClient) FetchLeads(context.Context) ([]leads.Lead, error) {
	c.mu.Lock()
	c.calls++
	err := c.err
	records := cloneRecords(c.records)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return leads.NormalizeRecords(records), nil
}

// SetRecords replaces the rows returned by the mock.
func (c *MockClient) SetRecords(records []map[string]any) {
	c.mu.Lock()
	c.records = cloneRecords(records)
	c.mu.Unlock()
}

// SetError makes subsequent fetches fail. Pass nil to recover.
func (c *MockClient) SetError(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

// Calls reports how many fetches were attempted.
func (c *MockClient) Calls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls
}

func cloneRecords(records []map[string]any) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, record := range records {
		out[i] = maps.Clone(record)
	}
	return out
}
