package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/goliatone/go-leads-dashboard/components/leads"
)

// FileClient reads a webhook export saved to disk. It accepts the same
// payload shapes as HTTPClient.
type FileClient struct {
	path string
}

// NewFileClient builds a client reading rows from path.
func NewFileClient(path string) *FileClient {
	return &FileClient{path: path}
}

// FetchLeads reads and normalizes the file on every call.
func (c *FileClient) FetchLeads(ctx context.Context) ([]leads.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(c.path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("webhook: open %s: %w", c.path, err)
	}
	defer f.Close()
	decoder := json.NewDecoder(f)
	decoder.UseNumber()
	var body any
	if err := decoder.Decode(&body); err != nil {
		return nil, fmt.Errorf("webhook: decode %s: %w", c.path, err)
	}
	records, err := extractRecords(body)
	if err != nil {
		return nil, err
	}
	return leads.NormalizeRecords(records), nil
}
