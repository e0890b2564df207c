package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-leads-dashboard/components/leads"
)

// ErrUnexpectedPayload is returned when the webhook body holds no row list.
var ErrUnexpectedPayload = errors.New("webhook: unexpected payload")

// envelopeKeys are the object keys that may wrap the row list.
var envelopeKeys = []string{"data", "leads", "rows"}

// Client fetches normalized leads.
type Client interface {
	FetchLeads(ctx context.Context) ([]leads.Lead, error)
}

// HTTPConfig configures the HTTP webhook client.
type HTTPConfig struct {
	URL        string
	Token      string
	HTTPClient *http.Client
}

// HTTPClient pulls lead rows from the spreadsheet webhook.
type HTTPClient struct {
	url    string
	token  string
	client *http.Client
}

// NewHTTPClient builds a client for the configured webhook.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("webhook: url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPClient{
		url:    cfg.URL,
		token:  cfg.Token,
		client: httpClient,
	}, nil
}

// FetchLeads downloads and normalizes every row.
func (c *HTTPClient) FetchLeads(ctx context.Context) ([]leads.Lead, error) {
	records, err := c.fetchRecords(ctx)
	if err != nil {
		return nil, err
	}
	return leads.NormalizeRecords(records), nil
}

func (c *HTTPClient) fetchRecords(ctx context.Context) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("webhook: remote error %d: %s", resp.StatusCode, buf.String())
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	var body any
	if err := decoder.Decode(&body); err != nil {
		return nil, fmt.Errorf("webhook: decode response: %w", err)
	}
	return extractRecords(body)
}

func extractRecords(body any) ([]map[string]any, error) {
	switch val := body.(type) {
	case []any:
		return toRecords(val), nil
	case map[string]any:
		for _, key := range envelopeKeys {
			if rows, ok := val[key].([]any); ok {
				return toRecords(rows), nil
			}
		}
		return nil, fmt.Errorf("%w: object without %v array", ErrUnexpectedPayload, envelopeKeys)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedPayload, body)
	}
}

// toRecords keeps object rows and skips anything else.
func toRecords(rows []any) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if record, ok := row.(map[string]any); ok {
			out = append(out, record)
		}
	}
	return out
}
