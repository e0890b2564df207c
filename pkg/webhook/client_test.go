package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-leads-dashboard/components/leads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("expected auth header, got %q", got)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHTTPClientFetchLeadsArray(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `[
		{"row_number": 2, "Data": "01/03/2024", "Nome": "Alice", "Status": "fechou", "Closer": "Ana", "venda_completa": "R$ 3.000", "recorrente": 197},
		"garbage",
		{"row_number": 3, "data": "02/03/2024", "nome": "Beto", "status": "desconhecido"}
	]`)

	client, err := NewHTTPClient(HTTPConfig{URL: server.URL, Token: "secret"})
	require.NoError(t, err)

	items, err := client.FetchLeads(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "2", items[0].RowID)
	assert.Equal(t, "Alice", items[0].Name)
	assert.Equal(t, leads.StatusClosed, items[0].Status)
	assert.Equal(t, 3.0, items[0].CompletedSale)
	assert.Equal(t, 197.0, items[0].Recurring)
	require.NotNil(t, items[0].ParsedDate)
	assert.Equal(t, "", items[1].Status)
}

func TestHTTPClientFetchLeadsEnvelope(t *testing.T) {
	for _, key := range []string{"data", "leads", "rows"} {
		t.Run(key, func(t *testing.T) {
			server := newTestServer(t, http.StatusOK, `{"`+key+`": [{"id": "a1", "nome": "Carla"}], "total": 1}`)
			client, err := NewHTTPClient(HTTPConfig{URL: server.URL, Token: "secret"})
			require.NoError(t, err)

			items, err := client.FetchLeads(context.Background())
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, "a1", items[0].RowID)
		})
	}
}

func TestHTTPClientFetchLeadsErrors(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
		target error
	}{
		"remote error":   {status: http.StatusBadGateway, body: "upstream down"},
		"bad json":       {status: http.StatusOK, body: "{"},
		"no rows":        {status: http.StatusOK, body: `{"total": 0}`, target: ErrUnexpectedPayload},
		"scalar payload": {status: http.StatusOK, body: `42`, target: ErrUnexpectedPayload},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			server := newTestServer(t, tc.status, tc.body)
			client, err := NewHTTPClient(HTTPConfig{URL: server.URL, Token: "secret"})
			require.NoError(t, err)

			_, err = client.FetchLeads(context.Background())
			require.Error(t, err)
			if tc.target != nil {
				assert.True(t, errors.Is(err, tc.target))
			}
		})
	}
}

func TestNewHTTPClientRequiresURL(t *testing.T) {
	_, err := NewHTTPClient(HTTPConfig{})
	assert.Error(t, err)
}

func TestMockClient(t *testing.T) {
	records := []map[string]any{{"id": "1", "nome": "Alice"}}
	client := NewMockClient(records)
	records[0]["nome"] = "mutated"

	items, err := client.FetchLeads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alice", items[0].Name)

	client.SetError(errors.New("offline"))
	_, err = client.FetchLeads(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, client.Calls())
}

func TestFileClient(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leads.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rows": [{"id": "7", "nome": "Eva", "venda_completa": "1.500,00"}]}`), 0o600))

	items, err := NewFileClient(path).FetchLeads(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Eva", items[0].Name)
	assert.Equal(t, 1.5, items[0].CompletedSale)

	_, err = NewFileClient(filepath.Join(dir, "missing.json")).FetchLeads(context.Background())
	assert.Error(t, err)
}
