package gorouter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-leads-dashboard/components/charts"
	"github.com/goliatone/go-leads-dashboard/components/leads"
	"github.com/goliatone/go-leads-dashboard/components/leads/httpapi"
	"github.com/goliatone/go-leads-dashboard/components/leads/queries"
	"github.com/goliatone/go-leads-dashboard/pkg/webhook"
)

func newTestServer(t *testing.T) (*fiber.App, *webhook.MockClient) {
	t.Helper()
	client := webhook.NewMockClient([]map[string]any{
		{"id": "1", "data": "01/03/2024", "nome": "Alice", "status": "Fechou", "closer": "Ana", "origem": "Instagram", "venda_completa": 3000},
		{"id": "2", "data": "02/03/2024", "nome": "Beto", "status": "Não Fechou", "closer": "Ana", "origem": "YouTube"},
		{"id": "3", "data": "05/03/2024", "nome": "Carla", "status": "Fechou", "closer": "Bruno", "origem": "Instagram", "venda_completa": 5000},
	})
	source, err := webhook.NewSource(client, leads.NewLeadCache())
	require.NoError(t, err)

	adapter := router.NewFiberAdapter(func(app *fiber.App) *fiber.App { return app })
	require.NoError(t, Register(Config[*fiber.App]{
		Router:   adapter.Router(),
		Handlers: httpapi.NewHandlers(source, charts.NewService(), nil),
	}))
	return adapter.WrappedRouter(), client
}

func do(t *testing.T, app *fiber.App, method, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func TestRegisterValidatesConfig(t *testing.T) {
	assert.Error(t, Register(Config[struct{}]{}))

	adapter := router.NewFiberAdapter(func(app *fiber.App) *fiber.App { return app })
	assert.Error(t, Register(Config[*fiber.App]{Router: adapter.Router()}))
}

func TestRegisterServesLeads(t *testing.T) {
	app, _ := newTestServer(t)

	resp, body := do(t, app, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, body = do(t, app, http.MethodGet, "/api/leads?closer=Ana&closer=Bruno&origem=Instagram&order=asc&sort=name")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var page queries.LeadsPage
	require.NoError(t, json.Unmarshal(body, &page))
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alice", page.Items[0].Name)
	assert.Equal(t, "Carla", page.Items[1].Name)

	resp, _ = do(t, app, http.MethodGet, "/api/leads?order=sideways")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterServesCharts(t *testing.T) {
	app, _ := newTestServer(t)

	resp, body := do(t, app, http.MethodGet, "/api/charts")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "echarts")

	resp, body = do(t, app, http.MethodGet, "/api/charts/"+charts.CodeStatus+"?format=json")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var rendered charts.Rendered
	require.NoError(t, json.Unmarshal(body, &rendered))
	assert.Equal(t, charts.CodeStatus, rendered.Code)

	resp, _ = do(t, app, http.MethodGet, "/api/charts/unknown.chart")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRegisterServesCacheRoutes(t *testing.T) {
	app, client := newTestServer(t)

	resp, body := do(t, app, http.MethodPost, "/api/cache/refresh")
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	var status leads.CacheStatus
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, 3, status.Count)

	resp, _ = do(t, app, http.MethodDelete, "/api/cache")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	client.SetError(errors.New("offline"))
	resp, _ = do(t, app, http.MethodGet, "/api/leads/metrics")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
