package charts

import (
	"context"
	"testing"

	"github.com/goliatone/go-leads-dashboard/components/leads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSpec(t *testing.T, code string, cfg map[string]any, items []leads.Lead) Spec {
	t.Helper()
	def, ok := NewRegistry().Definition(code)
	require.True(t, ok)
	spec, err := defaultProviders[code].Build(context.Background(), Context{
		Definition:    def,
		Configuration: mergeConfig(def.Defaults, cfg),
		Leads:         items,
	})
	require.NoError(t, err)
	return spec
}

func TestRevenueChartSeries(t *testing.T) {
	spec := buildSpec(t, CodeRevenue, nil, sampleLeads())

	assert.Equal(t, TypeLine, spec.Type)
	assert.Equal(t, "Receita por dia", spec.Title)
	assert.Equal(t, []string{"01/03", "02/03", "10/03"}, spec.XAxis)
	require.Len(t, spec.Series, 2)
	assert.Equal(t, 5000.0, spec.Series[0].Points[1].Value)
	assert.Equal(t, 200.0, spec.Series[1].Points[0].Value)

	recurring := buildSpec(t, CodeRevenue, map[string]any{"metric": "recurring"}, sampleLeads())
	require.Len(t, recurring.Series, 1)
	assert.Equal(t, "Recorrente", recurring.Series[0].Name)
}

func TestStatusChartUsesStatusColors(t *testing.T) {
	spec := buildSpec(t, CodeStatus, map[string]any{"title": "Status"}, sampleLeads())

	require.Len(t, spec.Series, 1)
	points := spec.Series[0].Points
	require.NotEmpty(t, points)
	assert.Equal(t, "Status", spec.Title)
	for _, p := range points {
		assert.NotEmpty(t, p.Color)
	}
	assert.Equal(t, leads.StatusColor(leads.StatusClosed), points[0].Color)
	assert.Equal(t, 2.0, points[0].Value)
}

func TestClosersChartMetrics(t *testing.T) {
	spec := buildSpec(t, CodeClosers, nil, sampleLeads())
	assert.Equal(t, []string{"Bruno", "Ana"}, spec.XAxis)
	assert.Equal(t, "Receita", spec.Series[0].Name)
	assert.Equal(t, 5000.0, spec.Series[0].Points[0].Value)

	conv := buildSpec(t, CodeClosers, map[string]any{"metric": "conversion", "limit": 1}, sampleLeads())
	require.Len(t, conv.Series[0].Points, 1)
	assert.Equal(t, 50.0, conv.Series[0].Points[0].Value)
}

func TestOriginsChartDefaultsToLeadCount(t *testing.T) {
	spec := buildSpec(t, CodeOrigins, nil, sampleLeads())
	require.NotEmpty(t, spec.XAxis)
	assert.Equal(t, "Instagram", spec.XAxis[0])
	assert.Equal(t, 2.0, spec.Series[0].Points[0].Value)
}

func TestProvidersRejectUnknownMetric(t *testing.T) {
	def, _ := NewRegistry().Definition(CodeOrigins)
	_, err := originsChart(context.Background(), Context{
		Definition:    def,
		Configuration: map[string]any{"metric": "bogus"},
	})
	assert.Error(t, err)
}

func TestProvidersHandleNoLeads(t *testing.T) {
	for _, code := range []string{CodeRevenue, CodeStatus, CodeClosers, CodeOrigins} {
		spec := buildSpec(t, code, nil, nil)
		assert.NotEmpty(t, spec.Series, code)
	}
}
