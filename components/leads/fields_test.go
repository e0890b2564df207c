package leads

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFieldValuePrefersFirstCandidate(t *testing.T) {
	record := map[string]any{"nome": "Ana", "name": "Ana Paula"}
	assert.Equal(t, "Ana", FindFieldValue(record, []string{"nome", "name"}, "x"))
	assert.Equal(t, "Ana Paula", FindFieldValue(record, []string{"name", "nome"}, "x"))
}

func TestFindFieldValueCaseInsensitive(t *testing.T) {
	record := map[string]any{"STATUS": "Fechou"}
	assert.Equal(t, "Fechou", FindFieldValue(record, []string{"status"}, ""))
}

func TestFindFieldValueSkipsEmptyValues(t *testing.T) {
	record := map[string]any{"closer": "", "Closer": nil, "vendedor": "Bruno"}
	assert.Equal(t, "Bruno", FindFieldValue(record, []string{"closer", "vendedor"}, "none"))
}

func TestFindFieldValueExactBeatsCaseInsensitive(t *testing.T) {
	record := map[string]any{"Origem": "Instagram", "origem": "YouTube"}
	assert.Equal(t, "YouTube", FindFieldValue(record, []string{"origem"}, ""))
}

func TestFindFieldValueDefault(t *testing.T) {
	assert.Equal(t, 7, FindFieldValue(map[string]any{"a": 1}, []string{"b"}, 7))
	assert.Equal(t, "d", FindFieldValue(nil, []string{"b"}, "d"))
}

func TestFindFieldValueKeepsZeroNumbers(t *testing.T) {
	record := map[string]any{"valor": 0}
	assert.Equal(t, 0, FindFieldValue(record, []string{"valor"}, 99))
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  float64
	}{
		{"int", 42, 42},
		{"float", 12.5, 12.5},
		{"nil", nil, 0},
		{"letters", "abc", 0},
		{"empty", "", 0},
		{"currency", "R$ 1500", 1500},
		{"decimal comma", "1500,50", 1500.5},
		{"thousands dot and comma", "1.234,56", 1.234},
		{"two commas", "1,234,56", 1.234},
		{"minus sign dropped", "-30", 30},
		{"trailing dot", "7.", 7},
		{"bool", true, 0},
		{"json number", json.Number("997"), 997},
		{"nan", math.NaN(), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ParseNumber(tc.input), 1e-9)
		})
	}
}

func TestNormalizeRecord(t *testing.T) {
	record := map[string]any{
		"row_number":     json.Number("12"),
		"Data":           "15/03/2024",
		"Nome":           "Carla Souza",
		"E-mail":         "carla@example.com",
		"Telefone":       "11999990000",
		"Origem":         "Instagram",
		"Status":         "fechou",
		"Closer":         "Bruno",
		"Venda Completa": "R$ 2.000",
		"Recorrente":     "197,90",
	}
	lead := NormalizeRecord(record)

	assert.Equal(t, "12", lead.RowID)
	assert.Equal(t, "Carla Souza", lead.Name)
	assert.Equal(t, "carla@example.com", lead.Email)
	assert.Equal(t, "Instagram", lead.Origin)
	assert.Equal(t, StatusClosed, lead.Status)
	assert.Equal(t, "Bruno", lead.Closer)
	assert.InDelta(t, 2.0, lead.CompletedSale, 1e-9)
	assert.InDelta(t, 197.9, lead.Recurring, 1e-9)
	require.NotNil(t, lead.ParsedDate)
	assert.Equal(t, time.March, lead.ParsedDate.Month())
	assert.Equal(t, 15, lead.ParsedDate.Day())
}

func TestNormalizeRecordUnknownStatusAndDefaults(t *testing.T) {
	lead := NormalizeRecord(map[string]any{"nome": "Davi", "status": "talvez"})
	assert.Equal(t, "", lead.Status)
	assert.Zero(t, lead.CompletedSale)
	assert.Zero(t, lead.Recurring)
	assert.Nil(t, lead.ParsedDate)
}

func TestNormalizeRecordDerivesStableRowID(t *testing.T) {
	record := map[string]any{"nome": "Eva", "email": "eva@example.com", "data": "2024-04-01"}
	first := NormalizeRecord(record)
	second := NormalizeRecord(record)
	assert.NotEmpty(t, first.RowID)
	assert.Equal(t, first.RowID, second.RowID)

	other := NormalizeRecord(map[string]any{"nome": "Eva", "email": "other@example.com", "data": "2024-04-01"})
	assert.NotEqual(t, first.RowID, other.RowID)
}

func TestParseLeadDateLayouts(t *testing.T) {
	for _, raw := range []string{"01/02/2024", "2024-02-01", "01/02/2024 10:30:00", "2024-02-01T10:30:00-03:00"} {
		parsed, ok := ParseLeadDate(raw)
		require.True(t, ok, raw)
		assert.Equal(t, time.February, parsed.Month(), raw)
		assert.Equal(t, 1, parsed.Day(), raw)
	}
	_, ok := ParseLeadDate("ontem")
	assert.False(t, ok)
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "#10B981", StatusColor(StatusClosed))
	assert.Equal(t, DefaultStatusColor, StatusColor(""))
	assert.Equal(t, DefaultStatusColor, StatusColor("Inexistente"))
	assert.Equal(t, StatusNotClosed, NormalizeStatus("  não fechou "))
}
