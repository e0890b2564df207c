package leads

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Candidate column names per lead field, tried in order.
var (
	RowIDKeys     = []string{"row_number", "id", "row_id", "linha"}
	DateKeys      = []string{"data", "date", "data_agendamento", "Data da Call", "created_at"}
	NameKeys      = []string{"nome", "name", "Nome do Lead", "lead", "cliente"}
	EmailKeys     = []string{"email", "e-mail", "Email do Lead"}
	PhoneKeys     = []string{"telefone", "phone", "whatsapp", "celular"}
	OriginKeys    = []string{"origem", "origin", "source", "fonte", "canal"}
	StatusKeys    = []string{"status", "Status da Call", "situacao", "situação"}
	CloserKeys    = []string{"closer", "Closer Responsável", "vendedor", "responsavel", "responsável"}
	SaleKeys      = []string{"venda_completa", "Venda Completa", "valor", "valor_venda", "sale", "amount"}
	RecurringKeys = []string{"recorrente", "Recorrente", "valor_recorrente", "mrr", "recurring"}
	NotesKeys     = []string{"observacao", "observação", "obs", "notes", "comentario"}
)

var dateLayouts = []string{
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

var rowNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("go-leads-dashboard.lead"))

// FindFieldValue returns the value of the first candidate key present in the
// record with a non-empty value. Each key is tried verbatim first and then
// case-insensitively against the record's own keys.
func FindFieldValue(record map[string]any, keys []string, def any) any {
	if len(record) == 0 {
		return def
	}
	var recordKeys []string
	for _, key := range keys {
		if v, ok := record[key]; ok && !isEmptyValue(v) {
			return v
		}
		if recordKeys == nil {
			recordKeys = sortedKeys(record)
		}
		for _, candidate := range recordKeys {
			if !strings.EqualFold(candidate, key) {
				continue
			}
			if v := record[candidate]; !isEmptyValue(v) {
				return v
			}
		}
	}
	return def
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok && s == "" {
		return true
	}
	return false
}

func sortedKeys(record map[string]any) []string {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ParseNumber coerces a loosely formatted value into a float. Strings keep only
// digits, '.' and ',' and the first ',' becomes the decimal point; the longest
// numeric prefix is then parsed. Anything unparseable yields 0.
func ParseNumber(value any) float64 {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			parsed = parseNumericString(string(v))
		}
		f = parsed
	case string:
		f = parseNumericString(v)
	default:
		return 0
	}
	if math.IsNaN(f) {
		return 0
	}
	return f
}

func parseNumericString(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Replace(b.String(), ",", ".", 1)
	return parseFloatPrefix(cleaned)
}

// parseFloatPrefix parses digits with at most one '.' and stops at the first
// character that cannot extend the number.
func parseFloatPrefix(s string) float64 {
	end := 0
	digits := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			digits++
		} else if c == '.' && !seenDot {
			seenDot = true
		} else {
			break
		}
		end++
	}
	if digits == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return f
}

// NormalizeRecord converts a raw webhook row into a Lead.
func NormalizeRecord(record map[string]any) Lead {
	lead := Lead{
		Date:          stringValue(FindFieldValue(record, DateKeys, "")),
		Name:          stringValue(FindFieldValue(record, NameKeys, "")),
		Email:         stringValue(FindFieldValue(record, EmailKeys, "")),
		Phone:         stringValue(FindFieldValue(record, PhoneKeys, "")),
		Origin:        stringValue(FindFieldValue(record, OriginKeys, "")),
		Status:        NormalizeStatus(stringValue(FindFieldValue(record, StatusKeys, ""))),
		Closer:        stringValue(FindFieldValue(record, CloserKeys, "")),
		CompletedSale: ParseNumber(FindFieldValue(record, SaleKeys, 0)),
		Recurring:     ParseNumber(FindFieldValue(record, RecurringKeys, 0)),
		Notes:         stringValue(FindFieldValue(record, NotesKeys, "")),
	}
	if parsed, ok := ParseLeadDate(lead.Date); ok {
		lead.ParsedDate = &parsed
	}
	lead.RowID = stringValue(FindFieldValue(record, RowIDKeys, ""))
	if lead.RowID == "" {
		lead.RowID = derivedRowID(lead)
	}
	return lead
}

// NormalizeRecords converts every raw row, preserving order.
func NormalizeRecords(records []map[string]any) []Lead {
	out := make([]Lead, 0, len(records))
	for _, record := range records {
		out = append(out, NormalizeRecord(record))
	}
	return out
}

// ParseLeadDate parses the date formats seen in lead exports using the
// São Paulo timezone.
func ParseLeadDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	loc := BrazilLocation()
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BrazilLocation returns America/Sao_Paulo, or a fixed UTC-3 zone when the
// tz database is unavailable.
func BrazilLocation() *time.Location {
	return brazilLocation()
}

var brazilLocation = sync.OnceValue(func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
})

func derivedRowID(lead Lead) string {
	seed := strings.Join([]string{lead.Date, lead.Name, lead.Email, lead.Phone}, "|")
	return uuid.NewSHA1(rowNamespace, []byte(seed)).String()
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}
