package httpapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-leads-dashboard/components/leads"
)

const dateLayout = time.DateOnly

// fiberRequest adds repeated query values to a fiber context.
type fiberRequest struct {
	*fiber.Ctx
}

func (r fiberRequest) QueryValues(key string) []string {
	raw := r.Ctx.Context().QueryArgs().PeekMulti(key)
	out := make([]string, 0, len(raw))
	for _, value := range raw {
		out = append(out, string(value))
	}
	return out
}

func parseRange(req Request) (leads.DateRange, error) {
	var r leads.DateRange
	for _, bound := range []struct {
		key    string
		target *time.Time
	}{
		{"from", &r.From},
		{"to", &r.To},
	} {
		raw := strings.TrimSpace(req.Query(bound.key))
		if raw == "" {
			continue
		}
		parsed, err := time.ParseInLocation(dateLayout, raw, leads.BrazilLocation())
		if err != nil {
			return leads.DateRange{}, fmt.Errorf("invalid '%s' date %q, use YYYY-MM-DD", bound.key, raw)
		}
		*bound.target = parsed
	}
	return r, nil
}

func parseFilters(req Request) leads.Filters {
	status := queryList(req, "status")
	for i, raw := range status {
		if normalized := leads.NormalizeStatus(raw); normalized != "" {
			status[i] = normalized
		}
	}
	return leads.Filters{
		Status: status,
		Closer: queryList(req, "closer"),
		Origem: queryList(req, "origem"),
	}
}

// queryList accepts repeated keys and comma separated values.
func queryList(req Request, key string) []string {
	var out []string
	for _, raw := range req.QueryValues(key) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func queryInt(req Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(req.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid '%s' parameter %q", key, raw)
	}
	return n, nil
}

func parseOrder(req Request) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(req.Query("order", "desc"))) {
	case "desc":
		return true, nil
	case "asc":
		return false, nil
	default:
		return false, fmt.Errorf("invalid 'order' parameter, use asc or desc")
	}
}

func parseConfig[T any](req Request) (T, error) {
	var cfg T
	raw := strings.TrimSpace(req.Query("config"))
	if raw == "" {
		return cfg, nil
	}
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid 'config' parameter: %w", err)
	}
	return cfg, nil
}
