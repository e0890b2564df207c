package charts

import (
	"context"
	"fmt"

	"github.com/goliatone/go-leads-dashboard/components/leads"
)

var defaultProviders = map[string]Provider{
	CodeRevenue: ProviderFunc(revenueChart),
	CodeStatus:  ProviderFunc(statusChart),
	CodeClosers: ProviderFunc(closersChart),
	CodeOrigins: ProviderFunc(originsChart),
}

func newSpec(meta Context) Spec {
	cfg := meta.Configuration
	return Spec{
		Type:     meta.Definition.Type,
		Title:    stringValue(cfg["title"], meta.Definition.Name),
		Subtitle: stringValue(cfg["subtitle"], ""),
		Theme:    stringValue(cfg["theme"], ""),
	}
}

func revenueChart(_ context.Context, meta Context) (Spec, error) {
	spec := newSpec(meta)
	series := leads.RevenueSeries(meta.Leads)
	metric := stringValue(meta.Configuration["metric"], "both")

	completed := Series{Name: "Venda completa", Points: make([]Point, 0, len(series))}
	recurring := Series{Name: "Recorrente", Points: make([]Point, 0, len(series))}
	spec.XAxis = make([]string, 0, len(series))
	for _, point := range series {
		label := point.Day.Format("02/01")
		spec.XAxis = append(spec.XAxis, label)
		completed.Points = append(completed.Points, Point{Label: label, Value: point.CompletedSale})
		recurring.Points = append(recurring.Points, Point{Label: label, Value: point.Recurring})
	}

	switch metric {
	case "completed":
		spec.Series = []Series{completed}
	case "recurring":
		spec.Series = []Series{recurring}
	case "both":
		spec.Series = []Series{completed, recurring}
	default:
		return Spec{}, fmt.Errorf("charts: unknown revenue metric %q", metric)
	}
	return spec, nil
}

func statusChart(_ context.Context, meta Context) (Spec, error) {
	spec := newSpec(meta)
	slices := leads.StatusDistribution(meta.Leads)
	points := make([]Point, 0, len(slices))
	for _, slice := range slices {
		points = append(points, Point{
			Label: slice.Label,
			Value: float64(slice.Count),
			Color: slice.Color,
		})
	}
	spec.Series = []Series{{Name: "Status", Points: points}}
	return spec, nil
}

func closersChart(_ context.Context, meta Context) (Spec, error) {
	spec := newSpec(meta)
	cfg := meta.Configuration
	stats := leads.CloserPerformance(meta.Leads)
	if boolValue(cfg["significant_only"], true) {
		stats = leads.FilterSignificantData(stats, len(meta.Leads))
	}
	stats = limit(stats, intValue(cfg["limit"], 10))

	metric := stringValue(cfg["metric"], "revenue")
	name, value, err := closerMetric(metric)
	if err != nil {
		return Spec{}, err
	}
	points := make([]Point, 0, len(stats))
	spec.XAxis = make([]string, 0, len(stats))
	for _, s := range stats {
		spec.XAxis = append(spec.XAxis, s.Closer)
		points = append(points, Point{Label: s.Closer, Value: value(s)})
	}
	spec.Series = []Series{{Name: name, Points: points}}
	return spec, nil
}

func closerMetric(metric string) (string, func(leads.CloserStats) float64, error) {
	switch metric {
	case "revenue":
		return "Receita", func(s leads.CloserStats) float64 { return s.Revenue }, nil
	case "sales":
		return "Vendas", func(s leads.CloserStats) float64 { return float64(s.Sales) }, nil
	case "conversion":
		return "Conversão (%)", func(s leads.CloserStats) float64 { return s.ConversionRate }, nil
	case "leads":
		return "Leads", func(s leads.CloserStats) float64 { return float64(s.Leads) }, nil
	default:
		return "", nil, fmt.Errorf("charts: unknown closer metric %q", metric)
	}
}

func originsChart(_ context.Context, meta Context) (Spec, error) {
	spec := newSpec(meta)
	cfg := meta.Configuration
	stats := limit(leads.OriginBreakdown(meta.Leads), intValue(cfg["limit"], 10))

	var (
		name  string
		value func(leads.OriginStats) float64
	)
	switch metric := stringValue(cfg["metric"], "leads"); metric {
	case "leads":
		name, value = "Leads", func(s leads.OriginStats) float64 { return float64(s.Leads) }
	case "sales":
		name, value = "Vendas", func(s leads.OriginStats) float64 { return float64(s.Sales) }
	case "revenue":
		name, value = "Receita", func(s leads.OriginStats) float64 { return s.Revenue }
	default:
		return Spec{}, fmt.Errorf("charts: unknown origin metric %q", metric)
	}

	points := make([]Point, 0, len(stats))
	spec.XAxis = make([]string, 0, len(stats))
	for _, s := range stats {
		spec.XAxis = append(spec.XAxis, s.Origin)
		points = append(points, Point{Label: s.Origin, Value: value(s)})
	}
	spec.Series = []Series{{Name: name, Points: points}}
	return spec, nil
}

func limit[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}
