package leads

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	noLeadsWarning    = "Nenhum lead carregado"
	noLeadsSuggestion = "Verifique a conexão com a fonte de dados (webhook) e tente atualizar"
)

// FilterLeads returns the leads inside the date range that match every
// categorical filter. It never mutates its inputs.
func FilterLeads(all []Lead, dateRange DateRange, filters Filters, opts FilterOptions) []Lead {
	out := make([]Lead, 0, len(all))
	for _, lead := range all {
		if matchesDate(lead, dateRange) && matchesFilters(lead, filters) {
			out = append(out, lead)
		}
	}
	NormalizeTelemetry(opts.Telemetry).Record(context.Background(), "leads.filter", map[string]any{
		"component": componentLabel(opts.Component),
		"input":     len(all),
		"output":    len(out),
	})
	return out
}

// ValidateFilters reports filter combinations likely to produce misleading or
// empty results. The report is advisory.
func ValidateFilters(all []Lead, dateRange DateRange, filters Filters) ValidationResult {
	report := newReport()

	if !dateRange.From.IsZero() && !dateRange.To.IsZero() && dayKey(dateRange.From) > dayKey(dateRange.To) {
		report.add("A data inicial é posterior à data final",
			"Ajuste o período para que a data inicial seja anterior à data final")
	}

	report.missingValues("Status", filters.Status, all, func(l Lead) string { return l.Status })
	report.missingValues("Closer", filters.Closer, all, func(l Lead) string { return l.Closer })
	report.missingValues("Origem", filters.Origem, all, func(l Lead) string { return l.Origin })

	inRange := 0
	matching := 0
	for _, lead := range all {
		if !matchesDate(lead, dateRange) {
			continue
		}
		inRange++
		if matchesFilters(lead, filters) {
			matching++
		}
	}

	switch {
	case !dateRange.IsZero() && inRange == 0:
		report.add("Nenhum lead encontrado no período selecionado",
			"Selecione um período que contenha leads")
	case matching == 0:
		report.add("Nenhum lead corresponde aos filtros selecionados",
			"Amplie o período ou remova alguns filtros")
	case (!dateRange.IsZero() || !filters.IsEmpty()) && !HasSignificantVolume(matching, len(all), DefaultMinPercentage):
		indicator := GetVolumeIndicator(matching, len(all))
		report.add(indicator.Message,
			"Resultados com pouco volume podem ser enganosos; amplie o período ou reduza os filtros")
	}

	return report.result()
}

// UseFilteredLeads validates and filters in one step. Empty input
// short-circuits to a flagged empty result without filtering.
func UseFilteredLeads(all []Lead, dateRange DateRange, filters Filters, opts FilterOptions) FilteredLeadsResult {
	if len(all) == 0 {
		return FilteredLeadsResult{
			FilteredLeads: []Lead{},
			Validation: ValidationResult{
				IsValid:     false,
				Warnings:    []string{noLeadsWarning},
				Suggestions: []string{noLeadsSuggestion},
			},
		}
	}
	return FilteredLeadsResult{
		FilteredLeads: FilterLeads(all, dateRange, filters, opts),
		Validation:    ValidateFilters(all, dateRange, filters),
	}
}

func matchesDate(lead Lead, r DateRange) bool {
	if r.IsZero() {
		return true
	}
	if lead.ParsedDate == nil {
		return false
	}
	day := dayKey(*lead.ParsedDate)
	if !r.From.IsZero() && day < dayKey(r.From) {
		return false
	}
	if !r.To.IsZero() && day > dayKey(r.To) {
		return false
	}
	return true
}

func matchesFilters(lead Lead, f Filters) bool {
	return included(f.Status, lead.Status) &&
		included(f.Closer, lead.Closer) &&
		included(f.Origem, lead.Origin)
}

func included(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, item := range set {
		if item == value {
			return true
		}
	}
	return false
}

// dayKey folds a timestamp into a comparable yyyymmdd integer in the
// São Paulo calendar.
func dayKey(t time.Time) int {
	local := t.In(BrazilLocation())
	return local.Year()*10000 + int(local.Month())*100 + local.Day()
}

func componentLabel(component string) string {
	if component == "" {
		return "unknown"
	}
	return component
}

type validationReport struct {
	warnings    []string
	suggestions []string
	seen        map[string]bool
}

func newReport() *validationReport {
	return &validationReport{
		warnings:    []string{},
		suggestions: []string{},
		seen:        map[string]bool{},
	}
}

func (r *validationReport) add(warning, suggestion string) {
	r.warnings = append(r.warnings, warning)
	if suggestion != "" && !r.seen[suggestion] {
		r.seen[suggestion] = true
		r.suggestions = append(r.suggestions, suggestion)
	}
}

func (r *validationReport) missingValues(label string, selected []string, all []Lead, field func(Lead) string) {
	if len(selected) == 0 {
		return
	}
	present := make(map[string]bool, len(all))
	for _, lead := range all {
		present[field(lead)] = true
	}
	var missing []string
	for _, value := range selected {
		if !present[value] {
			missing = append(missing, value)
		}
	}
	if len(missing) == 0 {
		return
	}
	r.add(fmt.Sprintf("%s sem leads nos dados carregados: %s", label, strings.Join(missing, ", ")),
		"Remova os filtros sem correspondência nos dados carregados")
}

func (r *validationReport) result() ValidationResult {
	return ValidationResult{
		IsValid:     len(r.warnings) == 0,
		Warnings:    r.warnings,
		Suggestions: r.suggestions,
	}
}
