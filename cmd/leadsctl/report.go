package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/goliatone/go-leads-dashboard/components/leads"
	"github.com/goliatone/go-leads-dashboard/components/leads/queries"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type filterFlags struct {
	From   string   `help:"First day (YYYY-MM-DD)."`
	To     string   `help:"Last day (YYYY-MM-DD)."`
	Status []string `help:"Only these statuses (repeatable)."`
	Closer []string `help:"Only these closers (repeatable)."`
	Origem []string `help:"Only these origins (repeatable)."`
}

func (f filterFlags) dateRange() (leads.DateRange, error) {
	var r leads.DateRange
	var err error
	if r.From, err = parseDay(f.From); err != nil {
		return r, fmt.Errorf("leadsctl: --from: %w", err)
	}
	if r.To, err = parseDay(f.To); err != nil {
		return r, fmt.Errorf("leadsctl: --to: %w", err)
	}
	return r, nil
}

func (f filterFlags) filters() leads.Filters {
	status := make([]string, 0, len(f.Status))
	for _, s := range f.Status {
		if normalized := leads.NormalizeStatus(s); normalized != "" {
			s = normalized
		}
		status = append(status, s)
	}
	return leads.Filters{Status: status, Closer: f.Closer, Origem: f.Origem}
}

func parseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(time.DateOnly, raw, leads.BrazilLocation())
}

type reportCmd struct {
	filterFlags
	Force bool `help:"Ignore the cache and fetch from the webhook."`
}

func (cmd *reportCmd) Run(ctx context.Context, g *Globals) error {
	dateRange, err := cmd.dateRange()
	if err != nil {
		return err
	}
	source, err := g.source()
	if err != nil {
		return err
	}
	if cmd.Force {
		if _, err := source.Load(ctx, true); err != nil {
			return err
		}
	}
	report, err := queries.NewMetricsQuery(source, leads.NewFilterMemo(g.telemetry())).Query(ctx, queries.MetricsInput{
		Range:   dateRange,
		Filters: cmd.filters(),
	})
	if err != nil {
		return err
	}
	return renderReport(os.Stdout, report)
}

func renderReport(w io.Writer, report queries.MetricsReport) error {
	s := report.Summary
	lines := []string{
		titleStyle.Render("Leads report"),
		subtleStyle.Render(fmt.Sprintf("%d of %d loaded leads · source: %s", s.TotalLeads, report.Source.Loaded, report.Source.Origin)),
		"",
		panelStyle.Render(strings.Join([]string{
			fmt.Sprintf("Vendas:          %d (%.1f%% conversão)", s.Sales, s.ConversionRate),
			fmt.Sprintf("Venda completa:  %s", formatBRL(s.CompletedSales)),
			fmt.Sprintf("Recorrente:      %s", formatBRL(s.Recurring)),
			fmt.Sprintf("Ticket médio:    %s", formatBRL(s.AverageTicket)),
		}, "\n")),
		"",
		titleStyle.Render("Status"),
	}
	for _, slice := range report.Statuses {
		badge := lipgloss.NewStyle().Foreground(lipgloss.Color(slice.Color)).Render("●")
		lines = append(lines, fmt.Sprintf("%s %-14s %4d  %5.1f%%", badge, slice.Label, slice.Count, slice.Percentage))
	}

	lines = append(lines, "", titleStyle.Render("Closers"))
	for _, c := range report.Closers {
		line := fmt.Sprintf("%-16s %3d leads  %3d vendas  %5.1f%%  %s", c.Closer, c.Leads, c.Sales, c.ConversionRate, formatBRL(c.Revenue))
		if !c.Significant {
			line = subtleStyle.Render(line + "  (volume insuficiente)")
		}
		lines = append(lines, line)
	}
	if top := report.Winners.TopRevenue; top != nil {
		lines = append(lines, accentStyle.Render("Maior receita: "+top.Closer))
	}
	if top := report.Winners.TopConversion; top != nil {
		lines = append(lines, accentStyle.Render("Maior conversão: "+top.Closer))
	}

	lines = append(lines, "", titleStyle.Render("Origens"))
	for _, o := range report.Origins {
		lines = append(lines, fmt.Sprintf("%-16s %3d leads  %3d vendas  %s", o.Origin, o.Leads, o.Sales, formatBRL(o.Revenue)))
	}

	lines = append(lines, "", subtleStyle.Render(report.Volume.Message))
	for _, warning := range report.Validation.Warnings {
		lines = append(lines, warningStyle.Render("! "+warning))
	}
	for _, suggestion := range report.Validation.Suggestions {
		lines = append(lines, subtleStyle.Render("→ "+suggestion))
	}
	if report.Source.Degraded {
		lines = append(lines, warningStyle.Render("webhook indisponível: "+report.Source.Error))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// formatBRL renders 1234.5 as "R$ 1.234,50".
func formatBRL(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	raw := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(raw, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), frac)
}
