package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/goliatone/go-leads-dashboard/components/leads"
)

var sortColumns = []string{
	leads.SortByDate,
	leads.SortByName,
	leads.SortByStatus,
	leads.SortByCloser,
	leads.SortByOrigin,
	leads.SortBySale,
	leads.SortByRecurring,
}

type browseCmd struct {
	filterFlags
	PageSize int  `name:"page-size" default:"15" help:"Rows per page."`
	Force    bool `help:"Ignore the cache and fetch from the webhook."`
}

func (cmd *browseCmd) Run(ctx context.Context, g *Globals) error {
	dateRange, err := cmd.dateRange()
	if err != nil {
		return err
	}
	res, err := g.load(ctx, cmd.Force)
	if err != nil {
		return err
	}
	result := leads.UseFilteredLeads(res.Leads, dateRange, cmd.filters(), leads.FilterOptions{
		Component: "leadsctl.browse",
		Telemetry: g.telemetry(),
	})
	m := newBrowseModel(result, len(res.Leads), string(res.Origin), cmd.PageSize)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("leadsctl: browse: %w", err)
	}
	return nil
}

type browseModel struct {
	items      []leads.Lead
	loaded     int
	origin     string
	validation leads.ValidationResult
	table      table.Model
	page       leads.Page
	pageNum    int
	pageSize   int
	sortIdx    int
	descending bool
}

func newBrowseModel(result leads.FilteredLeadsResult, loaded int, origin string, pageSize int) browseModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Data", Width: 10},
			{Title: "Nome", Width: 22},
			{Title: "Status", Width: 13},
			{Title: "Closer", Width: 14},
			{Title: "Origem", Width: 12},
			{Title: "Venda", Width: 14},
			{Title: "Recorrente", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(pageSize),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("63"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	m := browseModel{
		items:      result.FilteredLeads,
		loaded:     loaded,
		origin:     origin,
		validation: result.Validation,
		table:      t,
		pageNum:    1,
		pageSize:   pageSize,
		descending: true,
	}
	m.refresh()
	return m
}

func (m *browseModel) refresh() {
	sorted := leads.SortLeads(m.items, sortColumns[m.sortIdx], m.descending)
	m.page = leads.Paginate(sorted, m.pageNum, m.pageSize)
	m.pageNum = m.page.Page
	rows := make([]table.Row, 0, len(m.page.Items))
	for _, lead := range m.page.Items {
		rows = append(rows, table.Row{
			leadDay(lead),
			lead.Name,
			orDash(lead.Status),
			orDash(lead.Closer),
			orDash(lead.Origin),
			formatBRL(lead.CompletedSale),
			formatBRL(lead.Recurring),
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "n", "right", "pgdown":
			if m.page.HasNext {
				m.pageNum++
				m.refresh()
			}
			return m, nil
		case "p", "left", "pgup":
			if m.page.HasPrev {
				m.pageNum--
				m.refresh()
			}
			return m, nil
		case "s":
			m.sortIdx = (m.sortIdx + 1) % len(sortColumns)
			m.pageNum = 1
			m.refresh()
			return m, nil
		case "r":
			m.descending = !m.descending
			m.pageNum = 1
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	order := "asc"
	if m.descending {
		order = "desc"
	}
	volume := leads.GetVolumeIndicator(len(m.items), m.loaded)
	parts := []string{
		titleStyle.Render("Leads"),
		subtleStyle.Render(fmt.Sprintf("página %d/%d · %d leads · sort %s %s · source %s",
			m.page.Page, m.page.TotalPages, m.page.TotalItems, sortColumns[m.sortIdx], order, m.origin)),
		m.table.View(),
		m.detail(),
		subtleStyle.Render(volume.Message),
	}
	for _, warning := range m.validation.Warnings {
		parts = append(parts, warningStyle.Render("! "+warning))
	}
	parts = append(parts, subtleStyle.Render("↑/↓ move · n/p page · s sort · r reverse · q quit"))
	return strings.Join(parts, "\n")
}

func (m browseModel) detail() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.page.Items) {
		return ""
	}
	lead := m.page.Items[idx]
	status := lead.Status
	if status == "" {
		status = "Sem status"
	}
	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(leads.StatusColor(lead.Status))).
		Padding(0, 1).
		Render(status)
	lines := []string{
		badge + " " + accentStyle.Render(lead.Name),
		subtleStyle.Render(strings.Join(nonEmpty(lead.Email, lead.Phone), " · ")),
	}
	if lead.Notes != "" {
		lines = append(lines, lead.Notes)
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func leadDay(lead leads.Lead) string {
	if lead.ParsedDate == nil {
		return orDash(lead.Date)
	}
	return lead.ParsedDate.In(leads.BrazilLocation()).Format("02/01/2006")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
