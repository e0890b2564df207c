package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-leads-dashboard/components/leads"
)

const leadsComponent = "leads.table"

// LeadsPageInput selects one page of filtered leads.
type LeadsPageInput struct {
	Range      leads.DateRange
	Filters    leads.Filters
	Page       int
	PageSize   int
	Sort       string
	Descending bool
}

// LeadsPage is the filtered table payload.
type LeadsPage struct {
	leads.Page
	Validation leads.ValidationResult `json:"validation"`
	Volume     leads.VolumeIndicator  `json:"volume"`
	Source     Source                 `json:"source"`
}

// LeadsPageQuery filters, sorts and paginates the loaded leads.
type LeadsPageQuery struct {
	loader leadLoader
	memo   *leads.FilterMemo
}

// NewLeadsPageQuery builds the query. A nil memo gets a private one.
func NewLeadsPageQuery(loader leadLoader, memo *leads.FilterMemo) *LeadsPageQuery {
	if memo == nil {
		memo = leads.NewFilterMemo(nil)
	}
	return &LeadsPageQuery{loader: loader, memo: memo}
}

var _ gocommand.Querier[LeadsPageInput, LeadsPage] = (*LeadsPageQuery)(nil)

// Query loads leads (cache first) and returns the requested page.
func (q *LeadsPageQuery) Query(ctx context.Context, input LeadsPageInput) (LeadsPage, error) {
	if q.loader == nil {
		return LeadsPage{}, errors.New("leads query requires loader")
	}
	res, err := q.loader.Load(ctx, false)
	if err != nil {
		return LeadsPage{}, err
	}
	filtered := q.memo.Compute(res.Leads, input.Range, input.Filters, leadsComponent)
	sorted := leads.SortLeads(filtered.FilteredLeads, input.Sort, input.Descending)
	return LeadsPage{
		Page:       leads.Paginate(sorted, input.Page, input.PageSize),
		Validation: filtered.Validation,
		Volume:     leads.GetVolumeIndicator(len(filtered.FilteredLeads), len(res.Leads)),
		Source:     sourceOf(res),
	}, nil
}
