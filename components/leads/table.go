package leads

import (
	"sort"
	"strings"
)

const (
	// DefaultPageSize is used when the requested size is not positive.
	DefaultPageSize = 20
	// MaxPageSize caps page sizes requested by clients.
	MaxPageSize = 200
)

// Sortable lead table columns.
const (
	SortByDate      = "date"
	SortByName      = "name"
	SortByStatus    = "status"
	SortByCloser    = "closer"
	SortByOrigin    = "origem"
	SortBySale      = "completed_sale"
	SortByRecurring = "recurring"
)

// Page is one slice of the lead table.
type Page struct {
	Items      []Lead `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalItems int    `json:"total_items"`
	TotalPages int    `json:"total_pages"`
	HasNext    bool   `json:"has_next"`
	HasPrev    bool   `json:"has_prev"`
}

// SortLeads returns a sorted copy. Unknown columns keep the input order.
// Leads without a parsed date always trail a date sort.
func SortLeads(leads []Lead, column string, descending bool) []Lead {
	column = strings.ToLower(column)
	less := lessFor(column)
	if less == nil {
		return append([]Lead(nil), leads...)
	}
	var out, undated []Lead
	if column == SortByDate {
		out, undated = splitUndated(leads)
	} else {
		out = append([]Lead(nil), leads...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return append(out, undated...)
}

func splitUndated(leads []Lead) (dated, undated []Lead) {
	dated = make([]Lead, 0, len(leads))
	for _, lead := range leads {
		if lead.ParsedDate == nil {
			undated = append(undated, lead)
			continue
		}
		dated = append(dated, lead)
	}
	return dated, undated
}

func lessFor(column string) func(a, b Lead) bool {
	switch column {
	case SortByDate:
		return func(a, b Lead) bool { return a.ParsedDate.Before(*b.ParsedDate) }
	case SortByName:
		return func(a, b Lead) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortByStatus:
		return func(a, b Lead) bool { return a.Status < b.Status }
	case SortByCloser:
		return func(a, b Lead) bool { return strings.ToLower(a.Closer) < strings.ToLower(b.Closer) }
	case SortByOrigin:
		return func(a, b Lead) bool { return strings.ToLower(a.Origin) < strings.ToLower(b.Origin) }
	case SortBySale:
		return func(a, b Lead) bool { return a.CompletedSale < b.CompletedSale }
	case SortByRecurring:
		return func(a, b Lead) bool { return a.Recurring < b.Recurring }
	default:
		return nil
	}
}

// Paginate slices leads into a page. page is clamped to the available range.
func Paginate(leads []Lead, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	total := len(leads)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * size
	end := min(start+size, total)
	items := make([]Lead, 0, end-start)
	if start < end {
		items = append(items, leads[start:end]...)
	}
	return Page{
		Items:      items,
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
