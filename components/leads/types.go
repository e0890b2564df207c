package leads

import "time"

// Lead is a normalized sales lead row.
type Lead struct {
	RowID         string     `json:"row_id"`
	Date          string     `json:"date"`
	ParsedDate    *time.Time `json:"parsed_date,omitempty"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Origin        string     `json:"origem"`
	Status        string     `json:"status"`
	Closer        string     `json:"closer"`
	CompletedSale float64    `json:"completed_sale"`
	Recurring     float64    `json:"recurring"`
	Notes         string     `json:"notes,omitempty"`
}

// Revenue returns the completed sale plus recurring amount.
func (l Lead) Revenue() float64 {
	return l.CompletedSale + l.Recurring
}

// IsSale reports whether the lead closed.
func (l Lead) IsSale() bool {
	return l.Status == StatusClosed
}

// DateRange bounds leads by calendar day. A zero bound is open.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Filters holds categorical inclusion lists. Empty lists do not restrict.
type Filters struct {
	Status []string `json:"status"`
	Closer []string `json:"closer"`
	Origem []string `json:"origem"`
}

// IsEmpty reports whether no categorical restriction is active.
func (f Filters) IsEmpty() bool {
	return len(f.Status) == 0 && len(f.Closer) == 0 && len(f.Origem) == 0
}

// ValidationResult is the advisory report attached to every filter request.
type ValidationResult struct {
	IsValid     bool     `json:"is_valid"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// FilterOptions tunes FilterLeads. Component only tags diagnostics.
type FilterOptions struct {
	Component string
	Telemetry Telemetry
}

// FilteredLeadsResult is the output of UseFilteredLeads.
type FilteredLeadsResult struct {
	FilteredLeads []Lead           `json:"filtered_leads"`
	Validation    ValidationResult `json:"validation"`
}
