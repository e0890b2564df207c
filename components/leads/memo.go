package leads

import (
	"slices"
	"sync"
	"time"
)

// FilterMemo caches the last UseFilteredLeads result and recomputes only when
// the lead slice identity, date range, filters or component change.
type FilterMemo struct {
	mu        sync.Mutex
	telemetry Telemetry
	key       *memoKey
	result    FilteredLeadsResult
	computes  int
}

type memoKey struct {
	head      *Lead
	length    int
	from      time.Time
	to        time.Time
	filters   Filters
	component string
}

// NewFilterMemo builds an empty memo that reports filter events to telemetry.
func NewFilterMemo(telemetry Telemetry) *FilterMemo {
	return &FilterMemo{telemetry: telemetry}
}

// Compute returns the memoized result for the inputs, recomputing on change.
func (m *FilterMemo) Compute(all []Lead, dateRange DateRange, filters Filters, component string) FilteredLeadsResult {
	key := newMemoKey(all, dateRange, filters, component)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.key != nil && m.key.equal(key) {
		return m.result
	}
	m.result = UseFilteredLeads(all, dateRange, filters, FilterOptions{
		Component: component,
		Telemetry: m.telemetry,
	})
	m.key = &key
	m.computes++
	return m.result
}

// Computations reports how many times the pipeline actually ran.
func (m *FilterMemo) Computations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.computes
}

func newMemoKey(all []Lead, dateRange DateRange, filters Filters, component string) memoKey {
	key := memoKey{
		length:    len(all),
		from:      dateRange.From,
		to:        dateRange.To,
		component: component,
		filters: Filters{
			Status: slices.Clone(filters.Status),
			Closer: slices.Clone(filters.Closer),
			Origem: slices.Clone(filters.Origem),
		},
	}
	if len(all) > 0 {
		key.head = &all[0]
	}
	return key
}

func (k memoKey) equal(other memoKey) bool {
	return k.head == other.head &&
		k.length == other.length &&
		k.from.Equal(other.from) &&
		k.to.Equal(other.to) &&
		k.component == other.component &&
		slices.Equal(k.filters.Status, other.filters.Status) &&
		slices.Equal(k.filters.Closer, other.filters.Closer) &&
		slices.Equal(k.filters.Origem, other.filters.Origem)
}
