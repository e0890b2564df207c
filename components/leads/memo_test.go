package leads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterMemoReusesResult(t *testing.T) {
	memo := NewFilterMemo(nil)
	all := sampleLeads()
	r := DateRange{From: day(2024, time.March, 1)}

	first := memo.Compute(all, r, Filters{Status: []string{StatusClosed}}, "table")
	second := memo.Compute(all, r, Filters{Status: []string{StatusClosed}}, "table")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, memo.Computations())
}

func TestFilterMemoRecomputesOnChange(t *testing.T) {
	memo := NewFilterMemo(nil)
	all := sampleLeads()

	memo.Compute(all, DateRange{}, Filters{}, "table")
	memo.Compute(all, DateRange{}, Filters{Closer: []string{"Ana"}}, "table")
	assert.Equal(t, 2, memo.Computations())

	memo.Compute(all, DateRange{To: day(2024, time.March, 2)}, Filters{Closer: []string{"Ana"}}, "table")
	assert.Equal(t, 3, memo.Computations())

	memo.Compute(all, DateRange{To: day(2024, time.March, 2)}, Filters{Closer: []string{"Ana"}}, "charts")
	assert.Equal(t, 4, memo.Computations())

	reloaded := sampleLeads()
	result := memo.Compute(reloaded, DateRange{To: day(2024, time.March, 2)}, Filters{Closer: []string{"Ana"}}, "charts")
	assert.Equal(t, 5, memo.Computations())
	assert.Equal(t, []string{"1", "2"}, ids(result.FilteredLeads))
}

func TestFilterMemoIgnoresCallerMutation(t *testing.T) {
	memo := NewFilterMemo(nil)
	all := sampleLeads()
	filters := Filters{Status: []string{StatusClosed}}

	memo.Compute(all, DateRange{}, filters, "table")
	filters.Status[0] = StatusNoShow
	result := memo.Compute(all, DateRange{}, filters, "table")

	assert.Equal(t, 2, memo.Computations())
	assert.Equal(t, []string{"4"}, ids(result.FilteredLeads))
}
