package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortLeads(t *testing.T) {
	all := sampleLeads()
	bySale := SortLeads(all, SortBySale, true)
	assert.Equal(t, "3", bySale[0].RowID)
	assert.Equal(t, "1", bySale[1].RowID)

	byDate := SortLeads(all, SortByDate, false)
	assert.Equal(t, "1", byDate[0].RowID)
	assert.Equal(t, "7", byDate[len(byDate)-1].RowID)

	unknown := SortLeads(all, "color", true)
	assert.Equal(t, ids(all), ids(unknown))
	assert.Equal(t, "1", all[0].RowID)
}

func TestSortLeadsByDateKeepsUndatedLast(t *testing.T) {
	all := sampleLeads()
	all[0], all[6] = all[6], all[0]

	desc := SortLeads(all, SortByDate, true)
	assert.Equal(t, "6", desc[0].RowID)
	assert.Equal(t, "7", desc[len(desc)-1].RowID)

	asc := SortLeads(all, "DATE", false)
	assert.Equal(t, "1", asc[0].RowID)
	assert.Equal(t, "7", asc[len(asc)-1].RowID)
	assert.Equal(t, "7", all[0].RowID)
}

func TestPaginate(t *testing.T) {
	all := sampleLeads()

	first := Paginate(all, 1, 3)
	assert.Equal(t, []string{"1", "2", "3"}, ids(first.Items))
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 7, first.TotalItems)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrev)

	last := Paginate(all, 99, 3)
	assert.Equal(t, 3, last.Page)
	assert.Equal(t, []string{"7"}, ids(last.Items))
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	defaults := Paginate(all, 0, 0)
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, DefaultPageSize, defaults.PageSize)

	empty := Paginate(nil, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
}
