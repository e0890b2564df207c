package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-leads-dashboard/components/leads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lead(id string, sale float64) leads.Lead {
	return leads.Lead{RowID: id, Name: "Lead " + id, Status: leads.StatusClosed, CompletedSale: sale}
}

func TestMemoryStoreLatest(t *testing.T) {
	store := NewMemoryStore(2)
	ctx := context.Background()

	_, err := store.Latest(ctx)
	assert.True(t, errors.Is(err, ErrNoSnapshot))

	require.NoError(t, store.Save(ctx, []leads.Lead{lead("1", 10)}))
	require.NoError(t, store.Save(ctx, []leads.Lead{lead("2", 20)}))
	require.NoError(t, store.Save(ctx, []leads.Lead{lead("3", 30), lead("4", 40)}))

	snap, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(3), snap.ID)
	assert.Len(t, snap.Leads, 2)
	assert.Equal(t, 2, store.Len())
}

func TestMemoryStoreCopiesPayload(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()
	items := []leads.Lead{lead("1", 10)}
	require.NoError(t, store.Save(ctx, items))

	items[0].Name = "mutated"
	snap, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lead 1", snap.Leads[0].Name)

	snap.Leads[0].Name = "again"
	again, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lead 1", again.Leads[0].Name)
}

func TestRecordRoundTrip(t *testing.T) {
	parsed := time.Date(2024, 3, 1, 0, 0, 0, 0, leads.BrazilLocation())
	items := []leads.Lead{lead("1", 1234.5)}
	items[0].ParsedDate = &parsed

	payload, err := encodeLeads(items)
	require.NoError(t, err)

	snap, err := record{ID: 7, Payload: payload, LeadCount: 1}.toSnapshot()
	require.NoError(t, err)
	assert.Equal(t, uint(7), snap.ID)
	require.Len(t, snap.Leads, 1)
	assert.Equal(t, 1234.5, snap.Leads[0].CompletedSale)
	assert.True(t, parsed.Equal(*snap.Leads[0].ParsedDate))
}

func TestEncodeNilLeads(t *testing.T) {
	payload, err := encodeLeads(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(payload))

	items, err := decodeLeads([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, items)

	_, err = decodeLeads([]byte("{"))
	assert.Error(t, err)
}

func TestNewGormStoreRequiresDB(t *testing.T) {
	_, err := NewGormStore(nil)
	assert.Error(t, err)
	_, err = OpenPostgres("")
	assert.Error(t, err)
}
