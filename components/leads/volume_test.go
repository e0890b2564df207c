package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasSignificantVolume(t *testing.T) {
	assert.False(t, HasSignificantVolume(0, 0, DefaultMinPercentage))
	assert.True(t, HasSignificantVolume(5, 100, DefaultMinPercentage))
	assert.False(t, HasSignificantVolume(4, 100, DefaultMinPercentage))
	assert.True(t, HasSignificantVolume(1, 10, 10))
}

func TestGetVolumeIndicator(t *testing.T) {
	ok := GetVolumeIndicator(25, 200)
	assert.True(t, ok.IsSignificant)
	assert.InDelta(t, 12.5, ok.Percentage, 1e-9)
	assert.Contains(t, ok.Message, "suficiente")

	low := GetVolumeIndicator(3, 200)
	assert.False(t, low.IsSignificant)
	assert.InDelta(t, 1.5, low.Percentage, 1e-9)
	assert.Contains(t, low.Message, "insuficiente")

	empty := GetVolumeIndicator(0, 0)
	assert.False(t, empty.IsSignificant)
	assert.Zero(t, empty.Percentage)
}

func TestFilterSignificantData(t *testing.T) {
	items := []CloserStats{
		{Closer: "Ana", Leads: 50},
		{Closer: "Bruno", Leads: 4},
		{Closer: "Caio", Leads: 5},
	}
	kept := FilterSignificantData(items, 100)
	assert.Len(t, kept, 2)
	assert.Equal(t, "Ana", kept[0].Closer)
	assert.Equal(t, "Caio", kept[1].Closer)
	assert.Empty(t, FilterSignificantData(items, 0))
}
