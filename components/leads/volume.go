package leads

import "fmt"

// DefaultMinPercentage is the share of the total a segment needs to be treated
// as statistically meaningful.
const DefaultMinPercentage = 5.0

// VolumeIndicator describes how representative a subset is.
type VolumeIndicator struct {
	IsSignificant bool    `json:"is_significant"`
	Percentage    float64 `json:"percentage"`
	Message       string  `json:"message"`
}

// LeadCounter is implemented by aggregated rows that carry a lead count.
type LeadCounter interface {
	LeadCount() int
}

// HasSignificantVolume reports whether count is at least minPercentage of total.
func HasSignificantVolume(count, total int, minPercentage float64) bool {
	if total == 0 {
		return false
	}
	return percentageOf(count, total) >= minPercentage
}

// GetVolumeIndicator classifies count against total using DefaultMinPercentage.
func GetVolumeIndicator(count, total int) VolumeIndicator {
	pct := percentageOf(count, total)
	if HasSignificantVolume(count, total, DefaultMinPercentage) {
		return VolumeIndicator{
			IsSignificant: true,
			Percentage:    pct,
			Message:       fmt.Sprintf("Volume suficiente: %.1f%% do total (%d de %d leads)", pct, count, total),
		}
	}
	return VolumeIndicator{
		IsSignificant: false,
		Percentage:    pct,
		Message: fmt.Sprintf("Volume insuficiente para análise: %.1f%% do total (%d de %d leads, mínimo %.0f%%)",
			pct, count, total, DefaultMinPercentage),
	}
}

// FilterSignificantData keeps only the items whose own lead count is significant
// relative to total.
func FilterSignificantData[T LeadCounter](items []T, total int) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if HasSignificantVolume(item.LeadCount(), total, DefaultMinPercentage) {
			out = append(out, item)
		}
	}
	return out
}

func percentageOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
