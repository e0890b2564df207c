package leads

import (
	"sort"
	"time"
)

const (
	unassignedCloser = "Sem closer"
	unknownOrigin    = "Sem origem"
	unknownStatus    = "Sem status"
)

// Summary aggregates a lead collection.
type Summary struct {
	TotalLeads     int     `json:"total_leads"`
	Sales          int     `json:"sales"`
	ConversionRate float64 `json:"conversion_rate"`
	CompletedSales float64 `json:"completed_sales"`
	Recurring      float64 `json:"recurring"`
	TotalRevenue   float64 `json:"total_revenue"`
	AverageTicket  float64 `json:"average_ticket"`
}

// StatusSlice is one entry of the status distribution chart.
type StatusSlice struct {
	Status     string  `json:"status"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// CloserStats summarizes a closer's pipeline.
type CloserStats struct {
	Closer         string  `json:"closer"`
	Leads          int     `json:"leads"`
	Sales          int     `json:"sales"`
	Revenue        float64 `json:"revenue"`
	Recurring      float64 `json:"recurring"`
	ConversionRate float64 `json:"conversion_rate"`
	Significant    bool    `json:"significant"`
}

// LeadCount implements LeadCounter.
func (c CloserStats) LeadCount() int { return c.Leads }

// OriginStats summarizes an acquisition channel.
type OriginStats struct {
	Origin     string  `json:"origem"`
	Leads      int     `json:"leads"`
	Sales      int     `json:"sales"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// LeadCount implements LeadCounter.
func (o OriginStats) LeadCount() int { return o.Leads }

// RevenuePoint is a per-day revenue bucket.
type RevenuePoint struct {
	Day           time.Time `json:"day"`
	CompletedSale float64   `json:"completed_sale"`
	Recurring     float64   `json:"recurring"`
}

// Winners holds the closers that earn a badge. Only closers with significant
// volume compete.
type Winners struct {
	TopRevenue    *CloserStats `json:"top_revenue,omitempty"`
	TopConversion *CloserStats `json:"top_conversion,omitempty"`
}

// Summarize computes totals over the leads.
func Summarize(leads []Lead) Summary {
	s := Summary{TotalLeads: len(leads)}
	for _, lead := range leads {
		s.CompletedSales += lead.CompletedSale
		s.Recurring += lead.Recurring
		if lead.IsSale() {
			s.Sales++
		}
	}
	s.TotalRevenue = s.CompletedSales + s.Recurring
	s.ConversionRate = percentageOf(s.Sales, s.TotalLeads)
	if s.Sales > 0 {
		s.AverageTicket = s.CompletedSales / float64(s.Sales)
	}
	return s
}

// StatusDistribution counts leads per status in display order. Leads without a
// known status are reported last.
func StatusDistribution(leads []Lead) []StatusSlice {
	counts := make(map[string]int, len(statusOrder)+1)
	for _, lead := range leads {
		counts[lead.Status]++
	}
	out := make([]StatusSlice, 0, len(counts))
	for _, status := range append(Statuses(), "") {
		count := counts[status]
		if count == 0 {
			continue
		}
		label := status
		if label == "" {
			label = unknownStatus
		}
		out = append(out, StatusSlice{
			Status:     status,
			Label:      label,
			Count:      count,
			Percentage: percentageOf(count, len(leads)),
			Color:      StatusColor(status),
		})
	}
	return out
}

// CloserPerformance groups leads per closer sorted by revenue.
func CloserPerformance(leads []Lead) []CloserStats {
	index := map[string]int{}
	var out []CloserStats
	for _, lead := range leads {
		name := lead.Closer
		if name == "" {
			name = unassignedCloser
		}
		idx, ok := index[name]
		if !ok {
			idx = len(out)
			index[name] = idx
			out = append(out, CloserStats{Closer: name})
		}
		stats := &out[idx]
		stats.Leads++
		stats.Revenue += lead.CompletedSale
		stats.Recurring += lead.Recurring
		if lead.IsSale() {
			stats.Sales++
		}
	}
	for i := range out {
		out[i].ConversionRate = percentageOf(out[i].Sales, out[i].Leads)
		out[i].Significant = HasSignificantVolume(out[i].Leads, len(leads), DefaultMinPercentage)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Closer < out[j].Closer
	})
	return out
}

// OriginBreakdown groups leads per origem sorted by volume.
func OriginBreakdown(leads []Lead) []OriginStats {
	index := map[string]int{}
	var out []OriginStats
	for _, lead := range leads {
		name := lead.Origin
		if name == "" {
			name = unknownOrigin
		}
		idx, ok := index[name]
		if !ok {
			idx = len(out)
			index[name] = idx
			out = append(out, OriginStats{Origin: name})
		}
		out[idx].Leads++
		out[idx].Revenue += lead.Revenue()
		if lead.IsSale() {
			out[idx].Sales++
		}
	}
	for i := range out {
		out[i].Percentage = percentageOf(out[i].Leads, len(leads))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Leads != out[j].Leads {
			return out[i].Leads > out[j].Leads
		}
		return out[i].Origin < out[j].Origin
	})
	return out
}

// RevenueSeries buckets revenue per calendar day. Undated leads are skipped.
func RevenueSeries(leads []Lead) []RevenuePoint {
	buckets := map[int]*RevenuePoint{}
	for _, lead := range leads {
		if lead.ParsedDate == nil {
			continue
		}
		key := dayKey(*lead.ParsedDate)
		point, ok := buckets[key]
		if !ok {
			local := lead.ParsedDate.In(BrazilLocation())
			point = &RevenuePoint{Day: time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())}
			buckets[key] = point
		}
		point.CompletedSale += lead.CompletedSale
		point.Recurring += lead.Recurring
	}
	keys := make([]int, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	out := make([]RevenuePoint, len(keys))
	for i, key := range keys {
		out[i] = *buckets[key]
	}
	return out
}

// PickWinners selects badge holders among closers with significant volume.
func PickWinners(stats []CloserStats, total int) Winners {
	var w Winners
	for _, candidate := range FilterSignificantData(stats, total) {
		c := candidate
		if c.Sales == 0 {
			continue
		}
		if w.TopRevenue == nil || c.Revenue > w.TopRevenue.Revenue {
			w.TopRevenue = &c
		}
		if w.TopConversion == nil || c.ConversionRate > w.TopConversion.ConversionRate {
			conv := c
			w.TopConversion = &conv
		}
	}
	return w
}
