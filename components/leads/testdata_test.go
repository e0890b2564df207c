package leads

import "time"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, BrazilLocation())
}

func sampleLead(id, date, status, closer, origin string, sale, recurring float64) Lead {
	lead := Lead{
		RowID:         id,
		Date:          date,
		Name:          "Lead " + id,
		Status:        status,
		Closer:        closer,
		Origin:        origin,
		CompletedSale: sale,
		Recurring:     recurring,
	}
	if parsed, ok := ParseLeadDate(date); ok {
		lead.ParsedDate = &parsed
	}
	return lead
}

func sampleLeads() []Lead {
	return []Lead{
		sampleLead("1", "01/03/2024", StatusClosed, "Ana", "Instagram", 3000, 200),
		sampleLead("2", "02/03/2024", StatusNotClosed, "Ana", "YouTube", 0, 0),
		sampleLead("3", "02/03/2024", StatusClosed, "Bruno", "Instagram", 5000, 0),
		sampleLead("4", "10/03/2024", StatusNoShow, "Bruno", "Indicação", 0, 0),
		sampleLead("5", "15/03/2024", StatusWaiting, "Caio", "Instagram", 0, 0),
		sampleLead("6", "20/03/2024", StatusClosed, "Caio", "YouTube", 1500, 97),
		sampleLead("7", "", "", "", "", 0, 0),
	}
}
