package charts

import "github.com/goliatone/go-leads-dashboard/components/leads"

func sampleLeads() []leads.Lead {
	return leads.NormalizeRecords([]map[string]any{
		{"row_number": 1, "data": "01/03/2024", "nome": "Alice", "status": "Fechou", "closer": "Ana", "origem": "Instagram", "venda_completa": "3000", "recorrente": "200"},
		{"row_number": 2, "data": "02/03/2024", "nome": "Beto", "status": "Não Fechou", "closer": "Ana", "origem": "YouTube"},
		{"row_number": 3, "data": "02/03/2024", "nome": "Carla", "status": "fechou", "closer": "Bruno", "origem": "Instagram", "venda_completa": 5000},
		{"row_number": 4, "data": "10/03/2024", "nome": "Davi", "status": "Aguardando", "closer": "Bruno", "origem": "Indicacao"},
	})
}
