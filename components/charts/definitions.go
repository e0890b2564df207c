package charts

// Built-in chart codes.
const (
	CodeRevenue = "leads.chart.revenue"
	CodeStatus  = "leads.chart.status"
	CodeClosers = "leads.chart.closers"
	CodeOrigins = "leads.chart.origins"
)

// DefaultDefinitions returns the built-in lead charts.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Code:        CodeRevenue,
			Name:        "Receita por dia",
			Description: "Daily completed and recurring revenue",
			Type:        TypeLine,
			Schema:      revenueSchema(),
			Defaults:    map[string]any{"metric": "both"},
			Position:    10,
		},
		{
			Code:        CodeStatus,
			Name:        "Distribuição por status",
			Description: "Lead count per status, colored by status",
			Type:        TypePie,
			Schema:      baseSchema(nil),
			Position:    20,
		},
		{
			Code:        CodeClosers,
			Name:        "Performance dos closers",
			Description: "Revenue, sales or conversion per closer",
			Type:        TypeBar,
			Schema: rankedSchema(
				[]string{"revenue", "sales", "conversion", "leads"},
				map[string]any{
					"significant_only": map[string]any{"type": "boolean", "default": true},
				},
			),
			Defaults: map[string]any{"metric": "revenue", "limit": 10, "significant_only": true},
			Position: 30,
		},
		{
			Code:        CodeOrigins,
			Name:        "Leads por origem",
			Description: "Leads, sales or revenue per acquisition channel",
			Type:        TypeBar,
			Schema:      rankedSchema([]string{"leads", "sales", "revenue"}, nil),
			Defaults:    map[string]any{"metric": "leads", "limit": 10},
			Position:    40,
		},
	}
}

func baseSchema(extra map[string]any) map[string]any {
	props := map[string]any{
		"title": map[string]any{
			"type": "string",
		},
		"subtitle": map[string]any{
			"type": "string",
		},
		"theme": map[string]any{
			"type": "string",
			"enum": Themes,
		},
	}
	for key, value := range extra {
		props[key] = value
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

func revenueSchema() map[string]any {
	return baseSchema(map[string]any{
		"metric": map[string]any{
			"type":    "string",
			"enum":    []string{"both", "completed", "recurring"},
			"default": "both",
		},
	})
}

func rankedSchema(metrics []string, extra map[string]any) map[string]any {
	props := map[string]any{
		"metric": map[string]any{
			"type": "string",
			"enum": metrics,
		},
		"limit": map[string]any{
			"type":    "integer",
			"minimum": 1,
			"maximum": 50,
		},
	}
	for key, value := range extra {
		props[key] = value
	}
	return baseSchema(props)
}
