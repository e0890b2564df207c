package leads

import "strings"

// Known lead statuses as they appear in the source spreadsheets.
const (
	StatusClosed      = "Fechou"
	StatusNotClosed   = "Não Fechou"
	StatusNoShow      = "Não Apareceu"
	StatusWaiting     = "Aguardando"
	StatusRescheduled = "Remarcou"
	StatusConfirmed   = "Confirmado"
	StatusCancelled   = "Desmarcou"
	StatusMentored    = "Mentorado"
)

// DefaultStatusColor is used for empty or unknown statuses.
const DefaultStatusColor = "#6B7280"

var statusOrder = []string{
	StatusClosed,
	StatusNotClosed,
	StatusNoShow,
	StatusWaiting,
	StatusRescheduled,
	StatusConfirmed,
	StatusCancelled,
	StatusMentored,
}

var statusColors = map[string]string{
	StatusClosed:      "#10B981",
	StatusNotClosed:   "#EF4444",
	StatusNoShow:      "#F97316",
	StatusWaiting:     "#F59E0B",
	StatusRescheduled: "#3B82F6",
	StatusConfirmed:   "#8B5CF6",
	StatusCancelled:   "#EC4899",
	StatusMentored:    "#14B8A6",
}

// Statuses returns the known statuses in display order.
func Statuses() []string {
	return append([]string(nil), statusOrder...)
}

// StatusColor maps a status label to its display color.
func StatusColor(status string) string {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return DefaultStatusColor
}

// NormalizeStatus maps a raw label onto a known status, or "" when unknown.
func NormalizeStatus(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, status := range statusOrder {
		if strings.EqualFold(status, raw) {
			return status
		}
	}
	return ""
}
