package dto

import "time"

// HistoryEventDTO evento del historial unificado.
type HistoryEventDTO struct {
	ID          string            `json:"id"`
	Date        time.Time         `json:"date"`
	Type        string            `json:"type"` // withdrawal | report | maintenance | movement
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Detail      map[string]string `json:"detail,omitempty"`
	User        string            `json:"user,omitempty"`
}

// HistoryResponse resultado del fan-in: eventos fusionados más el estado por
// fuente (una fuente caída no bloquea a las otras tres).
type HistoryResponse struct {
	AssetCode    string            `json:"asset_code"`
	Events       []HistoryEventDTO `json:"events"`
	SourceErrors map[string]string `json:"source_errors,omitempty"`
}
