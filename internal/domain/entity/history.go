package entity

import "time"

// Tipos de evento del historial unificado.
const (
	HistoryTypeWithdrawal  = "withdrawal"
	HistoryTypeReport      = "report"
	HistoryTypeMaintenance = "maintenance"
	HistoryTypeMovement    = "movement"
)

// UnifiedHistoryEvent evento derivado del historial unificado; se produce bajo
// demanda fusionando cuatro fuentes, nunca se persiste.
type UnifiedHistoryEvent struct {
	ID          string
	Date        time.Time
	Type        string
	Title       string
	Description string
	Detail      map[string]string // contexto estructurado específico del tipo
	User        string
}
