package entity

import "time"

// MaintenanceRecord anotación de mantenimiento asociada a un equipo por su id
// interno. Fuente de solo lectura para el historial unificado.
type MaintenanceRecord struct {
	ID          string
	AssetID     string
	Company     string
	Site        string
	Arrival     *time.Time
	Departure   *time.Time
	Description string
	CreatedAt   time.Time
	CreatedBy   string
}

// EffectiveDate fecha representativa del registro: llegada si existe, si no la
// fecha de creación.
func (m *MaintenanceRecord) EffectiveDate() time.Time {
	if m.Arrival != nil {
		return *m.Arrival
	}
	return m.CreatedAt
}
