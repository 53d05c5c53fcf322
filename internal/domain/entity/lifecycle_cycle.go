package entity

import "time"

// Clases de ciclo archivable.
const (
	CycleKindRental      = "rental"
	CycleKindMaintenance = "maintenance"
)

// LifecycleCycle ocupación cerrada de un estado con ciclo (alquiler o
// mantenimiento), archivada como historial inmutable al salir del estado.
// Invariante: CycleNumber = máximo existente del equipo + 1, estrictamente
// creciente y sin huecos bajo ejecución secuencial.
type LifecycleCycle struct {
	ID          string
	AssetID     string
	AssetCode   string
	Kind        string
	CycleNumber int
	StartDate   time.Time // inicio derivado de los datos archivados (fallback: cierre)
	ClosedAt    time.Time
	ClosedBy    string
	ClosedByName string
	Reason      string // oración compuesta con todo el contexto disponible
	DurationDays int   // mantenimiento: días enteros (ceil); 0 si faltan fechas
	// ArchivedWithdrawalsCount siempre se persiste en cero; ver DESIGN.md.
	ArchivedWithdrawalsCount int
}
