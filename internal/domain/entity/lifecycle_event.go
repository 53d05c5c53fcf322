package entity

import "time"

// Tipos de evento del historial de vida de un equipo.
const (
	EventKindRegistration = "registration" // alta del equipo
	EventKindMovement     = "movement"     // cambio de estado
	EventKindSubstitution = "substitution" // vínculo sustituto/sustituido
	EventKindMaintenance  = "maintenance"  // anotación de mantenimiento
	EventKindWithdrawal   = "withdrawal"   // retiro de material asociado
)

// LifecycleEvent registro inmutable del historial (append-only). AssetCode va
// desnormalizado para que el evento sobreviva al borrado del equipo.
type LifecycleEvent struct {
	ID        string
	AssetID   string
	AssetCode string
	Kind      string
	Field     string // campo modificado, vacío si aplica al registro completo
	OldValue  string
	NewValue  string
	Detail    string // texto libre legible compuesto por el emisor
	ActorID   string
	ActorName string
	CreatedAt time.Time  // timestamp de sistema
	EventDate *time.Time // fecha real del hecho si se registró con retroactividad
}

// EffectiveDate fecha a usar al ordenar: la real si existe, si no la de sistema.
func (e *LifecycleEvent) EffectiveDate() time.Time {
	if e.EventDate != nil {
		return *e.EventDate
	}
	return e.CreatedAt
}
