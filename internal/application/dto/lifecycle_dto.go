package dto

import "time"

// TransitionRequest petición de cambio de estado de un equipo.
// Solo se leen los campos del estado de destino; el resto se ignora.
type TransitionRequest struct {
	FromState string `json:"from_state"`
	ToState   string `json:"to_state"`

	RentalClient string     `json:"rental_client"`
	RentalSite   string     `json:"rental_site"`
	RentalStart  *time.Time `json:"rental_start"`
	RentalEnd    *time.Time `json:"rental_end"`

	MaintenanceCompany     string     `json:"maintenance_company"`
	MaintenanceSite        string     `json:"maintenance_site"`
	MaintenanceArrival     *time.Time `json:"maintenance_arrival"`
	MaintenanceDeparture   *time.Time `json:"maintenance_departure"`
	MaintenanceDescription string     `json:"maintenance_description"`

	DepotNotes string `json:"depot_notes"`

	// EventDate fecha real del hecho cuando se registra con retroactividad.
	// Llega como texto libre: si no se puede interpretar se ignora y se usa el
	// timestamp de sistema (fallo abierto), nunca se bloquea el traslado.
	EventDate string `json:"event_date"`
}

// SubstitutionRequest sustitución: el predecesor pasa a revisión y el sucesor
// hereda su contexto de cliente/obra.
type SubstitutionRequest struct {
	SuccessorCode string `json:"successor_code"`
	Reason        string `json:"reason"`
	// EventDate igual que en TransitionRequest: texto, retroactivo legal,
	// inválido se ignora.
	EventDate string `json:"event_date"`
}

// TransitionResponse resumen legible de lo que cambió.
type TransitionResponse struct {
	AssetCode     string `json:"asset_code"`
	FromState     string `json:"from_state"`
	ToState       string `json:"to_state"`
	Summary       string `json:"summary"`
	CycleArchived bool   `json:"cycle_archived"`
	CycleNumber   int    `json:"cycle_number,omitempty"`
}

// ReconcileRequest resolución de retiros pendientes: keep_history | new_cycle.
type ReconcileRequest struct {
	Resolution string `json:"resolution"`
}

// WithdrawalResponse retiro pendiente en listados de conciliación.
type WithdrawalResponse struct {
	ID          string    `json:"id"`
	AssetCode   string    `json:"asset_code"`
	ProductName string    `json:"product_name"`
	Quantity    string    `json:"quantity"`
	Reason      string    `json:"reason,omitempty"`
	Site        string    `json:"site,omitempty"`
	Company     string    `json:"company,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
