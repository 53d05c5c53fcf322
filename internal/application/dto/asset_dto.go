package dto

import "time"

// RegisterAssetRequest alta de un equipo. RegisteredAt permite fecha efectiva
// retroactiva (nunca futura).
type RegisterAssetRequest struct {
	Code         string     `json:"code"`
	DepotNotes   string     `json:"depot_notes"`
	RegisteredAt *time.Time `json:"registered_at"`
}

// AssetResponse representación HTTP de un equipo.
type AssetResponse struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	LocationState string     `json:"location_state"`
	StateLabel    string     `json:"state_label"`

	RentalClient string     `json:"rental_client,omitempty"`
	RentalSite   string     `json:"rental_site,omitempty"`
	RentalStart  *time.Time `json:"rental_start,omitempty"`
	RentalEnd    *time.Time `json:"rental_end,omitempty"`

	MaintenanceCompany     string     `json:"maintenance_company,omitempty"`
	MaintenanceSite        string     `json:"maintenance_site,omitempty"`
	MaintenanceArrival     *time.Time `json:"maintenance_arrival,omitempty"`
	MaintenanceDeparture   *time.Time `json:"maintenance_departure,omitempty"`
	MaintenanceDescription string     `json:"maintenance_description,omitempty"`

	DepotNotes      string     `json:"depot_notes,omitempty"`
	InspectionStart *time.Time `json:"inspection_start,omitempty"`

	AvailableForRent bool `json:"available_for_rent"`

	WasReplaced       bool   `json:"was_replaced"`
	ReplacedByAssetID string `json:"replaced_by_asset_id,omitempty"`
	ReplacementReason string `json:"replacement_reason,omitempty"`

	CreatedAt    time.Time  `json:"created_at"`
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
}
