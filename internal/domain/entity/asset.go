package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Estados operativos de un equipo. Todos alcanzables entre sí por acción
// explícita del operador; ninguno es terminal.
const (
	StateInDepot            = "in_depot"
	StateInMaintenance      = "in_maintenance"
	StateOnRental           = "on_rental"
	StateAwaitingInspection = "awaiting_inspection"
)

// States estados válidos en orden de presentación.
var States = []string{StateInDepot, StateInMaintenance, StateOnRental, StateAwaitingInspection}

var stateLabels = map[string]string{
	StateInDepot:            "En depósito",
	StateInMaintenance:      "En mantenimiento",
	StateOnRental:           "En alquiler",
	StateAwaitingInspection: "Pendiente de revisión",
}

// IsValidState indica si s es uno de los cuatro estados operativos.
func IsValidState(s string) bool {
	_, ok := stateLabels[s]
	return ok
}

// StateLabel etiqueta legible del estado para detalles de eventos y mensajes.
func StateLabel(s string) string {
	if l, ok := stateLabels[s]; ok {
		return l
	}
	return s
}

const assetCodeWidth = 6

var assetCodePattern = regexp.MustCompile(`^[0-9]{1,6}$`)

// NormalizeCode normaliza un código de equipo a ancho fijo numérico (6 dígitos,
// relleno con ceros a la izquierda). Devuelve error de formato si no es numérico.
func NormalizeCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if !assetCodePattern.MatchString(code) {
		return "", fmt.Errorf("código de equipo inválido: %q", code)
	}
	return fmt.Sprintf("%0*s", assetCodeWidth, code), nil
}

// Asset representa un equipo de alquiler rastreado por su ciclo de vida.
// Invariante: exactamente uno de los cuatro conjuntos de campos de estado está
// poblado; los otros tres vacíos. Se crea una vez en el alta y nunca se borra.
type Asset struct {
	ID            string
	Code          string // numérico de ancho fijo, único
	LocationState string

	// Campos de alquiler (solo poblados en on_rental).
	RentalClient string
	RentalSite   string
	RentalStart  *time.Time
	RentalEnd    *time.Time

	// Campos de mantenimiento (solo poblados en in_maintenance).
	MaintenanceCompany     string
	MaintenanceSite        string
	MaintenanceArrival     *time.Time
	MaintenanceDeparture   *time.Time
	MaintenanceDescription string

	// Campos de depósito / revisión.
	DepotNotes      string
	InspectionStart *time.Time

	AvailableForRent bool

	// Vínculos de sustitución: permanentes una vez registrados.
	WasReplaced       bool
	ReplacedByAssetID string
	ReplacementReason string

	CreatedAt    time.Time
	RegisteredAt *time.Time // fecha efectiva de alta cuando se registra con retroactividad
	// StateChangedAt marca la última transición aplicada; lo usa el barrido de
	// consistencia para detectar cambios de estado sin evento asociado.
	StateChangedAt *time.Time
}

// ActiveState devuelve el estado cuyo conjunto identificatorio está poblado.
// Con datos consistentes coincide con LocationState.
func (a *Asset) ActiveState() string {
	switch {
	case a.RentalClient != "" || a.RentalSite != "" || a.RentalStart != nil:
		return StateOnRental
	case a.MaintenanceCompany != "" || a.MaintenanceSite != "" || a.MaintenanceArrival != nil:
		return StateInMaintenance
	case a.InspectionStart != nil:
		return StateAwaitingInspection
	default:
		return StateInDepot
	}
}

// StatePatch conjunto completo de columnas de estado que una transición escribe
// en un único UPDATE atómico. Los campos del estado saliente van en cero (NULL).
type StatePatch struct {
	LocationState string

	RentalClient string
	RentalSite   string
	RentalStart  *time.Time
	RentalEnd    *time.Time

	MaintenanceCompany     string
	MaintenanceSite        string
	MaintenanceArrival     *time.Time
	MaintenanceDeparture   *time.Time
	MaintenanceDescription string

	DepotNotes      string
	InspectionStart *time.Time

	AvailableForRent bool
	StateChangedAt   time.Time
}

// CycleSnapshot valores del estado saliente capturados ANTES de limpiar,
// entregados al archivador de ciclos.
type CycleSnapshot struct {
	Kind string // rental | maintenance

	Client string // cliente de alquiler o empresa de mantenimiento
	Site   string
	Start  *time.Time
	End    *time.Time

	Description string // solo mantenimiento
}

// Populated indica si el snapshot trae al menos un campo identificatorio.
func (s CycleSnapshot) Populated() bool {
	return s.Client != "" || s.Site != "" || s.Start != nil
}
