// Package lifecycle implementa el motor de ciclo de vida de los equipos:
// transiciones de estado, archivo de ciclos, sustituciones y conciliación de
// retiros pendientes.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	domlifecycle "github.com/jhoicas/Alquileres-api/internal/domain/lifecycle"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
	"github.com/jhoicas/Alquileres-api/pkg/logger"
)

// Engine valida y aplica cambios de estado sobre un equipo. El UPDATE del
// equipo es atómico a nivel de fila; el evento de historial se escribe después
// y su fallo NO revierte el cambio ya confirmado (ventana de inconsistencia
// aceptada y documentada; el barrido de consistencia la detecta).
type Engine struct {
	assetRepo repository.AssetRepository
	eventRepo repository.LifecycleEventRepository
	archiver  *Archiver
	log       *logger.Logger
	now       func() time.Time
}

// NewEngine construye el motor.
func NewEngine(
	assetRepo repository.AssetRepository,
	eventRepo repository.LifecycleEventRepository,
	archiver *Archiver,
	log *logger.Logger,
) *Engine {
	return &Engine{
		assetRepo: assetRepo,
		eventRepo: eventRepo,
		archiver:  archiver,
		log:       log,
		now:       time.Now,
	}
}

// TransitionPayload campos del estado de destino. Solo se leen los campos del
// espacio de nombres del estado entrante; el resto se ignora.
type TransitionPayload struct {
	RentalClient string
	RentalSite   string
	RentalStart  *time.Time
	RentalEnd    *time.Time

	MaintenanceCompany     string
	MaintenanceSite        string
	MaintenanceArrival     *time.Time
	MaintenanceDeparture   *time.Time
	MaintenanceDescription string

	DepotNotes string
}

// TransitionInput petición de transición. FromState es el estado que el
// operador cree vigente; si no coincide con el almacenado la operación se
// bloquea con ErrStateMismatch.
type TransitionInput struct {
	AssetID   string
	FromState string
	ToState   string
	Actor     entity.Actor
	Payload   TransitionPayload
	// EventDate fecha real del hecho si se registra con retroactividad;
	// nil = timestamp de sistema.
	EventDate *time.Time
}

// TransitionResult resumen de una transición aplicada.
type TransitionResult struct {
	Asset         *entity.Asset
	FromState     string
	ToState       string
	Summary       string
	CycleArchived bool
	CycleNumber   int
}

// Transition aplica el cambio de estado:
//  1. snapshot de los campos del estado saliente (pre-limpieza)
//  2. parche de limpieza + población + location_state en un único UPDATE
//  3. evento "movement" incondicional (fallo solo se registra en log)
//  4. si el snapshot trae datos de alquiler o mantenimiento, archiva el ciclo
//
// Un fallo del UPDATE aborta todo (sin evento). Un fallo del archivo se
// propaga: la pérdida de historial de ciclos es un defecto de integridad.
func (e *Engine) Transition(ctx context.Context, input TransitionInput) (*TransitionResult, error) {
	if !input.Actor.Resolved() {
		return nil, domain.ErrMissingActor
	}
	if !entity.IsValidState(input.ToState) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidState, input.ToState)
	}

	asset, err := e.assetRepo.GetByID(ctx, input.AssetID)
	if err != nil {
		return nil, fmt.Errorf("transición: leer equipo %s: %w", input.AssetID, err)
	}
	if asset == nil {
		return nil, domain.ErrAssetNotFound
	}
	if input.FromState != "" && input.FromState != asset.LocationState {
		return nil, fmt.Errorf("%w: declarado %s, vigente %s",
			domain.ErrStateMismatch, input.FromState, asset.LocationState)
	}
	fromState := asset.LocationState

	now := e.now()
	if err := e.validateDates(input, now); err != nil {
		return nil, err
	}

	// Snapshot del estado saliente ANTES de limpiar; el archivador debe recibir
	// los valores pre-limpieza.
	snapshot := snapshotOutgoing(asset)

	patch := buildPatch(asset, input, now)
	if err := e.assetRepo.UpdateState(ctx, asset.ID, patch); err != nil {
		return nil, fmt.Errorf("transición de equipo %s: %w", asset.Code, err)
	}

	detail := composeMovementDetail(fromState, input.ToState, input.Payload)
	event := &entity.LifecycleEvent{
		AssetID:   asset.ID,
		AssetCode: asset.Code,
		Kind:      entity.EventKindMovement,
		Field:     "location_state",
		OldValue:  fromState,
		NewValue:  input.ToState,
		Detail:    detail,
		ActorID:   input.Actor.ID,
		ActorName: input.Actor.Name,
		CreatedAt: now,
		EventDate: input.EventDate,
	}
	if err := e.eventRepo.Insert(ctx, event); err != nil {
		// Estado ya confirmado: no se revierte. La inconsistencia queda visible
		// en el log y la detecta el barrido nocturno.
		e.log.Error().Err(err).
			Str("asset_code", asset.Code).
			Str("from", fromState).
			Str("to", input.ToState).
			Msg("evento de movimiento no registrado tras cambio de estado confirmado")
	}

	result := &TransitionResult{
		Asset:     asset,
		FromState: fromState,
		ToState:   input.ToState,
		Summary:   detail,
	}

	if snapshot.Populated() {
		cycleNumber, err := e.archiver.ArchiveCycle(ctx, asset.ID, asset.Code, snapshot, input.Actor)
		if err != nil {
			return nil, fmt.Errorf("archivar ciclo de equipo %s: %w", asset.Code, err)
		}
		result.CycleArchived = true
		result.CycleNumber = cycleNumber
	}
	return result, nil
}

func (e *Engine) validateDates(input TransitionInput, now time.Time) error {
	if err := domlifecycle.ValidateEventDate("event_date", input.EventDate, now); err != nil {
		return err
	}
	switch input.ToState {
	case entity.StateOnRental:
		if err := domlifecycle.ValidateRange("alquiler", input.Payload.RentalStart, input.Payload.RentalEnd, now); err != nil {
			return err
		}
	case entity.StateInMaintenance:
		if err := domlifecycle.ValidateRange("mantenimiento", input.Payload.MaintenanceArrival, input.Payload.MaintenanceDeparture, now); err != nil {
			return err
		}
	}
	return nil
}

// snapshotOutgoing captura los campos identificatorios del estado saliente si
// es un estado con ciclo (alquiler o mantenimiento).
func snapshotOutgoing(asset *entity.Asset) entity.CycleSnapshot {
	switch asset.LocationState {
	case entity.StateOnRental:
		return entity.CycleSnapshot{
			Kind:   entity.CycleKindRental,
			Client: asset.RentalClient,
			Site:   asset.RentalSite,
			Start:  asset.RentalStart,
			End:    asset.RentalEnd,
		}
	case entity.StateInMaintenance:
		return entity.CycleSnapshot{
			Kind:        entity.CycleKindMaintenance,
			Client:      asset.MaintenanceCompany,
			Site:        asset.MaintenanceSite,
			Start:       asset.MaintenanceArrival,
			End:         asset.MaintenanceDeparture,
			Description: asset.MaintenanceDescription,
		}
	}
	return entity.CycleSnapshot{}
}

// buildPatch arma el parche completo: todo campo de estado en cero salvo los
// del estado entrante. Se aplica como un único UPDATE.
func buildPatch(asset *entity.Asset, input TransitionInput, now time.Time) entity.StatePatch {
	patch := entity.StatePatch{
		LocationState:  input.ToState,
		StateChangedAt: now,
		// La disponibilidad solo la tocan depósito y alquiler.
		AvailableForRent: asset.AvailableForRent,
	}
	switch input.ToState {
	case entity.StateOnRental:
		patch.RentalClient = input.Payload.RentalClient
		patch.RentalSite = input.Payload.RentalSite
		patch.RentalStart = input.Payload.RentalStart
		patch.RentalEnd = input.Payload.RentalEnd
		patch.AvailableForRent = true
	case entity.StateInMaintenance:
		patch.MaintenanceCompany = input.Payload.MaintenanceCompany
		patch.MaintenanceSite = input.Payload.MaintenanceSite
		patch.MaintenanceArrival = input.Payload.MaintenanceArrival
		patch.MaintenanceDeparture = input.Payload.MaintenanceDeparture
		patch.MaintenanceDescription = input.Payload.MaintenanceDescription
	case entity.StateInDepot:
		patch.DepotNotes = input.Payload.DepotNotes
		patch.AvailableForRent = false
	case entity.StateAwaitingInspection:
		inspection := now
		patch.InspectionStart = &inspection
	}
	return patch
}

// composeMovementDetail compone el detalle legible del evento de movimiento a
// partir de las etiquetas de estado y los campos del estado entrante.
func composeMovementDetail(fromState, toState string, p TransitionPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Traslado de %s a %s", entity.StateLabel(fromState), entity.StateLabel(toState))

	appendField := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, ". %s: %s", label, value)
		}
	}
	appendDate := func(label string, d *time.Time) {
		if d != nil {
			fmt.Fprintf(&b, ". %s: %s", label, d.Format("2006-01-02"))
		}
	}

	switch toState {
	case entity.StateOnRental:
		appendField("Cliente", p.RentalClient)
		appendField("Obra", p.RentalSite)
		appendDate("Inicio", p.RentalStart)
		appendDate("Fin", p.RentalEnd)
	case entity.StateInMaintenance:
		appendField("Empresa", p.MaintenanceCompany)
		appendField("Taller", p.MaintenanceSite)
		appendDate("Llegada", p.MaintenanceArrival)
		appendDate("Salida", p.MaintenanceDeparture)
		appendField("Descripción", p.MaintenanceDescription)
	case entity.StateInDepot:
		appendField("Notas", p.DepotNotes)
	}
	return b.String()
}
