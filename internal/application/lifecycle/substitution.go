package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
	"github.com/jhoicas/Alquileres-api/pkg/logger"
)

// SubstitutionCoordinator envuelve al motor con la semántica de sustitución:
// cuando el operador marca un traslado a revisión como sustitución, el sucesor
// hereda por copia de valor el contexto cliente/obra del predecesor y ambos
// equipos quedan enlazados de forma permanente (sin deshacer; solo notas
// correctivas hacia adelante).
type SubstitutionCoordinator struct {
	engine    *Engine
	assetRepo repository.AssetRepository
	eventRepo repository.LifecycleEventRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewSubstitutionCoordinator construye el coordinador.
func NewSubstitutionCoordinator(
	engine *Engine,
	assetRepo repository.AssetRepository,
	eventRepo repository.LifecycleEventRepository,
	log *logger.Logger,
) *SubstitutionCoordinator {
	return &SubstitutionCoordinator{
		engine:    engine,
		assetRepo: assetRepo,
		eventRepo: eventRepo,
		log:       log,
		now:       time.Now,
	}
}

// SubstitutionInput petición de sustitución.
type SubstitutionInput struct {
	PredecessorID string
	SuccessorCode string
	Reason        string
	Actor         entity.Actor
	EventDate     *time.Time
}

// SubstitutionResult resumen de la sustitución aplicada.
type SubstitutionResult struct {
	PredecessorCode string
	SuccessorCode   string
	InheritedClient string
	InheritedSite   string
}

// Move traslado ordinario (isSubstitution=false): delega en el motor sin tocar
// los campos de sustitución.
func (c *SubstitutionCoordinator) Move(ctx context.Context, input TransitionInput) (*TransitionResult, error) {
	return c.engine.Transition(ctx, input)
}

// Substitute ejecuta la sustitución:
//  1. el predecesor pasa a pendiente de revisión vía el motor (archiva su ciclo)
//  2. se estampan was_replaced / replaced_by_asset_id / replacement_reason
//  3. el sucesor entra en alquiler heredando cliente/obra por copia de valor
//  4. ambos equipos reciben eventos "substitution" enlazados
func (c *SubstitutionCoordinator) Substitute(ctx context.Context, input SubstitutionInput) (*SubstitutionResult, error) {
	if !input.Actor.Resolved() {
		return nil, domain.ErrMissingActor
	}
	if input.SuccessorCode == "" {
		return nil, domain.NewValidationError("successor_code", "la sustitución requiere el código del equipo sucesor")
	}

	predecessor, err := c.assetRepo.GetByID(ctx, input.PredecessorID)
	if err != nil {
		return nil, fmt.Errorf("sustitución: leer predecesor %s: %w", input.PredecessorID, err)
	}
	if predecessor == nil {
		return nil, domain.ErrAssetNotFound
	}

	successor, err := c.assetRepo.GetByCode(ctx, input.SuccessorCode)
	if err != nil {
		return nil, fmt.Errorf("sustitución: leer sucesor %s: %w", input.SuccessorCode, err)
	}
	if successor == nil {
		return nil, fmt.Errorf("%w: sucesor %s", domain.ErrAssetNotFound, input.SuccessorCode)
	}
	if successor.ID == predecessor.ID {
		return nil, domain.NewValidationError("successor_code", "un equipo no puede sustituirse a sí mismo")
	}

	// Contexto cliente/obra del predecesor, copiado por valor ANTES de que la
	// transición limpie sus campos.
	client, site := predecessor.RentalClient, predecessor.RentalSite
	if client == "" && site == "" {
		client, site = predecessor.MaintenanceCompany, predecessor.MaintenanceSite
	}
	rentalStart := c.now()

	if _, err := c.engine.Transition(ctx, TransitionInput{
		AssetID:   predecessor.ID,
		FromState: predecessor.LocationState,
		ToState:   entity.StateAwaitingInspection,
		Actor:     input.Actor,
		EventDate: input.EventDate,
	}); err != nil {
		return nil, err
	}

	if err := c.assetRepo.UpdateSubstitution(ctx, predecessor.ID, successor.ID, input.Reason); err != nil {
		return nil, fmt.Errorf("sustitución: estampar vínculos en %s: %w", predecessor.Code, err)
	}

	if _, err := c.engine.Transition(ctx, TransitionInput{
		AssetID:   successor.ID,
		FromState: successor.LocationState,
		ToState:   entity.StateOnRental,
		Actor:     input.Actor,
		EventDate: input.EventDate,
		Payload: TransitionPayload{
			RentalClient: client,
			RentalSite:   site,
			RentalStart:  &rentalStart,
		},
	}); err != nil {
		return nil, err
	}

	c.appendSubstitutionEvent(ctx, predecessor, "replaced_by_asset_id", successor.ID,
		fmt.Sprintf("Sustituido por el equipo %s. Motivo: %s", successor.Code, input.Reason), input.Actor, input.EventDate)
	c.appendSubstitutionEvent(ctx, successor, "rental_client", client,
		fmt.Sprintf("Ingresa como sustituto del equipo %s", predecessor.Code), input.Actor, input.EventDate)

	return &SubstitutionResult{
		PredecessorCode: predecessor.Code,
		SuccessorCode:   successor.Code,
		InheritedClient: client,
		InheritedSite:   site,
	}, nil
}

func (c *SubstitutionCoordinator) appendSubstitutionEvent(ctx context.Context, asset *entity.Asset, field, newValue, detail string, actor entity.Actor, eventDate *time.Time) {
	event := &entity.LifecycleEvent{
		AssetID:   asset.ID,
		AssetCode: asset.Code,
		Kind:      entity.EventKindSubstitution,
		Field:     field,
		NewValue:  newValue,
		Detail:    detail,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		CreatedAt: c.now(),
		EventDate: eventDate,
	}
	if err := c.eventRepo.Insert(ctx, event); err != nil {
		c.log.Error().Err(err).
			Str("asset_code", asset.Code).
			Msg("evento de sustitución no registrado")
	}
}
