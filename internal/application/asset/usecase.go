// Package asset contiene los casos de uso de alta y consulta de equipos.
package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	domlifecycle "github.com/jhoicas/Alquileres-api/internal/domain/lifecycle"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

// UseCase alta y consulta de equipos. Un equipo nace en depósito con su evento
// de registro; ambas escrituras comparten transacción.
type UseCase struct {
	txRunner  TxRunner
	assetRepo repository.AssetRepository
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, assetRepo repository.AssetRepository) *UseCase {
	return &UseCase{txRunner: txRunner, assetRepo: assetRepo, now: time.Now}
}

// RegisterInput alta de un equipo. RegisteredAt permite fecha efectiva
// retroactiva, nunca futura.
type RegisterInput struct {
	Code         string
	DepotNotes   string
	RegisteredAt *time.Time
	Actor        entity.Actor
}

// Register valida y normaliza el código, verifica unicidad, y crea el equipo
// en depósito junto con su evento de registro en una sola transacción.
func (uc *UseCase) Register(ctx context.Context, input RegisterInput) (*entity.Asset, error) {
	if !input.Actor.Resolved() {
		return nil, domain.ErrMissingActor
	}
	code, err := entity.NormalizeCode(input.Code)
	if err != nil {
		return nil, domain.NewValidationError("code", err.Error())
	}
	now := uc.now()
	if err := domlifecycle.ValidateEventDate("registered_at", input.RegisteredAt, now); err != nil {
		return nil, err
	}

	existing, err := uc.assetRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("alta de equipo %s: %w", code, err)
	}
	if existing != nil {
		return nil, domain.ErrCodeAlreadyExists
	}

	a := &entity.Asset{
		ID:            uuid.New().String(),
		Code:          code,
		LocationState: entity.StateInDepot,
		DepotNotes:    input.DepotNotes,
		CreatedAt:     now,
		RegisteredAt:  input.RegisteredAt,
	}

	err = uc.txRunner.Run(ctx, func(
		assetRepo repository.AssetRepository,
		eventRepo repository.LifecycleEventRepository,
	) error {
		if err := assetRepo.Create(ctx, a); err != nil {
			return err
		}
		return eventRepo.Insert(ctx, &entity.LifecycleEvent{
			AssetID:   a.ID,
			AssetCode: a.Code,
			Kind:      entity.EventKindRegistration,
			NewValue:  entity.StateInDepot,
			Detail:    fmt.Sprintf("Alta del equipo %s en depósito", a.Code),
			ActorID:   input.Actor.ID,
			ActorName: input.Actor.Name,
			CreatedAt: now,
			EventDate: input.RegisteredAt,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("alta de equipo %s: %w", code, err)
	}
	return a, nil
}

// GetByID devuelve el equipo o ErrAssetNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	a, err := uc.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAssetNotFound
	}
	return a, nil
}

// GetByCode devuelve el equipo por su código normalizado o ErrAssetNotFound.
func (uc *UseCase) GetByCode(ctx context.Context, code string) (*entity.Asset, error) {
	normalized, err := entity.NormalizeCode(code)
	if err != nil {
		return nil, domain.NewValidationError("code", err.Error())
	}
	a, err := uc.assetRepo.GetByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAssetNotFound
	}
	return a, nil
}

// List lista equipos, opcionalmente filtrados por estado.
func (uc *UseCase) List(ctx context.Context, state string, limit, offset int) ([]*entity.Asset, error) {
	if state != "" && !entity.IsValidState(state) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidState, state)
	}
	return uc.assetRepo.List(ctx, state, limit, offset)
}
