package repository

import (
	"context"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
)

// LifecycleCycleRepository puerto de persistencia de ciclos archivados.
type LifecycleCycleRepository interface {
	// MaxCycleNumber máximo cycle_number del equipo; 0 si no tiene ciclos.
	MaxCycleNumber(ctx context.Context, assetID string) (int, error)
	Insert(ctx context.Context, cycle *entity.LifecycleCycle) error
	ListByAssetID(ctx context.Context, assetID string) ([]*entity.LifecycleCycle, error)
}
