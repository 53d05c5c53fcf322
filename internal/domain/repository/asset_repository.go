package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
)

// AssetRepository define el puerto de persistencia para equipos.
type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	GetByID(ctx context.Context, id string) (*entity.Asset, error)
	GetByCode(ctx context.Context, code string) (*entity.Asset, error)
	List(ctx context.Context, state string, limit, offset int) ([]*entity.Asset, error)
	// UpdateState aplica el parche completo de estado en un único UPDATE:
	// limpieza del estado saliente + población del entrante + location_state,
	// atómico a nivel de fila.
	UpdateState(ctx context.Context, id string, patch entity.StatePatch) error
	// UpdateSubstitution estampa los vínculos de sustitución del predecesor.
	UpdateSubstitution(ctx context.Context, id, replacedByID, reason string) error
	// ListStateChangedSince equipos con transición posterior a since, para el
	// barrido de consistencia.
	ListStateChangedSince(ctx context.Context, since time.Time) ([]*entity.Asset, error)
}
