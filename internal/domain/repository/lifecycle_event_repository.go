package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
)

// LifecycleEventRepository puerto de persistencia del historial append-only.
// No hay update ni delete: los eventos son inmutables una vez escritos.
type LifecycleEventRepository interface {
	Insert(ctx context.Context, event *entity.LifecycleEvent) error
	// ListByAssetCode eventos de un equipo; ascending controla el orden
	// cronológico. from/to acotan por fecha efectiva (nil = sin límite).
	ListByAssetCode(ctx context.Context, code string, kind string, from, to *time.Time, ascending bool) ([]*entity.LifecycleEvent, error)
	// LatestMovementDate fecha del último evento de movimiento del equipo;
	// nil si no hay ninguno. Lo usa el barrido de consistencia.
	LatestMovementDate(ctx context.Context, assetID string) (*time.Time, error)
}
