package asset

import (
	"context"

	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El alta de un equipo y su evento de registro
// se confirman juntos o no se confirma ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		assetRepo repository.AssetRepository,
		eventRepo repository.LifecycleEventRepository,
	) error) error
}
