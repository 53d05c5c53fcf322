package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
)

// WithdrawalRepository puerto de persistencia de retiros de material.
type WithdrawalRepository interface {
	// ListPending retiros sin vínculo a reporte y no archivados, del más
	// antiguo al más reciente.
	ListPending(ctx context.Context, assetCode string) ([]*entity.MaterialWithdrawal, error)
	// ArchiveMany marca archived=true; archivar un retiro ya archivado es no-op,
	// lo que hace idempotente el reintento tras un fallo parcial.
	ArchiveMany(ctx context.Context, ids []string) error
	ListByAssetCode(ctx context.Context, assetCode string, from, to *time.Time) ([]*entity.MaterialWithdrawal, error)
}
