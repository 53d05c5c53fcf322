package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
)

// ReportRepository fuente de lectura de reportes de servicio por código de equipo.
type ReportRepository interface {
	ListByEquipmentCode(ctx context.Context, code string, from, to *time.Time) ([]*entity.Report, error)
}

// MaintenanceRepository fuente de lectura de anotaciones de mantenimiento,
// consultadas por el id interno del equipo.
type MaintenanceRepository interface {
	ListByAssetID(ctx context.Context, assetID string, from, to *time.Time) ([]*entity.MaintenanceRecord, error)
}
