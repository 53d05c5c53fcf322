package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

// MaintenanceRepo fuente de lectura de anotaciones de mantenimiento.
type MaintenanceRepo struct {
	q Querier
}

// NewMaintenanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceRepository(q Querier) *MaintenanceRepo {
	return &MaintenanceRepo{q: q}
}

// ListByAssetID anotaciones de un equipo por su id interno, acotadas por fecha
// de llegada (fallback: creación).
func (r *MaintenanceRepo) ListByAssetID(ctx context.Context, assetID string, from, to *time.Time) ([]*entity.MaintenanceRecord, error) {
	query := `
		SELECT id, asset_id, company, site, arrival, departure, description, created_at, created_by
		FROM maintenance_records WHERE asset_id = $1`
	args := []any{assetID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND COALESCE(arrival, created_at) >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND COALESCE(arrival, created_at) <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY COALESCE(arrival, created_at) DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list maintenance records: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaintenanceRecord
	for rows.Next() {
		var m entity.MaintenanceRecord
		var company, site, description, createdBy *string
		if err := rows.Scan(&m.ID, &m.AssetID, &company, &site, &m.Arrival, &m.Departure,
			&description, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan maintenance record: %w", err)
		}
		m.Company = orEmpty(company)
		m.Site = orEmpty(site)
		m.Description = orEmpty(description)
		m.CreatedBy = orEmpty(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}
