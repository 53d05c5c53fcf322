package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

var _ repository.LifecycleCycleRepository = (*LifecycleCycleRepo)(nil)

// LifecycleCycleRepo ciclos archivados sobre PostgreSQL.
type LifecycleCycleRepo struct {
	q Querier
}

// NewLifecycleCycleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLifecycleCycleRepository(q Querier) *LifecycleCycleRepo {
	return &LifecycleCycleRepo{q: q}
}

// MaxCycleNumber máximo cycle_number del equipo; 0 si no tiene ciclos. La
// lectura y el INSERT posterior no comparten transacción (ver DESIGN.md).
func (r *LifecycleCycleRepo) MaxCycleNumber(ctx context.Context, assetID string) (int, error) {
	query := `SELECT COALESCE(MAX(cycle_number), 0) FROM lifecycle_cycles WHERE asset_id = $1`
	var max int
	if err := r.q.QueryRow(ctx, query, assetID).Scan(&max); err != nil {
		return 0, fmt.Errorf("max cycle number: %w", err)
	}
	return max, nil
}

// Insert persiste un ciclo archivado.
func (r *LifecycleCycleRepo) Insert(ctx context.Context, c *entity.LifecycleCycle) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO lifecycle_cycles
			(id, asset_id, asset_code, kind, cycle_number, start_date, closed_at, closed_by, closed_by_name, reason, duration_days, archived_withdrawals_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.AssetID, c.AssetCode, c.Kind, c.CycleNumber,
		c.StartDate, c.ClosedAt, c.ClosedBy, c.ClosedByName,
		nullIfEmpty(c.Reason), c.DurationDays, c.ArchivedWithdrawalsCount,
	)
	if err != nil {
		return fmt.Errorf("insert lifecycle cycle: %w", err)
	}
	return nil
}

// ListByAssetID ciclos del equipo en orden de número.
func (r *LifecycleCycleRepo) ListByAssetID(ctx context.Context, assetID string) ([]*entity.LifecycleCycle, error) {
	query := `
		SELECT id, asset_id, asset_code, kind, cycle_number, start_date, closed_at, closed_by, closed_by_name, reason, duration_days, archived_withdrawals_count
		FROM lifecycle_cycles WHERE asset_id = $1 ORDER BY cycle_number`
	rows, err := r.q.Query(ctx, query, assetID)
	if err != nil {
		return nil, fmt.Errorf("list lifecycle cycles: %w", err)
	}
	defer rows.Close()
	var list []*entity.LifecycleCycle
	for rows.Next() {
		var c entity.LifecycleCycle
		var reason *string
		if err := rows.Scan(
			&c.ID, &c.AssetID, &c.AssetCode, &c.Kind, &c.CycleNumber,
			&c.StartDate, &c.ClosedAt, &c.ClosedBy, &c.ClosedByName,
			&reason, &c.DurationDays, &c.ArchivedWithdrawalsCount,
		); err != nil {
			return nil, fmt.Errorf("scan lifecycle cycle: %w", err)
		}
		c.Reason = orEmpty(reason)
		list = append(list, &c)
	}
	return list, rows.Err()
}
