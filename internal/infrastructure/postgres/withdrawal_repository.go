package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)

const withdrawalColumns = `
	id, asset_code, product_id, product_name, quantity, reason, site, company,
	cycle_marker, archived, created_at, created_by`

// WithdrawalRepo retiros de material sobre PostgreSQL.
type WithdrawalRepo struct {
	q Querier
}

// NewWithdrawalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWithdrawalRepository(q Querier) *WithdrawalRepo {
	return &WithdrawalRepo{q: q}
}

// ListPending retiros sin vínculo a reporte y no archivados, del más antiguo
// al más reciente.
func (r *WithdrawalRepo) ListPending(ctx context.Context, assetCode string) ([]*entity.MaterialWithdrawal, error) {
	query := `
		SELECT ` + withdrawalColumns + `
		FROM material_withdrawals w
		WHERE w.asset_code = $1
		  AND w.archived = FALSE
		  AND NOT EXISTS (
			SELECT 1 FROM report_items ri WHERE ri.withdrawal_id = w.id
		  )
		ORDER BY w.created_at ASC`
	return r.list(ctx, query, assetCode)
}

// ArchiveMany marca archived=true. Archivar un retiro ya archivado es no-op:
// el reintento tras un fallo parcial del lote es seguro.
func (r *WithdrawalRepo) ArchiveMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE material_withdrawals SET archived = TRUE WHERE id = ANY($1)`
	if _, err := r.q.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("archive withdrawals: %w", err)
	}
	return nil
}

// ListByAssetCode retiros de un equipo en un rango de fechas.
func (r *WithdrawalRepo) ListByAssetCode(ctx context.Context, assetCode string, from, to *time.Time) ([]*entity.MaterialWithdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM material_withdrawals w WHERE w.asset_code = $1`
	args := []any{assetCode}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND w.created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND w.created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY w.created_at DESC"
	return r.list(ctx, query, args...)
}

func (r *WithdrawalRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MaterialWithdrawal, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaterialWithdrawal
	for rows.Next() {
		var w entity.MaterialWithdrawal
		var reason, site, company, createdBy *string
		if err := rows.Scan(
			&w.ID, &w.AssetCode, &w.ProductID, &w.ProductName, &w.Quantity,
			&reason, &site, &company, &w.CycleMarker, &w.Archived, &w.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan withdrawal: %w", err)
		}
		w.Reason = orEmpty(reason)
		w.Site = orEmpty(site)
		w.Company = orEmpty(company)
		w.CreatedBy = orEmpty(createdBy)
		list = append(list, &w)
	}
	return list, rows.Err()
}
