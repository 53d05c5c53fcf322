package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo fuente de lectura de reportes de servicio sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// ListByEquipmentCode reportes de un equipo con sus partes consumidas.
func (r *ReportRepo) ListByEquipmentCode(ctx context.Context, code string, from, to *time.Time) ([]*entity.Report, error) {
	query := `
		SELECT id, equipment_code, date, description, created_by, created_by_name, created_at
		FROM reports WHERE equipment_code = $1`
	args := []any{code}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY date DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()
	var list []*entity.Report
	for rows.Next() {
		var rep entity.Report
		var description, createdByName *string
		if err := rows.Scan(&rep.ID, &rep.EquipmentCode, &rep.Date, &description,
			&rep.CreatedBy, &createdByName, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		rep.Description = orEmpty(description)
		rep.CreatedByName = orEmpty(createdByName)
		list = append(list, &rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, rep := range list {
		items, err := r.listItems(ctx, rep.ID)
		if err != nil {
			return nil, err
		}
		rep.Items = items
	}
	return list, nil
}

func (r *ReportRepo) listItems(ctx context.Context, reportID string) ([]entity.ReportItem, error) {
	query := `
		SELECT id, report_id, product_name, quantity, withdrawal_id
		FROM report_items WHERE report_id = $1`
	rows, err := r.q.Query(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("list report items: %w", err)
	}
	defer rows.Close()
	var items []entity.ReportItem
	for rows.Next() {
		var it entity.ReportItem
		if err := rows.Scan(&it.ID, &it.ReportID, &it.ProductName, &it.Quantity, &it.WithdrawalID); err != nil {
			return nil, fmt.Errorf("scan report item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
