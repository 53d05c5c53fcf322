package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

var _ repository.LifecycleEventRepository = (*LifecycleEventRepo)(nil)

// LifecycleEventRepo historial append-only sobre PostgreSQL. Solo INSERT y
// SELECT: los eventos no se actualizan ni se borran.
type LifecycleEventRepo struct {
	q Querier
}

// NewLifecycleEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLifecycleEventRepository(q Querier) *LifecycleEventRepo {
	return &LifecycleEventRepo{q: q}
}

// Insert persiste un evento de historial.
func (r *LifecycleEventRepo) Insert(ctx context.Context, e *entity.LifecycleEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO lifecycle_events
			(id, asset_id, asset_code, kind, field, old_value, new_value, detail, actor_id, actor_name, created_at, event_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.AssetID, e.AssetCode, e.Kind,
		nullIfEmpty(e.Field), nullIfEmpty(e.OldValue), nullIfEmpty(e.NewValue), nullIfEmpty(e.Detail),
		e.ActorID, e.ActorName, e.CreatedAt, e.EventDate,
	)
	if err != nil {
		return fmt.Errorf("insert lifecycle event: %w", err)
	}
	return nil
}

// ListByAssetCode eventos de un equipo acotados por fecha efectiva
// (COALESCE(event_date, created_at)); kind vacío = todos los tipos.
func (r *LifecycleEventRepo) ListByAssetCode(ctx context.Context, code, kind string, from, to *time.Time, ascending bool) ([]*entity.LifecycleEvent, error) {
	query := `
		SELECT id, asset_id, asset_code, kind, field, old_value, new_value, detail, actor_id, actor_name, created_at, event_date
		FROM lifecycle_events WHERE asset_code = $1`
	args := []any{code}
	pos := 2
	if kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, kind)
		pos++
	}
	if from != nil {
		query += fmt.Sprintf(" AND COALESCE(event_date, created_at) >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND COALESCE(event_date, created_at) <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	if ascending {
		query += " ORDER BY COALESCE(event_date, created_at) ASC"
	} else {
		query += " ORDER BY COALESCE(event_date, created_at) DESC"
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lifecycle events: %w", err)
	}
	defer rows.Close()
	var list []*entity.LifecycleEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lifecycle event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// LatestMovementDate fecha de sistema del último evento de movimiento del
// equipo; nil si no tiene ninguno.
func (r *LifecycleEventRepo) LatestMovementDate(ctx context.Context, assetID string) (*time.Time, error) {
	query := `
		SELECT created_at FROM lifecycle_events
		WHERE asset_id = $1 AND kind = $2
		ORDER BY created_at DESC LIMIT 1`
	var d time.Time
	err := r.q.QueryRow(ctx, query, assetID, entity.EventKindMovement).Scan(&d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest movement date: %w", err)
	}
	return &d, nil
}

func scanEvent(row pgx.Row) (*entity.LifecycleEvent, error) {
	var e entity.LifecycleEvent
	var field, oldValue, newValue, detail *string
	err := row.Scan(
		&e.ID, &e.AssetID, &e.AssetCode, &e.Kind,
		&field, &oldValue, &newValue, &detail,
		&e.ActorID, &e.ActorName, &e.CreatedAt, &e.EventDate,
	)
	if err != nil {
		return nil, err
	}
	e.Field = orEmpty(field)
	e.OldValue = orEmpty(oldValue)
	e.NewValue = orEmpty(newValue)
	e.Detail = orEmpty(detail)
	return &e, nil
}
