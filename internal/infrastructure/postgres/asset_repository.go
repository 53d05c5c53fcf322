package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetColumns = `
	id, code, location_state,
	rental_client, rental_site, rental_start, rental_end,
	maintenance_company, maintenance_site, maintenance_arrival, maintenance_departure, maintenance_description,
	depot_notes, inspection_start, available_for_rent,
	was_replaced, replaced_by_asset_id, replacement_reason,
	created_at, registered_at, state_changed_at`

// AssetRepo implementación sobre PostgreSQL (usable con pool o tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

// Create persiste el equipo recién dado de alta.
func (r *AssetRepo) Create(ctx context.Context, a *entity.Asset) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO assets (id, code, location_state, depot_notes, available_for_rent, created_at, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Code, a.LocationState, nullIfEmpty(a.DepotNotes), a.AvailableForRent,
		a.CreatedAt, a.RegisteredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCodeAlreadyExists
		}
		return fmt.Errorf("create asset: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por id; nil si no existe.
func (r *AssetRepo) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByCode obtiene un equipo por código de ancho fijo; nil si no existe.
func (r *AssetRepo) GetByCode(ctx context.Context, code string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE code = $1`
	return r.getOne(ctx, query, code)
}

func (r *AssetRepo) getOne(ctx context.Context, query string, arg any) (*entity.Asset, error) {
	a, err := scanAsset(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

// List lista equipos, opcionalmente filtrados por estado.
func (r *AssetRepo) List(ctx context.Context, state string, limit, offset int) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets`
	args := []any{}
	pos := 1
	if state != "" {
		query += fmt.Sprintf(" WHERE location_state = $%d", pos)
		args = append(args, state)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY code LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// UpdateState aplica el parche completo de estado en un único UPDATE: limpieza
// del estado saliente, población del entrante y location_state, atómico a
// nivel de fila. No hay bloqueo optimista: dos transiciones simultáneas sobre
// el mismo equipo compiten y gana la última escritura (ver DESIGN.md).
func (r *AssetRepo) UpdateState(ctx context.Context, id string, p entity.StatePatch) error {
	query := `
		UPDATE assets SET
			location_state = $2,
			rental_client = $3, rental_site = $4, rental_start = $5, rental_end = $6,
			maintenance_company = $7, maintenance_site = $8, maintenance_arrival = $9,
			maintenance_departure = $10, maintenance_description = $11,
			depot_notes = $12, inspection_start = $13,
			available_for_rent = $14, state_changed_at = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id,
		p.LocationState,
		nullIfEmpty(p.RentalClient), nullIfEmpty(p.RentalSite), p.RentalStart, p.RentalEnd,
		nullIfEmpty(p.MaintenanceCompany), nullIfEmpty(p.MaintenanceSite), p.MaintenanceArrival,
		p.MaintenanceDeparture, nullIfEmpty(p.MaintenanceDescription),
		nullIfEmpty(p.DepotNotes), p.InspectionStart,
		p.AvailableForRent, p.StateChangedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

// UpdateSubstitution estampa los vínculos de sustitución del predecesor.
// Permanente: no existe operación inversa.
func (r *AssetRepo) UpdateSubstitution(ctx context.Context, id, replacedByID, reason string) error {
	query := `
		UPDATE assets SET
			was_replaced = TRUE,
			replaced_by_asset_id = $2,
			replacement_reason = $3
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, replacedByID, nullIfEmpty(reason))
	if err != nil {
		return fmt.Errorf("update asset substitution: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

// ListStateChangedSince equipos con transición posterior a since, para el
// barrido de consistencia.
func (r *AssetRepo) ListStateChangedSince(ctx context.Context, since time.Time) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE state_changed_at >= $1 ORDER BY state_changed_at`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("list assets by state change: %w", err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	var rentalClient, rentalSite *string
	var maintCompany, maintSite, maintDescription *string
	var depotNotes, replacedBy, replacementReason *string
	err := row.Scan(
		&a.ID, &a.Code, &a.LocationState,
		&rentalClient, &rentalSite, &a.RentalStart, &a.RentalEnd,
		&maintCompany, &maintSite, &a.MaintenanceArrival, &a.MaintenanceDeparture, &maintDescription,
		&depotNotes, &a.InspectionStart, &a.AvailableForRent,
		&a.WasReplaced, &replacedBy, &replacementReason,
		&a.CreatedAt, &a.RegisteredAt, &a.StateChangedAt,
	)
	if err != nil {
		return nil, err
	}
	a.RentalClient = orEmpty(rentalClient)
	a.RentalSite = orEmpty(rentalSite)
	a.MaintenanceCompany = orEmpty(maintCompany)
	a.MaintenanceSite = orEmpty(maintSite)
	a.MaintenanceDescription = orEmpty(maintDescription)
	a.DepotNotes = orEmpty(depotNotes)
	a.ReplacedByAssetID = orEmpty(replacedBy)
	a.ReplacementReason = orEmpty(replacementReason)
	return &a, nil
}
