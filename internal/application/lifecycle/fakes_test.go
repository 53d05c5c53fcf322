package lifecycle_test

import (
	"context"
	"time"

	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeAssetRepo struct {
	assets map[string]*entity.Asset // por ID

	updateErr       error // forzar fallo del UPDATE de estado
	substitutionErr error
	patches         []entity.StatePatch // parches aplicados, en orden
}

func newFakeAssetRepo(assets ...*entity.Asset) *fakeAssetRepo {
	r := &fakeAssetRepo{assets: make(map[string]*entity.Asset)}
	for _, a := range assets {
		r.assets[a.ID] = a
	}
	return r
}

func (r *fakeAssetRepo) Create(_ context.Context, asset *entity.Asset) error {
	r.assets[asset.ID] = asset
	return nil
}

func (r *fakeAssetRepo) GetByID(_ context.Context, id string) (*entity.Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (r *fakeAssetRepo) GetByCode(_ context.Context, code string) (*entity.Asset, error) {
	for _, a := range r.assets {
		if a.Code == code {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAssetRepo) List(_ context.Context, state string, _, _ int) ([]*entity.Asset, error) {
	var out []*entity.Asset
	for _, a := range r.assets {
		if state == "" || a.LocationState == state {
			out = append(out, a)
		}
	}
	return out, nil
}

// UpdateState aplica el parche completo igual que el UPDATE real: los campos
// ausentes del parche quedan en cero.
func (r *fakeAssetRepo) UpdateState(_ context.Context, id string, patch entity.StatePatch) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	a, ok := r.assets[id]
	if !ok {
		return domain.ErrAssetNotFound
	}
	r.patches = append(r.patches, patch)

	a.LocationState = patch.LocationState
	a.RentalClient = patch.RentalClient
	a.RentalSite = patch.RentalSite
	a.RentalStart = patch.RentalStart
	a.RentalEnd = patch.RentalEnd
	a.MaintenanceCompany = patch.MaintenanceCompany
	a.MaintenanceSite = patch.MaintenanceSite
	a.MaintenanceArrival = patch.MaintenanceArrival
	a.MaintenanceDeparture = patch.MaintenanceDeparture
	a.MaintenanceDescription = patch.MaintenanceDescription
	a.DepotNotes = patch.DepotNotes
	a.InspectionStart = patch.InspectionStart
	a.AvailableForRent = patch.AvailableForRent
	changed := patch.StateChangedAt
	a.StateChangedAt = &changed
	return nil
}

func (r *fakeAssetRepo) UpdateSubstitution(_ context.Context, id, replacedByID, reason string) error {
	if r.substitutionErr != nil {
		return r.substitutionErr
	}
	a, ok := r.assets[id]
	if !ok {
		return domain.ErrAssetNotFound
	}
	a.WasReplaced = true
	a.ReplacedByAssetID = replacedByID
	a.ReplacementReason = reason
	return nil
}

func (r *fakeAssetRepo) ListStateChangedSince(_ context.Context, since time.Time) ([]*entity.Asset, error) {
	var out []*entity.Asset
	for _, a := range r.assets {
		if a.StateChangedAt != nil && a.StateChangedAt.After(since) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	events    []*entity.LifecycleEvent
	insertErr error // forzar fallo del INSERT de eventos
}

func (r *fakeEventRepo) Insert(_ context.Context, event *entity.LifecycleEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, event)
	return nil
}

func (r *fakeEventRepo) ListByAssetCode(_ context.Context, code, kind string, from, to *time.Time, _ bool) ([]*entity.LifecycleEvent, error) {
	var out []*entity.LifecycleEvent
	for _, e := range r.events {
		if e.AssetCode != code {
			continue
		}
		if kind != "" && e.Kind != kind {
			continue
		}
		d := e.EffectiveDate()
		if from != nil && d.Before(*from) {
			continue
		}
		if to != nil && d.After(*to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEventRepo) LatestMovementDate(_ context.Context, assetID string) (*time.Time, error) {
	var latest *time.Time
	for _, e := range r.events {
		if e.AssetID != assetID || e.Kind != entity.EventKindMovement {
			continue
		}
		t := e.CreatedAt
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	return latest, nil
}

// byKind eventos de un tipo, en orden de inserción.
func (r *fakeEventRepo) byKind(kind string) []*entity.LifecycleEvent {
	var out []*entity.LifecycleEvent
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

type fakeCycleRepo struct {
	cycles    []*entity.LifecycleCycle
	maxErr    error
	insertErr error
}

func (r *fakeCycleRepo) MaxCycleNumber(_ context.Context, assetID string) (int, error) {
	if r.maxErr != nil {
		return 0, r.maxErr
	}
	max := 0
	for _, c := range r.cycles {
		if c.AssetID == assetID && c.CycleNumber > max {
			max = c.CycleNumber
		}
	}
	return max, nil
}

func (r *fakeCycleRepo) Insert(_ context.Context, cycle *entity.LifecycleCycle) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.cycles = append(r.cycles, cycle)
	return nil
}

func (r *fakeCycleRepo) ListByAssetID(_ context.Context, assetID string) ([]*entity.LifecycleCycle, error) {
	var out []*entity.LifecycleCycle
	for _, c := range r.cycles {
		if c.AssetID == assetID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeWithdrawalRepo struct {
	withdrawals []*entity.MaterialWithdrawal // por equipo, con flag Archived
	linked      map[string]bool              // IDs ya vinculados a un reporte
	archiveErr  error
}

func (r *fakeWithdrawalRepo) ListPending(_ context.Context, assetCode string) ([]*entity.MaterialWithdrawal, error) {
	var out []*entity.MaterialWithdrawal
	for _, w := range r.withdrawals {
		if w.AssetCode != assetCode || w.Archived || r.linked[w.ID] {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (r *fakeWithdrawalRepo) ArchiveMany(_ context.Context, ids []string) error {
	if r.archiveErr != nil {
		return r.archiveErr
	}
	for _, id := range ids {
		for _, w := range r.withdrawals {
			if w.ID == id {
				w.Archived = true
			}
		}
	}
	return nil
}

func (r *fakeWithdrawalRepo) ListByAssetCode(_ context.Context, assetCode string, _, _ *time.Time) ([]*entity.MaterialWithdrawal, error) {
	var out []*entity.MaterialWithdrawal
	for _, w := range r.withdrawals {
		if w.AssetCode == assetCode {
			out = append(out, w)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de construcción
// ──────────────────────────────────────────────────────────────────────────────

var testActor = entity.Actor{ID: "op-1", Name: "Laura Operadora"}

func depotAsset(id, code string) *entity.Asset {
	return &entity.Asset{
		ID:            id,
		Code:          code,
		LocationState: entity.StateInDepot,
		CreatedAt:     time.Now().Add(-24 * time.Hour),
	}
}

func rentalAsset(id, code, client, site string, start time.Time) *entity.Asset {
	s := start
	return &entity.Asset{
		ID:               id,
		Code:             code,
		LocationState:    entity.StateOnRental,
		RentalClient:     client,
		RentalSite:       site,
		RentalStart:      &s,
		AvailableForRent: true,
		CreatedAt:        time.Now().Add(-48 * time.Hour),
	}
}
