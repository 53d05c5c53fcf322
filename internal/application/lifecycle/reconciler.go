package lifecycle

import (
	"context"
	"fmt"

	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
	"github.com/jhoicas/Alquileres-api/pkg/logger"
)

// Resoluciones posibles para retiros pendientes. No hay selección parcial.
const (
	ResolutionKeepHistory = "keep_history" // los retiros quedan usables por reportes futuros
	ResolutionNewCycle    = "new_cycle"    // archiva todo lo pendiente, irreversible
)

// Reconciler resuelve los retiros de material sin consumir antes de que un
// equipo (re)entre en un estado con ciclo, para que no se pierdan en silencio.
type Reconciler struct {
	withdrawalRepo repository.WithdrawalRepository
	log            *logger.Logger
}

// NewReconciler construye el conciliador.
func NewReconciler(withdrawalRepo repository.WithdrawalRepository, log *logger.Logger) *Reconciler {
	return &Reconciler{withdrawalRepo: withdrawalRepo, log: log}
}

// FindPending retiros pendientes del equipo (sin reporte y no archivados), del
// más antiguo al más reciente.
func (r *Reconciler) FindPending(ctx context.Context, assetCode string) ([]*entity.MaterialWithdrawal, error) {
	list, err := r.withdrawalRepo.ListPending(ctx, assetCode)
	if err != nil {
		return nil, fmt.Errorf("retiros pendientes de %s: %w", assetCode, err)
	}
	return list, nil
}

// Resolve aplica una de las dos resoluciones totales. Devuelve cuántos retiros
// se archivaron. Un fallo parcial del lote deja archivado lo ya archivado (sin
// rollback compensatorio); reintentar es la estrategia de recuperación porque
// archivar un retiro ya archivado es no-op.
func (r *Reconciler) Resolve(ctx context.Context, assetCode, resolution string, actor entity.Actor) (int, error) {
	if !actor.Resolved() {
		return 0, domain.ErrMissingActor
	}

	switch resolution {
	case ResolutionKeepHistory:
		// Mantener historial: los pendientes quedan intactos, usables por
		// cualquier reporte futuro sin importar los ciclos transcurridos.
		return 0, nil
	case ResolutionNewCycle:
		pending, err := r.withdrawalRepo.ListPending(ctx, assetCode)
		if err != nil {
			return 0, fmt.Errorf("retiros pendientes de %s: %w", assetCode, err)
		}
		if len(pending) == 0 {
			return 0, nil
		}
		ids := make([]string, 0, len(pending))
		for _, w := range pending {
			ids = append(ids, w.ID)
		}
		if err := r.withdrawalRepo.ArchiveMany(ctx, ids); err != nil {
			return 0, fmt.Errorf("archivar retiros de %s: %w", assetCode, err)
		}
		r.log.Info().
			Str("asset_code", assetCode).
			Int("archived", len(ids)).
			Str("actor", actor.Name).
			Msg("retiros pendientes archivados por inicio de nuevo ciclo")
		return len(ids), nil
	default:
		return 0, domain.NewValidationError("resolution",
			fmt.Sprintf("resolución desconocida %q: use %s o %s", resolution, ResolutionKeepHistory, ResolutionNewCycle))
	}
}
