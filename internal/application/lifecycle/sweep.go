package lifecycle

import (
	"context"
	"time"

	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
	"github.com/jhoicas/Alquileres-api/pkg/logger"
)

// Sweep barrido de consistencia: el cambio de estado y su evento de historial
// no comparten transacción, así que un fallo tras el UPDATE deja un cambio
// huérfano (sin evento). El barrido los detecta y los deja visibles en el log;
// no repara nada por sí mismo.
type Sweep struct {
	assetRepo repository.AssetRepository
	eventRepo repository.LifecycleEventRepository
	log       *logger.Logger
	window    time.Duration
	now       func() time.Time
}

// NewSweep construye el barrido. window acota cuántas transiciones recientes
// se revisan en cada pasada.
func NewSweep(
	assetRepo repository.AssetRepository,
	eventRepo repository.LifecycleEventRepository,
	log *logger.Logger,
	window time.Duration,
) *Sweep {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Sweep{
		assetRepo: assetRepo,
		eventRepo: eventRepo,
		log:       log,
		window:    window,
		now:       time.Now,
	}
}

// tolerancia entre el UPDATE del equipo y el INSERT del evento en una
// transición sana.
const sweepTolerance = 5 * time.Second

// Run revisa los equipos con transiciones dentro de la ventana y devuelve
// cuántos cambios de estado huérfanos encontró.
func (s *Sweep) Run(ctx context.Context) (int, error) {
	since := s.now().Add(-s.window)
	assets, err := s.assetRepo.ListStateChangedSince(ctx, since)
	if err != nil {
		return 0, err
	}

	orphans := 0
	for _, asset := range assets {
		if asset.StateChangedAt == nil {
			continue
		}
		latest, err := s.eventRepo.LatestMovementDate(ctx, asset.ID)
		if err != nil {
			s.log.Error().Err(err).
				Str("asset_code", asset.Code).
				Msg("barrido: no se pudo leer el último evento de movimiento")
			continue
		}
		if latest == nil || latest.Before(asset.StateChangedAt.Add(-sweepTolerance)) {
			orphans++
			s.log.Warn().
				Str("asset_code", asset.Code).
				Str("state", asset.LocationState).
				Time("state_changed_at", *asset.StateChangedAt).
				Msg("cambio de estado sin evento de movimiento asociado")
		}
	}

	s.log.Info().
		Int("checked", len(assets)).
		Int("orphans", orphans).
		Msg("barrido de consistencia completado")
	return orphans, nil
}
