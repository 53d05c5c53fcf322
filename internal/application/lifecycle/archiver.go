package lifecycle

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
	"github.com/jhoicas/Alquileres-api/pkg/logger"
)

// Archiver congela la ocupación de alquiler/mantenimiento que se acaba de
// abandonar en un registro inmutable de ciclo.
//
// La asignación de cycle_number es leer-máximo-e-insertar sin transacción: dos
// archivados concurrentes del mismo equipo pueden colisionar. Aceptado para
// flujos a ritmo humano; ver DESIGN.md.
type Archiver struct {
	cycleRepo repository.LifecycleCycleRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewArchiver construye el archivador.
func NewArchiver(cycleRepo repository.LifecycleCycleRepository, log *logger.Logger) *Archiver {
	return &Archiver{cycleRepo: cycleRepo, log: log, now: time.Now}
}

// ArchiveCycle archiva el snapshot como siguiente ciclo del equipo y devuelve
// el número asignado. Snapshot sin campos identificatorios: no-op (0, nil) con
// aviso en log; no se crean entradas de historial vacías. Cualquier fallo de
// persistencia se propaga: perder historial de ciclos es un defecto de
// integridad, nunca se silencia.
func (a *Archiver) ArchiveCycle(ctx context.Context, assetID, assetCode string, snapshot entity.CycleSnapshot, actor entity.Actor) (int, error) {
	if !snapshot.Populated() {
		a.log.Warn().
			Str("asset_code", assetCode).
			Str("kind", snapshot.Kind).
			Msg("archivo de ciclo omitido: snapshot sin datos identificatorios")
		return 0, nil
	}

	maxNumber, err := a.cycleRepo.MaxCycleNumber(ctx, assetID)
	if err != nil {
		return 0, fmt.Errorf("leer último ciclo de %s: %w", assetCode, err)
	}
	next := maxNumber + 1

	now := a.now()
	start := now
	if snapshot.Start != nil {
		start = *snapshot.Start
	}

	cycle := &entity.LifecycleCycle{
		ID:           uuid.New().String(),
		AssetID:      assetID,
		AssetCode:    assetCode,
		Kind:         snapshot.Kind,
		CycleNumber:  next,
		StartDate:    start,
		ClosedAt:     now,
		ClosedBy:     actor.ID,
		ClosedByName: actor.Name,
		Reason:       composeCycleReason(snapshot),
		DurationDays: wholeDayDuration(snapshot),
		// Siempre cero en el comportamiento observado; ver DESIGN.md.
		ArchivedWithdrawalsCount: 0,
	}
	if err := a.cycleRepo.Insert(ctx, cycle); err != nil {
		return 0, fmt.Errorf("insertar ciclo %d de %s: %w", next, assetCode, err)
	}
	return next, nil
}

// wholeDayDuration días enteros de mantenimiento: ceil((salida−llegada)/24h)
// cuando ambas fechas existen, 0 en cualquier otro caso.
func wholeDayDuration(s entity.CycleSnapshot) int {
	if s.Kind != entity.CycleKindMaintenance || s.Start == nil || s.End == nil {
		return 0
	}
	d := s.End.Sub(*s.Start)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// composeCycleReason oración con todo el contexto disponible del ciclo cerrado.
func composeCycleReason(s entity.CycleSnapshot) string {
	var parts []string
	if s.Kind == entity.CycleKindMaintenance {
		parts = append(parts, "Ciclo de mantenimiento cerrado")
		if s.Client != "" {
			parts = append(parts, "empresa "+s.Client)
		}
		if s.Site != "" {
			parts = append(parts, "taller "+s.Site)
		}
	} else {
		parts = append(parts, "Ciclo de alquiler cerrado")
		if s.Client != "" {
			parts = append(parts, "cliente "+s.Client)
		}
		if s.Site != "" {
			parts = append(parts, "obra "+s.Site)
		}
	}
	if s.Start != nil {
		parts = append(parts, "inicio "+s.Start.Format("2006-01-02"))
	}
	if s.End != nil {
		parts = append(parts, "fin "+s.End.Format("2006-01-02"))
	}
	if s.Description != "" {
		parts = append(parts, s.Description)
	}
	return strings.Join(parts, ", ")
}
