// Package history contiene el caso de uso de historial unificado: fusión de
// solo lectura de las cuatro fuentes de eventos de un equipo en un único feed
// ordenado.
package history

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

// UseCase construye el historial unificado de un equipo.
//
// Cuatro consultas independientes en paralelo:
//  1. retiros de material     (por código)
//  2. reportes de servicio    (por código)
//  3. mantenimientos          (por id interno del equipo)
//  4. eventos de movimiento   (por código)
//
// Cada fuente está aislada: si una falla se devuelve lo que sí respondió más
// un indicador de error por fuente. Sin caché; se recalcula en cada llamada.
type UseCase struct {
	assetRepo       repository.AssetRepository
	withdrawalRepo  repository.WithdrawalRepository
	reportRepo      repository.ReportRepository
	maintenanceRepo repository.MaintenanceRepository
	eventRepo       repository.LifecycleEventRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	assetRepo repository.AssetRepository,
	withdrawalRepo repository.WithdrawalRepository,
	reportRepo repository.ReportRepository,
	maintenanceRepo repository.MaintenanceRepository,
	eventRepo repository.LifecycleEventRepository,
) *UseCase {
	return &UseCase{
		assetRepo:       assetRepo,
		withdrawalRepo:  withdrawalRepo,
		reportRepo:      reportRepo,
		maintenanceRepo: maintenanceRepo,
		eventRepo:       eventRepo,
	}
}

// Filter acota el historial. From/To son inclusivos; Types vacío = todos.
type Filter struct {
	From  *time.Time
	To    *time.Time
	Types []string
}

// Result eventos fusionados más el error de cada fuente que falló.
type Result struct {
	Events       []entity.UnifiedHistoryEvent
	SourceErrors map[string]string
}

type sourceResult struct {
	source string
	events []entity.UnifiedHistoryEvent
	err    error
}

// GetHistory emite las cuatro consultas en paralelo, mapea cada fuente a la
// forma común, aplica un filtro de fechas defensivo (las fuentes usan campos
// de fecha con formas distintas) y ordena descendente. Ansioso y sin paginar:
// el llamador debe acotar el rango en historiales grandes.
func (uc *UseCase) GetHistory(ctx context.Context, assetCode string, filter Filter) (*Result, error) {
	ch := make(chan sourceResult, 4)

	go func() {
		list, err := uc.withdrawalRepo.ListByAssetCode(ctx, assetCode, filter.From, filter.To)
		ch <- sourceResult{source: entity.HistoryTypeWithdrawal, events: mapWithdrawals(list), err: err}
	}()
	go func() {
		list, err := uc.reportRepo.ListByEquipmentCode(ctx, assetCode, filter.From, filter.To)
		ch <- sourceResult{source: entity.HistoryTypeReport, events: mapReports(list), err: err}
	}()
	go func() {
		// Los mantenimientos se consultan por id interno; resolverlo es parte
		// de esta fuente para que su fallo no arrastre a las demás.
		asset, err := uc.assetRepo.GetByCode(ctx, assetCode)
		if err != nil {
			ch <- sourceResult{source: entity.HistoryTypeMaintenance, err: err}
			return
		}
		if asset == nil {
			ch <- sourceResult{source: entity.HistoryTypeMaintenance, err: fmt.Errorf("equipo %s no encontrado", assetCode)}
			return
		}
		list, err := uc.maintenanceRepo.ListByAssetID(ctx, asset.ID, filter.From, filter.To)
		ch <- sourceResult{source: entity.HistoryTypeMaintenance, events: mapMaintenances(list), err: err}
	}()
	go func() {
		list, err := uc.eventRepo.ListByAssetCode(ctx, assetCode, entity.EventKindMovement, filter.From, filter.To, false)
		ch <- sourceResult{source: entity.HistoryTypeMovement, events: mapMovements(list), err: err}
	}()

	result := &Result{SourceErrors: map[string]string{}}
	wanted := typeSet(filter.Types)
	for i := 0; i < 4; i++ {
		r := <-ch
		if r.err != nil {
			result.SourceErrors[r.source] = r.err.Error()
			continue
		}
		if wanted != nil && !wanted[r.source] {
			continue
		}
		for _, ev := range r.events {
			if inRange(ev.Date, filter.From, filter.To) {
				result.Events = append(result.Events, ev)
			}
		}
	}

	sortEventsDesc(result.Events)
	if len(result.SourceErrors) == 0 {
		result.SourceErrors = nil
	}
	return result, nil
}

func typeSet(types []string) map[string]bool {
	if len(types) == 0 {
		return nil
	}
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[strings.TrimSpace(t)] = true
	}
	return set
}

// inRange filtro defensivo inclusivo [from, to].
func inRange(d time.Time, from, to *time.Time) bool {
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}

func sortEventsDesc(events []entity.UnifiedHistoryEvent) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
}

func mapWithdrawals(list []*entity.MaterialWithdrawal) []entity.UnifiedHistoryEvent {
	events := make([]entity.UnifiedHistoryEvent, 0, len(list))
	for _, w := range list {
		events = append(events, entity.UnifiedHistoryEvent{
			ID:          w.ID,
			Date:        w.CreatedAt,
			Type:        entity.HistoryTypeWithdrawal,
			Title:       "Retiro de material",
			Description: fmt.Sprintf("%s x%s", w.ProductName, w.Quantity.String()),
			Detail: map[string]string{
				"reason":  w.Reason,
				"site":    w.Site,
				"company": w.Company,
			},
			User: w.CreatedBy,
		})
	}
	return events
}

func mapReports(list []*entity.Report) []entity.UnifiedHistoryEvent {
	events := make([]entity.UnifiedHistoryEvent, 0, len(list))
	for _, r := range list {
		events = append(events, entity.UnifiedHistoryEvent{
			ID:          r.ID,
			Date:        r.Date,
			Type:        entity.HistoryTypeReport,
			Title:       "Reporte de servicio",
			Description: r.Description,
			Detail:      map[string]string{"items": fmt.Sprintf("%d", len(r.Items))},
			User:        r.CreatedByName,
		})
	}
	return events
}

func mapMaintenances(list []*entity.MaintenanceRecord) []entity.UnifiedHistoryEvent {
	events := make([]entity.UnifiedHistoryEvent, 0, len(list))
	for _, m := range list {
		events = append(events, entity.UnifiedHistoryEvent{
			ID:          m.ID,
			Date:        m.EffectiveDate(),
			Type:        entity.HistoryTypeMaintenance,
			Title:       "Mantenimiento",
			Description: m.Description,
			Detail: map[string]string{
				"company": m.Company,
				"site":    m.Site,
			},
			User: m.CreatedBy,
		})
	}
	return events
}

func mapMovements(list []*entity.LifecycleEvent) []entity.UnifiedHistoryEvent {
	events := make([]entity.UnifiedHistoryEvent, 0, len(list))
	for _, e := range list {
		events = append(events, entity.UnifiedHistoryEvent{
			ID:          e.ID,
			Date:        e.EffectiveDate(),
			Type:        entity.HistoryTypeMovement,
			Title:       fmt.Sprintf("Movimiento a %s", entity.StateLabel(e.NewValue)),
			Description: e.Detail,
			Detail: map[string]string{
				"from": e.OldValue,
				"to":   e.NewValue,
			},
			User: e.ActorName,
		})
	}
	return events
}
