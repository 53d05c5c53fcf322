package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquileres-api/internal/application/lifecycle"
	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/pkg/logger"
)

func withdrawal(id, assetCode string, archived bool) *entity.MaterialWithdrawal {
	return &entity.MaterialWithdrawal{
		ID:          id,
		AssetCode:   assetCode,
		ProductName: "Aceite hidráulico",
		Quantity:    decimal.NewFromInt(2),
		Archived:    archived,
		CreatedAt:   time.Now().Add(-time.Hour),
	}
}

func TestFindPending_ExcluyeArchivadosYVinculados(t *testing.T) {
	repo := &fakeWithdrawalRepo{
		withdrawals: []*entity.MaterialWithdrawal{
			withdrawal("w-1", "000123", false),
			withdrawal("w-2", "000123", true),  // ya archivado
			withdrawal("w-3", "000123", false), // vinculado a reporte
			withdrawal("w-4", "000999", false), // otro equipo
		},
		linked: map[string]bool{"w-3": true},
	}
	reconciler := lifecycle.NewReconciler(repo, logger.Nop())

	pending, err := reconciler.FindPending(context.Background(), "000123")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "w-1", pending[0].ID)
}

func TestResolve_NuevoCiclo_ArchivaTodoLoPendiente(t *testing.T) {
	repo := &fakeWithdrawalRepo{
		withdrawals: []*entity.MaterialWithdrawal{
			withdrawal("w-1", "000123", false),
			withdrawal("w-2", "000123", false),
			withdrawal("w-3", "000123", true), // ya archivado, no cuenta
		},
	}
	reconciler := lifecycle.NewReconciler(repo, logger.Nop())

	archived, err := reconciler.Resolve(context.Background(), "000123", lifecycle.ResolutionNewCycle, testActor)
	require.NoError(t, err)
	assert.Equal(t, 2, archived)

	for _, w := range repo.withdrawals {
		assert.True(t, w.Archived, "retiro %s debe quedar archivado", w.ID)
	}
}

func TestResolve_NuevoCiclo_ReejecucionEsNoOp(t *testing.T) {
	// Tras un primer archivado total, repetir la resolución no encuentra nada
	// pendiente: la operación es idempotente.
	repo := &fakeWithdrawalRepo{
		withdrawals: []*entity.MaterialWithdrawal{withdrawal("w-1", "000123", false)},
	}
	reconciler := lifecycle.NewReconciler(repo, logger.Nop())
	ctx := context.Background()

	first, err := reconciler.Resolve(ctx, "000123", lifecycle.ResolutionNewCycle, testActor)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := reconciler.Resolve(ctx, "000123", lifecycle.ResolutionNewCycle, testActor)
	require.NoError(t, err)
	assert.Zero(t, second)
}

func TestResolve_MantenerHistorial_NoTocaNada(t *testing.T) {
	repo := &fakeWithdrawalRepo{
		withdrawals: []*entity.MaterialWithdrawal{withdrawal("w-1", "000123", false)},
	}
	reconciler := lifecycle.NewReconciler(repo, logger.Nop())

	archived, err := reconciler.Resolve(context.Background(), "000123", lifecycle.ResolutionKeepHistory, testActor)
	require.NoError(t, err)
	assert.Zero(t, archived)
	assert.False(t, repo.withdrawals[0].Archived,
		"mantener historial deja los retiros usables por reportes futuros")
}

func TestResolve_ResolucionDesconocida(t *testing.T) {
	reconciler := lifecycle.NewReconciler(&fakeWithdrawalRepo{}, logger.Nop())

	_, err := reconciler.Resolve(context.Background(), "000123", "archivar_algunos", testActor)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err), "no existe la selección parcial")
}

func TestResolve_SinActor_Bloqueada(t *testing.T) {
	reconciler := lifecycle.NewReconciler(&fakeWithdrawalRepo{}, logger.Nop())

	_, err := reconciler.Resolve(context.Background(), "000123", lifecycle.ResolutionNewCycle, entity.Actor{})
	require.ErrorIs(t, err, domain.ErrMissingActor)
}
