package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
)

func TestNormalizeCode(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "relleno a seis dígitos", in: "123", want: "000123"},
		{name: "ya normalizado", in: "000123", want: "000123"},
		{name: "un solo dígito", in: "7", want: "000007"},
		{name: "con espacios alrededor", in: "  42  ", want: "000042"},
		{name: "alfanumérico rechazado", in: "EQ-12", wantErr: true},
		{name: "vacío rechazado", in: "", wantErr: true},
		{name: "más de seis dígitos rechazado", in: "1234567", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := entity.NormalizeCode(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestActiveState_CoincideConLosCamposPoblados(t *testing.T) {
	now := time.Now()

	rental := &entity.Asset{RentalClient: "ACME"}
	assert.Equal(t, entity.StateOnRental, rental.ActiveState())

	maintenance := &entity.Asset{MaintenanceArrival: &now}
	assert.Equal(t, entity.StateInMaintenance, maintenance.ActiveState())

	inspection := &entity.Asset{InspectionStart: &now}
	assert.Equal(t, entity.StateAwaitingInspection, inspection.ActiveState())

	depot := &entity.Asset{DepotNotes: "completo"}
	assert.Equal(t, entity.StateInDepot, depot.ActiveState(), "sin campos de ciclo ni revisión, el equipo está en depósito")
}

func TestCycleSnapshot_Populated(t *testing.T) {
	now := time.Now()

	assert.False(t, entity.CycleSnapshot{Kind: entity.CycleKindRental}.Populated())
	assert.True(t, entity.CycleSnapshot{Client: "ACME"}.Populated())
	assert.True(t, entity.CycleSnapshot{Site: "Obra"}.Populated())
	assert.True(t, entity.CycleSnapshot{Start: &now}.Populated())
	assert.False(t, entity.CycleSnapshot{Description: "solo descripción"}.Populated(),
		"la descripción sola no identifica un ciclo")
}
