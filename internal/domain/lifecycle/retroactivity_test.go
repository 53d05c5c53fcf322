package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/lifecycle"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func tp(t time.Time) *time.Time { return &t }

// Una fecha pasada, incluso muy anterior a la creación del registro, siempre es válida.
func TestValidateEventDate_PasadoSiempreValido(t *testing.T) {
	cases := []time.Time{
		now.Add(-time.Minute),
		now.AddDate(-5, 0, 0),
		time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		now, // exactamente "ahora" no es estrictamente futuro
	}
	for _, d := range cases {
		assert.NoError(t, lifecycle.ValidateEventDate("fecha", tp(d), now), "fecha %s", d)
	}
}

// Una fecha estrictamente posterior a "ahora" se rechaza antes de cualquier escritura.
func TestValidateEventDate_FuturoRechazado(t *testing.T) {
	err := lifecycle.ValidateEventDate("fecha_inicio", tp(now.Add(time.Second)), now)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err), "debe ser error de validación estructurado")

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "fecha_inicio", ve.Field)
}

func TestValidateEventDate_NilValido(t *testing.T) {
	assert.NoError(t, lifecycle.ValidateEventDate("fecha", nil, now))
}

func TestValidateRange(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   *time.Time
		end     *time.Time
		wantErr bool
	}{
		{"fin posterior al inicio", tp(start), tp(start.AddDate(0, 1, 0)), false},
		{"fin nil (rango abierto)", tp(start), nil, false},
		{"fin anterior al inicio", tp(start), tp(time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC)), true},
		{"fin futuro", tp(start), tp(now.AddDate(0, 0, 1)), true},
		{"inicio futuro", tp(now.AddDate(0, 0, 1)), nil, true},
		{"fin igual al inicio", tp(start), tp(start), false},
		{"ambos nil", nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lifecycle.ValidateRange("alquiler", tt.start, tt.end, now)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, ok := lifecycle.ParseDate("2025-03-01")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), d)

	_, ok = lifecycle.ParseDate("01/03/2025")
	assert.True(t, ok)

	_, ok = lifecycle.ParseDate("no-es-una-fecha")
	assert.False(t, ok)
}

// Texto no interpretable: el validador falla abierto y no bloquea al operador.
func TestValidateDateString_FallaAbierto(t *testing.T) {
	assert.NoError(t, lifecycle.ValidateDateString("fecha", "no-es-una-fecha", now))
	assert.NoError(t, lifecycle.ValidateDateString("fecha", "", now))
	// Pero un texto interpretable y futuro sí se rechaza.
	assert.Error(t, lifecycle.ValidateDateString("fecha", "2099-01-01", now))
	assert.NoError(t, lifecycle.ValidateDateString("fecha", "2020-01-01", now))
}
