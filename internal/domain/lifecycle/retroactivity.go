// Package lifecycle contiene las reglas temporales compartidas por todas las
// operaciones de ciclo de vida: la retroactividad es legítima (un hecho puede
// registrarse después de ocurrido), el futuro no.
package lifecycle

import (
	"time"

	"github.com/jhoicas/Alquileres-api/internal/domain"
)

// Formatos aceptados al validar fechas que llegan como texto.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ValidateEventDate rechaza fechas estrictamente posteriores a now. Una fecha
// anterior a la creación del registro nunca se rechaza por ese solo motivo.
// d nil es válido (el emisor usará el timestamp de sistema).
func ValidateEventDate(field string, d *time.Time, now time.Time) error {
	if d == nil {
		return nil
	}
	if d.After(now) {
		return domain.NewValidationError(field, "la fecha no puede ser futura")
	}
	return nil
}

// ValidateRange valida un rango (inicio, fin): fin ≥ inicio y fin no futuro.
// Fin nil es válido (rango abierto); fin retroactivo es válido mientras no sea
// futuro ni anterior al inicio.
func ValidateRange(field string, start, end *time.Time, now time.Time) error {
	if err := ValidateEventDate(field, start, now); err != nil {
		return err
	}
	if end == nil {
		return nil
	}
	if err := ValidateEventDate(field, end, now); err != nil {
		return err
	}
	if start != nil && end.Before(*start) {
		return domain.NewValidationError(field, "la fecha de fin es anterior a la de inicio")
	}
	return nil
}

// ValidateDateString valida una fecha en texto. Si el texto no se puede
// interpretar, el validador FALLA ABIERTO: se trata como válida en lugar de
// bloquear al operador (disponibilidad sobre rigor).
func ValidateDateString(field, value string, now time.Time) error {
	if value == "" {
		return nil
	}
	d, ok := parseDate(value)
	if !ok {
		return nil // fallo interno del validador: no bloquear
	}
	return ValidateEventDate(field, &d, now)
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// ParseDate interpreta una fecha en texto con los formatos aceptados. ok=false
// si no se puede interpretar; el llamador decide (normalmente fallar abierto y
// usar el timestamp de sistema).
func ParseDate(value string) (time.Time, bool) {
	return parseDate(value)
}
