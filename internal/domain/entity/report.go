package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report reporte de servicio sobre un equipo con las partes consumidas.
type Report struct {
	ID            string
	EquipmentCode string
	Date          time.Time
	Description   string
	CreatedBy     string
	CreatedByName string
	CreatedAt     time.Time
	Items         []ReportItem
}

// ReportItem parte consumida; WithdrawalID enlaza opcionalmente el retiro de
// almacén que la originó, para trazabilidad.
type ReportItem struct {
	ID           string
	ReportID     string
	ProductName  string
	Quantity     decimal.Decimal
	WithdrawalID *string
}
