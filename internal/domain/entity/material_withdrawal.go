package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialWithdrawal retiro de material de almacén imputado a un equipo.
// "Pendiente" = sin vínculo a ningún reporte y no archivado.
type MaterialWithdrawal struct {
	ID          string
	AssetCode   string
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	Reason      string
	Site        string
	Company     string
	CycleMarker int  // ciclo vigente al momento del retiro
	Archived    bool // excluido de futuros reportes, irreversible
	CreatedAt   time.Time
	CreatedBy   string
}
