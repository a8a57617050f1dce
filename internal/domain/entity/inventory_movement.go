package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN      = "IN"      // entrada (compra/doação)
	MovementTypeOUT     = "OUT"     // saída
	MovementTypeADJUST  = "ADJUST"  // ajuste con signo
	MovementTypeARCHIVE = "ARCHIVE" // baja del item
)

// InventoryMovement movimiento de un item; Qty es el delta aplicado al saldo.
type InventoryMovement struct {
	ID         string
	TenantID   string
	ItemID     string
	Type       string
	Qty        decimal.Decimal
	UnitCost   *decimal.Decimal
	Reason     string
	HappenedAt time.Time
	CreatedBy  string
	CreatedAt  time.Time
}
