package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem item del patrimonio de la loja. AvgCost es promedio ponderado.
type InventoryItem struct {
	ID                 string
	TenantID           string
	LojaID             *string
	SKU                *string
	Name               string
	Unit               string
	Category           *string
	Location           *string
	MinQty             decimal.Decimal
	ReorderPoint       decimal.Decimal
	QtyOnHand          decimal.Decimal
	AvgCost            decimal.Decimal
	LastPurchaseCost   *decimal.Decimal
	AssignedToMemberID *string
	Notes              *string
	ArchivedAt         *time.Time
	ArchivedBy         *string
	ArchiveReason      *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// BelowMinimum indica si el saldo quedó por debajo del mínimo.
func (i *InventoryItem) BelowMinimum() bool {
	return i.QtyOnHand.LessThan(i.MinQty)
}

// NeedsReorder indica si el saldo llegó al punto de reposición.
func (i *InventoryItem) NeedsReorder() bool {
	return i.QtyOnHand.LessThanOrEqual(i.ReorderPoint)
}

// IsArchived indica si el item fue dado de baja.
func (i *InventoryItem) IsArchived() bool { return i.ArchivedAt != nil }
