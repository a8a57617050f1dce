package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest alta de item.
type CreateItemRequest struct {
	SKU                *string          `json:"sku" validate:"omitempty,max=64"`
	Name               string           `json:"name" validate:"required,max=200"`
	Unit               string           `json:"unit" validate:"omitempty,max=20"`
	Category           *string          `json:"category" validate:"omitempty,max=100"`
	Location           *string          `json:"location" validate:"omitempty,max=200"`
	MinQty             *decimal.Decimal `json:"minQty"`
	ReorderPoint       *decimal.Decimal `json:"reorderPoint"`
	AssignedToMemberID *string          `json:"assignedToMemberId" validate:"omitempty,uuid"`
	Notes              *string          `json:"notes" validate:"omitempty,max=1000"`
	LojaID             *string          `json:"lojaId" validate:"omitempty,uuid"`
}

// MovementRequest movimiento de un item.
type MovementRequest struct {
	Type       string           `json:"type" validate:"required"`
	Qty        decimal.Decimal  `json:"qty"`
	UnitCost   *decimal.Decimal `json:"unitCost"`
	Reason     string           `json:"reason" validate:"omitempty,max=500"`
	HappenedAt *time.Time       `json:"happenedAt"`
}

// ArchiveItemRequest baja de item; exige contraseña del operador.
type ArchiveItemRequest struct {
	Password string `json:"password" validate:"required,min=4"`
	Reason   string `json:"reason" validate:"required,min=10,max=500"`
}

// ItemResponse item con indicadores de reposición.
type ItemResponse struct {
	ID                 string           `json:"id"`
	SKU                *string          `json:"sku"`
	Name               string           `json:"name"`
	Unit               string           `json:"unit"`
	Category           *string          `json:"category"`
	Location           *string          `json:"location"`
	MinQty             decimal.Decimal  `json:"minQty"`
	ReorderPoint       decimal.Decimal  `json:"reorderPoint"`
	QtyOnHand          decimal.Decimal  `json:"qtyOnHand"`
	AvgCost            decimal.Decimal  `json:"avgCost"`
	LastPurchaseCost   *decimal.Decimal `json:"lastPurchaseCost"`
	AssignedToMemberID *string          `json:"assignedToMemberId"`
	Notes              *string          `json:"notes"`
	BelowMinimum       bool             `json:"belowMinimum"`
	NeedsReorder       bool             `json:"needsReorder"`
	ArchivedAt         *time.Time       `json:"archivedAt,omitempty"`
}

// ItemListResponse listado con totales.
type ItemListResponse struct {
	Items        []ItemResponse  `json:"items"`
	Total        int             `json:"total"`
	BelowMinimum int             `json:"belowMinimum"`
	TotalValue   decimal.Decimal `json:"totalValue"`
}

// MovementResponse movimiento registrado.
type MovementResponse struct {
	ID         string           `json:"id"`
	ItemID     string           `json:"itemId"`
	Type       string           `json:"type"`
	Qty        decimal.Decimal  `json:"qty"`
	UnitCost   *decimal.Decimal `json:"unitCost,omitempty"`
	Reason     string           `json:"reason,omitempty"`
	HappenedAt time.Time        `json:"happenedAt"`
	QtyOnHand  decimal.Decimal  `json:"qtyOnHand"`
	AvgCost    decimal.Decimal  `json:"avgCost"`
}

// ReorderSuggestion sugerencia de reposición de un item.
type ReorderSuggestion struct {
	ItemID        string          `json:"itemId"`
	SKU           *string         `json:"sku"`
	Name          string          `json:"name"`
	QtyOnHand     decimal.Decimal `json:"qtyOnHand"`
	MinQty        decimal.Decimal `json:"minQty"`
	ReorderPoint  decimal.Decimal `json:"reorderPoint"`
	IdealQty      decimal.Decimal `json:"idealQty"`
	SuggestedQty  decimal.Decimal `json:"suggestedQty"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
	BelowMinimum  bool            `json:"belowMinimum"`
	Priority      int             `json:"priority"`
}
