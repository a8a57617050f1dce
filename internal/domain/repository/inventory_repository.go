package repository

import (
	"context"

	"github.com/esferaordo/ordo-api/internal/domain/entity"
)

// InventoryFilter filtros de listado de items.
type InventoryFilter struct {
	TenantID        string
	LojaID          *string
	Query           string
	IncludeArchived bool
}

// InventoryRepository puerto de persistencia para items y movimientos.
type InventoryRepository interface {
	CreateItem(ctx context.Context, item *entity.InventoryItem) error
	GetItem(ctx context.Context, tenantID, id string) (*entity.InventoryItem, error)
	// GetItemForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una transacción.
	GetItemForUpdate(ctx context.Context, tenantID, id string) (*entity.InventoryItem, error)
	ListItems(ctx context.Context, f InventoryFilter) ([]entity.InventoryItem, error)
	UpdateStock(ctx context.Context, item *entity.InventoryItem) error
	Archive(ctx context.Context, item *entity.InventoryItem) error
	CreateMovement(ctx context.Context, m *entity.InventoryMovement) error
	ListMovements(ctx context.Context, tenantID, itemID string, limit int) ([]entity.InventoryMovement, error)
}
