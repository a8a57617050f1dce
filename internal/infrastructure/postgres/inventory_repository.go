package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo persistencia de items de patrimonio y sus movimientos.
type InventoryRepo struct {
	db Querier
}

// NewInventoryRepository construye el adaptador.
func NewInventoryRepository(db Querier) *InventoryRepo {
	return &InventoryRepo{db: db}
}

const itemColumns = `id, tenant_id, loja_id, sku, name, unit, category, location, min_qty, reorder_point,
	qty_on_hand, avg_cost, last_purchase_cost, assigned_to_member_id, notes,
	archived_at, archived_by, archive_reason, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	if err := row.Scan(
		&it.ID, &it.TenantID, &it.LojaID, &it.SKU, &it.Name, &it.Unit, &it.Category, &it.Location,
		&it.MinQty, &it.ReorderPoint, &it.QtyOnHand, &it.AvgCost, &it.LastPurchaseCost,
		&it.AssignedToMemberID, &it.Notes, &it.ArchivedAt, &it.ArchivedBy, &it.ArchiveReason,
		&it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *InventoryRepo) CreateItem(ctx context.Context, it *entity.InventoryItem) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO inventory_items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		it.ID, it.TenantID, it.LojaID, it.SKU, it.Name, it.Unit, it.Category, it.Location,
		it.MinQty, it.ReorderPoint, it.QtyOnHand, it.AvgCost, it.LastPurchaseCost,
		it.AssignedToMemberID, it.Notes, it.ArchivedAt, it.ArchivedBy, it.ArchiveReason,
		it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func (r *InventoryRepo) getItem(ctx context.Context, query, tenantID, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

func (r *InventoryRepo) GetItem(ctx context.Context, tenantID, id string) (*entity.InventoryItem, error) {
	return r.getItem(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

// GetItemForUpdate bloquea la fila hasta el fin de la transacción.
func (r *InventoryRepo) GetItemForUpdate(ctx context.Context, tenantID, id string) (*entity.InventoryItem, error) {
	return r.getItem(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, tenantID, id)
}

func (r *InventoryRepo) ListItems(ctx context.Context, f repository.InventoryFilter) ([]entity.InventoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM inventory_items
		WHERE tenant_id = $1
			AND ($2::uuid IS NULL OR loja_id = $2::uuid)
			AND ($3 = '' OR name ILIKE '%' || $3 || '%' OR sku ILIKE '%' || $3 || '%')
			AND ($4 OR archived_at IS NULL)
		ORDER BY name`,
		f.TenantID, f.LojaID, f.Query, f.IncludeArchived,
	)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	var list []entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, *it)
	}
	return list, rows.Err()
}

func (r *InventoryRepo) UpdateStock(ctx context.Context, it *entity.InventoryItem) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE inventory_items
		SET qty_on_hand = $3, avg_cost = $4, last_purchase_cost = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2`,
		it.TenantID, it.ID, it.QtyOnHand, it.AvgCost, it.LastPurchaseCost, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) Archive(ctx context.Context, it *entity.InventoryItem) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE inventory_items
		SET qty_on_hand = $3, archived_at = $4, archived_by = $5, archive_reason = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2 AND archived_at IS NULL`,
		it.TenantID, it.ID, it.QtyOnHand, it.ArchivedAt, it.ArchivedBy, it.ArchiveReason, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("archive inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *InventoryRepo) CreateMovement(ctx context.Context, m *entity.InventoryMovement) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO inventory_movements (id, tenant_id, item_id, type, qty, unit_cost, reason, happened_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.TenantID, m.ItemID, m.Type, m.Qty, m.UnitCost, m.Reason, m.HappenedAt, nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory movement: %w", err)
	}
	return nil
}

// ListMovements más reciente primero; limit <= 0 sin límite.
func (r *InventoryRepo) ListMovements(ctx context.Context, tenantID, itemID string, limit int) ([]entity.InventoryMovement, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, item_id, type, qty, unit_cost, reason, happened_at, COALESCE(created_by::text, ''), created_at
		FROM inventory_movements
		WHERE tenant_id = $1 AND item_id = $2
		ORDER BY created_at DESC
		LIMIT $3`,
		tenantID, itemID, lim,
	)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()

	var list []entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.TenantID, &m.ItemID, &m.Type, &m.Qty, &m.UnitCost, &m.Reason, &m.HappenedAt, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
