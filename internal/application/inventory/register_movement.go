package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	domaininv "github.com/esferaordo/ordo-api/internal/domain/inventory"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

// RegisterMovement inicia una transacción, bloquea la fila del item (SELECT FOR UPDATE),
// aplica el movimiento (IN/OUT/ADJUST) y guarda saldo y movimiento; Rollback si algo falla.
func (uc *InventoryUseCase) RegisterMovement(ctx context.Context, user *entity.User, itemID string, in dto.MovementRequest) (*dto.MovementResponse, error) {
	if err := authorize(user); err != nil {
		return nil, err
	}
	input := domaininv.MovementInput{Type: in.Type, Qty: in.Qty, UnitCost: in.UnitCost, Reason: in.Reason}
	if in.Type == entity.MovementTypeARCHIVE {
		return nil, domain.NewValidationError("type", "Use a baixa do item para arquivar")
	}
	if err := fieldErrors(domaininv.ValidateMovement(input)); err != nil {
		return nil, err
	}
	if _, err := uc.getScopedItem(ctx, user, itemID); err != nil {
		return nil, err
	}

	now := uc.now()
	happenedAt := now
	if in.HappenedAt != nil {
		happenedAt = *in.HappenedAt
	}
	mov := &entity.InventoryMovement{
		ID:         uuid.New().String(),
		TenantID:   user.TenantID,
		ItemID:     itemID,
		Type:       in.Type,
		UnitCost:   in.UnitCost,
		Reason:     in.Reason,
		HappenedAt: happenedAt,
		CreatedBy:  user.ID,
		CreatedAt:  now,
	}

	var after *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		item, err := repos.Inventory.GetItemForUpdate(ctx, user.TenantID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.IsArchived() {
			return domain.ErrConflict
		}
		delta, err := domaininv.Apply(item, input)
		if err != nil {
			return err
		}
		item.UpdatedAt = now
		if err := repos.Inventory.UpdateStock(ctx, item); err != nil {
			return err
		}
		mov.Qty = delta
		after = item
		return repos.Inventory.CreateMovement(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	if after.BelowMinimum() {
		uc.log.Warn().Str("item_id", after.ID).Str("qty", after.QtyOnHand.String()).Msg("item abaixo do estoque mínimo")
	}
	return &dto.MovementResponse{
		ID:         mov.ID,
		ItemID:     mov.ItemID,
		Type:       mov.Type,
		Qty:        mov.Qty,
		UnitCost:   mov.UnitCost,
		Reason:     mov.Reason,
		HappenedAt: mov.HappenedAt,
		QtyOnHand:  after.QtyOnHand,
		AvgCost:    after.AvgCost,
	}, nil
}
