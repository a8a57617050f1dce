package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/esferaordo/ordo-api/internal/application/auth"
	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	domaininv "github.com/esferaordo/ordo-api/internal/domain/inventory"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

// InventoryUseCase patrimonio de la loja: items, movimientos, baja y relatório.
type InventoryUseCase struct {
	items    repository.InventoryRepository
	lojas    repository.LojaRepository
	txRunner TxRunner
	reports  ReportGenerator
	log      *logger.Logger
	now      func() time.Time
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	items repository.InventoryRepository,
	lojas repository.LojaRepository,
	txRunner TxRunner,
	reports ReportGenerator,
	log *logger.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{items: items, lojas: lojas, txRunner: txRunner, reports: reports, log: log, now: time.Now}
}

func authorize(user *entity.User) error {
	if !role.CanManageInventory(user.Role) {
		return domain.ErrForbidden
	}
	return nil
}

// scopedLoja loja efectiva: los roles con loja propia siempre usan la suya.
func scopedLoja(user *entity.User, requested *string) *string {
	if !role.IsSaasAdmin(user.Role) && user.LojaID != nil {
		return user.LojaID
	}
	return requested
}

func fieldErrors(errs []domaininv.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return domain.NewValidationError(errs[0].Field, errs[0].Message)
}

// CreateItem alta de item con saldo cero.
func (uc *InventoryUseCase) CreateItem(ctx context.Context, user *entity.User, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := authorize(user); err != nil {
		return nil, err
	}
	if err := fieldErrors(domaininv.ValidateItem(domaininv.ItemInput{
		Name: in.Name, MinQty: in.MinQty, ReorderPoint: in.ReorderPoint,
	})); err != nil {
		return nil, err
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "un"
	}
	now := uc.now()
	item := &entity.InventoryItem{
		ID:                 uuid.New().String(),
		TenantID:           user.TenantID,
		LojaID:             scopedLoja(user, in.LojaID),
		SKU:                in.SKU,
		Name:               strings.TrimSpace(in.Name),
		Unit:               unit,
		Category:           in.Category,
		Location:           in.Location,
		MinQty:             *in.MinQty,
		ReorderPoint:       *in.ReorderPoint,
		QtyOnHand:          decimal.Zero,
		AvgCost:            decimal.Zero,
		AssignedToMemberID: in.AssignedToMemberID,
		Notes:              in.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.items.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", item.ID).Str("name", item.Name).Msg("item de patrimônio criado")
	out := ToItemResponse(item)
	return &out, nil
}

// ListItems items activos del alcance del usuario con totales.
func (uc *InventoryUseCase) ListItems(ctx context.Context, user *entity.User, lojaID *string, query string) (*dto.ItemListResponse, error) {
	if err := authorize(user); err != nil {
		return nil, err
	}
	items, err := uc.items.ListItems(ctx, repository.InventoryFilter{
		TenantID: user.TenantID,
		LojaID:   scopedLoja(user, lojaID),
		Query:    strings.TrimSpace(query),
	})
	if err != nil {
		return nil, err
	}
	return summarize(items), nil
}

func summarize(items []entity.InventoryItem) *dto.ItemListResponse {
	out := &dto.ItemListResponse{Items: make([]dto.ItemResponse, 0, len(items)), TotalValue: decimal.Zero}
	for i := range items {
		it := &items[i]
		out.Items = append(out.Items, ToItemResponse(it))
		if it.BelowMinimum() {
			out.BelowMinimum++
		}
		out.TotalValue = out.TotalValue.Add(it.QtyOnHand.Mul(it.AvgCost))
	}
	out.Total = len(out.Items)
	out.TotalValue = out.TotalValue.Round(2)
	return out
}

// getScopedItem carga el item y verifica que pertenezca al alcance del usuario.
func (uc *InventoryUseCase) getScopedItem(ctx context.Context, user *entity.User, id string) (*entity.InventoryItem, error) {
	item, err := uc.items.GetItem(ctx, user.TenantID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if scope := scopedLoja(user, nil); scope != nil && (item.LojaID == nil || *item.LojaID != *scope) {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListMovements últimos movimientos de un item (más reciente primero).
func (uc *InventoryUseCase) ListMovements(ctx context.Context, user *entity.User, itemID string, limit int) ([]dto.MovementResponse, error) {
	if err := authorize(user); err != nil {
		return nil, err
	}
	item, err := uc.getScopedItem(ctx, user, itemID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	movs, err := uc.items.ListMovements(ctx, user.TenantID, item.ID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID: m.ID, ItemID: m.ItemID, Type: m.Type, Qty: m.Qty, UnitCost: m.UnitCost,
			Reason: m.Reason, HappenedAt: m.HappenedAt,
		})
	}
	return out, nil
}

// Archive da de baja un item: exige la contraseña del operador, registra un movimiento
// ARCHIVE por el saldo restante y deja el saldo en cero.
func (uc *InventoryUseCase) Archive(ctx context.Context, user *entity.User, itemID string, in dto.ArchiveItemRequest) (*dto.ItemResponse, error) {
	if err := authorize(user); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(in.Reason)
	if len([]rune(reason)) < 10 {
		return nil, domain.NewValidationError("reason", "Motivo deve ter pelo menos 10 caracteres")
	}
	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		uc.log.Warn().Str("user_id", user.ID).Str("item_id", itemID).Msg("baixa de item: senha incorreta")
		return nil, domain.NewValidationError("password", "Senha incorreta")
	}
	if _, err := uc.getScopedItem(ctx, user, itemID); err != nil {
		return nil, err
	}

	now := uc.now()
	var archived *entity.InventoryItem
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
		remaining := item.QtyOnHand
		if _, err := domaininv.Apply(item, domaininv.MovementInput{Type: entity.MovementTypeARCHIVE, Qty: remaining}); err != nil {
			return err
		}
		item.ArchivedAt = &now
		item.ArchivedBy = &user.ID
		item.ArchiveReason = &reason
		item.UpdatedAt = now
		if err := repos.Inventory.Archive(ctx, item); err != nil {
			return err
		}
		archived = item
		return repos.Inventory.CreateMovement(ctx, &entity.InventoryMovement{
			ID:         uuid.New().String(),
			TenantID:   user.TenantID,
			ItemID:     item.ID,
			Type:       entity.MovementTypeARCHIVE,
			Qty:        remaining.Neg(),
			Reason:     reason,
			HappenedAt: now,
			CreatedBy:  user.ID,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", archived.ID).Str("user_id", user.ID).Msg("item de patrimônio baixado")
	out := ToItemResponse(archived)
	return &out, nil
}

// Export genera el relatório PDF de los items del alcance del usuario.
func (uc *InventoryUseCase) Export(ctx context.Context, user *entity.User, lojaID *string) ([]byte, error) {
	list, err := uc.ListItems(ctx, user, lojaID, "")
	if err != nil {
		return nil, err
	}
	data := ReportData{
		Title:        "Relatório de Patrimônio",
		LojaName:     "Todas as lojas",
		GeneratedAt:  uc.now(),
		GeneratedBy:  user.Email,
		Items:        list.Items,
		TotalValue:   list.TotalValue,
		BelowMinimum: list.BelowMinimum,
	}
	if scope := scopedLoja(user, lojaID); scope != nil {
		loja, err := uc.lojas.GetByID(ctx, user.TenantID, *scope)
		if err != nil {
			return nil, err
		}
		if loja != nil {
			data.LojaName = loja.Name
		}
	}
	return uc.reports.GenerateInventoryReport(ctx, data)
}

// ToItemResponse mapea la entidad a DTO.
func ToItemResponse(it *entity.InventoryItem) dto.ItemResponse {
	return dto.ItemResponse{
		ID:                 it.ID,
		SKU:                it.SKU,
		Name:               it.Name,
		Unit:               it.Unit,
		Category:           it.Category,
		Location:           it.Location,
		MinQty:             it.MinQty,
		ReorderPoint:       it.ReorderPoint,
		QtyOnHand:          it.QtyOnHand,
		AvgCost:            it.AvgCost,
		LastPurchaseCost:   it.LastPurchaseCost,
		AssignedToMemberID: it.AssignedToMemberID,
		Notes:              it.Notes,
		BelowMinimum:       it.BelowMinimum(),
		NeedsReorder:       it.NeedsReorder(),
		ArchivedAt:         it.ArchivedAt,
	}
}
