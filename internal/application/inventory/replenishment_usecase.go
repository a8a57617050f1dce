package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

var idealFactor = decimal.NewFromFloat(1.5)

// ReorderList items en o bajo el punto de reposición con la cantidad sugerida de compra
// (hasta 1.5× el punto de reposición), ordenados por mayor déficit.
func (uc *InventoryUseCase) ReorderList(ctx context.Context, user *entity.User, lojaID *string) ([]dto.ReorderSuggestion, error) {
	if err := authorize(user); err != nil {
		return nil, err
	}
	items, err := uc.items.ListItems(ctx, repository.InventoryFilter{
		TenantID: user.TenantID,
		LojaID:   scopedLoja(user, lojaID),
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReorderSuggestion, 0)
	for i := range items {
		it := &items[i]
		if !it.NeedsReorder() {
			continue
		}
		ideal := it.ReorderPoint.Mul(idealFactor)
		suggested := ideal.Sub(it.QtyOnHand)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		cost := it.AvgCost
		if it.LastPurchaseCost != nil {
			cost = *it.LastPurchaseCost
		}
		out = append(out, dto.ReorderSuggestion{
			ItemID:        it.ID,
			SKU:           it.SKU,
			Name:          it.Name,
			QtyOnHand:     it.QtyOnHand,
			MinQty:        it.MinQty,
			ReorderPoint:  it.ReorderPoint,
			IdealQty:      ideal,
			SuggestedQty:  suggested,
			UnitCost:      cost,
			EstimatedCost: suggested.Mul(cost).Round(2),
			BelowMinimum:  it.BelowMinimum(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.BelowMinimum != b.BelowMinimum {
			return a.BelowMinimum
		}
		defA := a.ReorderPoint.Sub(a.QtyOnHand)
		defB := b.ReorderPoint.Sub(b.QtyOnHand)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		return a.Name < b.Name
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
