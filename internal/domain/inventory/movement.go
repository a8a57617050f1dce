// Package inventory reglas puras del patrimonio: validación de items y movimientos y su efecto en el saldo.
package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
)

// FieldError error de validación por campo.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ItemInput datos editables de un item.
type ItemInput struct {
	Name         string
	MinQty       *decimal.Decimal
	ReorderPoint *decimal.Decimal
}

// ValidateItem reglas de alta de item.
func ValidateItem(in ItemInput) []FieldError {
	var errs []FieldError
	if len(strings.TrimSpace(in.Name)) < 2 {
		errs = append(errs, FieldError{"name", "Nome do item e obrigatorio e deve ter pelo menos 2 caracteres"})
	}
	if in.MinQty == nil {
		errs = append(errs, FieldError{"minQty", "Estoque minimo e obrigatorio"})
	} else if in.MinQty.IsNegative() {
		errs = append(errs, FieldError{"minQty", "Estoque minimo deve ser zero ou positivo"})
	}
	if in.ReorderPoint == nil {
		errs = append(errs, FieldError{"reorderPoint", "Ponto de reposicao e obrigatorio"})
	} else if in.ReorderPoint.IsNegative() {
		errs = append(errs, FieldError{"reorderPoint", "Ponto de reposicao deve ser zero ou positivo"})
	}
	if in.MinQty != nil && in.ReorderPoint != nil && in.ReorderPoint.LessThan(*in.MinQty) {
		errs = append(errs, FieldError{"reorderPoint", "Ponto de reposicao deve ser maior ou igual ao estoque minimo"})
	}
	return errs
}

// MovementInput movimiento solicitado.
type MovementInput struct {
	Type     string
	Qty      decimal.Decimal
	UnitCost *decimal.Decimal
	Reason   string
}

// ValidateMovement reglas por tipo: IN exige costo positivo, ADJUST exige qty≠0 y motivo, el resto qty>0.
func ValidateMovement(in MovementInput) []FieldError {
	var errs []FieldError
	switch in.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUST, entity.MovementTypeARCHIVE:
	default:
		errs = append(errs, FieldError{"type", "Tipo deve ser IN, OUT, ADJUST ou ARCHIVE"})
	}
	if in.Type == entity.MovementTypeADJUST {
		if in.Qty.IsZero() {
			errs = append(errs, FieldError{"qty", "Quantidade deve ser diferente de zero"})
		}
		if len(strings.TrimSpace(in.Reason)) < 3 {
			errs = append(errs, FieldError{"reason", "Ajuste exige um motivo"})
		}
	} else if !in.Qty.IsPositive() {
		errs = append(errs, FieldError{"qty", "Quantidade deve ser maior que zero"})
	}
	if in.Type == entity.MovementTypeIN && (in.UnitCost == nil || !in.UnitCost.IsPositive()) {
		errs = append(errs, FieldError{"unitCost", "Entrada exige custo unitario positivo"})
	}
	return errs
}

// Apply calcula el nuevo estado del item tras un movimiento ya validado y devuelve el delta aplicado.
func Apply(item *entity.InventoryItem, in MovementInput) (decimal.Decimal, error) {
	var delta decimal.Decimal
	switch in.Type {
	case entity.MovementTypeIN:
		item.AvgCost = CostCalculator(item.QtyOnHand, item.AvgCost, in.Qty, *in.UnitCost)
		cost := *in.UnitCost
		item.LastPurchaseCost = &cost
		delta = in.Qty
	case entity.MovementTypeOUT, entity.MovementTypeARCHIVE:
		delta = in.Qty.Neg()
	case entity.MovementTypeADJUST:
		delta = in.Qty
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}
	next := item.QtyOnHand.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	item.QtyOnHand = next
	return delta, nil
}
