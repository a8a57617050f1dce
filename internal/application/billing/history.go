package billing

import (
	"context"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	domainbilling "github.com/esferaordo/ordo-api/internal/domain/billing"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/role"
)

// History pagamentos de un membro, del más reciente al más antiguo.
// Un MEMBER solo ve el propio; tesoureiro y roles de loja solo membros de su loja.
func (uc *BillingUseCase) History(ctx context.Context, user *entity.User, memberID string) ([]dto.PaymentHistoryItem, error) {
	var m *entity.Member
	switch {
	case role.IsMember(user.Role):
		own, err := uc.memberForUser(ctx, user)
		if err != nil {
			return nil, err
		}
		if own.ID != memberID {
			return nil, domain.ErrForbidden
		}
		m = own
	case role.CanAccessFinance(user.Role):
		found, err := uc.members.GetByID(ctx, user.TenantID, memberID)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, domain.ErrMemberNotFound
		}
		if role.NeedsLojaScope(user.Role) || role.IsTreasurer(user.Role) {
			if user.LojaID == nil || *user.LojaID != found.LojaID {
				return nil, domain.ErrForbidden
			}
		}
		m = found
	default:
		return nil, domain.ErrForbidden
	}

	list, err := uc.payments.ListByMember(ctx, user.TenantID, m.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentHistoryItem, 0, len(list))
	for _, p := range list {
		method := p.Method
		if method == "" {
			method = entity.PaymentMethodPix
		}
		var obs *string
		if p.Description != "" {
			d := p.Description
			obs = &d
		}
		out = append(out, dto.PaymentHistoryItem{
			ID:              p.ID,
			Valor:           p.Amount,
			DataPagamento:   p.PaymentDate,
			MetodoPagamento: method,
			Observacoes:     obs,
			Tipo:            p.PaymentType,
			Periodo: dto.PaymentPeriod{
				Year:  p.ReferenceYear,
				Month: p.ReferenceMonth,
				Label: domainbilling.PeriodLabel(p.ReferenceYear, p.ReferenceMonth),
			},
		})
	}
	return out, nil
}
