package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	domainbilling "github.com/esferaordo/ordo-api/internal/domain/billing"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

// BillingUseCase resumen de cobranza, grilla de pagamentos y registro de pagamentos.
type BillingUseCase struct {
	members  repository.MemberRepository
	lojas    repository.LojaRepository
	payments repository.PaymentRepository
	charges  repository.ChargeRepository
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewBillingUseCase construye el caso de uso.
func NewBillingUseCase(
	members repository.MemberRepository,
	lojas repository.LojaRepository,
	payments repository.PaymentRepository,
	charges repository.ChargeRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *BillingUseCase {
	return &BillingUseCase{
		members: members, lojas: lojas, payments: payments, charges: charges,
		txRunner: txRunner, log: log, now: time.Now,
	}
}

// resolveLoja loja del usuario o, si no tiene, la primera del tenant. ErrNoLoja si no hay ninguna.
func (uc *BillingUseCase) resolveLoja(ctx context.Context, user *entity.User) (*entity.Loja, error) {
	if user.LojaID != nil {
		loja, err := uc.lojas.GetByID(ctx, user.TenantID, *user.LojaID)
		if err != nil {
			return nil, err
		}
		if loja != nil {
			return loja, nil
		}
	}
	loja, err := uc.lojas.FirstByTenant(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	if loja == nil {
		return nil, domain.ErrNoLoja
	}
	return loja, nil
}

// Summary totales de cobranza de la loja del usuario.
func (uc *BillingUseCase) Summary(ctx context.Context, user *entity.User, q dto.BillingSummaryQuery) (*dto.BillingSummaryResponse, error) {
	loja, err := uc.resolveLoja(ctx, user)
	if err != nil {
		return nil, err
	}
	charges, err := uc.charges.ListForSummary(ctx, user.TenantID, loja.ID, q.Type, q.Year)
	if err != nil {
		return nil, err
	}
	active, err := uc.members.CountActive(ctx, user.TenantID, loja.ID)
	if err != nil {
		return nil, err
	}
	return &dto.BillingSummaryResponse{
		LojaID:  loja.ID,
		Year:    q.Year,
		Type:    q.Type,
		Summary: domainbilling.Summarize(charges, active, q.Type),
	}, nil
}

// GridQuery parámetros de la grilla.
type GridQuery struct {
	Type   string
	Year   int // 0 = año actual
	LojaID *string
}

// PaymentGrid grilla miembro×período. MEMBER solo ve su fila; roles con alcance de loja solo su loja.
func (uc *BillingUseCase) PaymentGrid(ctx context.Context, user *entity.User, q GridQuery) (*dto.PaymentGridResponse, error) {
	if !domainbilling.ValidPeriodType(q.Type) {
		return nil, domain.NewValidationError("type", "Tipo deve ser MONTHLY ou ANNUAL")
	}
	year := q.Year
	if year == 0 {
		year = uc.now().Year()
	}

	ativo := entity.MemberSituacaoAtivo
	filter := repository.MemberFilter{TenantID: user.TenantID, Situacao: &ativo, LojaID: q.LojaID}

	switch {
	case role.IsMember(user.Role):
		self, err := uc.memberForUser(ctx, user)
		if err != nil {
			return nil, err
		}
		filter.OnlyID = &self.ID
		filter.LojaID = nil
	case role.NeedsLojaScope(user.Role) || role.IsTreasurer(user.Role):
		if user.LojaID != nil {
			filter.LojaID = user.LojaID
		}
	}

	members, err := uc.members.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	lojas, err := uc.lojaIndex(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.GridMember, 0, len(members))
	ids := make([]string, 0, len(members))
	for _, m := range members {
		loja := lojas[m.LojaID]
		condicao := m.CondicaoMensalidade
		if condicao == "" {
			condicao = entity.CondicaoRegular
		}
		rows = append(rows, dto.GridMember{
			ID:                  m.ID,
			NomeCompleto:        m.NomeCompleto,
			Situacao:            m.Situacao,
			Class:               m.Class,
			CondicaoMensalidade: condicao,
			MensalidadeValor:    domainbilling.ResolveMensalidade(loja, condicao),
			MensalidadeRegular:  domainbilling.ResolveMensalidadeRegular(loja),
			LojaID:              m.LojaID,
		})
		ids = append(ids, m.ID)
	}

	periods := domainbilling.PeriodsFor(q.Type, year)
	var payments []entity.MemberPayment
	if len(ids) > 0 {
		payments, err = uc.payments.ListForGrid(ctx, user.TenantID, ids, entity.PaymentTypeFor(q.Type), domainbilling.RelevantYears(q.Type, year))
		if err != nil {
			return nil, err
		}
	}

	return &dto.PaymentGridResponse{
		Members:  rows,
		Periods:  periods,
		Statuses: domainbilling.BuildStatuses(ids, periods, payments, q.Type),
	}, nil
}

func (uc *BillingUseCase) lojaIndex(ctx context.Context, tenantID string) (map[string]*entity.Loja, error) {
	list, err := uc.lojas.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]*entity.Loja, len(list))
	for i := range list {
		idx[list[i].ID] = &list[i]
	}
	return idx, nil
}

// memberForUser resuelve el Member del usuario por clave foránea; las filas aún sin user_id
// se resuelven por email (sin mayúsculas) y quedan enlazadas.
func (uc *BillingUseCase) memberForUser(ctx context.Context, user *entity.User) (*entity.Member, error) {
	m, err := uc.members.GetByUserID(ctx, user.TenantID, user.ID)
	if err != nil {
		return nil, err
	}
	if m != nil {
		return m, nil
	}
	m, err = uc.members.GetByEmail(ctx, user.TenantID, strings.ToLower(user.Email))
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMemberNotFound
	}
	if m.UserID == nil {
		if err := uc.members.LinkUser(ctx, m.ID, user.ID); err != nil {
			uc.log.Warn().Err(err).Str("member_id", m.ID).Msg("enlazar membro con usuario")
		} else {
			uc.log.Info().Str("member_id", m.ID).Str("user_id", user.ID).Msg("membro enlazado por email")
		}
	} else if *m.UserID != user.ID {
		return nil, domain.ErrMemberNotFound
	}
	return m, nil
}

// RegisterPayment registra un pagamento confirmado y marca la cobranza del período como PAID,
// ambos en la misma transacción. Solo roles con acceso a finanzas.
func (uc *BillingUseCase) RegisterPayment(ctx context.Context, user *entity.User, in dto.RegisterPaymentRequest) (*dto.PaymentResponse, error) {
	if !role.CanAccessFinance(user.Role) {
		return nil, domain.ErrForbidden
	}
	if in.Type == entity.PeriodMonthly && in.Month == nil {
		return nil, domain.NewValidationError("month", "Mês é obrigatório para mensalidade")
	}
	if in.Type == entity.PeriodAnnual && in.Month != nil {
		return nil, domain.NewValidationError("month", "Anuidade não aceita mês")
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidationError("amount", "Valor deve ser positivo")
	}

	member, err := uc.members.GetByID(ctx, user.TenantID, in.MemberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrMemberNotFound
	}
	if role.NeedsLojaScope(user.Role) && user.LojaID != nil && *user.LojaID != member.LojaID {
		return nil, domain.ErrForbidden
	}

	paymentType := entity.PaymentTypeFor(in.Type)
	beneficiary := entity.BeneficiaryLodge
	if in.Type == entity.PeriodAnnual {
		beneficiary = entity.BeneficiaryPotency
	}
	now := uc.now()
	paidAt := now
	if in.PaymentDate != nil {
		paidAt = *in.PaymentDate
	}
	payment := &entity.MemberPayment{
		ID:             uuid.New().String(),
		TenantID:       user.TenantID,
		LojaID:         member.LojaID,
		MemberID:       member.ID,
		PaymentType:    paymentType,
		ReferenceYear:  in.Year,
		ReferenceMonth: in.Month,
		Amount:         in.Amount,
		Method:         in.Method,
		PaymentDate:    paidAt,
		Status:         entity.PaymentStatusConfirmed,
		Beneficiary:    beneficiary,
		Description:    in.Description,
		CreatedBy:      user.ID,
		CreatedAt:      now,
	}

	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		dup, err := repos.Payments.ExistsConfirmed(ctx, user.TenantID, member.ID, paymentType, in.Year, in.Month)
		if err != nil {
			return err
		}
		if dup {
			return domain.ErrDuplicate
		}
		if err := repos.Payments.Create(ctx, payment); err != nil {
			return err
		}
		return repos.Charges.UpsertPaid(ctx, &entity.DuesCharge{
			ID:             uuid.New().String(),
			TenantID:       user.TenantID,
			LojaID:         member.LojaID,
			MemberID:       member.ID,
			Type:           in.Type,
			Year:           in.Year,
			Month:          in.Month,
			ExpectedAmount: in.Amount,
			Status:         entity.ChargeStatusPaid,
			PaymentID:      &payment.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("payment_id", payment.ID).Str("member_id", member.ID).Str("type", paymentType).Msg("pagamento registrado")

	return &dto.PaymentResponse{
		ID:             payment.ID,
		MemberID:       payment.MemberID,
		PaymentType:    payment.PaymentType,
		ReferenceYear:  payment.ReferenceYear,
		ReferenceMonth: payment.ReferenceMonth,
		Amount:         payment.Amount,
		Method:         payment.Method,
		PaymentDate:    payment.PaymentDate,
		Beneficiary:    payment.Beneficiary,
		Status:         payment.Status,
	}, nil
}
