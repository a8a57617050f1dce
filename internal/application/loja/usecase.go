// Package loja consulta y mantenimiento de lojas y de sus valores de cobranza.
package loja

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

// LojaUseCase casos de uso de lojas.
type LojaUseCase struct {
	lojas repository.LojaRepository
	log   *logger.Logger
	now   func() time.Time
}

func NewLojaUseCase(lojas repository.LojaRepository, log *logger.Logger) *LojaUseCase {
	return &LojaUseCase{lojas: lojas, log: log, now: time.Now}
}

func toResponse(l *entity.Loja) dto.LojaResponse {
	return dto.LojaResponse{
		ID:         l.ID,
		Name:       l.Name,
		Numero:     l.Numero,
		Situacao:   l.Situacao,
		PotenciaID: l.PotenciaID,
		CreatedAt:  l.CreatedAt,
	}
}

// visible SaaS ve todas; admin de potência las de su potência; el resto solo la propia.
func visible(user *entity.User, l *entity.Loja) bool {
	switch {
	case role.IsSaasAdmin(user.Role):
		return true
	case role.IsPotenciaAdmin(user.Role):
		return user.PotenciaID != nil && l.PotenciaID != nil && *user.PotenciaID == *l.PotenciaID
	default:
		return user.LojaID != nil && *user.LojaID == l.ID
	}
}

// List lojas visibles para el usuario, por nombre.
func (uc *LojaUseCase) List(ctx context.Context, user *entity.User) ([]dto.LojaResponse, error) {
	all, err := uc.lojas.ListByTenant(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LojaResponse, 0, len(all))
	for i := range all {
		if visible(user, &all[i]) {
			out = append(out, toResponse(&all[i]))
		}
	}
	return out, nil
}

func (uc *LojaUseCase) load(ctx context.Context, user *entity.User, id string) (*entity.Loja, error) {
	l, err := uc.lojas.GetByID(ctx, user.TenantID, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrLojaNotFound
	}
	if !visible(user, l) {
		return nil, domain.ErrForbidden
	}
	return l, nil
}

// Get loja por id dentro del alcance del usuario.
func (uc *LojaUseCase) Get(ctx context.Context, user *entity.User, id string) (*dto.LojaResponse, error) {
	l, err := uc.load(ctx, user, id)
	if err != nil {
		return nil, err
	}
	out := toResponse(l)
	return &out, nil
}

// Valores mensalidade por condição y anuidade, con los valores por defecto aplicados.
func (uc *LojaUseCase) Valores(ctx context.Context, user *entity.User, id string) (*dto.LojaValoresResponse, error) {
	l, err := uc.load(ctx, user, id)
	if err != nil {
		return nil, err
	}
	base := domainbilling.DefaultMensalidade
	if l.ValorMensalidade != nil {
		base = *l.ValorMensalidade
	}
	return &dto.LojaValoresResponse{
		ValorMensalidade:   base,
		ValorAnuidade:      domainbilling.ResolveAnuidade(l),
		MensalidadeRegular: domainbilling.ResolveMensalidade(l, entity.CondicaoRegular),
		MensalidadeFiliado: domainbilling.ResolveMensalidade(l, entity.CondicaoFiliado),
		MensalidadeRemido:  domainbilling.ResolveMensalidade(l, entity.CondicaoRemido),
	}, nil
}

// Create alta de loja en el tenant (SaaS-admin).
func (uc *LojaUseCase) Create(ctx context.Context, user *entity.User, in dto.CreateLojaRequest) (*dto.LojaResponse, error) {
	if !role.IsSaasAdmin(user.Role) {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "Nome é obrigatório")
	}
	situacao := strings.ToUpper(strings.TrimSpace(in.Situacao))
	if situacao == "" {
		situacao = entity.LojaSituacaoAtiva
	}
	l := &entity.Loja{
		ID:         uuid.New().String(),
		TenantID:   user.TenantID,
		PotenciaID: in.PotenciaID,
		Name:       name,
		Numero:     in.Numero,
		Situacao:   situacao,
		CreatedAt:  uc.now(),
	}
	if err := uc.lojas.Create(ctx, l); err != nil {
		return nil, err
	}
	uc.log.Info().Str("loja_id", l.ID).Str("user_id", user.ID).Msg("loja criada")
	out := toResponse(l)
	return &out, nil
}

func nonNegative(field string, v *decimal.Decimal) error {
	if v != nil && v.IsNegative() {
		return domain.NewValidationError(field, "Valor não pode ser negativo")
	}
	return nil
}

// Update edición parcial. El admin de loja solo edita la propia.
func (uc *LojaUseCase) Update(ctx context.Context, user *entity.User, id string, in dto.UpdateLojaRequest) (*dto.LojaResponse, error) {
	if !role.IsAdmin(user.Role) {
		return nil, domain.ErrForbidden
	}
	l, err := uc.load(ctx, user, id)
	if err != nil {
		return nil, err
	}

	values := []struct {
		field string
		in    *decimal.Decimal
		dst   **decimal.Decimal
	}{
		{"valorMensalidade", in.ValorMensalidade, &l.ValorMensalidade},
		{"mensalidadeRegular", in.MensalidadeRegular, &l.MensalidadeRegular},
		{"mensalidadeFiliado", in.MensalidadeFiliado, &l.MensalidadeFiliado},
		{"mensalidadeRemido", in.MensalidadeRemido, &l.MensalidadeRemido},
		{"valorAnuidade", in.ValorAnuidade, &l.ValorAnuidade},
	}
	for _, v := range values {
		if err := nonNegative(v.field, v.in); err != nil {
			return nil, err
		}
		if v.in != nil {
			d := *v.in
			*v.dst = &d
		}
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "Nome é obrigatório")
		}
		l.Name = name
	}
	if in.Numero != nil {
		l.Numero = in.Numero
	}
	if in.Situacao != nil {
		if s := strings.ToUpper(strings.TrimSpace(*in.Situacao)); s != "" {
			l.Situacao = s
		}
	}
	if in.PotenciaID != nil {
		if !role.IsSaasAdmin(user.Role) {
			return nil, domain.ErrForbidden
		}
		l.PotenciaID = in.PotenciaID
	}

	if err := uc.lojas.Update(ctx, l); err != nil {
		return nil, err
	}
	uc.log.Info().Str("loja_id", l.ID).Str("user_id", user.ID).Msg("loja atualizada")
	out := toResponse(l)
	return &out, nil
}
