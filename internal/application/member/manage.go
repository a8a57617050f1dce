package member

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/role"
)

func toDetail(m *entity.Member) *dto.MemberDetailResponse {
	return &dto.MemberDetailResponse{
		MemberResponse:      toResponse(*m),
		CondicaoMensalidade: m.CondicaoMensalidade,
		UserID:              m.UserID,
	}
}

// visible aplica el mismo alcance que List a un membro concreto.
func (uc *MemberUseCase) visible(ctx context.Context, user *entity.User, m *entity.Member) (bool, error) {
	switch {
	case role.IsSaasAdmin(user.Role):
		return true, nil
	case role.IsPotenciaAdmin(user.Role):
		if user.PotenciaID == nil {
			return false, nil
		}
		l, err := uc.lojas.GetByID(ctx, user.TenantID, m.LojaID)
		if err != nil || l == nil {
			return false, err
		}
		return l.PotenciaID != nil && *l.PotenciaID == *user.PotenciaID, nil
	default:
		return user.LojaID != nil && *user.LojaID == m.LojaID, nil
	}
}

func (uc *MemberUseCase) load(ctx context.Context, user *entity.User, id string) (*entity.Member, error) {
	m, err := uc.members.GetByID(ctx, user.TenantID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMemberNotFound
	}
	ok, err := uc.visible(ctx, user, m)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	return m, nil
}

// Get detalle de un membro dentro del alcance del usuario.
func (uc *MemberUseCase) Get(ctx context.Context, user *entity.User, id string) (*dto.MemberDetailResponse, error) {
	if !role.CanViewMembers(user.Role) {
		return nil, domain.ErrForbidden
	}
	m, err := uc.load(ctx, user, id)
	if err != nil {
		return nil, err
	}
	return toDetail(m), nil
}

func normalizeCondicao(s string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	switch c {
	case "":
		return entity.CondicaoRegular, nil
	case entity.CondicaoRegular, entity.CondicaoFiliado, entity.CondicaoRemido:
		return c, nil
	}
	return "", domain.NewValidationError("condicaoMensalidade", "Condição deve ser REGULAR, FILIADO ou REMIDO")
}

// emailFree falla con ErrDuplicate si otro membro del tenant ya usa el email.
func (uc *MemberUseCase) emailFree(ctx context.Context, tenantID, email, selfID string) error {
	if email == "" {
		return nil
	}
	other, err := uc.members.GetByEmail(ctx, tenantID, email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return domain.ErrDuplicate
	}
	return nil
}

// Create alta de membro en la loja del usuario.
func (uc *MemberUseCase) Create(ctx context.Context, user *entity.User, in dto.CreateMemberRequest) (*dto.MemberDetailResponse, error) {
	if !role.CanManageMembers(user.Role) {
		return nil, domain.ErrForbidden
	}
	if user.LojaID == nil {
		return nil, domain.ErrNoLoja
	}
	name := strings.TrimSpace(in.NomeCompleto)
	if name == "" {
		return nil, domain.NewValidationError("nomeCompleto", "Nome é obrigatório")
	}
	condicao, err := normalizeCondicao(in.CondicaoMensalidade)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := uc.emailFree(ctx, user.TenantID, email, ""); err != nil {
		return nil, err
	}
	situacao := strings.ToUpper(strings.TrimSpace(in.Situacao))
	if situacao == "" {
		situacao = entity.MemberSituacaoAtivo
	}

	m := &entity.Member{
		ID:                  uuid.New().String(),
		TenantID:            user.TenantID,
		LojaID:              *user.LojaID,
		NomeCompleto:        name,
		Email:               email,
		Situacao:            situacao,
		CondicaoMensalidade: condicao,
		CreatedAt:           time.Now(),
	}
	if in.Class != nil {
		if c := strings.TrimSpace(*in.Class); c != "" {
			m.Class = &c
		}
	}
	if err := uc.members.Create(ctx, m); err != nil {
		return nil, err
	}
	uc.log.Info().Str("member_id", m.ID).Str("loja_id", m.LojaID).Str("user_id", user.ID).Msg("membro criado")
	return toDetail(m), nil
}

// Update edición parcial; solo membros de la loja del usuario.
func (uc *MemberUseCase) Update(ctx context.Context, user *entity.User, id string, in dto.UpdateMemberRequest) (*dto.MemberDetailResponse, error) {
	if !role.CanManageMembers(user.Role) {
		return nil, domain.ErrForbidden
	}
	m, err := uc.load(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if in.NomeCompleto != nil {
		name := strings.TrimSpace(*in.NomeCompleto)
		if name == "" {
			return nil, domain.NewValidationError("nomeCompleto", "Nome é obrigatório")
		}
		m.NomeCompleto = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if err := uc.emailFree(ctx, user.TenantID, email, m.ID); err != nil {
			return nil, err
		}
		m.Email = email
	}
	if in.Class != nil {
		m.Class = nil
		if c := strings.TrimSpace(*in.Class); c != "" {
			m.Class = &c
		}
	}
	if in.Situacao != nil {
		if s := strings.ToUpper(strings.TrimSpace(*in.Situacao)); s != "" {
			m.Situacao = s
		}
	}
	if in.CondicaoMensalidade != nil {
		c, err := normalizeCondicao(*in.CondicaoMensalidade)
		if err != nil {
			return nil, err
		}
		m.CondicaoMensalidade = c
	}

	if err := uc.members.Update(ctx, m); err != nil {
		return nil, err
	}
	uc.log.Info().Str("member_id", m.ID).Str("user_id", user.ID).Msg("membro atualizado")
	return toDetail(m), nil
}

// Delete borra el membro. Con pagamentos, cobranças o presenças asociadas devuelve ErrConflict.
func (uc *MemberUseCase) Delete(ctx context.Context, user *entity.User, id string) error {
	if !role.CanDeleteMembers(user.Role) {
		return domain.ErrForbidden
	}
	m, err := uc.load(ctx, user, id)
	if err != nil {
		return err
	}
	if err := uc.members.Delete(ctx, user.TenantID, m.ID); err != nil {
		return err
	}
	uc.log.Info().Str("member_id", m.ID).Str("user_id", user.ID).Msg("membro excluído")
	return nil
}
