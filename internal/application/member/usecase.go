// Package member gestión de membros con alcance por rol e importación masiva.
package member

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

// MemberUseCase casos de uso de membros.
type MemberUseCase struct {
	members repository.MemberRepository
	lojas   repository.LojaRepository
	log     *logger.Logger
}

func NewMemberUseCase(members repository.MemberRepository, lojas repository.LojaRepository, log *logger.Logger) *MemberUseCase {
	return &MemberUseCase{members: members, lojas: lojas, log: log}
}

// List membros visibles para el usuario. SaaS ve el tenant; admin de potência su potência;
// el resto su loja.
func (uc *MemberUseCase) List(ctx context.Context, user *entity.User, status string) ([]dto.MemberResponse, error) {
	if !role.CanViewMembers(user.Role) {
		return nil, domain.ErrForbidden
	}
	f := repository.MemberFilter{TenantID: user.TenantID}
	if s := strings.ToUpper(strings.TrimSpace(status)); s != "" {
		f.Situacao = &s
	}

	switch {
	case role.IsSaasAdmin(user.Role):
	case role.IsPotenciaAdmin(user.Role):
		if user.PotenciaID == nil {
			return nil, domain.ErrForbidden
		}
		f.PotenciaID = user.PotenciaID
	default:
		if user.LojaID == nil {
			return nil, domain.ErrNoLoja
		}
		f.LojaID = user.LojaID
	}

	list, err := uc.members.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MemberResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toResponse(m))
	}
	return out, nil
}

func toResponse(m entity.Member) dto.MemberResponse {
	return dto.MemberResponse{
		ID:           m.ID,
		NomeCompleto: m.NomeCompleto,
		Class:        m.Class,
		Situacao:     m.Situacao,
		Email:        m.Email,
		LojaID:       m.LojaID,
	}
}

// ImportRow fila ya normalizada de la planilla de membros.
type ImportRow struct {
	NomeCompleto        string
	Email               string
	Class               string
	Situacao            string
	CondicaoMensalidade string
}

// ImportResult totales de una importación.
type ImportResult struct {
	Created int
	Skipped int
	Errors  []string
}

// Import crea membros en la loja indicada. Filas con email ya registrado en el tenant se omiten.
func (uc *MemberUseCase) Import(ctx context.Context, tenantID, lojaID string, rows []ImportRow) (*ImportResult, error) {
	loja, err := uc.lojas.GetByID(ctx, tenantID, lojaID)
	if err != nil {
		return nil, err
	}
	if loja == nil {
		return nil, domain.ErrNoLoja
	}

	res := &ImportResult{}
	for i, r := range rows {
		line := i + 2 // cabecera en la línea 1
		name := strings.TrimSpace(r.NomeCompleto)
		if name == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("linha %d: nome vazio", line))
			continue
		}
		email := strings.ToLower(strings.TrimSpace(r.Email))
		if email != "" {
			existing, err := uc.members.GetByEmail(ctx, tenantID, email)
			if err != nil {
				return res, err
			}
			if existing != nil {
				res.Skipped++
				continue
			}
		}

		situacao := strings.ToUpper(strings.TrimSpace(r.Situacao))
		if situacao == "" {
			situacao = entity.MemberSituacaoAtivo
		}
		condicao := strings.ToUpper(strings.TrimSpace(r.CondicaoMensalidade))
		switch condicao {
		case entity.CondicaoRegular, entity.CondicaoFiliado, entity.CondicaoRemido:
		case "":
			condicao = entity.CondicaoRegular
		default:
			res.Errors = append(res.Errors, fmt.Sprintf("linha %d: condição desconhecida %q", line, r.CondicaoMensalidade))
			continue
		}

		m := &entity.Member{
			ID:                  uuid.New().String(),
			TenantID:            tenantID,
			LojaID:              loja.ID,
			NomeCompleto:        name,
			Email:               email,
			Situacao:            situacao,
			CondicaoMensalidade: condicao,
			CreatedAt:           time.Now(),
		}
		if c := strings.TrimSpace(r.Class); c != "" {
			m.Class = &c
		}
		if err := uc.members.Create(ctx, m); err != nil {
			return res, fmt.Errorf("linha %d: %w", line, err)
		}
		res.Created++
	}

	uc.log.Info().
		Str("loja_id", loja.ID).
		Int("created", res.Created).
		Int("skipped", res.Skipped).
		Int("errors", len(res.Errors)).
		Msg("importação de membros concluída")
	return res, nil
}
