package member_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/application/member"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/internal/testutil/memstore"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

var (
	secretaryA = &entity.User{ID: "u-sec", TenantID: "t1", Role: role.Secretary, LojaID: strPtr("la")}
	treasurerA = &entity.User{ID: "u-tes", TenantID: "t1", Role: role.Treasurer, LojaID: strPtr("la")}
)

func newUC(s *memstore.Store) *member.MemberUseCase {
	return member.NewMemberUseCase(memstore.NewMemberRepo(s), memstore.NewLojaRepo(s), logger.Nop())
}

func TestGet_AlcancePorRol(t *testing.T) {
	uc := newUC(seed())
	ctx := context.Background()

	out, err := uc.Get(ctx, treasurerA, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", out.NomeCompleto)

	_, err = uc.Get(ctx, treasurerA, "m3")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err = uc.Get(ctx, &entity.User{TenantID: "t1", Role: role.PotenciaAdmin, PotenciaID: strPtr("p2")}, "m3")
	require.NoError(t, err)
	assert.Equal(t, "lb", out.LojaID)

	_, err = uc.Get(ctx, treasurerA, "m4")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound, "otro tenant")
}

func TestCreate_EnLojaDelUsuario(t *testing.T) {
	s := seed()
	uc := newUC(s)

	out, err := uc.Create(context.Background(), secretaryA, dto.CreateMemberRequest{
		NomeCompleto: "  Elias  ",
		Email:        "Elias@X.org",
		Class:        strPtr("Mestre"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Elias", out.NomeCompleto)
	assert.Equal(t, "elias@x.org", out.Email)
	assert.Equal(t, "la", out.LojaID)
	assert.Equal(t, entity.MemberSituacaoAtivo, out.Situacao)
	assert.Equal(t, entity.CondicaoRegular, out.CondicaoMensalidade)
	assert.Contains(t, s.Members, out.ID)
}

func TestCreate_Reglas(t *testing.T) {
	uc := newUC(seed())
	ctx := context.Background()

	_, err := uc.Create(ctx, treasurerA, dto.CreateMemberRequest{NomeCompleto: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(ctx, secretaryA, dto.CreateMemberRequest{NomeCompleto: "X", Email: "ANA@x.org"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, &entity.User{TenantID: "t1", Role: role.LodgeAdmin}, dto.CreateMemberRequest{NomeCompleto: "X"})
	assert.ErrorIs(t, err, domain.ErrNoLoja)

	_, err = uc.Create(ctx, secretaryA, dto.CreateMemberRequest{NomeCompleto: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_Parcial(t *testing.T) {
	s := seed()
	uc := newUC(s)
	ctx := context.Background()

	out, err := uc.Update(ctx, secretaryA, "m2", dto.UpdateMemberRequest{
		Situacao:            strPtr("ativo"),
		CondicaoMensalidade: strPtr("remido"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bia", out.NomeCompleto)
	assert.Equal(t, entity.MemberSituacaoAtivo, s.Members["m2"].Situacao)
	assert.Equal(t, entity.CondicaoRemido, s.Members["m2"].CondicaoMensalidade)

	_, err = uc.Update(ctx, secretaryA, "m2", dto.UpdateMemberRequest{Email: strPtr("ana@x.org")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, secretaryA, "m1", dto.UpdateMemberRequest{Email: strPtr("ana@x.org")})
	assert.NoError(t, err, "mismo email del propio membro")

	_, err = uc.Update(ctx, secretaryA, "m3", dto.UpdateMemberRequest{NomeCompleto: strPtr("Z")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete_ConflictoConRegistros(t *testing.T) {
	s := seed()
	s.Payments = append(s.Payments, &entity.MemberPayment{ID: "p1", TenantID: "t1", MemberID: "m1"})
	uc := newUC(s)
	ctx := context.Background()

	err := uc.Delete(ctx, secretaryA, "m1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, s.Members, "m1")

	require.NoError(t, uc.Delete(ctx, secretaryA, "m2"))
	assert.NotContains(t, s.Members, "m2")

	err = uc.Delete(ctx, treasurerA, "m1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
