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

func strPtr(s string) *string { return &s }

func seed() *memstore.Store {
	s := memstore.New()
	s.Lojas["la"] = &entity.Loja{ID: "la", TenantID: "t1", Name: "A", PotenciaID: strPtr("p1")}
	s.Lojas["lb"] = &entity.Loja{ID: "lb", TenantID: "t1", Name: "B", PotenciaID: strPtr("p2")}
	s.Members["m1"] = &entity.Member{ID: "m1", TenantID: "t1", LojaID: "la", NomeCompleto: "Ana", Email: "ana@x.org", Situacao: entity.MemberSituacaoAtivo}
	s.Members["m2"] = &entity.Member{ID: "m2", TenantID: "t1", LojaID: "la", NomeCompleto: "Bia", Situacao: "IRREGULAR"}
	s.Members["m3"] = &entity.Member{ID: "m3", TenantID: "t1", LojaID: "lb", NomeCompleto: "Caio", Situacao: entity.MemberSituacaoAtivo}
	s.Members["m4"] = &entity.Member{ID: "m4", TenantID: "t2", LojaID: "lz", NomeCompleto: "Dora", Situacao: entity.MemberSituacaoAtivo}
	return s
}

func ids(list []dto.MemberResponse) []string {
	out := make([]string, 0, len(list))
	for _, m := range list {
		out = append(out, m.ID)
	}
	return out
}

func TestList_AlcancePorRol(t *testing.T) {
	s := seed()
	uc := member.NewMemberUseCase(memstore.NewMemberRepo(s), memstore.NewLojaRepo(s), logger.Nop())
	ctx := context.Background()

	cases := []struct {
		name string
		user *entity.User
		want []string
	}{
		{"saas ve el tenant", &entity.User{TenantID: "t1", Role: role.SaasAdmin}, []string{"m1", "m2", "m3"}},
		{"potência ve sus lojas", &entity.User{TenantID: "t1", Role: role.PotenciaAdmin, PotenciaID: strPtr("p2")}, []string{"m3"}},
		{"loja admin ve su loja", &entity.User{TenantID: "t1", Role: role.LodgeAdmin, LojaID: strPtr("la")}, []string{"m1", "m2"}},
		{"member ve su loja", &entity.User{TenantID: "t1", Role: role.Member, LojaID: strPtr("lb")}, []string{"m3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uc.List(ctx, tc.user, "")
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestList_FiltroSituacao(t *testing.T) {
	s := seed()
	uc := member.NewMemberUseCase(memstore.NewMemberRepo(s), memstore.NewLojaRepo(s), logger.Nop())
	got, err := uc.List(context.Background(), &entity.User{TenantID: "t1", Role: role.Secretary, LojaID: strPtr("la")}, "ativo")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, ids(got))
}

func TestList_SinAlcance(t *testing.T) {
	s := seed()
	uc := member.NewMemberUseCase(memstore.NewMemberRepo(s), memstore.NewLojaRepo(s), logger.Nop())
	ctx := context.Background()

	_, err := uc.List(ctx, &entity.User{TenantID: "t1", Role: role.Treasurer}, "")
	assert.ErrorIs(t, err, domain.ErrNoLoja)

	_, err = uc.List(ctx, &entity.User{TenantID: "t1", Role: role.PotenciaAdmin}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.List(ctx, &entity.User{TenantID: "t1", Role: "DESCONOCIDO"}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestImport(t *testing.T) {
	s := seed()
	uc := member.NewMemberUseCase(memstore.NewMemberRepo(s), memstore.NewLojaRepo(s), logger.Nop())

	res, err := uc.Import(context.Background(), "t1", "lb", []member.ImportRow{
		{NomeCompleto: "Eduardo Lima", Email: "EDU@x.org", Class: "Mestre", CondicaoMensalidade: "filiado"},
		{NomeCompleto: "Ana Duplicada", Email: "ana@x.org"},
		{NomeCompleto: " ", Email: "vazio@x.org"},
		{NomeCompleto: "Fabio", CondicaoMensalidade: "ISENTO"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, res.Errors, 2)

	m, err := memstore.NewMemberRepo(s).GetByEmail(context.Background(), "t1", "edu@x.org")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "lb", m.LojaID)
	assert.Equal(t, entity.CondicaoFiliado, m.CondicaoMensalidade)
	assert.Equal(t, entity.MemberSituacaoAtivo, m.Situacao)
	require.NotNil(t, m.Class)
	assert.Equal(t, "Mestre", *m.Class)
}

func TestImport_LojaInexistente(t *testing.T) {
	s := seed()
	uc := member.NewMemberUseCase(memstore.NewMemberRepo(s), memstore.NewLojaRepo(s), logger.Nop())
	_, err := uc.Import(context.Background(), "t1", "nope", nil)
	assert.ErrorIs(t, err, domain.ErrNoLoja)
}
