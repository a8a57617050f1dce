package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/internal/testutil/memstore"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

func seedLojas(s *memstore.Store) *memstore.Store {
	s.Lojas["la"] = &entity.Loja{ID: "la", TenantID: "t1", Name: "Loja A", Situacao: entity.LojaSituacaoAtiva}
	s.Lojas["lb"] = &entity.Loja{ID: "lb", TenantID: "t1", Name: "Loja B", Situacao: entity.LojaSituacaoAtiva}
	return s
}

func newMeetingUC(s *memstore.Store) *MeetingUseCase {
	uc := NewMeetingUseCase(
		memstore.NewTenantRepo(s), memstore.NewLojaRepo(s), memstore.NewMeetingRepo(s),
		memstore.NewMemberRepo(s), memstore.NewAttendanceRepo(s), saoPaulo, logger.Nop(),
	)
	uc.now = func() time.Time { return now }
	return uc
}

var (
	lodgeA = &entity.User{ID: "u-a", TenantID: "t1", Role: role.LodgeAdmin, LojaID: strPtr("la")}
	saas   = &entity.User{ID: "u-s", TenantID: "t1", Role: role.SaasAdmin}
)

func TestMeetings_ListPorLojaConConteo(t *testing.T) {
	uc := newMeetingUC(seedLojas(seed()))

	out, err := uc.List(context.Background(), lodgeA, dto.MeetingQuery{})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "s-fut", out[0].ID, "más reciente primero")
	assert.False(t, out[0].CanMarkAttendance)
	assert.Equal(t, "s-out", out[1].ID)
	assert.Equal(t, 3, out[1].AttendanceCount)
	assert.True(t, out[1].CanMarkAttendance)
	assert.Equal(t, 1, out[2].AttendanceCount)
}

func TestMeetings_ListFiltroPorFechas(t *testing.T) {
	uc := newMeetingUC(seedLojas(seed()))

	out, err := uc.List(context.Background(), saas, dto.MeetingQuery{DataInicio: "2026-10-01", DataFim: "2026-10-12"})
	require.NoError(t, err)
	require.Len(t, out, 2, "dataFim sin hora incluye todo el día")
	assert.Equal(t, "s-out-b", out[0].ID)
	assert.Equal(t, "s-out", out[1].ID)

	_, err = uc.List(context.Background(), saas, dto.MeetingQuery{DataInicio: "ontem"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "dataInicio", verr.Field)
}

func TestMeetings_ListOtraLojaProhibida(t *testing.T) {
	uc := newMeetingUC(seedLojas(seed()))
	_, err := uc.List(context.Background(), lodgeA, dto.MeetingQuery{LojaID: "lb"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.List(context.Background(), &entity.User{TenantID: "t1", Role: role.Treasurer}, dto.MeetingQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMeetings_GetConNombres(t *testing.T) {
	uc := newMeetingUC(seedLojas(seed()))

	out, err := uc.Get(context.Background(), lodgeA, "s-out")
	require.NoError(t, err)
	assert.Equal(t, 3, out.AttendanceCount)
	require.Len(t, out.Attendances, 3)
	names := map[string]string{}
	for _, a := range out.Attendances {
		names[a.MemberID] = a.NomeCompleto
	}
	assert.Equal(t, "Ana", names["m1"])

	_, err = uc.Get(context.Background(), lodgeA, "s-out-b")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Get(context.Background(), lodgeA, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMeetings_CreateEnLojaDelUsuario(t *testing.T) {
	s := seedLojas(seed())
	uc := newMeetingUC(s)

	out, err := uc.Create(context.Background(), lodgeA, dto.CreateMeetingRequest{
		DataSessao: "2026-10-25",
		Tipo:       "magna",
		Titulo:     strPtr("  Sessão Magna  "),
		Descricao:  strPtr("   "),
	})
	require.NoError(t, err)
	assert.Equal(t, "la", out.LojaID)
	assert.Equal(t, entity.MeetingMagna, out.Tipo)
	assert.Equal(t, "Sessão Magna", out.Titulo)
	assert.Nil(t, out.Descricao)
	assert.False(t, out.CanMarkAttendance)
	assert.Contains(t, s.Meetings, out.ID)
}

func TestMeetings_CreateValidaciones(t *testing.T) {
	uc := newMeetingUC(seedLojas(seed()))
	ctx := context.Background()

	cases := []struct {
		name  string
		req   dto.CreateMeetingRequest
		field string
	}{
		{"sin fecha", dto.CreateMeetingRequest{Tipo: "ORDINARIA"}, "dataSessao"},
		{"fecha inválida", dto.CreateMeetingRequest{DataSessao: "31/02/2026", Tipo: "ORDINARIA"}, "dataSessao"},
		{"tipo desconocido", dto.CreateMeetingRequest{DataSessao: "2026-10-25", Tipo: "BANQUETE"}, "tipo"},
		{"título vacío", dto.CreateMeetingRequest{DataSessao: "2026-10-25", Tipo: "LUTO", Titulo: strPtr(" ")}, "titulo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, lodgeA, tc.req)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestMeetings_CreateSaasExigeLoja(t *testing.T) {
	uc := newMeetingUC(seedLojas(seed()))
	ctx := context.Background()
	req := dto.CreateMeetingRequest{DataSessao: "2026-10-25", Tipo: "ORDINARIA"}

	_, err := uc.Create(ctx, saas, req)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "lojaId", verr.Field)

	req.LojaID = strPtr("00000000-0000-0000-0000-000000000000")
	_, err = uc.Create(ctx, saas, req)
	assert.ErrorIs(t, err, domain.ErrLojaNotFound)

	req.LojaID = strPtr("lb")
	out, err := uc.Create(ctx, saas, req)
	require.NoError(t, err)
	assert.Equal(t, "lb", out.LojaID)

	_, err = uc.Create(ctx, lodgeA, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMeetings_UpdateParcial(t *testing.T) {
	s := seedLojas(seed())
	s.Meetings["s-fut"].Tipo = entity.MeetingOrdinaria
	uc := newMeetingUC(s)

	out, err := uc.Update(context.Background(), lodgeA, "s-fut", dto.UpdateMeetingRequest{
		DataSessao:  strPtr("2026-10-10T20:00"),
		Observacoes: strPtr("adiada"),
	})
	require.NoError(t, err)
	assert.True(t, out.CanMarkAttendance, "la nueva fecha ya pasó")
	assert.Equal(t, entity.MeetingOrdinaria, out.Tipo, "tipo sin cambios")
	require.NotNil(t, out.Observacoes)
	assert.Equal(t, "adiada", *out.Observacoes)
	assert.Equal(t, "la", s.Meetings["s-fut"].LojaID)

	_, err = uc.Update(context.Background(), lodgeA, "s-fut", dto.UpdateMeetingRequest{Tipo: strPtr("X")})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestMeetings_DeleteBorraPresencas(t *testing.T) {
	s := seedLojas(seed())
	uc := newMeetingUC(s)

	require.NoError(t, uc.Delete(context.Background(), lodgeA, "s-out"))
	assert.NotContains(t, s.Meetings, "s-out")
	for _, a := range s.Attendances {
		assert.NotEqual(t, "s-out", a.MeetingID)
	}

	err := uc.Delete(context.Background(), lodgeA, "s-out-b")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
