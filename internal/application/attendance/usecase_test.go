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

var saoPaulo = mustLoad("America/Sao_Paulo")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("UTC-3", -3*60*60)
	}
	return loc
}

func strPtr(s string) *string { return &s }

func seed() *memstore.Store {
	s := memstore.New()
	s.Tenants["t1"] = &entity.Tenant{ID: "t1", Name: "Grande Oriente", Timezone: "America/Sao_Paulo"}
	s.Members["m1"] = &entity.Member{ID: "m1", TenantID: "t1", LojaID: "la", NomeCompleto: "Ana", Situacao: entity.MemberSituacaoAtivo}
	s.Members["m2"] = &entity.Member{ID: "m2", TenantID: "t1", LojaID: "lb", NomeCompleto: "Beto", Situacao: entity.MemberSituacaoAtivo}

	s.Meetings["s-out"] = &entity.Meeting{ID: "s-out", TenantID: "t1", LojaID: "la", Date: time.Date(2026, 10, 5, 20, 0, 0, 0, saoPaulo)}
	s.Meetings["s-out-b"] = &entity.Meeting{ID: "s-out-b", TenantID: "t1", LojaID: "lb", Date: time.Date(2026, 10, 12, 20, 0, 0, 0, saoPaulo)}
	s.Meetings["s-set"] = &entity.Meeting{ID: "s-set", TenantID: "t1", LojaID: "la", Date: time.Date(2026, 9, 30, 20, 0, 0, 0, saoPaulo)}
	s.Meetings["s-fut"] = &entity.Meeting{ID: "s-fut", TenantID: "t1", LojaID: "la", Date: time.Date(2026, 10, 19, 20, 0, 0, 0, saoPaulo)}

	s.Attendances = append(s.Attendances,
		&entity.Attendance{TenantID: "t1", MeetingID: "s-out", MemberID: "m1", Status: entity.AttendancePresente},
		&entity.Attendance{TenantID: "t1", MeetingID: "s-out", MemberID: "x1", Status: entity.AttendanceFalta},
		&entity.Attendance{TenantID: "t1", MeetingID: "s-out", MemberID: "x2", Status: entity.AttendanceJustificada},
		&entity.Attendance{TenantID: "t1", MeetingID: "s-out-b", MemberID: "m2", Status: entity.AttendancePresente},
		&entity.Attendance{TenantID: "t1", MeetingID: "s-set", MemberID: "m1", Status: entity.AttendanceFalta},
	)
	return s
}

func newUC(s *memstore.Store, now time.Time) *AttendanceUseCase {
	uc := NewAttendanceUseCase(
		memstore.NewTenantRepo(s), memstore.NewMeetingRepo(s), memstore.NewMemberRepo(s), memstore.NewAttendanceRepo(s),
		memstore.TxRunner{S: s}, saoPaulo, logger.Nop(),
	)
	uc.now = func() time.Time { return now }
	return uc
}

// 2026-10-18 22:00 en São Paulo
var now = time.Date(2026, 10, 19, 1, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_TenantPorDefectoMesActual(t *testing.T) {
	uc := newUC(seed(), now)
	out, err := uc.Dashboard(context.Background(), &entity.User{TenantID: "t1", Role: role.SaasAdmin}, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, "outubro de 2026", out.MonthLabel, "el mes se resuelve en la zona del tenant")
	assert.Equal(t, ScopeTenant, out.Scope)
	assert.Equal(t, 2, out.Presentes)
	assert.Equal(t, 2, out.Faltas)
	// details.faltas incluye las justificadas, igual que el total
	assert.Equal(t, dto.PresenceDetails{Faltas: 2, Justificadas: 1, Presentes: 2}, out.Details)
}

func TestDashboard_LodgeAdminSoloSuLoja(t *testing.T) {
	uc := newUC(seed(), now)
	out, err := uc.Dashboard(context.Background(), &entity.User{TenantID: "t1", Role: role.LodgeAdmin, LojaID: strPtr("lb")}, 10, 2026)
	require.NoError(t, err)
	assert.Equal(t, ScopeLoja, out.Scope)
	assert.Equal(t, 1, out.Presentes)
	assert.Equal(t, 0, out.Faltas)
}

func TestDashboard_MesAnterior(t *testing.T) {
	uc := newUC(seed(), now)
	out, err := uc.Dashboard(context.Background(), &entity.User{TenantID: "t1", Role: role.Treasurer}, 9, 2026)
	require.NoError(t, err)
	assert.Equal(t, "setembro de 2026", out.MonthLabel)
	assert.Equal(t, 0, out.Presentes)
	assert.Equal(t, 1, out.Faltas)
}

func TestDashboard_SecretarioSinLoja(t *testing.T) {
	uc := newUC(seed(), now)
	_, err := uc.Dashboard(context.Background(), &entity.User{TenantID: "t1", Role: role.Secretary}, 0, 0)
	assert.ErrorIs(t, err, domain.ErrNoLoja)
}

func TestDashboard_MesFueraDeRangoUsaMesActual(t *testing.T) {
	uc := newUC(seed(), now)
	admin := &entity.User{TenantID: "t1", Role: role.SaasAdmin}

	for _, month := range []int{13, -1, 0} {
		out, err := uc.Dashboard(context.Background(), admin, month, 2026)
		require.NoError(t, err)
		assert.Equal(t, "outubro de 2026", out.MonthLabel, "month=%d", month)
		assert.Equal(t, 2, out.Presentes)
	}

	out, err := uc.Dashboard(context.Background(), admin, 9, -5)
	require.NoError(t, err)
	assert.Equal(t, "setembro de 2026", out.MonthLabel)
}

// ──────────────────────────────────────────────────────────────────────────────
// Marcación
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkAttendance_SessaoFutura(t *testing.T) {
	uc := newUC(seed(), now)
	user := &entity.User{ID: "sec", TenantID: "t1", Role: role.Secretary, LojaID: strPtr("la")}
	_, err := uc.MarkAttendance(context.Background(), user, "s-fut", dto.MarkAttendanceRequest{
		Entries: []dto.AttendanceEntry{{MemberID: "m1", Status: entity.AttendancePresente}},
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotHappened)
}

func TestMarkAttendance_Upsert(t *testing.T) {
	s := seed()
	uc := newUC(s, now)
	user := &entity.User{ID: "sec", TenantID: "t1", Role: role.Secretary, LojaID: strPtr("la")}

	out, err := uc.MarkAttendance(context.Background(), user, "s-set", dto.MarkAttendanceRequest{
		Entries: []dto.AttendanceEntry{{MemberID: "m1", Status: entity.AttendanceJustificada, Notes: "viagem"}},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	list, err := uc.ListMeetingAttendance(context.Background(), user, "s-set")
	require.NoError(t, err)
	assert.True(t, list.CanMark)
	require.Len(t, list.Attendances, 1, "la fila existente se actualiza, no se duplica")
	assert.Equal(t, entity.AttendanceJustificada, list.Attendances[0].Status)
	assert.Equal(t, "viagem", list.Attendances[0].Notes)
}

func TestMarkAttendance_MismoDiaPermitido(t *testing.T) {
	s := seed()
	s.Meetings["s-hoy"] = &entity.Meeting{ID: "s-hoy", TenantID: "t1", LojaID: "la", Date: time.Date(2026, 10, 18, 23, 30, 0, 0, saoPaulo)}
	uc := newUC(s, now)
	_, err := uc.MarkAttendance(context.Background(), &entity.User{ID: "a", TenantID: "t1", Role: role.SaasAdmin}, "s-hoy", dto.MarkAttendanceRequest{
		Entries: []dto.AttendanceEntry{{MemberID: "m1", Status: entity.AttendancePresente}},
	})
	assert.NoError(t, err)
}

func TestMarkAttendance_Permisos(t *testing.T) {
	uc := newUC(seed(), now)
	ctx := context.Background()
	req := dto.MarkAttendanceRequest{Entries: []dto.AttendanceEntry{{MemberID: "m1", Status: entity.AttendancePresente}}}

	_, err := uc.MarkAttendance(ctx, &entity.User{TenantID: "t1", Role: role.Member}, "s-set", req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.MarkAttendance(ctx, &entity.User{TenantID: "t1", Role: role.LodgeAdmin, LojaID: strPtr("lb")}, "s-set", req)
	assert.ErrorIs(t, err, domain.ErrForbidden, "sessão de otra loja")

	_, err = uc.MarkAttendance(ctx, &entity.User{TenantID: "t1", Role: role.SaasAdmin}, "nope", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.MarkAttendance(ctx, &entity.User{TenantID: "t1", Role: role.SaasAdmin}, "s-set", dto.MarkAttendanceRequest{
		Entries: []dto.AttendanceEntry{{MemberID: "m2", Status: entity.AttendancePresente}},
	})
	assert.ErrorIs(t, err, domain.ErrMemberNotFound, "membro de otra loja")
}
