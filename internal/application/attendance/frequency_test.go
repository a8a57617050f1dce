package attendance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/role"
)

func TestFrequency_SoloSessoesPasadasYMembrosAtivos(t *testing.T) {
	s := seed()
	s.Members["m3"] = &entity.Member{ID: "m3", TenantID: "t1", LojaID: "la", NomeCompleto: "Caio", Situacao: entity.MemberSituacaoAtivo}
	s.Members["m4"] = &entity.Member{ID: "m4", TenantID: "t1", LojaID: "la", NomeCompleto: "Davi", Situacao: "IRREGULAR"}
	uc := newUC(s, now)

	out, err := uc.Frequency(context.Background(), lodgeA, dto.FrequencyQuery{})
	require.NoError(t, err)

	require.Len(t, out.Meetings, 2, "s-fut todavía no ocurrió")
	assert.Equal(t, "s-set", out.Meetings[0].ID, "orden cronológico")
	assert.Equal(t, "s-out", out.Meetings[1].ID)
	assert.Equal(t, 3, out.Meetings[1].AttendanceCount)

	require.Len(t, out.Members, 2)
	assert.Equal(t, "Ana", out.Members[0].NomeCompleto)
	assert.Equal(t, "Caio", out.Members[1].NomeCompleto)
	assert.Len(t, out.Attendances, 2, "solo filas de membros del relatório")

	require.Len(t, out.MemberStats, 2)
	assert.Equal(t, dto.MemberFrequency{MemberID: "m1", MemberName: "Ana", TotalPresent: 1, TotalRecorded: 2, Percentage: 50}, out.MemberStats[0])
	assert.Equal(t, 0, out.MemberStats[1].Percentage)
	assert.Equal(t, 0, out.MemberStats[1].TotalRecorded)
}

func TestFrequency_RangoDeFechas(t *testing.T) {
	uc := newUC(seed(), now)
	out, err := uc.Frequency(context.Background(), saas, dto.FrequencyQuery{LojaID: "la", DataInicio: "2026-10-01"})
	require.NoError(t, err)
	require.Len(t, out.Meetings, 1)
	assert.Equal(t, "s-out", out.Meetings[0].ID)
	assert.Equal(t, 100, out.MemberStats[0].Percentage)
}

func TestFrequency_Permisos(t *testing.T) {
	uc := newUC(seed(), now)
	_, err := uc.Frequency(context.Background(), &entity.User{TenantID: "t1", Role: role.Member}, dto.FrequencyQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Frequency(context.Background(), lodgeA, dto.FrequencyQuery{LojaID: "lb"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, percentage(0, 0))
	assert.Equal(t, 67, percentage(2, 3))
	assert.Equal(t, 33, percentage(1, 3))
	assert.Equal(t, 100, percentage(4, 4))
}
