package attendance

import (
	"context"
	"math"
	"sort"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	domainatt "github.com/esferaordo/ordo-api/internal/domain/attendance"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
	"github.com/esferaordo/ordo-api/internal/domain/role"
)

// Frequency relatório membro × sessão del período. Solo entran sessões que ya ocurrieron
// y membros ATIVO; el porcentaje se calcula sobre las presenças registradas.
func (uc *AttendanceUseCase) Frequency(ctx context.Context, user *entity.User, q dto.FrequencyQuery) (*dto.FrequencyResponse, error) {
	if !role.CanAccessPresence(user.Role) {
		return nil, domain.ErrForbidden
	}
	lojaID, err := lojaScope(user, optional(q.LojaID))
	if err != nil {
		return nil, err
	}
	loc, err := uc.location(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	from, to, err := dateRange(q.DataInicio, q.DataFim, loc)
	if err != nil {
		return nil, err
	}

	all, err := uc.meetings.List(ctx, repository.MeetingFilter{TenantID: user.TenantID, LojaID: lojaID, From: from, To: to})
	if err != nil {
		return nil, err
	}
	now := uc.now()
	meetings := make([]entity.Meeting, 0, len(all))
	for _, m := range all {
		if domainatt.CanMarkAttendance(m.Date, now, loc) {
			meetings = append(meetings, m)
		}
	}
	sort.SliceStable(meetings, func(i, j int) bool { return meetings[i].Date.Before(meetings[j].Date) })

	ativo := entity.MemberSituacaoAtivo
	members, err := uc.members.List(ctx, repository.MemberFilter{TenantID: user.TenantID, LojaID: lojaID, Situacao: &ativo})
	if err != nil {
		return nil, err
	}

	var rows []entity.Attendance
	if len(meetings) > 0 {
		ids := make([]string, 0, len(meetings))
		for _, m := range meetings {
			ids = append(ids, m.ID)
		}
		if rows, err = uc.attendances.ListByMeetings(ctx, user.TenantID, ids); err != nil {
			return nil, err
		}
	}

	type tally struct{ present, recorded int }
	byMember := make(map[string]*tally, len(members))
	for _, mb := range members {
		byMember[mb.ID] = &tally{}
	}
	perMeeting := make(map[string]int, len(meetings))
	out := &dto.FrequencyResponse{
		Meetings:    make([]dto.MeetingResponse, 0, len(meetings)),
		Members:     make([]dto.FrequencyMember, 0, len(members)),
		Attendances: make([]dto.FrequencyAttendance, 0, len(rows)),
		MemberStats: make([]dto.MemberFrequency, 0, len(members)),
	}
	for _, a := range rows {
		perMeeting[a.MeetingID]++
		t, ok := byMember[a.MemberID]
		if !ok {
			continue
		}
		t.recorded++
		if a.Status == entity.AttendancePresente {
			t.present++
		}
		out.Attendances = append(out.Attendances, dto.FrequencyAttendance{MeetingID: a.MeetingID, MemberID: a.MemberID, Status: a.Status})
	}

	for _, m := range meetings {
		out.Meetings = append(out.Meetings, meetingResponse(m, perMeeting[m.ID], now, loc))
	}
	for _, mb := range members {
		out.Members = append(out.Members, dto.FrequencyMember{ID: mb.ID, NomeCompleto: mb.NomeCompleto, Class: mb.Class, LojaID: mb.LojaID})
		t := byMember[mb.ID]
		out.MemberStats = append(out.MemberStats, dto.MemberFrequency{
			MemberID:      mb.ID,
			MemberName:    mb.NomeCompleto,
			MemberClass:   mb.Class,
			TotalPresent:  t.present,
			TotalRecorded: t.recorded,
			Percentage:    percentage(t.present, t.recorded),
		})
	}
	return out, nil
}

func percentage(present, recorded int) int {
	if recorded == 0 {
		return 0
	}
	return int(math.Round(float64(present) * 100 / float64(recorded)))
}
