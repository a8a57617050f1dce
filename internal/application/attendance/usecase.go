// Package attendance casos de uso de presença: dashboard mensal y marcación por sessão.
package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	domainatt "github.com/esferaordo/ordo-api/internal/domain/attendance"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

// TxRunner ejecuta fn dentro de una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(repository.TxRepos) error) error
}

const (
	ScopeLoja   = "loja"
	ScopeTenant = "tenant"
)

// AttendanceUseCase dashboard y marcación de presenças.
type AttendanceUseCase struct {
	tenants     repository.TenantRepository
	meetings    repository.MeetingRepository
	members     repository.MemberRepository
	attendances repository.AttendanceRepository
	txRunner    TxRunner
	defaultLoc  *time.Location
	log         *logger.Logger
	now         func() time.Time
}

// NewAttendanceUseCase construye el caso de uso. defaultLoc se usa cuando el tenant no tiene zona.
func NewAttendanceUseCase(
	tenants repository.TenantRepository,
	meetings repository.MeetingRepository,
	members repository.MemberRepository,
	attendances repository.AttendanceRepository,
	txRunner TxRunner,
	defaultLoc *time.Location,
	log *logger.Logger,
) *AttendanceUseCase {
	return &AttendanceUseCase{
		tenants: tenants, meetings: meetings, members: members, attendances: attendances,
		txRunner: txRunner, defaultLoc: defaultLoc, log: log, now: time.Now,
	}
}

// resolveLocation zona horaria del tenant, o fallback si no tiene.
func resolveLocation(ctx context.Context, tenants repository.TenantRepository, tenantID string, fallback *time.Location) (*time.Location, error) {
	t, err := tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return fallback, nil
	}
	return domainatt.LoadLocation(t.Timezone, fallback), nil
}

func (uc *AttendanceUseCase) location(ctx context.Context, tenantID string) (*time.Location, error) {
	return resolveLocation(ctx, uc.tenants, tenantID, uc.defaultLoc)
}

// Dashboard totales del mes (por defecto el mes actual en la zona del tenant).
// Un month fuera de 1-12 o un year <= 0 toman el valor actual.
func (uc *AttendanceUseCase) Dashboard(ctx context.Context, user *entity.User, month, year int) (*dto.PresenceDashboardResponse, error) {
	loc, err := uc.location(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	now := uc.now().In(loc)
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}

	scope := ScopeTenant
	var lojaID *string
	if role.NeedsLojaScope(user.Role) {
		if user.LojaID == nil {
			return nil, domain.ErrNoLoja
		}
		lojaID = user.LojaID
		scope = ScopeLoja
	}

	from, to := domainatt.MonthWindow(year, time.Month(month), loc)
	byStatus, err := uc.attendances.CountByStatus(ctx, user.TenantID, lojaID, from, to)
	if err != nil {
		return nil, err
	}
	c := domainatt.Counts{
		Presentes:    byStatus[entity.AttendancePresente],
		Faltas:       byStatus[entity.AttendanceFalta],
		Justificadas: byStatus[entity.AttendanceJustificada],
	}

	return &dto.PresenceDashboardResponse{
		MonthLabel: domainatt.MonthLabel(year, time.Month(month)),
		Presentes:  c.Presentes,
		Faltas:     c.Ausentes(),
		Details: dto.PresenceDetails{
			Faltas:       c.Ausentes(),
			Justificadas: c.Justificadas,
			Presentes:    c.Presentes,
		},
		Scope: scope,
	}, nil
}

// meeting carga la sessão y verifica el alcance de loja del usuario.
func (uc *AttendanceUseCase) meeting(ctx context.Context, user *entity.User, meetingID string) (*entity.Meeting, error) {
	m, err := uc.meetings.GetByID(ctx, user.TenantID, meetingID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if role.NeedsLojaScope(user.Role) && (user.LojaID == nil || *user.LojaID != m.LojaID) {
		return nil, domain.ErrForbidden
	}
	return m, nil
}

// ListMeetingAttendance presenças registradas de una sessão e indicador canMark.
func (uc *AttendanceUseCase) ListMeetingAttendance(ctx context.Context, user *entity.User, meetingID string) (*dto.MeetingAttendanceResponse, error) {
	if !role.CanAccessPresence(user.Role) {
		return nil, domain.ErrForbidden
	}
	m, err := uc.meeting(ctx, user, meetingID)
	if err != nil {
		return nil, err
	}
	loc, err := uc.location(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	rows, err := uc.attendances.ListByMeeting(ctx, user.TenantID, m.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.MeetingAttendanceResponse{
		MeetingID:   m.ID,
		Date:        m.Date,
		CanMark:     domainatt.CanMarkAttendance(m.Date, uc.now(), loc),
		Attendances: make([]dto.AttendanceResponse, 0, len(rows)),
	}
	for _, a := range rows {
		out.Attendances = append(out.Attendances, toAttendanceResponse(a))
	}
	return out, nil
}

// MarkAttendance registra presenças en lote. Falla con ErrSessionNotHappened si la sessão
// todavía no ocurrió en el calendario del tenant.
func (uc *AttendanceUseCase) MarkAttendance(ctx context.Context, user *entity.User, meetingID string, req dto.MarkAttendanceRequest) ([]dto.AttendanceResponse, error) {
	if !role.CanAccessPresence(user.Role) {
		return nil, domain.ErrForbidden
	}
	if len(req.Entries) == 0 {
		return nil, domain.NewValidationError("entries", "Informe ao menos uma presença")
	}
	m, err := uc.meeting(ctx, user, meetingID)
	if err != nil {
		return nil, err
	}
	loc, err := uc.location(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if !domainatt.CanMarkAttendance(m.Date, now, loc) {
		uc.log.Info().Str("meeting_id", m.ID).Time("date", m.Date).Msg("presença bloqueada: sessão futura")
		return nil, domain.ErrSessionNotHappened
	}

	rows := make([]entity.Attendance, 0, len(req.Entries))
	for _, e := range req.Entries {
		if !entity.ValidAttendanceStatus(e.Status) {
			return nil, domain.NewValidationError("status", "Status deve ser PRESENTE, FALTA ou JUSTIFICADA")
		}
		member, err := uc.members.GetByID(ctx, user.TenantID, e.MemberID)
		if err != nil {
			return nil, err
		}
		if member == nil || member.LojaID != m.LojaID {
			return nil, domain.ErrMemberNotFound
		}
		rows = append(rows, entity.Attendance{
			ID:        uuid.New().String(),
			TenantID:  user.TenantID,
			MeetingID: m.ID,
			MemberID:  member.ID,
			Status:    e.Status,
			Notes:     e.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		for i := range rows {
			if err := repos.Attendance.Upsert(ctx, &rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("meeting_id", m.ID).Int("count", len(rows)).Msg("presenças registradas")

	out := make([]dto.AttendanceResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, toAttendanceResponse(a))
	}
	return out, nil
}

func toAttendanceResponse(a entity.Attendance) dto.AttendanceResponse {
	return dto.AttendanceResponse{MemberID: a.MemberID, Status: a.Status, Notes: a.Notes, UpdatedAt: a.UpdatedAt}
}
