package attendance

import (
	"context"
	"strings"
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

const (
	msgDataSessao = "Data da sessão é obrigatória e deve ser válida"
	msgTitulo     = "Título não pode estar vazio se fornecido"
)

var msgTipo = "Tipo deve ser: " + strings.Join(entity.MeetingTipos, ", ")

// MeetingUseCase alta, edición y consulta de sessões.
type MeetingUseCase struct {
	tenants     repository.TenantRepository
	lojas       repository.LojaRepository
	meetings    repository.MeetingRepository
	members     repository.MemberRepository
	attendances repository.AttendanceRepository
	defaultLoc  *time.Location
	log         *logger.Logger
	now         func() time.Time
}

// NewMeetingUseCase construye el caso de uso. defaultLoc se usa cuando el tenant no tiene zona.
func NewMeetingUseCase(
	tenants repository.TenantRepository,
	lojas repository.LojaRepository,
	meetings repository.MeetingRepository,
	members repository.MemberRepository,
	attendances repository.AttendanceRepository,
	defaultLoc *time.Location,
	log *logger.Logger,
) *MeetingUseCase {
	return &MeetingUseCase{
		tenants: tenants, lojas: lojas, meetings: meetings, members: members, attendances: attendances,
		defaultLoc: defaultLoc, log: log, now: time.Now,
	}
}

// lojaScope loja efectiva del filtro: la del usuario para roles de loja, la pedida para el resto.
func lojaScope(user *entity.User, requested *string) (*string, error) {
	if !role.NeedsLojaScope(user.Role) {
		return requested, nil
	}
	if user.LojaID == nil {
		return nil, domain.ErrNoLoja
	}
	if requested != nil && *requested != *user.LojaID {
		return nil, domain.ErrForbidden
	}
	return user.LojaID, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// dateRange interpreta dataInicio/dataFim; dataFim sin hora incluye el día completo.
func dateRange(from, to string, loc *time.Location) (*time.Time, *time.Time, error) {
	var out [2]*time.Time
	for i, raw := range []string{from, to} {
		if raw == "" {
			continue
		}
		t, err := domainatt.ParseDate(raw, loc, i == 1)
		if err != nil {
			field := "dataInicio"
			if i == 1 {
				field = "dataFim"
			}
			return nil, nil, domain.NewValidationError(field, "Data inválida")
		}
		out[i] = &t
	}
	return out[0], out[1], nil
}

func (uc *MeetingUseCase) toResponse(m entity.Meeting, count int, loc *time.Location) dto.MeetingResponse {
	return meetingResponse(m, count, uc.now(), loc)
}

func meetingResponse(m entity.Meeting, count int, now time.Time, loc *time.Location) dto.MeetingResponse {
	return dto.MeetingResponse{
		ID:                m.ID,
		LojaID:            m.LojaID,
		Tipo:              m.Tipo,
		Titulo:            m.Title,
		DataSessao:        m.Date,
		Descricao:         m.Descricao,
		Observacoes:       m.Observacoes,
		CanMarkAttendance: domainatt.CanMarkAttendance(m.Date, now, loc),
		AttendanceCount:   count,
	}
}

// List sessões del alcance del usuario, de la más reciente a la más antigua.
func (uc *MeetingUseCase) List(ctx context.Context, user *entity.User, q dto.MeetingQuery) ([]dto.MeetingResponse, error) {
	if !role.CanAccessPresence(user.Role) {
		return nil, domain.ErrForbidden
	}
	lojaID, err := lojaScope(user, optional(q.LojaID))
	if err != nil {
		return nil, err
	}
	loc, err := resolveLocation(ctx, uc.tenants, user.TenantID, uc.defaultLoc)
	if err != nil {
		return nil, err
	}
	from, to, err := dateRange(q.DataInicio, q.DataFim, loc)
	if err != nil {
		return nil, err
	}

	list, err := uc.meetings.List(ctx, repository.MeetingFilter{
		TenantID: user.TenantID,
		LojaID:   lojaID,
		Tipo:     optional(q.Tipo),
		From:     from,
		To:       to,
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(list))
	if len(list) > 0 {
		ids := make([]string, 0, len(list))
		for _, m := range list {
			ids = append(ids, m.ID)
		}
		rows, err := uc.attendances.ListByMeetings(ctx, user.TenantID, ids)
		if err != nil {
			return nil, err
		}
		for _, a := range rows {
			counts[a.MeetingID]++
		}
	}

	out := make([]dto.MeetingResponse, 0, len(list))
	for _, m := range list {
		out = append(out, uc.toResponse(m, counts[m.ID], loc))
	}
	return out, nil
}

func (uc *MeetingUseCase) load(ctx context.Context, user *entity.User, id string) (*entity.Meeting, error) {
	if !role.CanAccessPresence(user.Role) {
		return nil, domain.ErrForbidden
	}
	m, err := uc.meetings.GetByID(ctx, user.TenantID, id)
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

// Get sessão con sus presenças y el nombre de cada membro.
func (uc *MeetingUseCase) Get(ctx context.Context, user *entity.User, id string) (*dto.MeetingDetailResponse, error) {
	m, err := uc.load(ctx, user, id)
	if err != nil {
		return nil, err
	}
	loc, err := resolveLocation(ctx, uc.tenants, user.TenantID, uc.defaultLoc)
	if err != nil {
		return nil, err
	}
	rows, err := uc.attendances.ListByMeeting(ctx, user.TenantID, m.ID)
	if err != nil {
		return nil, err
	}
	members, err := uc.members.List(ctx, repository.MemberFilter{TenantID: user.TenantID, LojaID: &m.LojaID})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Member, len(members))
	for _, mb := range members {
		byID[mb.ID] = mb
	}

	out := &dto.MeetingDetailResponse{
		MeetingResponse: uc.toResponse(*m, len(rows), loc),
		Attendances:     make([]dto.MeetingAttendee, 0, len(rows)),
	}
	for _, a := range rows {
		mb := byID[a.MemberID]
		out.Attendances = append(out.Attendances, dto.MeetingAttendee{
			MemberID:     a.MemberID,
			NomeCompleto: mb.NomeCompleto,
			Class:        mb.Class,
			Status:       a.Status,
			Notes:        a.Notes,
		})
	}
	return out, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Create registra una sessão en la loja del usuario (o en la indicada, para SaaS).
func (uc *MeetingUseCase) Create(ctx context.Context, user *entity.User, in dto.CreateMeetingRequest) (*dto.MeetingResponse, error) {
	if !role.CanAccessPresence(user.Role) {
		return nil, domain.ErrForbidden
	}
	loc, err := resolveLocation(ctx, uc.tenants, user.TenantID, uc.defaultLoc)
	if err != nil {
		return nil, err
	}
	date, err := domainatt.ParseDate(strings.TrimSpace(in.DataSessao), loc, false)
	if err != nil {
		return nil, domain.NewValidationError("dataSessao", msgDataSessao)
	}
	tipo := strings.ToUpper(strings.TrimSpace(in.Tipo))
	if !entity.ValidMeetingTipo(tipo) {
		return nil, domain.NewValidationError("tipo", msgTipo)
	}
	title := ""
	if in.Titulo != nil {
		title = strings.TrimSpace(*in.Titulo)
		if title == "" {
			return nil, domain.NewValidationError("titulo", msgTitulo)
		}
	}

	lojaID, err := lojaScope(user, trimmedOrNil(in.LojaID))
	if err != nil {
		return nil, err
	}
	if lojaID == nil {
		return nil, domain.NewValidationError("lojaId", "Loja é obrigatória")
	}
	loja, err := uc.lojas.GetByID(ctx, user.TenantID, *lojaID)
	if err != nil {
		return nil, err
	}
	if loja == nil {
		return nil, domain.ErrLojaNotFound
	}

	now := uc.now()
	m := &entity.Meeting{
		ID:          uuid.New().String(),
		TenantID:    user.TenantID,
		LojaID:      loja.ID,
		Tipo:        tipo,
		Title:       title,
		Date:        date,
		Descricao:   trimmedOrNil(in.Descricao),
		Observacoes: trimmedOrNil(in.Observacoes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.meetings.Create(ctx, m); err != nil {
		return nil, err
	}
	uc.log.Info().Str("meeting_id", m.ID).Str("loja_id", m.LojaID).Str("tipo", m.Tipo).Msg("sessão criada")

	out := uc.toResponse(*m, 0, loc)
	return &out, nil
}

// Update edición parcial; la loja de la sessão no cambia.
func (uc *MeetingUseCase) Update(ctx context.Context, user *entity.User, id string, in dto.UpdateMeetingRequest) (*dto.MeetingResponse, error) {
	m, err := uc.load(ctx, user, id)
	if err != nil {
		return nil, err
	}
	loc, err := resolveLocation(ctx, uc.tenants, user.TenantID, uc.defaultLoc)
	if err != nil {
		return nil, err
	}

	if in.DataSessao != nil {
		date, err := domainatt.ParseDate(strings.TrimSpace(*in.DataSessao), loc, false)
		if err != nil {
			return nil, domain.NewValidationError("dataSessao", msgDataSessao)
		}
		m.Date = date
	}
	if in.Tipo != nil {
		tipo := strings.ToUpper(strings.TrimSpace(*in.Tipo))
		if !entity.ValidMeetingTipo(tipo) {
			return nil, domain.NewValidationError("tipo", msgTipo)
		}
		m.Tipo = tipo
	}
	if in.Titulo != nil {
		title := strings.TrimSpace(*in.Titulo)
		if title == "" {
			return nil, domain.NewValidationError("titulo", msgTitulo)
		}
		m.Title = title
	}
	if in.Descricao != nil {
		m.Descricao = trimmedOrNil(in.Descricao)
	}
	if in.Observacoes != nil {
		m.Observacoes = trimmedOrNil(in.Observacoes)
	}
	m.UpdatedAt = uc.now()

	if err := uc.meetings.Update(ctx, m); err != nil {
		return nil, err
	}
	rows, err := uc.attendances.ListByMeeting(ctx, user.TenantID, m.ID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("meeting_id", m.ID).Msg("sessão atualizada")

	out := uc.toResponse(*m, len(rows), loc)
	return &out, nil
}

// Delete borra la sessão junto con sus presenças.
func (uc *MeetingUseCase) Delete(ctx context.Context, user *entity.User, id string) error {
	m, err := uc.load(ctx, user, id)
	if err != nil {
		return err
	}
	if err := uc.meetings.Delete(ctx, user.TenantID, m.ID); err != nil {
		return err
	}
	uc.log.Info().Str("meeting_id", m.ID).Str("user_id", user.ID).Msg("sessão excluída")
	return nil
}
