package repository

import (
	"context"
	"time"

	"github.com/esferaordo/ordo-api/internal/domain/entity"
)

// MeetingFilter filtros de listado de sessões; los campos nil no filtran.
type MeetingFilter struct {
	TenantID string
	LojaID   *string
	Tipo     *string
	From     *time.Time
	To       *time.Time
}

// MeetingRepository puerto de persistencia de sessões.
type MeetingRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (*entity.Meeting, error)
	// List ordenado por fecha descendente.
	List(ctx context.Context, f MeetingFilter) ([]entity.Meeting, error)
	Create(ctx context.Context, m *entity.Meeting) error
	Update(ctx context.Context, m *entity.Meeting) error
	// Delete borra la sessão y sus presenças.
	Delete(ctx context.Context, tenantID, id string) error
}

// AttendanceRepository puerto de persistencia para presenças.
type AttendanceRepository interface {
	// CountByStatus cuenta filas cuya sessão cae en [from, to]; lojaID nil = todo el tenant.
	CountByStatus(ctx context.Context, tenantID string, lojaID *string, from, to time.Time) (map[string]int, error)
	ListByMeeting(ctx context.Context, tenantID, meetingID string) ([]entity.Attendance, error)
	ListByMeetings(ctx context.Context, tenantID string, meetingIDs []string) ([]entity.Attendance, error)
	Upsert(ctx context.Context, a *entity.Attendance) error
}
