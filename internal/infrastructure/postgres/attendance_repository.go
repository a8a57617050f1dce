package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

var (
	_ repository.MeetingRepository    = (*MeetingRepo)(nil)
	_ repository.AttendanceRepository = (*AttendanceRepo)(nil)
)

// MeetingRepo persistencia de sessões.
type MeetingRepo struct {
	db Querier
}

func NewMeetingRepository(db Querier) *MeetingRepo {
	return &MeetingRepo{db: db}
}

const meetingColumns = `id, tenant_id, loja_id, tipo, title, date, descricao, observacoes, created_at, updated_at`

func scanMeeting(row pgx.Row) (*entity.Meeting, error) {
	var m entity.Meeting
	if err := row.Scan(
		&m.ID, &m.TenantID, &m.LojaID, &m.Tipo, &m.Title, &m.Date, &m.Descricao, &m.Observacoes, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MeetingRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Meeting, error) {
	m, err := scanMeeting(r.db.QueryRow(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	return m, nil
}

func (r *MeetingRepo) List(ctx context.Context, f repository.MeetingFilter) ([]entity.Meeting, error) {
	var (
		where = []string{"tenant_id = $1"}
		args  = []any{f.TenantID}
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.LojaID != nil {
		add("loja_id = $%d", *f.LojaID)
	}
	if f.Tipo != nil {
		add("tipo = $%d", *f.Tipo)
	}
	if f.From != nil {
		add("date >= $%d", *f.From)
	}
	if f.To != nil {
		add("date <= $%d", *f.To)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE `+strings.Join(where, " AND ")+` ORDER BY date DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	var list []entity.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}

func (r *MeetingRepo) Create(ctx context.Context, m *entity.Meeting) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO meetings (`+meetingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.TenantID, m.LojaID, m.Tipo, m.Title, m.Date, m.Descricao, m.Observacoes, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert meeting: %w", err)
	}
	return nil
}

func (r *MeetingRepo) Update(ctx context.Context, m *entity.Meeting) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE meetings SET tipo = $3, title = $4, date = $5, descricao = $6, observacoes = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2`,
		m.TenantID, m.ID, m.Tipo, m.Title, m.Date, m.Descricao, m.Observacoes, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update meeting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete las presenças caen por ON DELETE CASCADE.
func (r *MeetingRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM meetings WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AttendanceRepo persistencia de presenças.
type AttendanceRepo struct {
	db Querier
}

func NewAttendanceRepository(db Querier) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

// CountByStatus agrupa por estado las presenças de sessões dentro de [from, to].
func (r *AttendanceRepo) CountByStatus(ctx context.Context, tenantID string, lojaID *string, from, to time.Time) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.status, count(*)
		FROM attendances a
		JOIN meetings s ON s.id = a.meeting_id
		WHERE a.tenant_id = $1
			AND s.date BETWEEN $2 AND $3
			AND ($4::uuid IS NULL OR s.loja_id = $4::uuid)
		GROUP BY a.status`,
		tenantID, from, to, lojaID,
	)
	if err != nil {
		return nil, fmt.Errorf("count attendance: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int, 3)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan attendance count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (r *AttendanceRepo) ListByMeeting(ctx context.Context, tenantID, meetingID string) ([]entity.Attendance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, meeting_id, member_id, status, notes, created_at, updated_at
		FROM attendances WHERE tenant_id = $1 AND meeting_id = $2
		ORDER BY created_at`,
		tenantID, meetingID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var list []entity.Attendance
	for rows.Next() {
		var a entity.Attendance
		if err := rows.Scan(&a.ID, &a.TenantID, &a.MeetingID, &a.MemberID, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AttendanceRepo) ListByMeetings(ctx context.Context, tenantID string, meetingIDs []string) ([]entity.Attendance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, meeting_id, member_id, status, notes, created_at, updated_at
		FROM attendances WHERE tenant_id = $1 AND meeting_id = ANY($2::uuid[])`,
		tenantID, meetingIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list attendance by meetings: %w", err)
	}
	defer rows.Close()

	var list []entity.Attendance
	for rows.Next() {
		var a entity.Attendance
		if err := rows.Scan(&a.ID, &a.TenantID, &a.MeetingID, &a.MemberID, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Upsert una fila por (sessão, membro).
func (r *AttendanceRepo) Upsert(ctx context.Context, a *entity.Attendance) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO attendances (id, tenant_id, meeting_id, member_id, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT ON CONSTRAINT ux_attendance_member
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at`,
		a.ID, a.TenantID, a.MeetingID, a.MemberID, a.Status, a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}
