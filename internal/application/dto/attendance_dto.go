package dto

import "time"

// PresenceDetails desglose por estado.
type PresenceDetails struct {
	Faltas       int `json:"faltas"`
	Justificadas int `json:"justificadas"`
	Presentes    int `json:"presentes"`
}

// PresenceDashboardResponse salida de GET /api/presenca/dashboard.
type PresenceDashboardResponse struct {
	MonthLabel string          `json:"monthLabel"`
	Presentes  int             `json:"presentes"`
	Faltas     int             `json:"faltas"`
	Details    PresenceDetails `json:"details"`
	Scope      string          `json:"scope"` // loja | tenant
}

// AttendanceEntry presença de un membro.
type AttendanceEntry struct {
	MemberID string `json:"memberId" validate:"required,uuid"`
	Status   string `json:"status" validate:"required,oneof=PRESENTE FALTA JUSTIFICADA"`
	Notes    string `json:"notes" validate:"omitempty,max=500"`
}

// MarkAttendanceRequest marcación en lote.
type MarkAttendanceRequest struct {
	Entries []AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// AttendanceBlockedResponse respuesta 403 cuando la sessão aún no ocurrió.
type AttendanceBlockedResponse struct {
	Allowed bool   `json:"allowed"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

// AttendanceResponse presença persistida.
type AttendanceResponse struct {
	MemberID  string    `json:"memberId"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MeetingAttendanceResponse presenças de una sessão.
type MeetingAttendanceResponse struct {
	MeetingID   string               `json:"meetingId"`
	Date        time.Time            `json:"date"`
	CanMark     bool                 `json:"canMark"`
	Attendances []AttendanceResponse `json:"attendances"`
}
