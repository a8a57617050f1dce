package entity

import "time"

// Estados de presença.
const (
	AttendancePresente    = "PRESENTE"
	AttendanceFalta       = "FALTA"
	AttendanceJustificada = "JUSTIFICADA"
)

// ValidAttendanceStatus indica si s es un estado de presença conocido.
func ValidAttendanceStatus(s string) bool {
	return s == AttendancePresente || s == AttendanceFalta || s == AttendanceJustificada
}

// Tipos de sessão.
const (
	MeetingOrdinaria      = "ORDINARIA"
	MeetingExtraordinaria = "EXTRAORDINARIA"
	MeetingIniciacao      = "INICIACAO"
	MeetingInstalacao     = "INSTALACAO"
	MeetingMagna          = "MAGNA"
	MeetingLuto           = "LUTO"
)

// MeetingTipos tipos aceptados, en el orden en que se muestran.
var MeetingTipos = []string{
	MeetingOrdinaria, MeetingExtraordinaria, MeetingIniciacao, MeetingInstalacao, MeetingMagna, MeetingLuto,
}

// ValidMeetingTipo indica si s es un tipo de sessão conocido.
func ValidMeetingTipo(s string) bool {
	for _, t := range MeetingTipos {
		if s == t {
			return true
		}
	}
	return false
}

// Meeting sessão de uma loja.
type Meeting struct {
	ID          string
	TenantID    string
	LojaID      string
	Tipo        string
	Title       string
	Date        time.Time
	Descricao   *string
	Observacoes *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Attendance una fila por (membro, sessão).
type Attendance struct {
	ID        string
	TenantID  string
	MeetingID string
	MemberID  string
	Status    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
