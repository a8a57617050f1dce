package dto

import "time"

// MeetingQuery filtros de GET /api/sessoes.
type MeetingQuery struct {
	LojaID     string `query:"lojaId" validate:"omitempty,uuid"`
	Tipo       string `query:"tipo" validate:"omitempty,oneof=ORDINARIA EXTRAORDINARIA INICIACAO INSTALACAO MAGNA LUTO"`
	DataInicio string `query:"dataInicio"`
	DataFim    string `query:"dataFim"`
}

// CreateMeetingRequest alta de sessão. dataSessao acepta YYYY-MM-DD o RFC 3339.
type CreateMeetingRequest struct {
	DataSessao  string  `json:"dataSessao"`
	Tipo        string  `json:"tipo"`
	Titulo      *string `json:"titulo" validate:"omitempty,max=200"`
	Descricao   *string `json:"descricao" validate:"omitempty,max=2000"`
	Observacoes *string `json:"observacoes" validate:"omitempty,max=2000"`
	LojaID      *string `json:"lojaId" validate:"omitempty,uuid"`
}

// UpdateMeetingRequest edición parcial; los campos ausentes no cambian.
type UpdateMeetingRequest struct {
	DataSessao  *string `json:"dataSessao"`
	Tipo        *string `json:"tipo"`
	Titulo      *string `json:"titulo" validate:"omitempty,max=200"`
	Descricao   *string `json:"descricao" validate:"omitempty,max=2000"`
	Observacoes *string `json:"observacoes" validate:"omitempty,max=2000"`
}

// MeetingResponse sessão con el indicador de marcación y total de presenças registradas.
type MeetingResponse struct {
	ID                string    `json:"id"`
	LojaID            string    `json:"lojaId"`
	Tipo              string    `json:"tipo"`
	Titulo            string    `json:"titulo"`
	DataSessao        time.Time `json:"dataSessao"`
	Descricao         *string   `json:"descricao"`
	Observacoes       *string   `json:"observacoes"`
	CanMarkAttendance bool      `json:"canMarkAttendance"`
	AttendanceCount   int       `json:"attendanceCount"`
}

// MeetingAttendee presença con datos del membro.
type MeetingAttendee struct {
	MemberID     string  `json:"memberId"`
	NomeCompleto string  `json:"nomeCompleto"`
	Class        *string `json:"class"`
	Status       string  `json:"status"`
	Notes        string  `json:"notes,omitempty"`
}

// MeetingDetailResponse GET /api/sessoes/{id}.
type MeetingDetailResponse struct {
	MeetingResponse
	Attendances []MeetingAttendee `json:"attendances"`
}

// FrequencyQuery filtros del relatório de frequência.
type FrequencyQuery struct {
	LojaID     string `query:"lojaId" validate:"omitempty,uuid"`
	DataInicio string `query:"dataInicio"`
	DataFim    string `query:"dataFim"`
}

// FrequencyMember membro ATIVO incluido en el relatório.
type FrequencyMember struct {
	ID           string  `json:"id"`
	NomeCompleto string  `json:"nomeCompleto"`
	Class        *string `json:"class"`
	LojaID       string  `json:"lojaId"`
}

// FrequencyAttendance celda membro × sessão.
type FrequencyAttendance struct {
	MeetingID string `json:"meetingId"`
	MemberID  string `json:"memberId"`
	Status    string `json:"status"`
}

// MemberFrequency porcentaje de presença sobre las presenças registradas.
type MemberFrequency struct {
	MemberID      string  `json:"memberId"`
	MemberName    string  `json:"memberName"`
	MemberClass   *string `json:"memberClass"`
	TotalPresent  int     `json:"totalPresent"`
	TotalRecorded int     `json:"totalRecorded"`
	Percentage    int     `json:"percentage"`
}

// FrequencyResponse GET /api/presenca/frequencia; sessões en orden cronológico.
type FrequencyResponse struct {
	Meetings    []MeetingResponse     `json:"meetings"`
	Members     []FrequencyMember     `json:"members"`
	Attendances []FrequencyAttendance `json:"attendances"`
	MemberStats []MemberFrequency     `json:"memberStats"`
}
