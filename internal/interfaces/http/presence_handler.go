package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/esferaordo/ordo-api/internal/application/attendance"
	"github.com/esferaordo/ordo-api/internal/application/dto"
)

// PresenceHandler dashboard y marcación de presenças.
type PresenceHandler struct {
	uc *attendance.AttendanceUseCase
}

// NewPresenceHandler construye el handler.
func NewPresenceHandler(uc *attendance.AttendanceUseCase) *PresenceHandler {
	return &PresenceHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Dashboard de presença
// @Tags         presenca
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  false  "Mes 1-12; fuera de rango usa el actual"
// @Param        year   query  int  false  "Año (default: actual)"
// @Success      200  {object}  dto.PresenceDashboardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/presenca/dashboard [get]
func (h *PresenceHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext(), GetUser(c), c.QueryInt("month", 0), c.QueryInt("year", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Presenças de una sessão
// @Tags         presenca
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sessão"
// @Success      200  {object}  dto.MeetingAttendanceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessoes/{id}/presenca [get]
func (h *PresenceHandler) List(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListMeetingAttendance(c.UserContext(), GetUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Mark godoc
// @Summary      Marcar presenças
// @Description  Solo en sessões cuyo día ya ocurrió; si no, 403 con code SESSION_NOT_HAPPENED_YET.
// @Tags         presenca
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la sessão"
// @Param        body  body  dto.MarkAttendanceRequest  true  "entries"
// @Success      200  {array}   dto.AttendanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.AttendanceBlockedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessoes/{id}/presenca [post]
func (h *PresenceHandler) Mark(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.MarkAttendanceRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.MarkAttendance(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Frequency godoc
// @Summary      Relatório de frequência
// @Description  Sessões ya ocurridas del período × membros ATIVO, con porcentaje por membro.
// @Tags         presenca
// @Security     Bearer
// @Produce      json
// @Param        lojaId      query  string  false  "Filtro por loja (SaaS)"
// @Param        dataInicio  query  string  false  "YYYY-MM-DD"
// @Param        dataFim     query  string  false  "YYYY-MM-DD (incluye el día)"
// @Success      200  {object}  dto.FrequencyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/presenca/frequencia [get]
func (h *PresenceHandler) Frequency(c *fiber.Ctx) error {
	var q dto.FrequencyQuery
	if err := bindQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Frequency(c.UserContext(), GetUser(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
