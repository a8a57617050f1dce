package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/esferaordo/ordo-api/internal/application/attendance"
	"github.com/esferaordo/ordo-api/internal/application/dto"
)

// MeetingHandler CRUD de sessões.
type MeetingHandler struct {
	uc *attendance.MeetingUseCase
}

// NewMeetingHandler construye el handler.
func NewMeetingHandler(uc *attendance.MeetingUseCase) *MeetingHandler {
	return &MeetingHandler{uc: uc}
}

// List godoc
// @Summary      Listar sessões
// @Description  De la más reciente a la más antigua. Roles de loja ven solo su loja.
// @Tags         sessoes
// @Security     Bearer
// @Produce      json
// @Param        lojaId      query  string  false  "Filtro por loja (SaaS)"
// @Param        tipo        query  string  false  "ORDINARIA | EXTRAORDINARIA | INICIACAO | INSTALACAO | MAGNA | LUTO"
// @Param        dataInicio  query  string  false  "YYYY-MM-DD"
// @Param        dataFim     query  string  false  "YYYY-MM-DD (incluye el día)"
// @Success      200  {array}   dto.MeetingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/sessoes [get]
func (h *MeetingHandler) List(c *fiber.Ctx) error {
	var q dto.MeetingQuery
	if err := bindQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetUser(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de sessão
// @Tags         sessoes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sessão"
// @Success      200  {object}  dto.MeetingDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessoes/{id} [get]
func (h *MeetingHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), GetUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear sessão
// @Tags         sessoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMeetingRequest  true  "dataSessao, tipo, titulo, lojaId"
// @Success      201  {object}  dto.MeetingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessoes [post]
func (h *MeetingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMeetingRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar sessão
// @Tags         sessoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la sessão"
// @Param        body  body  dto.UpdateMeetingRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.MeetingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessoes/{id} [put]
func (h *MeetingHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateMeetingRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir sessão
// @Description  Borra también las presenças registradas.
// @Tags         sessoes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sessão"
// @Success      200  {object}  dto.OKResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessoes/{id} [delete]
func (h *MeetingHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKResponse{Success: true})
}
