package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/application/member"
)

// MemberHandler consulta y gestión de membros.
type MemberHandler struct {
	uc *member.MemberUseCase
}

// NewMemberHandler construye el handler.
func NewMemberHandler(uc *member.MemberUseCase) *MemberHandler {
	return &MemberHandler{uc: uc}
}

// List godoc
// @Summary      Listar membros
// @Description  Alcance por rol: tenant (SaaS), potência o loja.
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Situação (ATIVO, INATIVO, ...)"
// @Success      200  {array}   dto.MemberResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUser(c), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de membro
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del membro"
// @Success      200  {object}  dto.MemberDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Crear membro
// @Description  El membro queda en la loja del usuario.
// @Tags         members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMemberRequest  true  "nomeCompleto, email, class"
// @Success      201  {object}  dto.MemberDetailResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMemberRequest
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
// @Summary      Editar membro
// @Tags         members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del membro"
// @Param        body  body  dto.UpdateMemberRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.MemberDetailResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateMemberRequest
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
// @Summary      Excluir membro
// @Description  409 si el membro tiene pagamentos, cobranças o presenças.
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del membro"
// @Success      200  {object}  dto.OKResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKResponse{Success: true})
}
