package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/application/loja"
)

// LojaHandler consulta y mantenimiento de lojas.
type LojaHandler struct {
	uc *loja.LojaUseCase
}

// NewLojaHandler construye el handler.
func NewLojaHandler(uc *loja.LojaUseCase) *LojaHandler {
	return &LojaHandler{uc: uc}
}

// List godoc
// @Summary      Listar lojas
// @Description  SaaS ve el tenant; admin de potência su potência; el resto su loja.
// @Tags         lojas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LojaResponse
// @Router       /api/lojas [get]
func (h *LojaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de loja
// @Tags         lojas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la loja"
// @Success      200  {object}  dto.LojaResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lojas/{id} [get]
func (h *LojaHandler) Get(c *fiber.Ctx) error {
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

// Valores godoc
// @Summary      Valores de cobranza de la loja
// @Description  Sin valores propios se usan 150 (mensalidade) y 500 (anuidade).
// @Tags         lojas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la loja"
// @Success      200  {object}  dto.LojaValoresResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lojas/{id}/valores [get]
func (h *LojaHandler) Valores(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Valores(c.UserContext(), GetUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear loja
// @Tags         lojas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLojaRequest  true  "name, numero, potenciaId"
// @Success      201  {object}  dto.LojaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/lojas [post]
func (h *LojaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLojaRequest
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
// @Summary      Editar loja
// @Description  Datos generales y valores; el admin de loja solo edita la propia.
// @Tags         lojas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la loja"
// @Param        body  body  dto.UpdateLojaRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.LojaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lojas/{id} [put]
func (h *LojaHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateLojaRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
