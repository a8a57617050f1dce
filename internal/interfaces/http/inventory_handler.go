package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/application/inventory"
)

// InventoryHandler patrimônio de la loja: items, movimientos, baja, reposición y export (protegido).
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateItem godoc
// @Summary      Crear item de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name, unit, minQty, reorderPoint"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateItem(c.UserContext(), GetUser(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListItems godoc
// @Summary      Listar items
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        lojaId  query  string  false  "Filtrar por loja (solo SaaS-admin)"
// @Param        q       query  string  false  "Búsqueda por nombre o SKU"
// @Success      200  {object}  dto.ItemListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	lojaID, err := queryID(c, "lojaId")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListItems(c.UserContext(), GetUser(c), lojaID, c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del item"
// @Param        body  body  dto.MovementRequest  true  "type (IN|OUT|ADJUST), qty, unitCost (entradas)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.MovementRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RegisterMovement(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un item
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del item"
// @Param        limit  query  int     false  "Máximo 200 (default 50)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListMovements(c.UserContext(), GetUser(c), id, c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Dar de baja un item
// @Description  Exige la contraseña del operador; registra un movimiento ARCHIVE por el saldo restante.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del item"
// @Param        body  body  dto.ArchiveItemRequest  true  "password, reason"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/archive [post]
func (h *InventoryHandler) Archive(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ArchiveItemRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Archive(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReorderList godoc
// @Summary      Lista de reposición
// @Description  Items en o bajo el punto de reorden con la cantidad sugerida, ordenados por déficit.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        lojaId  query  string  false  "Filtrar por loja (solo SaaS-admin)"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/reorder [get]
func (h *InventoryHandler) ReorderList(c *fiber.Ctx) error {
	lojaID, err := queryID(c, "lojaId")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ReorderList(c.UserContext(), GetUser(c), lojaID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":       len(list),
		"suggestions": list,
	})
}

// Export godoc
// @Summary      Relatório de patrimônio en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        format  query  string  false  "pdf (único formato soportado)"
// @Param        lojaId  query  string  false  "Filtrar por loja (solo SaaS-admin)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/export [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	if f := c.Query("format", "pdf"); f != "pdf" {
		return respondError(c, badRequest("UNSUPPORTED_FORMAT", "formato no soportado: "+f, nil))
	}
	lojaID, err := queryID(c, "lojaId")
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.uc.Export(c.UserContext(), GetUser(c), lojaID)
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("patrimonio-%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}
