package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/esferaordo/ordo-api/internal/application/billing"
	"github.com/esferaordo/ordo-api/internal/application/dto"
)

// BillingHandler resumen de cobranza, grilla y registro de pagamentos.
type BillingHandler struct {
	uc *billing.BillingUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *billing.BillingUseCase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de cobranza
// @Description  Totales esperados, pagos y abiertos de la loja del usuario. 403 si el tenant no tiene loja.
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        year  query  int     true  "Año"
// @Param        type  query  string  true  "MONTHLY | ANNUAL"
// @Success      200  {object}  dto.BillingSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/billing/summary [get]
func (h *BillingHandler) Summary(c *fiber.Ctx) error {
	var q dto.BillingSummaryQuery
	if err := bindQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Summary(c.UserContext(), GetUser(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterPayment godoc
// @Summary      Registrar pagamento
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPaymentRequest  true  "memberId, type, year, month, amount, method"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/billing/payments [post]
func (h *BillingHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RegisterPayment(c.UserContext(), GetUser(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Grid godoc
// @Summary      Grilla de pagamentos
// @Description  Matriz membro × período. MEMBER solo recibe su propia fila.
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  true   "MONTHLY | ANNUAL"
// @Param        year    query  int     false  "Año (default: actual)"
// @Param        lojaId  query  string  false  "Filtrar por loja"
// @Success      200  {object}  dto.PaymentGridResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/grid [get]
func (h *BillingHandler) Grid(c *fiber.Ctx) error {
	q := billing.GridQuery{
		Type: strings.ToUpper(c.Query("type", "MONTHLY")),
		Year: c.QueryInt("year", 0),
	}
	lojaID, err := queryID(c, "lojaId")
	if err != nil {
		return respondError(c, err)
	}
	q.LojaID = lojaID
	out, err := h.uc.PaymentGrid(c.UserContext(), GetUser(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de pagamentos de un membro
// @Description  Del más reciente al más antiguo. MEMBER solo consulta el propio.
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del membro"
// @Success      200  {array}   dto.PaymentHistoryItem
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/history/{id} [get]
func (h *BillingHandler) History(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.History(c.UserContext(), GetUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
