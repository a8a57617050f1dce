package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/attendance"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

// requestError error ya traducido a status + cuerpo (parseo y validación de requests).
type requestError struct {
	status int
	body   dto.ErrorResponse
}

func (e *requestError) Error() string { return e.body.Message }

func badRequest(code, message string, details interface{}) error {
	return &requestError{status: fiber.StatusBadRequest, body: dto.ErrorResponse{Code: code, Message: message, Details: details}}
}

// respondError traduce errores de dominio a JSON. Los no reconocidos se devuelven
// para que el ErrorHandler los registre y responda 500.
func respondError(c *fiber.Ctx, err error) error {
	var re *requestError
	if errors.As(err, &re) {
		return c.Status(re.status).JSON(re.body)
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: ve.Message,
			Details: []dto.ValidationDetail{{Field: ve.Field, Message: ve.Message}},
		})
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotHappened):
		return c.Status(fiber.StatusForbidden).JSON(dto.AttendanceBlockedResponse{
			Allowed: false,
			Code:    attendance.BlockedCode,
			Error:   err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidInviteToken):
		return status(c, fiber.StatusBadRequest, "INVALID_INVITE_TOKEN", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return status(c, fiber.StatusBadRequest, "VALIDATION", "datos inválidos")
	case errors.Is(err, domain.ErrUnauthorized):
		return status(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	case errors.Is(err, domain.ErrUserInactive):
		return status(c, fiber.StatusForbidden, "USER_INACTIVE", err.Error())
	case errors.Is(err, domain.ErrLojaInactive):
		return status(c, fiber.StatusForbidden, "LOJA_INACTIVE", err.Error())
	case errors.Is(err, domain.ErrNoLoja):
		return status(c, fiber.StatusForbidden, "NO_LOJA", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return status(c, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado al recurso")
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrLojaNotFound), errors.Is(err, domain.ErrNotFound):
		return status(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return status(c, fiber.StatusConflict, "EMAIL_EXISTS", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		return status(c, fiber.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		return status(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, domain.ErrConflict):
		return status(c, fiber.StatusConflict, "CONFLICT", err.Error())
	}
	return err
}

func status(c *fiber.Ctx, code int, errCode, message string) error {
	return c.Status(code).JSON(dto.ErrorResponse{Code: errCode, Message: message})
}

// NewErrorHandler último recurso de Fiber: nunca devuelve la página de error del framework.
// exposeDetail incluye el texto del error en respuestas 500 (solo fuera de producción).
func NewErrorHandler(log *logger.Logger, exposeDetail bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return status(c, fe.Code, fiberCode(fe.Code), fe.Message)
		}
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
		body := dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
		if exposeDetail {
			body.Details = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}

func fiberCode(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	}
	return "HTTP_ERROR"
}
