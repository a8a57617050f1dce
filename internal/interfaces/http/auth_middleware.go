package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/esferaordo/ordo-api/internal/application/auth"
	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
)

// LocalUser key del usuario de la sesión en c.Locals.
const LocalUser = "session_user"

// tokenFromRequest lee la cookie de sesión; si no existe, el header Bearer.
func tokenFromRequest(c *fiber.Ctx, cookieName string) string {
	if tok := c.Cookies(cookieName); tok != "" {
		return tok
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AuthMiddleware valida la sesión y carga el usuario en c.Locals.
func AuthMiddleware(sessions *auth.SessionManager, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := tokenFromRequest(c, cookieName)
		if tok == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Não autenticado"})
		}
		payload, ok := sessions.VerifyToken(tok)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		user, err := sessions.UserFromPayload(c.UserContext(), payload)
		if err != nil {
			return err
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "Usuário não encontrado"})
		}
		// sesiones emitidas antes de suspender al usuario
		if !user.IsActive() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "USER_INACTIVE", Message: "Usuário inativo"})
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// GetUser usuario de la sesión (después de AuthMiddleware).
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}
