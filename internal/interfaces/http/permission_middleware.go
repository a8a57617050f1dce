package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain/role"
)

// RequirePermission corta con 403 si el rol de la sesión no cumple el predicado.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay usuario en el contexto.
//   - 403 Forbidden    → el rol no tiene el permiso.
func RequirePermission(name string, allowed func(role.Role) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Não autenticado"})
		}
		if !allowed(user.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "permiso requerido: " + name,
			})
		}
		return c.Next()
	}
}

// RequireRole atajo de RequirePermission para una lista de roles.
func RequireRole(roles ...role.Role) fiber.Handler {
	return RequirePermission("role", func(r role.Role) bool {
		for _, allowed := range roles {
			if r == allowed {
				return true
			}
		}
		return false
	})
}
