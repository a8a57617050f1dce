package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/esferaordo/ordo-api/internal/application/auth"
)

// publicPaths no requieren sesión en el gate de páginas.
var publicPaths = map[string]bool{
	"/login":                 true,
	"/logout":                true,
	"/health":                true,
	"/api/auth/login":        true,
	"/api/auth/logout":       true,
	"/api/auth/set-password": true,
	"/auth/set-password":     true,
}

// SessionGate protege las rutas de páginas: sin sesión válida redirige a /login?from=<path>.
// Las rutas /api/* se dejan pasar; cada grupo aplica AuthMiddleware y responde 401 en JSON.
func SessionGate(sessions *auth.SessionManager, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		// Estáticos y documentación
		if strings.Contains(path, ".") || strings.HasPrefix(path, "/docs") || strings.HasPrefix(path, "/static") {
			return c.Next()
		}
		if path == "/login" {
			if _, ok := sessions.VerifyToken(c.Cookies(cookieName)); ok {
				return c.Redirect("/", fiber.StatusFound)
			}
			return c.Next()
		}
		if strings.HasPrefix(path, "/api/") || publicPaths[path] {
			return c.Next()
		}

		tok := c.Cookies(cookieName)
		_, valid := sessions.VerifyToken(tok)
		if valid {
			return c.Next()
		}
		if tok != "" {
			c.ClearCookie(cookieName)
		}
		return c.Redirect("/login?from="+url.QueryEscape(path), fiber.StatusFound)
	}
}
